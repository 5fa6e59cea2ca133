package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	models "content_craft/internal/api/ai/models"
	"content_craft/internal/common"
	"content_craft/internal/global"
	"content_craft/internal/logger"
)

// CompletionClient gọi dịch vụ chat-completions bên ngoài.
// Mọi lỗi của provider được tóm tắt thành lỗi generation; nội dung thô của
// response lỗi chỉ ghi vào log, không bao giờ trả về cho client.
type CompletionClient struct {
	endpoint   string
	apiKey     string
	model      string
	maxTokens  int
	timeout    time.Duration
	httpClient *http.Client
}

// NewCompletionClient tạo client từ cấu hình server
func NewCompletionClient() *CompletionClient {
	cfg := global.ServerConfig
	timeout := time.Duration(cfg.AI_TimeoutSeconds) * time.Second
	return &CompletionClient{
		endpoint:  cfg.AI_Endpoint,
		apiKey:    cfg.AI_APIKey,
		model:     cfg.AI_Model,
		maxTokens: cfg.AI_MaxTokens,
		timeout:   timeout,
		// Timeout của http.Client là chốt chặn cuối, context per-call chặn trước
		httpClient: &http.Client{Timeout: timeout + 5*time.Second},
	}
}

// chatRequest là payload gửi đến endpoint chat-completions
type chatRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse là phần cần đọc từ response của provider
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete gửi prompt đã render và trả về text của completion.
// Context deadline → lỗi timeout; lỗi transport hoặc status khác 200 → lỗi generation.
func (c *CompletionClient) Complete(ctx context.Context, prompt string, template *models.AIPromptTemplate) (string, error) {
	model := c.model
	maxTokens := c.maxTokens
	if template != nil {
		if template.Model != "" {
			model = template.Model
		}
		if template.MaxTokens != nil {
			maxTokens = *template.MaxTokens
		}
	}

	payload := chatRequest{
		Model:     model,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens: maxTokens,
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return "", common.ErrGenerationFailed
	}

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(callCtx, "POST", c.endpoint, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", common.ErrGenerationFailed
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"model":   model,
				"timeout": c.timeout.String(),
			}).Warn("[COMPLETION] Gọi completion service quá thời gian")
			return "", common.ErrGenerationTimeout
		}
		logger.GetErrorLogger().WithError(err).Error("[COMPLETION] Lỗi transport khi gọi completion service")
		return "", common.ErrGenerationFailed
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Đọc body để log chi tiết; client chỉ nhận lỗi đã tóm tắt
		bodyBytes, _ := io.ReadAll(resp.Body)
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"status_code": resp.StatusCode,
			"response":    string(bodyBytes),
		}).Error("[COMPLETION] Completion service trả về lỗi")
		return "", common.NewError(
			common.ErrCodeGenerationCall,
			fmt.Sprintf("Dịch vụ sinh nội dung trả về mã lỗi %d", resp.StatusCode),
			common.StatusBadGateway,
			nil,
		)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		logger.GetErrorLogger().WithError(err).Error("[COMPLETION] Không decode được response của completion service")
		return "", common.ErrGenerationFailed
	}
	if len(parsed.Choices) == 0 {
		return "", common.ErrGenerationFailed
	}
	return parsed.Choices[0].Message.Content, nil
}

// CompleteJSON gọi completion và parse text trả về thành JSON object,
// rồi validate với output schema khai báo của template (parse-don't-trust).
func (c *CompletionClient) CompleteJSON(ctx context.Context, prompt string, template *models.AIPromptTemplate) (map[string]interface{}, error) {
	text, err := c.Complete(ctx, prompt, template)
	if err != nil {
		return nil, err
	}

	payload, err := ParseCompletionPayload(text)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateAgainstSchema(template.OutputSchema, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// ParseCompletionPayload parse text trả về từ model thành JSON object.
// Model hay bọc JSON trong code fence markdown nên phải bóc trước khi parse.
func ParseCompletionPayload(text string) (map[string]interface{}, error) {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}

	var payload map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, common.ErrGenerationSchema
	}
	return payload, nil
}

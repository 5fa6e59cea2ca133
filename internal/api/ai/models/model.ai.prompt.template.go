package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"content_craft/internal/common"
)

// AIPromptTemplatePurpose định nghĩa các bước generation mà template phục vụ
const (
	PurposeDebate    = "debate"    // Debate giữa các agent về chiến lược nội dung
	PurposeGenerate  = "generate"  // Sinh nội dung đa định dạng
	PurposeRevise    = "revise"    // Chỉnh sửa một định dạng theo yêu cầu
	PurposeTranslate = "translate" // Dịch một định dạng sang ngôn ngữ khác
	PurposeOptimize  = "optimize"  // Tối ưu một định dạng theo mục tiêu
	PurposeSchedule  = "schedule"  // Lập lịch đăng bài
)

// OutputFieldKind định nghĩa kiểu dữ liệu cho phép trong output schema
const (
	KindString = "string"
	KindNumber = "number"
	KindArray  = "array"
	KindObject = "object"
)

// AIPromptTemplateVariable định nghĩa biến trong prompt template
type AIPromptTemplateVariable struct {
	Name        string `json:"name" bson:"name"`                                   // Tên biến (ví dụ: "brief", "format")
	Description string `json:"description,omitempty" bson:"description,omitempty"` // Mô tả biến
	Required    bool   `json:"required" bson:"required"`                           // Biến bắt buộc hay không
	Default     string `json:"default,omitempty" bson:"default,omitempty"`         // Giá trị mặc định
}

// OutputField khai báo một field mà response của completion service phải có.
// Response không khớp schema bị từ chối trước khi chạm vào campaign.
type OutputField struct {
	Name     string `json:"name" bson:"name"`         // Tên field trong JSON trả về
	Kind     string `json:"kind" bson:"kind"`         // Kiểu: string, number, array, object
	Required bool   `json:"required" bson:"required"` // Field bắt buộc hay không
}

// AIPromptTemplate đại diện cho prompt template của một bước generation.
// Collection: ai_prompt_templates
type AIPromptTemplate struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của prompt template

	// ===== BASIC INFO =====
	Name        string `json:"name" bson:"name" index:"unique"`                     // Tên template, duy nhất
	Description string `json:"description,omitempty" bson:"description,omitempty"`  // Mô tả template
	Purpose     string `json:"purpose" bson:"purpose" index:"single:1"`             // Bước phục vụ: debate, generate, revise, translate, optimize, schedule

	// ===== PROMPT CONTENT =====
	Prompt    string                     `json:"prompt" bson:"prompt"`                           // Nội dung prompt (chứa placeholder {{variableName}})
	Variables []AIPromptTemplateVariable `json:"variables,omitempty" bson:"variables,omitempty"` // Danh sách biến trong prompt

	// ===== OUTPUT CONTRACT =====
	OutputSchema []OutputField `json:"outputSchema" bson:"outputSchema"` // Schema mà response phải khớp

	// ===== AI CONFIG (override tùy chọn) =====
	Model       string   `json:"model,omitempty" bson:"model,omitempty"`             // Model name override
	Temperature *float64 `json:"temperature,omitempty" bson:"temperature,omitempty"` // Temperature override
	MaxTokens   *int     `json:"maxTokens,omitempty" bson:"maxTokens,omitempty"`     // Max tokens override

	// ===== METADATA =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// matchesKind kiểm tra giá trị JSON đã decode có đúng kiểu khai báo không
func matchesKind(value interface{}, kind string) bool {
	switch kind {
	case KindString:
		_, ok := value.(string)
		return ok
	case KindNumber:
		switch value.(type) {
		case float64, int, int64:
			return true
		}
		// json.Decoder với UseNumber() trả về json.Number dạng fmt.Stringer
		_, ok := value.(interface{ Float64() (float64, error) })
		return ok
	case KindArray:
		_, ok := value.([]interface{})
		return ok
	case KindObject:
		_, ok := value.(map[string]interface{})
		return ok
	}
	return false
}

// ValidateAgainstSchema kiểm tra payload trả về từ completion service khớp
// với schema khai báo của template (parse-don't-trust). Lỗi trả về chỉ chứa
// tên field và kiểu mong đợi, không bao giờ chứa nội dung thô của response.
func ValidateAgainstSchema(schema []OutputField, payload map[string]interface{}) error {
	for _, field := range schema {
		value, exists := payload[field.Name]
		if !exists || value == nil {
			if field.Required {
				return common.NewError(
					common.ErrCodeGenerationSchema,
					fmt.Sprintf("Kết quả sinh nội dung thiếu field bắt buộc: %s", field.Name),
					common.StatusBadGateway,
					nil,
				)
			}
			continue
		}
		if !matchesKind(value, field.Kind) {
			return common.NewError(
				common.ErrCodeGenerationSchema,
				fmt.Sprintf("Field %s trong kết quả sinh nội dung phải có kiểu %s", field.Name, field.Kind),
				common.StatusBadGateway,
				nil,
			)
		}
	}
	return nil
}

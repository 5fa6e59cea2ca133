// Package aisvc - orchestrator các bước generation: debate, sinh nội dung,
// revise/translate/optimize và lập lịch đăng bài. Mỗi bước gấp kết quả vào
// campaign qua chính sách trạng thái và version ledger, kết quả + trạng thái
// ghi trong MỘT update nguyên tử; thất bại đưa campaign về draft.
package aisvc

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "content_craft/internal/api/ai/models"
	authmodels "content_craft/internal/api/auth/models"
	campmodels "content_craft/internal/api/campaign/models"
	campaignsvc "content_craft/internal/api/campaign/service"
	"content_craft/internal/common"
	"content_craft/internal/logger"
)

// completionCaller là phần của CompletionClient mà orchestrator cần.
// Tách interface để các nhánh thất bại kiểm thử được với client giả lập.
type completionCaller interface {
	CompleteJSON(ctx context.Context, prompt string, template *models.AIPromptTemplate) (map[string]interface{}, error)
}

// GenerationService điều phối các bước generation trên campaign
type GenerationService struct {
	campaignService *campaignsvc.CampaignService
	templateService *AIPromptTemplateService
	client          completionCaller
}

// NewGenerationService tạo mới GenerationService
func NewGenerationService() (*GenerationService, error) {
	campaignService, err := campaignsvc.NewCampaignService()
	if err != nil {
		return nil, err
	}
	templateService, err := NewAIPromptTemplateService()
	if err != nil {
		return nil, err
	}
	return &GenerationService{
		campaignService: campaignService,
		templateService: templateService,
		client:          NewCompletionClient(),
	}, nil
}

// loadForWrite lấy campaign và kiểm tra quyền ghi của caller
func (s *GenerationService) loadForWrite(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) (campmodels.Campaign, error) {
	campaign, err := s.campaignService.FindOneById(ctx, campaignID)
	if err != nil {
		return campmodels.Campaign{}, err
	}
	if err := s.campaignService.Authorize(caller, &campaign, campaignsvc.ActionWrite); err != nil {
		return campmodels.Campaign{}, err
	}
	return campaign, nil
}

// campaignVariables xây map biến prompt chung từ brief của campaign
func campaignVariables(campaign *campmodels.Campaign) map[string]interface{} {
	return map[string]interface{}{
		"title":          campaign.Title,
		"brief":          campaign.Brief,
		"targetAudience": campaign.TargetAudience,
		"tone":           campaign.Tone,
		"contentGoals":   strings.Join(campaign.ContentGoals, ", "),
	}
}

// revertIfGenerating đưa campaign về draft khi bước generate thất bại.
// Chỉ revert khi trạng thái trước lúc gọi completion là generating: campaign
// đã ở review (chạy lại idempotent) giữ nguyên review cùng version cũ.
func (s *GenerationService) revertIfGenerating(ctx context.Context, campaign *campmodels.Campaign, step string) {
	if campaign.Status != campmodels.StatusGenerating {
		return
	}
	s.revertToDraft(ctx, campaign.ID, step)
}

// revertToDraft đưa campaign về draft sau khi một bước generation thất bại.
// Lỗi revert chỉ log, lỗi gốc của bước generation vẫn được trả về caller.
func (s *GenerationService) revertToDraft(ctx context.Context, campaignID primitive.ObjectID, step string) {
	if _, err := s.campaignService.SetStatus(ctx, campaignID, campmodels.StatusDraft); err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"campaign_id": campaignID.Hex(),
			"step":        step,
			"error":       err.Error(),
		}).Error("[GENERATION] Không thể revert campaign về draft")
	}
}

// RunDebate chạy debate giữa các agent cho campaign.
// Thành công: danh sách interaction được thay thế nguyên khối và status chuyển
// sang generating trong một update. Thất bại: status về draft, danh sách
// interaction cũ giữ nguyên.
func (s *GenerationService) RunDebate(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) (campmodels.Campaign, error) {
	campaign, err := s.loadForWrite(ctx, caller, campaignID)
	if err != nil {
		return campmodels.Campaign{}, err
	}

	debating, err := campmodels.ApplyStatusEvent(campaign.Status, campmodels.EventBeginDebate)
	if err != nil {
		return campmodels.Campaign{}, err
	}
	if _, err := s.campaignService.SetStatus(ctx, campaignID, debating); err != nil {
		return campmodels.Campaign{}, err
	}

	template, err := s.templateService.FindByPurpose(ctx, models.PurposeDebate)
	if err != nil {
		s.revertToDraft(ctx, campaignID, "debate")
		return campmodels.Campaign{}, err
	}
	prompt, err := RenderPrompt(&template, campaignVariables(&campaign))
	if err != nil {
		s.revertToDraft(ctx, campaignID, "debate")
		return campmodels.Campaign{}, err
	}

	payload, err := s.client.CompleteJSON(ctx, prompt, &template)
	if err != nil {
		s.revertToDraft(ctx, campaignID, "debate")
		return campmodels.Campaign{}, err
	}

	interactions, err := parseInteractions(payload["turns"])
	if err != nil {
		s.revertToDraft(ctx, campaignID, "debate")
		return campmodels.Campaign{}, err
	}

	generating, err := campmodels.ApplyStatusEvent(debating, campmodels.EventDebateSucceeded)
	if err != nil {
		s.revertToDraft(ctx, campaignID, "debate")
		return campmodels.Campaign{}, err
	}

	updated, err := s.campaignService.ReplaceInteractions(ctx, campaignID, interactions, generating)
	if err != nil {
		s.revertToDraft(ctx, campaignID, "debate")
		return campmodels.Campaign{}, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID.Hex(),
		"turns":       len(interactions),
	}).Info("RunDebate: Debate hoàn thành")
	return updated, nil
}

// GenerateContent sinh snapshot nội dung đa định dạng đầy đủ cho campaign.
// Thành công: version mới và status review ghi trong MỘT update nguyên tử.
// Thất bại: status về draft, ledger version không đổi. Campaign đang ở review
// chạy lại bước này mà thất bại thì giữ nguyên review.
func (s *GenerationService) GenerateContent(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) (campmodels.Campaign, error) {
	campaign, err := s.loadForWrite(ctx, caller, campaignID)
	if err != nil {
		return campmodels.Campaign{}, err
	}

	// Kiểm tra trạng thái hợp lệ trước khi gọi completion
	review, err := campmodels.ApplyStatusEvent(campaign.Status, campmodels.EventGenerationSucceeded)
	if err != nil {
		return campmodels.Campaign{}, err
	}

	template, err := s.templateService.FindByPurpose(ctx, models.PurposeGenerate)
	if err != nil {
		s.revertIfGenerating(ctx, &campaign, "generate")
		return campmodels.Campaign{}, err
	}
	prompt, err := RenderPrompt(&template, campaignVariables(&campaign))
	if err != nil {
		s.revertIfGenerating(ctx, &campaign, "generate")
		return campmodels.Campaign{}, err
	}

	payload, err := s.client.CompleteJSON(ctx, prompt, &template)
	if err != nil {
		s.revertIfGenerating(ctx, &campaign, "generate")
		return campmodels.Campaign{}, err
	}

	rawContent, ok := payload["content"].(map[string]interface{})
	if !ok {
		s.revertIfGenerating(ctx, &campaign, "generate")
		return campmodels.Campaign{}, common.ErrGenerationSchema
	}
	snapshot, err := campmodels.ValidateSnapshotFragment(rawContent)
	if err != nil {
		s.revertIfGenerating(ctx, &campaign, "generate")
		return campmodels.Campaign{}, common.ErrGenerationSchema
	}

	// Bước sinh nội dung tạo snapshot độc lập đầy đủ, không merge từ version trước
	version := campmodels.ContentVersion{
		ID:            primitive.NewObjectID(),
		Timestamp:     time.Now().UnixMilli(),
		ActorName:     "AI Content Generator",
		ChangeSummary: "Sinh nội dung đa định dạng từ brief của chiến dịch",
		Snapshot:      snapshot,
	}

	updated, err := s.campaignService.AppendVersionAtomic(ctx, campaign, version, map[string]interface{}{
		"status": review,
	})
	if err != nil {
		s.revertIfGenerating(ctx, &campaign, "generate")
		return campmodels.Campaign{}, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": campaignID.Hex(),
		"formats":     len(snapshot),
	}).Info("GenerateContent: Đã sinh nội dung và append version")
	return updated, nil
}

// reviseWithTool dùng chung cho revise/translate/optimize: gọi completion trên
// một format rồi append version mới theo quy tắc merge, status giữ nguyên.
func (s *GenerationService) reviseWithTool(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, purpose string, format string, extraVars map[string]interface{}, actorName string, changeSummary string) (campmodels.Campaign, error) {
	campaign, err := s.loadForWrite(ctx, caller, campaignID)
	if err != nil {
		return campmodels.Campaign{}, err
	}

	latest := campaign.LatestVersion()
	if latest == nil {
		return campmodels.Campaign{}, common.NewError(common.ErrCodeValidationInput, "Campaign chưa có version nội dung nào", common.StatusBadRequest, nil)
	}
	sourceText, exists := latest.Snapshot[format]
	if !exists {
		return campmodels.Campaign{}, common.NewError(common.ErrCodeValidationInput, "Version hiện tại không có định dạng "+format, common.StatusBadRequest, nil)
	}

	variables := campaignVariables(&campaign)
	variables["format"] = format
	variables["sourceText"] = sourceText
	for name, value := range extraVars {
		variables[name] = value
	}

	template, err := s.templateService.FindByPurpose(ctx, purpose)
	if err != nil {
		return campmodels.Campaign{}, err
	}
	prompt, err := RenderPrompt(&template, variables)
	if err != nil {
		return campmodels.Campaign{}, err
	}

	payload, err := s.client.CompleteJSON(ctx, prompt, &template)
	if err != nil {
		return campmodels.Campaign{}, err
	}
	newText, ok := payload["text"].(string)
	if !ok || newText == "" {
		return campmodels.Campaign{}, common.ErrGenerationSchema
	}

	// Quy tắc merge-on-revise: kế thừa snapshot nguồn, chỉ ghi đè format đang sửa
	version := campmodels.ContentVersion{
		ID:            primitive.NewObjectID(),
		Timestamp:     time.Now().UnixMilli(),
		ActorName:     actorName,
		ChangeSummary: changeSummary,
		Snapshot:      campmodels.MergeSnapshot(latest.Snapshot, map[string]string{format: newText}),
	}

	return s.campaignService.AppendVersionAtomic(ctx, campaign, version, nil)
}

// ReviseFormat chỉnh sửa một định dạng theo yêu cầu tự do
func (s *GenerationService) ReviseFormat(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, format string, instruction string) (campmodels.Campaign, error) {
	return s.reviseWithTool(ctx, caller, campaignID, models.PurposeRevise, format,
		map[string]interface{}{"instruction": instruction},
		"AI Revision Tool", "Chỉnh sửa định dạng "+format)
}

// TranslateFormat dịch một định dạng sang ngôn ngữ khác
func (s *GenerationService) TranslateFormat(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, format string, targetLanguage string) (campmodels.Campaign, error) {
	return s.reviseWithTool(ctx, caller, campaignID, models.PurposeTranslate, format,
		map[string]interface{}{"targetLanguage": targetLanguage},
		"AI Translation Tool", "Dịch định dạng "+format+" sang "+targetLanguage)
}

// OptimizeFormat tối ưu một định dạng theo mục tiêu
func (s *GenerationService) OptimizeFormat(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, format string, goal string) (campmodels.Campaign, error) {
	return s.reviseWithTool(ctx, caller, campaignID, models.PurposeOptimize, format,
		map[string]interface{}{"goal": goal},
		"AI Optimization Tool", "Tối ưu định dạng "+format)
}

// PlanSchedule sinh lịch đăng bài và thay thế nguyên khối danh sách scheduled
// post. Chỉ hợp lệ khi campaign đang ở review; status giữ nguyên.
func (s *GenerationService) PlanSchedule(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) (campmodels.Campaign, error) {
	campaign, err := s.loadForWrite(ctx, caller, campaignID)
	if err != nil {
		return campmodels.Campaign{}, err
	}

	if _, err := campmodels.ApplyStatusEvent(campaign.Status, campmodels.EventSchedulePlanned); err != nil {
		return campmodels.Campaign{}, err
	}

	template, err := s.templateService.FindByPurpose(ctx, models.PurposeSchedule)
	if err != nil {
		return campmodels.Campaign{}, err
	}
	prompt, err := RenderPrompt(&template, campaignVariables(&campaign))
	if err != nil {
		return campmodels.Campaign{}, err
	}

	payload, err := s.client.CompleteJSON(ctx, prompt, &template)
	if err != nil {
		return campmodels.Campaign{}, err
	}

	posts, err := parseScheduledPosts(payload["posts"])
	if err != nil {
		return campmodels.Campaign{}, err
	}

	return s.campaignService.ReplaceSchedule(ctx, campaignID, posts)
}

// parseInteractions chuyển mảng turns từ completion thành []AgentInteraction.
// Phần tử không đúng hình dạng bị từ chối thay vì ghi dữ liệu méo vào campaign.
func parseInteractions(raw interface{}) ([]campmodels.AgentInteraction, error) {
	turns, ok := raw.([]interface{})
	if !ok || len(turns) == 0 {
		return nil, common.ErrGenerationSchema
	}

	now := time.Now().UnixMilli()
	interactions := make([]campmodels.AgentInteraction, 0, len(turns))
	for _, turn := range turns {
		entry, ok := turn.(map[string]interface{})
		if !ok {
			return nil, common.ErrGenerationSchema
		}
		actorName, _ := entry["actorName"].(string)
		role, _ := entry["role"].(string)
		message, _ := entry["message"].(string)
		if actorName == "" || message == "" {
			return nil, common.ErrGenerationSchema
		}
		interactions = append(interactions, campmodels.AgentInteraction{
			ActorName: actorName,
			Role:      role,
			Message:   message,
			Timestamp: now,
		})
	}
	return interactions, nil
}

// parseScheduledPosts chuyển mảng posts từ completion thành []ScheduledPost
func parseScheduledPosts(raw interface{}) ([]campmodels.ScheduledPost, error) {
	items, ok := raw.([]interface{})
	if !ok || len(items) == 0 {
		return nil, common.ErrGenerationSchema
	}

	posts := make([]campmodels.ScheduledPost, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, common.ErrGenerationSchema
		}
		format, _ := entry["format"].(string)
		platform, _ := entry["platform"].(string)
		description, _ := entry["description"].(string)
		if format == "" || platform == "" {
			return nil, common.ErrGenerationSchema
		}
		status, _ := entry["status"].(string)
		if status == "" {
			status = "draft"
		}
		posts = append(posts, campmodels.ScheduledPost{
			ID:          primitive.NewObjectID(),
			Format:      format,
			Platform:    platform,
			Description: description,
			ScheduledAt: parseTimestampMilli(entry["scheduledAt"]),
			Status:      status,
		})
	}
	return posts, nil
}

// parseTimestampMilli đọc timestamp từ giá trị JSON: số (unix milli) hoặc chuỗi RFC3339
func parseTimestampMilli(value interface{}) int64 {
	switch v := value.(type) {
	case float64:
		return int64(v)
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UnixMilli()
		}
	}
	return 0
}

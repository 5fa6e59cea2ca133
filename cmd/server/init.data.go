package main

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	aimodels "content_craft/internal/api/ai/models"
	aisvc "content_craft/internal/api/ai/service"
	authmodels "content_craft/internal/api/auth/models"
	authsvc "content_craft/internal/api/auth/service"
	"content_craft/internal/common"
	"content_craft/internal/global"
	"content_craft/internal/logger"
)

// InitDefaultData khởi tạo dữ liệu mặc định khi server chạy với INITMODE=true:
// tài khoản admin đầu tiên và bộ prompt template cho các bước generation.
func InitDefaultData() {
	log := logger.GetAppLogger()

	if !global.ServerConfig.InitMode {
		log.Info("[INIT] InitMode tắt, bỏ qua khởi tạo dữ liệu mặc định")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := initAdminUser(ctx); err != nil {
		log.Fatalf("Failed to initialize admin user: %v", err)
	}
	if err := initPromptTemplates(ctx); err != nil {
		log.Fatalf("Failed to initialize prompt templates: %v", err)
	}

	log.Info("[INIT] InitDefaultData completed successfully")
}

// initAdminUser tạo tài khoản admin đầu tiên từ ADMIN_EMAIL/ADMIN_PASSWORD.
// Đã có admin trong hệ thống thì không tạo thêm.
func initAdminUser(ctx context.Context) error {
	log := logger.GetAppLogger()

	userService, err := authsvc.NewUserService()
	if err != nil {
		return err
	}

	count, err := userService.CountDocuments(ctx, bson.M{"role": authmodels.RoleAdmin})
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("[INIT] Đã có tài khoản admin, bỏ qua khởi tạo")
		return nil
	}

	cfg := global.ServerConfig
	if cfg.Admin_Email == "" || cfg.Admin_Password == "" {
		log.Warn("[INIT] ADMIN_EMAIL/ADMIN_PASSWORD chưa cấu hình, bỏ qua tạo admin mặc định")
		return nil
	}

	salt, err := authsvc.GenerateSalt()
	if err != nil {
		return err
	}
	admin := authmodels.User{
		Name:     "Administrator",
		Email:    cfg.Admin_Email,
		Password: authsvc.HashPassword(cfg.Admin_Password, salt),
		Salt:     salt,
		Role:     authmodels.RoleAdmin,
	}
	if _, err := userService.InsertOne(ctx, admin); err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			log.Warnf("[INIT] Email %s đã tồn tại nhưng không phải admin, cần gán role thủ công", cfg.Admin_Email)
			return nil
		}
		return err
	}

	log.Infof("[INIT] Đã tạo tài khoản admin mặc định: %s", cfg.Admin_Email)
	return nil
}

// defaultPromptTemplates là bộ template khởi điểm cho từng bước generation.
// Admin chỉnh lại nội dung prompt qua API /ai/prompt-templates sau khi chạy lần đầu.
func defaultPromptTemplates() []aimodels.AIPromptTemplate {
	campaignVars := []aimodels.AIPromptTemplateVariable{
		{Name: "title", Description: "Tiêu đề chiến dịch", Required: true},
		{Name: "brief", Description: "Mô tả ngắn của chiến dịch", Required: true},
		{Name: "targetAudience", Description: "Đối tượng mục tiêu", Required: false},
		{Name: "tone", Description: "Tông giọng", Required: false, Default: "chuyên nghiệp"},
		{Name: "contentGoals", Description: "Mục tiêu nội dung", Required: false},
	}
	formatVars := append([]aimodels.AIPromptTemplateVariable{
		{Name: "format", Description: "Định dạng nội dung đang xử lý", Required: true},
		{Name: "sourceText", Description: "Nội dung nguồn của định dạng", Required: true},
	}, campaignVars...)

	return []aimodels.AIPromptTemplate{
		{
			Name:    "default-debate",
			Purpose: aimodels.PurposeDebate,
			Prompt: "Bạn điều phối một phiên thảo luận giữa ba agent (Strategist, Copywriter, Critic) về chiến dịch \"{{title}}\".\n" +
				"Brief: {{brief}}\nĐối tượng: {{targetAudience}}\nTông giọng: {{tone}}\nMục tiêu: {{contentGoals}}\n" +
				"Trả về JSON: {\"turns\": [{\"actorName\": string, \"role\": string, \"message\": string}]}",
			Variables: campaignVars,
			OutputSchema: []aimodels.OutputField{
				{Name: "turns", Kind: aimodels.KindArray, Required: true},
			},
		},
		{
			Name:    "default-generate",
			Purpose: aimodels.PurposeGenerate,
			Prompt: "Viết nội dung đa định dạng cho chiến dịch \"{{title}}\".\n" +
				"Brief: {{brief}}\nĐối tượng: {{targetAudience}}\nTông giọng: {{tone}}\nMục tiêu: {{contentGoals}}\n" +
				"Trả về JSON: {\"content\": {\"blogPost\": string, \"tweet\": string, \"linkedInPost\": string, \"instagramCaption\": string}}",
			Variables: campaignVars,
			OutputSchema: []aimodels.OutputField{
				{Name: "content", Kind: aimodels.KindObject, Required: true},
			},
		},
		{
			Name:    "default-revise",
			Purpose: aimodels.PurposeRevise,
			Prompt: "Chỉnh sửa nội dung {{format}} của chiến dịch \"{{title}}\" theo yêu cầu: {{instruction}}\n" +
				"Nội dung hiện tại:\n{{sourceText}}\n" +
				"Trả về JSON: {\"text\": string}",
			Variables: append([]aimodels.AIPromptTemplateVariable{
				{Name: "instruction", Description: "Yêu cầu chỉnh sửa", Required: true},
			}, formatVars...),
			OutputSchema: []aimodels.OutputField{
				{Name: "text", Kind: aimodels.KindString, Required: true},
			},
		},
		{
			Name:    "default-translate",
			Purpose: aimodels.PurposeTranslate,
			Prompt: "Dịch nội dung {{format}} của chiến dịch \"{{title}}\" sang {{targetLanguage}}, giữ nguyên tông giọng {{tone}}.\n" +
				"Nội dung hiện tại:\n{{sourceText}}\n" +
				"Trả về JSON: {\"text\": string}",
			Variables: append([]aimodels.AIPromptTemplateVariable{
				{Name: "targetLanguage", Description: "Ngôn ngữ đích", Required: true},
			}, formatVars...),
			OutputSchema: []aimodels.OutputField{
				{Name: "text", Kind: aimodels.KindString, Required: true},
			},
		},
		{
			Name:    "default-optimize",
			Purpose: aimodels.PurposeOptimize,
			Prompt: "Tối ưu nội dung {{format}} của chiến dịch \"{{title}}\" cho mục tiêu: {{goal}}\n" +
				"Nội dung hiện tại:\n{{sourceText}}\n" +
				"Trả về JSON: {\"text\": string}",
			Variables: append([]aimodels.AIPromptTemplateVariable{
				{Name: "goal", Description: "Mục tiêu tối ưu (SEO, engagement, ...)", Required: true},
			}, formatVars...),
			OutputSchema: []aimodels.OutputField{
				{Name: "text", Kind: aimodels.KindString, Required: true},
			},
		},
		{
			Name:    "default-schedule",
			Purpose: aimodels.PurposeSchedule,
			Prompt: "Lập lịch đăng bài cho chiến dịch \"{{title}}\" với mục tiêu: {{contentGoals}}\n" +
				"Trả về JSON: {\"posts\": [{\"format\": string, \"platform\": string, \"description\": string, \"scheduledAt\": string RFC3339}]}",
			Variables: campaignVars,
			OutputSchema: []aimodels.OutputField{
				{Name: "posts", Kind: aimodels.KindArray, Required: true},
			},
		},
	}
}

// initPromptTemplates tạo prompt template mặc định cho bước nào chưa có template
func initPromptTemplates(ctx context.Context) error {
	log := logger.GetAppLogger()

	templateService, err := aisvc.NewAIPromptTemplateService()
	if err != nil {
		return err
	}

	for _, template := range defaultPromptTemplates() {
		count, err := templateService.CountDocuments(ctx, bson.M{"purpose": template.Purpose})
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if _, err := templateService.InsertOne(ctx, template); err != nil {
			return err
		}
		log.Infof("[INIT] Đã tạo prompt template mặc định cho bước %s", template.Purpose)
	}

	return nil
}

package aisvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"

	models "content_craft/internal/api/ai/models"
	basesvc "content_craft/internal/api/base/service"
	"content_craft/internal/common"
	"content_craft/internal/global"
)

// AIPromptTemplateService là service quản lý AI prompt templates
type AIPromptTemplateService struct {
	basesvc.BaseServiceMongo[models.AIPromptTemplate]
}

// NewAIPromptTemplateService tạo mới AIPromptTemplateService
func NewAIPromptTemplateService() (*AIPromptTemplateService, error) {
	collection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.AIPromptTemplates)
	if !exist {
		return nil, fmt.Errorf("failed to get ai_prompt_templates collection: %v", common.ErrNotFound)
	}
	return &AIPromptTemplateService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[models.AIPromptTemplate](collection),
	}, nil
}

// FindByPurpose lấy template đang dùng cho một bước generation
func (s *AIPromptTemplateService) FindByPurpose(ctx context.Context, purpose string) (models.AIPromptTemplate, error) {
	template, err := s.BaseServiceMongo.FindOne(ctx, bson.M{"purpose": purpose}, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return models.AIPromptTemplate{}, common.NewError(
				common.ErrCodeGenerationCall,
				fmt.Sprintf("Chưa cấu hình prompt template cho bước %s", purpose),
				common.StatusBadGateway,
				nil,
			)
		}
		return models.AIPromptTemplate{}, err
	}
	return template, nil
}

// RenderPrompt render prompt template với variables truyền vào.
// Biến bắt buộc thiếu và không có giá trị mặc định trả về lỗi validation.
func RenderPrompt(template *models.AIPromptTemplate, variables map[string]interface{}) (string, error) {
	if template == nil {
		return "", common.NewError(common.ErrCodeValidationInput, "Template không được nil", common.StatusBadRequest, nil)
	}
	renderedPrompt := template.Prompt
	for _, variable := range template.Variables {
		value, exists := variables[variable.Name]
		if !exists {
			if variable.Default != "" {
				value = variable.Default
			} else if variable.Required {
				return "", common.NewError(
					common.ErrCodeValidationInput,
					fmt.Sprintf("Thiếu biến bắt buộc '%s' của template %s", variable.Name, template.Name),
					common.StatusBadRequest,
					nil,
				)
			} else {
				value = ""
			}
		}
		placeholder := "{{" + variable.Name + "}}"
		renderedPrompt = strings.ReplaceAll(renderedPrompt, placeholder, fmt.Sprintf("%v", value))
	}
	return renderedPrompt, nil
}

package aihdl

import (
	"fmt"

	aidto "content_craft/internal/api/ai/dto"
	aimodels "content_craft/internal/api/ai/models"
	aisvc "content_craft/internal/api/ai/service"
	basehdl "content_craft/internal/api/base/handler"
)

// AIPromptTemplateHandler xử lý CRUD cho prompt template
type AIPromptTemplateHandler struct {
	*basehdl.BaseHandler[aimodels.AIPromptTemplate, aidto.AIPromptTemplateCreateInput, aidto.AIPromptTemplateUpdateInput]
	AIPromptTemplateService *aisvc.AIPromptTemplateService
}

// NewAIPromptTemplateHandler tạo mới AIPromptTemplateHandler
func NewAIPromptTemplateHandler() (*AIPromptTemplateHandler, error) {
	aiPromptTemplateService, err := aisvc.NewAIPromptTemplateService()
	if err != nil {
		return nil, fmt.Errorf("failed to create AI prompt template service: %v", err)
	}

	hdl := &AIPromptTemplateHandler{
		AIPromptTemplateService: aiPromptTemplateService,
	}
	hdl.BaseHandler = basehdl.NewBaseHandler[aimodels.AIPromptTemplate, aidto.AIPromptTemplateCreateInput, aidto.AIPromptTemplateUpdateInput](aiPromptTemplateService.BaseServiceMongo)

	return hdl, nil
}

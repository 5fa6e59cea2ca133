// Package aihdl - handler HTTP cho các bước generation.
package aihdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	aidto "content_craft/internal/api/ai/dto"
	aisvc "content_craft/internal/api/ai/service"
	authmodels "content_craft/internal/api/auth/models"
	basehdl "content_craft/internal/api/base/handler"
	"content_craft/internal/common"
)

// GenerationHandler xử lý các request chạy bước generation trên campaign
type GenerationHandler struct {
	*basehdl.BaseHandler[interface{}, interface{}, interface{}]
	generationService *aisvc.GenerationService
}

// NewGenerationHandler tạo mới GenerationHandler
func NewGenerationHandler() (*GenerationHandler, error) {
	generationService, err := aisvc.NewGenerationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %v", err)
	}
	return &GenerationHandler{
		BaseHandler:       &basehdl.BaseHandler[interface{}, interface{}, interface{}]{},
		generationService: generationService,
	}, nil
}

// requestContext lấy caller và campaign ID từ request
func (h *GenerationHandler) requestContext(c fiber.Ctx) (*authmodels.User, primitive.ObjectID, error) {
	user, ok := c.Locals("user").(authmodels.User)
	if !ok {
		return nil, primitive.NilObjectID, common.ErrTokenMissing
	}
	id := c.Params("id")
	if id == "" || !primitive.IsValidObjectID(id) {
		return nil, primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID campaign không hợp lệ", common.StatusBadRequest, nil)
	}
	campaignID, _ := primitive.ObjectIDFromHex(id)
	return &user, campaignID, nil
}

// HandleRunDebate chạy debate giữa các agent cho campaign
func (h *GenerationHandler) HandleRunDebate(c fiber.Ctx) error {
	caller, campaignID, err := h.requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.generationService.RunDebate(c.Context(), caller, campaignID)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleGenerateContent sinh nội dung đa định dạng cho campaign
func (h *GenerationHandler) HandleGenerateContent(c fiber.Ctx) error {
	caller, campaignID, err := h.requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.generationService.GenerateContent(c.Context(), caller, campaignID)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleRevise chỉnh sửa một định dạng nội dung theo yêu cầu
func (h *GenerationHandler) HandleRevise(c fiber.Ctx) error {
	caller, campaignID, err := h.requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input aidto.ReviseInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.generationService.ReviseFormat(c.Context(), caller, campaignID, input.Format, input.Instruction)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleTranslate dịch một định dạng nội dung sang ngôn ngữ khác
func (h *GenerationHandler) HandleTranslate(c fiber.Ctx) error {
	caller, campaignID, err := h.requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input aidto.TranslateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.generationService.TranslateFormat(c.Context(), caller, campaignID, input.Format, input.TargetLanguage)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleOptimize tối ưu một định dạng nội dung theo mục tiêu
func (h *GenerationHandler) HandleOptimize(c fiber.Ctx) error {
	caller, campaignID, err := h.requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input aidto.OptimizeInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.generationService.OptimizeFormat(c.Context(), caller, campaignID, input.Format, input.Goal)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandlePlanSchedule sinh lịch đăng bài cho campaign đang ở review
func (h *GenerationHandler) HandlePlanSchedule(c fiber.Ctx) error {
	caller, campaignID, err := h.requestContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.generationService.PlanSchedule(c.Context(), caller, campaignID)
	h.HandleResponse(c, campaign, err)
	return nil
}

// Package feedbackhdl - handler HTTP cho domain feedback.
package feedbackhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_craft/internal/api/auth/models"
	basehdl "content_craft/internal/api/base/handler"
	feedbackdto "content_craft/internal/api/feedback/dto"
	models "content_craft/internal/api/feedback/models"
	feedbacksvc "content_craft/internal/api/feedback/service"
	"content_craft/internal/common"
)

// FeedbackHandler xử lý các request đánh giá nội dung
type FeedbackHandler struct {
	*basehdl.BaseHandler[models.UserFeedback, feedbackdto.FeedbackCreateInput, feedbackdto.FeedbackCreateInput]
	feedbackService *feedbacksvc.FeedbackService
}

// NewFeedbackHandler tạo instance mới của FeedbackHandler
func NewFeedbackHandler() (*FeedbackHandler, error) {
	feedbackService, err := feedbacksvc.NewFeedbackService()
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.UserFeedback, feedbackdto.FeedbackCreateInput, feedbackdto.FeedbackCreateInput](feedbackService)
	return &FeedbackHandler{
		BaseHandler:     baseHandler,
		feedbackService: feedbackService,
	}, nil
}

func callerFromContext(c fiber.Ctx) (*authmodels.User, error) {
	user, ok := c.Locals("user").(authmodels.User)
	if !ok {
		return nil, common.ErrTokenMissing
	}
	return &user, nil
}

// HandleCreate ghi nhận đánh giá mới, đánh giá trùng trả về lỗi conflict
func (h *FeedbackHandler) HandleCreate(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input feedbackdto.FeedbackCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	feedback, err := h.feedbackService.Create(c.Context(), caller, &input)
	h.HandleResponse(c, feedback, err)
	return nil
}

// HandleListForCampaign liệt kê feedback của một campaign
func (h *FeedbackHandler) HandleListForCampaign(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	id := c.Params("id")
	if id == "" || !primitive.IsValidObjectID(id) {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID campaign không hợp lệ", common.StatusBadRequest, nil))
		return nil
	}
	campaignID, _ := primitive.ObjectIDFromHex(id)
	feedbacks, err := h.feedbackService.ListForCampaign(c.Context(), caller, campaignID)
	h.HandleResponse(c, feedbacks, err)
	return nil
}

// HandleDelete xóa một feedback của chính mình (admin xóa được mọi feedback)
func (h *FeedbackHandler) HandleDelete(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	id := c.Params("id")
	if id == "" || !primitive.IsValidObjectID(id) {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID feedback không hợp lệ", common.StatusBadRequest, nil))
		return nil
	}
	feedbackID, _ := primitive.ObjectIDFromHex(id)
	err = h.feedbackService.Delete(c.Context(), caller, feedbackID)
	h.HandleResponse(c, nil, err)
	return nil
}

// Package campaignhdl - handler HTTP cho domain campaign.
package campaignhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_craft/internal/api/auth/models"
	basehdl "content_craft/internal/api/base/handler"
	campaigndto "content_craft/internal/api/campaign/dto"
	models "content_craft/internal/api/campaign/models"
	campaignsvc "content_craft/internal/api/campaign/service"
	"content_craft/internal/common"
	"content_craft/internal/logger"
)

// CampaignHandler xử lý các request CRUD và version ledger của campaign
type CampaignHandler struct {
	*basehdl.BaseHandler[models.Campaign, campaigndto.CampaignCreateInput, campaigndto.CampaignUpdateInput]
	campaignService *campaignsvc.CampaignService
}

// NewCampaignHandler tạo instance mới của CampaignHandler
func NewCampaignHandler() (*CampaignHandler, error) {
	campaignService, err := campaignsvc.NewCampaignService()
	if err != nil {
		return nil, fmt.Errorf("failed to create campaign service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Campaign, campaigndto.CampaignCreateInput, campaigndto.CampaignUpdateInput](campaignService)
	return &CampaignHandler{
		BaseHandler:     baseHandler,
		campaignService: campaignService,
	}, nil
}

// callerFromContext lấy user đã xác thực từ context (do AuthMiddleware đặt vào)
func callerFromContext(c fiber.Ctx) (*authmodels.User, error) {
	user, ok := c.Locals("user").(authmodels.User)
	if !ok {
		return nil, common.ErrTokenMissing
	}
	return &user, nil
}

// campaignIDFromContext parse ID campaign từ URI params
func campaignIDFromContext(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if id == "" || !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "ID campaign không hợp lệ", common.StatusBadRequest, nil)
	}
	return primitive.ObjectIDFromHex(id)
}

// HandleCreate tạo campaign mới với trạng thái draft
func (h *CampaignHandler) HandleCreate(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input campaigndto.CampaignCreateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.campaignService.Create(c.Context(), caller, &input)
	if err == nil {
		logger.LogCRUD("create", "campaign", campaign.ID.Hex(), c, nil)
	}
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleGet lấy một campaign theo ID
func (h *CampaignHandler) HandleGet(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaignID, err := campaignIDFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.campaignService.Get(c.Context(), caller, campaignID)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleList liệt kê campaign theo phạm vi quyền của caller (có phân trang)
func (h *CampaignHandler) HandleList(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	page, limit := h.ParsePagination(c)
	result, err := h.campaignService.List(c.Context(), caller, page, limit)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleUpdate cập nhật các field biên tập được của campaign
func (h *CampaignHandler) HandleUpdate(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaignID, err := campaignIDFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input campaigndto.CampaignUpdateInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.campaignService.Update(c.Context(), caller, campaignID, &input)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleDelete xóa campaign, cascade xóa feedback liên quan
func (h *CampaignHandler) HandleDelete(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaignID, err := campaignIDFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	err = h.campaignService.Delete(c.Context(), caller, campaignID)
	if err == nil {
		logger.LogCRUD("delete", "campaign", campaignID.Hex(), c, nil)
	}
	h.HandleResponse(c, nil, err)
	return nil
}

// HandleChangeStatus áp dụng sự kiện trạng thái tường minh (publish/archive/reactivate)
func (h *CampaignHandler) HandleChangeStatus(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaignID, err := campaignIDFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input campaigndto.CampaignStatusInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.campaignService.ChangeStatus(c.Context(), caller, campaignID, input.Event)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleAppendVersion append version thủ công (human edit) vào ledger
func (h *CampaignHandler) HandleAppendVersion(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaignID, err := campaignIDFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	var input campaigndto.AppendVersionInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	// Parse-don't-trust: giá trị không phải chuỗi trong snapshot bị từ chối
	fragment, err := models.ValidateSnapshotFragment(input.Snapshot)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.campaignService.AppendVersion(c.Context(), caller, campaignID, input.ActorName, input.ChangeSummary, fragment, input.Merge)
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleListVersions liệt kê ledger version theo versionNumber tăng dần
func (h *CampaignHandler) HandleListVersions(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaignID, err := campaignIDFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	versions, err := h.campaignService.ListVersions(c.Context(), caller, campaignID)
	h.HandleResponse(c, versions, err)
	return nil
}

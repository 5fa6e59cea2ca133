package campaignhdl

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/gofiber/fiber/v3"

	campaigndto "content_craft/internal/api/campaign/dto"
	"content_craft/internal/common"
	"content_craft/internal/logger"
)

// HandleSetCampaignFlag gắn/bỏ cờ kiểm duyệt cấp campaign (chỉ admin)
func (h *CampaignHandler) HandleSetCampaignFlag(c fiber.Ctx) error {
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
	var input campaigndto.SetCampaignFlagInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	campaign, err := h.campaignService.SetCampaignFlag(c.Context(), caller, campaignID, *input.IsFlagged, input.Notes)
	if err == nil {
		logger.LogModeration("set_campaign_flag", campaignID.Hex(), c, map[string]interface{}{
			"is_flagged": *input.IsFlagged,
		})
	}
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleSetVersionFlag gắn/bỏ cờ kiểm duyệt cho một version trong ledger (chỉ admin)
func (h *CampaignHandler) HandleSetVersionFlag(c fiber.Ctx) error {
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
	var input campaigndto.SetVersionFlagInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	if !primitive.IsValidObjectID(input.VersionID) {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "ID version không hợp lệ", common.StatusBadRequest, nil))
		return nil
	}
	versionID, _ := primitive.ObjectIDFromHex(input.VersionID)

	campaign, err := h.campaignService.SetVersionFlag(c.Context(), caller, campaignID, versionID, *input.IsFlagged, input.Notes)
	if err == nil {
		logger.LogModeration("set_version_flag", campaignID.Hex(), c, map[string]interface{}{
			"version_id": input.VersionID,
			"is_flagged": *input.IsFlagged,
		})
	}
	h.HandleResponse(c, campaign, err)
	return nil
}

// HandleListFlaggedVersions liệt kê mọi version bị gắn cờ trên toàn bộ campaign (chỉ admin)
func (h *CampaignHandler) HandleListFlaggedVersions(c fiber.Ctx) error {
	caller, err := callerFromContext(c)
	if err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	entries, err := h.campaignService.ListFlaggedVersionsAcrossCampaigns(c.Context(), caller)
	h.HandleResponse(c, entries, err)
	return nil
}

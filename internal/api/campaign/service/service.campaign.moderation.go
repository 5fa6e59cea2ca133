package campaignsvc

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_craft/internal/api/auth/models"
	basesvc "content_craft/internal/api/base/service"
	models "content_craft/internal/api/campaign/models"
	"content_craft/internal/common"
	"content_craft/internal/logger"
	"content_craft/internal/notification"
)

// FlaggedVersionEntry là một version bị gắn cờ kèm thông tin campaign cha
type FlaggedVersionEntry struct {
	CampaignID    primitive.ObjectID    `json:"campaignId"`
	CampaignTitle string                `json:"campaignTitle"`
	OwnerID       primitive.ObjectID    `json:"ownerId"`
	Version       models.ContentVersion `json:"version"`
}

// SetCampaignFlag gắn/bỏ cờ kiểm duyệt cấp campaign. Chỉ admin.
// Ghi chú truyền tường minh luôn được giữ; bỏ cờ mà không truyền ghi chú
// thì xóa ghi chú về rỗng.
func (s *CampaignService) SetCampaignFlag(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, isFlagged bool, notes *string) (models.Campaign, error) {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return models.Campaign{}, err
	}
	if err := s.Authorize(caller, &campaign, ActionModerate); err != nil {
		return models.Campaign{}, err
	}

	resolved := models.ResolveModerationNotes(campaign.AdminModerationNotes, isFlagged, notes)
	updated, err := s.BaseServiceMongo.UpdateById(ctx, campaignID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"isFlagged":            isFlagged,
			"adminModerationNotes": resolved,
		},
	})
	if err != nil {
		return models.Campaign{}, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"admin_id":    caller.ID.Hex(),
		"campaign_id": campaignID.Hex(),
		"is_flagged":  isFlagged,
		"notes":       resolved,
	}).Info("Moderation: Đã cập nhật cờ kiểm duyệt campaign")

	if isFlagged {
		notification.SendModerationAlert(
			"Campaign bị gắn cờ kiểm duyệt",
			fmt.Sprintf("Campaign %s (%s) đã bị gắn cờ.\nGhi chú: %s", updated.Title, campaignID.Hex(), resolved),
		)
	}
	return updated, nil
}

// SetVersionFlag gắn/bỏ cờ kiểm duyệt cho một version trong ledger. Chỉ admin.
// Version không tồn tại trả về lỗi not found và campaign không bị thay đổi.
func (s *CampaignService) SetVersionFlag(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, versionID primitive.ObjectID, isFlagged bool, notes *string) (models.Campaign, error) {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return models.Campaign{}, err
	}
	if err := s.Authorize(caller, &campaign, ActionModerate); err != nil {
		return models.Campaign{}, err
	}

	_, version := campaign.FindVersion(versionID)
	if version == nil {
		return models.Campaign{}, common.ErrVersionNotFound
	}

	// Positional update chỉ chạm vào overlay của đúng version khớp filter,
	// snapshot và các version khác giữ nguyên
	resolved := models.ResolveModerationNotes(version.AdminModerationNotes, isFlagged, notes)
	filter := bson.M{"_id": campaignID, "versions._id": versionID}
	updated, err := s.BaseServiceMongo.FindOneAndUpdate(ctx, filter, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"versions.$.isFlagged":            isFlagged,
			"versions.$.adminModerationNotes": resolved,
		},
	}, nil)
	if err != nil {
		// Filter trượt khi document đổi giữa lần đọc và update: version
		// không còn khớp, trả về cùng lỗi với trường hợp version không tồn tại
		if errors.Is(err, common.ErrNotFound) {
			return models.Campaign{}, common.ErrVersionNotFound
		}
		return models.Campaign{}, err
	}

	logger.GetAuditLogger().WithFields(logrus.Fields{
		"admin_id":    caller.ID.Hex(),
		"campaign_id": campaignID.Hex(),
		"version_id":  versionID.Hex(),
		"is_flagged":  isFlagged,
		"notes":       resolved,
	}).Info("Moderation: Đã cập nhật cờ kiểm duyệt version")

	if isFlagged {
		notification.SendModerationAlert(
			"Phiên bản nội dung bị gắn cờ kiểm duyệt",
			fmt.Sprintf("Version %d của campaign %s (%s) đã bị gắn cờ.\nGhi chú: %s", version.VersionNumber, updated.Title, campaignID.Hex(), resolved),
		)
	}
	return updated, nil
}

// ListFlaggedVersionsAcrossCampaigns quét toàn bộ collection, trả về mọi
// version đang bị gắn cờ kèm id/title/owner của campaign cha, sắp xếp theo
// timestamp của version giảm dần. Chỉ admin.
func (s *CampaignService) ListFlaggedVersionsAcrossCampaigns(ctx context.Context, caller *authmodels.User) ([]FlaggedVersionEntry, error) {
	if caller == nil || !caller.IsAdmin() {
		return nil, common.ErrAdminRequired
	}

	campaigns, err := s.BaseServiceMongo.Find(ctx, bson.M{"versions.isFlagged": true}, nil)
	if err != nil {
		return nil, err
	}
	return CollectFlaggedVersions(campaigns), nil
}

// CollectFlaggedVersions gom các version bị gắn cờ từ danh sách campaign,
// kèm id/title/owner của campaign cha, sắp xếp theo timestamp giảm dần
func CollectFlaggedVersions(campaigns []models.Campaign) []FlaggedVersionEntry {
	entries := []FlaggedVersionEntry{}
	for _, campaign := range campaigns {
		for _, version := range campaign.Versions {
			if !version.IsFlagged {
				continue
			}
			entries = append(entries, FlaggedVersionEntry{
				CampaignID:    campaign.ID,
				CampaignTitle: campaign.Title,
				OwnerID:       campaign.OwnerID,
				Version:       version,
			})
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Version.Timestamp > entries[j].Version.Timestamp
	})
	return entries
}

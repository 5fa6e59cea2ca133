// Package campaignsvc - service quản lý campaign: CRUD, phân quyền,
// thay đổi trạng thái tường minh và cascade xóa feedback.
package campaignsvc

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_craft/internal/api/auth/models"
	basemodels "content_craft/internal/api/base/models"
	basesvc "content_craft/internal/api/base/service"
	campaigndto "content_craft/internal/api/campaign/dto"
	models "content_craft/internal/api/campaign/models"
	feedbackmodels "content_craft/internal/api/feedback/models"
	"content_craft/internal/common"
	"content_craft/internal/global"
	"content_craft/internal/logger"
)

// Action định nghĩa các hành động cần kiểm tra quyền trên campaign
const (
	ActionRead     = "read"     // Xem campaign và versions
	ActionWrite    = "write"    // Sửa, append version, chạy generation, xóa
	ActionModerate = "moderate" // Gắn/bỏ cờ kiểm duyệt (chỉ admin)
)

// CampaignService là service quản lý campaign.
// Tầng lưu trữ nằm sau interface BaseServiceMongo để các nhánh retry/guard
// kiểm thử được bằng store giả lập.
type CampaignService struct {
	basesvc.BaseServiceMongo[models.Campaign]
	feedbackCRUD basesvc.BaseServiceMongo[feedbackmodels.UserFeedback]
}

// NewCampaignService tạo mới CampaignService
func NewCampaignService() (*CampaignService, error) {
	campaignCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Campaigns)
	if !exist {
		return nil, fmt.Errorf("failed to get campaigns collection: %v", common.ErrNotFound)
	}
	feedbackCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UserFeedbacks)
	if !exist {
		return nil, fmt.Errorf("failed to get user_feedbacks collection: %v", common.ErrNotFound)
	}
	return &CampaignService{
		BaseServiceMongo: basesvc.NewBaseServiceMongo[models.Campaign](campaignCollection),
		feedbackCRUD:     basesvc.NewBaseServiceMongo[feedbackmodels.UserFeedback](feedbackCollection),
	}, nil
}

// Authorize là điểm kiểm tra quyền duy nhất cho mọi thao tác trên campaign.
// Admin thao tác được trên mọi campaign; người dùng thường chỉ trên campaign
// mình sở hữu; campaign public cho phép người khác đọc; viewer chỉ đọc.
func (s *CampaignService) Authorize(caller *authmodels.User, campaign *models.Campaign, action string) error {
	if caller == nil {
		return common.ErrTokenMissing
	}
	if caller.IsAdmin() {
		return nil
	}

	switch action {
	case ActionModerate:
		return common.ErrAdminRequired

	case ActionRead:
		if campaign.OwnerID == caller.ID {
			return nil
		}
		if campaign.IsPrivate {
			return common.ErrNotOwner
		}
		return nil

	case ActionWrite:
		if campaign.OwnerID != caller.ID {
			return common.ErrNotOwner
		}
		if !caller.CanWrite() {
			return common.ErrEditorRequired
		}
		return nil
	}

	return common.ErrNotOwner
}

// Create tạo campaign mới với trạng thái draft
func (s *CampaignService) Create(ctx context.Context, caller *authmodels.User, input *campaigndto.CampaignCreateInput) (models.Campaign, error) {
	if !caller.CanWrite() {
		return models.Campaign{}, common.ErrEditorRequired
	}

	campaign := models.Campaign{
		OwnerID:        caller.ID,
		Title:          input.Title,
		Brief:          input.Brief,
		TargetAudience: input.TargetAudience,
		Tone:           input.Tone,
		ContentGoals:   input.ContentGoals,
		BrandProfile:   input.BrandProfile,
		IsPrivate:      input.IsPrivate,
		Status:         models.StatusDraft,
		Versions:       []models.ContentVersion{},
		Interactions:   []models.AgentInteraction{},
		ScheduledPosts: []models.ScheduledPost{},
	}

	created, err := s.BaseServiceMongo.InsertOne(ctx, campaign)
	if err != nil {
		return models.Campaign{}, err
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id": created.ID.Hex(),
		"owner_id":    caller.ID.Hex(),
	}).Info("Create: Đã tạo campaign mới")
	return created, nil
}

// Get lấy một campaign theo ID với kiểm tra quyền đọc
func (s *CampaignService) Get(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) (models.Campaign, error) {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return models.Campaign{}, err
	}
	if err := s.Authorize(caller, &campaign, ActionRead); err != nil {
		return models.Campaign{}, err
	}
	return campaign, nil
}

// List liệt kê campaign theo phạm vi quyền của caller.
// Admin thấy tất cả; người dùng thường thấy campaign của mình và campaign public.
func (s *CampaignService) List(ctx context.Context, caller *authmodels.User, page int64, limit int64) (*basemodels.PaginateResult[models.Campaign], error) {
	var filter interface{}
	if caller.IsAdmin() {
		filter = bson.M{}
	} else {
		filter = bson.M{"$or": []bson.M{
			{"ownerId": caller.ID},
			{"isPrivate": false},
		}}
	}
	return s.BaseServiceMongo.FindWithPagination(ctx, filter, page, limit, nil)
}

// Update cập nhật các field biên tập được (title/brief/audience/tone/goals).
// Status, versions và moderation không đổi qua đường này.
func (s *CampaignService) Update(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, input *campaigndto.CampaignUpdateInput) (models.Campaign, error) {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return models.Campaign{}, err
	}
	if err := s.Authorize(caller, &campaign, ActionWrite); err != nil {
		return models.Campaign{}, err
	}

	set := map[string]interface{}{}
	if input.Title != "" {
		set["title"] = input.Title
	}
	if input.Brief != "" {
		set["brief"] = input.Brief
	}
	if input.TargetAudience != "" {
		set["targetAudience"] = input.TargetAudience
	}
	if input.Tone != "" {
		set["tone"] = input.Tone
	}
	if input.ContentGoals != nil {
		set["contentGoals"] = input.ContentGoals
	}
	if len(set) == 0 {
		return campaign, nil
	}

	return s.BaseServiceMongo.UpdateById(ctx, campaignID, &basesvc.UpdateData{Set: set})
}

// ChangeStatus áp dụng một sự kiện trạng thái tường minh (publish/archive/reactivate)
func (s *CampaignService) ChangeStatus(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, event string) (models.Campaign, error) {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return models.Campaign{}, err
	}
	if err := s.Authorize(caller, &campaign, ActionWrite); err != nil {
		return models.Campaign{}, err
	}

	next, err := models.ApplyStatusEvent(campaign.Status, event)
	if err != nil {
		return models.Campaign{}, err
	}
	if next == campaign.Status {
		return campaign, nil
	}

	return s.BaseServiceMongo.UpdateById(ctx, campaignID, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": next},
	})
}

// Delete xóa campaign và cascade xóa toàn bộ feedback tham chiếu đến nó
func (s *CampaignService) Delete(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) error {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return err
	}
	if err := s.Authorize(caller, &campaign, ActionWrite); err != nil {
		return err
	}

	if err := s.BaseServiceMongo.DeleteById(ctx, campaignID); err != nil {
		return err
	}

	deleted, err := s.feedbackCRUD.DeleteMany(ctx, bson.M{"campaignId": campaignID})
	if err != nil {
		// Campaign đã xóa, feedback mồ côi chỉ log lại chứ không fail request
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"campaign_id": campaignID.Hex(),
			"error":       err.Error(),
		}).Error("Delete: Không thể cascade xóa feedback")
		return nil
	}

	logrus.WithFields(logrus.Fields{
		"campaign_id":      campaignID.Hex(),
		"feedback_deleted": deleted,
	}).Info("Delete: Đã xóa campaign và feedback liên quan")
	return nil
}

// Package feedbacksvc - service quản lý đánh giá của người dùng.
package feedbacksvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_craft/internal/api/auth/models"
	basesvc "content_craft/internal/api/base/service"
	campaignsvc "content_craft/internal/api/campaign/service"
	feedbackdto "content_craft/internal/api/feedback/dto"
	models "content_craft/internal/api/feedback/models"
	"content_craft/internal/common"
	"content_craft/internal/global"
)

// FeedbackService là service quản lý feedback
type FeedbackService struct {
	*basesvc.BaseServiceMongoImpl[models.UserFeedback]
	campaignService *campaignsvc.CampaignService
}

// NewFeedbackService tạo mới FeedbackService
func NewFeedbackService() (*FeedbackService, error) {
	feedbackCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.UserFeedbacks)
	if !exist {
		return nil, fmt.Errorf("failed to get user_feedbacks collection: %v", common.ErrNotFound)
	}
	campaignService, err := campaignsvc.NewCampaignService()
	if err != nil {
		return nil, err
	}
	return &FeedbackService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.UserFeedback](feedbackCollection),
		campaignService:      campaignService,
	}, nil
}

// Create ghi nhận đánh giá của caller cho một version/format.
// Unique index chặn đánh giá trùng (user, campaign, version, format),
// insert trùng trả về lỗi conflict.
func (s *FeedbackService) Create(ctx context.Context, caller *authmodels.User, input *feedbackdto.FeedbackCreateInput) (models.UserFeedback, error) {
	if !primitive.IsValidObjectID(input.CampaignID) {
		return models.UserFeedback{}, common.NewError(common.ErrCodeValidationFormat, "ID campaign không hợp lệ", common.StatusBadRequest, nil)
	}
	campaignID, _ := primitive.ObjectIDFromHex(input.CampaignID)

	// Campaign phải tồn tại và caller phải đọc được nó
	campaign, err := s.campaignService.Get(ctx, caller, campaignID)
	if err != nil {
		return models.UserFeedback{}, err
	}

	feedback := models.UserFeedback{
		UserID:     caller.ID,
		CampaignID: campaignID,
		Format:     input.Format,
		Rating:     input.Rating,
	}
	if input.VersionID != "" {
		if !primitive.IsValidObjectID(input.VersionID) {
			return models.UserFeedback{}, common.NewError(common.ErrCodeValidationFormat, "ID version không hợp lệ", common.StatusBadRequest, nil)
		}
		versionID, _ := primitive.ObjectIDFromHex(input.VersionID)
		if _, version := campaign.FindVersion(versionID); version == nil {
			return models.UserFeedback{}, common.ErrVersionNotFound
		}
		feedback.VersionID = &versionID
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, feedback)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return models.UserFeedback{}, common.ErrDuplicateFeedback
		}
		return models.UserFeedback{}, err
	}
	return created, nil
}

// ListForCampaign liệt kê feedback của một campaign (caller phải đọc được campaign)
func (s *FeedbackService) ListForCampaign(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) ([]models.UserFeedback, error) {
	if _, err := s.campaignService.Get(ctx, caller, campaignID); err != nil {
		return nil, err
	}
	feedbacks, err := s.BaseServiceMongoImpl.Find(ctx, bson.M{"campaignId": campaignID}, nil)
	if err != nil {
		return nil, err
	}
	if feedbacks == nil {
		return []models.UserFeedback{}, nil
	}
	return feedbacks, nil
}

// Delete xóa một feedback; chỉ người gửi hoặc admin được xóa
func (s *FeedbackService) Delete(ctx context.Context, caller *authmodels.User, feedbackID primitive.ObjectID) error {
	feedback, err := s.BaseServiceMongoImpl.FindOneById(ctx, feedbackID)
	if err != nil {
		return err
	}
	if !caller.IsAdmin() && feedback.UserID != caller.ID {
		return common.ErrNotOwner
	}
	return s.BaseServiceMongoImpl.DeleteById(ctx, feedbackID)
}

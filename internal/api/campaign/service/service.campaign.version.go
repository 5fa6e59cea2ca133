package campaignsvc

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_craft/internal/api/auth/models"
	basesvc "content_craft/internal/api/base/service"
	models "content_craft/internal/api/campaign/models"
	"content_craft/internal/common"
)

// maxAppendRetries là số lần thử lại khi append version gặp concurrent writer
const maxAppendRetries = 3

// AppendVersionAtomic append một version vào ledger với guard $size:
// filter {_id, versions: {$size: n}} bảo đảm versionNumber = n+1 không bị
// lost-update khi hai request cùng append. Status và các field trong extraSet
// được $set cùng lúc với $push trong MỘT update nguyên tử. Khi filter không
// khớp (có writer khác chen vào), đọc lại campaign và thử lại.
func (s *CampaignService) AppendVersionAtomic(ctx context.Context, campaign models.Campaign, version models.ContentVersion, extraSet map[string]interface{}) (models.Campaign, error) {
	current := campaign
	for attempt := 0; attempt < maxAppendRetries; attempt++ {
		version.VersionNumber = len(current.Versions) + 1

		filter := bson.M{
			"_id":      current.ID,
			"versions": bson.M{"$size": len(current.Versions)},
		}
		set := map[string]interface{}{}
		for k, v := range extraSet {
			set[k] = v
		}
		update := &basesvc.UpdateData{
			Set:  set,
			Push: map[string]interface{}{"versions": version},
		}

		updated, err := s.BaseServiceMongo.FindOneAndUpdate(ctx, filter, update, nil)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, common.ErrNotFound) {
			return models.Campaign{}, err
		}

		// Guard trượt: một writer khác đã append trước, đọc lại để tính số mới
		current, err = s.BaseServiceMongo.FindOneById(ctx, current.ID)
		if err != nil {
			return models.Campaign{}, err
		}
	}

	return models.Campaign{}, common.NewError(
		common.ErrCodeBusinessConflict,
		"Campaign đang được ghi bởi request khác, vui lòng thử lại",
		common.StatusConflict,
		nil,
	)
}

// AppendVersion append version mới cho campaign với kiểm tra quyền ghi.
// merge=true xây snapshot theo quy tắc revise: kế thừa snapshot của version
// mới nhất rồi ghi đè các format truyền lên; merge=false ghi snapshot độc lập.
func (s *CampaignService) AppendVersion(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID, actorName string, changeSummary string, fragment map[string]string, merge bool) (models.Campaign, error) {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return models.Campaign{}, err
	}
	if err := s.Authorize(caller, &campaign, ActionWrite); err != nil {
		return models.Campaign{}, err
	}

	snapshot := fragment
	if merge {
		if latest := campaign.LatestVersion(); latest != nil {
			snapshot = models.MergeSnapshot(latest.Snapshot, fragment)
		}
	}

	version := models.ContentVersion{
		ID:            primitive.NewObjectID(),
		Timestamp:     time.Now().UnixMilli(),
		ActorName:     actorName,
		ChangeSummary: changeSummary,
		Snapshot:      snapshot,
	}

	return s.AppendVersionAtomic(ctx, campaign, version, nil)
}

// ListVersions trả về ledger version theo thứ tự versionNumber tăng dần.
// Ledger chỉ append nên thứ tự lưu trữ chính là thứ tự versionNumber.
func (s *CampaignService) ListVersions(ctx context.Context, caller *authmodels.User, campaignID primitive.ObjectID) ([]models.ContentVersion, error) {
	campaign, err := s.BaseServiceMongo.FindOneById(ctx, campaignID)
	if err != nil {
		return nil, err
	}
	if err := s.Authorize(caller, &campaign, ActionRead); err != nil {
		return nil, err
	}
	if campaign.Versions == nil {
		return []models.ContentVersion{}, nil
	}
	return campaign.Versions, nil
}

// ReplaceInteractions thay thế nguyên khối danh sách interaction và đặt status
// trong một update duy nhất. Dùng khi debate run hoàn thành: hoặc toàn bộ danh
// sách mới được ghi cùng status mới, hoặc campaign giữ nguyên danh sách cũ.
func (s *CampaignService) ReplaceInteractions(ctx context.Context, campaignID primitive.ObjectID, interactions []models.AgentInteraction, status string) (models.Campaign, error) {
	return s.BaseServiceMongo.UpdateById(ctx, campaignID, &basesvc.UpdateData{
		Set: map[string]interface{}{
			"interactions": interactions,
			"status":       status,
		},
	})
}

// ReplaceSchedule thay thế nguyên khối danh sách scheduled post, status giữ nguyên
func (s *CampaignService) ReplaceSchedule(ctx context.Context, campaignID primitive.ObjectID, posts []models.ScheduledPost) (models.Campaign, error) {
	return s.BaseServiceMongo.UpdateById(ctx, campaignID, &basesvc.UpdateData{
		Set: map[string]interface{}{"scheduledPosts": posts},
	})
}

// SetStatus đặt trực tiếp status của campaign.
// Dùng cho các bước orchestration đã tính sẵn trạng thái qua ApplyStatusEvent
// (vd: revert về draft khi generation thất bại).
func (s *CampaignService) SetStatus(ctx context.Context, campaignID primitive.ObjectID, status string) (models.Campaign, error) {
	return s.BaseServiceMongo.UpdateById(ctx, campaignID, &basesvc.UpdateData{
		Set: map[string]interface{}{"status": status},
	})
}

package campaignsvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "content_craft/internal/api/auth/models"
	basesvc "content_craft/internal/api/base/service"
	models "content_craft/internal/api/campaign/models"
	"content_craft/internal/common"
)

func TestCollectFlaggedVersions(t *testing.T) {
	ownerA := primitive.NewObjectID()
	ownerB := primitive.NewObjectID()
	campaignA := models.Campaign{
		ID:      primitive.NewObjectID(),
		OwnerID: ownerA,
		Title:   "Chiến dịch A",
		Versions: []models.ContentVersion{
			{ID: primitive.NewObjectID(), VersionNumber: 1, Timestamp: 100, IsFlagged: true},
			{ID: primitive.NewObjectID(), VersionNumber: 2, Timestamp: 300, IsFlagged: false},
			{ID: primitive.NewObjectID(), VersionNumber: 3, Timestamp: 500, IsFlagged: true},
		},
	}
	campaignB := models.Campaign{
		ID:      primitive.NewObjectID(),
		OwnerID: ownerB,
		Title:   "Chiến dịch B",
		Versions: []models.ContentVersion{
			{ID: primitive.NewObjectID(), VersionNumber: 1, Timestamp: 200, IsFlagged: true},
		},
	}

	entries := CollectFlaggedVersions([]models.Campaign{campaignA, campaignB})
	if len(entries) != 3 {
		t.Fatalf("Mong đợi 3 version bị gắn cờ, nhận được %d", len(entries))
	}

	// Sắp xếp theo timestamp giảm dần: 500 (A), 200 (B), 100 (A)
	if entries[0].Version.Timestamp != 500 || entries[1].Version.Timestamp != 200 || entries[2].Version.Timestamp != 100 {
		t.Errorf("Thứ tự sai: %d, %d, %d", entries[0].Version.Timestamp, entries[1].Version.Timestamp, entries[2].Version.Timestamp)
	}

	if entries[0].CampaignID != campaignA.ID || entries[0].CampaignTitle != "Chiến dịch A" || entries[0].OwnerID != ownerA {
		t.Errorf("Entry đầu tiên thiếu thông tin campaign cha: %+v", entries[0])
	}
	if entries[1].CampaignID != campaignB.ID || entries[1].OwnerID != ownerB {
		t.Errorf("Entry thứ hai thiếu thông tin campaign cha: %+v", entries[1])
	}
}

func TestCollectFlaggedVersionsRong(t *testing.T) {
	entries := CollectFlaggedVersions(nil)
	if entries == nil || len(entries) != 0 {
		t.Errorf("Danh sách campaign rỗng phải trả về slice rỗng, nhận được %v", entries)
	}
}

func TestSetVersionFlagVersionKhongTonTai(t *testing.T) {
	admin := &authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleAdmin}
	campaign := models.Campaign{
		ID:      primitive.NewObjectID(),
		OwnerID: primitive.NewObjectID(),
		Versions: []models.ContentVersion{
			{ID: primitive.NewObjectID(), VersionNumber: 1},
		},
	}

	updateCalls := 0
	store := &fakeCampaignStore{
		findOneById: func(id primitive.ObjectID) (models.Campaign, error) {
			return campaign, nil
		},
		findOneAndUpdate: func(filter interface{}, update *basesvc.UpdateData) (models.Campaign, error) {
			updateCalls++
			return campaign, nil
		},
	}

	svc := &CampaignService{BaseServiceMongo: store}
	_, err := svc.SetVersionFlag(context.Background(), admin, campaign.ID, primitive.NewObjectID(), true, nil)
	if !errors.Is(err, common.ErrVersionNotFound) {
		t.Errorf("Mong đợi lỗi không tìm thấy version, nhận được %v", err)
	}
	if updateCalls != 0 {
		t.Errorf("Campaign không được ghi khi version không tồn tại, đã có %d lần update", updateCalls)
	}
}

func TestSetVersionFlagGuardTruot(t *testing.T) {
	// Version có trong bản đọc nhưng document đã đổi trước khi update chạy:
	// positional filter trượt phải trả về cùng lỗi với version không tồn tại
	admin := &authmodels.User{ID: primitive.NewObjectID(), Role: authmodels.RoleAdmin}
	versionID := primitive.NewObjectID()
	campaign := models.Campaign{
		ID:      primitive.NewObjectID(),
		OwnerID: primitive.NewObjectID(),
		Versions: []models.ContentVersion{
			{ID: versionID, VersionNumber: 1},
		},
	}

	store := &fakeCampaignStore{
		findOneById: func(id primitive.ObjectID) (models.Campaign, error) {
			return campaign, nil
		},
		findOneAndUpdate: func(filter interface{}, update *basesvc.UpdateData) (models.Campaign, error) {
			return models.Campaign{}, common.ErrNotFound
		},
	}

	svc := &CampaignService{BaseServiceMongo: store}
	_, err := svc.SetVersionFlag(context.Background(), admin, campaign.ID, versionID, true, nil)
	if !errors.Is(err, common.ErrVersionNotFound) {
		t.Errorf("Guard trượt phải trả về lỗi không tìm thấy version, nhận được %v", err)
	}
}

package campaignsvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "content_craft/internal/api/base/service"
	models "content_craft/internal/api/campaign/models"
	"content_craft/internal/common"
)

// fakeCampaignStore giả lập tầng lưu trữ campaign. Chỉ các method cần cho
// test được gán closure, method khác gọi nhầm sẽ panic qua interface nil.
type fakeCampaignStore struct {
	basesvc.BaseServiceMongo[models.Campaign]
	findOneById      func(id primitive.ObjectID) (models.Campaign, error)
	findOneAndUpdate func(filter interface{}, update *basesvc.UpdateData) (models.Campaign, error)
}

func (f *fakeCampaignStore) FindOneById(ctx context.Context, id primitive.ObjectID) (models.Campaign, error) {
	return f.findOneById(id)
}

func (f *fakeCampaignStore) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (models.Campaign, error) {
	data, err := basesvc.ToUpdateData(update)
	if err != nil {
		return models.Campaign{}, err
	}
	return f.findOneAndUpdate(filter, data)
}

func TestAppendVersionAtomicDanhSoDayDac(t *testing.T) {
	campaignID := primitive.NewObjectID()
	base := models.Campaign{
		ID:     campaignID,
		Status: models.StatusGenerating,
		Versions: []models.ContentVersion{
			{ID: primitive.NewObjectID(), VersionNumber: 1},
			{ID: primitive.NewObjectID(), VersionNumber: 2},
		},
	}
	// Bản ghi sau khi một writer khác đã append version thứ 3
	grown := base
	grown.Versions = append(append([]models.ContentVersion{}, base.Versions...),
		models.ContentVersion{ID: primitive.NewObjectID(), VersionNumber: 3})

	calls := 0
	var sizes []int
	var numbers []int
	store := &fakeCampaignStore{
		findOneById: func(id primitive.ObjectID) (models.Campaign, error) {
			return grown, nil
		},
		findOneAndUpdate: func(filter interface{}, update *basesvc.UpdateData) (models.Campaign, error) {
			calls++
			f, ok := filter.(bson.M)
			if !ok {
				t.Fatalf("Filter phải là bson.M, nhận được %T", filter)
			}
			guard, ok := f["versions"].(bson.M)
			if !ok {
				t.Fatalf("Filter thiếu guard $size trên versions: %v", f)
			}
			sizes = append(sizes, guard["$size"].(int))

			pushed, ok := update.Push["versions"].(models.ContentVersion)
			if !ok {
				t.Fatalf("Update thiếu $push versions: %+v", update)
			}
			numbers = append(numbers, pushed.VersionNumber)

			if status, _ := update.Set["status"].(string); status != models.StatusReview {
				t.Errorf("Status phải được $set cùng lúc với $push, nhận được %q", status)
			}

			if calls == 1 {
				// Guard trượt: writer khác đã append trước
				return models.Campaign{}, common.ErrNotFound
			}
			out := grown
			out.Versions = append(append([]models.ContentVersion{}, grown.Versions...), pushed)
			return out, nil
		},
	}

	svc := &CampaignService{BaseServiceMongo: store}
	version := models.ContentVersion{ID: primitive.NewObjectID(), Timestamp: 42}
	updated, err := svc.AppendVersionAtomic(context.Background(), base, version, map[string]interface{}{"status": models.StatusReview})
	if err != nil {
		t.Fatalf("AppendVersionAtomic trả về lỗi: %v", err)
	}

	if calls != 2 {
		t.Errorf("Mong đợi 2 lần FindOneAndUpdate (guard trượt rồi thành công), nhận được %d", calls)
	}
	if sizes[0] != 2 || numbers[0] != 3 {
		t.Errorf("Lượt đầu phải guard $size=2 và đánh số 3, nhận được $size=%d, số %d", sizes[0], numbers[0])
	}
	if sizes[1] != 3 || numbers[1] != 4 {
		t.Errorf("Sau khi đọc lại phải guard $size=3 và đánh số 4, nhận được $size=%d, số %d", sizes[1], numbers[1])
	}
	if len(updated.Versions) != 4 {
		t.Errorf("Campaign sau append phải có 4 version, nhận được %d", len(updated.Versions))
	}
}

func TestAppendVersionAtomicHetLuotThuLai(t *testing.T) {
	base := models.Campaign{
		ID:       primitive.NewObjectID(),
		Status:   models.StatusGenerating,
		Versions: []models.ContentVersion{},
	}

	calls := 0
	store := &fakeCampaignStore{
		findOneById: func(id primitive.ObjectID) (models.Campaign, error) {
			return base, nil
		},
		findOneAndUpdate: func(filter interface{}, update *basesvc.UpdateData) (models.Campaign, error) {
			calls++
			return models.Campaign{}, common.ErrNotFound
		},
	}

	svc := &CampaignService{BaseServiceMongo: store}
	_, err := svc.AppendVersionAtomic(context.Background(), base, models.ContentVersion{ID: primitive.NewObjectID()}, nil)
	if err == nil {
		t.Fatal("Guard trượt liên tục phải trả về lỗi")
	}

	var cErr *common.Error
	if !errors.As(err, &cErr) || cErr.Code.Code != common.ErrCodeBusinessConflict.Code {
		t.Errorf("Mong đợi lỗi conflict %s, nhận được %v", common.ErrCodeBusinessConflict.Code, err)
	}
	if calls != maxAppendRetries {
		t.Errorf("Mong đợi %d lần thử, nhận được %d", maxAppendRetries, calls)
	}
}

func TestAppendVersionAtomicLoiKhacKhongThuLai(t *testing.T) {
	base := models.Campaign{ID: primitive.NewObjectID(), Versions: []models.ContentVersion{}}

	calls := 0
	store := &fakeCampaignStore{
		findOneAndUpdate: func(filter interface{}, update *basesvc.UpdateData) (models.Campaign, error) {
			calls++
			return models.Campaign{}, common.ErrConnection
		},
	}

	svc := &CampaignService{BaseServiceMongo: store}
	_, err := svc.AppendVersionAtomic(context.Background(), base, models.ContentVersion{ID: primitive.NewObjectID()}, nil)
	if !errors.Is(err, common.ErrConnection) {
		t.Errorf("Lỗi không phải guard trượt phải trả về nguyên vẹn, nhận được %v", err)
	}
	if calls != 1 {
		t.Errorf("Lỗi hạ tầng không được thử lại, đã gọi %d lần", calls)
	}
}

package aisvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	models "content_craft/internal/api/ai/models"
	authmodels "content_craft/internal/api/auth/models"
	basesvc "content_craft/internal/api/base/service"
	campmodels "content_craft/internal/api/campaign/models"
	campaignsvc "content_craft/internal/api/campaign/service"
	"content_craft/internal/common"
)

// fakeCampaignStore giả lập tầng lưu trữ campaign, ghi lại các lần đặt status
type fakeCampaignStore struct {
	basesvc.BaseServiceMongo[campmodels.Campaign]
	campaign   campmodels.Campaign
	statusSets []string
}

func (f *fakeCampaignStore) FindOneById(ctx context.Context, id primitive.ObjectID) (campmodels.Campaign, error) {
	return f.campaign, nil
}

func (f *fakeCampaignStore) UpdateById(ctx context.Context, id primitive.ObjectID, data interface{}) (campmodels.Campaign, error) {
	update, err := basesvc.ToUpdateData(data)
	if err != nil {
		return campmodels.Campaign{}, err
	}
	if status, ok := update.Set["status"].(string); ok {
		f.statusSets = append(f.statusSets, status)
		f.campaign.Status = status
	}
	return f.campaign, nil
}

// fakeTemplateStore trả về cùng một template cho mọi purpose
type fakeTemplateStore struct {
	basesvc.BaseServiceMongo[models.AIPromptTemplate]
	template models.AIPromptTemplate
}

func (f *fakeTemplateStore) FindOne(ctx context.Context, filter interface{}, opts *options.FindOneOptions) (models.AIPromptTemplate, error) {
	return f.template, nil
}

// fakeCompletionCaller trả về payload/lỗi cố định thay cho completion service
type fakeCompletionCaller struct {
	payload map[string]interface{}
	err     error
}

func (f *fakeCompletionCaller) CompleteJSON(ctx context.Context, prompt string, template *models.AIPromptTemplate) (map[string]interface{}, error) {
	return f.payload, f.err
}

func newGenerationServiceChoTest(campaign campmodels.Campaign, callErr error) (*GenerationService, *fakeCampaignStore) {
	store := &fakeCampaignStore{campaign: campaign}
	tplStore := &fakeTemplateStore{template: models.AIPromptTemplate{
		Name:   "mau-test",
		Prompt: "Sinh nội dung cho chiến dịch",
	}}
	svc := &GenerationService{
		campaignService: &campaignsvc.CampaignService{BaseServiceMongo: store},
		templateService: &AIPromptTemplateService{BaseServiceMongo: tplStore},
		client:          &fakeCompletionCaller{err: callErr},
	}
	return svc, store
}

func TestGenerateContentThatBaiVeDraft(t *testing.T) {
	owner := primitive.NewObjectID()
	caller := &authmodels.User{ID: owner, Role: authmodels.RoleEditor}
	campaign := campmodels.Campaign{
		ID:       primitive.NewObjectID(),
		OwnerID:  owner,
		Status:   campmodels.StatusGenerating,
		Versions: []campmodels.ContentVersion{},
	}

	svc, store := newGenerationServiceChoTest(campaign, common.ErrGenerationFailed)
	_, err := svc.GenerateContent(context.Background(), caller, campaign.ID)
	if !errors.Is(err, common.ErrGenerationFailed) {
		t.Fatalf("Mong đợi lỗi generation, nhận được %v", err)
	}

	if len(store.statusSets) != 1 || store.statusSets[0] != campmodels.StatusDraft {
		t.Errorf("Campaign phải được đưa về draft, các lần đặt status: %v", store.statusSets)
	}
	if len(store.campaign.Versions) != 0 {
		t.Errorf("Ledger version phải giữ nguyên khi generation thất bại, nhận được %d version", len(store.campaign.Versions))
	}
}

func TestGenerateContentDangReviewGiuNguyenReview(t *testing.T) {
	// Campaign đã ở review chạy lại bước generate (idempotent): thất bại
	// không được hạ campaign về draft, version cũ vẫn nguyên vẹn
	owner := primitive.NewObjectID()
	caller := &authmodels.User{ID: owner, Role: authmodels.RoleEditor}
	campaign := campmodels.Campaign{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Status:  campmodels.StatusReview,
		Versions: []campmodels.ContentVersion{
			{ID: primitive.NewObjectID(), VersionNumber: 1, Snapshot: map[string]string{"blog": "bài viết"}},
		},
	}

	svc, store := newGenerationServiceChoTest(campaign, common.ErrGenerationFailed)
	_, err := svc.GenerateContent(context.Background(), caller, campaign.ID)
	if !errors.Is(err, common.ErrGenerationFailed) {
		t.Fatalf("Mong đợi lỗi generation, nhận được %v", err)
	}

	if len(store.statusSets) != 0 {
		t.Errorf("Campaign đang ở review không được đổi status, các lần đặt status: %v", store.statusSets)
	}
	if store.campaign.Status != campmodels.StatusReview {
		t.Errorf("Status phải giữ nguyên review, nhận được %s", store.campaign.Status)
	}
}

func TestRunDebateThatBaiVeDraft(t *testing.T) {
	owner := primitive.NewObjectID()
	caller := &authmodels.User{ID: owner, Role: authmodels.RoleEditor}
	campaign := campmodels.Campaign{
		ID:      primitive.NewObjectID(),
		OwnerID: owner,
		Status:  campmodels.StatusDraft,
	}

	svc, store := newGenerationServiceChoTest(campaign, common.ErrGenerationTimeout)
	_, err := svc.RunDebate(context.Background(), caller, campaign.ID)
	if !errors.Is(err, common.ErrGenerationTimeout) {
		t.Fatalf("Mong đợi lỗi timeout, nhận được %v", err)
	}

	// Status đi qua debating rồi về lại draft khi completion thất bại
	if len(store.statusSets) != 2 || store.statusSets[0] != campmodels.StatusDebating || store.statusSets[1] != campmodels.StatusDraft {
		t.Errorf("Mong đợi chuỗi status [debating draft], nhận được %v", store.statusSets)
	}
}

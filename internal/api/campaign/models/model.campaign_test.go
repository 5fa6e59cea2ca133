package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFindVersion(t *testing.T) {
	v1 := ContentVersion{ID: primitive.NewObjectID(), VersionNumber: 1}
	v2 := ContentVersion{ID: primitive.NewObjectID(), VersionNumber: 2}
	campaign := Campaign{Versions: []ContentVersion{v1, v2}}

	idx, found := campaign.FindVersion(v2.ID)
	if found == nil || idx != 1 {
		t.Fatalf("phải tìm thấy v2 ở index 1, nhận được index %d", idx)
	}
	if found.VersionNumber != 2 {
		t.Errorf("version tìm thấy sai, nhận được số %d", found.VersionNumber)
	}

	idx, found = campaign.FindVersion(primitive.NewObjectID())
	if found != nil || idx != -1 {
		t.Errorf("version không tồn tại phải trả về (-1, nil), nhận được (%d, %v)", idx, found)
	}
}

func TestLatestVersion(t *testing.T) {
	empty := Campaign{}
	if empty.LatestVersion() != nil {
		t.Error("ledger rỗng phải trả về nil")
	}

	campaign := Campaign{Versions: []ContentVersion{
		{VersionNumber: 1, Snapshot: map[string]string{"tweet": "Hello"}},
		{VersionNumber: 2, Snapshot: map[string]string{"tweet": "Hello, world!"}},
	}}
	latest := campaign.LatestVersion()
	if latest == nil || latest.VersionNumber != 2 {
		t.Fatalf("phải trả về version mới nhất (số 2), nhận được %v", latest)
	}
}

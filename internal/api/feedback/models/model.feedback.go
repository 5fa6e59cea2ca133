package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Rating chỉ nhận hai giá trị +1 (thích) và -1 (không thích)
const (
	RatingUp   = 1
	RatingDown = -1
)

// UserFeedback là một bản ghi đánh giá của người dùng cho một version/format.
// Unique index (userId, campaignId, versionId, format) chặn đánh giá trùng,
// insert trùng trả về lỗi conflict. Xóa campaign sẽ cascade xóa feedback.
type UserFeedback struct {
	ID         primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     primitive.ObjectID  `json:"userId" bson:"userId" index:"compound:feedback_target_unique;single:1"`
	CampaignID primitive.ObjectID  `json:"campaignId" bson:"campaignId" index:"compound:feedback_target_unique;single:1"`
	VersionID  *primitive.ObjectID `json:"versionId,omitempty" bson:"versionId,omitempty" index:"compound:feedback_target_unique"`
	Format     string              `json:"format" bson:"format" index:"compound:feedback_target_unique"`
	Rating     int                 `json:"rating" bson:"rating"` // +1 hoặc -1
	CreatedAt  int64               `json:"createdAt" bson:"createdAt"`
	UpdatedAt  int64               `json:"updatedAt" bson:"updatedAt"`
}

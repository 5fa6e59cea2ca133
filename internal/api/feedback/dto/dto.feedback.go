package feedbackdto

// FeedbackCreateInput đầu vào gửi đánh giá cho một version/format.
// Rating chỉ nhận +1 hoặc -1.
type FeedbackCreateInput struct {
	CampaignID string `json:"campaignId" validate:"required"`
	VersionID  string `json:"versionId" validate:"omitempty"`
	Format     string `json:"format" validate:"required,no_xss"`
	Rating     int    `json:"rating" validate:"required,oneof=-1 1"`
}

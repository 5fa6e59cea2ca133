package campaigndto

// CampaignCreateInput đầu vào tạo campaign mới.
// Campaign mới luôn bắt đầu ở trạng thái draft.
type CampaignCreateInput struct {
	Title          string                 `json:"title" validate:"required,no_xss"`
	Brief          string                 `json:"brief" validate:"required"`
	TargetAudience string                 `json:"targetAudience" validate:"omitempty,no_xss"`
	Tone           string                 `json:"tone" validate:"omitempty,no_xss"`
	ContentGoals   []string               `json:"contentGoals" validate:"omitempty,dive,no_xss"`
	BrandProfile   map[string]interface{} `json:"brandProfile" validate:"omitempty"`
	IsPrivate      bool                   `json:"isPrivate"`
}

// CampaignUpdateInput đầu vào cập nhật các field biên tập được của campaign.
// Status, versions, interactions và moderation không sửa qua đây.
type CampaignUpdateInput struct {
	Title          string   `json:"title" validate:"omitempty,no_xss"`
	Brief          string   `json:"brief" validate:"omitempty"`
	TargetAudience string   `json:"targetAudience" validate:"omitempty,no_xss"`
	Tone           string   `json:"tone" validate:"omitempty,no_xss"`
	ContentGoals   []string `json:"contentGoals" validate:"omitempty,dive,no_xss"`
}

// CampaignStatusInput đầu vào thay đổi trạng thái tường minh (publish/archive/reactivate)
type CampaignStatusInput struct {
	Event string `json:"event" validate:"required,oneof=publish archive reactivate"`
}

// AppendVersionInput đầu vào append version thủ công (human edit)
type AppendVersionInput struct {
	ActorName     string                 `json:"actorName" validate:"required,no_xss"`
	ChangeSummary string                 `json:"changeSummary" validate:"omitempty"`
	Snapshot      map[string]interface{} `json:"snapshot" validate:"required"`
	// Merge=true xây snapshot mới từ version mới nhất rồi ghi đè các format truyền lên
	Merge bool `json:"merge"`
}

// SetCampaignFlagInput đầu vào gắn/bỏ cờ kiểm duyệt cấp campaign.
// Notes là con trỏ để phân biệt "không truyền" với "truyền chuỗi rỗng".
type SetCampaignFlagInput struct {
	IsFlagged *bool   `json:"isFlagged" validate:"required"`
	Notes     *string `json:"notes"`
}

// SetVersionFlagInput đầu vào gắn/bỏ cờ kiểm duyệt cho một version
type SetVersionFlagInput struct {
	VersionID string  `json:"versionId" validate:"required"`
	IsFlagged *bool   `json:"isFlagged" validate:"required"`
	Notes     *string `json:"notes"`
}

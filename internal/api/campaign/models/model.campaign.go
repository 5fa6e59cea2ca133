package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CampaignStatus định nghĩa các trạng thái vòng đời của campaign
const (
	StatusDraft      = "draft"      // Mới tạo, chưa chạy bước nào
	StatusDebating   = "debating"   // Đang chạy debate giữa các agent
	StatusGenerating = "generating" // Đang sinh nội dung
	StatusReview     = "review"     // Nội dung đã sinh, chờ duyệt
	StatusPublished  = "published"  // Đã xuất bản (chỉ đổi bằng hành động tường minh)
	StatusArchived   = "archived"   // Đã lưu trữ (chỉ đổi bằng hành động tường minh)
)

// Campaign đại diện cho một chiến dịch nội dung - aggregate root.
// Toàn bộ version, interaction và scheduled post nhúng trong một document,
// mọi cập nhật status + dữ liệu đi kèm thực hiện trong MỘT update nguyên tử.
type Campaign struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của campaign

	// ===== OWNERSHIP =====
	OwnerID primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"single:1"` // User sở hữu campaign

	// ===== CAMPAIGN BRIEF =====
	Title          string                 `json:"title" bson:"title" index:"text"`                              // Tiêu đề chiến dịch
	Brief          string                 `json:"brief" bson:"brief"`                                           // Mô tả chiến dịch
	TargetAudience string                 `json:"targetAudience,omitempty" bson:"targetAudience,omitempty"`     // Đối tượng mục tiêu (tùy chọn)
	Tone           string                 `json:"tone,omitempty" bson:"tone,omitempty"`                         // Giọng điệu nội dung (tùy chọn)
	ContentGoals   []string               `json:"contentGoals,omitempty" bson:"contentGoals,omitempty"`         // Mục tiêu nội dung (tùy chọn)
	BrandProfile   map[string]interface{} `json:"brandProfile,omitempty" bson:"brandProfile,omitempty"`         // Snapshot hồ sơ thương hiệu (tùy chọn)
	IsPrivate      bool                   `json:"isPrivate" bson:"isPrivate"`                                   // Campaign riêng tư, chỉ owner và admin thấy

	// ===== LIFECYCLE =====
	Status string `json:"status" bson:"status" index:"single:1"` // Trạng thái: draft, debating, generating, review, published, archived

	// ===== EMBEDDED LISTS =====
	Versions       []ContentVersion   `json:"versions" bson:"versions"`             // Ledger version, chỉ append
	Interactions   []AgentInteraction `json:"interactions" bson:"interactions"`     // Lượt debate, thay thế nguyên khối mỗi lần chạy
	ScheduledPosts []ScheduledPost    `json:"scheduledPosts" bson:"scheduledPosts"` // Lịch đăng bài, thay thế nguyên khối mỗi lần chạy

	// ===== MODERATION OVERLAY =====
	IsFlagged            bool   `json:"isFlagged" bson:"isFlagged" index:"single:1"`            // Cờ kiểm duyệt cấp campaign
	AdminModerationNotes string `json:"adminModerationNotes" bson:"adminModerationNotes"`       // Ghi chú kiểm duyệt của admin

	// ===== METADATA =====
	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// ContentVersion là một snapshot nội dung bất biến trong ledger của campaign.
// Snapshot không bao giờ sửa tại chỗ; chỉ isFlagged/adminModerationNotes được phép thay đổi.
type ContentVersion struct {
	ID            primitive.ObjectID `json:"id" bson:"_id"`                       // ID của version
	VersionNumber int                `json:"versionNumber" bson:"versionNumber"`  // Số thứ tự 1-based, liên tục không có khoảng trống
	Timestamp     int64              `json:"timestamp" bson:"timestamp"`          // Thời điểm tạo version
	ActorName     string             `json:"actorName" bson:"actorName"`          // Tên người/agent tạo version
	ChangeSummary string             `json:"changeSummary" bson:"changeSummary"`  // Tóm tắt thay đổi
	Snapshot      map[string]string  `json:"multiFormatContentSnapshot" bson:"multiFormatContentSnapshot"` // Map format → text, sparse

	// Moderation overlay - phần duy nhất được phép sửa sau khi append
	IsFlagged            bool   `json:"isFlagged" bson:"isFlagged"`
	AdminModerationNotes string `json:"adminModerationNotes" bson:"adminModerationNotes"`
}

// AgentInteraction là một lượt phát biểu trong debate
type AgentInteraction struct {
	ActorName string `json:"actorName" bson:"actorName"` // Tên agent hoặc người tham gia
	Role      string `json:"role" bson:"role"`           // Nhãn vai trò (vd: strategist, critic)
	Message   string `json:"message" bson:"message"`     // Nội dung phát biểu
	Timestamp int64  `json:"timestamp" bson:"timestamp"` // Thời điểm phát biểu
}

// ScheduledPost là một hành động đăng bài đã lên kế hoạch
type ScheduledPost struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`                  // ID của scheduled post
	Format      string             `json:"format" bson:"format"`           // Loại nội dung (blogPost, tweet, ...)
	Platform    string             `json:"platform" bson:"platform"`       // Nền tảng đăng
	Description string             `json:"description" bson:"description"` // Mô tả hành động
	ScheduledAt int64              `json:"scheduledAt" bson:"scheduledAt"` // Thời điểm dự kiến đăng
	Status      string             `json:"status" bson:"status"`           // Trạng thái tự do (vd: draft)
}

// FindVersion tìm version theo ID trong ledger, trả về index và con trỏ.
// Trả về (-1, nil) nếu không tồn tại.
func (c *Campaign) FindVersion(versionID primitive.ObjectID) (int, *ContentVersion) {
	for i := range c.Versions {
		if c.Versions[i].ID == versionID {
			return i, &c.Versions[i]
		}
	}
	return -1, nil
}

// LatestVersion trả về version mới nhất trong ledger, nil nếu ledger rỗng
func (c *Campaign) LatestVersion() *ContentVersion {
	if len(c.Versions) == 0 {
		return nil
	}
	return &c.Versions[len(c.Versions)-1]
}

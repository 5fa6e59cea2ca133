package models

import (
	"fmt"

	"content_craft/internal/common"
)

// StatusEvent định nghĩa các sự kiện làm thay đổi trạng thái campaign
const (
	EventBeginDebate         = "begin_debate"         // Bắt đầu chạy debate
	EventDebateSucceeded     = "debate_succeeded"     // Debate hoàn thành
	EventDebateFailed        = "debate_failed"        // Debate thất bại
	EventGenerationSucceeded = "generation_succeeded" // Sinh nội dung hoàn thành
	EventGenerationFailed    = "generation_failed"    // Sinh nội dung thất bại
	EventSchedulePlanned     = "schedule_planned"     // Lập lịch đăng bài hoàn thành
	EventPublish             = "publish"              // Người dùng/admin xuất bản tường minh
	EventArchive             = "archive"              // Người dùng/admin lưu trữ tường minh
	EventReactivate          = "reactivate"           // Kích hoạt lại tường minh, quay về draft
)

// eventTargets ánh xạ mỗi sự kiện sang trạng thái đích của nó
var eventTargets = map[string]string{
	EventBeginDebate:         StatusDebating,
	EventDebateSucceeded:     StatusGenerating,
	EventDebateFailed:        StatusDraft,
	EventGenerationSucceeded: StatusReview,
	EventGenerationFailed:    StatusDraft,
	EventSchedulePlanned:     StatusReview,
	EventPublish:             StatusPublished,
	EventArchive:             StatusArchived,
	EventReactivate:          StatusDraft,
}

// ApplyStatusEvent là hàm thuần quyết định trạng thái kế tiếp của campaign.
// Áp lại sự kiện khi đã ở trạng thái đích là no-op (idempotent).
// Cặp (trạng thái, sự kiện) không hợp lệ trả về lỗi, vd: archived + begin_debate
// bị từ chối nếu không có sự kiện reactivate tường minh trước đó.
func ApplyStatusEvent(current string, event string) (string, error) {
	target, ok := eventTargets[event]
	if !ok {
		return current, common.NewError(
			common.ErrCodeValidationInput,
			fmt.Sprintf("Sự kiện không hợp lệ: %s", event),
			common.StatusBadRequest,
			nil,
		)
	}

	// Idempotent: đã ở trạng thái đích thì giữ nguyên
	if current == target {
		return current, nil
	}

	switch event {
	// Hành động tường minh được phép từ mọi trạng thái
	case EventPublish, EventArchive, EventReactivate:
		return target, nil

	case EventBeginDebate:
		if current == StatusDraft {
			return target, nil
		}

	case EventDebateSucceeded, EventDebateFailed:
		if current == StatusDebating {
			return target, nil
		}

	case EventGenerationSucceeded, EventGenerationFailed:
		if current == StatusGenerating {
			return target, nil
		}

	case EventSchedulePlanned:
		// Chỉ hợp lệ khi đang ở review; trường hợp current == review
		// đã được nhánh idempotent xử lý ở trên
	}

	return current, common.NewError(
		common.ErrCodeBusinessState,
		fmt.Sprintf("Không thể áp dụng sự kiện %s khi campaign đang ở trạng thái %s", event, current),
		common.StatusBadRequest,
		nil,
	)
}

// MergeSnapshot xây snapshot mới theo quy tắc revise: giữ toàn bộ format của
// snapshot nguồn, ghi đè các format có trong fragment.
func MergeSnapshot(source map[string]string, fragment map[string]string) map[string]string {
	merged := make(map[string]string, len(source)+len(fragment))
	for format, text := range source {
		merged[format] = text
	}
	for format, text := range fragment {
		merged[format] = text
	}
	return merged
}

// ValidateSnapshotFragment kiểm tra map format → giá trị từ đầu vào thô.
// Giá trị không phải string trả về lỗi validation.
func ValidateSnapshotFragment(raw map[string]interface{}) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, common.NewError(common.ErrCodeValidationInput, "Snapshot không được rỗng", common.StatusBadRequest, nil)
	}
	snapshot := make(map[string]string, len(raw))
	for format, value := range raw {
		text, ok := value.(string)
		if !ok {
			return nil, common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Giá trị của format %s phải là chuỗi", format),
				common.StatusBadRequest,
				nil,
			)
		}
		snapshot[format] = text
	}
	return snapshot, nil
}

// ResolveModerationNotes quyết định ghi chú kiểm duyệt mới theo quy tắc:
// ghi chú truyền tường minh luôn được giữ; bỏ cờ mà không truyền ghi chú
// thì xóa ghi chú về rỗng; gắn cờ mà không truyền ghi chú thì giữ ghi chú cũ.
func ResolveModerationNotes(existing string, isFlagged bool, notes *string) string {
	if notes != nil {
		return *notes
	}
	if !isFlagged {
		return ""
	}
	return existing
}

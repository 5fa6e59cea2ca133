// Package models - Test chính sách chuyển trạng thái, merge snapshot và quy tắc ghi chú kiểm duyệt.
package models

import (
	"testing"
)

func TestApplyStatusEvent_HappyPath(t *testing.T) {
	status := StatusDraft

	status, err := ApplyStatusEvent(status, EventBeginDebate)
	if err != nil || status != StatusDebating {
		t.Fatalf("draft + begin_debate phải ra debating, nhận được %s (err=%v)", status, err)
	}

	status, err = ApplyStatusEvent(status, EventDebateSucceeded)
	if err != nil || status != StatusGenerating {
		t.Fatalf("debating + debate_succeeded phải ra generating, nhận được %s (err=%v)", status, err)
	}

	status, err = ApplyStatusEvent(status, EventGenerationSucceeded)
	if err != nil || status != StatusReview {
		t.Fatalf("generating + generation_succeeded phải ra review, nhận được %s (err=%v)", status, err)
	}

	status, err = ApplyStatusEvent(status, EventSchedulePlanned)
	if err != nil || status != StatusReview {
		t.Fatalf("review + schedule_planned phải giữ review, nhận được %s (err=%v)", status, err)
	}
}

func TestApplyStatusEvent_FailureRevertsToDraft(t *testing.T) {
	status, err := ApplyStatusEvent(StatusDebating, EventDebateFailed)
	if err != nil || status != StatusDraft {
		t.Errorf("debating + debate_failed phải ra draft, nhận được %s (err=%v)", status, err)
	}

	status, err = ApplyStatusEvent(StatusGenerating, EventGenerationFailed)
	if err != nil || status != StatusDraft {
		t.Errorf("generating + generation_failed phải ra draft, nhận được %s (err=%v)", status, err)
	}
}

func TestApplyStatusEvent_Idempotent(t *testing.T) {
	// Áp lại sự kiện khi đã ở trạng thái đích là no-op, không lỗi
	status, err := ApplyStatusEvent(StatusGenerating, EventDebateSucceeded)
	if err != nil {
		t.Fatalf("áp lại debate_succeeded khi đã generating phải là no-op, nhận lỗi: %v", err)
	}
	if status != StatusGenerating {
		t.Errorf("trạng thái phải giữ nguyên generating, nhận được %s", status)
	}

	status, err = ApplyStatusEvent(StatusPublished, EventPublish)
	if err != nil || status != StatusPublished {
		t.Errorf("publish khi đã published phải là no-op, nhận được %s (err=%v)", status, err)
	}
}

func TestApplyStatusEvent_RejectsInvalidPairs(t *testing.T) {
	cases := []struct {
		current string
		event   string
	}{
		{StatusArchived, EventBeginDebate},
		{StatusPublished, EventDebateSucceeded},
		{StatusDraft, EventGenerationSucceeded},
		{StatusReview, EventDebateFailed},
		{StatusDraft, EventSchedulePlanned},
	}
	for _, tc := range cases {
		next, err := ApplyStatusEvent(tc.current, tc.event)
		if err == nil {
			t.Errorf("%s + %s phải bị từ chối, lại ra %s", tc.current, tc.event, next)
		}
		if next != tc.current {
			t.Errorf("%s + %s bị từ chối nhưng trạng thái trả về đổi thành %s", tc.current, tc.event, next)
		}
	}
}

func TestApplyStatusEvent_ExplicitActionsFromAnyState(t *testing.T) {
	for _, current := range []string{StatusDraft, StatusDebating, StatusGenerating, StatusReview, StatusArchived} {
		status, err := ApplyStatusEvent(current, EventPublish)
		if err != nil || status != StatusPublished {
			t.Errorf("%s + publish phải ra published, nhận được %s (err=%v)", current, status, err)
		}
	}
	status, err := ApplyStatusEvent(StatusArchived, EventReactivate)
	if err != nil || status != StatusDraft {
		t.Errorf("archived + reactivate phải ra draft, nhận được %s (err=%v)", status, err)
	}
}

func TestApplyStatusEvent_UnknownEvent(t *testing.T) {
	next, err := ApplyStatusEvent(StatusDraft, "unknown_event")
	if err == nil {
		t.Error("sự kiện không tồn tại phải trả về lỗi")
	}
	if next != StatusDraft {
		t.Errorf("trạng thái phải giữ nguyên draft, nhận được %s", next)
	}
}

func TestMergeSnapshot_RoundTrip(t *testing.T) {
	source := map[string]string{"blogPost": "A"}
	merged := MergeSnapshot(source, map[string]string{"tweet": "B"})

	if merged["blogPost"] != "A" || merged["tweet"] != "B" {
		t.Errorf("merge phải giữ format cũ và thêm format mới, nhận được %v", merged)
	}
	if len(merged) != 2 {
		t.Errorf("snapshot merge phải có đúng 2 format, nhận được %d", len(merged))
	}
	// Snapshot nguồn không bị sửa
	if source["tweet"] != "" || len(source) != 1 {
		t.Errorf("snapshot nguồn phải giữ nguyên, nhận được %v", source)
	}
}

func TestMergeSnapshot_OverridesFormat(t *testing.T) {
	source := map[string]string{"tweet": "Hello"}
	merged := MergeSnapshot(source, map[string]string{"tweet": "Hello, world!"})

	if merged["tweet"] != "Hello, world!" {
		t.Errorf("format trong fragment phải ghi đè, nhận được %q", merged["tweet"])
	}
	if source["tweet"] != "Hello" {
		t.Errorf("version gốc phải giữ nguyên text cũ, nhận được %q", source["tweet"])
	}
}

func TestValidateSnapshotFragment(t *testing.T) {
	snapshot, err := ValidateSnapshotFragment(map[string]interface{}{"blogPost": "text"})
	if err != nil {
		t.Fatalf("snapshot hợp lệ bị từ chối: %v", err)
	}
	if snapshot["blogPost"] != "text" {
		t.Errorf("giá trị snapshot sai, nhận được %v", snapshot)
	}

	if _, err := ValidateSnapshotFragment(map[string]interface{}{"blogPost": 42}); err == nil {
		t.Error("giá trị không phải chuỗi phải bị từ chối")
	}
	if _, err := ValidateSnapshotFragment(map[string]interface{}{}); err == nil {
		t.Error("snapshot rỗng phải bị từ chối")
	}
}

func TestResolveModerationNotes_AsymmetricRule(t *testing.T) {
	keep := "keep this note"

	// Bỏ cờ không truyền ghi chú: xóa về rỗng
	if got := ResolveModerationNotes("old note", false, nil); got != "" {
		t.Errorf("bỏ cờ không truyền ghi chú phải xóa về rỗng, nhận được %q", got)
	}
	// Bỏ cờ có truyền ghi chú tường minh: giữ ghi chú truyền lên
	if got := ResolveModerationNotes("old note", false, &keep); got != keep {
		t.Errorf("ghi chú truyền tường minh phải được giữ, nhận được %q", got)
	}
	// Gắn cờ không truyền ghi chú: giữ ghi chú cũ
	if got := ResolveModerationNotes("old note", true, nil); got != "old note" {
		t.Errorf("gắn cờ không truyền ghi chú phải giữ ghi chú cũ, nhận được %q", got)
	}
	// Truyền chuỗi rỗng tường minh khác với không truyền
	empty := ""
	if got := ResolveModerationNotes("old note", true, &empty); got != "" {
		t.Errorf("truyền chuỗi rỗng tường minh phải ghi đè về rỗng, nhận được %q", got)
	}
}

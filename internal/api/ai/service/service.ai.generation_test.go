package aisvc

import (
	"strings"
	"testing"
	"time"

	models "content_craft/internal/api/ai/models"
	campmodels "content_craft/internal/api/campaign/models"
)

func TestRenderPromptThayTheBien(t *testing.T) {
	template := &models.AIPromptTemplate{
		Name:   "generate-content",
		Prompt: "Viết nội dung cho chiến dịch {{title}} với tông giọng {{tone}}.",
		Variables: []models.AIPromptTemplateVariable{
			{Name: "title", Required: true},
			{Name: "tone", Required: false, Default: "thân thiện"},
		},
	}

	rendered, err := RenderPrompt(template, map[string]interface{}{"title": "Ra mắt sản phẩm"})
	if err != nil {
		t.Fatalf("RenderPrompt trả về lỗi: %v", err)
	}
	if rendered != "Viết nội dung cho chiến dịch Ra mắt sản phẩm với tông giọng thân thiện." {
		t.Errorf("Prompt render sai: %s", rendered)
	}
}

func TestRenderPromptThieuBienBatBuoc(t *testing.T) {
	template := &models.AIPromptTemplate{
		Name:   "debate",
		Prompt: "Brief: {{brief}}",
		Variables: []models.AIPromptTemplateVariable{
			{Name: "brief", Required: true},
		},
	}
	if _, err := RenderPrompt(template, map[string]interface{}{}); err == nil {
		t.Error("Thiếu biến bắt buộc không có default phải trả về lỗi")
	}
}

func TestRenderPromptTemplateNil(t *testing.T) {
	if _, err := RenderPrompt(nil, nil); err == nil {
		t.Error("Template nil phải trả về lỗi")
	}
}

func TestParseCompletionPayload(t *testing.T) {
	payload, err := ParseCompletionPayload(`{"text": "nội dung mới"}`)
	if err != nil {
		t.Fatalf("JSON hợp lệ bị từ chối: %v", err)
	}
	if payload["text"] != "nội dung mới" {
		t.Errorf("Payload parse sai: %v", payload)
	}
}

func TestParseCompletionPayloadCodeFence(t *testing.T) {
	text := "```json\n{\"content\": {\"tweet\": \"xin chào\"}}\n```"
	payload, err := ParseCompletionPayload(text)
	if err != nil {
		t.Fatalf("JSON trong code fence bị từ chối: %v", err)
	}
	content, ok := payload["content"].(map[string]interface{})
	if !ok || content["tweet"] != "xin chào" {
		t.Errorf("Payload trong code fence parse sai: %v", payload)
	}
}

func TestParseCompletionPayloadKhongPhaiJSON(t *testing.T) {
	if _, err := ParseCompletionPayload("Xin lỗi, tôi không thể giúp."); err == nil {
		t.Error("Text không phải JSON phải trả về lỗi")
	}
}

func TestParseInteractions(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"actorName": "Strategist", "role": "planner", "message": "Nên nhắm vào Gen Z"},
		map[string]interface{}{"actorName": "Critic", "message": "Cần số liệu cụ thể hơn"},
	}
	interactions, err := parseInteractions(raw)
	if err != nil {
		t.Fatalf("parseInteractions trả về lỗi: %v", err)
	}
	if len(interactions) != 2 {
		t.Fatalf("Mong đợi 2 interaction, nhận được %d", len(interactions))
	}
	if interactions[0].ActorName != "Strategist" || interactions[0].Role != "planner" {
		t.Errorf("Interaction đầu tiên parse sai: %+v", interactions[0])
	}
	if interactions[1].Timestamp == 0 {
		t.Error("Interaction phải được gán timestamp")
	}
}

func TestParseInteractionsThieuMessage(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"actorName": "Strategist"},
	}
	if _, err := parseInteractions(raw); err == nil {
		t.Error("Turn thiếu message phải bị từ chối")
	}
}

func TestParseInteractionsKhongPhaiMang(t *testing.T) {
	if _, err := parseInteractions("không phải mảng"); err == nil {
		t.Error("turns không phải mảng phải bị từ chối")
	}
	if _, err := parseInteractions([]interface{}{}); err == nil {
		t.Error("turns rỗng phải bị từ chối")
	}
}

func TestParseScheduledPosts(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{
			"format":      "tweet",
			"platform":    "twitter",
			"description": "Đăng buổi sáng",
			"scheduledAt": float64(1767225600000),
		},
		map[string]interface{}{
			"format":   "blogPost",
			"platform": "website",
			"status":   "approved",
		},
	}
	posts, err := parseScheduledPosts(raw)
	if err != nil {
		t.Fatalf("parseScheduledPosts trả về lỗi: %v", err)
	}
	if len(posts) != 2 {
		t.Fatalf("Mong đợi 2 post, nhận được %d", len(posts))
	}
	if posts[0].ScheduledAt != 1767225600000 {
		t.Errorf("ScheduledAt parse sai: %d", posts[0].ScheduledAt)
	}
	if posts[0].Status != "draft" {
		t.Errorf("Status vắng mặt phải mặc định là draft, nhận được %s", posts[0].Status)
	}
	if posts[1].Status != "approved" {
		t.Errorf("Status khai báo phải được giữ nguyên, nhận được %s", posts[1].Status)
	}
	if posts[0].ID.IsZero() || posts[1].ID.IsZero() {
		t.Error("Mỗi post phải được cấp ID mới")
	}
}

func TestParseScheduledPostsThieuPlatform(t *testing.T) {
	raw := []interface{}{
		map[string]interface{}{"format": "tweet"},
	}
	if _, err := parseScheduledPosts(raw); err == nil {
		t.Error("Post thiếu platform phải bị từ chối")
	}
}

func TestParseTimestampMilli(t *testing.T) {
	if got := parseTimestampMilli(float64(1767225600000)); got != 1767225600000 {
		t.Errorf("Số unix milli parse sai: %d", got)
	}

	want := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if got := parseTimestampMilli("2026-01-01T00:00:00Z"); got != want {
		t.Errorf("Chuỗi RFC3339 parse sai: %d, mong đợi %d", got, want)
	}

	if got := parseTimestampMilli("không phải thời gian"); got != 0 {
		t.Errorf("Giá trị không hợp lệ phải trả về 0, nhận được %d", got)
	}
	if got := parseTimestampMilli(nil); got != 0 {
		t.Errorf("Giá trị nil phải trả về 0, nhận được %d", got)
	}
}

func TestCampaignVariablesGhepContentGoals(t *testing.T) {
	campaign := campmodels.Campaign{
		Title:        "Ra mắt sản phẩm",
		Brief:        "Giới thiệu dòng sản phẩm mới",
		ContentGoals: []string{"awareness", "engagement"},
	}
	vars := campaignVariables(&campaign)
	goals, ok := vars["contentGoals"].(string)
	if !ok || !strings.Contains(goals, "awareness") || !strings.Contains(goals, "engagement") {
		t.Errorf("contentGoals phải được ghép thành chuỗi: %v", vars["contentGoals"])
	}
	if vars["title"] != campaign.Title {
		t.Errorf("title không khớp: %v", vars["title"])
	}
}

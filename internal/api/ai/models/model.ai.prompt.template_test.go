package models

import (
	"strings"
	"testing"
)

func TestValidateAgainstSchemaHopLe(t *testing.T) {
	schema := []OutputField{
		{Name: "content", Kind: KindObject, Required: true},
		{Name: "turns", Kind: KindArray, Required: true},
		{Name: "score", Kind: KindNumber, Required: false},
	}
	payload := map[string]interface{}{
		"content": map[string]interface{}{"blogPost": "bài viết"},
		"turns":   []interface{}{"a", "b"},
		"score":   float64(8),
	}
	if err := ValidateAgainstSchema(schema, payload); err != nil {
		t.Errorf("Payload khớp schema nhưng bị từ chối: %v", err)
	}
}

func TestValidateAgainstSchemaThieuFieldBatBuoc(t *testing.T) {
	schema := []OutputField{
		{Name: "content", Kind: KindObject, Required: true},
	}
	err := ValidateAgainstSchema(schema, map[string]interface{}{"other": "x"})
	if err == nil {
		t.Fatal("Thiếu field bắt buộc phải trả về lỗi")
	}
	if !strings.Contains(err.Error(), "content") {
		t.Errorf("Lỗi phải nêu tên field thiếu, nhận được: %v", err)
	}
}

func TestValidateAgainstSchemaFieldTuyChonVang(t *testing.T) {
	schema := []OutputField{
		{Name: "notes", Kind: KindString, Required: false},
	}
	if err := ValidateAgainstSchema(schema, map[string]interface{}{}); err != nil {
		t.Errorf("Field tùy chọn vắng mặt không được coi là lỗi: %v", err)
	}
}

func TestValidateAgainstSchemaSaiKieu(t *testing.T) {
	schema := []OutputField{
		{Name: "turns", Kind: KindArray, Required: true},
	}
	err := ValidateAgainstSchema(schema, map[string]interface{}{"turns": "không phải mảng"})
	if err == nil {
		t.Fatal("Field sai kiểu phải trả về lỗi")
	}
	if strings.Contains(err.Error(), "không phải mảng") {
		t.Errorf("Lỗi không được chứa nội dung thô của response: %v", err)
	}
}

func TestMatchesKind(t *testing.T) {
	cases := []struct {
		value    interface{}
		kind     string
		expected bool
	}{
		{"text", KindString, true},
		{float64(3.5), KindNumber, true},
		{int(7), KindNumber, true},
		{"3.5", KindNumber, false},
		{[]interface{}{1, 2}, KindArray, true},
		{map[string]interface{}{"k": "v"}, KindObject, true},
		{nil, KindString, false},
		{"x", "unknown", false},
	}
	for _, tc := range cases {
		if got := matchesKind(tc.value, tc.kind); got != tc.expected {
			t.Errorf("matchesKind(%v, %s) = %v, mong đợi %v", tc.value, tc.kind, got, tc.expected)
		}
	}
}

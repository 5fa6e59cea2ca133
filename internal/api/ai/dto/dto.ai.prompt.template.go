package aidto

import (
	models "content_craft/internal/api/ai/models"
)

// AIPromptTemplateCreateInput dữ liệu đầu vào khi tạo AI prompt template.
// Variables và OutputSchema dùng trực tiếp kiểu của model vì không cần transform.
type AIPromptTemplateCreateInput struct {
	Name         string                            `json:"name" validate:"required"`
	Description  string                            `json:"description,omitempty"`
	Purpose      string                            `json:"purpose" validate:"required,oneof=debate generate revise translate optimize schedule"`
	Prompt       string                            `json:"prompt" validate:"required"`
	Variables    []models.AIPromptTemplateVariable `json:"variables,omitempty"`
	OutputSchema []models.OutputField              `json:"outputSchema" validate:"required,min=1,dive"`
	Model        string                            `json:"model,omitempty"`
	Temperature  *float64                          `json:"temperature,omitempty"`
	MaxTokens    *int                              `json:"maxTokens,omitempty"`
}

// AIPromptTemplateUpdateInput dữ liệu đầu vào khi cập nhật AI prompt template
type AIPromptTemplateUpdateInput struct {
	Name         string                            `json:"name,omitempty"`
	Description  string                            `json:"description,omitempty"`
	Purpose      string                            `json:"purpose,omitempty" validate:"omitempty,oneof=debate generate revise translate optimize schedule"`
	Prompt       string                            `json:"prompt,omitempty"`
	Variables    []models.AIPromptTemplateVariable `json:"variables,omitempty"`
	OutputSchema []models.OutputField              `json:"outputSchema,omitempty"`
	Model        string                            `json:"model,omitempty"`
	Temperature  *float64                          `json:"temperature,omitempty"`
	MaxTokens    *int                              `json:"maxTokens,omitempty"`
}

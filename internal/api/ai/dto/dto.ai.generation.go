package aidto

// ReviseInput đầu vào chỉnh sửa một định dạng nội dung
type ReviseInput struct {
	Format      string `json:"format" validate:"required,no_xss"`
	Instruction string `json:"instruction" validate:"required"`
}

// TranslateInput đầu vào dịch một định dạng nội dung
type TranslateInput struct {
	Format         string `json:"format" validate:"required,no_xss"`
	TargetLanguage string `json:"targetLanguage" validate:"required,no_xss"`
}

// OptimizeInput đầu vào tối ưu một định dạng nội dung
type OptimizeInput struct {
	Format string `json:"format" validate:"required,no_xss"`
	Goal   string `json:"goal" validate:"required"`
}

// Package models - model người dùng (User) thuộc domain auth.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Các vai trò của người dùng trong hệ thống.
// Admin có quyền thao tác trên mọi chiến dịch, editor chỉ trên chiến dịch mình sở hữu,
// viewer chỉ được đọc.
const (
	RoleViewer = "viewer"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// User định nghĩa mô hình người dùng.
// Token chứa token xác thực mới nhất của người dùng.
// Tokens chứa danh sách các token, mỗi thiết bị khác nhau sẽ có một token riêng để xác thực (bằng hwid).
type User struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name      string             `json:"name" bson:"name"`
	Email     string             `json:"email,omitempty" bson:"email,omitempty" index:"unique,sparse"`
	Password  string             `json:"-" bson:"password,omitempty"`
	Salt      string             `json:"-" bson:"salt,omitempty"`
	Role      string             `json:"role" bson:"role" index:"single:1"`
	Token     string             `json:"token" bson:"token"`
	Tokens    []Token            `json:"-" bson:"tokens"`
	IsBlock   bool               `json:"-" bson:"isBlock"`
	BlockNote string             `json:"-" bson:"blockNote"`
	CreatedAt int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64              `json:"updatedAt" bson:"updatedAt"`
}

// CanWrite kiểm tra vai trò có quyền ghi dữ liệu không (editor hoặc admin)
func (u *User) CanWrite() bool {
	return u.Role == RoleEditor || u.Role == RoleAdmin
}

// IsAdmin kiểm tra người dùng có vai trò admin không
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Sanitize xóa các trường nhạy cảm trước khi trả về cho client
func (u *User) Sanitize() {
	u.Password = ""
	u.Salt = ""
	u.Tokens = nil
}

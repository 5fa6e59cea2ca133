// Package authhdl - handler admin (block user, set role).
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "content_craft/internal/api/auth/dto"
	models "content_craft/internal/api/auth/models"
	authsvc "content_craft/internal/api/auth/service"
	basehdl "content_craft/internal/api/base/handler"
	"content_craft/internal/common"
)

// AdminHandler xử lý các route liên quan đến quản trị viên
type AdminHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput]
	UserCRUD *authsvc.UserService
}

// NewAdminHandler tạo một instance mới của AdminHandler
func NewAdminHandler() (*AdminHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	return &AdminHandler{
		BaseHandler: basehdl.NewBaseHandler[models.User, authdto.UserRegisterInput, authdto.UserChangeInfoInput](userService),
		UserCRUD:    userService,
	}, nil
}

// HandleSetRole xử lý thiết lập vai trò cho người dùng (viewer/editor/admin)
func (h *AdminHandler) HandleSetRole(c fiber.Ctx) error {
	var input authdto.UserSetRoleInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	result, err := h.UserCRUD.SetRole(c.Context(), &input)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleBlockUser xử lý khóa người dùng
func (h *AdminHandler) HandleBlockUser(c fiber.Ctx) error {
	var input authdto.BlockUserInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	result, err := h.UserCRUD.SetBlock(c.Context(), input.Email, true, input.Note)
	h.HandleResponse(c, result, err)
	return nil
}

// HandleUnBlockUser xử lý mở khóa người dùng
func (h *AdminHandler) HandleUnBlockUser(c fiber.Ctx) error {
	var input authdto.UnBlockUserInput
	if err := h.ParseRequestBody(c, &input); err != nil {
		h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, err.Error(), common.StatusBadRequest, nil))
		return nil
	}
	if err := h.ValidateInput(&input); err != nil {
		h.HandleResponse(c, nil, err)
		return nil
	}
	result, err := h.UserCRUD.SetBlock(c.Context(), input.Email, false, "")
	h.HandleResponse(c, result, err)
	return nil
}

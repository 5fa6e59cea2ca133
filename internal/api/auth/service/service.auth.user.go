// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "content_craft/internal/api/auth/dto"
	models "content_craft/internal/api/auth/models"
	basesvc "content_craft/internal/api/base/service"
	"content_craft/internal/common"
	"content_craft/internal/global"
)

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Register đăng ký người dùng mới với vai trò mặc định viewer.
// Email đã tồn tại sẽ trả về lỗi duplicate từ unique index.
func (s *UserService) Register(ctx context.Context, input *authdto.UserRegisterInput) (*models.User, error) {
	salt, err := GenerateSalt()
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: HashPassword(input.Password, salt),
		Salt:     salt,
		Role:     models.RoleViewer,
	}

	created, err := s.BaseServiceMongoImpl.InsertOne(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.NewError(common.ErrCodeAuthCredentials, "Email đã được sử dụng", common.StatusConflict, nil)
		}
		return nil, err
	}

	created.Sanitize()
	return &created, nil
}

// Login xác thực email/mật khẩu và phát hành JWT token mới.
// Token mới nhất lưu vào field token, token theo thiết bị lưu vào array tokens (theo hwid).
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !ComparePassword(input.Password, user.Salt, user.Password) {
		return nil, common.ErrInvalidCredentials
	}

	if user.IsBlock {
		return nil, common.NewError(
			common.ErrCodeAuthCredentials,
			"Tài khoản đã bị khóa: "+user.BlockNote,
			common.StatusForbidden,
			nil,
		)
	}

	rdNumber := rand.Intn(100)
	currentTime := time.Now().Unix()
	token, err := CreateToken(global.ServerConfig.JwtSecret, user.ID.Hex(), strconv.FormatInt(currentTime, 16), strconv.Itoa(rdNumber))
	if err != nil {
		return nil, err
	}

	// Cập nhật token mới nhất và token theo hwid
	user.Token = token
	idTokenExist := -1
	for i, t := range user.Tokens {
		if t.Hwid == input.Hwid {
			idTokenExist = i
			break
		}
	}
	if idTokenExist == -1 {
		user.Tokens = append(user.Tokens, models.Token{Hwid: input.Hwid, JwtToken: token})
	} else {
		user.Tokens[idTokenExist].JwtToken = token
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"token":  user.Token,
			"tokens": user.Tokens,
		},
	}
	updatedUser, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "error": err.Error()}).Error("Login: Lỗi khi cập nhật token vào user")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updatedUser.ID.Hex(), "email": updatedUser.Email}).Info("Login: Đăng nhập thành công")
	updatedUser.Sanitize()
	return &updatedUser, nil
}

// Logout đăng xuất người dùng (xóa token theo hwid)
func (s *UserService) Logout(ctx context.Context, userID primitive.ObjectID, input *authdto.UserLogoutInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}
	newTokens := make([]models.Token, 0)
	for _, t := range user.Tokens {
		if t.Hwid != input.Hwid {
			newTokens = append(newTokens, t)
		}
	}
	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"tokens": newTokens,
			"token":  "",
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// ChangePassword đổi mật khẩu và vô hiệu toàn bộ token hiện có
func (s *UserService) ChangePassword(ctx context.Context, userID primitive.ObjectID, input *authdto.UserChangePasswordInput) error {
	user, err := s.BaseServiceMongoImpl.FindOneById(ctx, userID)
	if err != nil {
		return err
	}

	if !ComparePassword(input.OldPassword, user.Salt, user.Password) {
		return common.ErrInvalidCredentials
	}

	salt, err := GenerateSalt()
	if err != nil {
		return err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{
			"password": HashPassword(input.NewPassword, salt),
			"salt":     salt,
			"token":    "",
			"tokens":   []models.Token{},
		},
	}
	_, err = s.BaseServiceMongoImpl.UpdateById(ctx, userID, updateData)
	return err
}

// SetRole gán vai trò cho người dùng theo email (chỉ admin gọi được qua handler)
func (s *UserService) SetRole(ctx context.Context, input *authdto.UserSetRoleInput) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	updateData := &basesvc.UpdateData{
		Set: map[string]interface{}{"role": input.Role},
	}
	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, updateData)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": updated.ID.Hex(), "role": input.Role}).Info("SetRole: Đã gán vai trò mới")
	updated.Sanitize()
	return &updated, nil
}

// SetBlock khóa hoặc mở khóa người dùng theo email.
// Khi khóa, toàn bộ token hiện có bị vô hiệu.
func (s *UserService) SetBlock(ctx context.Context, email string, isBlock bool, note string) (*models.User, error) {
	user, err := s.BaseServiceMongoImpl.FindOne(ctx, bson.M{"email": email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	set := map[string]interface{}{
		"isBlock":   isBlock,
		"blockNote": note,
	}
	if isBlock {
		set["token"] = ""
		set["tokens"] = []models.Token{}
	}

	updated, err := s.BaseServiceMongoImpl.UpdateById(ctx, user.ID, &basesvc.UpdateData{Set: set})
	if err != nil {
		return nil, err
	}

	updated.Sanitize()
	return &updated, nil
}

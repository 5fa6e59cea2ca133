package middleware

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	models "content_craft/internal/api/auth/models"
	authsvc "content_craft/internal/api/auth/service"
	"content_craft/internal/common"
	"content_craft/internal/global"
	"content_craft/internal/logger"
	"content_craft/internal/utility"
)

// AuthManager quản lý xác thực và phân quyền người dùng
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, err
	}

	return &AuthManager{
		UserCRUD: userService,
		// Cache token → user 5 phút để giảm truy vấn DB mỗi request
		Cache: utility.NewCache(5*time.Minute, 10*time.Minute),
	}, nil
}

// findUserByToken tìm user sở hữu token, ưu tiên cache trước.
// Token phải còn gắn với user trong DB (logout/đổi mật khẩu làm token mất hiệu lực).
func (am *AuthManager) findUserByToken(ctx context.Context, token string) (models.User, error) {
	cacheKey := "auth_token:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(models.User), nil
	}

	// Query field "token" (token mới nhất) trước vì nó được cập nhật mỗi lần login.
	// Nếu không tìm thấy, query trong array "tokens" (tokens theo hwid).
	user, err := am.UserCRUD.FindOne(ctx, bson.M{"token": token}, nil)
	if err != nil {
		user, err = am.UserCRUD.FindOne(ctx, bson.M{"tokens.jwtToken": token}, nil)
		if err != nil {
			return models.User{}, err
		}
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// roleSatisfies kiểm tra vai trò của user có đạt mức yêu cầu không.
// Thứ tự quyền: admin > editor > viewer.
func roleSatisfies(userRole string, requiredRole string) bool {
	switch requiredRole {
	case "":
		return true
	case models.RoleViewer:
		return userRole == models.RoleViewer || userRole == models.RoleEditor || userRole == models.RoleAdmin
	case models.RoleEditor:
		return userRole == models.RoleEditor || userRole == models.RoleAdmin
	case models.RoleAdmin:
		return userRole == models.RoleAdmin
	default:
		return false
	}
}

// AuthMiddleware middleware xác thực cho Fiber.
// requireRole là vai trò tối thiểu: "" chỉ cần đăng nhập,
// models.RoleEditor yêu cầu editor hoặc admin, models.RoleAdmin chỉ admin.
func AuthMiddleware(requireRole string) fiber.Handler {
	// Sử dụng singleton instance của AuthManager
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		// Xác thực chữ ký và hạn của JWT trước khi chạm DB
		claims, err := authsvc.VerifyToken(global.ServerConfig.JwtSecret, token)
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		// Token hợp lệ về mặt chữ ký nhưng phải còn gắn với user trong DB
		user, err := authManager.findUserByToken(c.Context(), token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("[AUTH] Token not found in database")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Claims phải khớp với user sở hữu token
		if claims.UserID != user.ID.Hex() {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		// Kiểm tra user có bị block không
		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(
				common.ErrCodeAuthCredentials,
				"Tài khoản đã bị khóa: "+user.BlockNote,
				common.StatusForbidden,
				nil,
			))
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)
		c.Locals("role", user.Role)

		// Kiểm tra vai trò tối thiểu
		if !roleSatisfies(user.Role, requireRole) {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"user_id":       user.ID.Hex(),
				"user_role":     user.Role,
				"required_role": requireRole,
				"path":          c.Path(),
			}).Warn("[AUTH] User does not have required role")
			if requireRole == models.RoleAdmin {
				HandleErrorResponse(c, common.ErrAdminRequired)
			} else {
				HandleErrorResponse(c, common.ErrEditorRequired)
			}
			return nil
		}

		return c.Next()
	}
}

// Package router đăng ký các route thuộc domain campaign: CRUD, version ledger, moderation.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	models "content_craft/internal/api/auth/models"
	campaignhdl "content_craft/internal/api/campaign/handler"
	"content_craft/internal/api/middleware"
	apirouter "content_craft/internal/api/router"
)

// Register đăng ký tất cả route campaign lên v1.
// Đọc yêu cầu đăng nhập; ghi yêu cầu editor trở lên; moderation chỉ admin.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	campaignHandler, err := campaignhdl.NewCampaignHandler()
	if err != nil {
		return fmt.Errorf("failed to create campaign handler: %w", err)
	}

	readMiddleware := middleware.AuthMiddleware("")
	writeMiddleware := middleware.AuthMiddleware(models.RoleEditor)
	adminMiddleware := middleware.AuthMiddleware(models.RoleAdmin)

	// CRUD campaign
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "POST", "/insert-one", []fiber.Handler{writeMiddleware}, campaignHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "GET", "/find-by-id/:id", []fiber.Handler{readMiddleware}, campaignHandler.HandleGet)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "GET", "/find-with-pagination", []fiber.Handler{readMiddleware}, campaignHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "PUT", "/update-by-id/:id", []fiber.Handler{writeMiddleware}, campaignHandler.HandleUpdate)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "DELETE", "/delete-by-id/:id", []fiber.Handler{writeMiddleware}, campaignHandler.HandleDelete)

	// Trạng thái tường minh (publish/archive/reactivate)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "POST", "/change-status/:id", []fiber.Handler{writeMiddleware}, campaignHandler.HandleChangeStatus)

	// Version ledger
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "POST", "/append-version/:id", []fiber.Handler{writeMiddleware}, campaignHandler.HandleAppendVersion)
	apirouter.RegisterRouteWithMiddleware(v1, "/campaign", "GET", "/list-versions/:id", []fiber.Handler{readMiddleware}, campaignHandler.HandleListVersions)

	// Moderation overlay (chỉ admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/moderation", "POST", "/campaign-flag/:id", []fiber.Handler{adminMiddleware}, campaignHandler.HandleSetCampaignFlag)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/moderation", "POST", "/version-flag/:id", []fiber.Handler{adminMiddleware}, campaignHandler.HandleSetVersionFlag)
	apirouter.RegisterRouteWithMiddleware(v1, "/admin/moderation", "GET", "/flagged-versions", []fiber.Handler{adminMiddleware}, campaignHandler.HandleListFlaggedVersions)

	return nil
}

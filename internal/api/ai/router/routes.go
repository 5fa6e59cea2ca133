// Package router đăng ký các route thuộc domain AI: generation pipeline và prompt templates.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	aihdl "content_craft/internal/api/ai/handler"
	authmodels "content_craft/internal/api/auth/models"
	"content_craft/internal/api/middleware"
	apirouter "content_craft/internal/api/router"
)

// Register đăng ký tất cả route AI lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	generationHandler, err := aihdl.NewGenerationHandler()
	if err != nil {
		return fmt.Errorf("create generation handler: %w", err)
	}

	// Các bước generation thay đổi trạng thái và version ledger của campaign,
	// nên yêu cầu quyền editor trở lên.
	editorMiddleware := middleware.AuthMiddleware(authmodels.RoleEditor)
	apirouter.RegisterRouteWithMiddleware(v1, "/ai", "POST", "/run-debate/:id", []fiber.Handler{editorMiddleware}, generationHandler.HandleRunDebate)
	apirouter.RegisterRouteWithMiddleware(v1, "/ai", "POST", "/generate-content/:id", []fiber.Handler{editorMiddleware}, generationHandler.HandleGenerateContent)
	apirouter.RegisterRouteWithMiddleware(v1, "/ai", "POST", "/revise/:id", []fiber.Handler{editorMiddleware}, generationHandler.HandleRevise)
	apirouter.RegisterRouteWithMiddleware(v1, "/ai", "POST", "/translate/:id", []fiber.Handler{editorMiddleware}, generationHandler.HandleTranslate)
	apirouter.RegisterRouteWithMiddleware(v1, "/ai", "POST", "/optimize/:id", []fiber.Handler{editorMiddleware}, generationHandler.HandleOptimize)
	apirouter.RegisterRouteWithMiddleware(v1, "/ai", "POST", "/plan-schedule/:id", []fiber.Handler{editorMiddleware}, generationHandler.HandlePlanSchedule)

	aiPromptTemplateHandler, err := aihdl.NewAIPromptTemplateHandler()
	if err != nil {
		return fmt.Errorf("create AI prompt template handler: %w", err)
	}
	// Prompt template là cấu hình hệ thống, chỉ admin được chỉnh sửa.
	r.RegisterCRUDRoutes(v1, "/ai/prompt-templates", aiPromptTemplateHandler, apirouter.ReadWriteConfig, authmodels.RoleAdmin)

	return nil
}

// Package router đăng ký các route thuộc domain feedback.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"content_craft/internal/api/middleware"
	feedbackhdl "content_craft/internal/api/feedback/handler"
	apirouter "content_craft/internal/api/router"
)

// Register đăng ký các route feedback lên v1.
// Mọi route yêu cầu đăng nhập; viewer cũng được gửi đánh giá.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	feedbackHandler, err := feedbackhdl.NewFeedbackHandler()
	if err != nil {
		return fmt.Errorf("failed to create feedback handler: %w", err)
	}

	authMiddleware := middleware.AuthMiddleware("")
	apirouter.RegisterRouteWithMiddleware(v1, "/feedback", "POST", "/insert-one", []fiber.Handler{authMiddleware}, feedbackHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/feedback", "GET", "/find-by-campaign/:id", []fiber.Handler{authMiddleware}, feedbackHandler.HandleListForCampaign)
	apirouter.RegisterRouteWithMiddleware(v1, "/feedback", "DELETE", "/delete-by-id/:id", []fiber.Handler{authMiddleware}, feedbackHandler.HandleDelete)
	return nil
}

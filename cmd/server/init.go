package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"content_craft/config"
	aimodels "content_craft/internal/api/ai/models"
	authmodels "content_craft/internal/api/auth/models"
	campmodels "content_craft/internal/api/campaign/models"
	"content_craft/internal/api/events"
	feedbackmodels "content_craft/internal/api/feedback/models"
	"content_craft/internal/database"
	"content_craft/internal/global"
	"content_craft/internal/logger"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
	initDataChangeEvents() // Đăng ký handler cho data-change events
}

// initDataChangeEvents đăng ký audit log cho mọi thay đổi dữ liệu qua CRUD
func initDataChangeEvents() {
	events.OnDataChanged(func(ctx context.Context, e events.DataChangeEvent) {
		logger.GetAuditLogger().WithFields(logrus.Fields{
			"collection": e.CollectionName,
			"operation":  e.Operation,
		}).Info("Data changed")
	})
	logrus.Info("Registered data-change event handlers")
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Users = "auth_users"
	global.MongoDB_ColNames.Campaigns = "campaigns"
	global.MongoDB_ColNames.UserFeedbacks = "user_feedbacks"
	global.MongoDB_ColNames.AIPromptTemplates = "ai_prompt_templates"

	logrus.Info("Initialized collection names") // Ghi log thông báo đã khởi tạo tên các collection
}

// Hàm khởi tạo validator (dùng global.InitValidator để đăng ký custom validators: no_xss, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator") // Ghi log thông báo đã khởi tạo validator
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil") // Ghi log lỗi nếu khởi tạo cấu hình thất bại
	}
	logrus.Info("Initialized server config") // Ghi log thông báo đã khởi tạo cấu hình server
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err) // Ghi log lỗi nếu kết nối database thất bại
	}
	logrus.Info("Connected to MongoDB") // Ghi log thông báo đã kết nối database thành công

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections") // Ghi log thông báo đã đảm bảo database và các collection

	// Khởi tạo các index cho các collection
	dbName := global.ServerConfig.MongoDB_DBName
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Users), authmodels.User{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.Campaigns), campmodels.Campaign{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.UserFeedbacks), feedbackmodels.UserFeedback{})
	database.CreateIndexes(context.TODO(), global.MongoDB_Session.Database(dbName).Collection(global.MongoDB_ColNames.AIPromptTemplates), aimodels.AIPromptTemplate{})
}

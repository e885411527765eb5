package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/EldarGGG/nexus-back/config"
	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	webhookmodels "github.com/EldarGGG/nexus-back/internal/api/webhook/models"
	"github.com/EldarGGG/nexus-back/internal/database"
	"github.com/EldarGGG/nexus-back/internal/global"
)

// Hàm khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối database
}

// Hàm khởi tạo tên các collection trong database
func initColNames() {
	global.MongoDB_ColNames.Companies = "companies"
	global.MongoDB_ColNames.CompanyChannels = "company_channels"
	global.MongoDB_ColNames.Conversations = "conversations"
	global.MongoDB_ColNames.Messages = "messages"
	global.MongoDB_ColNames.WebhookLogs = "webhook_logs"

	logrus.Info("Initialized collection names")
}

// Hàm khởi tạo validator (global.InitValidator đăng ký custom validators: platform, ...)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// Hàm khởi tạo cấu hình server
func initConfig() {
	global.MongoDB_ServerConfig = config.NewConfig()
	if global.MongoDB_ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// Hàm khởi tạo kết nối database
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.Connect(global.MongoDB_ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	// Khởi tạo các db và collections nếu chưa có
	database.EnsureDatabaseAndCollections(global.MongoDB_Session)
	logrus.Info("Ensured database and collections")

	// Khởi tạo các index cho các collection (unique compound index là chỗ
	// idempotency và get-or-create của pipeline dựa vào, phải có trước khi nhận webhook)
	dbName := global.MongoDB_ServerConfig.MongoDB_DBName
	db := global.MongoDB_Session.Database(dbName)
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Companies), companymodels.Company{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.CompanyChannels), companymodels.CompanyChannel{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Conversations), messagingmodels.Conversation{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.Messages), messagingmodels.Message{})
	database.CreateIndexes(context.TODO(), db.Collection(global.MongoDB_ColNames.WebhookLogs), webhookmodels.WebhookLog{})
}

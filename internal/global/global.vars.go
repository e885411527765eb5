package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/EldarGGG/nexus-back/config"
	"github.com/EldarGGG/nexus-back/internal/registry"
)

// MongoDB_CollectionName chứa tên các collection trong MongoDB
type MongoDB_CollectionName struct {
	Companies       string // Tên collection cho công ty (tenant)
	CompanyChannels string // Tên collection cho cấu hình kênh chat của công ty (credentials theo platform)
	Conversations   string // Tên collection cho hội thoại
	Messages        string // Tên collection cho tin nhắn
	WebhookLogs     string // Tên collection cho log webhook
}

// Các biến toàn cục
var Validate *validator.Validate                                            // Biến để xác thực dữ liệu
var MongoDB_Session *mongo.Client                                           // Phiên kết nối tới MongoDB
var MongoDB_ServerConfig *config.Configuration                              // Cấu hình của server
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections

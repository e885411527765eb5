// Package models chứa model cho domain Webhook.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookLog lưu log của tất cả webhooks nhận được để audit và debug.
// Mọi webhook đều được lưu trước khi parse payload: event bị bỏ qua (callback,
// shape lạ) vẫn để lại dấu vết ở đây cùng lý do trong processError.
type WebhookLog struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"` // ID của log

	// ===== SOURCE INFO =====
	CompanyID primitive.ObjectID `json:"companyId,omitempty" bson:"companyId,omitempty" index:"single:1"` // Công ty nhận webhook
	Platform  string             `json:"platform" bson:"platform" index:"single:1"`                       // telegram / whatsapp / instagram / facebook / signal
	EventType string             `json:"eventType,omitempty" bson:"eventType,omitempty" index:"single:1"` // Loại event: message, callback_query, status, ...

	// ===== REQUEST INFO =====
	RequestHeaders map[string]string `json:"requestHeaders,omitempty" bson:"requestHeaders,omitempty"` // Headers của request
	RawBody        string            `json:"rawBody,omitempty" bson:"rawBody,omitempty"`               // Raw body string (để debug)

	// ===== PROCESSING INFO =====
	Processed    bool   `json:"processed" bson:"processed" index:"single:1"`                // Đã xử lý thành công chưa
	ProcessError string `json:"processError,omitempty" bson:"processError,omitempty"`       // Lỗi hoặc lý do bị bỏ qua
	ProcessedAt  int64  `json:"processedAt,omitempty" bson:"processedAt,omitempty"`         // Thời gian xử lý

	// ===== METADATA =====
	IPAddress string `json:"ipAddress,omitempty" bson:"ipAddress,omitempty"` // IP address của request
	UserAgent string `json:"userAgent,omitempty" bson:"userAgent,omitempty"` // User agent của request

	// ===== TIMESTAMPS =====
	ReceivedAt int64 `json:"receivedAt" bson:"receivedAt" index:"single:-1"` // Thời gian nhận webhook (epoch millis)
	CreatedAt  int64 `json:"createdAt" bson:"createdAt"`                     // Thời gian tạo log
	UpdatedAt  int64 `json:"updatedAt" bson:"updatedAt"`                     // Thời gian cập nhật log
}

package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompanyChannel lưu cấu hình kênh chat của một công ty trên một platform.
// Mỗi công ty chỉ có một cấu hình cho mỗi platform (unique compound index).
// Credentials trong đây được các channel adapter dùng khi gọi platform API.
type CompanyChannel struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                    // ID của cấu hình
	CompanyID primitive.ObjectID `json:"companyId" bson:"companyId" index:"compound:idx_company_platform_unique"` // Công ty sở hữu cấu hình
	Platform  string             `json:"platform" bson:"platform" index:"compound:idx_company_platform_unique;single:1"` // telegram / whatsapp / instagram / facebook / signal

	// ===== CREDENTIALS =====
	BotToken        string `json:"botToken,omitempty" bson:"botToken,omitempty"`               // Bot token (Telegram)
	AccessToken     string `json:"accessToken,omitempty" bson:"accessToken,omitempty"`         // Access token (WhatsApp Cloud API)
	PhoneNumberID   string `json:"phoneNumberId,omitempty" bson:"phoneNumberId,omitempty"`     // Phone number ID (WhatsApp Cloud API)
	PageID          string `json:"pageId,omitempty" bson:"pageId,omitempty"`                   // Page ID (Instagram / Facebook Messenger)
	PageAccessToken string `json:"pageAccessToken,omitempty" bson:"pageAccessToken,omitempty"` // Page access token (Instagram / Facebook Messenger)
	SignalNumber    string `json:"signalNumber,omitempty" bson:"signalNumber,omitempty"`       // Số điện thoại đã đăng ký với signal-cli

	// ===== WEBHOOK =====
	WebhookSecret string `json:"webhookSecret,omitempty" bson:"webhookSecret,omitempty"` // Verify token cho GET hub.challenge (các platform của Meta)

	Active bool `json:"active" bson:"active" index:"single:1"` // Kênh có đang hoạt động không

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

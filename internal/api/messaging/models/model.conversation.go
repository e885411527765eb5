// Package models chứa các model cho domain Messaging (hội thoại, tin nhắn).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Trạng thái của hội thoại
const (
	ConversationStatusActive   = "active"   // Đang hoạt động
	ConversationStatusClosed   = "closed"   // Đã đóng
	ConversationStatusArchived = "archived" // Đã lưu trữ
)

// Participant là một người tham gia hội thoại (người dùng phía platform)
type Participant struct {
	UserID    string `json:"userId" bson:"userId"`                           // ID người dùng trên platform
	Username  string `json:"username,omitempty" bson:"username,omitempty"`   // Username trên platform (nếu có)
	FirstName string `json:"firstName,omitempty" bson:"firstName,omitempty"` // Tên
	LastName  string `json:"lastName,omitempty" bson:"lastName,omitempty"`   // Họ
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`         // Số điện thoại (WhatsApp/Signal)
}

// Conversation đại diện cho một hội thoại giữa công ty và một khách hàng trên một platform.
// Một hội thoại được định danh duy nhất bởi (companyId, platform, externalId):
// externalId là chat/thread id phía platform. Unique compound index đảm bảo
// các webhook đến đồng thời cho cùng một chat hội tụ về đúng một document.
type Conversation struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                                   // ID của hội thoại
	CompanyID  primitive.ObjectID `json:"companyId" bson:"companyId" index:"compound:idx_conversation_key_unique;single:1"`    // Công ty sở hữu hội thoại
	Platform   string             `json:"platform" bson:"platform" index:"compound:idx_conversation_key_unique"`               // telegram / whatsapp / instagram / facebook / signal
	ExternalID string             `json:"externalId" bson:"externalId" index:"compound:idx_conversation_key_unique;text"`      // Chat/thread ID phía platform

	Participants []Participant          `json:"participants" bson:"participants"`             // Người tham gia hội thoại
	Status       string                 `json:"status" bson:"status" index:"single:1"`        // active / closed / archived
	Metadata     map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"` // Thông tin bổ sung từ platform

	LastMessageAt int64 `json:"lastMessageAt,omitempty" bson:"lastMessageAt,omitempty" index:"single:-1"` // Thời gian tin nhắn cuối (epoch millis)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hướng của tin nhắn
const (
	DirectionIncoming = "incoming" // Tin nhắn từ khách hàng gửi đến
	DirectionOutgoing = "outgoing" // Tin nhắn từ công ty gửi đi
)

// Loại tin nhắn
const (
	MessageTypeText     = "text"
	MessageTypeImage    = "image"
	MessageTypeDocument = "document"
	MessageTypeAudio    = "audio"
	MessageTypeVideo    = "video"
	MessageTypeVoice    = "voice"
	MessageTypeLocation = "location"
	MessageTypeContact  = "contact"
	MessageTypeSticker  = "sticker"
)

// SenderInfo là thông tin người gửi tin nhắn tại thời điểm gửi
type SenderInfo struct {
	UserID    string `json:"userId" bson:"userId"`                           // ID người gửi trên platform
	Username  string `json:"username,omitempty" bson:"username,omitempty"`   // Username trên platform (nếu có)
	FirstName string `json:"firstName,omitempty" bson:"firstName,omitempty"` // Tên
	LastName  string `json:"lastName,omitempty" bson:"lastName,omitempty"`   // Họ
	Phone     string `json:"phone,omitempty" bson:"phone,omitempty"`         // Số điện thoại (WhatsApp/Signal)
}

// Attachment là một file/media đính kèm tin nhắn
type Attachment struct {
	Type     string `json:"type" bson:"type"`                               // image / document / audio / video / voice / sticker
	FileID   string `json:"fileId,omitempty" bson:"fileId,omitempty"`       // File ID phía platform (resolve URL qua channel adapter)
	URL      string `json:"url,omitempty" bson:"url,omitempty"`             // URL trực tiếp (nếu platform cung cấp)
	MimeType string `json:"mimeType,omitempty" bson:"mimeType,omitempty"`   // MIME type
	FileName string `json:"fileName,omitempty" bson:"fileName,omitempty"`   // Tên file gốc
	FileSize int64  `json:"fileSize,omitempty" bson:"fileSize,omitempty"`   // Kích thước file (bytes)
	Width    int    `json:"width,omitempty" bson:"width,omitempty"`         // Chiều rộng (ảnh/video)
	Height   int    `json:"height,omitempty" bson:"height,omitempty"`       // Chiều cao (ảnh/video)
	Duration int    `json:"duration,omitempty" bson:"duration,omitempty"`   // Thời lượng (giây, audio/video/voice)
	Caption  string `json:"caption,omitempty" bson:"caption,omitempty"`     // Caption đính kèm media
}

// Message đại diện cho một tin nhắn trong hội thoại.
// Unique compound index (conversationId, platformMessageId) đảm bảo idempotency:
// platform gửi lại cùng một webhook sẽ không tạo ra tin nhắn trùng.
type Message struct {
	ID                primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`                                                                  // ID của tin nhắn
	ConversationID    primitive.ObjectID `json:"conversationId" bson:"conversationId" index:"compound:idx_conversation_message_unique;single:1"`     // Hội thoại chứa tin nhắn
	CompanyID         primitive.ObjectID `json:"companyId" bson:"companyId" index:"single:1"`                                                        // Công ty sở hữu (denormalized để query nhanh)
	Platform          string             `json:"platform" bson:"platform"`                                                                           // Platform nguồn
	PlatformMessageID string             `json:"platformMessageId" bson:"platformMessageId" index:"compound:idx_conversation_message_unique"`        // Message ID phía platform (stringified, dùng dedup)

	Direction   string                 `json:"direction" bson:"direction"`                     // incoming / outgoing
	MessageType string                 `json:"messageType" bson:"messageType" index:"single:1"` // text / image / document / ...
	Content     string                 `json:"content,omitempty" bson:"content,omitempty"`     // Nội dung text hoặc caption
	SenderInfo  SenderInfo             `json:"senderInfo" bson:"senderInfo"`                   // Thông tin người gửi
	Attachments []Attachment           `json:"attachments,omitempty" bson:"attachments,omitempty"` // Media đính kèm
	Metadata    map[string]interface{} `json:"metadata,omitempty" bson:"metadata,omitempty"`   // Chứa message id gốc của platform (telegram_message_id, whatsapp_message_id, ...)

	Processed bool  `json:"processed" bson:"processed"`                      // Đã được xử lý downstream chưa
	Timestamp int64 `json:"timestamp" bson:"timestamp" index:"single:-1"`    // Thời gian platform báo (epoch millis)

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}

// Package deliverydto chứa DTO cho domain Delivery (gửi tin nhắn outbound).
package deliverydto

// DeliverySendRequest là request gửi tin nhắn outbound qua kênh chat của công ty
type DeliverySendRequest struct {
	CompanyID   string `json:"companyId" validate:"required"`
	Platform    string `json:"platform" validate:"required,platform"`
	Recipient   string `json:"recipient" validate:"required"` // chat id / số điện thoại / PSID tùy platform
	MessageType string `json:"messageType" validate:"omitempty,oneof=text image document audio video"`
	Content     string `json:"content"` // Text hoặc caption

	// Media (bắt buộc khi messageType != text)
	MediaURL      string `json:"mediaUrl"`
	MediaFileName string `json:"mediaFileName"`
}

// DeliverySendResponse là kết quả gửi tin nhắn
type DeliverySendResponse struct {
	OK                bool   `json:"ok"`
	PlatformMessageID string `json:"platformMessageId,omitempty"` // Message id phía platform
	MessageID         string `json:"messageId,omitempty"`         // ID tin nhắn đã lưu
	ConversationID    string `json:"conversationId,omitempty"`    // Hội thoại chứa tin nhắn
}

// DeliveryResolveFileRequest là request đổi file id inbound thành URL tải
type DeliveryResolveFileRequest struct {
	CompanyID string `json:"companyId" validate:"required"`
	Platform  string `json:"platform" validate:"required,platform"`
	FileID    string `json:"fileId" validate:"required"`
}

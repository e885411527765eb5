// File: service.normalize.go
package webhooksvc

import (
	"fmt"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
)

// NormalizedInbound là tin nhắn đã được chuẩn hóa từ payload platform-specific
// về schema chung, sẵn sàng để resolve hội thoại và ghi vào messages.
type NormalizedInbound struct {
	ExternalChatID    string                       // Định danh hội thoại phía platform (chat id, số điện thoại, PSID/IGSID)
	PlatformMessageID string                       // Message id phía platform (stringified, dùng dedup)
	EventType         string                       // Loại event gốc: message, edited_message, ...
	MessageType       string                       // text / image / document / ... (messagingmodels.MessageType*)
	Content           string                       // Text hoặc caption
	Sender            messagingmodels.SenderInfo   // Thông tin người gửi
	Attachments       []messagingmodels.Attachment // Media đính kèm
	Timestamp         int64                        // epoch millis
	Metadata          map[string]interface{}       // Dữ liệu platform-native (telegram_message_id, whatsapp_message_id, ...)
}

// IgnoredEvent là event hợp lệ về mặt payload nhưng pipeline chủ động không xử lý
// (callback, postback, status update, receipt). Được ghi log với lý do cụ thể.
type IgnoredEvent struct {
	EventType string // Loại event: callback_query, status, postback, receipt, ...
	Reason    string // Lý do bỏ qua, đưa vào processError của webhook log
}

// NormalizeResult là kết quả chuẩn hóa một webhook. Một webhook có thể mang
// nhiều tin nhắn (WhatsApp batch) lẫn nhiều event bị bỏ qua cùng lúc.
type NormalizeResult struct {
	Messages []NormalizedInbound
	Ignored  []IgnoredEvent
}

// InboundNormalizer chuẩn hóa raw body webhook của một platform.
// Trả về error chỉ khi body không parse được; event không xử lý được
// về mặt nghiệp vụ đi vào Ignored, không phải error.
type InboundNormalizer interface {
	Platform() string
	Normalize(rawBody []byte) (*NormalizeResult, error)
}

// NormalizerFor trả về normalizer cho platform. Platform không hỗ trợ trả về error.
func NormalizerFor(platform string) (InboundNormalizer, error) {
	switch platform {
	case "telegram":
		return &TelegramNormalizer{}, nil
	case "whatsapp":
		return &WhatsAppNormalizer{}, nil
	case "instagram":
		return &MessengerNormalizer{platform: "instagram"}, nil
	case "facebook":
		return &MessengerNormalizer{platform: "facebook"}, nil
	case "signal":
		return &SignalNormalizer{}, nil
	default:
		return nil, fmt.Errorf("platform không được hỗ trợ: %s", platform)
	}
}

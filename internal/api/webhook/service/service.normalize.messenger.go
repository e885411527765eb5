// File: service.normalize.messenger.go
package webhooksvc

import (
	"encoding/json"
	"fmt"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	webhookdto "github.com/EldarGGG/nexus-back/internal/api/webhook/dto"
)

// MessengerNormalizer chuẩn hóa webhook Instagram Messaging và Facebook Messenger.
// Hai platform dùng chung cấu trúc entry[].messaging[], chỉ khác định danh
// (IGSID / PSID) và key metadata của message id.
type MessengerNormalizer struct {
	platform string // instagram hoặc facebook
}

// Platform trả về tên platform
func (n *MessengerNormalizer) Platform() string {
	return n.platform
}

// Normalize chuẩn hóa webhook Messenger. Postback, delivery, read bị bỏ qua,
// tin nhắn echo (do chính page gửi) cũng bị bỏ qua để tránh vòng lặp.
func (n *MessengerNormalizer) Normalize(rawBody []byte) (*NormalizeResult, error) {
	var req webhookdto.MetaWebhookRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, fmt.Errorf("parse %s webhook: %w", n.platform, err)
	}

	result := &NormalizeResult{}
	for _, entry := range req.Entry {
		for _, event := range entry.Messaging {
			switch {
			case event.Postback != nil:
				result.Ignored = append(result.Ignored, IgnoredEvent{
					EventType: "postback",
					Reason:    "postback không được xử lý, chỉ ghi log",
				})
			case event.Delivery != nil:
				result.Ignored = append(result.Ignored, IgnoredEvent{
					EventType: "delivery",
					Reason:    "delivery receipt không được xử lý, chỉ ghi log",
				})
			case event.Read != nil:
				result.Ignored = append(result.Ignored, IgnoredEvent{
					EventType: "read",
					Reason:    "read receipt không được xử lý, chỉ ghi log",
				})
			case event.Message != nil && event.Message.IsEcho:
				result.Ignored = append(result.Ignored, IgnoredEvent{
					EventType: "echo",
					Reason:    "echo message (do page gửi) không được xử lý, bỏ qua",
				})
			case event.Message != nil:
				result.Messages = append(result.Messages, n.normalizeMessage(event))
			default:
				result.Ignored = append(result.Ignored, IgnoredEvent{
					EventType: "unknown",
					Reason:    "messaging event không có message, bỏ qua",
				})
			}
		}
	}

	if len(result.Messages) == 0 && len(result.Ignored) == 0 {
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "unknown",
			Reason:    "webhook không chứa messaging event, bỏ qua",
		})
	}
	return result, nil
}

func (n *MessengerNormalizer) normalizeMessage(event webhookdto.MessengerMessaging) NormalizedInbound {
	midKey := "facebook_mid"
	if n.platform == "instagram" {
		midKey = "instagram_mid"
	}

	normalized := NormalizedInbound{
		ExternalChatID:    event.Sender.ID,
		PlatformMessageID: event.Message.MID,
		EventType:         "message",
		MessageType:       messagingmodels.MessageTypeText,
		Content:           event.Message.Text,
		Timestamp:         event.Timestamp, // Meta gửi epoch millis
		Sender: messagingmodels.SenderInfo{
			UserID: event.Sender.ID,
		},
		Metadata: map[string]interface{}{
			midKey: event.Message.MID,
		},
	}

	for _, attachment := range event.Message.Attachments {
		attachmentType := attachment.Type
		switch attachment.Type {
		case "image":
			attachmentType = messagingmodels.MessageTypeImage
		case "video":
			attachmentType = messagingmodels.MessageTypeVideo
		case "audio":
			attachmentType = messagingmodels.MessageTypeAudio
		case "file":
			attachmentType = messagingmodels.MessageTypeDocument
		}
		normalized.Attachments = append(normalized.Attachments, messagingmodels.Attachment{
			Type: attachmentType,
			URL:  attachment.Payload.URL,
		})
	}
	if len(normalized.Attachments) > 0 && normalized.Content == "" {
		normalized.MessageType = normalized.Attachments[0].Type
	}

	return normalized
}

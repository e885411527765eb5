// File: service.normalize.whatsapp.go
package webhooksvc

import (
	"encoding/json"
	"fmt"
	"strconv"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	webhookdto "github.com/EldarGGG/nexus-back/internal/api/webhook/dto"
)

// WhatsAppNormalizer chuẩn hóa webhook WhatsApp Cloud API
type WhatsAppNormalizer struct{}

// Platform trả về tên platform
func (n *WhatsAppNormalizer) Platform() string {
	return "whatsapp"
}

// Normalize chuẩn hóa webhook WhatsApp. Một webhook có thể mang nhiều entry,
// mỗi entry nhiều change, mỗi change một batch messages: tất cả được trả về
// trong cùng một NormalizeResult. Statuses (sent/delivered/read) bị bỏ qua.
func (n *WhatsAppNormalizer) Normalize(rawBody []byte) (*NormalizeResult, error) {
	var req webhookdto.MetaWebhookRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, fmt.Errorf("parse whatsapp webhook: %w", err)
	}

	result := &NormalizeResult{}
	for _, entry := range req.Entry {
		for _, change := range entry.Changes {
			// Profile name theo wa_id để gắn vào sender
			contactNames := make(map[string]string, len(change.Value.Contacts))
			for _, contact := range change.Value.Contacts {
				contactNames[contact.WaID] = contact.Profile.Name
			}

			for _, message := range change.Value.Messages {
				result.Messages = append(result.Messages, n.normalizeMessage(message, contactNames[message.From]))
			}
			for _, status := range change.Value.Statuses {
				result.Ignored = append(result.Ignored, IgnoredEvent{
					EventType: "status",
					Reason:    fmt.Sprintf("status update (%s) không được xử lý, chỉ ghi log", status.Status),
				})
			}
		}
	}

	if len(result.Messages) == 0 && len(result.Ignored) == 0 {
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "unknown",
			Reason:    "webhook không chứa messages hay statuses, bỏ qua",
		})
	}
	return result, nil
}

func (n *WhatsAppNormalizer) normalizeMessage(message webhookdto.WhatsAppMessage, profileName string) NormalizedInbound {
	// WhatsApp gửi timestamp epoch seconds dạng string
	seconds, _ := strconv.ParseInt(message.Timestamp, 10, 64)

	normalized := NormalizedInbound{
		ExternalChatID:    message.From,
		PlatformMessageID: message.ID,
		EventType:         "message",
		MessageType:       messagingmodels.MessageTypeText,
		Timestamp:         seconds * 1000,
		Sender: messagingmodels.SenderInfo{
			UserID:    message.From,
			Phone:     message.From,
			FirstName: profileName,
		},
		Metadata: map[string]interface{}{
			"whatsapp_message_id": message.ID,
		},
	}

	switch message.Type {
	case "text":
		if message.Text != nil {
			normalized.Content = message.Text.Body
		}
	case "image":
		normalized.MessageType = messagingmodels.MessageTypeImage
		normalized.Attachments = whatsAppMediaAttachment(messagingmodels.MessageTypeImage, message.Image)
		if message.Image != nil {
			normalized.Content = message.Image.Caption
		}
	case "document":
		normalized.MessageType = messagingmodels.MessageTypeDocument
		normalized.Attachments = whatsAppMediaAttachment(messagingmodels.MessageTypeDocument, message.Document)
		if message.Document != nil {
			normalized.Content = message.Document.Caption
		}
	case "audio":
		normalized.MessageType = messagingmodels.MessageTypeAudio
		normalized.Attachments = whatsAppMediaAttachment(messagingmodels.MessageTypeAudio, message.Audio)
	case "video":
		normalized.MessageType = messagingmodels.MessageTypeVideo
		normalized.Attachments = whatsAppMediaAttachment(messagingmodels.MessageTypeVideo, message.Video)
		if message.Video != nil {
			normalized.Content = message.Video.Caption
		}
	case "sticker":
		normalized.MessageType = messagingmodels.MessageTypeSticker
		normalized.Attachments = whatsAppMediaAttachment(messagingmodels.MessageTypeSticker, message.Sticker)
	case "location":
		normalized.MessageType = messagingmodels.MessageTypeLocation
		if message.Location != nil {
			normalized.Content = fmt.Sprintf("%f,%f", message.Location.Latitude, message.Location.Longitude)
		}
	}

	return normalized
}

func whatsAppMediaAttachment(attachmentType string, media *webhookdto.WhatsAppMedia) []messagingmodels.Attachment {
	if media == nil {
		return nil
	}
	return []messagingmodels.Attachment{{
		Type:     attachmentType,
		FileID:   media.ID,
		MimeType: media.MimeType,
		FileName: media.Filename,
		Caption:  media.Caption,
	}}
}

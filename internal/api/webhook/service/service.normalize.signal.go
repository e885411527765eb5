// File: service.normalize.signal.go
package webhooksvc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	webhookdto "github.com/EldarGGG/nexus-back/internal/api/webhook/dto"
)

// SignalNormalizer chuẩn hóa event từ signal-cli REST API
type SignalNormalizer struct{}

// Platform trả về tên platform
func (n *SignalNormalizer) Platform() string {
	return "signal"
}

// Normalize chuẩn hóa một envelope Signal. Signal không có message id riêng,
// timestamp của envelope (epoch millis, do sender sinh ra) đóng vai trò id dedup.
// Receipt và typing indicator bị bỏ qua.
func (n *SignalNormalizer) Normalize(rawBody []byte) (*NormalizeResult, error) {
	var req webhookdto.SignalWebhookRequest
	if err := json.Unmarshal(rawBody, &req); err != nil {
		return nil, fmt.Errorf("parse signal webhook: %w", err)
	}

	result := &NormalizeResult{}
	envelope := req.Envelope
	if envelope == nil {
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "unknown",
			Reason:    "webhook không chứa envelope, bỏ qua",
		})
		return result, nil
	}

	switch {
	case envelope.ReceiptMessage != nil:
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "receipt",
			Reason:    "receipt không được xử lý, chỉ ghi log",
		})
		return result, nil
	case envelope.TypingMessage != nil:
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "typing",
			Reason:    "typing indicator không được xử lý, bỏ qua",
		})
		return result, nil
	case envelope.DataMessage == nil:
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "unknown",
			Reason:    "envelope không chứa dataMessage, bỏ qua",
		})
		return result, nil
	}

	dataMessage := envelope.DataMessage
	timestamp := dataMessage.Timestamp
	if timestamp == 0 {
		timestamp = envelope.Timestamp
	}

	normalized := NormalizedInbound{
		ExternalChatID:    envelope.Source,
		PlatformMessageID: strconv.FormatInt(timestamp, 10),
		EventType:         "message",
		MessageType:       messagingmodels.MessageTypeText,
		Content:           dataMessage.Message,
		Timestamp:         timestamp,
		Sender: messagingmodels.SenderInfo{
			UserID:    envelope.Source,
			Phone:     envelope.Source,
			FirstName: envelope.SourceName,
		},
		Metadata: map[string]interface{}{
			"signal_timestamp": timestamp,
		},
	}

	for _, attachment := range dataMessage.Attachments {
		attachmentType := messagingmodels.MessageTypeDocument
		switch {
		case strings.HasPrefix(attachment.ContentType, "image/"):
			attachmentType = messagingmodels.MessageTypeImage
		case strings.HasPrefix(attachment.ContentType, "video/"):
			attachmentType = messagingmodels.MessageTypeVideo
		case strings.HasPrefix(attachment.ContentType, "audio/"):
			attachmentType = messagingmodels.MessageTypeAudio
		}
		normalized.Attachments = append(normalized.Attachments, messagingmodels.Attachment{
			Type:     attachmentType,
			FileID:   attachment.ID,
			MimeType: attachment.ContentType,
			FileName: attachment.Filename,
			FileSize: attachment.Size,
		})
	}
	if len(normalized.Attachments) > 0 && normalized.Content == "" {
		normalized.MessageType = normalized.Attachments[0].Type
	}

	result.Messages = append(result.Messages, normalized)
	return result, nil
}

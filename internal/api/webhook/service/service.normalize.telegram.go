// File: service.normalize.telegram.go
package webhooksvc

import (
	"encoding/json"
	"fmt"
	"strconv"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	webhookdto "github.com/EldarGGG/nexus-back/internal/api/webhook/dto"
)

// TelegramNormalizer chuẩn hóa update từ Telegram Bot API
type TelegramNormalizer struct{}

// Platform trả về tên platform
func (n *TelegramNormalizer) Platform() string {
	return "telegram"
}

// Normalize chuẩn hóa một Telegram update. Mỗi update mang tối đa một tin nhắn.
func (n *TelegramNormalizer) Normalize(rawBody []byte) (*NormalizeResult, error) {
	var update webhookdto.TelegramUpdate
	if err := json.Unmarshal(rawBody, &update); err != nil {
		return nil, fmt.Errorf("parse telegram update: %w", err)
	}

	result := &NormalizeResult{}

	if update.CallbackQuery != nil {
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "callback_query",
			Reason:    "callback_query không được xử lý, chỉ ghi log",
		})
		return result, nil
	}

	message := update.Message
	eventType := "message"
	if message == nil && update.EditedMessage != nil {
		message = update.EditedMessage
		eventType = "edited_message"
	}
	if message == nil {
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: "unknown",
			Reason:    "update không chứa message, bỏ qua",
		})
		return result, nil
	}

	normalized := NormalizedInbound{
		ExternalChatID:    strconv.FormatInt(message.Chat.ID, 10),
		PlatformMessageID: strconv.FormatInt(message.MessageID, 10),
		EventType:         eventType,
		MessageType:       messagingmodels.MessageTypeText,
		Content:           message.Text,
		Timestamp:         message.Date * 1000, // Telegram gửi epoch seconds
		Metadata: map[string]interface{}{
			"telegram_message_id": message.MessageID,
			"telegram_chat_id":    message.Chat.ID,
		},
	}
	if message.From != nil {
		normalized.Sender = messagingmodels.SenderInfo{
			UserID:    strconv.FormatInt(message.From.ID, 10),
			Username:  message.From.Username,
			FirstName: message.From.FirstName,
			LastName:  message.From.LastName,
		}
	}

	switch {
	case len(message.Photo) > 0:
		normalized.MessageType = messagingmodels.MessageTypeImage
		normalized.Content = message.Caption
		normalized.Attachments = []messagingmodels.Attachment{telegramLargestPhoto(message.Photo, message.Caption)}
	case message.Document != nil:
		normalized.MessageType = messagingmodels.MessageTypeDocument
		normalized.Content = message.Caption
		normalized.Attachments = []messagingmodels.Attachment{{
			Type:     messagingmodels.MessageTypeDocument,
			FileID:   message.Document.FileID,
			FileName: message.Document.FileName,
			MimeType: message.Document.MimeType,
			FileSize: message.Document.FileSize,
			Caption:  message.Caption,
		}}
	case message.Voice != nil:
		normalized.MessageType = messagingmodels.MessageTypeVoice
		normalized.Attachments = []messagingmodels.Attachment{{
			Type:     messagingmodels.MessageTypeVoice,
			FileID:   message.Voice.FileID,
			MimeType: message.Voice.MimeType,
			FileSize: message.Voice.FileSize,
			Duration: message.Voice.Duration,
		}}
	case message.Video != nil:
		normalized.MessageType = messagingmodels.MessageTypeVideo
		normalized.Content = message.Caption
		normalized.Attachments = []messagingmodels.Attachment{{
			Type:     messagingmodels.MessageTypeVideo,
			FileID:   message.Video.FileID,
			MimeType: message.Video.MimeType,
			FileSize: message.Video.FileSize,
			Width:    message.Video.Width,
			Height:   message.Video.Height,
			Duration: message.Video.Duration,
			Caption:  message.Caption,
		}}
	case message.Sticker != nil:
		normalized.MessageType = messagingmodels.MessageTypeSticker
		normalized.Content = message.Sticker.Emoji
		normalized.Attachments = []messagingmodels.Attachment{{
			Type:     messagingmodels.MessageTypeSticker,
			FileID:   message.Sticker.FileID,
			FileSize: message.Sticker.FileSize,
		}}
	case message.Contact != nil:
		normalized.MessageType = messagingmodels.MessageTypeContact
		normalized.Content = message.Contact.PhoneNumber
	case message.Location != nil:
		normalized.MessageType = messagingmodels.MessageTypeLocation
		normalized.Content = fmt.Sprintf("%f,%f", message.Location.Latitude, message.Location.Longitude)
	case message.Text == "":
		result.Ignored = append(result.Ignored, IgnoredEvent{
			EventType: eventType,
			Reason:    "message không có nội dung được hỗ trợ, bỏ qua",
		})
		return result, nil
	}

	result.Messages = append(result.Messages, normalized)
	return result, nil
}

// telegramLargestPhoto chọn size ảnh lớn nhất theo fileSize.
// Dùng >= để khi nhiều size bằng nhau (hoặc đều thiếu file_size)
// size đứng cuối danh sách thắng: Telegram liệt kê size tăng dần.
func telegramLargestPhoto(photos []webhookdto.TelegramPhotoSize, caption string) messagingmodels.Attachment {
	best := photos[0]
	for _, photo := range photos[1:] {
		if photo.FileSize >= best.FileSize {
			best = photo
		}
	}
	return messagingmodels.Attachment{
		Type:     messagingmodels.MessageTypeImage,
		FileID:   best.FileID,
		FileSize: best.FileSize,
		Width:    best.Width,
		Height:   best.Height,
		Caption:  caption,
	}
}

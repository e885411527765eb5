// Package webhooksvc - Test chuẩn hóa payload Telegram.
package webhooksvc

import (
	"testing"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
)

func TestTelegramNormalize_TextMessage(t *testing.T) {
	body := []byte(`{
		"update_id": 1,
		"message": {
			"message_id": 7,
			"date": 1700000000,
			"chat": {"id": 42, "type": "private"},
			"from": {"id": 9, "username": "bob", "first_name": "Bob"},
			"text": "hi"
		}
	}`)

	n := &TelegramNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("Mong đợi 1 message, nhận được %d", len(result.Messages))
	}

	m := result.Messages[0]
	if m.ExternalChatID != "42" {
		t.Errorf("ExternalChatID sai: mong đợi '42', nhận được %q", m.ExternalChatID)
	}
	if m.PlatformMessageID != "7" {
		t.Errorf("PlatformMessageID sai: mong đợi '7', nhận được %q", m.PlatformMessageID)
	}
	if m.Content != "hi" {
		t.Errorf("Content sai: %q", m.Content)
	}
	if m.Timestamp != 1700000000000 {
		t.Errorf("Timestamp phải được đổi sang millis, nhận được %d", m.Timestamp)
	}
	if m.Sender.UserID != "9" || m.Sender.Username != "bob" {
		t.Errorf("Sender sai: %+v", m.Sender)
	}
	if m.Metadata["telegram_message_id"] != int64(7) {
		t.Errorf("Metadata thiếu telegram_message_id: %v", m.Metadata)
	}
}

func TestTelegramNormalize_LargestPhotoWins(t *testing.T) {
	body := []byte(`{
		"message": {
			"message_id": 8,
			"date": 1700000000,
			"chat": {"id": 42},
			"caption": "nice",
			"photo": [
				{"file_id": "small", "file_size": 100},
				{"file_id": "big", "file_size": 400},
				{"file_id": "mid", "file_size": 250}
			]
		}
	}`)

	n := &TelegramNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	m := result.Messages[0]
	if m.MessageType != messagingmodels.MessageTypeImage {
		t.Errorf("MessageType phải là image, nhận được %q", m.MessageType)
	}
	if len(m.Attachments) != 1 {
		t.Fatalf("Chỉ được giữ 1 attachment (size lớn nhất), nhận được %d", len(m.Attachments))
	}
	if m.Attachments[0].FileID != "big" {
		t.Errorf("Phải chọn size lớn nhất 'big', nhận được %q", m.Attachments[0].FileID)
	}
	if m.Content != "nice" {
		t.Errorf("Caption phải thành content, nhận được %q", m.Content)
	}
}

func TestTelegramNormalize_PhotoTiesLastListedWins(t *testing.T) {
	// Các size bằng nhau (hoặc đều thiếu file_size): size đứng cuối thắng
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "sizes bằng nhau",
			body: `{"message": {"message_id": 9, "date": 1, "chat": {"id": 1},
				"photo": [{"file_id": "a", "file_size": 100}, {"file_id": "b", "file_size": 100}]}}`,
			want: "b",
		},
		{
			name: "thiếu file_size",
			body: `{"message": {"message_id": 10, "date": 1, "chat": {"id": 1},
				"photo": [{"file_id": "x"}, {"file_id": "y"}, {"file_id": "z"}]}}`,
			want: "z",
		},
	}

	n := &TelegramNormalizer{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := n.Normalize([]byte(tc.body))
			if err != nil {
				t.Fatalf("Normalize trả về lỗi: %v", err)
			}
			got := result.Messages[0].Attachments[0].FileID
			if got != tc.want {
				t.Errorf("Phải chọn size cuối danh sách %q, nhận được %q", tc.want, got)
			}
		})
	}
}

func TestTelegramNormalize_CallbackQueryIgnored(t *testing.T) {
	body := []byte(`{"update_id": 2, "callback_query": {"id": "cb1", "data": "something"}}`)

	n := &TelegramNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(result.Messages) != 0 {
		t.Errorf("callback_query không được thành message, nhận được %d messages", len(result.Messages))
	}
	if len(result.Ignored) != 1 || result.Ignored[0].EventType != "callback_query" {
		t.Errorf("callback_query phải vào Ignored với eventType callback_query: %+v", result.Ignored)
	}
}

func TestTelegramNormalize_UnknownShapeIgnored(t *testing.T) {
	body := []byte(`{"update_id": 3}`)

	n := &TelegramNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(result.Ignored) != 1 {
		t.Fatalf("Update không có message phải vào Ignored: %+v", result)
	}
	if result.Ignored[0].Reason == "" {
		t.Error("Ignored event phải có lý do")
	}
}

func TestTelegramNormalize_MalformedBody(t *testing.T) {
	n := &TelegramNormalizer{}
	if _, err := n.Normalize([]byte(`{not json`)); err == nil {
		t.Error("Body không phải JSON phải trả về lỗi parse")
	}
}

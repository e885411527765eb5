// Package webhooksvc - Test chuẩn hóa payload Signal (signal-cli REST API).
package webhooksvc

import (
	"testing"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
)

func TestSignalNormalize_DataMessage(t *testing.T) {
	body := []byte(`{
		"account": "+84900000001",
		"envelope": {
			"source": "+84901112222",
			"sourceName": "Minh",
			"timestamp": 1700000000123,
			"dataMessage": {
				"message": "alo",
				"timestamp": 1700000000123
			}
		}
	}`)

	n := &SignalNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(result.Messages) != 1 {
		t.Fatalf("Mong đợi 1 message, nhận được %d", len(result.Messages))
	}

	m := result.Messages[0]
	if m.ExternalChatID != "+84901112222" {
		t.Errorf("ExternalChatID phải là số điện thoại source, nhận được %q", m.ExternalChatID)
	}
	// Signal không có message id riêng: timestamp (stringified) đóng vai trò id dedup
	if m.PlatformMessageID != "1700000000123" {
		t.Errorf("PlatformMessageID phải là timestamp dạng string, nhận được %q", m.PlatformMessageID)
	}
	if m.Metadata["signal_timestamp"] != int64(1700000000123) {
		t.Errorf("Metadata thiếu signal_timestamp: %v", m.Metadata)
	}
	if m.Sender.FirstName != "Minh" {
		t.Errorf("SourceName phải gắn vào sender, nhận được %q", m.Sender.FirstName)
	}
	if m.Content != "alo" {
		t.Errorf("Content sai: %q", m.Content)
	}
}

func TestSignalNormalize_AttachmentTypeFromContentType(t *testing.T) {
	body := []byte(`{
		"envelope": {
			"source": "+84901112222",
			"timestamp": 1700000000500,
			"dataMessage": {
				"timestamp": 1700000000500,
				"attachments": [{"id": "att1", "contentType": "image/png", "filename": "a.png", "size": 2048}]
			}
		}
	}`)

	n := &SignalNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	m := result.Messages[0]
	if m.MessageType != messagingmodels.MessageTypeImage {
		t.Errorf("ContentType image/png phải cho MessageType image, nhận được %q", m.MessageType)
	}
	if len(m.Attachments) != 1 || m.Attachments[0].FileID != "att1" {
		t.Errorf("Attachment sai: %+v", m.Attachments)
	}
}

func TestSignalNormalize_ReceiptAndTypingIgnored(t *testing.T) {
	cases := []struct {
		name      string
		body      string
		eventType string
	}{
		{
			name:      "receipt",
			body:      `{"envelope": {"source": "+84901112222", "timestamp": 1, "receiptMessage": {"when": 1, "isDelivery": true}}}`,
			eventType: "receipt",
		},
		{
			name:      "typing",
			body:      `{"envelope": {"source": "+84901112222", "timestamp": 1, "typingMessage": {"action": "STARTED"}}}`,
			eventType: "typing",
		},
		{
			name:      "envelope rỗng",
			body:      `{"envelope": {"source": "+84901112222", "timestamp": 1}}`,
			eventType: "unknown",
		},
	}

	n := &SignalNormalizer{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := n.Normalize([]byte(tc.body))
			if err != nil {
				t.Fatalf("Normalize trả về lỗi: %v", err)
			}
			if len(result.Messages) != 0 {
				t.Errorf("Event %s không được thành message", tc.name)
			}
			if len(result.Ignored) != 1 || result.Ignored[0].EventType != tc.eventType {
				t.Errorf("Event %s phải vào Ignored với eventType %s: %+v", tc.name, tc.eventType, result.Ignored)
			}
		})
	}
}

func TestNormalizerFor_SupportedPlatforms(t *testing.T) {
	for _, platform := range []string{"telegram", "whatsapp", "instagram", "facebook", "signal"} {
		n, err := NormalizerFor(platform)
		if err != nil {
			t.Errorf("NormalizerFor(%q) trả về lỗi: %v", platform, err)
			continue
		}
		if n.Platform() != platform {
			t.Errorf("Normalizer của %q tự nhận là %q", platform, n.Platform())
		}
	}

	if _, err := NormalizerFor("viber"); err == nil {
		t.Error("Platform không hỗ trợ phải trả về lỗi")
	}
}

// Package webhooksvc - Test chuẩn hóa payload WhatsApp Cloud API.
package webhooksvc

import (
	"testing"

	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
)

func TestWhatsAppNormalize_MessageBatch(t *testing.T) {
	body := []byte(`{
		"object": "whatsapp_business_account",
		"entry": [{
			"id": "entry1",
			"changes": [{
				"field": "messages",
				"value": {
					"metadata": {"phone_number_id": "111"},
					"contacts": [{"wa_id": "84901234567", "profile": {"name": "Anh Tuan"}}],
					"messages": [
						{"id": "wamid.1", "from": "84901234567", "timestamp": "1700000000", "type": "text", "text": {"body": "xin chao"}},
						{"id": "wamid.2", "from": "84901234567", "timestamp": "1700000060", "type": "image", "image": {"id": "media9", "mime_type": "image/jpeg", "caption": "anh dep"}}
					]
				}
			}]
		}]
	}`)

	n := &WhatsAppNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(result.Messages) != 2 {
		t.Fatalf("Một webhook batch 2 messages phải cho 2 messages, nhận được %d", len(result.Messages))
	}

	first := result.Messages[0]
	if first.PlatformMessageID != "wamid.1" {
		t.Errorf("PlatformMessageID sai: %q", first.PlatformMessageID)
	}
	if first.ExternalChatID != "84901234567" {
		t.Errorf("ExternalChatID phải là số wa_id, nhận được %q", first.ExternalChatID)
	}
	if first.Timestamp != 1700000000000 {
		t.Errorf("Timestamp phải đổi từ seconds string sang millis, nhận được %d", first.Timestamp)
	}
	if first.Content != "xin chao" {
		t.Errorf("Content sai: %q", first.Content)
	}
	if first.Sender.FirstName != "Anh Tuan" {
		t.Errorf("Profile name phải gắn vào sender, nhận được %q", first.Sender.FirstName)
	}
	if first.Metadata["whatsapp_message_id"] != "wamid.1" {
		t.Errorf("Metadata thiếu whatsapp_message_id: %v", first.Metadata)
	}

	second := result.Messages[1]
	if second.MessageType != messagingmodels.MessageTypeImage {
		t.Errorf("Message thứ hai phải là image, nhận được %q", second.MessageType)
	}
	if len(second.Attachments) != 1 || second.Attachments[0].FileID != "media9" {
		t.Errorf("Attachment image sai: %+v", second.Attachments)
	}
	if second.Content != "anh dep" {
		t.Errorf("Caption phải thành content, nhận được %q", second.Content)
	}
}

func TestWhatsAppNormalize_StatusesIgnored(t *testing.T) {
	body := []byte(`{
		"object": "whatsapp_business_account",
		"entry": [{
			"changes": [{
				"value": {
					"statuses": [{"id": "wamid.9", "status": "delivered", "timestamp": "1700000000"}]
				}
			}]
		}]
	}`)

	n := &WhatsAppNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(result.Messages) != 0 {
		t.Errorf("Status update không được thành message: %+v", result.Messages)
	}
	if len(result.Ignored) != 1 || result.Ignored[0].EventType != "status" {
		t.Errorf("Status phải vào Ignored với eventType status: %+v", result.Ignored)
	}
}

func TestWhatsAppNormalize_EmptyWebhookIgnored(t *testing.T) {
	body := []byte(`{"object": "whatsapp_business_account", "entry": []}`)

	n := &WhatsAppNormalizer{}
	result, err := n.Normalize(body)
	if err != nil {
		t.Fatalf("Normalize trả về lỗi: %v", err)
	}
	if len(result.Ignored) != 1 || result.Ignored[0].EventType != "unknown" {
		t.Errorf("Webhook rỗng phải vào Ignored unknown: %+v", result.Ignored)
	}
}

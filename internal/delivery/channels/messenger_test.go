// Package channels - Test adapter Meta Send API (Instagram / Facebook).
package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMessengerSendText_Success(t *testing.T) {
	var gotPath, gotToken string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.URL.Query().Get("access_token")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"message_id": "mid.out1"}`))
	}))
	defer server.Close()

	client := NewMessengerClient("instagram", "page7", "page-tok", ClientConfig{Timeout: 2 * time.Second, GraphAPIBase: server.URL})
	result := client.SendText(context.Background(), "igsid_1", "chao ban")

	if !result.OK {
		t.Fatalf("SendText phải thành công: %+v", result.Error)
	}
	if result.MessageID != "mid.out1" {
		t.Errorf("MessageID sai: %q", result.MessageID)
	}
	if gotPath != "/v17.0/page7/messages" {
		t.Errorf("Path Send API sai: %q", gotPath)
	}
	if gotToken != "page-tok" {
		t.Errorf("access_token sai: %q", gotToken)
	}
	recipient, _ := gotPayload["recipient"].(map[string]interface{})
	if recipient["id"] != "igsid_1" {
		t.Errorf("Recipient sai: %v", gotPayload)
	}
}

func TestMessengerSendMedia_AttachmentPayload(t *testing.T) {
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"message_id": "mid.out2"}`))
	}))
	defer server.Close()

	client := NewMessengerClient("facebook", "page7", "tok", ClientConfig{Timeout: 2 * time.Second, GraphAPIBase: server.URL})
	result := client.SendMedia(context.Background(), "psid_1", Media{Type: "image", URL: "https://cdn.example.com/a.jpg"})

	if !result.OK {
		t.Fatalf("SendMedia phải thành công: %+v", result.Error)
	}
	message, _ := gotPayload["message"].(map[string]interface{})
	attachment, _ := message["attachment"].(map[string]interface{})
	if attachment["type"] != "image" {
		t.Errorf("Attachment type sai: %v", attachment)
	}
	payload, _ := attachment["payload"].(map[string]interface{})
	if payload["url"] != "https://cdn.example.com/a.jpg" {
		t.Errorf("Attachment URL sai: %v", payload)
	}
}

func TestMessengerSendText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": {"code": 551, "message": "This person isn't available right now."}}`))
	}))
	defer server.Close()

	client := NewMessengerClient("facebook", "page7", "tok", ClientConfig{Timeout: 2 * time.Second, GraphAPIBase: server.URL})
	result := client.SendText(context.Background(), "psid_1", "hi")

	if result.OK {
		t.Fatal("API trả lỗi thì OK phải là false")
	}
	if result.Error.Platform != "facebook" || result.Error.APICode != "551" {
		t.Errorf("Error phải mang platform và api code: %+v", result.Error)
	}
}

func TestMessengerResolveFileURL_NotSupported(t *testing.T) {
	client := NewMessengerClient("instagram", "page7", "tok", ClientConfig{Timeout: time.Second})
	if _, err := client.ResolveFileURL(context.Background(), "any"); err == nil {
		t.Error("Messenger không có bước resolve, phải trả về lỗi")
	}
}

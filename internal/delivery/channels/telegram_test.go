// Package channels - Test adapter Telegram với server giả lập.
package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTelegramSendText_Success(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"ok": true, "result": {"message_id": 321}}`))
	}))
	defer server.Close()

	client := NewTelegramClient("bot-token", ClientConfig{Timeout: 2 * time.Second, TelegramAPIBase: server.URL})
	result := client.SendText(context.Background(), "42", "hi")

	if !result.OK {
		t.Fatalf("SendText phải thành công: %+v", result.Error)
	}
	if result.MessageID != "321" {
		t.Errorf("MessageID phải parse từ response, nhận được %q", result.MessageID)
	}
	if gotPath != "/botbot-token/sendMessage" {
		t.Errorf("Path API sai: %q", gotPath)
	}
	if gotPayload["chat_id"] != "42" || gotPayload["text"] != "hi" {
		t.Errorf("Payload sai: %v", gotPayload)
	}
}

func TestTelegramSendMedia_MethodByType(t *testing.T) {
	cases := []struct {
		mediaType string
		method    string
		mediaKey  string
	}{
		{"image", "sendPhoto", "photo"},
		{"audio", "sendAudio", "audio"},
		{"video", "sendVideo", "video"},
		{"document", "sendDocument", "document"},
	}

	for _, tc := range cases {
		t.Run(tc.mediaType, func(t *testing.T) {
			var gotPath string
			var gotPayload map[string]interface{}
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				_ = json.NewDecoder(r.Body).Decode(&gotPayload)
				_, _ = w.Write([]byte(`{"ok": true, "result": {"message_id": 1}}`))
			}))
			defer server.Close()

			client := NewTelegramClient("tok", ClientConfig{Timeout: 2 * time.Second, TelegramAPIBase: server.URL})
			result := client.SendMedia(context.Background(), "42", Media{Type: tc.mediaType, URL: "https://cdn.example.com/f", Caption: "cap"})

			if !result.OK {
				t.Fatalf("SendMedia phải thành công: %+v", result.Error)
			}
			if gotPath != "/bottok/"+tc.method {
				t.Errorf("Media type %s phải gọi %s, nhận được path %q", tc.mediaType, tc.method, gotPath)
			}
			if gotPayload[tc.mediaKey] != "https://cdn.example.com/f" {
				t.Errorf("Payload thiếu key %s: %v", tc.mediaKey, gotPayload)
			}
			if gotPayload["caption"] != "cap" {
				t.Errorf("Caption phải nằm trong payload: %v", gotPayload)
			}
		})
	}
}

func TestTelegramSendText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok": false, "error_code": 400, "description": "Bad Request: chat not found"}`))
	}))
	defer server.Close()

	client := NewTelegramClient("tok", ClientConfig{Timeout: 2 * time.Second, TelegramAPIBase: server.URL})
	result := client.SendText(context.Background(), "99", "hi")

	if result.OK {
		t.Fatal("API trả lỗi thì OK phải là false")
	}
	if result.Error == nil {
		t.Fatal("OK=false phải đi kèm Error")
	}
	if result.Error.StatusCode != 400 || result.Error.APICode != "400" {
		t.Errorf("Error phải mang status và api code: %+v", result.Error)
	}
	if result.Error.Message != "Bad Request: chat not found" {
		t.Errorf("Error message sai: %q", result.Error.Message)
	}
}

func TestTelegramSendText_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // đóng ngay để mô phỏng lỗi connection refused

	client := NewTelegramClient("tok", ClientConfig{Timeout: time.Second, TelegramAPIBase: server.URL})
	result := client.SendText(context.Background(), "42", "hi")

	if result.OK {
		t.Fatal("Lỗi network thì OK phải là false")
	}
	if result.Error == nil || result.Error.StatusCode != 0 {
		t.Errorf("Lỗi network phải có StatusCode=0: %+v", result.Error)
	}
}

func TestTelegramSetWebhook(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"ok": true, "result": true}`))
	}))
	defer server.Close()

	client := NewTelegramClient("tok", ClientConfig{Timeout: 2 * time.Second, TelegramAPIBase: server.URL})
	err := client.SetWebhook(context.Background(), "https://nexus.example.com/api/v1/webhooks/telegram/abc123")

	if err != nil {
		t.Fatalf("SetWebhook trả về lỗi: %v", err)
	}
	if gotPath != "/bottok/setWebhook" {
		t.Errorf("Path API sai: %q", gotPath)
	}
	if gotPayload["url"] != "https://nexus.example.com/api/v1/webhooks/telegram/abc123" {
		t.Errorf("Payload sai: %v", gotPayload)
	}
}

func TestTelegramSetWebhook_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok": false, "error_code": 400, "description": "bad webhook: HTTPS url must be provided"}`))
	}))
	defer server.Close()

	client := NewTelegramClient("tok", ClientConfig{Timeout: 2 * time.Second, TelegramAPIBase: server.URL})
	err := client.SetWebhook(context.Background(), "http://insecure.example.com/hook")

	if err == nil {
		t.Fatal("Telegram từ chối webhook thì SetWebhook phải trả về lỗi")
	}
}

func TestTelegramResolveFileURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("file_id") != "file9" {
			t.Errorf("file_id sai: %q", r.URL.Query().Get("file_id"))
		}
		_, _ = w.Write([]byte(`{"ok": true, "result": {"file_path": "photos/a.jpg"}}`))
	}))
	defer server.Close()

	client := NewTelegramClient("tok", ClientConfig{Timeout: 2 * time.Second, TelegramAPIBase: server.URL})
	url, err := client.ResolveFileURL(context.Background(), "file9")
	if err != nil {
		t.Fatalf("ResolveFileURL trả về lỗi: %v", err)
	}
	want := server.URL + "/file/bottok/photos/a.jpg"
	if url != want {
		t.Errorf("URL tải sai: mong đợi %q, nhận được %q", want, url)
	}
}

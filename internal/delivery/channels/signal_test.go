// Package channels - Test adapter signal-cli REST API.
package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignalSendText_Success(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"timestamp": 1700000000789}`))
	}))
	defer server.Close()

	client := NewSignalClient("+84900000001", ClientConfig{Timeout: 2 * time.Second, SignalAPIBase: server.URL})
	result := client.SendText(context.Background(), "+84901112222", "alo")

	if !result.OK {
		t.Fatalf("SendText phải thành công: %+v", result.Error)
	}
	// signal-cli trả timestamp thay cho message id
	if result.MessageID != "1700000000789" {
		t.Errorf("MessageID phải là timestamp dạng string, nhận được %q", result.MessageID)
	}
	if gotPath != "/v2/send" {
		t.Errorf("Path API sai: %q", gotPath)
	}
	if gotPayload["number"] != "+84900000001" || gotPayload["message"] != "alo" {
		t.Errorf("Payload sai: %v", gotPayload)
	}
	recipients, _ := gotPayload["recipients"].([]interface{})
	if len(recipients) != 1 || recipients[0] != "+84901112222" {
		t.Errorf("Recipients sai: %v", recipients)
	}
}

func TestSignalSendMedia_CaptionPlusURL(t *testing.T) {
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"timestamp": 1}`))
	}))
	defer server.Close()

	client := NewSignalClient("+84900000001", ClientConfig{Timeout: 2 * time.Second, SignalAPIBase: server.URL})
	result := client.SendMedia(context.Background(), "+84901112222", Media{
		Type: "image", URL: "https://cdn.example.com/a.jpg", Caption: "anh moi",
	})

	if !result.OK {
		t.Fatalf("SendMedia phải thành công: %+v", result.Error)
	}
	if gotPayload["message"] != "anh moi\nhttps://cdn.example.com/a.jpg" {
		t.Errorf("Message phải gồm caption + URL: %v", gotPayload["message"])
	}
}

func TestSignalSendText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "Invalid recipient"}`))
	}))
	defer server.Close()

	client := NewSignalClient("+84900000001", ClientConfig{Timeout: 2 * time.Second, SignalAPIBase: server.URL})
	result := client.SendText(context.Background(), "not-a-number", "hi")

	if result.OK {
		t.Fatal("API trả lỗi thì OK phải là false")
	}
	if result.Error.StatusCode != 400 || result.Error.Message != "Invalid recipient" {
		t.Errorf("Error sai: %+v", result.Error)
	}
}

func TestSignalResolveFileURL(t *testing.T) {
	client := NewSignalClient("+84900000001", ClientConfig{Timeout: time.Second, SignalAPIBase: "http://signal.internal:8090"})

	url, err := client.ResolveFileURL(context.Background(), "att1")
	if err != nil {
		t.Fatalf("ResolveFileURL trả về lỗi: %v", err)
	}
	if url != "http://signal.internal:8090/v1/attachments/att1" {
		t.Errorf("URL attachment sai: %q", url)
	}

	if _, err := client.ResolveFileURL(context.Background(), ""); err == nil {
		t.Error("Attachment id trống phải trả về lỗi")
	}
}

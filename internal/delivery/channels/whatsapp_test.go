// Package channels - Test adapter WhatsApp Cloud API với server giả lập.
package channels

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestWhatsAppSendText_Success(t *testing.T) {
	var gotPath, gotAuth string
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"messages": [{"id": "wamid.out1"}]}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient("access-tok", "555", ClientConfig{Timeout: 2 * time.Second, GraphAPIBase: server.URL})
	result := client.SendText(context.Background(), "84901234567", "xin chao")

	if !result.OK {
		t.Fatalf("SendText phải thành công: %+v", result.Error)
	}
	if result.MessageID != "wamid.out1" {
		t.Errorf("MessageID phải là wamid từ response, nhận được %q", result.MessageID)
	}
	if gotPath != "/v17.0/555/messages" {
		t.Errorf("Path Cloud API sai: %q", gotPath)
	}
	if gotAuth != "Bearer access-tok" {
		t.Errorf("Header Authorization sai: %q", gotAuth)
	}
	if gotPayload["messaging_product"] != "whatsapp" || gotPayload["to"] != "84901234567" {
		t.Errorf("Payload sai: %v", gotPayload)
	}
}

func TestWhatsAppSendMedia_DocumentWithFilename(t *testing.T) {
	var gotPayload map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotPayload)
		_, _ = w.Write([]byte(`{"messages": [{"id": "wamid.out2"}]}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient("tok", "555", ClientConfig{Timeout: 2 * time.Second, GraphAPIBase: server.URL})
	result := client.SendMedia(context.Background(), "84901234567", Media{
		Type: "document", URL: "https://cdn.example.com/report.pdf", Caption: "bao cao", FileName: "report.pdf",
	})

	if !result.OK {
		t.Fatalf("SendMedia phải thành công: %+v", result.Error)
	}
	if gotPayload["type"] != "document" {
		t.Errorf("type payload sai: %v", gotPayload["type"])
	}
	doc, ok := gotPayload["document"].(map[string]interface{})
	if !ok {
		t.Fatalf("Payload thiếu object document: %v", gotPayload)
	}
	if doc["link"] != "https://cdn.example.com/report.pdf" || doc["caption"] != "bao cao" || doc["filename"] != "report.pdf" {
		t.Errorf("Object document sai: %v", doc)
	}
}

func TestWhatsAppSendText_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"code": 190, "message": "Invalid OAuth access token"}}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient("bad-tok", "555", ClientConfig{Timeout: 2 * time.Second, GraphAPIBase: server.URL})
	result := client.SendText(context.Background(), "84901234567", "hi")

	if result.OK {
		t.Fatal("API trả lỗi thì OK phải là false")
	}
	if result.Error.StatusCode != 401 || result.Error.APICode != "190" {
		t.Errorf("Error phải mang status 401 và api code 190: %+v", result.Error)
	}
}

func TestWhatsAppResolveFileURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v17.0/media42" {
			t.Errorf("Path resolve media sai: %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"url": "https://lookaside.example.com/media42"}`))
	}))
	defer server.Close()

	client := NewWhatsAppClient("tok", "555", ClientConfig{Timeout: 2 * time.Second, GraphAPIBase: server.URL})
	url, err := client.ResolveFileURL(context.Background(), "media42")
	if err != nil {
		t.Fatalf("ResolveFileURL trả về lỗi: %v", err)
	}
	if url != "https://lookaside.example.com/media42" {
		t.Errorf("URL tải sai: %q", url)
	}
}

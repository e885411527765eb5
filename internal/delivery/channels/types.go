// Package channels chứa adapter gửi tin nhắn outbound đến API của từng chat platform.
// Mỗi adapter thực hiện đúng một lần gọi HTTP với timeout chặn trên, không retry:
// retry là việc của caller (hoặc không retry, tùy nghiệp vụ).
package channels

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
)

// SendError là lỗi có cấu trúc khi platform API từ chối yêu cầu
type SendError struct {
	Platform   string `json:"platform"`
	StatusCode int    `json:"statusCode,omitempty"` // HTTP status từ platform API (0 nếu lỗi network/timeout)
	APICode    string `json:"apiCode,omitempty"`    // Mã lỗi riêng của platform (nếu parse được)
	Message    string `json:"message"`
}

// Error triển khai error interface
func (e *SendError) Error() string {
	return fmt.Sprintf("[%s] gửi tin nhắn thất bại (status=%d, code=%s): %s", e.Platform, e.StatusCode, e.APICode, e.Message)
}

// SendResult là kết quả gửi tin nhắn. OK=false luôn đi kèm Error != nil.
type SendResult struct {
	OK        bool       `json:"ok"`
	MessageID string     `json:"messageId,omitempty"` // Message id phía platform (nếu API trả về)
	Error     *SendError `json:"error,omitempty"`
}

// Media mô tả một media outbound (gửi bằng URL công khai)
type Media struct {
	Type     string // image / document / audio / video
	URL      string
	Caption  string
	FileName string
}

// Client là adapter gửi tin nhắn của một platform
type Client interface {
	Platform() string
	SendText(ctx context.Context, chatID string, text string) *SendResult
	SendMedia(ctx context.Context, chatID string, media Media) *SendResult
	ResolveFileURL(ctx context.Context, fileID string) (string, error)
}

// ClientConfig là cấu hình chung cho mọi adapter
type ClientConfig struct {
	Timeout         time.Duration // Timeout chặn trên cho một lần gọi API
	GraphAPIBase    string        // Base URL của Meta Graph API (override được trong test)
	SignalAPIBase   string        // Base URL của signal-cli REST API
	TelegramAPIBase string        // Base URL của Telegram Bot API
}

// NewClient tạo adapter cho platform từ cấu hình kênh của công ty
func NewClient(platform string, channel *companymodels.CompanyChannel, cfg ClientConfig) (Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	switch platform {
	case "telegram":
		return NewTelegramClient(channel.BotToken, cfg), nil
	case "whatsapp":
		return NewWhatsAppClient(channel.AccessToken, channel.PhoneNumberID, cfg), nil
	case "instagram":
		return NewMessengerClient("instagram", channel.PageID, channel.PageAccessToken, cfg), nil
	case "facebook":
		return NewMessengerClient("facebook", channel.PageID, channel.PageAccessToken, cfg), nil
	case "signal":
		return NewSignalClient(channel.SignalNumber, cfg), nil
	default:
		return nil, fmt.Errorf("platform không được hỗ trợ: %s", platform)
	}
}

// postJSON gọi POST với body JSON, trả về status code và body response.
// Lỗi network/timeout trả về error, status != 2xx KHÔNG phải error ở tầng này.
func postJSON(ctx context.Context, timeout time.Duration, url string, headers map[string]string, payload interface{}) (int, []byte, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return 0, nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

// getJSON gọi GET, trả về status code và body response
func getJSON(ctx context.Context, timeout time.Duration, url string, headers map[string]string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, nil, err
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, body, nil
}

func networkFailure(platform string, err error) *SendResult {
	return &SendResult{OK: false, Error: &SendError{Platform: platform, Message: err.Error()}}
}

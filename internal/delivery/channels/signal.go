package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/EldarGGG/nexus-back/internal/logger"
)

// SignalClient gửi tin nhắn qua signal-cli REST API (self-hosted)
type SignalClient struct {
	number  string // Số điện thoại Signal của công ty (account gửi)
	apiBase string
	timeout time.Duration
}

// NewSignalClient tạo mới SignalClient
func NewSignalClient(number string, cfg ClientConfig) *SignalClient {
	apiBase := cfg.SignalAPIBase
	if apiBase == "" {
		apiBase = "http://localhost:8090"
	}
	return &SignalClient{
		number:  number,
		apiBase: apiBase,
		timeout: cfg.Timeout,
	}
}

// Platform trả về tên platform
func (c *SignalClient) Platform() string {
	return "signal"
}

// signalResponse là response của signal-cli /v2/send
type signalResponse struct {
	Timestamp int64  `json:"timestamp,omitempty"`
	Error     string `json:"error,omitempty"`
}

// SendText gửi tin nhắn text đến số điện thoại người nhận
func (c *SignalClient) SendText(ctx context.Context, chatID string, text string) *SendResult {
	payload := map[string]interface{}{
		"number":     c.number,
		"recipients": []string{chatID},
		"message":    text,
	}
	return c.call(ctx, payload)
}

// SendMedia gửi media. signal-cli nhận base64_attachments hoặc URL tùy bản build;
// ở đây gửi kèm message là URL vì REST API chuẩn không tải media từ URL hộ.
func (c *SignalClient) SendMedia(ctx context.Context, chatID string, media Media) *SendResult {
	message := media.URL
	if media.Caption != "" {
		message = media.Caption + "\n" + media.URL
	}
	payload := map[string]interface{}{
		"number":     c.number,
		"recipients": []string{chatID},
		"message":    message,
	}
	return c.call(ctx, payload)
}

// ResolveFileURL đổi attachment id thành URL tải từ signal-cli
func (c *SignalClient) ResolveFileURL(ctx context.Context, fileID string) (string, error) {
	if fileID == "" {
		return "", fmt.Errorf("attachment id trống")
	}
	return fmt.Sprintf("%s/v1/attachments/%s", c.apiBase, fileID), nil
}

func (c *SignalClient) call(ctx context.Context, payload map[string]interface{}) *SendResult {
	log := logger.GetAppLogger()
	url := fmt.Sprintf("%s/v2/send", c.apiBase)

	statusCode, body, err := postJSON(ctx, c.timeout, url, nil, payload)
	if err != nil {
		log.WithError(err).Error("🔒 [SIGNAL] Lỗi khi gọi signal-cli API")
		return networkFailure("signal", err)
	}

	var response signalResponse
	_ = json.Unmarshal(body, &response)

	if statusCode < 200 || statusCode >= 300 {
		message := response.Error
		if message == "" {
			message = string(body)
		}
		log.WithField("statusCode", statusCode).WithField("response", string(body)).
			Error("🔒 [SIGNAL] signal-cli API trả về lỗi")
		return &SendResult{OK: false, Error: &SendError{
			Platform:   "signal",
			StatusCode: statusCode,
			Message:    message,
		}}
	}

	return &SendResult{OK: true, MessageID: strconv.FormatInt(response.Timestamp, 10)}
}

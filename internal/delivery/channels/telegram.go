package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/EldarGGG/nexus-back/internal/logger"
)

// TelegramClient gửi tin nhắn qua Telegram Bot API
type TelegramClient struct {
	botToken string
	apiBase  string
	timeout  time.Duration
}

// NewTelegramClient tạo mới TelegramClient
func NewTelegramClient(botToken string, cfg ClientConfig) *TelegramClient {
	apiBase := cfg.TelegramAPIBase
	if apiBase == "" {
		apiBase = "https://api.telegram.org"
	}
	return &TelegramClient{
		botToken: botToken,
		apiBase:  apiBase,
		timeout:  cfg.Timeout,
	}
}

// Platform trả về tên platform
func (c *TelegramClient) Platform() string {
	return "telegram"
}

// telegramResponse là envelope chung của Telegram Bot API
type telegramResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
	Result      struct {
		MessageID int64 `json:"message_id,omitempty"`
		FilePath  string `json:"file_path,omitempty"`
	} `json:"result"`
}

// SendText gửi tin nhắn text
func (c *TelegramClient) SendText(ctx context.Context, chatID string, text string) *SendResult {
	payload := map[string]interface{}{
		"chat_id": chatID,
		"text":    text,
	}
	return c.call(ctx, "sendMessage", payload)
}

// SendMedia gửi media bằng URL. Telegram tự tải media về từ URL công khai.
func (c *TelegramClient) SendMedia(ctx context.Context, chatID string, media Media) *SendResult {
	method := "sendDocument"
	mediaKey := "document"
	switch media.Type {
	case "image":
		method, mediaKey = "sendPhoto", "photo"
	case "audio":
		method, mediaKey = "sendAudio", "audio"
	case "video":
		method, mediaKey = "sendVideo", "video"
	}

	payload := map[string]interface{}{
		"chat_id": chatID,
		mediaKey:  media.URL,
	}
	if media.Caption != "" {
		payload["caption"] = media.Caption
	}
	return c.call(ctx, method, payload)
}

// ResolveFileURL đổi file_id thành URL tải trực tiếp (getFile → file path)
func (c *TelegramClient) ResolveFileURL(ctx context.Context, fileID string) (string, error) {
	url := fmt.Sprintf("%s/bot%s/getFile?file_id=%s", c.apiBase, c.botToken, fileID)
	statusCode, body, err := getJSON(ctx, c.timeout, url, nil)
	if err != nil {
		return "", err
	}

	var response telegramResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("parse getFile response: %w", err)
	}
	if statusCode != http.StatusOK || !response.OK || response.Result.FilePath == "" {
		return "", fmt.Errorf("getFile thất bại (status=%d): %s", statusCode, response.Description)
	}
	return fmt.Sprintf("%s/file/bot%s/%s", c.apiBase, c.botToken, response.Result.FilePath), nil
}

// SetWebhook đăng ký webhook URL với Telegram (gọi một lần khi cấu hình kênh)
func (c *TelegramClient) SetWebhook(ctx context.Context, webhookURL string) error {
	result := c.call(ctx, "setWebhook", map[string]interface{}{"url": webhookURL})
	if !result.OK {
		return result.Error
	}
	return nil
}

func (c *TelegramClient) call(ctx context.Context, method string, payload map[string]interface{}) *SendResult {
	log := logger.GetAppLogger()
	url := fmt.Sprintf("%s/bot%s/%s", c.apiBase, c.botToken, method)

	statusCode, body, err := postJSON(ctx, c.timeout, url, nil, payload)
	if err != nil {
		log.WithError(err).WithField("method", method).Error("📱 [TELEGRAM] Lỗi khi gọi Telegram API")
		return networkFailure("telegram", err)
	}

	var response telegramResponse
	_ = json.Unmarshal(body, &response)

	if statusCode != http.StatusOK || !response.OK {
		log.WithField("method", method).WithField("statusCode", statusCode).
			WithField("response", string(body)).Error("📱 [TELEGRAM] Telegram API trả về lỗi")
		return &SendResult{OK: false, Error: &SendError{
			Platform:   "telegram",
			StatusCode: statusCode,
			APICode:    strconv.Itoa(response.ErrorCode),
			Message:    response.Description,
		}}
	}

	return &SendResult{OK: true, MessageID: strconv.FormatInt(response.Result.MessageID, 10)}
}

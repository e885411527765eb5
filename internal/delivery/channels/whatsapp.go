package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/EldarGGG/nexus-back/internal/logger"
)

// WhatsAppClient gửi tin nhắn qua WhatsApp Cloud API (Meta Graph)
type WhatsAppClient struct {
	accessToken   string
	phoneNumberID string
	apiBase       string
	timeout       time.Duration
}

// NewWhatsAppClient tạo mới WhatsAppClient
func NewWhatsAppClient(accessToken string, phoneNumberID string, cfg ClientConfig) *WhatsAppClient {
	apiBase := cfg.GraphAPIBase
	if apiBase == "" {
		apiBase = "https://graph.facebook.com"
	}
	return &WhatsAppClient{
		accessToken:   accessToken,
		phoneNumberID: phoneNumberID,
		apiBase:       apiBase,
		timeout:       cfg.Timeout,
	}
}

// Platform trả về tên platform
func (c *WhatsAppClient) Platform() string {
	return "whatsapp"
}

// whatsAppResponse là response của Cloud API /messages
type whatsAppResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages,omitempty"`
	Error *struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

// SendText gửi tin nhắn text đến số điện thoại
func (c *WhatsAppClient) SendText(ctx context.Context, chatID string, text string) *SendResult {
	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                chatID,
		"type":              "text",
		"text":              map[string]interface{}{"body": text},
	}
	return c.call(ctx, payload)
}

// SendMedia gửi media bằng URL công khai
func (c *WhatsAppClient) SendMedia(ctx context.Context, chatID string, media Media) *SendResult {
	mediaType := media.Type
	switch mediaType {
	case "image", "document", "audio", "video":
	default:
		mediaType = "document"
	}

	mediaPayload := map[string]interface{}{"link": media.URL}
	if media.Caption != "" && mediaType != "audio" {
		mediaPayload["caption"] = media.Caption
	}
	if media.FileName != "" && mediaType == "document" {
		mediaPayload["filename"] = media.FileName
	}

	payload := map[string]interface{}{
		"messaging_product": "whatsapp",
		"to":                chatID,
		"type":              mediaType,
		mediaType:           mediaPayload,
	}
	return c.call(ctx, payload)
}

// ResolveFileURL đổi media id inbound thành URL tải (GET /<mediaId>)
func (c *WhatsAppClient) ResolveFileURL(ctx context.Context, fileID string) (string, error) {
	url := fmt.Sprintf("%s/v17.0/%s", c.apiBase, fileID)
	headers := map[string]string{"Authorization": "Bearer " + c.accessToken}

	statusCode, body, err := getJSON(ctx, c.timeout, url, headers)
	if err != nil {
		return "", err
	}

	var response struct {
		URL string `json:"url,omitempty"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("parse media response: %w", err)
	}
	if statusCode != 200 || response.URL == "" {
		return "", fmt.Errorf("resolve media thất bại (status=%d)", statusCode)
	}
	return response.URL, nil
}

func (c *WhatsAppClient) call(ctx context.Context, payload map[string]interface{}) *SendResult {
	log := logger.GetAppLogger()
	url := fmt.Sprintf("%s/v17.0/%s/messages", c.apiBase, c.phoneNumberID)
	headers := map[string]string{"Authorization": "Bearer " + c.accessToken}

	statusCode, body, err := postJSON(ctx, c.timeout, url, headers, payload)
	if err != nil {
		log.WithError(err).Error("💬 [WHATSAPP] Lỗi khi gọi Cloud API")
		return networkFailure("whatsapp", err)
	}

	var response whatsAppResponse
	_ = json.Unmarshal(body, &response)

	if statusCode < 200 || statusCode >= 300 || response.Error != nil {
		apiCode := ""
		message := string(body)
		if response.Error != nil {
			apiCode = strconv.Itoa(response.Error.Code)
			message = response.Error.Message
		}
		log.WithField("statusCode", statusCode).WithField("response", string(body)).
			Error("💬 [WHATSAPP] Cloud API trả về lỗi")
		return &SendResult{OK: false, Error: &SendError{
			Platform:   "whatsapp",
			StatusCode: statusCode,
			APICode:    apiCode,
			Message:    message,
		}}
	}

	messageID := ""
	if len(response.Messages) > 0 {
		messageID = response.Messages[0].ID
	}
	return &SendResult{OK: true, MessageID: messageID}
}

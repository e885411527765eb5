package channels

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/EldarGGG/nexus-back/internal/logger"
)

// MessengerClient gửi tin nhắn qua Meta Send API, dùng chung cho
// Instagram Messaging và Facebook Messenger (chỉ khác page và token).
type MessengerClient struct {
	platform        string
	pageID          string
	pageAccessToken string
	apiBase         string
	timeout         time.Duration
}

// NewMessengerClient tạo mới MessengerClient cho instagram hoặc facebook
func NewMessengerClient(platform string, pageID string, pageAccessToken string, cfg ClientConfig) *MessengerClient {
	apiBase := cfg.GraphAPIBase
	if apiBase == "" {
		apiBase = "https://graph.facebook.com"
	}
	return &MessengerClient{
		platform:        platform,
		pageID:          pageID,
		pageAccessToken: pageAccessToken,
		apiBase:         apiBase,
		timeout:         cfg.Timeout,
	}
}

// Platform trả về tên platform
func (c *MessengerClient) Platform() string {
	return c.platform
}

// messengerResponse là response của Send API
type messengerResponse struct {
	MessageID string `json:"message_id,omitempty"`
	Error     *struct {
		Code    int    `json:"code,omitempty"`
		Message string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

// SendText gửi tin nhắn text đến PSID/IGSID
func (c *MessengerClient) SendText(ctx context.Context, chatID string, text string) *SendResult {
	payload := map[string]interface{}{
		"recipient": map[string]interface{}{"id": chatID},
		"message":   map[string]interface{}{"text": text},
	}
	return c.call(ctx, payload)
}

// SendMedia gửi media bằng URL công khai
func (c *MessengerClient) SendMedia(ctx context.Context, chatID string, media Media) *SendResult {
	attachmentType := media.Type
	switch attachmentType {
	case "image", "audio", "video":
	default:
		attachmentType = "file"
	}

	payload := map[string]interface{}{
		"recipient": map[string]interface{}{"id": chatID},
		"message": map[string]interface{}{
			"attachment": map[string]interface{}{
				"type":    attachmentType,
				"payload": map[string]interface{}{"url": media.URL, "is_reusable": true},
			},
		},
	}
	return c.call(ctx, payload)
}

// ResolveFileURL: Send API đã trả URL trực tiếp trong webhook attachment,
// không có bước resolve riêng.
func (c *MessengerClient) ResolveFileURL(ctx context.Context, fileID string) (string, error) {
	return "", fmt.Errorf("%s không hỗ trợ resolve file url, attachment đã chứa URL trực tiếp", c.platform)
}

func (c *MessengerClient) call(ctx context.Context, payload map[string]interface{}) *SendResult {
	log := logger.GetAppLogger()
	url := fmt.Sprintf("%s/v17.0/%s/messages?access_token=%s", c.apiBase, c.pageID, c.pageAccessToken)

	statusCode, body, err := postJSON(ctx, c.timeout, url, nil, payload)
	if err != nil {
		log.WithError(err).WithField("platform", c.platform).Error("📣 [MESSENGER] Lỗi khi gọi Send API")
		return networkFailure(c.platform, err)
	}

	var response messengerResponse
	_ = json.Unmarshal(body, &response)

	if statusCode < 200 || statusCode >= 300 || response.Error != nil {
		apiCode := ""
		message := string(body)
		if response.Error != nil {
			apiCode = strconv.Itoa(response.Error.Code)
			message = response.Error.Message
		}
		log.WithField("platform", c.platform).WithField("statusCode", statusCode).
			WithField("response", string(body)).Error("📣 [MESSENGER] Send API trả về lỗi")
		return &SendResult{OK: false, Error: &SendError{
			Platform:   c.platform,
			StatusCode: statusCode,
			APICode:    apiCode,
			Message:    message,
		}}
	}

	return &SendResult{OK: true, MessageID: response.MessageID}
}

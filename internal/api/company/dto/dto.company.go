// Package companydto chứa các DTO cho domain Company
package companydto

// CreateCompanyRequest là body cho API tạo công ty
type CreateCompanyRequest struct {
	Name     string                 `json:"name" validate:"required,min=1,max=200"`
	Metadata map[string]interface{} `json:"metadata"`
}

// UpdateCompanyStatusRequest là body cho API đổi trạng thái công ty
type UpdateCompanyStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended"`
}

// UpsertChannelRequest là body cho API cấu hình kênh chat của công ty.
// Mỗi platform dùng một tập credentials riêng, các trường không liên quan để trống.
type UpsertChannelRequest struct {
	Platform string `json:"platform" validate:"required,platform"`

	// Telegram
	BotToken string `json:"botToken"`

	// WhatsApp Cloud API
	AccessToken   string `json:"accessToken"`
	PhoneNumberID string `json:"phoneNumberId"`

	// Instagram / Facebook Messenger
	PageID          string `json:"pageId"`
	PageAccessToken string `json:"pageAccessToken"`

	// Signal (signal-cli REST)
	SignalNumber string `json:"signalNumber"`

	// Secret dùng cho bước verify webhook (hub.verify_token của Meta)
	WebhookSecret string `json:"webhookSecret"`

	Active *bool `json:"active"`
}

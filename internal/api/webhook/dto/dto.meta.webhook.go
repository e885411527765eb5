package webhookdto

// MetaWebhookRequest là envelope chung của webhook Meta (WhatsApp Cloud API,
// Instagram Messaging, Facebook Messenger). Cấu trúc bên trong entry khác nhau
// theo từng product: WhatsApp dùng changes[], Instagram/Facebook dùng messaging[].
type MetaWebhookRequest struct {
	Object string      `json:"object"` // whatsapp_business_account / instagram / page
	Entry  []MetaEntry `json:"entry"`
}

// MetaEntry là một entry trong webhook Meta
type MetaEntry struct {
	ID        string               `json:"id"`
	Time      int64                `json:"time,omitempty"`
	Changes   []WhatsAppChange     `json:"changes,omitempty"`   // WhatsApp Cloud API
	Messaging []MessengerMessaging `json:"messaging,omitempty"` // Instagram / Facebook Messenger
}

// ===== WhatsApp Cloud API =====

// WhatsAppChange là một change trong entry của WhatsApp
type WhatsAppChange struct {
	Field string        `json:"field"` // messages
	Value WhatsAppValue `json:"value"`
}

// WhatsAppValue chứa batch tin nhắn và status update của WhatsApp.
// Một webhook có thể mang nhiều messages cùng lúc.
type WhatsAppValue struct {
	MessagingProduct string             `json:"messaging_product,omitempty"`
	Metadata         *WhatsAppMetadata  `json:"metadata,omitempty"`
	Contacts         []WhatsAppContact  `json:"contacts,omitempty"`
	Messages         []WhatsAppMessage  `json:"messages,omitempty"`
	Statuses         []WhatsAppStatus   `json:"statuses,omitempty"`
}

// WhatsAppMetadata chứa thông tin số điện thoại business nhận webhook
type WhatsAppMetadata struct {
	DisplayPhoneNumber string `json:"display_phone_number,omitempty"`
	PhoneNumberID      string `json:"phone_number_id,omitempty"`
}

// WhatsAppContact là profile của người gửi
type WhatsAppContact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name,omitempty"`
	} `json:"profile"`
}

// WhatsAppMessage là một tin nhắn WhatsApp
type WhatsAppMessage struct {
	ID        string             `json:"id"`        // wamid...
	From      string             `json:"from"`      // số điện thoại người gửi
	Timestamp string             `json:"timestamp"` // epoch seconds dạng string
	Type      string             `json:"type"`      // text / image / document / audio / video / sticker / location / contacts
	Text      *WhatsAppText      `json:"text,omitempty"`
	Image     *WhatsAppMedia     `json:"image,omitempty"`
	Document  *WhatsAppMedia     `json:"document,omitempty"`
	Audio     *WhatsAppMedia     `json:"audio,omitempty"`
	Video     *WhatsAppMedia     `json:"video,omitempty"`
	Sticker   *WhatsAppMedia     `json:"sticker,omitempty"`
	Location  *WhatsAppLocation  `json:"location,omitempty"`
}

// WhatsAppText là nội dung text
type WhatsAppText struct {
	Body string `json:"body"`
}

// WhatsAppMedia là media đính kèm (resolve URL qua media API bằng ID)
type WhatsAppMedia struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type,omitempty"`
	SHA256   string `json:"sha256,omitempty"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// WhatsAppLocation là vị trí được chia sẻ
type WhatsAppLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

// WhatsAppStatus là status update (sent/delivered/read) cho tin nhắn outbound.
// Pipeline không xử lý loại event này, chỉ ghi log.
type WhatsAppStatus struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	Timestamp   string `json:"timestamp,omitempty"`
	RecipientID string `json:"recipient_id,omitempty"`
}

// ===== Instagram / Facebook Messenger =====

// MessengerMessaging là một messaging event của Instagram/Facebook
type MessengerMessaging struct {
	Sender    MessengerParty      `json:"sender"`
	Recipient MessengerParty      `json:"recipient"`
	Timestamp int64               `json:"timestamp"` // epoch millis
	Message   *MessengerMessage   `json:"message,omitempty"`
	Postback  *MessengerPostback  `json:"postback,omitempty"`
	Delivery  *MessengerDelivery  `json:"delivery,omitempty"`
	Read      *MessengerRead      `json:"read,omitempty"`
}

// MessengerParty là một bên của hội thoại (PSID / IGSID)
type MessengerParty struct {
	ID string `json:"id"`
}

// MessengerMessage là tin nhắn Instagram/Facebook
type MessengerMessage struct {
	MID         string                `json:"mid"`
	Text        string                `json:"text,omitempty"`
	IsEcho      bool                  `json:"is_echo,omitempty"`
	Attachments []MessengerAttachment `json:"attachments,omitempty"`
}

// MessengerAttachment là media đính kèm (URL trực tiếp trong payload)
type MessengerAttachment struct {
	Type    string `json:"type"` // image / video / audio / file
	Payload struct {
		URL string `json:"url,omitempty"`
	} `json:"payload"`
}

// MessengerPostback là event bấm nút. Pipeline không xử lý, chỉ ghi log.
type MessengerPostback struct {
	Title   string `json:"title,omitempty"`
	Payload string `json:"payload,omitempty"`
}

// MessengerDelivery là báo nhận delivered. Pipeline không xử lý, chỉ ghi log.
type MessengerDelivery struct {
	MIDs      []string `json:"mids,omitempty"`
	Watermark int64    `json:"watermark,omitempty"`
}

// MessengerRead là báo nhận đã đọc. Pipeline không xử lý, chỉ ghi log.
type MessengerRead struct {
	Watermark int64 `json:"watermark,omitempty"`
}

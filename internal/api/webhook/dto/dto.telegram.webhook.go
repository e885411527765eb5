// Package webhookdto chứa các DTO cho payload webhook của từng platform.
package webhookdto

// TelegramUpdate là payload Telegram Bot API gửi đến webhook (một update mỗi request)
type TelegramUpdate struct {
	UpdateID      int64                  `json:"update_id"`
	Message       *TelegramMessage       `json:"message,omitempty"`
	EditedMessage *TelegramMessage       `json:"edited_message,omitempty"`
	CallbackQuery *TelegramCallbackQuery `json:"callback_query,omitempty"`
}

// TelegramMessage là một tin nhắn Telegram
type TelegramMessage struct {
	MessageID int64                `json:"message_id"`
	Date      int64                `json:"date"` // epoch seconds
	Chat      TelegramChat         `json:"chat"`
	From      *TelegramUser        `json:"from,omitempty"`
	Text      string               `json:"text,omitempty"`
	Caption   string               `json:"caption,omitempty"`
	Photo     []TelegramPhotoSize  `json:"photo,omitempty"`
	Document  *TelegramDocument    `json:"document,omitempty"`
	Voice     *TelegramVoice       `json:"voice,omitempty"`
	Video     *TelegramVideo       `json:"video,omitempty"`
	Sticker   *TelegramSticker     `json:"sticker,omitempty"`
	Contact   *TelegramContact     `json:"contact,omitempty"`
	Location  *TelegramLocation    `json:"location,omitempty"`
}

// TelegramChat là thông tin chat (private / group)
type TelegramChat struct {
	ID   int64  `json:"id"`
	Type string `json:"type,omitempty"`
}

// TelegramUser là thông tin người gửi
type TelegramUser struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot,omitempty"`
	Username  string `json:"username,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// TelegramPhotoSize là một size của ảnh. Telegram gửi nhiều size cho cùng một ảnh,
// pipeline chỉ giữ size lớn nhất theo FileSize.
type TelegramPhotoSize struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// TelegramDocument là file đính kèm
type TelegramDocument struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// TelegramVoice là voice message
type TelegramVoice struct {
	FileID   string `json:"file_id"`
	Duration int    `json:"duration,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// TelegramVideo là video đính kèm
type TelegramVideo struct {
	FileID   string `json:"file_id"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
	Duration int    `json:"duration,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// TelegramSticker là sticker
type TelegramSticker struct {
	FileID   string `json:"file_id"`
	Emoji    string `json:"emoji,omitempty"`
	FileSize int64  `json:"file_size,omitempty"`
}

// TelegramContact là danh bạ được chia sẻ
type TelegramContact struct {
	PhoneNumber string `json:"phone_number"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
}

// TelegramLocation là vị trí được chia sẻ
type TelegramLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TelegramCallbackQuery là event bấm nút inline keyboard.
// Pipeline không xử lý loại event này, chỉ ghi log.
type TelegramCallbackQuery struct {
	ID   string           `json:"id"`
	From *TelegramUser    `json:"from,omitempty"`
	Data string           `json:"data,omitempty"`
}

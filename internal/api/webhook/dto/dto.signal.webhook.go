package webhookdto

// SignalWebhookRequest là payload từ signal-cli REST API (chế độ json-rpc receive)
type SignalWebhookRequest struct {
	Envelope *SignalEnvelope `json:"envelope,omitempty"`
	Account  string          `json:"account,omitempty"`
}

// SignalEnvelope bọc một event Signal
type SignalEnvelope struct {
	Source         string                `json:"source"`     // số điện thoại người gửi
	SourceName     string                `json:"sourceName,omitempty"`
	SourceUUID     string                `json:"sourceUuid,omitempty"`
	Timestamp      int64                 `json:"timestamp"` // epoch millis, cũng là message id phía Signal
	DataMessage    *SignalDataMessage    `json:"dataMessage,omitempty"`
	ReceiptMessage *SignalReceiptMessage `json:"receiptMessage,omitempty"`
	TypingMessage  *SignalTypingMessage  `json:"typingMessage,omitempty"`
}

// SignalDataMessage là nội dung tin nhắn Signal
type SignalDataMessage struct {
	Message     string             `json:"message,omitempty"`
	Timestamp   int64              `json:"timestamp,omitempty"`
	Attachments []SignalAttachment `json:"attachments,omitempty"`
}

// SignalAttachment là media đính kèm (tải về qua signal-cli bằng ID)
type SignalAttachment struct {
	ID          string `json:"id"`
	ContentType string `json:"contentType,omitempty"`
	Filename    string `json:"filename,omitempty"`
	Size        int64  `json:"size,omitempty"`
}

// SignalReceiptMessage là báo nhận delivered/read. Pipeline không xử lý, chỉ ghi log.
type SignalReceiptMessage struct {
	When       int64   `json:"when,omitempty"`
	IsDelivery bool    `json:"isDelivery,omitempty"`
	IsRead     bool    `json:"isRead,omitempty"`
	Timestamps []int64 `json:"timestamps,omitempty"`
}

// SignalTypingMessage là typing indicator. Pipeline không xử lý, chỉ ghi log.
type SignalTypingMessage struct {
	Action    string `json:"action,omitempty"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

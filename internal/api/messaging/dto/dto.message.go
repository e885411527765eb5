package messagingdto

// FindMessagesRequest là query params cho API liệt kê tin nhắn của hội thoại
type FindMessagesRequest struct {
	Page  int64 `query:"page"`
	Limit int64 `query:"limit"`
}

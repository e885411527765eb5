// Package messagingdto chứa các DTO cho domain Messaging
package messagingdto

// FindConversationsRequest là query params cho API liệt kê hội thoại của công ty
type FindConversationsRequest struct {
	CompanyID string `query:"companyId" validate:"required"`
	Platform  string `query:"platform" validate:"omitempty,platform"`
	Page      int64  `query:"page"`
	Limit     int64  `query:"limit"`
}

// UpdateConversationStatusRequest là body cho API đổi trạng thái hội thoại
type UpdateConversationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active closed archived"`
}

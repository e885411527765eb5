package messaginghdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/EldarGGG/nexus-back/internal/api/base/handler"
	messagingdto "github.com/EldarGGG/nexus-back/internal/api/messaging/dto"
	messagingsvc "github.com/EldarGGG/nexus-back/internal/api/messaging/service"
	"github.com/EldarGGG/nexus-back/internal/common"
)

// MessageHandler xử lý các request liên quan đến tin nhắn
type MessageHandler struct {
	messageService *messagingsvc.MessageService
}

// NewMessageHandler tạo mới MessageHandler
func NewMessageHandler() (*MessageHandler, error) {
	messageService, err := messagingsvc.NewMessageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %v", err)
	}
	return &MessageHandler{
		messageService: messageService,
	}, nil
}

// HandleFindByConversation liệt kê tin nhắn của hội thoại, mới nhất trước
// GET /api/v1/messaging/conversations/:conversationId/messages?page=&limit=
func (h *MessageHandler) HandleFindByConversation(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		conversationID, err := primitive.ObjectIDFromHex(c.Params("conversationId"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var req messagingdto.FindMessagesRequest
		if err := c.Bind().Query(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		result, err := h.messageService.FindByConversation(c.Context(), conversationID, req.Page, req.Limit)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

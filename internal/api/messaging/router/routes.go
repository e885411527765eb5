// Package router đăng ký các route thuộc domain Messaging: hội thoại, tin nhắn.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	messaginghdl "github.com/EldarGGG/nexus-back/internal/api/messaging/handler"
	apirouter "github.com/EldarGGG/nexus-back/internal/api/router"
)

// Register đăng ký tất cả route messaging lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	conversationHandler, err := messaginghdl.NewConversationHandler()
	if err != nil {
		return fmt.Errorf("create conversation handler: %w", err)
	}
	messageHandler, err := messaginghdl.NewMessageHandler()
	if err != nil {
		return fmt.Errorf("create message handler: %w", err)
	}

	messaging := v1.Group("/messaging")
	messaging.Get("/conversations", conversationHandler.HandleFindByCompany)
	messaging.Get("/conversations/:conversationId", conversationHandler.HandleFindOneById)
	messaging.Put("/conversations/:conversationId/status", conversationHandler.HandleUpdateStatus)
	messaging.Get("/conversations/:conversationId/messages", messageHandler.HandleFindByConversation)

	return nil
}

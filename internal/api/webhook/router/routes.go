// Package router đăng ký các route thuộc domain Webhook: ingest webhook platform (public), tra cứu log.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	webhookhdl "github.com/EldarGGG/nexus-back/internal/api/webhook/handler"
	apirouter "github.com/EldarGGG/nexus-back/internal/api/router"
)

// Register đăng ký tất cả route webhook lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	platformWebhookHandler, err := webhookhdl.NewPlatformWebhookHandler()
	if err != nil {
		return fmt.Errorf("create platform webhook handler: %w", err)
	}
	webhookLogHandler, err := webhookhdl.NewWebhookLogHandler()
	if err != nil {
		return fmt.Errorf("create webhook log handler: %w", err)
	}

	webhooks := v1.Group("/webhooks")
	webhooks.Get("/logs", webhookLogHandler.HandleFind)
	webhooks.Post("/:platform/:companyId", platformWebhookHandler.HandleWebhook)
	webhooks.Get("/:platform/:companyId", platformWebhookHandler.HandleVerify)

	return nil
}

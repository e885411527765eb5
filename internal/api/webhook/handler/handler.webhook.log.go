package webhookhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basehdl "github.com/EldarGGG/nexus-back/internal/api/base/handler"
	webhooksvc "github.com/EldarGGG/nexus-back/internal/api/webhook/service"
	"github.com/EldarGGG/nexus-back/internal/common"
)

// WebhookLogHandler xử lý các request tra cứu webhook logs (phục vụ debug)
type WebhookLogHandler struct {
	webhookLogService *webhooksvc.WebhookLogService
}

// NewWebhookLogHandler tạo mới WebhookLogHandler
func NewWebhookLogHandler() (*WebhookLogHandler, error) {
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %v", err)
	}
	return &WebhookLogHandler{
		webhookLogService: webhookLogService,
	}, nil
}

// HandleFind liệt kê webhook logs, mới nhất trước, có phân trang
// GET /api/v1/webhooks/logs?companyId=&platform=&processed=&page=&limit=
func (h *WebhookLogHandler) HandleFind(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		filter := bson.M{}
		if companyIDStr := c.Query("companyId"); companyIDStr != "" {
			companyID, err := primitive.ObjectIDFromHex(companyIDStr)
			if err != nil {
				basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
				return nil
			}
			filter["companyId"] = companyID
		}
		if platform := c.Query("platform"); platform != "" {
			filter["platform"] = platform
		}
		if processed := c.Query("processed"); processed != "" {
			filter["processed"] = processed == "true"
		}

		page := int64(fiber.Query[int](c, "page", 1))
		limit := int64(fiber.Query[int](c, "limit", 20))
		opts := options.Find().SetSort(bson.D{{Key: "receivedAt", Value: -1}})

		result, err := h.webhookLogService.FindWithPagination(c.Context(), filter, page, limit, opts)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

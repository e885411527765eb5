// Package webhookhdl - handler nhận webhook từ các chat platform.
package webhookhdl

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/EldarGGG/nexus-back/internal/api/base/handler"
	companysvc "github.com/EldarGGG/nexus-back/internal/api/company/service"
	webhookmodels "github.com/EldarGGG/nexus-back/internal/api/webhook/models"
	webhooksvc "github.com/EldarGGG/nexus-back/internal/api/webhook/service"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
	"github.com/EldarGGG/nexus-back/internal/logger"
)

// PlatformWebhookHandler xử lý webhook inbound từ telegram / whatsapp / instagram / facebook / signal.
// Nguyên tắc: webhook LUÔN được ACK 200. Payload hỏng, platform lạ, công ty sai —
// tất cả đều trả 200 để platform không retry vô hạn; kết quả thật nằm trong body và log.
type PlatformWebhookHandler struct {
	dispatcher        *webhooksvc.DispatcherService
	webhookLogService *webhooksvc.WebhookLogService
	channelService    *companysvc.CompanyChannelService
}

// NewPlatformWebhookHandler tạo mới PlatformWebhookHandler
func NewPlatformWebhookHandler() (*PlatformWebhookHandler, error) {
	dispatcher, err := webhooksvc.NewDispatcherService()
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatcher service: %v", err)
	}
	webhookLogService, err := webhooksvc.NewWebhookLogService()
	if err != nil {
		return nil, fmt.Errorf("failed to create webhook log service: %v", err)
	}
	channelService, err := companysvc.NewCompanyChannelService()
	if err != nil {
		return nil, fmt.Errorf("failed to create company channel service: %v", err)
	}
	return &PlatformWebhookHandler{
		dispatcher:        dispatcher,
		webhookLogService: webhookLogService,
		channelService:    channelService,
	}, nil
}

// HandleWebhook nhận webhook inbound
// POST /api/v1/webhooks/:platform/:companyId
func (h *PlatformWebhookHandler) HandleWebhook(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		log := logger.GetAppLogger()
		ctx := c.Context()
		platform := c.Params("platform")
		rawBody := append([]byte(nil), c.Body()...)

		companyID, companyIDErr := primitive.ObjectIDFromHex(c.Params("companyId"))

		webhookLog, logErr := h.saveWebhookLog(ctx, c, companyID, platform, string(rawBody))
		if logErr != nil {
			log.WithError(logErr).Warn("📨 [WEBHOOK] Không thể lưu webhook log")
		}

		var result *webhooksvc.DispatchResult
		if companyIDErr != nil {
			log.WithField("companyId", c.Params("companyId")).
				Warn("📨 [WEBHOOK] companyId không hợp lệ, bỏ qua webhook")
			result = &webhooksvc.DispatchResult{
				Status: webhooksvc.DispatchStatusIgnored,
				Detail: "companyId không hợp lệ",
			}
		} else {
			result = h.dispatcher.Dispatch(ctx, companyID, platform, rawBody)
		}

		if webhookLog != nil {
			processed := result.Status == webhooksvc.DispatchStatusProcessed
			_ = h.webhookLogService.UpdateProcessedStatus(ctx, webhookLog.ID, processed, result.Detail)
		}

		return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
			"code":    common.StatusOK,
			"message": "Webhook đã được nhận",
			"status":  result.Status,
			"data":    result,
		})
	})
}

// HandleVerify trả lời bước verify webhook của Meta platforms (hub.challenge)
// GET /api/v1/webhooks/:platform/:companyId
func (h *PlatformWebhookHandler) HandleVerify(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		platform := c.Params("platform")
		switch platform {
		case "whatsapp", "instagram", "facebook":
		default:
			return basehdl.JSONResponse(c, common.StatusOK, fiber.Map{
				"code": common.StatusOK, "message": "OK", "status": "success",
			})
		}

		companyID, err := primitive.ObjectIDFromHex(c.Params("companyId"))
		if err != nil {
			return c.Status(common.StatusForbidden).SendString("Forbidden")
		}

		mode := c.Query("hub.mode")
		verifyToken := c.Query("hub.verify_token")
		challenge := c.Query("hub.challenge")

		if mode != "subscribe" {
			return c.Status(common.StatusForbidden).SendString("Forbidden")
		}
		ok, err := h.channelService.VerifySecret(c.Context(), companyID, platform, verifyToken)
		if err != nil || !ok {
			logger.GetAppLogger().WithField("platform", platform).
				WithField("companyId", companyID.Hex()).
				Warn("📨 [WEBHOOK] Verify token không khớp")
			return c.Status(common.StatusForbidden).SendString("Forbidden")
		}
		return c.Status(common.StatusOK).SendString(challenge)
	})
}

func (h *PlatformWebhookHandler) saveWebhookLog(ctx context.Context, c fiber.Ctx, companyID primitive.ObjectID, platform string, rawBody string) (*webhookmodels.WebhookLog, error) {
	now := time.Now().UnixMilli()
	requestHeaders := make(map[string]string)
	c.Request().Header.VisitAll(func(key, value []byte) {
		requestHeaders[string(key)] = string(value)
	})

	eventType := ""
	if !global.IsSupportedPlatform(platform) {
		eventType = "unsupported_platform"
	}

	webhookLog := webhookmodels.WebhookLog{
		CompanyID:      companyID,
		Platform:       platform,
		EventType:      eventType,
		RequestHeaders: requestHeaders,
		RawBody:        rawBody,
		Processed:      false,
		IPAddress:      c.IP(),
		UserAgent:      c.Get("User-Agent"),
		ReceivedAt:     now,
	}
	return h.webhookLogService.CreateWebhookLog(ctx, webhookLog)
}

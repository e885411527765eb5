package companyhdl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basehdl "github.com/EldarGGG/nexus-back/internal/api/base/handler"
	companydto "github.com/EldarGGG/nexus-back/internal/api/company/dto"
	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	companysvc "github.com/EldarGGG/nexus-back/internal/api/company/service"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/delivery/channels"
	"github.com/EldarGGG/nexus-back/internal/global"
	"github.com/EldarGGG/nexus-back/internal/logger"
)

// CompanyChannelHandler xử lý các request cấu hình kênh chat của công ty
type CompanyChannelHandler struct {
	companyService *companysvc.CompanyService
	channelService *companysvc.CompanyChannelService
}

// NewCompanyChannelHandler tạo mới CompanyChannelHandler
func NewCompanyChannelHandler() (*CompanyChannelHandler, error) {
	companyService, err := companysvc.NewCompanyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create company service: %v", err)
	}
	channelService, err := companysvc.NewCompanyChannelService()
	if err != nil {
		return nil, fmt.Errorf("failed to create company channel service: %v", err)
	}
	return &CompanyChannelHandler{
		companyService: companyService,
		channelService: channelService,
	}, nil
}

// HandleUpsertChannel tạo mới hoặc cập nhật cấu hình kênh của công ty cho một platform
// PUT /api/v1/companies/:companyId/channels
func (h *CompanyChannelHandler) HandleUpsertChannel(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		companyID, err := primitive.ObjectIDFromHex(c.Params("companyId"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		var req companydto.UpsertChannelRequest
		if err := c.Bind().Body(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}
		if err := global.Validate.Struct(&req); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, err.Error(), common.StatusBadRequest, nil))
			return nil
		}

		// Công ty phải tồn tại và đang active
		if _, err := h.companyService.FindActiveById(c.Context(), companyID); err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		active := true
		if req.Active != nil {
			active = *req.Active
		}
		channel := companymodels.CompanyChannel{
			CompanyID:       companyID,
			Platform:        req.Platform,
			BotToken:        req.BotToken,
			AccessToken:     req.AccessToken,
			PhoneNumberID:   req.PhoneNumberID,
			PageID:          req.PageID,
			PageAccessToken: req.PageAccessToken,
			SignalNumber:    req.SignalNumber,
			WebhookSecret:   req.WebhookSecret,
			Active:          active,
		}

		result, err := h.channelService.UpsertChannel(c.Context(), channel)
		if err == nil && channel.Platform == "telegram" && channel.Active && channel.BotToken != "" {
			registerTelegramWebhook(c.Context(), channel)
		}
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// registerTelegramWebhook đăng ký webhook URL với Telegram sau khi lưu cấu hình kênh.
// Telegram là platform duy nhất cần bước này: các platform khác cấu hình webhook
// trên dashboard của họ. Đăng ký thất bại không làm fail upsert — cấu hình đã lưu,
// lần upsert sau sẽ đăng ký lại.
func registerTelegramWebhook(ctx context.Context, channel companymodels.CompanyChannel) {
	cfg := global.MongoDB_ServerConfig
	if cfg == nil || cfg.WebhookBaseURL == "" {
		return
	}
	webhookURL := fmt.Sprintf("%s/api/v1/webhooks/telegram/%s",
		strings.TrimRight(cfg.WebhookBaseURL, "/"), channel.CompanyID.Hex())

	clientConfig := channels.ClientConfig{Timeout: 10 * time.Second}
	if cfg.ChannelTimeout > 0 {
		clientConfig.Timeout = time.Duration(cfg.ChannelTimeout) * time.Second
	}
	client := channels.NewTelegramClient(channel.BotToken, clientConfig)

	log := logger.GetAppLogger().WithField("companyId", channel.CompanyID.Hex())
	if err := client.SetWebhook(ctx, webhookURL); err != nil {
		log.WithError(err).Warn("📣 [CHANNEL] Đăng ký webhook Telegram thất bại")
		return
	}
	log.WithField("webhookUrl", webhookURL).Info("📣 [CHANNEL] Đã đăng ký webhook với Telegram")
}

// HandleFindChannels liệt kê cấu hình kênh của công ty
// GET /api/v1/companies/:companyId/channels
func (h *CompanyChannelHandler) HandleFindChannels(c fiber.Ctx) error {
	return basehdl.SafeHandler(c, func() error {
		companyID, err := primitive.ObjectIDFromHex(c.Params("companyId"))
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}

		channels, err := h.channelService.Find(c.Context(), bson.M{"companyId": companyID}, nil)
		basehdl.HandleResponse(c, channels, err)
		return nil
	})
}

// Package webhooksvc chứa service cho domain Webhook: log, chuẩn hóa payload, dispatch.
// File: service.webhook.log.go
package webhooksvc

import (
	"context"
	"fmt"
	"time"

	basesvc "github.com/EldarGGG/nexus-back/internal/api/base/service"
	webhookmodels "github.com/EldarGGG/nexus-back/internal/api/webhook/models"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
	"github.com/EldarGGG/nexus-back/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WebhookLogService là cấu trúc chứa các phương thức liên quan đến webhook logs
type WebhookLogService struct {
	*basesvc.BaseServiceMongoImpl[webhookmodels.WebhookLog]
}

// NewWebhookLogService tạo mới WebhookLogService
func NewWebhookLogService() (*WebhookLogService, error) {
	webhookLogCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.WebhookLogs)
	if !exist {
		return nil, fmt.Errorf("failed to get webhook_logs collection: %v", common.ErrNotFound)
	}

	return &WebhookLogService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[webhookmodels.WebhookLog](webhookLogCollection),
	}, nil
}

// CreateWebhookLog tạo mới webhook log
func (s *WebhookLogService) CreateWebhookLog(ctx context.Context, log webhookmodels.WebhookLog) (*webhookmodels.WebhookLog, error) {
	result, err := s.InsertOne(ctx, log)
	if err != nil {
		return nil, err
	}
	logger.GetAuditLogger().WithField("platform", log.Platform).
		WithField("companyId", log.CompanyID.Hex()).
		WithField("ip", log.IPAddress).
		Info("📨 [WEBHOOK] Webhook inbound đã được ghi nhận")
	return &result, nil
}

// UpdateProcessedStatus cập nhật trạng thái đã xử lý của webhook log
func (s *WebhookLogService) UpdateProcessedStatus(ctx context.Context, logID primitive.ObjectID, processed bool, errorMsg string) error {
	now := time.Now().UnixMilli()
	set := bson.M{
		"processed":    processed,
		"processError": errorMsg,
		"updatedAt":    now,
	}
	if processed {
		set["processedAt"] = now
	}

	_, err := s.Collection().UpdateOne(ctx, bson.M{"_id": logID}, bson.M{"$set": set})
	if err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

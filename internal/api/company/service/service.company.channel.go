// File: service.company.channel.go
package companysvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	basesvc "github.com/EldarGGG/nexus-back/internal/api/base/service"
	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CompanyChannelService là cấu trúc chứa các phương thức liên quan đến cấu hình kênh chat của công ty
type CompanyChannelService struct {
	*basesvc.BaseServiceMongoImpl[companymodels.CompanyChannel]
}

// NewCompanyChannelService tạo mới CompanyChannelService
func NewCompanyChannelService() (*CompanyChannelService, error) {
	channelCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.CompanyChannels)
	if !exist {
		return nil, fmt.Errorf("failed to get company_channels collection: %v", common.ErrNotFound)
	}

	return &CompanyChannelService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[companymodels.CompanyChannel](channelCollection),
	}, nil
}

// FindByCompanyAndPlatform tìm cấu hình kênh của công ty cho một platform.
// Trả về ErrChannelNotConfigured nếu chưa có, ErrChannelInactive nếu kênh bị tắt.
func (s *CompanyChannelService) FindByCompanyAndPlatform(ctx context.Context, companyID primitive.ObjectID, platform string) (*companymodels.CompanyChannel, error) {
	filter := bson.M{"companyId": companyID, "platform": platform}
	channel, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		if err == common.ErrNotFound {
			return nil, common.ErrChannelNotConfigured
		}
		return nil, err
	}
	if !channel.Active {
		return nil, common.ErrChannelInactive
	}
	return &channel, nil
}

// UpsertChannel tạo mới hoặc cập nhật cấu hình kênh của công ty cho một platform.
// Unique compound index (companyId, platform) đảm bảo mỗi công ty chỉ có một cấu hình mỗi platform.
func (s *CompanyChannelService) UpsertChannel(ctx context.Context, channel companymodels.CompanyChannel) (*companymodels.CompanyChannel, error) {
	if !global.IsSupportedPlatform(channel.Platform) {
		return nil, common.ErrInvalidInput
	}

	filter := bson.M{"companyId": channel.CompanyID, "platform": channel.Platform}
	update := basesvc.UpdateData{
		Set: map[string]interface{}{
			"botToken":        channel.BotToken,
			"accessToken":     channel.AccessToken,
			"phoneNumberId":   channel.PhoneNumberID,
			"pageId":          channel.PageID,
			"pageAccessToken": channel.PageAccessToken,
			"signalNumber":    channel.SignalNumber,
			"webhookSecret":   channel.WebhookSecret,
			"active":          channel.Active,
		},
		SetOnInsert: map[string]interface{}{
			"companyId": channel.CompanyID,
			"platform":  channel.Platform,
		},
	}

	result, err := s.Upsert(ctx, filter, update)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// VerifySecret kiểm tra verify token của webhook (GET hub.challenge từ Meta platforms)
func (s *CompanyChannelService) VerifySecret(ctx context.Context, companyID primitive.ObjectID, platform string, secret string) (bool, error) {
	channel, err := s.FindByCompanyAndPlatform(ctx, companyID, platform)
	if err != nil {
		return false, err
	}
	return channel.WebhookSecret != "" && channel.WebhookSecret == secret, nil
}

// Package deliverysvc chứa service gửi tin nhắn outbound qua các chat platform.
// File: service.delivery.send.go
package deliverysvc

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	companysvc "github.com/EldarGGG/nexus-back/internal/api/company/service"
	deliverydto "github.com/EldarGGG/nexus-back/internal/api/delivery/dto"
	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	messagingsvc "github.com/EldarGGG/nexus-back/internal/api/messaging/service"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/delivery/channels"
	"github.com/EldarGGG/nexus-back/internal/global"
	"github.com/EldarGGG/nexus-back/internal/logger"
	"github.com/EldarGGG/nexus-back/internal/metrics"
)

// channelFinder, conversationResolver, messageAppender là các cổng hẹp
// của send service, để test không phải dựng MongoDB.
type channelFinder interface {
	FindByCompanyAndPlatform(ctx context.Context, companyID primitive.ObjectID, platform string) (*companymodels.CompanyChannel, error)
}

type conversationResolver interface {
	Resolve(ctx context.Context, companyID primitive.ObjectID, platform string, externalID string, participant *messagingmodels.Participant) (*messagingmodels.Conversation, bool, error)
	TouchLastMessage(ctx context.Context, conversationID primitive.ObjectID, timestamp int64) error
}

type messageAppender interface {
	Append(ctx context.Context, message messagingmodels.Message) (*messagingmodels.Message, bool, error)
}

// clientFactory tạo adapter platform từ cấu hình kênh (thay được trong test)
type clientFactory func(platform string, channel *companymodels.CompanyChannel, cfg channels.ClientConfig) (channels.Client, error)

// SendService gửi tin nhắn outbound: tra credentials của công ty, gọi platform API,
// và chỉ khi platform xác nhận mới ghi tin nhắn vào hội thoại.
type SendService struct {
	channels      channelFinder
	conversations conversationResolver
	messages      messageAppender
	newClient     clientFactory
	clientConfig  channels.ClientConfig
}

// NewSendService tạo mới SendService với các service Mongo thật và cấu hình từ môi trường
func NewSendService() (*SendService, error) {
	channelService, err := companysvc.NewCompanyChannelService()
	if err != nil {
		return nil, fmt.Errorf("failed to create company channel service: %v", err)
	}
	conversationService, err := messagingsvc.NewConversationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation service: %v", err)
	}
	messageService, err := messagingsvc.NewMessageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %v", err)
	}

	clientConfig := channels.ClientConfig{Timeout: 10 * time.Second}
	if cfg := global.MongoDB_ServerConfig; cfg != nil {
		if cfg.ChannelTimeout > 0 {
			clientConfig.Timeout = time.Duration(cfg.ChannelTimeout) * time.Second
		}
		clientConfig.GraphAPIBase = cfg.GraphAPIBase
		clientConfig.SignalAPIBase = cfg.SignalAPIBase
	}

	return NewSendServiceWith(channelService, conversationService, messageService, channels.NewClient, clientConfig), nil
}

// NewSendServiceWith tạo SendService với dependencies tùy ý
func NewSendServiceWith(channelFinder channelFinder, conversations conversationResolver, messages messageAppender, factory clientFactory, clientConfig channels.ClientConfig) *SendService {
	return &SendService{
		channels:      channelFinder,
		conversations: conversations,
		messages:      messages,
		newClient:     factory,
		clientConfig:  clientConfig,
	}
}

// Send gửi một tin nhắn outbound. Nếu platform API từ chối, KHÔNG có gì được
// ghi vào database — lỗi trả về là common.Error với details chứa SendError.
func (s *SendService) Send(ctx context.Context, companyID primitive.ObjectID, req deliverydto.DeliverySendRequest) (*deliverydto.DeliverySendResponse, error) {
	log := logger.GetAppLogger()

	channel, err := s.channels.FindByCompanyAndPlatform(ctx, companyID, req.Platform)
	if err != nil {
		metrics.OutboundSends.WithLabelValues(req.Platform, "failed").Inc()
		return nil, err
	}

	client, err := s.newClient(req.Platform, channel, s.clientConfig)
	if err != nil {
		metrics.OutboundSends.WithLabelValues(req.Platform, "failed").Inc()
		return nil, common.NewError(common.ErrCodeChannelConfig, err.Error(), common.StatusBadRequest, nil)
	}

	messageType := req.MessageType
	if messageType == "" {
		messageType = messagingmodels.MessageTypeText
	}

	var result *channels.SendResult
	var attachments []messagingmodels.Attachment
	if messageType == messagingmodels.MessageTypeText {
		result = client.SendText(ctx, req.Recipient, req.Content)
	} else {
		if req.MediaURL == "" {
			metrics.OutboundSends.WithLabelValues(req.Platform, "failed").Inc()
			return nil, common.NewError(common.ErrCodeValidationInput, "mediaUrl là bắt buộc khi gửi media", common.StatusBadRequest, nil)
		}
		media := channels.Media{
			Type:     messageType,
			URL:      req.MediaURL,
			Caption:  req.Content,
			FileName: req.MediaFileName,
		}
		result = client.SendMedia(ctx, req.Recipient, media)
		attachments = []messagingmodels.Attachment{{
			Type:     messageType,
			URL:      req.MediaURL,
			FileName: req.MediaFileName,
			Caption:  req.Content,
		}}
	}

	if !result.OK {
		metrics.OutboundSends.WithLabelValues(req.Platform, "failed").Inc()
		log.WithField("platform", req.Platform).WithField("companyId", companyID.Hex()).
			WithField("sendError", result.Error).Error("📤 [DELIVERY] Platform API từ chối tin nhắn")
		return nil, common.NewError(common.ErrCodeChannelSend, result.Error.Message, common.StatusBadGateway, result.Error)
	}

	metrics.OutboundSends.WithLabelValues(req.Platform, "ok").Inc()

	// Platform đã nhận tin — ghi vào hội thoại. Lỗi ghi ở đây không làm "mất" việc
	// gửi (tin đã đi), nhưng vẫn trả error để caller biết record không tồn tại.
	now := time.Now().UnixMilli()
	conversation, _, err := s.conversations.Resolve(ctx, companyID, req.Platform, req.Recipient, nil)
	if err != nil {
		return nil, err
	}

	// Một số platform trả 2xx nhưng body không có message id. Không được ghi
	// platformMessageId rỗng: unique index (conversationId, platformMessageId)
	// sẽ coi hai bản ghi thiếu id là trùng nhau và nuốt mất tin thứ hai.
	platformMessageID := result.MessageID
	if platformMessageID == "" {
		platformMessageID = "local-" + uuid.NewString()
	}

	message, _, err := s.messages.Append(ctx, messagingmodels.Message{
		ConversationID:    conversation.ID,
		CompanyID:         companyID,
		Platform:          req.Platform,
		PlatformMessageID: platformMessageID,
		Direction:         messagingmodels.DirectionOutgoing,
		MessageType:       messageType,
		Content:           req.Content,
		Attachments:       attachments,
		Processed:         true,
		Timestamp:         now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.conversations.TouchLastMessage(ctx, conversation.ID, now); err != nil {
		log.WithError(err).Warn("📤 [DELIVERY] Không cập nhật được lastMessageAt")
	}

	return &deliverydto.DeliverySendResponse{
		OK:                true,
		PlatformMessageID: platformMessageID,
		MessageID:         message.ID.Hex(),
		ConversationID:    conversation.ID.Hex(),
	}, nil
}

// ResolveFileURL đổi file id inbound thành URL tải trực tiếp qua adapter của platform
func (s *SendService) ResolveFileURL(ctx context.Context, companyID primitive.ObjectID, platform string, fileID string) (string, error) {
	channel, err := s.channels.FindByCompanyAndPlatform(ctx, companyID, platform)
	if err != nil {
		return "", err
	}
	client, err := s.newClient(platform, channel, s.clientConfig)
	if err != nil {
		return "", common.NewError(common.ErrCodeChannelConfig, err.Error(), common.StatusBadRequest, nil)
	}
	url, err := client.ResolveFileURL(ctx, fileID)
	if err != nil {
		return "", common.NewError(common.ErrCodeChannelSend, err.Error(), common.StatusBadGateway, nil)
	}
	return url, nil
}

// File: service.dispatcher.go
package webhooksvc

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	companysvc "github.com/EldarGGG/nexus-back/internal/api/company/service"
	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	messagingsvc "github.com/EldarGGG/nexus-back/internal/api/messaging/service"
	"github.com/EldarGGG/nexus-back/internal/logger"
	"github.com/EldarGGG/nexus-back/internal/metrics"
)

// Trạng thái kết quả của một lần dispatch webhook
const (
	DispatchStatusProcessed = "processed" // Có ít nhất một tin nhắn được ghi (kể cả trùng đã suppress)
	DispatchStatusIgnored   = "ignored"   // Payload hợp lệ nhưng không có gì để xử lý
	DispatchStatusFailed    = "failed"    // Lỗi khi ghi dữ liệu (không phải lỗi payload)
)

// DispatchResult là kết quả xử lý một webhook
type DispatchResult struct {
	Status     string   `json:"status"`               // processed / ignored / failed
	Detail     string   `json:"detail,omitempty"`     // Lý do ignored hoặc mô tả lỗi
	MessageIDs []string `json:"messageIds,omitempty"` // ID các tin nhắn đã ghi
	Duplicates int      `json:"duplicates,omitempty"` // Số tin nhắn trùng bị suppress
}

// companyFinder, conversationResolver, messageAppender là các cổng hẹp mà
// dispatcher cần, để test không phải dựng MongoDB.
type companyFinder interface {
	FindActiveById(ctx context.Context, id primitive.ObjectID) (*companymodels.Company, error)
}

type conversationResolver interface {
	Resolve(ctx context.Context, companyID primitive.ObjectID, platform string, externalID string, participant *messagingmodels.Participant) (*messagingmodels.Conversation, bool, error)
	TouchLastMessage(ctx context.Context, conversationID primitive.ObjectID, timestamp int64) error
}

type messageAppender interface {
	Append(ctx context.Context, message messagingmodels.Message) (*messagingmodels.Message, bool, error)
}

// DispatcherService điều phối pipeline webhook: chuẩn hóa payload,
// resolve hội thoại, ghi tin nhắn idempotent.
type DispatcherService struct {
	companies     companyFinder
	conversations conversationResolver
	messages      messageAppender
}

// NewDispatcherService tạo mới DispatcherService với các service Mongo thật
func NewDispatcherService() (*DispatcherService, error) {
	companyService, err := companysvc.NewCompanyService()
	if err != nil {
		return nil, fmt.Errorf("failed to create company service: %v", err)
	}
	conversationService, err := messagingsvc.NewConversationService()
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation service: %v", err)
	}
	messageService, err := messagingsvc.NewMessageService()
	if err != nil {
		return nil, fmt.Errorf("failed to create message service: %v", err)
	}
	return NewDispatcherServiceWith(companyService, conversationService, messageService), nil
}

// NewDispatcherServiceWith tạo DispatcherService với dependencies tùy ý
func NewDispatcherServiceWith(companies companyFinder, conversations conversationResolver, messages messageAppender) *DispatcherService {
	return &DispatcherService{
		companies:     companies,
		conversations: conversations,
		messages:      messages,
	}
}

// Dispatch xử lý một webhook đã nhận: chuẩn hóa rawBody theo platform,
// resolve hội thoại theo (company, platform, externalId) và ghi từng tin nhắn.
// Lỗi payload không bao giờ trả về error — webhook luôn được ACK, kết quả
// thể hiện ở Status. Error chỉ dành cho lỗi hạ tầng (ghi DB thất bại).
func (s *DispatcherService) Dispatch(ctx context.Context, companyID primitive.ObjectID, platform string, rawBody []byte) *DispatchResult {
	log := logger.WithContext(ctx)

	normalizer, err := NormalizerFor(platform)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues(platform, DispatchStatusIgnored).Inc()
		return &DispatchResult{Status: DispatchStatusIgnored, Detail: err.Error()}
	}

	if _, err := s.companies.FindActiveById(ctx, companyID); err != nil {
		metrics.WebhookEvents.WithLabelValues(platform, DispatchStatusIgnored).Inc()
		log.WithError(err).WithField("companyId", companyID.Hex()).
			Warn("📨 [WEBHOOK] Công ty không hợp lệ hoặc đang bị suspend, bỏ qua webhook")
		return &DispatchResult{Status: DispatchStatusIgnored, Detail: "công ty không hợp lệ hoặc đang bị suspend"}
	}

	normalized, err := normalizer.Normalize(rawBody)
	if err != nil {
		metrics.WebhookEvents.WithLabelValues(platform, DispatchStatusIgnored).Inc()
		log.WithError(err).WithField("platform", platform).
			Warn("📨 [WEBHOOK] Không parse được payload, bỏ qua webhook")
		return &DispatchResult{Status: DispatchStatusIgnored, Detail: fmt.Sprintf("payload không hợp lệ: %v", err)}
	}

	result := &DispatchResult{}
	for _, inbound := range normalized.Messages {
		messageID, duplicated, err := s.storeInbound(ctx, companyID, platform, inbound)
		if err != nil {
			metrics.WebhookEvents.WithLabelValues(platform, DispatchStatusFailed).Inc()
			log.WithError(err).WithField("platform", platform).
				WithField("externalChatId", inbound.ExternalChatID).
				Error("📨 [WEBHOOK] Lỗi khi ghi tin nhắn inbound")
			result.Status = DispatchStatusFailed
			result.Detail = err.Error()
			return result
		}
		if duplicated {
			result.Duplicates++
		}
		result.MessageIDs = append(result.MessageIDs, messageID.Hex())
	}

	if len(result.MessageIDs) > 0 {
		result.Status = DispatchStatusProcessed
		metrics.WebhookEvents.WithLabelValues(platform, DispatchStatusProcessed).Inc()
		return result
	}

	// Chỉ còn các event bị bỏ qua (callback, status, receipt, shape lạ)
	reasons := make([]string, 0, len(normalized.Ignored))
	for _, ignored := range normalized.Ignored {
		log.WithField("platform", platform).WithField("eventType", ignored.EventType).
			Info("📨 [WEBHOOK] Event bị bỏ qua: " + ignored.Reason)
		reasons = append(reasons, ignored.Reason)
	}
	result.Status = DispatchStatusIgnored
	result.Detail = strings.Join(reasons, "; ")
	metrics.WebhookEvents.WithLabelValues(platform, DispatchStatusIgnored).Inc()
	return result
}

// storeInbound resolve hội thoại và ghi một tin nhắn đã chuẩn hóa
func (s *DispatcherService) storeInbound(ctx context.Context, companyID primitive.ObjectID, platform string, inbound NormalizedInbound) (primitive.ObjectID, bool, error) {
	var participant *messagingmodels.Participant
	if inbound.Sender.UserID != "" {
		participant = &messagingmodels.Participant{
			UserID:    inbound.Sender.UserID,
			Username:  inbound.Sender.Username,
			FirstName: inbound.Sender.FirstName,
			LastName:  inbound.Sender.LastName,
			Phone:     inbound.Sender.Phone,
		}
	}

	conversation, created, err := s.conversations.Resolve(ctx, companyID, platform, inbound.ExternalChatID, participant)
	if err != nil {
		return primitive.NilObjectID, false, err
	}
	if created {
		metrics.ConversationsCreated.WithLabelValues(platform).Inc()
	}

	message, duplicated, err := s.messages.Append(ctx, messagingmodels.Message{
		ConversationID:    conversation.ID,
		CompanyID:         companyID,
		Platform:          platform,
		PlatformMessageID: inbound.PlatformMessageID,
		Direction:         messagingmodels.DirectionIncoming,
		MessageType:       inbound.MessageType,
		Content:           inbound.Content,
		SenderInfo:        inbound.Sender,
		Attachments:       inbound.Attachments,
		Metadata:          inbound.Metadata,
		Processed:         true,
		Timestamp:         inbound.Timestamp,
	})
	if err != nil {
		return primitive.NilObjectID, false, err
	}

	if !duplicated {
		if err := s.conversations.TouchLastMessage(ctx, conversation.ID, inbound.Timestamp); err != nil {
			// lastMessageAt chỉ phục vụ sắp xếp danh sách, không làm fail cả webhook
			logger.GetAppLogger().WithError(err).Warn("📨 [WEBHOOK] Không cập nhật được lastMessageAt")
		}
	}
	return message.ID, duplicated, nil
}

// Package messagingsvc chứa service cho domain Messaging (hội thoại, tin nhắn).
// File: service.conversation.go
package messagingsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/EldarGGG/nexus-back/internal/api/base/models"
	basesvc "github.com/EldarGGG/nexus-back/internal/api/base/service"
	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
)

// ConversationService là cấu trúc chứa các phương thức liên quan đến hội thoại
type ConversationService struct {
	*basesvc.BaseServiceMongoImpl[messagingmodels.Conversation]
}

// NewConversationService tạo mới ConversationService
func NewConversationService() (*ConversationService, error) {
	conversationCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Conversations)
	if !exist {
		return nil, fmt.Errorf("failed to get conversations collection: %v", common.ErrNotFound)
	}

	return &ConversationService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[messagingmodels.Conversation](conversationCollection),
	}, nil
}

// Resolve tìm hoặc tạo hội thoại theo khóa (companyId, platform, externalId) một cách atomic.
// Hai webhook đến đồng thời cho cùng một chat sẽ hội tụ về cùng một document:
// upsert dựa trên unique compound index, nếu dính duplicate key trong cửa sổ race
// thì thử lại một lần và nhận document của bên thắng.
//
// Participant mới (nếu có) được merge vào hội thoại bằng guarded $push,
// không bao giờ tạo bản ghi participant trùng userId.
func (s *ConversationService) Resolve(ctx context.Context, companyID primitive.ObjectID, platform string, externalID string, participant *messagingmodels.Participant) (*messagingmodels.Conversation, bool, error) {
	filter := bson.M{
		"companyId":  companyID,
		"platform":   platform,
		"externalId": externalID,
	}

	now := time.Now().UnixMilli()
	participants := []messagingmodels.Participant{}
	if participant != nil && participant.UserID != "" {
		participants = append(participants, *participant)
	}
	update := bson.M{
		"$set": bson.M{"updatedAt": now},
		"$setOnInsert": bson.M{
			"companyId":    companyID,
			"platform":     platform,
			"externalId":   externalID,
			"participants": participants,
			"status":       messagingmodels.ConversationStatusActive,
			"createdAt":    now,
		},
	}

	created := false
	result, err := s.Collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		// Concurrent upsert trên unique index có thể dính duplicate key:
		// bên thua thử lại, lần này match document của bên thắng.
		converted := common.ConvertMongoError(err)
		if !errors.Is(converted, common.ErrMongoDuplicate) {
			return nil, false, converted
		}
		if _, retryErr := s.Collection().UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); retryErr != nil {
			return nil, false, common.ConvertMongoError(retryErr)
		}
	} else if result.UpsertedID != nil {
		created = true
	}

	// Merge participant: chỉ push khi chưa có userId này trong mảng participants
	if !created && participant != nil && participant.UserID != "" {
		mergeFilter := bson.M{
			"companyId":           companyID,
			"platform":            platform,
			"externalId":          externalID,
			"participants.userId": bson.M{"$ne": participant.UserID},
		}
		mergeUpdate := bson.M{
			"$push": bson.M{"participants": *participant},
			"$set":  bson.M{"updatedAt": time.Now().UnixMilli()},
		}
		if _, err := s.Collection().UpdateOne(ctx, mergeFilter, mergeUpdate); err != nil {
			return nil, false, common.ConvertMongoError(err)
		}
	}

	conversation, err := s.FindOne(ctx, filter, nil)
	if err != nil {
		return nil, false, err
	}
	return &conversation, created, nil
}

// TouchLastMessage cập nhật thời gian tin nhắn cuối của hội thoại.
// Chỉ ghi khi timestamp mới hơn giá trị hiện tại (webhook có thể đến lệch thứ tự).
func (s *ConversationService) TouchLastMessage(ctx context.Context, conversationID primitive.ObjectID, timestamp int64) error {
	filter := bson.M{
		"_id": conversationID,
		"$or": []bson.M{
			{"lastMessageAt": bson.M{"$exists": false}},
			{"lastMessageAt": bson.M{"$lt": timestamp}},
		},
	}
	update := bson.M{"$set": bson.M{"lastMessageAt": timestamp}}
	if _, err := s.Collection().UpdateOne(ctx, filter, update); err != nil {
		return common.ConvertMongoError(err)
	}
	return nil
}

// UpdateStatus cập nhật trạng thái hội thoại (active / closed / archived)
func (s *ConversationService) UpdateStatus(ctx context.Context, conversationID primitive.ObjectID, status string) error {
	switch status {
	case messagingmodels.ConversationStatusActive,
		messagingmodels.ConversationStatusClosed,
		messagingmodels.ConversationStatusArchived:
	default:
		return common.ErrInvalidState
	}
	_, err := s.UpdateOne(ctx, bson.M{"_id": conversationID}, bson.M{"$set": bson.M{"status": status}}, nil)
	return err
}

// FindByCompany liệt kê hội thoại của công ty, mới nhất trước, có phân trang
func (s *ConversationService) FindByCompany(ctx context.Context, companyID primitive.ObjectID, platform string, page, limit int64) (*basemodels.PaginateResult[messagingmodels.Conversation], error) {
	filter := bson.M{"companyId": companyID}
	if platform != "" {
		filter["platform"] = platform
	}
	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

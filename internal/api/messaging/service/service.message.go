package messagingsvc

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basemodels "github.com/EldarGGG/nexus-back/internal/api/base/models"
	basesvc "github.com/EldarGGG/nexus-back/internal/api/base/service"
	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	"github.com/EldarGGG/nexus-back/internal/common"
	"github.com/EldarGGG/nexus-back/internal/global"
)

// MessageService là cấu trúc chứa các phương thức liên quan đến tin nhắn
type MessageService struct {
	*basesvc.BaseServiceMongoImpl[messagingmodels.Message]
}

// NewMessageService tạo mới MessageService
func NewMessageService() (*MessageService, error) {
	messageCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Messages)
	if !exist {
		return nil, fmt.Errorf("failed to get messages collection: %v", common.ErrNotFound)
	}

	return &MessageService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[messagingmodels.Message](messageCollection),
	}, nil
}

// Append ghi tin nhắn vào hội thoại, idempotent theo (conversationId, platformMessageId).
// Webhook bị gửi lại (platform retry) sẽ dính unique index: khi đó trả về bản ghi
// đã tồn tại cùng duplicated = true, không ghi đè và không báo lỗi.
func (s *MessageService) Append(ctx context.Context, message messagingmodels.Message) (*messagingmodels.Message, bool, error) {
	created, err := s.InsertOne(ctx, message)
	if err == nil {
		return &created, false, nil
	}

	if !errors.Is(err, common.ErrMongoDuplicate) {
		return nil, false, err
	}

	existing, findErr := s.FindOne(ctx, bson.M{
		"conversationId":    message.ConversationID,
		"platformMessageId": message.PlatformMessageID,
	}, nil)
	if findErr != nil {
		return nil, false, findErr
	}
	return &existing, true, nil
}

// FindByConversation liệt kê tin nhắn của hội thoại, mới nhất trước, có phân trang
func (s *MessageService) FindByConversation(ctx context.Context, conversationID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[messagingmodels.Message], error) {
	filter := bson.M{"conversationId": conversationID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}})
	return s.FindWithPagination(ctx, filter, page, limit, opts)
}

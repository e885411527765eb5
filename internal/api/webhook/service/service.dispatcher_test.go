// Package webhooksvc - Test pipeline dispatch webhook với fake dependencies.
package webhooksvc

import (
	"context"
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
)

type fakeCompanyFinder struct {
	err error
}

func (f *fakeCompanyFinder) FindActiveById(ctx context.Context, id primitive.ObjectID) (*companymodels.Company, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &companymodels.Company{ID: id, Status: companymodels.CompanyStatusActive}, nil
}

type fakeConversationResolver struct {
	resolveCalls int
	touchCalls   int
	created      bool
	resolveErr   error
	conversation *messagingmodels.Conversation
}

func (f *fakeConversationResolver) Resolve(ctx context.Context, companyID primitive.ObjectID, platform string, externalID string, participant *messagingmodels.Participant) (*messagingmodels.Conversation, bool, error) {
	f.resolveCalls++
	if f.resolveErr != nil {
		return nil, false, f.resolveErr
	}
	if f.conversation == nil {
		f.conversation = &messagingmodels.Conversation{
			ID:         primitive.NewObjectID(),
			CompanyID:  companyID,
			Platform:   platform,
			ExternalID: externalID,
		}
	}
	return f.conversation, f.created, nil
}

func (f *fakeConversationResolver) TouchLastMessage(ctx context.Context, conversationID primitive.ObjectID, timestamp int64) error {
	f.touchCalls++
	return nil
}

type fakeMessageAppender struct {
	appendCalls int
	duplicated  bool
	err         error
	stored      []messagingmodels.Message
}

func (f *fakeMessageAppender) Append(ctx context.Context, message messagingmodels.Message) (*messagingmodels.Message, bool, error) {
	f.appendCalls++
	if f.err != nil {
		return nil, false, f.err
	}
	message.ID = primitive.NewObjectID()
	f.stored = append(f.stored, message)
	return &message, f.duplicated, nil
}

func telegramTextBody() []byte {
	return []byte(`{"message": {"message_id": 7, "date": 1700000000, "chat": {"id": 42}, "from": {"id": 9, "username": "bob"}, "text": "hi"}}`)
}

func TestDispatch_ProcessedMessage(t *testing.T) {
	companies := &fakeCompanyFinder{}
	conversations := &fakeConversationResolver{created: true}
	messages := &fakeMessageAppender{}
	dispatcher := NewDispatcherServiceWith(companies, conversations, messages)

	result := dispatcher.Dispatch(context.Background(), primitive.NewObjectID(), "telegram", telegramTextBody())

	if result.Status != DispatchStatusProcessed {
		t.Fatalf("Status phải là processed, nhận được %q (detail: %s)", result.Status, result.Detail)
	}
	if len(result.MessageIDs) != 1 {
		t.Errorf("Phải ghi đúng 1 tin nhắn, nhận được %d", len(result.MessageIDs))
	}
	if messages.appendCalls != 1 {
		t.Errorf("Append phải được gọi 1 lần, nhận được %d", messages.appendCalls)
	}
	if conversations.touchCalls != 1 {
		t.Errorf("TouchLastMessage phải được gọi cho tin nhắn mới, nhận được %d lần", conversations.touchCalls)
	}

	stored := messages.stored[0]
	if stored.Direction != messagingmodels.DirectionIncoming {
		t.Errorf("Tin nhắn webhook phải có direction incoming, nhận được %q", stored.Direction)
	}
	if stored.PlatformMessageID != "7" {
		t.Errorf("PlatformMessageID sai: %q", stored.PlatformMessageID)
	}
	if stored.ConversationID != conversations.conversation.ID {
		t.Error("Tin nhắn phải gắn vào hội thoại đã resolve")
	}
	if !stored.Processed {
		t.Error("Tin nhắn đã persist xong phải có Processed=true, nhận được false")
	}
}

func TestDispatch_DuplicateSuppressed(t *testing.T) {
	conversations := &fakeConversationResolver{}
	messages := &fakeMessageAppender{duplicated: true}
	dispatcher := NewDispatcherServiceWith(&fakeCompanyFinder{}, conversations, messages)

	result := dispatcher.Dispatch(context.Background(), primitive.NewObjectID(), "telegram", telegramTextBody())

	if result.Status != DispatchStatusProcessed {
		t.Fatalf("Tin nhắn trùng vẫn phải ACK processed, nhận được %q", result.Status)
	}
	if result.Duplicates != 1 {
		t.Errorf("Duplicates phải là 1, nhận được %d", result.Duplicates)
	}
	if conversations.touchCalls != 0 {
		t.Errorf("Tin nhắn trùng không được touch lastMessageAt, nhận được %d lần", conversations.touchCalls)
	}
}

func TestDispatch_IgnoredEventsOnly(t *testing.T) {
	messages := &fakeMessageAppender{}
	dispatcher := NewDispatcherServiceWith(&fakeCompanyFinder{}, &fakeConversationResolver{}, messages)

	body := []byte(`{"update_id": 2, "callback_query": {"id": "cb1", "data": "x"}}`)
	result := dispatcher.Dispatch(context.Background(), primitive.NewObjectID(), "telegram", body)

	if result.Status != DispatchStatusIgnored {
		t.Fatalf("Webhook chỉ có callback_query phải là ignored, nhận được %q", result.Status)
	}
	if result.Detail == "" {
		t.Error("Kết quả ignored phải có lý do trong Detail")
	}
	if messages.appendCalls != 0 {
		t.Errorf("Không được ghi tin nhắn nào, Append bị gọi %d lần", messages.appendCalls)
	}
}

func TestDispatch_StoreErrorIsFailed(t *testing.T) {
	messages := &fakeMessageAppender{err: errors.New("write conflict")}
	dispatcher := NewDispatcherServiceWith(&fakeCompanyFinder{}, &fakeConversationResolver{}, messages)

	result := dispatcher.Dispatch(context.Background(), primitive.NewObjectID(), "telegram", telegramTextBody())

	if result.Status != DispatchStatusFailed {
		t.Fatalf("Lỗi ghi DB phải là failed, nhận được %q", result.Status)
	}
	if result.Detail == "" {
		t.Error("Kết quả failed phải mang mô tả lỗi")
	}
}

func TestDispatch_InactiveCompanyIgnored(t *testing.T) {
	companies := &fakeCompanyFinder{err: errors.New("company suspended")}
	conversations := &fakeConversationResolver{}
	dispatcher := NewDispatcherServiceWith(companies, conversations, &fakeMessageAppender{})

	result := dispatcher.Dispatch(context.Background(), primitive.NewObjectID(), "telegram", telegramTextBody())

	if result.Status != DispatchStatusIgnored {
		t.Fatalf("Công ty bị suspend phải cho ignored, nhận được %q", result.Status)
	}
	if conversations.resolveCalls != 0 {
		t.Error("Không được resolve hội thoại khi công ty không hợp lệ")
	}
}

func TestDispatch_UnsupportedPlatformIgnored(t *testing.T) {
	dispatcher := NewDispatcherServiceWith(&fakeCompanyFinder{}, &fakeConversationResolver{}, &fakeMessageAppender{})

	result := dispatcher.Dispatch(context.Background(), primitive.NewObjectID(), "viber", []byte(`{}`))

	if result.Status != DispatchStatusIgnored {
		t.Fatalf("Platform không hỗ trợ phải cho ignored, nhận được %q", result.Status)
	}
}

func TestDispatch_MalformedPayloadIgnored(t *testing.T) {
	dispatcher := NewDispatcherServiceWith(&fakeCompanyFinder{}, &fakeConversationResolver{}, &fakeMessageAppender{})

	result := dispatcher.Dispatch(context.Background(), primitive.NewObjectID(), "telegram", []byte(`{not json`))

	if result.Status != DispatchStatusIgnored {
		t.Fatalf("Payload hỏng không được fail webhook, phải là ignored, nhận được %q", result.Status)
	}
}

// Package deliverysvc - Test gửi outbound với fake adapter và fake dependencies.
package deliverysvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	companymodels "github.com/EldarGGG/nexus-back/internal/api/company/models"
	deliverydto "github.com/EldarGGG/nexus-back/internal/api/delivery/dto"
	messagingmodels "github.com/EldarGGG/nexus-back/internal/api/messaging/models"
	"github.com/EldarGGG/nexus-back/internal/delivery/channels"
)

type fakeChannelFinder struct {
	err     error
	channel *companymodels.CompanyChannel
}

func (f *fakeChannelFinder) FindByCompanyAndPlatform(ctx context.Context, companyID primitive.ObjectID, platform string) (*companymodels.CompanyChannel, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.channel == nil {
		f.channel = &companymodels.CompanyChannel{CompanyID: companyID, Platform: platform, BotToken: "tok", Active: true}
	}
	return f.channel, nil
}

type fakeConversationResolver struct {
	resolveCalls int
	conversation *messagingmodels.Conversation
}

func (f *fakeConversationResolver) Resolve(ctx context.Context, companyID primitive.ObjectID, platform string, externalID string, participant *messagingmodels.Participant) (*messagingmodels.Conversation, bool, error) {
	f.resolveCalls++
	if f.conversation == nil {
		f.conversation = &messagingmodels.Conversation{
			ID:         primitive.NewObjectID(),
			CompanyID:  companyID,
			Platform:   platform,
			ExternalID: externalID,
		}
	}
	return f.conversation, false, nil
}

func (f *fakeConversationResolver) TouchLastMessage(ctx context.Context, conversationID primitive.ObjectID, timestamp int64) error {
	return nil
}

type fakeMessageAppender struct {
	appendCalls int
	stored      []messagingmodels.Message
}

func (f *fakeMessageAppender) Append(ctx context.Context, message messagingmodels.Message) (*messagingmodels.Message, bool, error) {
	f.appendCalls++
	message.ID = primitive.NewObjectID()
	f.stored = append(f.stored, message)
	return &message, false, nil
}

// fakeClient trả kết quả dựng sẵn, ghi lại lời gọi cuối
type fakeClient struct {
	platform   string
	result     *channels.SendResult
	lastChatID string
	lastText   string
	lastMedia  channels.Media
	fileURL    string
}

func (f *fakeClient) Platform() string { return f.platform }

func (f *fakeClient) SendText(ctx context.Context, chatID string, text string) *channels.SendResult {
	f.lastChatID, f.lastText = chatID, text
	return f.result
}

func (f *fakeClient) SendMedia(ctx context.Context, chatID string, media channels.Media) *channels.SendResult {
	f.lastChatID, f.lastMedia = chatID, media
	return f.result
}

func (f *fakeClient) ResolveFileURL(ctx context.Context, fileID string) (string, error) {
	if f.fileURL == "" {
		return "", errors.New("not found")
	}
	return f.fileURL, nil
}

func factoryFor(client channels.Client) clientFactory {
	return func(platform string, channel *companymodels.CompanyChannel, cfg channels.ClientConfig) (channels.Client, error) {
		return client, nil
	}
}

func newTestSendService(client channels.Client, conversations *fakeConversationResolver, messages *fakeMessageAppender) *SendService {
	return NewSendServiceWith(&fakeChannelFinder{}, conversations, messages,
		factoryFor(client), channels.ClientConfig{Timeout: time.Second})
}

func TestSend_TextSuccess(t *testing.T) {
	client := &fakeClient{platform: "telegram", result: &channels.SendResult{OK: true, MessageID: "321"}}
	conversations := &fakeConversationResolver{}
	messages := &fakeMessageAppender{}
	service := newTestSendService(client, conversations, messages)

	companyID := primitive.NewObjectID()
	response, err := service.Send(context.Background(), companyID, deliverydto.DeliverySendRequest{
		Platform: "telegram", Recipient: "42", MessageType: "text", Content: "hi",
	})
	if err != nil {
		t.Fatalf("Send trả về lỗi: %v", err)
	}
	if !response.OK || response.PlatformMessageID != "321" {
		t.Errorf("Response sai: %+v", response)
	}
	if client.lastChatID != "42" || client.lastText != "hi" {
		t.Errorf("Adapter nhận sai tham số: chatID=%q text=%q", client.lastChatID, client.lastText)
	}
	if messages.appendCalls != 1 {
		t.Fatalf("Phải ghi đúng 1 tin nhắn outgoing, nhận được %d", messages.appendCalls)
	}

	stored := messages.stored[0]
	if stored.Direction != messagingmodels.DirectionOutgoing {
		t.Errorf("Tin nhắn gửi đi phải có direction outgoing, nhận được %q", stored.Direction)
	}
	if stored.PlatformMessageID != "321" {
		t.Errorf("PlatformMessageID phải lấy từ kết quả gửi, nhận được %q", stored.PlatformMessageID)
	}
	if stored.ConversationID != conversations.conversation.ID {
		t.Error("Tin nhắn phải gắn vào hội thoại đã resolve")
	}
	if !stored.Processed {
		t.Error("Tin nhắn outgoing đã persist xong phải có Processed=true")
	}
	if response.ConversationID != conversations.conversation.ID.Hex() {
		t.Errorf("Response phải mang ID hội thoại: %+v", response)
	}
}

func TestSend_EmptyPlatformMessageIDGetsFallback(t *testing.T) {
	// Platform trả 2xx nhưng body không parse được message id: vẫn phải persist
	// với platformMessageId không rỗng, nếu không hai tin như vậy trong cùng hội
	// thoại sẽ dính unique index và tin thứ hai bị nuốt.
	client := &fakeClient{platform: "messenger", result: &channels.SendResult{OK: true, MessageID: ""}}
	messages := &fakeMessageAppender{}
	service := newTestSendService(client, &fakeConversationResolver{}, messages)

	seen := map[string]bool{}
	for i := 0; i < 2; i++ {
		response, err := service.Send(context.Background(), primitive.NewObjectID(), deliverydto.DeliverySendRequest{
			Platform: "messenger", Recipient: "psid1", MessageType: "text", Content: "hi",
		})
		if err != nil {
			t.Fatalf("Send trả về lỗi: %v", err)
		}
		if response.PlatformMessageID == "" {
			t.Fatal("Response không được mang platformMessageId rỗng")
		}
		seen[response.PlatformMessageID] = true
	}
	if len(messages.stored) != 2 {
		t.Fatalf("Phải persist đủ 2 tin nhắn, nhận được %d", len(messages.stored))
	}
	if messages.stored[0].PlatformMessageID == "" || messages.stored[1].PlatformMessageID == "" {
		t.Error("Tin nhắn persist không được có platformMessageId rỗng")
	}
	if len(seen) != 2 {
		t.Error("Fallback id phải khác nhau giữa các lần gửi")
	}
}

func TestSend_MediaSuccess(t *testing.T) {
	client := &fakeClient{platform: "whatsapp", result: &channels.SendResult{OK: true, MessageID: "wamid.out"}}
	messages := &fakeMessageAppender{}
	service := newTestSendService(client, &fakeConversationResolver{}, messages)

	_, err := service.Send(context.Background(), primitive.NewObjectID(), deliverydto.DeliverySendRequest{
		Platform: "whatsapp", Recipient: "84901234567", MessageType: "image",
		Content: "anh moi", MediaURL: "https://cdn.example.com/a.jpg",
	})
	if err != nil {
		t.Fatalf("Send media trả về lỗi: %v", err)
	}
	if client.lastMedia.URL != "https://cdn.example.com/a.jpg" || client.lastMedia.Caption != "anh moi" {
		t.Errorf("Media truyền cho adapter sai: %+v", client.lastMedia)
	}
	stored := messages.stored[0]
	if len(stored.Attachments) != 1 || stored.Attachments[0].URL != "https://cdn.example.com/a.jpg" {
		t.Errorf("Tin nhắn media phải mang attachment: %+v", stored.Attachments)
	}
}

func TestSend_MediaRequiresURL(t *testing.T) {
	client := &fakeClient{platform: "telegram", result: &channels.SendResult{OK: true}}
	messages := &fakeMessageAppender{}
	service := newTestSendService(client, &fakeConversationResolver{}, messages)

	_, err := service.Send(context.Background(), primitive.NewObjectID(), deliverydto.DeliverySendRequest{
		Platform: "telegram", Recipient: "42", MessageType: "image", Content: "caption",
	})
	if err == nil {
		t.Fatal("Gửi media không có mediaUrl phải trả về lỗi")
	}
	if messages.appendCalls != 0 {
		t.Error("Không được ghi gì khi request không hợp lệ")
	}
}

func TestSend_PlatformRejection_NothingPersisted(t *testing.T) {
	client := &fakeClient{platform: "telegram", result: &channels.SendResult{
		OK:    false,
		Error: &channels.SendError{Platform: "telegram", StatusCode: 400, APICode: "400", Message: "chat not found"},
	}}
	conversations := &fakeConversationResolver{}
	messages := &fakeMessageAppender{}
	service := newTestSendService(client, conversations, messages)

	_, err := service.Send(context.Background(), primitive.NewObjectID(), deliverydto.DeliverySendRequest{
		Platform: "telegram", Recipient: "99", MessageType: "text", Content: "hi",
	})
	if err == nil {
		t.Fatal("Platform từ chối thì Send phải trả về lỗi")
	}
	// Bất biến quan trọng nhất: gửi thất bại thì KHÔNG có gì được ghi
	if conversations.resolveCalls != 0 {
		t.Error("Không được resolve hội thoại khi gửi thất bại")
	}
	if messages.appendCalls != 0 {
		t.Error("Không được ghi tin nhắn khi gửi thất bại")
	}
}

func TestSend_ChannelNotConfigured(t *testing.T) {
	service := NewSendServiceWith(
		&fakeChannelFinder{err: errors.New("channel not found")},
		&fakeConversationResolver{}, &fakeMessageAppender{},
		factoryFor(&fakeClient{}), channels.ClientConfig{Timeout: time.Second})

	_, err := service.Send(context.Background(), primitive.NewObjectID(), deliverydto.DeliverySendRequest{
		Platform: "telegram", Recipient: "42", MessageType: "text", Content: "hi",
	})
	if err == nil {
		t.Fatal("Công ty chưa cấu hình kênh phải trả về lỗi")
	}
}

func TestResolveFileURL(t *testing.T) {
	client := &fakeClient{platform: "telegram", fileURL: "https://api.telegram.org/file/bottok/photos/a.jpg"}
	service := newTestSendService(client, &fakeConversationResolver{}, &fakeMessageAppender{})

	url, err := service.ResolveFileURL(context.Background(), primitive.NewObjectID(), "telegram", "file9")
	if err != nil {
		t.Fatalf("ResolveFileURL trả về lỗi: %v", err)
	}
	if url != client.fileURL {
		t.Errorf("URL tải sai: %q", url)
	}
}

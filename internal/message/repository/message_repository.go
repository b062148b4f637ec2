package repository

import (
	"context"

	"operator_console/internal/message/domain"
	"operator_console/pkg/apiclient"
)

// API paths
const (
	PathUpdateChatroomList    = "/api/message/updateChatroomList"
	PathLoadChatHistory       = "/api/message/loadChatHistory/"
	PathUpdateClientUnreadMsg = "/api/message/updateClientUnreadMessage"
	PathSendMessageInWeb      = "/api/message/sendMessageInWeb"
	PathSyncChatHistory       = "/api/message/syncChatHistory"
)

// MarkReadRequest mark read body
type MarkReadRequest struct {
	ChatroomID domain.ID `json:"chatroom_id"`
}

// SendRequest send message body
type SendRequest struct {
	ChatroomID domain.ID `json:"chatroom_id"`
	ClientID   domain.ID `json:"client_id"`
	AdminID    domain.ID `json:"admin_id"`
	Text       string    `json:"text"`
}

// SyncRequest sync history body
type SyncRequest struct {
	ChatroomID domain.ID `json:"chatroom_id"`
	ClientID   domain.ID `json:"client_id"`
	AdminID    domain.ID `json:"admin_id"`
}

// MessageRepository definition chatroom / message gateway
type MessageRepository interface {
	ListChatrooms(ctx context.Context) ([]domain.Chatroom, error)
	LoadHistory(ctx context.Context, chatroomID domain.ID) ([]domain.Message, error)
	MarkRead(ctx context.Context, chatroomID domain.ID) (apiclient.Ack, error)
	Send(ctx context.Context, sel domain.Selection, text string) (apiclient.Ack, error)
	Sync(ctx context.Context, sel domain.Selection) (apiclient.Ack, error)
}

type messageRepository struct {
	client *apiclient.Client
}

// NewHTTPMessageRepository create message gateway over http
func NewHTTPMessageRepository(client *apiclient.Client) MessageRepository {
	return &messageRepository{client: client}
}

// ListChatrooms load chatroom list
func (r *messageRepository) ListChatrooms(ctx context.Context) ([]domain.Chatroom, error) {
	var rooms []domain.Chatroom
	if err := r.client.GetJSON(ctx, PathUpdateChatroomList, &rooms); err != nil {
		return nil, err
	}
	return rooms, nil
}

// LoadHistory load one chatroom history
func (r *messageRepository) LoadHistory(ctx context.Context, chatroomID domain.ID) ([]domain.Message, error) {
	var messages []domain.Message
	if err := r.client.GetJSON(ctx, PathLoadChatHistory+chatroomID.String(), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead mark client messages as read
func (r *messageRepository) MarkRead(ctx context.Context, chatroomID domain.ID) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathUpdateClientUnreadMsg, MarkReadRequest{ChatroomID: chatroomID})
}

// Send send message from web
func (r *messageRepository) Send(ctx context.Context, sel domain.Selection, text string) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathSendMessageInWeb, SendRequest{
		ChatroomID: sel.ChatroomID,
		ClientID:   sel.ClientID,
		AdminID:    sel.AdminID,
		Text:       text,
	})
}

// Sync sync chat history with marketplace
func (r *messageRepository) Sync(ctx context.Context, sel domain.Selection) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathSyncChatHistory, SyncRequest{
		ChatroomID: sel.ChatroomID,
		ClientID:   sel.ClientID,
		AdminID:    sel.AdminID,
	})
}

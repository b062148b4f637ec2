package app

import (
	"context"
	"strings"

	"operator_console/internal/message/domain"
	"operator_console/internal/message/repository"
	errprocess "operator_console/pkg/err"
	"operator_console/pkg/logger"
	"operator_console/pkg/observable"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// MessageState 聊天室列表 / 目前聊天室訊息 / 目前選取，三個獨立的通知通道
type MessageState struct {
	repo repository.MessageRepository

	chatrooms *observable.Store[[]domain.Chatroom]
	messages  *observable.Store[[]domain.Message]
	current   *observable.Store[domain.Selection]
}

// NewMessageState init message state
func NewMessageState(repo repository.MessageRepository) *MessageState {
	return &MessageState{
		repo: repo,
		chatrooms: observable.NewStore("chatrooms", []domain.Chatroom{},
			observable.WithClone(func(v []domain.Chatroom) []domain.Chatroom {
				return append([]domain.Chatroom(nil), v...)
			})),
		messages: observable.NewStore("messages", []domain.Message{},
			observable.WithClone(func(v []domain.Message) []domain.Message {
				return append([]domain.Message(nil), v...)
			})),
		current: observable.NewStore("current_chatroom", domain.Selection{}),
	}
}

// SubscribeChatrooms 聊天室列表變更
func (s *MessageState) SubscribeChatrooms(fn observable.Observer[[]domain.Chatroom]) observable.Handle {
	return s.chatrooms.Subscribe(fn)
}

// UnsubscribeChatrooms 移除
func (s *MessageState) UnsubscribeChatrooms(h observable.Handle) {
	s.chatrooms.Unsubscribe(h)
}

// SubscribeMessages 目前聊天室訊息變更
func (s *MessageState) SubscribeMessages(fn observable.Observer[[]domain.Message]) observable.Handle {
	return s.messages.Subscribe(fn)
}

// UnsubscribeMessages 移除
func (s *MessageState) UnsubscribeMessages(h observable.Handle) {
	s.messages.Unsubscribe(h)
}

// SubscribeCurrentChatroom 選取變更
func (s *MessageState) SubscribeCurrentChatroom(fn observable.Observer[domain.Selection]) observable.Handle {
	return s.current.Subscribe(fn)
}

// UnsubscribeCurrentChatroom 移除
func (s *MessageState) UnsubscribeCurrentChatroom(h observable.Handle) {
	s.current.Unsubscribe(h)
}

// Chatrooms 聊天室列表
func (s *MessageState) Chatrooms() []domain.Chatroom {
	return s.chatrooms.Get()
}

// Messages 目前聊天室的訊息
func (s *MessageState) Messages() []domain.Message {
	return s.messages.Get()
}

// CurrentChatroom 目前選取
func (s *MessageState) CurrentChatroom() domain.Selection {
	return s.current.Get()
}

// LoadChatrooms 重新載入聊天室列表
func (s *MessageState) LoadChatrooms(ctx context.Context) error {
	rooms, err := s.repo.ListChatrooms(ctx)
	if err != nil {
		return errprocess.Remote("message.load_chatrooms", err, domain.ErrMsgLoadChatrooms)
	}
	if rooms == nil {
		rooms = []domain.Chatroom{}
	}
	s.chatrooms.Publish(rooms)
	logger.Log.Debug("chatrooms loaded", zap.Int("count", len(rooms)))
	return nil
}

// LoadMessages 載入單一聊天室訊息，取代目前的訊息列表
func (s *MessageState) LoadMessages(ctx context.Context, chatroomID domain.ID) error {
	if chatroomID.IsZero() {
		return errprocess.Validation(domain.ErrMsgChatroomRequired)
	}
	messages, err := s.repo.LoadHistory(ctx, chatroomID)
	if err != nil {
		return errprocess.Remote("message.load_messages", err, domain.ErrMsgLoadMessages)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	s.messages.Publish(messages)
	logger.Log.Debug("messages loaded", zap.Stringer("chatroom_id", chatroomID), zap.Int("count", len(messages)))
	return nil
}

// MarkMessagesAsRead 已讀後重新載入聊天室列表 (更新未讀數)
func (s *MessageState) MarkMessagesAsRead(ctx context.Context, chatroomID domain.ID) error {
	if chatroomID.IsZero() {
		return errprocess.Validation(domain.ErrMsgChatroomRequired)
	}
	ack, err := s.repo.MarkRead(ctx, chatroomID)
	if err != nil {
		return errprocess.Remote("message.mark_read", err, domain.ErrMsgMarkRead)
	}
	if !ack.Success {
		return errprocess.Rejected("message.mark_read", ack.Message, domain.ErrMsgMarkRead)
	}
	return s.LoadChatrooms(ctx)
}

// SendMessage 送出訊息，成功後同時重新載入訊息與聊天室列表
func (s *MessageState) SendMessage(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errprocess.Validation(domain.ErrMsgEmptyText)
	}
	sel := s.current.Get()
	if !sel.Complete() {
		return errprocess.Validation(domain.ErrMsgNoSelection)
	}

	ack, err := s.repo.Send(ctx, sel, text)
	if err != nil {
		return errprocess.Remote("message.send", err, domain.ErrMsgSend)
	}
	if !ack.Success {
		return errprocess.Rejected("message.send", ack.Message, domain.ErrMsgSend)
	}
	logger.Log.Info("message sent", zap.Stringer("chatroom_id", sel.ChatroomID))
	return s.reloadCurrent(ctx, sel.ChatroomID)
}

// SyncChatHistory 同步聊天紀錄，成功後同時重新載入
func (s *MessageState) SyncChatHistory(ctx context.Context) error {
	sel := s.current.Get()
	if !sel.Complete() {
		return errprocess.Validation(domain.ErrMsgNoSelection)
	}

	ack, err := s.repo.Sync(ctx, sel)
	if err != nil {
		return errprocess.Remote("message.sync", err, domain.ErrMsgSync)
	}
	if !ack.Success {
		return errprocess.Rejected("message.sync", ack.Message, domain.ErrMsgSync)
	}
	logger.Log.Info("chat history synced", zap.Stringer("chatroom_id", sel.ChatroomID))
	return s.reloadCurrent(ctx, sel.ChatroomID)
}

// SetCurrentChatroom 只改本地選取並通知選取通道
func (s *MessageState) SetCurrentChatroom(chatroomID, clientID, adminID domain.ID) {
	s.current.Publish(domain.Selection{
		ChatroomID: chatroomID,
		ClientID:   clientID,
		AdminID:    adminID,
	})
}

// reloadCurrent 訊息與聊天室列表並行重新載入，兩者都結束才回傳
func (s *MessageState) reloadCurrent(ctx context.Context, chatroomID domain.ID) error {
	var g errgroup.Group
	g.Go(func() error {
		return s.LoadMessages(ctx, chatroomID)
	})
	g.Go(func() error {
		return s.LoadChatrooms(ctx)
	})
	return g.Wait()
}

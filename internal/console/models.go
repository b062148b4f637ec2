package console

import (
	"context"

	accountdomain "operator_console/internal/account/domain"
	aireplydomain "operator_console/internal/aireply/domain"
	messagedomain "operator_console/internal/message/domain"
	settingsdomain "operator_console/internal/settings/domain"
	"operator_console/pkg/observable"
)

// AccountModel account state 對 controller 開放的操作
type AccountModel interface {
	Subscribe(fn observable.Observer[[]accountdomain.Account]) observable.Handle
	Unsubscribe(h observable.Handle)
	Accounts() []accountdomain.Account
	LoadAccounts(ctx context.Context) error
	CreateAccount(ctx context.Context, email, password string) error
	UpdateAccount(ctx context.Context, email, password string) error
	DeleteAccount(ctx context.Context, email string) error
}

// MessageModel message state 對 controller 開放的操作
type MessageModel interface {
	SubscribeChatrooms(fn observable.Observer[[]messagedomain.Chatroom]) observable.Handle
	UnsubscribeChatrooms(h observable.Handle)
	SubscribeMessages(fn observable.Observer[[]messagedomain.Message]) observable.Handle
	UnsubscribeMessages(h observable.Handle)
	SubscribeCurrentChatroom(fn observable.Observer[messagedomain.Selection]) observable.Handle
	UnsubscribeCurrentChatroom(h observable.Handle)

	Chatrooms() []messagedomain.Chatroom
	Messages() []messagedomain.Message
	CurrentChatroom() messagedomain.Selection

	LoadChatrooms(ctx context.Context) error
	LoadMessages(ctx context.Context, chatroomID messagedomain.ID) error
	MarkMessagesAsRead(ctx context.Context, chatroomID messagedomain.ID) error
	SendMessage(ctx context.Context, text string) error
	SyncChatHistory(ctx context.Context) error
	SetCurrentChatroom(chatroomID, clientID, adminID messagedomain.ID)
}

// AiReplyModel ai reply state 對 controller 開放的操作
type AiReplyModel interface {
	Subscribe(fn observable.Observer[aireplydomain.State]) observable.Handle
	Unsubscribe(h observable.Handle)
	Snapshot() aireplydomain.State
	Reply(t aireplydomain.ReplyType) string
	IsLoading() bool
	LoadGptAnswers(ctx context.Context, chatroomID messagedomain.ID) error
}

// SettingsModel settings state 對 controller 開放的操作
type SettingsModel interface {
	Subscribe(fn observable.Observer[settingsdomain.State]) observable.Handle
	Unsubscribe(h observable.Handle)
	Snapshot() settingsdomain.State
	IsChatroomChecked(id messagedomain.ID) bool

	LoadSettings(ctx context.Context) error
	UpdateRefreshInterval(ctx context.Context, seconds int) error
	UpdateTelegramSettings(ctx context.Context, token, chatID string) error
	UpdateChatroomCheck(ctx context.Context, id messagedomain.ID, checked bool) error
	StartTelegramIDCheck(ctx context.Context, token string) error
	StopTelegramIDCheck(ctx context.Context) error
	SendTestMessage(ctx context.Context, message string) error
}

// DraftTarget 可以接收回覆草稿的輸入框
type DraftTarget interface {
	SetDraft(text string)
}

package repository

import (
	"context"

	messagedomain "operator_console/internal/message/domain"
	"operator_console/internal/settings/domain"
	"operator_console/pkg/apiclient"
)

// API paths
const (
	PathLoadSettings           = "/api/settings/loadSettings"
	PathUpdateRefreshInterval  = "/api/settings/updateRefreshInterval"
	PathUpdateTelegramSettings = "/api/settings/updateTelegramSettings"
	PathUpdateChatroomCheck    = "/api/settings/updateChatroomCheck"
	PathStartTelegramIDCheck   = "/api/settings/startTelegramIdCheck"
	PathStopTelegramIDCheck    = "/api/settings/stopTelegramIdCheck"
	PathTestTelegramMessage    = "/api/settings/testTelegramMessage"
)

// IntervalRequest body
type IntervalRequest struct {
	Interval int `json:"interval"`
}

// TelegramRequest body
type TelegramRequest struct {
	Token  string `json:"token"`
	ChatID string `json:"chatId"`
}

// ChatroomCheckRequest body
type ChatroomCheckRequest struct {
	ChatroomID messagedomain.ID `json:"chatroomId"`
	IsChecked  bool             `json:"isChecked"`
}

// TokenRequest body
type TokenRequest struct {
	Token string `json:"token"`
}

// TestMessageRequest body
type TestMessageRequest struct {
	Message string `json:"message"`
}

// SettingsRepository definition settings gateway
type SettingsRepository interface {
	Load(ctx context.Context) (domain.Settings, error)
	UpdateRefreshInterval(ctx context.Context, seconds int) (apiclient.Ack, error)
	UpdateTelegram(ctx context.Context, token, chatID string) (apiclient.Ack, error)
	UpdateChatroomCheck(ctx context.Context, chatroomID messagedomain.ID, checked bool) (apiclient.Ack, error)
	StartIDCheck(ctx context.Context, token string) (apiclient.Ack, error)
	StopIDCheck(ctx context.Context) (apiclient.Ack, error)
	SendTestMessage(ctx context.Context, message string) (apiclient.Ack, error)
}

type settingsRepository struct {
	client *apiclient.Client
}

// NewHTTPSettingsRepository create settings gateway over http
func NewHTTPSettingsRepository(client *apiclient.Client) SettingsRepository {
	return &settingsRepository{client: client}
}

// Load load settings
func (r *settingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	var s domain.Settings
	if err := r.client.GetJSON(ctx, PathLoadSettings, &s); err != nil {
		return domain.Settings{}, err
	}
	return s, nil
}

// UpdateRefreshInterval update refresh interval
func (r *settingsRepository) UpdateRefreshInterval(ctx context.Context, seconds int) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathUpdateRefreshInterval, IntervalRequest{Interval: seconds})
}

// UpdateTelegram update telegram bot token / chat id
func (r *settingsRepository) UpdateTelegram(ctx context.Context, token, chatID string) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathUpdateTelegramSettings, TelegramRequest{Token: token, ChatID: chatID})
}

// UpdateChatroomCheck update chatroom notification check
func (r *settingsRepository) UpdateChatroomCheck(ctx context.Context, chatroomID messagedomain.ID, checked bool) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathUpdateChatroomCheck, ChatroomCheckRequest{ChatroomID: chatroomID, IsChecked: checked})
}

// StartIDCheck start telegram chat id check mode
func (r *settingsRepository) StartIDCheck(ctx context.Context, token string) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathStartTelegramIDCheck, TokenRequest{Token: token})
}

// StopIDCheck stop telegram chat id check mode
func (r *settingsRepository) StopIDCheck(ctx context.Context) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathStopTelegramIDCheck, nil)
}

// SendTestMessage send telegram test message
func (r *settingsRepository) SendTestMessage(ctx context.Context, message string) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathTestTelegramMessage, TestMessageRequest{Message: message})
}

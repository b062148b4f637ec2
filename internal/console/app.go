package console

import (
	"context"
	"errors"
	"time"

	accountapp "operator_console/internal/account/app"
	accountrepo "operator_console/internal/account/repository"
	aireplyapp "operator_console/internal/aireply/app"
	aireplyrepo "operator_console/internal/aireply/repository"
	messageapp "operator_console/internal/message/app"
	messagerepo "operator_console/internal/message/repository"
	settingsapp "operator_console/internal/settings/app"
	settingsrepo "operator_console/internal/settings/repository"
	"operator_console/pkg/apiclient"
	"operator_console/pkg/logger"

	"go.uber.org/zap"
)

// App 組合根：每個 state 模組與 controller 各一份
type App struct {
	Accounts *accountapp.AccountState
	Messages *messageapp.MessageState
	AiReply  *aireplyapp.AiReplyState
	Settings *settingsapp.SettingsState

	AccountUI    *AccountUI
	MessageUI    *MessageUI
	AiReplyModal *AiReplyModal
	SettingsUI   *SettingsUI
}

// NewApp 建立所有模組並連接跨模組依賴
func NewApp(client *apiclient.Client, surface Surface, notifier Notifier) *App {
	a := &App{
		Accounts: accountapp.NewAccountState(accountrepo.NewHTTPAccountRepository(client)),
		Messages: messageapp.NewMessageState(messagerepo.NewHTTPMessageRepository(client)),
		AiReply:  aireplyapp.NewAiReplyState(aireplyrepo.NewHTTPSuggestionRepository(client)),
		Settings: settingsapp.NewSettingsState(settingsrepo.NewHTTPSettingsRepository(client)),
	}

	a.AccountUI = NewAccountUI(a.Accounts, surface, notifier)
	a.MessageUI = NewMessageUI(a.Messages, a.Settings, surface, notifier)
	a.AiReplyModal = NewAiReplyModal(a.AiReply, a.Messages, a.MessageUI, surface, notifier)
	a.SettingsUI = NewSettingsUI(a.Settings, surface, notifier)
	return a
}

// Initialize 載入帳號、聊天室、設定；個別失敗不影響其他區塊
func (a *App) Initialize(ctx context.Context) error {
	return errors.Join(
		a.AccountUI.Initialize(ctx),
		a.MessageUI.Initialize(ctx),
		a.SettingsUI.Initialize(ctx),
	)
}

// Run 初始化後週期刷新聊天室列表，直到 ctx 結束
func (a *App) Run(ctx context.Context, interval time.Duration) error {
	if err := a.Initialize(ctx); err != nil {
		logger.Log.Warn("console initialized with errors", zap.Error(err))
	}
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	logger.Log.Info("console running", zap.Duration("refresh_interval", interval))
	a.MessageUI.StartAutoRefresh(ctx, interval)

	<-ctx.Done()
	return nil
}

// Close 取消所有 controller 的訂閱
func (a *App) Close() {
	a.AccountUI.Close()
	a.MessageUI.Close()
	a.AiReplyModal.Close()
	a.SettingsUI.Close()
}

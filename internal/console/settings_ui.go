package console

import (
	"context"
	"fmt"
	"strings"

	"operator_console/internal/settings/app"
	"operator_console/internal/settings/domain"
	"operator_console/pkg/logger"
	"operator_console/pkg/observable"
	"operator_console/pkg/view"

	"go.uber.org/zap"
)

// SettingsUI 刷新週期 / telegram 設定
type SettingsUI struct {
	model    SettingsModel
	surface  Surface
	notifier Notifier
	handle   observable.Handle
}

// NewSettingsUI 建立並訂閱 settings state
func NewSettingsUI(model SettingsModel, surface Surface, notifier Notifier) *SettingsUI {
	ui := &SettingsUI{model: model, surface: surface, notifier: notifier}
	ui.handle = model.Subscribe(ui.handleSettingsUpdate)
	return ui
}

// Close 取消訂閱
func (ui *SettingsUI) Close() {
	ui.model.Unsubscribe(ui.handle)
}

// Initialize 載入設定
func (ui *SettingsUI) Initialize(ctx context.Context) error {
	if err := ui.model.LoadSettings(ctx); err != nil {
		logger.Log.Error("Error loading settings", zap.Error(err))
		return err
	}
	return nil
}

// HandleRefreshSave 文字輸入的刷新週期
func (ui *SettingsUI) HandleRefreshSave(ctx context.Context, input string) error {
	seconds, err := app.ParseInterval(input)
	if err == nil {
		err = ui.model.UpdateRefreshInterval(ctx, seconds)
	}
	if err != nil {
		fail(ui.notifier, domain.ErrMsgIntervalUpdate, err)
		return err
	}
	ui.notifier.Alert("갱신주기가 업데이트되었습니다.")
	return nil
}

// HandleTelegramSave 儲存 telegram bot 設定
func (ui *SettingsUI) HandleTelegramSave(ctx context.Context, token, chatID string) error {
	if err := ui.model.UpdateTelegramSettings(ctx, strings.TrimSpace(token), strings.TrimSpace(chatID)); err != nil {
		fail(ui.notifier, domain.ErrMsgTelegramUpdate, err)
		return err
	}
	ui.notifier.Alert("텔레그램 설정이 업데이트되었습니다.")
	return nil
}

// HandleStartIDCheck 進入 telegram ID 確認模式
func (ui *SettingsUI) HandleStartIDCheck(ctx context.Context, token string) error {
	if err := ui.model.StartTelegramIDCheck(ctx, strings.TrimSpace(token)); err != nil {
		fail(ui.notifier, domain.ErrMsgIDCheckStart, err)
		return err
	}
	ui.notifier.Alert("텔레그램 ID 확인 모드가 시작되었습니다. 봇에게 메시지를 보내주세요.")
	return nil
}

// HandleStopIDCheck 結束 telegram ID 確認模式
func (ui *SettingsUI) HandleStopIDCheck(ctx context.Context) error {
	if err := ui.model.StopTelegramIDCheck(ctx); err != nil {
		fail(ui.notifier, domain.ErrMsgIDCheckStop, err)
		return err
	}
	ui.notifier.Alert("텔레그램 ID 확인 모드가 종료되었습니다.")
	return nil
}

// HandleTestMessage 送出測試訊息
func (ui *SettingsUI) HandleTestMessage(ctx context.Context, message string) error {
	if err := ui.model.SendTestMessage(ctx, message); err != nil {
		fail(ui.notifier, domain.ErrMsgTestMessage, err)
		return err
	}
	ui.notifier.Alert("테스트 메시지가 전송되었습니다.")
	return nil
}

func (ui *SettingsUI) handleSettingsUpdate(st domain.State) {
	s := st.Settings
	idCheck := "꺼짐"
	if st.IDCheckActive {
		idCheck = "켜짐"
	}

	ui.surface.Render(RegionSettings, view.VBox("settings",
		view.TextNode("settings-title", "설정").Prop("style", "title"),
		view.TextNode("interval-parse", fmt.Sprintf("메시지 갱신주기: %d초", s.RefreshInterval.ParseUnreadMessagesInDB)),
		view.TextNode("interval-send", fmt.Sprintf("텔레그램 알림 주기: %d초", s.RefreshInterval.SendUnreadMessagesViaTelebot)),
		view.TextNode("interval-reply", fmt.Sprintf("텔레그램 답장 확인 주기: %d초", s.RefreshInterval.ReplyViaTeleBot)),
		view.TextNode("telegram-token", "봇 토큰: "+maskToken(s.Telegram.BotToken)),
		view.TextNode("telegram-chat", "채팅 ID: "+s.Telegram.ChatID),
		view.TextNode("telegram-id-check", "ID 확인 모드: "+idCheck),
		view.TextNode("checked-count", fmt.Sprintf("알림 채팅방: %d개", len(s.CheckedChatroomIDs))),
	))
}

// maskToken 只顯示前後四碼
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

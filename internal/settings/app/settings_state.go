package app

import (
	"context"
	"strconv"
	"strings"

	messagedomain "operator_console/internal/message/domain"
	"operator_console/internal/settings/domain"
	"operator_console/internal/settings/repository"
	errprocess "operator_console/pkg/err"
	"operator_console/pkg/logger"
	"operator_console/pkg/observable"

	"go.uber.org/zap"
)

// SettingsState 刷新週期 / telegram / 勾選聊天室 / ID 確認模式
type SettingsState struct {
	repo  repository.SettingsRepository
	store *observable.Store[domain.State]
}

// NewSettingsState init settings state
func NewSettingsState(repo repository.SettingsRepository) *SettingsState {
	return &SettingsState{
		repo: repo,
		store: observable.NewStore("settings",
			domain.State{Settings: domain.Default()},
			observable.WithClone(domain.State.Clone)),
	}
}

// Subscribe 註冊 callback
func (s *SettingsState) Subscribe(fn observable.Observer[domain.State]) observable.Handle {
	return s.store.Subscribe(fn)
}

// Unsubscribe 移除 callback
func (s *SettingsState) Unsubscribe(h observable.Handle) {
	s.store.Unsubscribe(h)
}

// Snapshot 目前狀態
func (s *SettingsState) Snapshot() domain.State {
	return s.store.Get()
}

// Settings 目前 server 設定
func (s *SettingsState) Settings() domain.Settings {
	return s.store.Get().Settings
}

// IsIDCheckActive 是否在 telegram ID 確認模式
func (s *SettingsState) IsIDCheckActive() bool {
	return s.store.Get().IDCheckActive
}

// IsChatroomChecked 聊天室是否勾選
func (s *SettingsState) IsChatroomChecked(id messagedomain.ID) bool {
	return s.store.Get().Settings.IsChecked(id)
}

// LoadSettings 載入設定
func (s *SettingsState) LoadSettings(ctx context.Context) error {
	settings, err := s.repo.Load(ctx)
	if err != nil {
		return errprocess.Remote("settings.load", err, domain.ErrMsgLoadSettings)
	}
	s.store.Update(func(st *domain.State) {
		st.Settings = settings
	})
	s.store.Notify()
	return nil
}

// ParseInterval 解析文字輸入的秒數，無法解析或小於下限都回傳同一個錯誤
func ParseInterval(input string) (int, error) {
	seconds, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || seconds < domain.MinRefreshInterval {
		return 0, errprocess.Validation(domain.ErrMsgIntervalTooSmall)
	}
	return seconds, nil
}

// UpdateRefreshInterval 更新刷新週期並推導三個值
func (s *SettingsState) UpdateRefreshInterval(ctx context.Context, seconds int) error {
	if seconds < domain.MinRefreshInterval {
		return errprocess.Validation(domain.ErrMsgIntervalTooSmall)
	}
	ack, err := s.repo.UpdateRefreshInterval(ctx, seconds)
	if err != nil {
		return errprocess.Remote("settings.update_interval", err, domain.ErrMsgIntervalUpdate)
	}
	if !ack.Success {
		return errprocess.Rejected("settings.update_interval", ack.Message, domain.ErrMsgIntervalUpdate)
	}

	intervals := domain.DeriveIntervals(seconds)
	s.store.Update(func(st *domain.State) {
		st.Settings.RefreshInterval = intervals
	})
	s.store.Notify()
	logger.Log.Info("refresh interval updated", zap.Int("seconds", seconds), zap.Int("reply", intervals.ReplyViaTeleBot))
	return nil
}

// UpdateTelegramSettings 更新 bot token / chat id；ID 確認模式中不可儲存
func (s *SettingsState) UpdateTelegramSettings(ctx context.Context, token, chatID string) error {
	if token == "" || chatID == "" {
		return errprocess.Validation(domain.ErrMsgTelegramRequired)
	}
	if s.IsIDCheckActive() {
		return errprocess.Validation(domain.ErrMsgIDCheckActive)
	}
	ack, err := s.repo.UpdateTelegram(ctx, token, chatID)
	if err != nil {
		return errprocess.Remote("settings.update_telegram", err, domain.ErrMsgTelegramUpdate)
	}
	if !ack.Success {
		return errprocess.Rejected("settings.update_telegram", ack.Message, domain.ErrMsgTelegramUpdate)
	}

	s.store.Update(func(st *domain.State) {
		st.Settings.Telegram = domain.Telegram{BotToken: token, ChatID: chatID}
	})
	s.store.Notify()
	logger.Log.Info("telegram settings updated", zap.String("chat_id", chatID))
	return nil
}

// UpdateChatroomCheck 勾選 / 取消勾選聊天室通知
func (s *SettingsState) UpdateChatroomCheck(ctx context.Context, id messagedomain.ID, checked bool) error {
	if id.IsZero() {
		return errprocess.Validation(domain.ErrMsgChatroomIDRequired)
	}
	ack, err := s.repo.UpdateChatroomCheck(ctx, id, checked)
	if err != nil {
		return errprocess.Remote("settings.update_check", err, domain.ErrMsgChatroomCheck)
	}
	if !ack.Success {
		return errprocess.Rejected("settings.update_check", ack.Message, domain.ErrMsgChatroomCheck)
	}

	s.store.Update(func(st *domain.State) {
		st.Settings.CheckedChatroomIDs = domain.WithChecked(st.Settings.CheckedChatroomIDs, id, checked)
	})
	s.store.Notify()
	return nil
}

// StartTelegramIDCheck 進入 ID 確認模式；請求前先設旗標，失敗時還原
func (s *SettingsState) StartTelegramIDCheck(ctx context.Context, token string) error {
	if token == "" {
		return errprocess.Validation(domain.ErrMsgTokenRequired)
	}
	s.setIDCheck(true)

	ack, err := s.repo.StartIDCheck(ctx, token)
	if err != nil {
		s.setIDCheck(false)
		return errprocess.Remote("settings.start_id_check", err, domain.ErrMsgIDCheckStart)
	}
	if !ack.Success {
		s.setIDCheck(false)
		return errprocess.Rejected("settings.start_id_check", ack.Message, domain.ErrMsgIDCheckStart)
	}
	logger.Log.Info("telegram id check started")
	return nil
}

// StopTelegramIDCheck 結束 ID 確認模式；不論結果都清除旗標
func (s *SettingsState) StopTelegramIDCheck(ctx context.Context) error {
	ack, err := s.repo.StopIDCheck(ctx)
	s.setIDCheck(false)

	if err != nil {
		return errprocess.Remote("settings.stop_id_check", err, domain.ErrMsgIDCheckStop)
	}
	if !ack.Success {
		return errprocess.Rejected("settings.stop_id_check", ack.Message, domain.ErrMsgIDCheckStop)
	}
	logger.Log.Info("telegram id check stopped")
	return nil
}

// SendTestMessage 送出 telegram 測試訊息，message 為空時使用預設文字
func (s *SettingsState) SendTestMessage(ctx context.Context, message string) error {
	if message == "" {
		message = domain.DefaultTestMessage
	}
	ack, err := s.repo.SendTestMessage(ctx, message)
	if err != nil {
		return errprocess.Remote("settings.test_message", err, domain.ErrMsgTestMessage)
	}
	if !ack.Success {
		return errprocess.Rejected("settings.test_message", ack.Message, domain.ErrMsgTestMessage)
	}
	return nil
}

func (s *SettingsState) setIDCheck(active bool) {
	s.store.Update(func(st *domain.State) {
		st.IDCheckActive = active
	})
	s.store.Notify()
}

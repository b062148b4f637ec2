package console

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"operator_console/internal/message/domain"
	settingsdomain "operator_console/internal/settings/domain"
	errprocess "operator_console/pkg/err"
	"operator_console/pkg/logger"
	"operator_console/pkg/metrics"
	"operator_console/pkg/view"

	"go.uber.org/zap"
)

// DefaultRefreshInterval 聊天室列表自動刷新週期
const DefaultRefreshInterval = 30 * time.Second

// 提示文字
const (
	msgDraftRequired = "메시지 내용을 입력해주세요."
	msgNoMessages    = "메시지가 없습니다."
)

// MessageUI 聊天室列表 + 訊息列表 + 輸入框
// 同時訂閱 message state 與 settings state (勾選狀態)
type MessageUI struct {
	model    MessageModel
	settings SettingsModel
	surface  Surface
	notifier Notifier

	mu    sync.Mutex
	draft string

	refreshing atomic.Bool
	handles    []func()
}

// NewMessageUI 建立並訂閱
func NewMessageUI(model MessageModel, settings SettingsModel, surface Surface, notifier Notifier) *MessageUI {
	ui := &MessageUI{model: model, settings: settings, surface: surface, notifier: notifier}

	h1 := model.SubscribeChatrooms(func(rooms []domain.Chatroom) {
		ui.renderChatrooms(rooms, model.CurrentChatroom(), settings.Snapshot())
	})
	h2 := model.SubscribeMessages(ui.renderMessages)
	h3 := model.SubscribeCurrentChatroom(func(sel domain.Selection) {
		ui.renderChatrooms(model.Chatrooms(), sel, settings.Snapshot())
	})
	h4 := settings.Subscribe(func(st settingsdomain.State) {
		ui.renderChatrooms(model.Chatrooms(), model.CurrentChatroom(), st)
	})
	ui.handles = []func(){
		func() { model.UnsubscribeChatrooms(h1) },
		func() { model.UnsubscribeMessages(h2) },
		func() { model.UnsubscribeCurrentChatroom(h3) },
		func() { settings.Unsubscribe(h4) },
	}

	ui.renderComposer()
	return ui
}

// Close 取消所有訂閱
func (ui *MessageUI) Close() {
	for _, unsubscribe := range ui.handles {
		unsubscribe()
	}
}

// Initialize 載入聊天室列表
func (ui *MessageUI) Initialize(ctx context.Context) error {
	if err := ui.model.LoadChatrooms(ctx); err != nil {
		logger.Log.Error("Error initializing message UI", zap.Error(err))
		return err
	}
	return nil
}

// HandleSelectChatroom 選取聊天室：設定選取 → 標記已讀 (失敗不影響) → 載入訊息
func (ui *MessageUI) HandleSelectChatroom(ctx context.Context, chatroomID domain.ID) error {
	var clientID, adminID domain.ID
	for _, room := range ui.model.Chatrooms() {
		if room.ChatroomID != chatroomID {
			continue
		}
		if last, ok := room.LastMessage(); ok {
			clientID, adminID = last.ClientID, last.AdminID
		}
		break
	}

	ui.model.SetCurrentChatroom(chatroomID, clientID, adminID)

	if err := ui.model.MarkMessagesAsRead(ctx, chatroomID); err != nil {
		logger.Log.Warn("mark read failed, loading messages anyway",
			zap.Stringer("chatroom_id", chatroomID),
			zap.Error(err),
		)
	}

	if err := ui.model.LoadMessages(ctx, chatroomID); err != nil {
		fail(ui.notifier, domain.ErrMsgLoadMessages, err)
		return err
	}
	return nil
}

// SetDraft 設定輸入框內容
func (ui *MessageUI) SetDraft(text string) {
	ui.mu.Lock()
	ui.draft = text
	ui.mu.Unlock()
	ui.renderComposer()
}

// Draft 輸入框內容
func (ui *MessageUI) Draft() string {
	ui.mu.Lock()
	defer ui.mu.Unlock()
	return ui.draft
}

// HandleSend 送出輸入框內容，成功後清空
func (ui *MessageUI) HandleSend(ctx context.Context) error {
	text := ui.Draft()
	if strings.TrimSpace(text) == "" {
		ui.notifier.Alert(msgDraftRequired)
		return errprocess.Validation(msgDraftRequired)
	}

	if err := ui.model.SendMessage(ctx, text); err != nil {
		fail(ui.notifier, domain.ErrMsgSend, err)
		return err
	}
	ui.SetDraft("")
	return nil
}

// HandleSync 同步目前聊天室的聊天紀錄
func (ui *MessageUI) HandleSync(ctx context.Context) error {
	if err := ui.model.SyncChatHistory(ctx); err != nil {
		fail(ui.notifier, domain.ErrMsgSync, err)
		return err
	}
	return nil
}

// HandleToggleCheck 聊天室通知勾選
func (ui *MessageUI) HandleToggleCheck(ctx context.Context, chatroomID domain.ID, checked bool) error {
	if err := ui.settings.UpdateChatroomCheck(ctx, chatroomID, checked); err != nil {
		fail(ui.notifier, settingsdomain.ErrMsgChatroomCheck, err)
		return err
	}
	return nil
}

// StartAutoRefresh 週期性重新載入聊天室列表，直到 ctx 結束
// 前一次刷新尚未完成時跳過該次 tick
func (ui *MessageUI) StartAutoRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !ui.refreshing.CompareAndSwap(false, true) {
					metrics.IncRefreshTick(metrics.TickSkipped)
					logger.Log.Debug("refresh tick skipped, previous refresh still running")
					continue
				}
				go func() {
					defer ui.refreshing.Store(false)
					ui.refresh(ctx)
				}()
			}
		}
	}()
}

func (ui *MessageUI) refresh(ctx context.Context) {
	if err := ui.model.LoadChatrooms(ctx); err != nil {
		metrics.IncRefreshTick(metrics.TickError)
		logger.Log.Error("Error auto-refreshing chatrooms", zap.Error(err))
		return
	}
	metrics.IncRefreshTick(metrics.TickOK)
}

func (ui *MessageUI) renderChatrooms(rooms []domain.Chatroom, sel domain.Selection, st settingsdomain.State) {
	list := view.List("chatroom-list")
	for _, room := range rooms {
		id := "room-" + room.ChatroomID.String()

		var title *view.Node
		if unread := room.UnreadCount(); unread > 0 {
			title = view.Badge(id+"-email", fmt.Sprintf("🔔 %s (%d)", room.Email, unread))
		} else {
			title = view.TextNode(id+"-email", room.Email)
		}

		lastText := fmt.Sprintf("새 메시지가 없습니다.(%s)", room.ChatroomID)
		if last, ok := room.LastMessage(); ok {
			lastText = last.Text
		}

		item := view.Item(id,
			view.Checkbox(id+"-check", "", st.Settings.IsChecked(room.ChatroomID)),
			title,
			view.TextNode(id+"-last", lastText).Prop("style", "muted"),
		).PropBool("selected", room.ChatroomID == sel.ChatroomID && !sel.ChatroomID.IsZero())
		list.Child(item)
	}

	ui.surface.Render(RegionChatrooms, view.VBox("chatrooms",
		view.TextNode("chatrooms-title", "채팅방").Prop("style", "title"),
		list,
	))
}

func (ui *MessageUI) renderMessages(messages []domain.Message) {
	root := view.VBox("messages")
	if len(messages) == 0 {
		ui.surface.Render(RegionMessages, root.Child(view.TextNode("messages-empty", msgNoMessages)))
		return
	}

	for i, m := range messages {
		id := fmt.Sprintf("message-%d", i)
		align := "right"
		if m.FromClient() {
			align = "left"
		}
		root.Child(view.VBox(id,
			view.TextNode(id+"-text", m.Text).Prop("align", align),
			view.TextNode(id+"-date", m.FormatDate()).Prop("align", align).Prop("style", "muted"),
		).Prop("align", align))
	}
	ui.surface.Render(RegionMessages, root)
}

func (ui *MessageUI) renderComposer() {
	ui.surface.Render(RegionComposer, view.HBox("composer",
		view.Input("reply-input", ui.Draft(), "메시지를 입력하세요"),
		view.Button("send", "전송", "send"),
		view.Button("sync", "동기화", "sync"),
		view.Button("ai-reply", "AI 답변", "open_ai_reply"),
	))
}

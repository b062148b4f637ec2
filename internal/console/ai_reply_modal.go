package console

import (
	"context"
	"sync"

	"operator_console/internal/aireply/domain"
	errprocess "operator_console/pkg/err"
	"operator_console/pkg/logger"
	"operator_console/pkg/observable"
	"operator_console/pkg/view"

	"go.uber.org/zap"
)

const msgSelectChatroomFirst = "채팅방을 먼저 선택해주세요."

// AiReplyModal AI 建議回覆視窗，選取後帶入訊息輸入框
type AiReplyModal struct {
	model    AiReplyModel
	messages MessageModel
	draft    DraftTarget
	surface  Surface
	notifier Notifier
	handle   observable.Handle

	mu   sync.Mutex
	open bool
}

// NewAiReplyModal 建立並訂閱 ai reply state
func NewAiReplyModal(model AiReplyModel, messages MessageModel, draft DraftTarget, surface Surface, notifier Notifier) *AiReplyModal {
	m := &AiReplyModal{model: model, messages: messages, draft: draft, surface: surface, notifier: notifier}
	m.handle = model.Subscribe(m.handleReplyDataChanged)
	return m
}

// Close 取消訂閱
func (m *AiReplyModal) Close() {
	m.model.Unsubscribe(m.handle)
}

// IsOpen 視窗是否開啟
func (m *AiReplyModal) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

// HandleOpen 開啟視窗並載入五種回覆；需要先選取聊天室
func (m *AiReplyModal) HandleOpen(ctx context.Context) error {
	sel := m.messages.CurrentChatroom()
	if sel.ChatroomID.IsZero() {
		m.notifier.Alert(msgSelectChatroomFirst)
		return errprocess.Validation(msgSelectChatroomFirst)
	}

	m.mu.Lock()
	m.open = true
	m.mu.Unlock()
	m.render(m.model.Snapshot())

	if err := m.model.LoadGptAnswers(ctx, sel.ChatroomID); err != nil {
		logger.Log.Error("자동 답변 로드 중 오류", zap.Error(err))
		m.notifier.Alert("자동 답변을 불러오는 데 실패했습니다.")
		return err
	}
	return nil
}

// HandleClose 關閉視窗
func (m *AiReplyModal) HandleClose() {
	m.mu.Lock()
	m.open = false
	m.mu.Unlock()
	m.surface.Render(RegionAiReply, nil)
}

// HandlePick 選取回覆帶入輸入框並關閉視窗；尚未載入或失敗的回覆不能選
func (m *AiReplyModal) HandlePick(t domain.ReplyType) bool {
	text := m.model.Reply(t)
	if !domain.IsUsable(text) {
		return false
	}
	m.draft.SetDraft(text)
	m.HandleClose()
	return true
}

func (m *AiReplyModal) handleReplyDataChanged(st domain.State) {
	if !m.IsOpen() {
		return
	}
	m.render(st)
}

func (m *AiReplyModal) render(st domain.State) {
	items := view.List("reply-items")
	for _, t := range domain.ReplyTypes {
		id := "reply-" + string(t)
		text := st.Replies.Get(t)
		items.Child(view.Item(id,
			view.TextNode(id+"-label", t.Label()).Prop("style", "title"),
			view.TextNode(id+"-content", text),
		).PropBool("pickable", domain.IsUsable(text)))
	}

	status := "완료"
	if st.Loading {
		status = domain.Placeholder
	}
	m.surface.Render(RegionAiReply, view.Modal("reply-modal", "AI 답변",
		view.TextNode("reply-status", status).Prop("style", "muted"),
		items,
		view.Button("close-reply-modal", "닫기", "close"),
	))
}

package app

import (
	"context"
	"sync"

	"operator_console/internal/aireply/domain"
	"operator_console/internal/aireply/repository"
	messagedomain "operator_console/internal/message/domain"
	errprocess "operator_console/pkg/err"
	"operator_console/pkg/logger"
	"operator_console/pkg/metrics"
	"operator_console/pkg/observable"

	"go.uber.org/zap"
)

// AiReplyState 五種 AI 建議回覆與 loading 狀態
type AiReplyState struct {
	repo  repository.SuggestionRepository
	store *observable.Store[domain.State]
}

// NewAiReplyState init ai reply state
func NewAiReplyState(repo repository.SuggestionRepository) *AiReplyState {
	return &AiReplyState{
		repo: repo,
		store: observable.NewStore("ai_replies",
			domain.State{Replies: domain.NewReplies()},
			observable.WithClone(domain.State.Clone)),
	}
}

// Subscribe 註冊 callback
func (s *AiReplyState) Subscribe(fn observable.Observer[domain.State]) observable.Handle {
	return s.store.Subscribe(fn)
}

// Unsubscribe 移除 callback
func (s *AiReplyState) Unsubscribe(h observable.Handle) {
	s.store.Unsubscribe(h)
}

// Snapshot 目前狀態
func (s *AiReplyState) Snapshot() domain.State {
	return s.store.Get()
}

// Reply 單一種類的回覆
func (s *AiReplyState) Reply(t domain.ReplyType) string {
	return s.store.Get().Replies.Get(t)
}

// IsLoading 是否還在載入
func (s *AiReplyState) IsLoading() bool {
	return s.store.Get().Loading
}

// LoadGptAnswers 並行取得五種回覆
// 每一種完成就立即更新並通知，全部結束後 loading=false 再通知一次；個別失敗不會讓整體失敗
func (s *AiReplyState) LoadGptAnswers(ctx context.Context, chatroomID messagedomain.ID) error {
	if chatroomID.IsZero() {
		return errprocess.Validation(domain.ErrMsgNoRoomID)
	}

	s.store.Update(func(st *domain.State) {
		st.Loading = true
		st.Replies = domain.NewReplies()
	})
	s.store.Notify()

	var wg sync.WaitGroup
	for _, t := range domain.ReplyTypes {
		wg.Add(1)
		go func(t domain.ReplyType) {
			defer wg.Done()
			s.setReply(t, s.fetch(ctx, t, chatroomID))
		}(t)
	}
	wg.Wait()

	s.store.Update(func(st *domain.State) {
		st.Loading = false
	})
	s.store.Notify()

	logger.Log.Debug("ai replies loaded", zap.Stringer("chatroom_id", chatroomID))
	return nil
}

func (s *AiReplyState) fetch(ctx context.Context, t domain.ReplyType, chatroomID messagedomain.ID) string {
	answer, err := s.repo.Suggest(ctx, t, chatroomID)
	if err != nil {
		metrics.IncAIReply(string(t), false)
		logger.Log.Error("ai reply fetch failed",
			zap.String("type", string(t)),
			zap.Stringer("chatroom_id", chatroomID),
			zap.Error(err),
		)
		return domain.FailedText
	}
	metrics.IncAIReply(string(t), true)
	if answer == "" {
		return domain.EmptyAnswer
	}
	return answer
}

func (s *AiReplyState) setReply(t domain.ReplyType, text string) {
	s.store.Update(func(st *domain.State) {
		st.Replies[t] = text
	})
	s.store.Notify()
}

package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"operator_console/internal/aireply/domain"
	messagedomain "operator_console/internal/message/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLoadGptAnswers_AllSucceed(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSuggestionRepository)
	state := NewAiReplyState(repo)

	for _, typ := range domain.ReplyTypes {
		repo.On("Suggest", ctx, typ, messagedomain.ID(15)).Return("answer "+string(typ), nil).Once()
	}

	var mu sync.Mutex
	var snapshots []domain.State
	state.Subscribe(func(st domain.State) {
		mu.Lock()
		snapshots = append(snapshots, st)
		mu.Unlock()
	})

	require.NoError(t, state.LoadGptAnswers(ctx, 15))

	// loading 開始 1 次 + 每種 1 次 + 結束 1 次
	require.Len(t, snapshots, 7)
	assert.True(t, snapshots[0].Loading)
	assert.False(t, snapshots[6].Loading)
	for _, st := range snapshots[1:6] {
		assert.True(t, st.Loading)
	}

	final := state.Snapshot()
	assert.False(t, state.IsLoading())
	for _, typ := range domain.ReplyTypes {
		assert.Equal(t, "answer "+string(typ), final.Replies[typ])
		assert.True(t, domain.IsUsable(state.Reply(typ)))
	}
	repo.AssertExpectations(t)
}

func TestLoadGptAnswers_OneFails(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSuggestionRepository)
	state := NewAiReplyState(repo)

	for _, typ := range domain.ReplyTypes {
		if typ == domain.NegativeBasic {
			repo.On("Suggest", ctx, typ, messagedomain.ID(15)).Return("", errors.New("status 500")).Once()
			continue
		}
		repo.On("Suggest", ctx, typ, messagedomain.ID(15)).Return("ok", nil).Once()
	}

	require.NoError(t, state.LoadGptAnswers(ctx, 15))

	assert.Equal(t, domain.FailedText, state.Reply(domain.NegativeBasic))
	for _, typ := range domain.ReplyTypes {
		if typ != domain.NegativeBasic {
			assert.Equal(t, "ok", state.Reply(typ))
		}
	}
	assert.False(t, state.IsLoading())
}

func TestLoadGptAnswers_EmptyAnswer(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSuggestionRepository)
	state := NewAiReplyState(repo)

	repo.On("Suggest", ctx, mock.Anything, messagedomain.ID(3)).Return("", nil)

	require.NoError(t, state.LoadGptAnswers(ctx, 3))
	assert.Equal(t, domain.EmptyAnswer, state.Reply(domain.PositiveBasic))
	repo.AssertNumberOfCalls(t, "Suggest", 5)
}

func TestLoadGptAnswers_NoChatroom(t *testing.T) {
	repo := new(MockSuggestionRepository)
	state := NewAiReplyState(repo)

	notified := 0
	state.Subscribe(func(domain.State) { notified++ })

	assert.EqualError(t, state.LoadGptAnswers(context.Background(), 0), domain.ErrMsgNoRoomID)
	assert.Equal(t, 0, notified)
	assert.Empty(t, repo.Calls)
}

func TestLoadGptAnswers_PartialVisibleBeforeJoin(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSuggestionRepository)
	state := NewAiReplyState(repo)

	release := make(chan struct{})
	for _, typ := range domain.ReplyTypes {
		if typ == domain.AlternativeSolution {
			repo.On("Suggest", ctx, typ, messagedomain.ID(9)).
				Run(func(mock.Arguments) { <-release }).
				Return("slow", nil).Once()
			continue
		}
		repo.On("Suggest", ctx, typ, messagedomain.ID(9)).Return("fast", nil).Once()
	}

	partial := make(chan domain.State, 10)
	state.Subscribe(func(st domain.State) {
		if st.Loading && st.Replies[domain.PositiveBasic] == "fast" {
			select {
			case partial <- st:
			default:
			}
		}
	})

	done := make(chan struct{})
	go func() {
		_ = state.LoadGptAnswers(ctx, 9)
		close(done)
	}()

	st := <-partial
	assert.True(t, st.Loading)
	assert.Equal(t, domain.Placeholder, st.Replies[domain.AlternativeSolution])

	close(release)
	<-done
	assert.Equal(t, "slow", state.Reply(domain.AlternativeSolution))
}

package app

import (
	"context"
	"errors"
	"testing"

	messagedomain "operator_console/internal/message/domain"
	"operator_console/internal/settings/domain"
	"operator_console/pkg/apiclient"
	errprocess "operator_console/pkg/err"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var ok = apiclient.Ack{Success: true}

func TestUpdateRefreshInterval_Derivation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	repo.On("UpdateRefreshInterval", ctx, 30).Return(ok, nil).Once()
	require.NoError(t, state.UpdateRefreshInterval(ctx, 30))
	assert.Equal(t, domain.RefreshInterval{
		ParseUnreadMessagesInDB:      30,
		SendUnreadMessagesViaTelebot: 30,
		ReplyViaTeleBot:              10,
	}, state.Settings().RefreshInterval)

	repo.On("UpdateRefreshInterval", ctx, 12).Return(ok, nil).Once()
	require.NoError(t, state.UpdateRefreshInterval(ctx, 12))
	assert.Equal(t, 5, state.Settings().RefreshInterval.ReplyViaTeleBot)

	repo.AssertExpectations(t)
}

func TestUpdateRefreshInterval_Validation(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	assert.EqualError(t, state.UpdateRefreshInterval(ctx, 4), domain.ErrMsgIntervalTooSmall)

	for _, input := range []string{"", "abc", "4", "-10", "1.5"} {
		_, err := ParseInterval(input)
		assert.EqualError(t, err, domain.ErrMsgIntervalTooSmall, input)
		assert.True(t, errprocess.IsValidation(err))
	}
	seconds, err := ParseInterval(" 60 ")
	require.NoError(t, err)
	assert.Equal(t, 60, seconds)

	assert.Empty(t, repo.Calls)
}

func TestUpdateRefreshInterval_Rejected(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	repo.On("UpdateRefreshInterval", ctx, 60).Return(apiclient.Ack{}, nil).Once()
	assert.EqualError(t, state.UpdateRefreshInterval(ctx, 60), domain.ErrMsgIntervalUpdate)
	assert.Equal(t, 30, state.Settings().RefreshInterval.ParseUnreadMessagesInDB)
}

func TestUpdateTelegramSettings(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	assert.EqualError(t, state.UpdateTelegramSettings(ctx, "", "1"), domain.ErrMsgTelegramRequired)
	assert.EqualError(t, state.UpdateTelegramSettings(ctx, "t", ""), domain.ErrMsgTelegramRequired)

	repo.On("UpdateTelegram", ctx, "123:abc", "-100").Return(ok, nil).Once()
	require.NoError(t, state.UpdateTelegramSettings(ctx, "123:abc", "-100"))
	assert.Equal(t, domain.Telegram{BotToken: "123:abc", ChatID: "-100"}, state.Settings().Telegram)

	repo.AssertExpectations(t)
}

func TestUpdateTelegramSettings_BlockedDuringIDCheck(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	repo.On("StartIDCheck", ctx, "tok").Return(ok, nil).Once()
	require.NoError(t, state.StartTelegramIDCheck(ctx, "tok"))

	err := state.UpdateTelegramSettings(ctx, "tok", "-100")
	assert.EqualError(t, err, domain.ErrMsgIDCheckActive)
	repo.AssertNotCalled(t, "UpdateTelegram", mock.Anything, mock.Anything, mock.Anything)

	repo.On("StopIDCheck", ctx).Return(ok, nil).Once()
	require.NoError(t, state.StopTelegramIDCheck(ctx))

	repo.On("UpdateTelegram", ctx, "tok", "-100").Return(ok, nil).Once()
	assert.NoError(t, state.UpdateTelegramSettings(ctx, "tok", "-100"))
}

func TestUpdateChatroomCheck_Idempotent(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	assert.EqualError(t, state.UpdateChatroomCheck(ctx, 0, true), domain.ErrMsgChatroomIDRequired)

	repo.On("UpdateChatroomCheck", ctx, messagedomain.ID(5), true).Return(ok, nil).Twice()
	require.NoError(t, state.UpdateChatroomCheck(ctx, 5, true))
	require.NoError(t, state.UpdateChatroomCheck(ctx, 5, true))
	assert.Equal(t, []messagedomain.ID{5}, state.Settings().CheckedChatroomIDs)

	repo.On("UpdateChatroomCheck", ctx, messagedomain.ID(5), false).Return(ok, nil).Once()
	require.NoError(t, state.UpdateChatroomCheck(ctx, 5, false))
	assert.False(t, state.IsChatroomChecked(5))

	repo.AssertExpectations(t)
}

func TestStartTelegramIDCheck_Rollback(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	var flags []bool
	state.Subscribe(func(st domain.State) { flags = append(flags, st.IDCheckActive) })

	assert.EqualError(t, state.StartTelegramIDCheck(ctx, ""), domain.ErrMsgTokenRequired)
	assert.Empty(t, flags)

	repo.On("StartIDCheck", ctx, "tok").Return(apiclient.Ack{}, errors.New("refused")).Once()
	assert.EqualError(t, state.StartTelegramIDCheck(ctx, "tok"), domain.ErrMsgIDCheckStart)

	assert.Equal(t, []bool{true, false}, flags)
	assert.False(t, state.IsIDCheckActive())
}

func TestStopTelegramIDCheck_ClearsOnFailure(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	repo.On("StartIDCheck", ctx, "tok").Return(ok, nil).Once()
	require.NoError(t, state.StartTelegramIDCheck(ctx, "tok"))
	assert.True(t, state.IsIDCheckActive())

	repo.On("StopIDCheck", ctx).Return(apiclient.Ack{Success: false, Message: "bot offline"}, nil).Once()
	assert.EqualError(t, state.StopTelegramIDCheck(ctx), "bot offline")
	assert.False(t, state.IsIDCheckActive())
}

func TestSendTestMessage_Default(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	repo.On("SendTestMessage", ctx, domain.DefaultTestMessage).Return(ok, nil).Once()
	repo.On("SendTestMessage", ctx, "hello").Return(ok, nil).Once()

	require.NoError(t, state.SendTestMessage(ctx, ""))
	require.NoError(t, state.SendTestMessage(ctx, "hello"))
	repo.AssertExpectations(t)
}

func TestLoadSettings_KeepsIDCheckFlag(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	state := NewSettingsState(repo)

	repo.On("StartIDCheck", ctx, "tok").Return(ok, nil).Once()
	require.NoError(t, state.StartTelegramIDCheck(ctx, "tok"))

	loaded := domain.Settings{RefreshInterval: domain.DeriveIntervals(60), CheckedChatroomIDs: []messagedomain.ID{1}}
	repo.On("Load", ctx).Return(loaded, nil).Once()
	require.NoError(t, state.LoadSettings(ctx))

	assert.Equal(t, loaded, state.Settings())
	assert.True(t, state.IsIDCheckActive())

	repo.On("Load", ctx).Return(domain.Settings{}, errors.New("down")).Once()
	assert.EqualError(t, state.LoadSettings(ctx), domain.ErrMsgLoadSettings)
	assert.Equal(t, loaded, state.Settings())
}

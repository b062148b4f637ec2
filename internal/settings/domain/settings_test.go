package domain

import (
	"encoding/json"
	"testing"

	messagedomain "operator_console/internal/message/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveIntervals(t *testing.T) {
	assert.Equal(t, RefreshInterval{30, 30, 10}, DeriveIntervals(30))
	assert.Equal(t, RefreshInterval{12, 12, 5}, DeriveIntervals(12))
	assert.Equal(t, RefreshInterval{5, 5, 5}, DeriveIntervals(5))
	assert.Equal(t, RefreshInterval{100, 100, 33}, DeriveIntervals(100))
}

func TestWithChecked_Idempotent(t *testing.T) {
	ids := WithChecked(nil, 5, true)
	ids = WithChecked(ids, 5, true)
	assert.Equal(t, []messagedomain.ID{5}, ids)

	ids = WithChecked(ids, 7, true)
	ids = WithChecked(ids, 5, false)
	ids = WithChecked(ids, 5, false)
	assert.Equal(t, []messagedomain.ID{7}, ids)
}

func TestSettings_DecodeServerShape(t *testing.T) {
	raw := `{
		"refreshInterval": {"parseUnReadMessagesinDB": 60, "sendUnReadMessagesViaTelebot": 60, "replyViaTeleBot": 20},
		"telegram": {"botToken": "123:abc", "chatId": "-100"},
		"checkedChatroomIds": [1, "2"]
	}`

	var s Settings
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.Equal(t, 20, s.RefreshInterval.ReplyViaTeleBot)
	assert.Equal(t, "-100", s.Telegram.ChatID)
	assert.True(t, s.IsChecked(2))
	assert.False(t, s.IsChecked(3))
}

func TestState_Clone(t *testing.T) {
	st := State{Settings: Settings{CheckedChatroomIDs: []messagedomain.ID{1}}}
	cp := st.Clone()
	cp.Settings.CheckedChatroomIDs[0] = 9
	assert.Equal(t, messagedomain.ID(1), st.Settings.CheckedChatroomIDs[0])
}

func TestDefault(t *testing.T) {
	assert.Equal(t, RefreshInterval{30, 30, 10}, Default().RefreshInterval)
}

package main

import (
	"bytes"
	"testing"

	messagedomain "operator_console/internal/message/domain"
	settingsdomain "operator_console/internal/settings/domain"
	settingsrepo "operator_console/internal/settings/repository"
	testtool "operator_console/pkg/test_tool"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startBackend(t *testing.T) (*testtool.MockBackend, string) {
	t.Helper()
	backend := testtool.NewMockBackend(nil)
	backend.SeedDemo()
	url, err := backend.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })
	return backend, url
}

func execute(t *testing.T, url string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--server", url, "--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestChatroomsCommand(t *testing.T) {
	_, url := startBackend(t)

	out, err := execute(t, url, "chatrooms")
	require.NoError(t, err)
	assert.Contains(t, out, "seller@kmong.test (2)")
	assert.Contains(t, out, "support@kmong.test")
}

func TestSendCommand(t *testing.T) {
	backend, url := startBackend(t)

	out, err := execute(t, url, "send", "101", "수정은", "2회까지", "가능합니다.")
	require.NoError(t, err)

	messages := backend.Messages(101)
	assert.Equal(t, "수정은 2회까지 가능합니다.", messages[len(messages)-1].Text)
	assert.Contains(t, out, "수정은 2회까지 가능합니다.")
}

func TestSendCommand_InvalidChatroom(t *testing.T) {
	_, url := startBackend(t)

	_, err := execute(t, url, "send", "abc", "hi")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestSuggestCommand_PickAndSend(t *testing.T) {
	backend, url := startBackend(t)

	_, err := execute(t, url, "suggest", "101", "--pick", "positive_basic", "--send")
	require.NoError(t, err)

	messages := backend.Messages(101)
	assert.Equal(t, "예, 가능합니다.", messages[len(messages)-1].Text)
	assert.Equal(t, 5, backend.Calls("/api/message/get_gpt_suggestions"))
}

func TestSuggestCommand_SendRequiresPick(t *testing.T) {
	backend, url := startBackend(t)

	_, err := execute(t, url, "suggest", "101", "--send")
	assert.EqualError(t, err, "--send requires --pick")
	assert.Equal(t, 0, backend.Calls("/api/message/get_gpt_suggestions"))
}

func TestSettingsIntervalCommand(t *testing.T) {
	backend, url := startBackend(t)

	out, err := execute(t, url, "settings", "interval", "4")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "[알림] 5초 이상의 값을 입력해주세요.")

	out, err = execute(t, url, "settings", "interval", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "텔레그램 답장 확인 주기: 20초")
	assert.Equal(t, 20, backend.Settings().RefreshInterval.ReplyViaTeleBot)
}

func TestSettingsCheckCommand(t *testing.T) {
	backend, url := startBackend(t)

	_, err := execute(t, url, "settings", "check", "102", "on")
	require.NoError(t, err)
	assert.Equal(t, []messagedomain.ID{102}, backend.Settings().CheckedChatroomIDs)

	_, err = execute(t, url, "settings", "check", "102", "maybe")
	assert.Error(t, err)
}

func TestAccountsCommands(t *testing.T) {
	_, url := startBackend(t)

	out, err := execute(t, url, "accounts", "add", "new@kmong.test", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "new@kmong.test")

	out, err = execute(t, url, "accounts", "add", "new@kmong.test", "pw")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, out, "계정 추가 실패: 이미 존재하는 계정입니다.")
}

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"on", true, false},
		{"OFF", false, false},
		{"1", true, false},
		{"maybe", false, true},
	}
	for _, tt := range tests {
		got, err := parseOnOff(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		assert.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestChatroomsCommand_SettingsLoadFailureIsReported(t *testing.T) {
	backend, url := startBackend(t)
	backend.Fail(settingsrepo.PathLoadSettings, testtool.Failure{Status: 500})

	out, err := execute(t, url, "chatrooms")
	require.NoError(t, err)
	assert.Contains(t, out, "[알림] "+settingsdomain.ErrMsgLoadSettings)
	assert.Contains(t, out, "seller@kmong.test (2)")
}

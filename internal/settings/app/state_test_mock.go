package app

import (
	"context"

	messagedomain "operator_console/internal/message/domain"
	"operator_console/internal/settings/domain"
	"operator_console/pkg/apiclient"

	"github.com/stretchr/testify/mock"
)

// MockSettingsRepository Mock SettingsRepository
type MockSettingsRepository struct {
	mock.Mock
}

// Load mock load
func (m *MockSettingsRepository) Load(ctx context.Context) (domain.Settings, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Error(1)
}

// UpdateRefreshInterval mock update interval
func (m *MockSettingsRepository) UpdateRefreshInterval(ctx context.Context, seconds int) (apiclient.Ack, error) {
	args := m.Called(ctx, seconds)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// UpdateTelegram mock update telegram
func (m *MockSettingsRepository) UpdateTelegram(ctx context.Context, token, chatID string) (apiclient.Ack, error) {
	args := m.Called(ctx, token, chatID)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// UpdateChatroomCheck mock update check
func (m *MockSettingsRepository) UpdateChatroomCheck(ctx context.Context, chatroomID messagedomain.ID, checked bool) (apiclient.Ack, error) {
	args := m.Called(ctx, chatroomID, checked)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// StartIDCheck mock start id check
func (m *MockSettingsRepository) StartIDCheck(ctx context.Context, token string) (apiclient.Ack, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// StopIDCheck mock stop id check
func (m *MockSettingsRepository) StopIDCheck(ctx context.Context) (apiclient.Ack, error) {
	args := m.Called(ctx)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// SendTestMessage mock test message
func (m *MockSettingsRepository) SendTestMessage(ctx context.Context, message string) (apiclient.Ack, error) {
	args := m.Called(ctx, message)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

package app

import (
	"context"

	"operator_console/internal/message/domain"
	"operator_console/pkg/apiclient"

	"github.com/stretchr/testify/mock"
)

// MockMessageRepository Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

// ListChatrooms mock list chatrooms
func (m *MockMessageRepository) ListChatrooms(ctx context.Context) ([]domain.Chatroom, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Chatroom), args.Error(1)
	}
	return nil, args.Error(1)
}

// LoadHistory mock load history
func (m *MockMessageRepository) LoadHistory(ctx context.Context, chatroomID domain.ID) ([]domain.Message, error) {
	args := m.Called(ctx, chatroomID)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Message), args.Error(1)
	}
	return nil, args.Error(1)
}

// MarkRead mock mark read
func (m *MockMessageRepository) MarkRead(ctx context.Context, chatroomID domain.ID) (apiclient.Ack, error) {
	args := m.Called(ctx, chatroomID)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// Send mock send
func (m *MockMessageRepository) Send(ctx context.Context, sel domain.Selection, text string) (apiclient.Ack, error) {
	args := m.Called(ctx, sel, text)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// Sync mock sync
func (m *MockMessageRepository) Sync(ctx context.Context, sel domain.Selection) (apiclient.Ack, error) {
	args := m.Called(ctx, sel)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

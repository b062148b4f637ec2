package app

import (
	"context"

	"operator_console/internal/aireply/domain"
	messagedomain "operator_console/internal/message/domain"

	"github.com/stretchr/testify/mock"
)

// MockSuggestionRepository Mock SuggestionRepository
type MockSuggestionRepository struct {
	mock.Mock
}

// Suggest mock suggest
func (m *MockSuggestionRepository) Suggest(ctx context.Context, replyType domain.ReplyType, chatroomID messagedomain.ID) (string, error) {
	args := m.Called(ctx, replyType, chatroomID)
	return args.String(0), args.Error(1)
}

package app

import (
	"context"

	"operator_console/internal/account/domain"
	"operator_console/pkg/apiclient"

	"github.com/stretchr/testify/mock"
)

// MockAccountRepository Mock AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

// List mock list
func (m *MockAccountRepository) List(ctx context.Context) ([]domain.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]domain.Account), args.Error(1)
	}
	return nil, args.Error(1)
}

// Create mock create
func (m *MockAccountRepository) Create(ctx context.Context, email, password string) (apiclient.Ack, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// Update mock update
func (m *MockAccountRepository) Update(ctx context.Context, email, password string) (apiclient.Ack, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

// Delete mock delete
func (m *MockAccountRepository) Delete(ctx context.Context, email string) (apiclient.Ack, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(apiclient.Ack), args.Error(1)
}

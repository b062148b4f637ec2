package app

import (
	"context"

	"operator_console/internal/account/domain"
	"operator_console/internal/account/repository"
	errprocess "operator_console/pkg/err"
	"operator_console/pkg/logger"
	"operator_console/pkg/observable"

	"go.uber.org/zap"
)

// AccountState 帳號列表狀態
type AccountState struct {
	repo  repository.AccountRepository
	store *observable.Store[[]domain.Account]
}

// NewAccountState init account state
func NewAccountState(repo repository.AccountRepository) *AccountState {
	return &AccountState{
		repo: repo,
		store: observable.NewStore("accounts", []domain.Account{},
			observable.WithClone(func(v []domain.Account) []domain.Account {
				return append([]domain.Account(nil), v...)
			})),
	}
}

// Subscribe 註冊 render callback
func (s *AccountState) Subscribe(fn observable.Observer[[]domain.Account]) observable.Handle {
	return s.store.Subscribe(fn)
}

// Unsubscribe 移除 callback
func (s *AccountState) Unsubscribe(h observable.Handle) {
	s.store.Unsubscribe(h)
}

// Accounts 目前帳號列表
func (s *AccountState) Accounts() []domain.Account {
	return s.store.Get()
}

// LoadAccounts 重新載入列表，失敗時保留原狀態
func (s *AccountState) LoadAccounts(ctx context.Context) error {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		return errprocess.Remote("account.load", err, domain.ErrMsgLoadFailed)
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	s.store.Publish(accounts)
	logger.Log.Debug("accounts loaded", zap.Int("count", len(accounts)))
	return nil
}

// CreateAccount 新增帳號，成功後重新載入
func (s *AccountState) CreateAccount(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errprocess.Validation(domain.ErrMsgEmailPasswordRequired)
	}
	ack, err := s.repo.Create(ctx, email, password)
	if err != nil {
		return errprocess.Remote("account.create", err, domain.ErrMsgCreateFailed)
	}
	if !ack.Success {
		return errprocess.Rejected("account.create", ack.Message, domain.ErrMsgCreateFailed)
	}
	logger.Log.Info("account created", zap.String("email", email))
	return s.LoadAccounts(ctx)
}

// UpdateAccount 修改帳號密碼，成功後重新載入
func (s *AccountState) UpdateAccount(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return errprocess.Validation(domain.ErrMsgEmailPasswordRequired)
	}
	ack, err := s.repo.Update(ctx, email, password)
	if err != nil {
		return errprocess.Remote("account.update", err, domain.ErrMsgUpdateFailed)
	}
	if !ack.Success {
		return errprocess.Rejected("account.update", ack.Message, domain.ErrMsgUpdateFailed)
	}
	logger.Log.Info("account updated", zap.String("email", email))
	return s.LoadAccounts(ctx)
}

// DeleteAccount 刪除帳號，成功後重新載入
func (s *AccountState) DeleteAccount(ctx context.Context, email string) error {
	if email == "" {
		return errprocess.Validation(domain.ErrMsgEmailRequired)
	}
	ack, err := s.repo.Delete(ctx, email)
	if err != nil {
		return errprocess.Remote("account.delete", err, domain.ErrMsgDeleteFailed)
	}
	if !ack.Success {
		return errprocess.Rejected("account.delete", ack.Message, domain.ErrMsgDeleteFailed)
	}
	logger.Log.Info("account deleted", zap.String("email", email))
	return s.LoadAccounts(ctx)
}

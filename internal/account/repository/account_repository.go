package repository

import (
	"context"

	"operator_console/internal/account/domain"
	"operator_console/pkg/apiclient"
)

// API paths
const (
	PathLoadAccountList = "/api/account/loadAccountList"
	PathCreateAccount   = "/api/account/createAccount"
	PathUpdateAccount   = "/api/account/updateAccount"
	PathDeleteAccount   = "/api/account/deleteAccount"
)

// CredentialsRequest create / update body
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// DeleteRequest delete body
type DeleteRequest struct {
	Email string `json:"email"`
}

// AccountRepository definition account gateway
type AccountRepository interface {
	List(ctx context.Context) ([]domain.Account, error)
	Create(ctx context.Context, email, password string) (apiclient.Ack, error)
	Update(ctx context.Context, email, password string) (apiclient.Ack, error)
	Delete(ctx context.Context, email string) (apiclient.Ack, error)
}

type accountRepository struct {
	client *apiclient.Client
}

// NewHTTPAccountRepository create account gateway over http
func NewHTTPAccountRepository(client *apiclient.Client) AccountRepository {
	return &accountRepository{client: client}
}

// List load account list
func (r *accountRepository) List(ctx context.Context) ([]domain.Account, error) {
	var accounts []domain.Account
	if err := r.client.GetJSON(ctx, PathLoadAccountList, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create create account
func (r *accountRepository) Create(ctx context.Context, email, password string) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathCreateAccount, CredentialsRequest{Email: email, Password: password})
}

// Update update account password
func (r *accountRepository) Update(ctx context.Context, email, password string) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathUpdateAccount, CredentialsRequest{Email: email, Password: password})
}

// Delete delete account by email
func (r *accountRepository) Delete(ctx context.Context, email string) (apiclient.Ack, error) {
	return r.client.PostAck(ctx, PathDeleteAccount, DeleteRequest{Email: email})
}

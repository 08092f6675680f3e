package services

import (
	"context"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// AccountSvcFacade defines the operations for managing financial accounts.
// Every operation verifies the account belongs to the requesting user.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

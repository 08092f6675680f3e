package services

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// BudgetSvcFacade defines the operations for managing budgets and evaluating
// them against actual spend.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error)
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, userID string, budgetID string) error

	// GetBudgetStatus evaluates the budget's window containing asOf: for
	// MONTHLY budgets the calendar month, for NONE the full budget span, both
	// clamped to [StartDate, EndDate]. Spend in foreign currencies is
	// converted to the budget's currency at asOf rates.
	GetBudgetStatus(ctx context.Context, userID string, budgetID string, asOf time.Time) (*domain.BudgetStatus, error)
}

// InstallmentSvcFacade defines the operations for transaction payment plans.
// All operations verify the parent transaction belongs to the caller.
type InstallmentSvcFacade interface {
	SetInstallments(ctx context.Context, userID string, transactionID string, req dto.SetInstallmentsRequest) ([]domain.Installment, error)
	ListInstallments(ctx context.Context, userID string, transactionID string) ([]domain.Installment, error)
	DeleteInstallments(ctx context.Context, userID string, transactionID string) error
}

package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// BudgetRepository defines operations for budget data, including the grouped
// expense sum the status computation runs. Category links are persisted
// alongside the budget row.
type BudgetRepository interface {
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	FindBudgetsByUserID(ctx context.Context, userID string) ([]domain.Budget, error)
	SaveBudget(ctx context.Context, budget domain.Budget) error
	UpdateBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, budgetID string, now time.Time) error

	// SumExpensesByCurrency returns the total expense magnitude per currency
	// for a user's transactions with from <= transaction_date <= to,
	// optionally restricted to one account and to a category set. One query
	// regardless of how many categories the budget tracks; soft-deleted
	// transactions are excluded.
	SumExpensesByCurrency(ctx context.Context, userID string, accountID *string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error)
}

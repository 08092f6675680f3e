package repositories

import (
	"context"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// InstallmentRepository defines operations for transaction payment plans.
// A plan is always written whole: ReplaceInstallments clears the previous
// plan and inserts the new one atomically.
type InstallmentRepository interface {
	FindInstallmentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Installment, error)
	ReplaceInstallments(ctx context.Context, transactionID string, installments []domain.Installment) error
	DeleteInstallmentsByTransactionID(ctx context.Context, transactionID string) error
}

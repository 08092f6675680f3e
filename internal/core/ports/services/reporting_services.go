package services

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// ReportingSvc defines the grouped-aggregation reports. These are plain SQL
// sums resolved per request; the balance endpoints live on BalanceSvc.
type ReportingSvc interface {
	// GetCashflow returns per-bucket income/expense/net over [from, to].
	GetCashflow(ctx context.Context, userID string, from, to time.Time, granularity dates.Granularity) ([]domain.CashflowPoint, error)

	// GetPeriodComparison contrasts [from, to] with the preceding range of
	// equal length.
	GetPeriodComparison(ctx context.Context, userID string, from, to time.Time) (*domain.PeriodComparison, error)

	// GetCategorySummary returns per-category net amounts and counts over
	// [from, to], optionally restricted to one account.
	GetCategorySummary(ctx context.Context, userID string, from, to time.Time, accountID *string) ([]domain.CategorySummaryRow, error)
}

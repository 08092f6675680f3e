package repositories

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryAggregationRow is one category's aggregated activity from a grouped query.
type CategoryAggregationRow struct {
	CategoryID       string
	NetSignedAmount  decimal.Decimal
	TransactionCount int64
}

// ReportingRepository defines the grouped aggregation queries behind the
// cashflow and comparison endpoints. These are plain SQL sums with no caching;
// the snapshot machinery is not involved.
type ReportingRepository interface {
	// GetCashflowData returns per-bucket income and expense sums for a user's
	// transactions in [from, to]. bucket is a postgres date_trunc unit
	// ("day" or "month"; weeks are regrouped in the service).
	GetCashflowData(ctx context.Context, userID string, from, to time.Time, bucket string) ([]domain.CashflowPoint, error)

	// GetPeriodTotals returns total income and expense for a user's
	// transactions in [from, to].
	GetPeriodTotals(ctx context.Context, userID string, from, to time.Time) (income, expense decimal.Decimal, err error)

	// GetCategoryAggregation returns the per-category net signed amount and
	// transaction count for a user's transactions in [from, to], optionally
	// restricted to one account.
	GetCategoryAggregation(ctx context.Context, userID string, from, to time.Time, accountID *string) (map[string]CategoryAggregationRow, error)
}

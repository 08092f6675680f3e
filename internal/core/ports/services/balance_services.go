package services

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// BalanceSvc is the balance engine: point-in-time and historical balances
// derived from the transaction ledger through the monthly snapshot cache.
//
// Every operation resolves an entire batch of accounts in a bounded number of
// store calls, independent of account count and date-range length. Operations
// always receive concrete dates; "as of today" defaults are resolved by the
// HTTP boundary so the engine stays deterministic.
type BalanceSvc interface {
	// GetTotalBalance returns the user's total balance across all active
	// accounts as of a date, converted to baseCurrency.
	GetTotalBalance(ctx context.Context, userID string, asOf time.Time, baseCurrency string) (decimal.Decimal, error)

	// GetAccountsBalance returns per-account balances as of a date (native and
	// converted) along with the converted total.
	GetAccountsBalance(ctx context.Context, userID string, asOf time.Time, baseCurrency string) ([]domain.AccountBalance, decimal.Decimal, error)

	// GetBalanceHistory returns the ordered balance series between from and to
	// at the requested granularity. Each point carries the cumulative balance
	// as of the end of its bucket; buckets without transactions carry the
	// previous balance forward.
	GetBalanceHistory(ctx context.Context, userID string, from, to time.Time, granularity dates.Granularity, baseCurrency string) ([]domain.BalancePoint, error)

	// GetAccountBalance returns one account's native balance and currency as
	// of a date. The account must belong to the user.
	GetAccountBalance(ctx context.Context, userID, accountID string, asOf time.Time) (decimal.Decimal, string, error)
}

// CurrencyConverterSvc converts an amount between currencies as of a date.
// Conversion is a read-time presentation concern: implementations must be
// deterministic for a fixed asOf and must fail (ErrConversion) rather than
// fall back to an implicit 1:1 rate.
type CurrencyConverterSvc interface {
	Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error)
}

// SnapshotInvalidator is the hook the transaction service calls inside its own
// write transaction whenever a mutation changes historical balances. It
// deletes every snapshot for the account from the first day of the effective
// date's month onward, forcing lazy recomputation on the next read. A hook
// failure must abort the mutation that triggered it.
type SnapshotInvalidator interface {
	InvalidateFrom(ctx context.Context, tx pgx.Tx, accountID string, effectiveDate time.Time) error
}

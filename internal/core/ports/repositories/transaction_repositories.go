package repositories

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// LedgerReader exposes the signed-amount views of the transaction table that
// the balance engine consumes. All methods issue one query regardless of how
// many accounts are requested; soft-deleted transactions are excluded.
type LedgerReader interface {
	// SumSignedAmountsUntil returns the net signed sum per account for
	// transactions with transaction_date < before.
	SumSignedAmountsUntil(ctx context.Context, accountIDs []string, before time.Time) (map[string]decimal.Decimal, error)

	// SumSignedAmountsInRange returns the net signed sum for one account for
	// transactions with from <= transaction_date <= to.
	SumSignedAmountsInRange(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error)

	// FindLedgerEntriesInRange returns (account, date, signed amount) rows for
	// all requested accounts with from <= transaction_date <= to, ordered by
	// transaction_date ascending.
	FindLedgerEntriesInRange(ctx context.Context, accountIDs []string, from, to time.Time) ([]domain.LedgerEntry, error)
}

// TransactionSearchParams carries the optional filters and the cursor for
// transaction list queries.
type TransactionSearchParams struct {
	AccountID  *string
	CategoryID *string
	TagID      *string
	Type       *domain.TransactionType
	DateFrom   *time.Time
	DateTo     *time.Time
	AmountMin  *decimal.Decimal
	AmountMax  *decimal.Decimal
	Limit      int
	NextToken  string
}

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction, including its tag links.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves a user's transactions matching the search
	// params, ordered by (transaction_date DESC, created_at DESC,
	// transaction_id DESC), with an opaque cursor for the next page.
	ListTransactions(ctx context.Context, userID string, params TransactionSearchParams) ([]domain.Transaction, string, error)
}

// TransactionWriter defines write operations for transaction data. The
// mutation methods run on a caller-supplied pgx.Tx so the snapshot
// invalidation hook joins the same transaction.
type TransactionWriter interface {
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, now time.Time) error

	// ReplaceTransactionTagsInTx resets the tag links for a transaction.
	ReplaceTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID string, tagIDs []string) error
}

// TransactionRepository combines all transaction repository interfaces.
type TransactionRepository interface {
	LedgerReader
	TransactionReader
	TransactionWriter
	TransactionManager
}

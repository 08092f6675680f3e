package repositories

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// BalanceSnapshotReader defines the set-based lookups the balance engine
// needs. Every method resolves a whole batch of accounts in one query;
// none of them may be called per-account in a loop.
type BalanceSnapshotReader interface {
	// FindLatestOnOrBefore returns, per account, the most recent snapshot with
	// snapshot_date <= asOf. Accounts without one are absent from the map.
	FindLatestOnOrBefore(ctx context.Context, accountIDs []string, asOf time.Time) (map[string]domain.BalanceSnapshot, error)

	// FindLatestBefore returns, per account, the most recent snapshot with
	// snapshot_date strictly before the given date. Used for chaining a new
	// month-start snapshot off an earlier one.
	FindLatestBefore(ctx context.Context, accountIDs []string, before time.Time) (map[string]domain.BalanceSnapshot, error)

	// FindAtDate returns, per account, the snapshot at exactly the given date,
	// used to detect an existing month-start snapshot before inserting one.
	FindAtDate(ctx context.Context, accountIDs []string, on time.Time) (map[string]domain.BalanceSnapshot, error)
}

// BalanceSnapshotWriter defines snapshot write operations.
type BalanceSnapshotWriter interface {
	// SaveSnapshots batch-inserts snapshots. Concurrent readers may race to
	// create the same (account_id, snapshot_date) row; implementations must
	// absorb the unique-constraint collision (insert-or-ignore) so duplicates
	// never accumulate and no error surfaces. Both computations produce the
	// same balance, so dropping the loser is safe.
	SaveSnapshots(ctx context.Context, snapshots []domain.BalanceSnapshot) error

	// DeleteFrom deletes all snapshots for the account with
	// snapshot_date >= fromDate.
	DeleteFrom(ctx context.Context, accountID string, fromDate time.Time) error

	// DeleteFromInTx is DeleteFrom running on the caller's transaction. The
	// invalidation hook uses it so a transaction mutation and its snapshot
	// invalidation commit or roll back together.
	DeleteFromInTx(ctx context.Context, tx pgx.Tx, accountID string, fromDate time.Time) error
}

// BalanceSnapshotRepository combines all snapshot repository interfaces.
type BalanceSnapshotRepository interface {
	BalanceSnapshotReader
	BalanceSnapshotWriter
}

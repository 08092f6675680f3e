package pgsql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	"github.com/finkeeper/personal_finance_app/internal/models"
)

type PgxBalanceSnapshotRepository struct {
	db *pgxpool.Pool
}

func newPgxBalanceSnapshotRepository(db *pgxpool.Pool) portsrepo.BalanceSnapshotRepository {
	return &PgxBalanceSnapshotRepository{db: db}
}

var _ portsrepo.BalanceSnapshotRepository = (*PgxBalanceSnapshotRepository)(nil)

func toDomainSnapshot(m models.BalanceSnapshot) domain.BalanceSnapshot {
	return domain.BalanceSnapshot{
		SnapshotID:   m.SnapshotID,
		AccountID:    m.AccountID,
		CurrencyCode: m.CurrencyCode,
		SnapshotDate: m.SnapshotDate,
		Balance:      m.Balance,
		CreatedAt:    m.CreatedAt,
	}
}

const snapshotColumns = `snapshot_id, account_id, currency_code, snapshot_date, balance, created_at`

// queryLatestPerAccount runs a DISTINCT ON query returning the newest snapshot
// per account matching the date condition.
func (r *PgxBalanceSnapshotRepository) queryLatestPerAccount(ctx context.Context, accountIDs []string, dateCond string, dateArg time.Time) (map[string]domain.BalanceSnapshot, error) {
	result := make(map[string]domain.BalanceSnapshot, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `
        SELECT DISTINCT ON (account_id) ` + snapshotColumns + `
        FROM balance_snapshots
        WHERE account_id = ANY($1) AND snapshot_date ` + dateCond + ` $2
        ORDER BY account_id, snapshot_date DESC;
    `
	rows, err := r.db.Query(ctx, query, accountIDs, dateArg)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m models.BalanceSnapshot
		if err := rows.Scan(&m.SnapshotID, &m.AccountID, &m.CurrencyCode, &m.SnapshotDate, &m.Balance, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		result[m.AccountID] = toDomainSnapshot(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot rows: %w", err)
	}
	return result, nil
}

func (r *PgxBalanceSnapshotRepository) FindLatestOnOrBefore(ctx context.Context, accountIDs []string, asOf time.Time) (map[string]domain.BalanceSnapshot, error) {
	return r.queryLatestPerAccount(ctx, accountIDs, "<=", asOf)
}

func (r *PgxBalanceSnapshotRepository) FindLatestBefore(ctx context.Context, accountIDs []string, before time.Time) (map[string]domain.BalanceSnapshot, error) {
	return r.queryLatestPerAccount(ctx, accountIDs, "<", before)
}

func (r *PgxBalanceSnapshotRepository) FindAtDate(ctx context.Context, accountIDs []string, on time.Time) (map[string]domain.BalanceSnapshot, error) {
	return r.queryLatestPerAccount(ctx, accountIDs, "=", on)
}

// SaveSnapshots batch-inserts snapshots in one statement. A concurrent reader
// may have inserted the same (account_id, snapshot_date) row already; both
// computed the same balance, so the collision is dropped.
func (r *PgxBalanceSnapshotRepository) SaveSnapshots(ctx context.Context, snapshots []domain.BalanceSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	placeholders := make([]string, len(snapshots))
	args := make([]interface{}, 0, len(snapshots)*6)
	for i, snap := range snapshots {
		base := i * 6
		placeholders[i] = fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5, base+6)
		args = append(args, snap.SnapshotID, snap.AccountID, snap.CurrencyCode, snap.SnapshotDate, snap.Balance, snap.CreatedAt)
	}

	query := `
        INSERT INTO balance_snapshots (snapshot_id, account_id, currency_code, snapshot_date, balance, created_at)
        VALUES ` + strings.Join(placeholders, ", ") + `
        ON CONFLICT (account_id, snapshot_date) DO NOTHING;
    `
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save snapshots: %w", err)
	}
	return nil
}

func (r *PgxBalanceSnapshotRepository) DeleteFrom(ctx context.Context, accountID string, fromDate time.Time) error {
	query := `DELETE FROM balance_snapshots WHERE account_id = $1 AND snapshot_date >= $2;`
	if _, err := r.db.Exec(ctx, query, accountID, fromDate); err != nil {
		return fmt.Errorf("failed to delete snapshots for account %s: %w", accountID, err)
	}
	return nil
}

func (r *PgxBalanceSnapshotRepository) DeleteFromInTx(ctx context.Context, tx pgx.Tx, accountID string, fromDate time.Time) error {
	query := `DELETE FROM balance_snapshots WHERE account_id = $1 AND snapshot_date >= $2;`
	if _, err := tx.Exec(ctx, query, accountID, fromDate); err != nil {
		return fmt.Errorf("failed to delete snapshots for account %s: %w", accountID, err)
	}
	return nil
}

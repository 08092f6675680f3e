package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
)

type PgxReportingRepository struct {
	db *pgxpool.Pool
}

func newPgxReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) GetCashflowData(ctx context.Context, userID string, from, to time.Time, bucket string) ([]domain.CashflowPoint, error) {
	if bucket != "day" && bucket != "month" {
		return nil, fmt.Errorf("unsupported cashflow bucket %q", bucket)
	}

	query := `
        SELECT date_trunc('` + bucket + `', transaction_date) AS bucket_start,
               COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'INCOME'), 0) AS income,
               COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'EXPENSE'), 0) AS expense
        FROM transactions
        WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date <= $3 AND is_deleted = FALSE
        GROUP BY bucket_start
        ORDER BY bucket_start ASC;
    `
	rows, err := r.db.Query(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query cashflow data: %w", err)
	}
	defer rows.Close()

	points := []domain.CashflowPoint{}
	for rows.Next() {
		var p domain.CashflowPoint
		if err := rows.Scan(&p.BucketStart, &p.Income, &p.Expense); err != nil {
			return nil, fmt.Errorf("failed to scan cashflow row: %w", err)
		}
		p.Net = p.Income.Sub(p.Expense)
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cashflow rows: %w", err)
	}
	return points, nil
}

func (r *PgxReportingRepository) GetPeriodTotals(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'INCOME'), 0) AS income,
               COALESCE(SUM(amount) FILTER (WHERE transaction_type = 'EXPENSE'), 0) AS expense
        FROM transactions
        WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date <= $3 AND is_deleted = FALSE;
    `
	var income, expense decimal.Decimal
	if err := r.db.QueryRow(ctx, query, userID, from, to).Scan(&income, &expense); err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("failed to query period totals: %w", err)
	}
	return income, expense, nil
}

func (r *PgxReportingRepository) GetCategoryAggregation(ctx context.Context, userID string, from, to time.Time, accountID *string) (map[string]portsrepo.CategoryAggregationRow, error) {
	query := `
        SELECT category_id,
               COALESCE(SUM(CASE WHEN transaction_type = 'EXPENSE' THEN -amount ELSE amount END), 0) AS net_amount,
               COUNT(*) AS txn_count
        FROM transactions
        WHERE user_id = $1 AND transaction_date >= $2 AND transaction_date <= $3
          AND is_deleted = FALSE AND category_id IS NOT NULL
    `
	args := []interface{}{userID, from, to}
	if accountID != nil {
		args = append(args, *accountID)
		query += " AND account_id = $4"
	}
	query += " GROUP BY category_id;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query category aggregation: %w", err)
	}
	defer rows.Close()

	result := make(map[string]portsrepo.CategoryAggregationRow)
	for rows.Next() {
		var row portsrepo.CategoryAggregationRow
		if err := rows.Scan(&row.CategoryID, &row.NetSignedAmount, &row.TransactionCount); err != nil {
			return nil, fmt.Errorf("failed to scan category aggregation row: %w", err)
		}
		result[row.CategoryID] = row
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category aggregation rows: %w", err)
	}
	return result, nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	"github.com/finkeeper/personal_finance_app/internal/models"
)

type PgxBudgetRepository struct {
	db *pgxpool.Pool
}

func newPgxBudgetRepository(db *pgxpool.Pool) portsrepo.BudgetRepository {
	return &PgxBudgetRepository{db: db}
}

var _ portsrepo.BudgetRepository = (*PgxBudgetRepository)(nil)

func toDomainBudget(m models.Budget, categoryIDs []string) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		UserID:       m.UserID,
		AccountID:    m.AccountID,
		Name:         m.Name,
		Recurrence:   domain.BudgetRecurrence(m.Recurrence),
		StartDate:    m.StartDate,
		EndDate:      m.EndDate,
		Amount:       m.Amount,
		CurrencyCode: m.CurrencyCode,
		CategoryIDs:  categoryIDs,
		IsDeleted:    m.IsDeleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const budgetColumns = `budget_id, user_id, account_id, name, recurrence, start_date, end_date, amount, currency_code, is_deleted, created_at, last_updated_at`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(&m.BudgetID, &m.UserID, &m.AccountID, &m.Name, &m.Recurrence, &m.StartDate, &m.EndDate, &m.Amount, &m.CurrencyCode, &m.IsDeleted, &m.CreatedAt, &m.LastUpdatedAt)
	return m, err
}

func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        INSERT INTO budgets (budget_id, user_id, account_id, name, recurrence, start_date, end_date, amount, currency_code, is_deleted, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err = tx.Exec(ctx, query,
		budget.BudgetID, budget.UserID, budget.AccountID, budget.Name, string(budget.Recurrence),
		budget.StartDate, budget.EndDate, budget.Amount, budget.CurrencyCode, budget.IsDeleted,
		budget.CreatedAt, budget.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", mapUniqueViolation(err))
	}
	if err := replaceBudgetCategories(ctx, tx, budget.BudgetID, budget.CategoryIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.db.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}

	links, err := r.findBudgetCategories(ctx, []string{budgetID})
	if err != nil {
		return nil, err
	}
	d := toDomainBudget(m, links[budgetID])
	return &d, nil
}

func (r *PgxBudgetRepository) FindBudgetsByUserID(ctx context.Context, userID string) ([]domain.Budget, error) {
	query := `
        SELECT ` + budgetColumns + `
        FROM budgets
        WHERE user_id = $1 AND is_deleted = FALSE
        ORDER BY start_date DESC, name ASC;
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.Budget
	ids := []string{}
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		ms = append(ms, m)
		ids = append(ids, m.BudgetID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget rows: %w", err)
	}

	links, err := r.findBudgetCategories(ctx, ids)
	if err != nil {
		return nil, err
	}
	budgets := make([]domain.Budget, 0, len(ms))
	for _, m := range ms {
		budgets = append(budgets, toDomainBudget(m, links[m.BudgetID]))
	}
	return budgets, nil
}

func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
        UPDATE budgets
        SET account_id = $2, name = $3, recurrence = $4, start_date = $5, end_date = $6, amount = $7, last_updated_at = $8
        WHERE budget_id = $1 AND is_deleted = FALSE;
    `
	tag, err := tx.Exec(ctx, query,
		budget.BudgetID, budget.AccountID, budget.Name, string(budget.Recurrence),
		budget.StartDate, budget.EndDate, budget.Amount, budget.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget %s: %w", budget.BudgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	if err := replaceBudgetCategories(ctx, tx, budget.BudgetID, budget.CategoryIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string, now time.Time) error {
	query := `
        UPDATE budgets
        SET is_deleted = TRUE, last_updated_at = $2
        WHERE budget_id = $1 AND is_deleted = FALSE;
    `
	tag, err := r.db.Exec(ctx, query, budgetID, now)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxBudgetRepository) SumExpensesByCurrency(ctx context.Context, userID string, accountID *string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error) {
	query := `
        SELECT currency_code, COALESCE(SUM(amount), 0)
        FROM transactions
        WHERE user_id = $1
          AND transaction_type = 'EXPENSE'
          AND is_deleted = FALSE
          AND transaction_date >= $2
          AND transaction_date <= $3
          AND ($4::varchar IS NULL OR account_id = $4)
          AND ($5::varchar[] IS NULL OR category_id = ANY($5))
        GROUP BY currency_code;
    `
	var categories []string
	if len(categoryIDs) > 0 {
		categories = categoryIDs
	}
	rows, err := r.db.Query(ctx, query, userID, from, to, accountID, categories)
	if err != nil {
		return nil, fmt.Errorf("failed to sum expenses for user %s: %w", userID, err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal)
	for rows.Next() {
		var currency string
		var amount decimal.Decimal
		if err := rows.Scan(&currency, &amount); err != nil {
			return nil, fmt.Errorf("failed to scan expense sum row: %w", err)
		}
		sums[currency] = amount
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense sum rows: %w", err)
	}
	return sums, nil
}

// findBudgetCategories loads category links for a set of budgets in one query.
func (r *PgxBudgetRepository) findBudgetCategories(ctx context.Context, budgetIDs []string) (map[string][]string, error) {
	result := make(map[string][]string, len(budgetIDs))
	if len(budgetIDs) == 0 {
		return result, nil
	}

	query := `SELECT budget_id, category_id FROM budget_categories WHERE budget_id = ANY($1);`
	rows, err := r.db.Query(ctx, query, budgetIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var budgetID, categoryID string
		if err := rows.Scan(&budgetID, &categoryID); err != nil {
			return nil, fmt.Errorf("failed to scan budget category: %w", err)
		}
		result[budgetID] = append(result[budgetID], categoryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget categories: %w", err)
	}
	return result, nil
}

func replaceBudgetCategories(ctx context.Context, tx pgx.Tx, budgetID string, categoryIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM budget_categories WHERE budget_id = $1;`, budgetID); err != nil {
		return fmt.Errorf("failed to clear budget categories: %w", err)
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(categoryIDs))
	for i, categoryID := range categoryIDs {
		rows[i] = []interface{}{budgetID, categoryID}
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"budget_categories"}, []string{"budget_id", "category_id"}, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to insert budget categories: %w", err)
	}
	return nil
}

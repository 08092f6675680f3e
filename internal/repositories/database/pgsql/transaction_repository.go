package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	"github.com/finkeeper/personal_finance_app/internal/models"
	"github.com/finkeeper/personal_finance_app/internal/utils/pagination"
)

// signedAmountExpr computes the signed amount of a transaction row in SQL:
// income counts positive, expense negative. All balance math goes through
// this expression so the sign convention lives in exactly one place.
const signedAmountExpr = `CASE WHEN transaction_type = 'EXPENSE' THEN -amount ELSE amount END`

type PgxTransactionRepository struct {
	BaseRepository
	db *pgxpool.Pool
}

func newPgxTransactionRepository(db *pgxpool.Pool) portsrepo.TransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: db}, db: db}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		AccountID:       d.AccountID,
		CategoryID:      d.CategoryID,
		TransactionType: models.TransactionType(d.TransactionType),
		Amount:          d.Amount,
		CurrencyCode:    d.CurrencyCode,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		IsDeleted:       d.IsDeleted,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		AccountID:       m.AccountID,
		CategoryID:      m.CategoryID,
		TransactionType: domain.TransactionType(m.TransactionType),
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		IsDeleted:       m.IsDeleted,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

const transactionColumns = `transaction_id, user_id, account_id, category_id, transaction_type, amount, currency_code, transaction_date, description, is_deleted, created_at, last_updated_at`

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.AccountID,
		&m.CategoryID,
		&m.TransactionType,
		&m.Amount,
		&m.CurrencyCode,
		&m.TransactionDate,
		&m.Description,
		&m.IsDeleted,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// --- LedgerReader ---

func (r *PgxTransactionRepository) SumSignedAmountsUntil(ctx context.Context, accountIDs []string, before time.Time) (map[string]decimal.Decimal, error) {
	result := make(map[string]decimal.Decimal, len(accountIDs))
	if len(accountIDs) == 0 {
		return result, nil
	}

	query := `
        SELECT account_id, COALESCE(SUM(` + signedAmountExpr + `), 0)
        FROM transactions
        WHERE account_id = ANY($1) AND transaction_date < $2 AND is_deleted = FALSE
        GROUP BY account_id;
    `
	rows, err := r.db.Query(ctx, query, accountIDs, before)
	if err != nil {
		return nil, fmt.Errorf("failed to sum signed amounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var accountID string
		var sum decimal.Decimal
		if err := rows.Scan(&accountID, &sum); err != nil {
			return nil, fmt.Errorf("failed to scan signed amount sum: %w", err)
		}
		result[accountID] = sum
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating signed amount sums: %w", err)
	}
	return result, nil
}

func (r *PgxTransactionRepository) SumSignedAmountsInRange(ctx context.Context, accountID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
        SELECT COALESCE(SUM(` + signedAmountExpr + `), 0)
        FROM transactions
        WHERE account_id = $1 AND transaction_date >= $2 AND transaction_date <= $3 AND is_deleted = FALSE;
    `
	var sum decimal.Decimal
	if err := r.db.QueryRow(ctx, query, accountID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum signed amounts in range: %w", err)
	}
	return sum, nil
}

func (r *PgxTransactionRepository) FindLedgerEntriesInRange(ctx context.Context, accountIDs []string, from, to time.Time) ([]domain.LedgerEntry, error) {
	if len(accountIDs) == 0 {
		return []domain.LedgerEntry{}, nil
	}

	query := `
        SELECT account_id, transaction_date, ` + signedAmountExpr + `
        FROM transactions
        WHERE account_id = ANY($1) AND transaction_date >= $2 AND transaction_date <= $3 AND is_deleted = FALSE
        ORDER BY transaction_date ASC, created_at ASC, transaction_id ASC;
    `
	rows, err := r.db.Query(ctx, query, accountIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.LedgerEntry{}
	for rows.Next() {
		var e domain.LedgerEntry
		if err := rows.Scan(&e.AccountID, &e.TransactionDate, &e.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ledger entries: %w", err)
	}
	return entries, nil
}

// --- TransactionReader ---

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.db.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}

	d := toDomainTransaction(m)
	tagsByTxn, err := r.findTagIDs(ctx, []string{transactionID})
	if err != nil {
		return nil, err
	}
	d.TagIDs = tagsByTxn[transactionID]
	return &d, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, params portsrepo.TransactionSearchParams) ([]domain.Transaction, string, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 50
	}

	args := []interface{}{userID}
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE user_id = $1 AND is_deleted = FALSE`

	addArg := func(clause string, value interface{}) {
		args = append(args, value)
		query += fmt.Sprintf(clause, strconv.Itoa(len(args)))
	}

	if params.AccountID != nil {
		addArg(" AND account_id = $%s", *params.AccountID)
	}
	if params.CategoryID != nil {
		addArg(" AND category_id = $%s", *params.CategoryID)
	}
	if params.Type != nil {
		addArg(" AND transaction_type = $%s", string(*params.Type))
	}
	if params.DateFrom != nil {
		addArg(" AND transaction_date >= $%s", *params.DateFrom)
	}
	if params.DateTo != nil {
		addArg(" AND transaction_date <= $%s", *params.DateTo)
	}
	if params.AmountMin != nil {
		addArg(" AND amount >= $%s", *params.AmountMin)
	}
	if params.AmountMax != nil {
		addArg(" AND amount <= $%s", *params.AmountMax)
	}
	if params.TagID != nil {
		addArg(" AND EXISTS (SELECT 1 FROM transaction_tags tt WHERE tt.transaction_id = transactions.transaction_id AND tt.tag_id = $%s)", *params.TagID)
	}

	if params.NextToken != "" {
		cursorDate, cursorCreatedAt, cursorID, err := pagination.DecodeTransactionToken(params.NextToken)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursorDate, cursorCreatedAt, cursorID)
		query += fmt.Sprintf(" AND (transaction_date, created_at, transaction_id) < ($%d, $%d, $%d)", len(args)-2, len(args)-1, len(args))
	}

	args = append(args, limit+1)
	query += fmt.Sprintf(" ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC LIMIT $%d;", len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, "", fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, "", fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("error iterating transaction rows: %w", err)
	}

	nextToken := ""
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[limit-1]
		nextToken = pagination.EncodeTransactionToken(last.TransactionDate, last.CreatedAt, last.TransactionID)
	}

	if len(txns) > 0 {
		ids := make([]string, len(txns))
		for i := range txns {
			ids[i] = txns[i].TransactionID
		}
		tagsByTxn, err := r.findTagIDs(ctx, ids)
		if err != nil {
			return nil, "", err
		}
		for i := range txns {
			txns[i].TagIDs = tagsByTxn[txns[i].TransactionID]
		}
	}
	return txns, nextToken, nil
}

// findTagIDs loads tag links for a batch of transactions in one query.
func (r *PgxTransactionRepository) findTagIDs(ctx context.Context, transactionIDs []string) (map[string][]string, error) {
	query := `SELECT transaction_id, tag_id FROM transaction_tags WHERE transaction_id = ANY($1) ORDER BY tag_id ASC;`
	rows, err := r.db.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction tags: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]string)
	for rows.Next() {
		var txnID, tagID string
		if err := rows.Scan(&txnID, &tagID); err != nil {
			return nil, fmt.Errorf("failed to scan transaction tag: %w", err)
		}
		result[txnID] = append(result[txnID], tagID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction tags: %w", err)
	}
	return result, nil
}

// --- TransactionWriter ---

func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
        INSERT INTO transactions (transaction_id, user_id, account_id, category_id, transaction_type, amount, currency_code, transaction_date, description, is_deleted, created_at, last_updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
    `
	_, err := tx.Exec(ctx, query,
		m.TransactionID, m.UserID, m.AccountID, m.CategoryID, m.TransactionType, m.Amount, m.CurrencyCode, m.TransactionDate, m.Description, m.IsDeleted, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save transaction: %w", mapUniqueViolation(err))
	}
	return nil
}

func (r *PgxTransactionRepository) UpdateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	query := `
        UPDATE transactions
        SET account_id = $2, category_id = $3, transaction_type = $4, amount = $5, currency_code = $6, transaction_date = $7, description = $8, last_updated_at = $9
        WHERE transaction_id = $1 AND is_deleted = FALSE;
    `
	tag, err := tx.Exec(ctx, query,
		m.TransactionID, m.AccountID, m.CategoryID, m.TransactionType, m.Amount, m.CurrencyCode, m.TransactionDate, m.Description, m.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransactionInTx(ctx context.Context, tx pgx.Tx, transactionID string, now time.Time) error {
	query := `
        UPDATE transactions
        SET is_deleted = TRUE, last_updated_at = $2
        WHERE transaction_id = $1 AND is_deleted = FALSE;
    `
	tag, err := tx.Exec(ctx, query, transactionID, now)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxTransactionRepository) ReplaceTransactionTagsInTx(ctx context.Context, tx pgx.Tx, transactionID string, tagIDs []string) error {
	if _, err := tx.Exec(ctx, `DELETE FROM transaction_tags WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to clear transaction tags: %w", err)
	}
	if len(tagIDs) == 0 {
		return nil
	}

	rows := make([][]interface{}, len(tagIDs))
	for i, tagID := range tagIDs {
		rows[i] = []interface{}{transactionID, tagID}
	}
	_, err := tx.CopyFrom(ctx, pgx.Identifier{"transaction_tags"}, []string{"transaction_id", "tag_id"}, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("failed to insert transaction tags: %w", err)
	}
	return nil
}

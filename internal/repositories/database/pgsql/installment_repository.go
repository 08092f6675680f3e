package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	"github.com/finkeeper/personal_finance_app/internal/models"
)

type PgxInstallmentRepository struct {
	db *pgxpool.Pool
}

func newPgxInstallmentRepository(db *pgxpool.Pool) portsrepo.InstallmentRepository {
	return &PgxInstallmentRepository{db: db}
}

var _ portsrepo.InstallmentRepository = (*PgxInstallmentRepository)(nil)

func toDomainInstallment(m models.Installment) domain.Installment {
	return domain.Installment{
		InstallmentID:     m.InstallmentID,
		TransactionID:     m.TransactionID,
		InstallmentNumber: m.InstallmentNumber,
		Amount:            m.Amount,
		DueDate:           m.DueDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func (r *PgxInstallmentRepository) FindInstallmentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Installment, error) {
	query := `
        SELECT installment_id, transaction_id, installment_number, amount, due_date, created_at, last_updated_at
        FROM installments
        WHERE transaction_id = $1
        ORDER BY installment_number ASC;
    `
	rows, err := r.db.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query installments for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	installments := []domain.Installment{}
	for rows.Next() {
		var m models.Installment
		if err := rows.Scan(&m.InstallmentID, &m.TransactionID, &m.InstallmentNumber, &m.Amount, &m.DueDate, &m.CreatedAt, &m.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan installment row: %w", err)
		}
		installments = append(installments, toDomainInstallment(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating installment rows: %w", err)
	}
	return installments, nil
}

func (r *PgxInstallmentRepository) ReplaceInstallments(ctx context.Context, transactionID string, installments []domain.Installment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM installments WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to clear installments: %w", err)
	}
	if len(installments) > 0 {
		rows := make([][]interface{}, len(installments))
		for i, inst := range installments {
			rows[i] = []interface{}{inst.InstallmentID, inst.TransactionID, inst.InstallmentNumber, inst.Amount, inst.DueDate, inst.CreatedAt, inst.LastUpdatedAt}
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{"installments"},
			[]string{"installment_id", "transaction_id", "installment_number", "amount", "due_date", "created_at", "last_updated_at"},
			pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("failed to insert installments: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *PgxInstallmentRepository) DeleteInstallmentsByTransactionID(ctx context.Context, transactionID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM installments WHERE transaction_id = $1;`, transactionID); err != nil {
		return fmt.Errorf("failed to delete installments for transaction %s: %w", transactionID, err)
	}
	return nil
}

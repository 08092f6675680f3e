package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx-backed repositories over one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		UserRepo:         newPgxUserRepository(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		TransactionRepo:  newPgxTransactionRepository(dbPool),
		CategoryRepo:     newPgxCategoryRepository(dbPool),
		TagRepo:          newPgxTagRepository(dbPool),
		BudgetRepo:       newPgxBudgetRepository(dbPool),
		InstallmentRepo:  newPgxInstallmentRepository(dbPool),
		SnapshotRepo:     newPgxBalanceSnapshotRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
	}
}

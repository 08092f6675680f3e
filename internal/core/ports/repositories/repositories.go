package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	UserRepo         UserRepository
	AccountRepo      AccountRepository
	TransactionRepo  TransactionRepository
	CategoryRepo     CategoryRepository
	TagRepo          TagRepository
	BudgetRepo       BudgetRepository
	InstallmentRepo  InstallmentRepository
	SnapshotRepo     BalanceSnapshotRepository
	ExchangeRateRepo ExchangeRateRepository
	ReportingRepo    ReportingRepository
}

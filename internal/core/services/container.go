package services

import (
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/pkg/config"
)

// NewServiceContainer wires all services with their repository dependencies.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)
	container.Auth = NewAuthService(container.User, container.Token)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Tag = NewTagService(repos.TagRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo)

	converter := NewCurrencyConverterService(repos.ExchangeRateRepo)
	container.Balance = NewBalanceService(repos.AccountRepo, repos.SnapshotRepo, repos.TransactionRepo, converter)

	invalidator := NewSnapshotInvalidatorService(repos.SnapshotRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo, repos.TagRepo, invalidator)

	container.Budget = NewBudgetService(repos.BudgetRepo, repos.AccountRepo, repos.CategoryRepo, converter)
	container.Installment = NewInstallmentService(repos.InstallmentRepo, repos.TransactionRepo)

	container.Reporting = NewReportingService(repos.ReportingRepo, repos.CategoryRepo)

	return container
}

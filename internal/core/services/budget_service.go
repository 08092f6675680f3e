package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// budgetService implements the BudgetSvcFacade interface.
//
// Budgets only ever track expense spend. The status computation runs one
// grouped sum per request and converts foreign-currency spend through the
// same converter the balance engine uses.
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepository
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryRepository
	converter    portssvc.CurrencyConverterSvc
	now          func() time.Time
}

// NewBudgetService creates a new budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepository, accountRepo portsrepo.AccountReader, categoryRepo portsrepo.CategoryRepository, converter portssvc.CurrencyConverterSvc) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   budgetRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		converter:    converter,
		now:          time.Now,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseOptionalDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if endDate != nil && endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
	}
	if req.AccountID != nil {
		if err := s.validateAccount(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
	}
	if err := s.validateBudgetCategories(ctx, userID, req.CategoryIDs); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		UserID:       userID,
		AccountID:    req.AccountID,
		Name:         req.Name,
		Recurrence:   req.Recurrence,
		StartDate:    startDate,
		EndDate:      endDate,
		Amount:       req.Amount,
		CurrencyCode: req.CurrencyCode,
		CategoryIDs:  req.CategoryIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("user_id", userID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != userID {
		return nil, fmt.Errorf("%w: budget %s does not belong to user", apperrors.ErrForbidden, budgetID)
	}
	if budget.IsDeleted {
		return nil, fmt.Errorf("%w: budget %s", apperrors.ErrNotFound, budgetID)
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.FindBudgetsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, err
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.AccountID != nil {
		if err := s.validateAccount(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
		budget.AccountID = req.AccountID
	}
	if req.Recurrence != nil {
		budget.Recurrence = *req.Recurrence
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, err
		}
		budget.StartDate = startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, err
		}
		budget.EndDate = &endDate
	}
	if budget.EndDate != nil && budget.EndDate.Before(budget.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", apperrors.ErrValidation)
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}
	if req.CategoryIDs != nil {
		if err := s.validateBudgetCategories(ctx, userID, *req.CategoryIDs); err != nil {
			return nil, err
		}
		budget.CategoryIDs = *req.CategoryIDs
	}
	budget.LastUpdatedAt = s.now().UTC()

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	if _, err := s.GetBudgetByID(ctx, userID, budgetID); err != nil {
		return err
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID, s.now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

func (s *budgetService) GetBudgetStatus(ctx context.Context, userID string, budgetID string, asOf time.Time) (*domain.BudgetStatus, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}
	asOf = dates.Normalize(asOf)

	from, to := budgetWindow(budget, asOf)
	status := &domain.BudgetStatus{
		Budget:      *budget,
		PeriodStart: from,
		PeriodEnd:   to,
		Spent:       decimal.Zero,
	}
	if !from.After(to) {
		sums, err := s.budgetRepo.SumExpensesByCurrency(ctx, userID, budget.AccountID, budget.CategoryIDs, from, to)
		if err != nil {
			s.LogError(ctx, err, "Failed to sum budget spend", slog.String("budget_id", budgetID))
			return nil, err
		}
		for currency, amount := range sums {
			converted, err := s.converter.Convert(ctx, amount, currency, budget.CurrencyCode, asOf)
			if err != nil {
				return nil, err
			}
			status.Spent = status.Spent.Add(converted)
		}
	}
	status.Remaining = budget.Amount.Sub(status.Spent)
	return status, nil
}

// budgetWindow resolves the spending window containing asOf. Monthly budgets
// cover asOf's calendar month; one-off budgets cover their full span, open
// ended ones up to asOf. Both are clamped to [StartDate, EndDate]. The window
// is empty (from after to) when the budget is not active at asOf.
func budgetWindow(b *domain.Budget, asOf time.Time) (from, to time.Time) {
	switch b.Recurrence {
	case domain.BudgetMonthly:
		from = dates.FirstOfMonth(asOf)
		to = dates.NextMonth(asOf).AddDate(0, 0, -1)
	default:
		from = b.StartDate
		to = asOf
		if b.EndDate != nil {
			to = *b.EndDate
		}
	}
	if from.Before(b.StartDate) {
		from = b.StartDate
	}
	if b.EndDate != nil && to.After(*b.EndDate) {
		to = *b.EndDate
	}
	return from, to
}

func (s *budgetService) validateAccount(ctx context.Context, userID, accountID string) error {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: account %s not found", apperrors.ErrValidation, accountID)
		}
		return err
	}
	if account.UserID != userID {
		return fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrForbidden, accountID)
	}
	if account.IsDeleted {
		return fmt.Errorf("%w: account %s is deleted", apperrors.ErrValidation, accountID)
	}
	return nil
}

// validateBudgetCategories checks every tracked category is the user's and is
// an expense category. Budgets never track income.
func (s *budgetService) validateBudgetCategories(ctx context.Context, userID string, categoryIDs []string) error {
	for _, categoryID := range categoryIDs {
		category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
			}
			return err
		}
		if category.UserID != userID || category.IsDeleted {
			return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, categoryID)
		}
		if category.Type != domain.ExpenseCategory {
			return fmt.Errorf("%w: category %s is not an expense category", apperrors.ErrValidation, categoryID)
		}
	}
	return nil
}

func parseOptionalDate(value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	parsed, err := parseDate(*value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

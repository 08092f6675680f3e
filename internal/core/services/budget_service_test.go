package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/core/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// --- Mock BudgetRepository ---

type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	var budget *domain.Budget
	if args.Get(0) != nil {
		budget = args.Get(0).(*domain.Budget)
	}
	return budget, args.Error(1)
}

func (m *MockBudgetRepository) FindBudgetsByUserID(ctx context.Context, userID string) ([]domain.Budget, error) {
	args := m.Called(ctx, userID)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string, now time.Time) error {
	args := m.Called(ctx, budgetID, now)
	return args.Error(0)
}

func (m *MockBudgetRepository) SumExpensesByCurrency(ctx context.Context, userID string, accountID *string, categoryIDs []string, from, to time.Time) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, userID, accountID, categoryIDs, from, to)
	var sums map[string]decimal.Decimal
	if args.Get(0) != nil {
		sums = args.Get(0).(map[string]decimal.Decimal)
	}
	return sums, args.Error(1)
}

// --- Test Suite ---

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo   *MockBudgetRepository
	accounts         *fakeAccountReader
	mockCategoryRepo *MockCategoryRepository
	converter        *fakeConverter
	service          portssvc.BudgetSvcFacade

	userID string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.userID = "user-1"
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.accounts = newFakeAccountReader(usdAccount("acc-1", suite.userID, "0"))
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.converter = &fakeConverter{rates: map[string]decimal.Decimal{}}
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.accounts, suite.mockCategoryRepo, suite.converter)
}

func monthlyBudget(id, userID, amount string, start time.Time) *domain.Budget {
	return &domain.Budget{
		BudgetID:     id,
		UserID:       userID,
		Name:         "Groceries cap",
		Recurrence:   domain.BudgetMonthly,
		StartDate:    start,
		Amount:       decimal.RequireFromString(amount),
		CurrencyCode: "USD",
	}
}

// --- CreateBudget ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_Success() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-1").Return(&domain.Category{
		CategoryID: "cat-1",
		UserID:     suite.userID,
		Type:       domain.ExpenseCategory,
	}, nil).Once()
	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.UserID == suite.userID &&
			b.Recurrence == domain.BudgetMonthly &&
			b.StartDate.Equal(date(2026, time.March, 1)) &&
			b.EndDate == nil &&
			len(b.CategoryIDs) == 1
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.userID, dto.CreateBudgetRequest{
		Name:         "Groceries cap",
		Recurrence:   domain.BudgetMonthly,
		StartDate:    "2026-03-01",
		Amount:       decimal.RequireFromString("300"),
		CurrencyCode: "USD",
		CategoryIDs:  []string{"cat-1"},
	})

	suite.Require().NoError(err)
	suite.NotEmpty(budget.BudgetID)
	suite.True(budget.Amount.Equal(decimal.RequireFromString("300")))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_NonPositiveAmount() {
	ctx := context.Background()

	_, err := suite.service.CreateBudget(ctx, suite.userID, dto.CreateBudgetRequest{
		Name:         "Bad",
		Recurrence:   domain.BudgetMonthly,
		StartDate:    "2026-03-01",
		Amount:       decimal.Zero,
		CurrencyCode: "USD",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_EndBeforeStart() {
	ctx := context.Background()
	end := "2026-02-01"

	_, err := suite.service.CreateBudget(ctx, suite.userID, dto.CreateBudgetRequest{
		Name:         "Backwards",
		Recurrence:   domain.BudgetOneOff,
		StartDate:    "2026-03-01",
		EndDate:      &end,
		Amount:       decimal.RequireFromString("100"),
		CurrencyCode: "USD",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_IncomeCategoryRejected() {
	ctx := context.Background()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, "cat-salary").Return(&domain.Category{
		CategoryID: "cat-salary",
		UserID:     suite.userID,
		Type:       domain.IncomeCategory,
	}, nil).Once()

	_, err := suite.service.CreateBudget(ctx, suite.userID, dto.CreateBudgetRequest{
		Name:         "Salary cap",
		Recurrence:   domain.BudgetMonthly,
		StartDate:    "2026-03-01",
		Amount:       decimal.RequireFromString("100"),
		CurrencyCode: "USD",
		CategoryIDs:  []string{"cat-salary"},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_OtherUsersAccount() {
	ctx := context.Background()
	suite.accounts.accounts = []domain.Account{usdAccount("acc-other", "someone-else", "0")}
	accountID := "acc-other"

	_, err := suite.service.CreateBudget(ctx, suite.userID, dto.CreateBudgetRequest{
		Name:         "Scoped",
		AccountID:    &accountID,
		Recurrence:   domain.BudgetMonthly,
		StartDate:    "2026-03-01",
		Amount:       decimal.RequireFromString("100"),
		CurrencyCode: "USD",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- GetBudgetByID / delete ---

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_DeletedLooksAbsent() {
	ctx := context.Background()
	deleted := monthlyBudget("bud-1", suite.userID, "100", date(2026, time.January, 1))
	deleted.IsDeleted = true
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(deleted, nil).Once()

	_, err := suite.service.GetBudgetByID(ctx, suite.userID, "bud-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_NotOwned() {
	ctx := context.Background()
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(
		monthlyBudget("bud-1", "someone-else", "100", date(2026, time.January, 1)), nil).Once()

	err := suite.service.DeleteBudget(ctx, suite.userID, "bud-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "DeleteBudget", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateBudget ---

func (suite *BudgetServiceTestSuite) TestUpdateBudget_PartialUpdateKeepsOtherFields() {
	ctx := context.Background()
	existing := monthlyBudget("bud-1", suite.userID, "300", date(2026, time.January, 1))
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(existing, nil).Once()

	newAmount := decimal.RequireFromString("450")
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(b domain.Budget) bool {
		return b.Amount.Equal(newAmount) &&
			b.Name == "Groceries cap" &&
			b.Recurrence == domain.BudgetMonthly
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, suite.userID, "bud-1", dto.UpdateBudgetRequest{Amount: &newAmount})

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

// --- GetBudgetStatus ---

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_MonthlyWindowClampsToBudgetStart() {
	ctx := context.Background()
	budget := monthlyBudget("bud-1", suite.userID, "100", date(2026, time.March, 10))
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCurrency", ctx, suite.userID, (*string)(nil), []string(nil),
		date(2026, time.March, 10), date(2026, time.March, 31)).
		Return(map[string]decimal.Decimal{"USD": decimal.RequireFromString("40")}, nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, suite.userID, "bud-1", date(2026, time.March, 20))

	suite.Require().NoError(err)
	suite.Equal(date(2026, time.March, 10), status.PeriodStart)
	suite.Equal(date(2026, time.March, 31), status.PeriodEnd)
	suite.True(status.Spent.Equal(decimal.RequireFromString("40")), "got %s", status.Spent)
	suite.True(status.Remaining.Equal(decimal.RequireFromString("60")), "got %s", status.Remaining)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_OneOffCoversFullSpan() {
	ctx := context.Background()
	end := date(2026, time.June, 30)
	budget := monthlyBudget("bud-1", suite.userID, "1000", date(2026, time.January, 1))
	budget.Recurrence = domain.BudgetOneOff
	budget.EndDate = &end
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCurrency", ctx, suite.userID, (*string)(nil), []string(nil),
		date(2026, time.January, 1), end).
		Return(map[string]decimal.Decimal{"USD": decimal.RequireFromString("1200")}, nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, suite.userID, "bud-1", date(2026, time.March, 15))

	suite.Require().NoError(err)
	suite.True(status.Remaining.Equal(decimal.RequireFromString("-200")), "got %s", status.Remaining)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_ConvertsForeignSpend() {
	ctx := context.Background()
	budget := monthlyBudget("bud-1", suite.userID, "500", date(2026, time.January, 1))
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCurrency", ctx, suite.userID, (*string)(nil), []string(nil),
		date(2026, time.March, 1), date(2026, time.March, 31)).
		Return(map[string]decimal.Decimal{"EUR": decimal.RequireFromString("100")}, nil).Once()
	suite.converter.rates["EUR->USD"] = decimal.RequireFromString("1.1")

	status, err := suite.service.GetBudgetStatus(ctx, suite.userID, "bud-1", date(2026, time.March, 15))

	suite.Require().NoError(err)
	suite.True(status.Spent.Equal(decimal.RequireFromString("110")), "got %s", status.Spent)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_MissingRateFails() {
	ctx := context.Background()
	budget := monthlyBudget("bud-1", suite.userID, "500", date(2026, time.January, 1))
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(budget, nil).Once()
	suite.mockBudgetRepo.On("SumExpensesByCurrency", ctx, suite.userID, (*string)(nil), []string(nil),
		date(2026, time.March, 1), date(2026, time.March, 31)).
		Return(map[string]decimal.Decimal{"GBP": decimal.RequireFromString("10")}, nil).Once()

	_, err := suite.service.GetBudgetStatus(ctx, suite.userID, "bud-1", date(2026, time.March, 15))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConversion)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetStatus_EndedBudgetSkipsQuery() {
	ctx := context.Background()
	end := date(2026, time.March, 31)
	budget := monthlyBudget("bud-1", suite.userID, "100", date(2026, time.January, 1))
	budget.EndDate = &end
	suite.mockBudgetRepo.On("FindBudgetByID", ctx, "bud-1").Return(budget, nil).Once()

	status, err := suite.service.GetBudgetStatus(ctx, suite.userID, "bud-1", date(2026, time.April, 10))

	suite.Require().NoError(err)
	suite.True(status.Spent.IsZero())
	suite.True(status.Remaining.Equal(budget.Amount))
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SumExpensesByCurrency",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBudgetService(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}

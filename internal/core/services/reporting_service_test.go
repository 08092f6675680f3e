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
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/core/services"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// --- Mock ReportingRepository ---

type MockReportingRepository struct {
	mock.Mock
}

func (m *MockReportingRepository) GetCashflowData(ctx context.Context, userID string, from, to time.Time, bucket string) ([]domain.CashflowPoint, error) {
	args := m.Called(ctx, userID, from, to, bucket)
	var rows []domain.CashflowPoint
	if args.Get(0) != nil {
		rows = args.Get(0).([]domain.CashflowPoint)
	}
	return rows, args.Error(1)
}

func (m *MockReportingRepository) GetPeriodTotals(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, decimal.Decimal, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).(decimal.Decimal), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockReportingRepository) GetCategoryAggregation(ctx context.Context, userID string, from, to time.Time, accountID *string) (map[string]portsrepo.CategoryAggregationRow, error) {
	args := m.Called(ctx, userID, from, to, accountID)
	var rows map[string]portsrepo.CategoryAggregationRow
	if args.Get(0) != nil {
		rows = args.Get(0).(map[string]portsrepo.CategoryAggregationRow)
	}
	return rows, args.Error(1)
}

// --- Test Suite ---

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	mockCategoryRepo  *MockCategoryRepository
	service           portssvc.ReportingSvc
	userID            string
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo, suite.mockCategoryRepo)
	suite.userID = "user-1"
}

// --- GetCashflow ---

func (suite *ReportingServiceTestSuite) TestGetCashflow_InvalidRange() {
	ctx := context.Background()

	_, err := suite.service.GetCashflow(ctx, suite.userID, date(2026, time.March, 10), date(2026, time.March, 1), dates.Monthly)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRange)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "GetCashflowData", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestGetCashflow_MonthlyFillsEmptyMonths() {
	ctx := context.Background()
	from := date(2026, time.January, 1)
	to := date(2026, time.March, 31)

	suite.mockReportingRepo.On("GetCashflowData", ctx, suite.userID, from, to, "month").Return([]domain.CashflowPoint{
		{BucketStart: date(2026, time.January, 1), Income: decimal.RequireFromString("100"), Expense: decimal.RequireFromString("40")},
		{BucketStart: date(2026, time.March, 1), Income: decimal.RequireFromString("10"), Expense: decimal.Zero},
	}, nil).Once()

	points, err := suite.service.GetCashflow(ctx, suite.userID, from, to, dates.Monthly)

	suite.Require().NoError(err)
	suite.Require().Len(points, 3)

	suite.Equal(date(2026, time.January, 1), points[0].BucketStart)
	suite.True(points[0].Net.Equal(decimal.RequireFromString("60")))

	suite.Equal(date(2026, time.February, 1), points[1].BucketStart)
	suite.True(points[1].Income.IsZero())
	suite.True(points[1].Expense.IsZero())
	suite.True(points[1].Net.IsZero())

	suite.Equal(date(2026, time.March, 1), points[2].BucketStart)
	suite.True(points[2].Net.Equal(decimal.RequireFromString("10")))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetCashflow_MonthlyMidMonthStartQueriesFromFirstBoundary() {
	ctx := context.Background()
	from := date(2026, time.January, 15)
	to := date(2026, time.March, 10)

	suite.mockReportingRepo.On("GetCashflowData", ctx, suite.userID, date(2026, time.February, 1), to, "month").Return([]domain.CashflowPoint{}, nil).Once()

	points, err := suite.service.GetCashflow(ctx, suite.userID, from, to, dates.Monthly)

	suite.Require().NoError(err)
	suite.Require().Len(points, 2)
	suite.Equal(date(2026, time.February, 1), points[0].BucketStart)
	suite.Equal(date(2026, time.March, 1), points[1].BucketStart)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetCashflow_WeeklyRegroupsDailyRows() {
	ctx := context.Background()
	from := date(2026, time.March, 1)
	to := date(2026, time.March, 14)

	suite.mockReportingRepo.On("GetCashflowData", ctx, suite.userID, from, to, "day").Return([]domain.CashflowPoint{
		{BucketStart: date(2026, time.March, 2), Income: decimal.RequireFromString("10"), Expense: decimal.Zero},
		{BucketStart: date(2026, time.March, 9), Income: decimal.Zero, Expense: decimal.RequireFromString("4")},
		{BucketStart: date(2026, time.March, 14), Income: decimal.RequireFromString("5"), Expense: decimal.Zero},
	}, nil).Once()

	points, err := suite.service.GetCashflow(ctx, suite.userID, from, to, dates.Weekly)

	suite.Require().NoError(err)
	suite.Require().Len(points, 2)

	suite.Equal(date(2026, time.March, 1), points[0].BucketStart)
	suite.True(points[0].Income.Equal(decimal.RequireFromString("10")))
	suite.True(points[0].Expense.IsZero())

	suite.Equal(date(2026, time.March, 8), points[1].BucketStart)
	suite.True(points[1].Income.Equal(decimal.RequireFromString("5")))
	suite.True(points[1].Expense.Equal(decimal.RequireFromString("4")))
	suite.True(points[1].Net.Equal(decimal.RequireFromString("1")))
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

// --- GetPeriodComparison ---

func (suite *ReportingServiceTestSuite) TestGetPeriodComparison_PreviousWindowHasSameLength() {
	ctx := context.Background()
	from := date(2026, time.March, 11)
	to := date(2026, time.March, 20)

	suite.mockReportingRepo.On("GetPeriodTotals", ctx, suite.userID, from, to).
		Return(decimal.RequireFromString("300"), decimal.RequireFromString("120"), nil).Once()
	suite.mockReportingRepo.On("GetPeriodTotals", ctx, suite.userID, date(2026, time.March, 1), date(2026, time.March, 10)).
		Return(decimal.RequireFromString("200"), decimal.RequireFromString("90"), nil).Once()

	comparison, err := suite.service.GetPeriodComparison(ctx, suite.userID, from, to)

	suite.Require().NoError(err)
	suite.True(comparison.Current.Net.Equal(decimal.RequireFromString("180")))
	suite.True(comparison.Previous.Net.Equal(decimal.RequireFromString("110")))
	suite.Equal(date(2026, time.March, 1), comparison.Previous.From)
	suite.Equal(date(2026, time.March, 10), comparison.Previous.To)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetPeriodComparison_InvalidRange() {
	ctx := context.Background()

	_, err := suite.service.GetPeriodComparison(ctx, suite.userID, date(2026, time.March, 20), date(2026, time.March, 11))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrInvalidRange)
}

// --- GetCategorySummary ---

func (suite *ReportingServiceTestSuite) TestGetCategorySummary_SortsByMagnitudeAndLabelsDeleted() {
	ctx := context.Background()
	from := date(2026, time.March, 1)
	to := date(2026, time.March, 31)

	suite.mockReportingRepo.On("GetCategoryAggregation", ctx, suite.userID, from, to, (*string)(nil)).Return(map[string]portsrepo.CategoryAggregationRow{
		"cat-groceries": {NetSignedAmount: decimal.RequireFromString("-80"), TransactionCount: 4},
		"cat-salary":    {NetSignedAmount: decimal.RequireFromString("500"), TransactionCount: 1},
		"cat-gone":      {NetSignedAmount: decimal.RequireFromString("-15"), TransactionCount: 2},
	}, nil).Once()
	suite.mockCategoryRepo.On("FindCategoriesByUserID", ctx, suite.userID).Return([]domain.Category{
		{CategoryID: "cat-groceries", UserID: suite.userID, Name: "Groceries", Type: domain.ExpenseCategory},
		{CategoryID: "cat-salary", UserID: suite.userID, Name: "Salary", Type: domain.IncomeCategory},
	}, nil).Once()

	rows, err := suite.service.GetCategorySummary(ctx, suite.userID, from, to, nil)

	suite.Require().NoError(err)
	suite.Require().Len(rows, 3)
	suite.Equal("Salary", rows[0].Name)
	suite.Equal("Groceries", rows[1].Name)
	suite.Equal("(deleted)", rows[2].Name)
	suite.Equal(int64(2), rows[2].TransactionCount)
	suite.mockReportingRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestGetCategorySummary_AccountFilterPassesThrough() {
	ctx := context.Background()
	from := date(2026, time.March, 1)
	to := date(2026, time.March, 31)
	accountID := "acc-1"

	suite.mockReportingRepo.On("GetCategoryAggregation", ctx, suite.userID, from, to, &accountID).
		Return(map[string]portsrepo.CategoryAggregationRow{}, nil).Once()

	rows, err := suite.service.GetCategorySummary(ctx, suite.userID, from, to, &accountID)

	suite.Require().NoError(err)
	suite.Empty(rows)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoriesByUserID", mock.Anything, mock.Anything)
	suite.mockReportingRepo.AssertExpectations(suite.T())
}

func TestReportingService(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/core/services"
)

// --- Mock ExchangeRateRepository ---

type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	var rates []domain.ExchangeRate
	if args.Get(0) != nil {
		rates = args.Get(0).([]domain.ExchangeRate)
	}
	return rates, args.Error(1)
}

func (m *MockExchangeRateRepository) FindRateEffectiveOn(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, asOf)
	var rate *domain.ExchangeRate
	if args.Get(0) != nil {
		rate = args.Get(0).(*domain.ExchangeRate)
	}
	return rate, args.Error(1)
}

// --- Test Suite ---

type CurrencyConverterTestSuite struct {
	suite.Suite
	mockRateRepo *MockExchangeRateRepository
	service      portssvc.CurrencyConverterSvc
	asOf         time.Time
}

func (suite *CurrencyConverterTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.service = services.NewCurrencyConverterService(suite.mockRateRepo)
	suite.asOf = date(2026, time.March, 15)
}

func (suite *CurrencyConverterTestSuite) TestConvert_SameCurrencySkipsLookup() {
	ctx := context.Background()

	result, err := suite.service.Convert(ctx, decimal.RequireFromString("123.45"), "USD", "USD", suite.asOf)

	suite.Require().NoError(err)
	suite.True(result.Equal(decimal.RequireFromString("123.45")))
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateEffectiveOn", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CurrencyConverterTestSuite) TestConvert_DirectRate() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "EUR", "USD", suite.asOf).Return(&domain.ExchangeRate{
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1.1"),
		DateEffective:    date(2026, time.March, 1),
	}, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.RequireFromString("100"), "EUR", "USD", suite.asOf)

	suite.Require().NoError(err)
	suite.True(result.Equal(decimal.RequireFromString("110")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyConverterTestSuite) TestConvert_FallsBackToInverseRate() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "USD", "EUR", suite.asOf).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "EUR", "USD", suite.asOf).Return(&domain.ExchangeRate{
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.RequireFromString("1.25"),
		DateEffective:    date(2026, time.March, 1),
	}, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.RequireFromString("100"), "USD", "EUR", suite.asOf)

	suite.Require().NoError(err)
	suite.True(result.Equal(decimal.RequireFromString("80")))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyConverterTestSuite) TestConvert_NoRateEitherDirection() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "GBP", "JPY", suite.asOf).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "JPY", "GBP", suite.asOf).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Convert(ctx, decimal.RequireFromString("100"), "GBP", "JPY", suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConversion)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyConverterTestSuite) TestConvert_ZeroInverseRate() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "USD", "EUR", suite.asOf).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "EUR", "USD", suite.asOf).Return(&domain.ExchangeRate{
		FromCurrencyCode: "EUR",
		ToCurrencyCode:   "USD",
		Rate:             decimal.Zero,
		DateEffective:    date(2026, time.March, 1),
	}, nil).Once()

	_, err := suite.service.Convert(ctx, decimal.RequireFromString("100"), "USD", "EUR", suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConversion)
}

func (suite *CurrencyConverterTestSuite) TestConvert_RepositoryFailureSurfaces() {
	ctx := context.Background()
	suite.mockRateRepo.On("FindRateEffectiveOn", ctx, "EUR", "USD", suite.asOf).Return(nil, assert.AnError).Once()

	_, err := suite.service.Convert(ctx, decimal.RequireFromString("100"), "EUR", "USD", suite.asOf)

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRateRepo.AssertNumberOfCalls(suite.T(), "FindRateEffectiveOn", 1)
}

func TestCurrencyConverterService(t *testing.T) {
	suite.Run(t, new(CurrencyConverterTestSuite))
}

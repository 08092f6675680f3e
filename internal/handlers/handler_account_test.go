package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"github.com/finkeeper/personal_finance_app/internal/handlers"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
	"github.com/finkeeper/personal_finance_app/pkg/config"
)

// --- Mock AccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	args := m.Called(ctx, userID, accountID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	args := m.Called(ctx, userID, accountID)
	return args.Error(0)
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock BalanceService ---

type MockBalanceService struct {
	mock.Mock
}

func (m *MockBalanceService) GetTotalBalance(ctx context.Context, userID string, asOf time.Time, baseCurrency string) (decimal.Decimal, error) {
	args := m.Called(ctx, userID, asOf, baseCurrency)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockBalanceService) GetAccountsBalance(ctx context.Context, userID string, asOf time.Time, baseCurrency string) ([]domain.AccountBalance, decimal.Decimal, error) {
	args := m.Called(ctx, userID, asOf, baseCurrency)
	if args.Get(0) == nil {
		return nil, decimal.Zero, args.Error(2)
	}
	return args.Get(0).([]domain.AccountBalance), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockBalanceService) GetBalanceHistory(ctx context.Context, userID string, from, to time.Time, granularity dates.Granularity, baseCurrency string) ([]domain.BalancePoint, error) {
	args := m.Called(ctx, userID, from, to, granularity, baseCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.BalancePoint), args.Error(1)
}

func (m *MockBalanceService) GetAccountBalance(ctx context.Context, userID, accountID string, asOf time.Time) (decimal.Decimal, string, error) {
	args := m.Called(ctx, userID, accountID, asOf)
	return args.Get(0).(decimal.Decimal), args.String(1), args.Error(2)
}

var _ portssvc.BalanceSvc = (*MockBalanceService)(nil)

// --- Remaining container mocks, unexercised by these tests ---

type stubUserService struct{ portssvc.UserSvcFacade }
type stubAuthService struct{ portssvc.AuthSvcFacade }
type stubTokenService struct{ portssvc.TokenSvcFacade }
type stubGoogleOAuthService struct{ portssvc.GoogleOAuthSvcFacade }
type stubTransactionService struct{ portssvc.TransactionSvcFacade }
type stubCategoryService struct{ portssvc.CategorySvcFacade }
type stubTagService struct{ portssvc.TagSvcFacade }
type stubBudgetService struct{ portssvc.BudgetSvcFacade }
type stubInstallmentService struct{ portssvc.InstallmentSvcFacade }
type stubReportingService struct{ portssvc.ReportingSvc }
type stubExchangeRateService struct{ portssvc.ExchangeRateSvcFacade }

// --- Test Suite ---

type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockBalanceService *MockBalanceService
	jwtSecret          string
	userID             string
}

func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "pfa-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockAccountService = new(MockAccountService)
	suite.mockBalanceService = new(MockBalanceService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		RateLimit:    "1000-M",
		IsProduction: true,
	}
	services := &portssvc.ServiceContainer{
		User:         stubUserService{},
		Auth:         stubAuthService{},
		Token:        stubTokenService{},
		GoogleOAuth:  stubGoogleOAuthService{},
		Account:      suite.mockAccountService,
		Transaction:  stubTransactionService{},
		Category:     stubCategoryService{},
		Tag:          stubTagService{},
		Budget:       stubBudgetService{},
		Installment:  stubInstallmentService{},
		Balance:      suite.mockBalanceService,
		Reporting:    stubReportingService{},
		ExchangeRate: stubExchangeRateService{},
	}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

func (suite *AccountHandlerTestSuite) doRequest(method, url string, body []byte, authenticated bool) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, _ := http.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if authenticated {
		req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestGetAccount_IncludesCurrentBalance() {
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		UserID:         suite.userID,
		Name:           "Wallet",
		AccountType:    domain.Cash,
		CurrencyCode:   "USD",
		InitialBalance: decimal.RequireFromString("100"),
	}

	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.userID, accountID).Return(account, nil).Once()
	suite.mockBalanceService.On("GetAccountBalance", mock.Anything, suite.userID, accountID, mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("123.45"), "USD", nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.Require().NotNil(resp.Balance)
	suite.True(resp.Balance.Equal(decimal.RequireFromString("123.45")))
	suite.mockAccountService.AssertExpectations(suite.T())
	suite.mockBalanceService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_BalanceFailureStillReturnsAccount() {
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:    accountID,
		UserID:       suite.userID,
		Name:         "Wallet",
		AccountType:  domain.Cash,
		CurrencyCode: "USD",
	}

	suite.mockAccountService.On("GetAccountByID", mock.Anything, suite.userID, accountID).Return(account, nil).Once()
	suite.mockBalanceService.On("GetAccountBalance", mock.Anything, suite.userID, accountID, mock.AnythingOfType("time.Time")).
		Return(decimal.Zero, "", apperrors.ErrConversion).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+accountID, nil, true)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.Nil(resp.Balance)
}

func (suite *AccountHandlerTestSuite) TestGetAccount_MissingToken() {
	w := suite.doRequest(http.MethodGet, "/api/v1/accounts/"+uuid.NewString(), nil, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Success() {
	body, _ := json.Marshal(dto.CreateAccountRequest{
		Name:           "Wallet",
		AccountType:    domain.Cash,
		CurrencyCode:   "USD",
		InitialBalance: decimal.RequireFromString("25"),
	})
	created := &domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Wallet",
		AccountType:    domain.Cash,
		CurrencyCode:   "USD",
		InitialBalance: decimal.RequireFromString("25"),
	}

	suite.mockAccountService.On("CreateAccount", mock.Anything, suite.userID, mock.MatchedBy(func(req dto.CreateAccountRequest) bool {
		return req.Name == "Wallet" && req.CurrencyCode == "USD"
	})).Return(created, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", body, true)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(created.AccountID, resp.AccountID)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_InvalidPayload() {
	body := []byte(`{"name": "Wallet", "accountType": "PIGGY_BANK", "currencyCode": "USD"}`)

	w := suite.doRequest(http.MethodPost, "/api/v1/accounts", body, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "CreateAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountHandlerTestSuite) TestDeleteAccount_NotFoundMapsTo404() {
	accountID := uuid.NewString()
	suite.mockAccountService.On("DeleteAccount", mock.Anything, suite.userID, accountID).Return(apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/accounts/"+accountID, nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}

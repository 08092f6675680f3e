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

// --- Mock AccountRepository ---

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	var account *domain.Account
	if args.Get(0) != nil {
		account = args.Get(0).(*domain.Account)
	}
	return account, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByUserID(ctx context.Context, userID string) ([]domain.Account, error) {
	args := m.Called(ctx, userID)
	var accounts []domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).([]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	var accounts map[string]domain.Account
	if args.Get(0) != nil {
		accounts = args.Get(0).(map[string]domain.Account)
	}
	return accounts, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, accountID string, now time.Time) error {
	args := m.Called(ctx, accountID, now)
	return args.Error(0)
}

// --- Test Suite ---

type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	service         portssvc.AccountSvcFacade
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.service = services.NewAccountService(suite.mockAccountRepo)
	suite.userID = "user-1"
}

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()

	suite.mockAccountRepo.On("SaveAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.AccountID != "" &&
			account.UserID == suite.userID &&
			account.Name == "Wallet" &&
			account.AccountType == domain.Cash &&
			account.InitialBalance.Equal(decimal.RequireFromString("25.50"))
	})).Return(nil).Once()

	created, err := suite.service.CreateAccount(ctx, suite.userID, dto.CreateAccountRequest{
		Name:           "Wallet",
		AccountType:    domain.Cash,
		CurrencyCode:   "USD",
		InitialBalance: decimal.RequireFromString("25.50"),
	})

	suite.Require().NoError(err)
	suite.NotEmpty(created.AccountID)
	suite.Equal("USD", created.CurrencyCode)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_OtherUsersAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&domain.Account{
		AccountID: "acc-1",
		UserID:    "someone-else",
	}, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.userID, "acc-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *AccountServiceTestSuite) TestGetAccountByID_DeletedLooksAbsent() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&domain.Account{
		AccountID: "acc-1",
		UserID:    suite.userID,
		IsDeleted: true,
	}, nil).Once()

	_, err := suite.service.GetAccountByID(ctx, suite.userID, "acc-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_PartialUpdateKeepsOtherFields() {
	ctx := context.Background()
	newName := "Daily spending"
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&domain.Account{
		AccountID:    "acc-1",
		UserID:       suite.userID,
		Name:         "Wallet",
		AccountType:  domain.Cash,
		CurrencyCode: "USD",
	}, nil).Once()
	suite.mockAccountRepo.On("UpdateAccount", ctx, mock.MatchedBy(func(account domain.Account) bool {
		return account.Name == newName && account.AccountType == domain.Cash
	})).Return(nil).Once()

	updated, err := suite.service.UpdateAccount(ctx, suite.userID, "acc-1", dto.UpdateAccountRequest{
		Name: &newName,
	})

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.Equal("USD", updated.CurrencyCode)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_ChecksOwnershipFirst() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&domain.Account{
		AccountID: "acc-1",
		UserID:    "someone-else",
	}, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, "acc-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeleteAccount", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_SoftDeletes() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, "acc-1").Return(&domain.Account{
		AccountID: "acc-1",
		UserID:    suite.userID,
	}, nil).Once()
	suite.mockAccountRepo.On("DeleteAccount", ctx, "acc-1", mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.userID, "acc-1")

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}

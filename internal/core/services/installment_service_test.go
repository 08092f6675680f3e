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

// --- Mock InstallmentRepository ---

type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindInstallmentsByTransactionID(ctx context.Context, transactionID string) ([]domain.Installment, error) {
	args := m.Called(ctx, transactionID)
	var installments []domain.Installment
	if args.Get(0) != nil {
		installments = args.Get(0).([]domain.Installment)
	}
	return installments, args.Error(1)
}

func (m *MockInstallmentRepository) ReplaceInstallments(ctx context.Context, transactionID string, installments []domain.Installment) error {
	args := m.Called(ctx, transactionID, installments)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteInstallmentsByTransactionID(ctx context.Context, transactionID string) error {
	args := m.Called(ctx, transactionID)
	return args.Error(0)
}

// --- Test Suite ---

type InstallmentServiceTestSuite struct {
	suite.Suite
	mockInstallmentRepo *MockInstallmentRepository
	mockTxnRepo         *MockTransactionRepository
	service             portssvc.InstallmentSvcFacade

	userID string
}

func (suite *InstallmentServiceTestSuite) SetupTest() {
	suite.userID = "user-1"
	suite.mockInstallmentRepo = new(MockInstallmentRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewInstallmentService(suite.mockInstallmentRepo, suite.mockTxnRepo)
}

func (suite *InstallmentServiceTestSuite) expectOwnedTransaction(transactionID string) {
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, transactionID).Return(&domain.Transaction{
		TransactionID:   transactionID,
		UserID:          suite.userID,
		AccountID:       "acc-1",
		TransactionType: domain.Expense,
		Amount:          decimal.RequireFromString("300"),
	}, nil).Once()
}

func (suite *InstallmentServiceTestSuite) TestSetInstallments_NumbersSequentially() {
	ctx := context.Background()
	suite.expectOwnedTransaction("txn-1")
	suite.mockInstallmentRepo.On("ReplaceInstallments", ctx, "txn-1", mock.MatchedBy(func(installments []domain.Installment) bool {
		if len(installments) != 3 {
			return false
		}
		for i, inst := range installments {
			if inst.InstallmentNumber != i+1 || inst.TransactionID != "txn-1" {
				return false
			}
		}
		return installments[0].DueDate.Equal(date(2026, time.April, 1))
	})).Return(nil).Once()

	installments, err := suite.service.SetInstallments(ctx, suite.userID, "txn-1", dto.SetInstallmentsRequest{
		Installments: []dto.InstallmentItem{
			{Amount: decimal.RequireFromString("100"), DueDate: "2026-04-01"},
			{Amount: decimal.RequireFromString("100"), DueDate: "2026-05-01"},
			{Amount: decimal.RequireFromString("100"), DueDate: "2026-06-01"},
		},
	})

	suite.Require().NoError(err)
	suite.Require().Len(installments, 3)
	suite.Equal(2, installments[1].InstallmentNumber)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func (suite *InstallmentServiceTestSuite) TestSetInstallments_NonPositiveAmount() {
	ctx := context.Background()
	suite.expectOwnedTransaction("txn-1")

	_, err := suite.service.SetInstallments(ctx, suite.userID, "txn-1", dto.SetInstallmentsRequest{
		Installments: []dto.InstallmentItem{
			{Amount: decimal.Zero, DueDate: "2026-04-01"},
		},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "ReplaceInstallments", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestSetInstallments_BadDueDate() {
	ctx := context.Background()
	suite.expectOwnedTransaction("txn-1")

	_, err := suite.service.SetInstallments(ctx, suite.userID, "txn-1", dto.SetInstallmentsRequest{
		Installments: []dto.InstallmentItem{
			{Amount: decimal.RequireFromString("100"), DueDate: "04/01/2026"},
		},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *InstallmentServiceTestSuite) TestSetInstallments_OtherUsersTransaction() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(&domain.Transaction{
		TransactionID: "txn-1",
		UserID:        "someone-else",
	}, nil).Once()

	_, err := suite.service.SetInstallments(ctx, suite.userID, "txn-1", dto.SetInstallmentsRequest{
		Installments: []dto.InstallmentItem{
			{Amount: decimal.RequireFromString("100"), DueDate: "2026-04-01"},
		},
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockInstallmentRepo.AssertNotCalled(suite.T(), "ReplaceInstallments", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InstallmentServiceTestSuite) TestListInstallments_DeletedTransaction() {
	ctx := context.Background()
	suite.mockTxnRepo.On("FindTransactionByID", mock.Anything, "txn-1").Return(&domain.Transaction{
		TransactionID: "txn-1",
		UserID:        suite.userID,
		IsDeleted:     true,
	}, nil).Once()

	_, err := suite.service.ListInstallments(ctx, suite.userID, "txn-1")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *InstallmentServiceTestSuite) TestListInstallments_ReturnsOrderedPlan() {
	ctx := context.Background()
	suite.expectOwnedTransaction("txn-1")
	suite.mockInstallmentRepo.On("FindInstallmentsByTransactionID", ctx, "txn-1").Return([]domain.Installment{
		{InstallmentID: "inst-1", TransactionID: "txn-1", InstallmentNumber: 1, Amount: decimal.RequireFromString("150"), DueDate: date(2026, time.April, 1)},
		{InstallmentID: "inst-2", TransactionID: "txn-1", InstallmentNumber: 2, Amount: decimal.RequireFromString("150"), DueDate: date(2026, time.May, 1)},
	}, nil).Once()

	installments, err := suite.service.ListInstallments(ctx, suite.userID, "txn-1")

	suite.Require().NoError(err)
	suite.Require().Len(installments, 2)
	suite.Equal(1, installments[0].InstallmentNumber)
	suite.Equal(2, installments[1].InstallmentNumber)
}

func (suite *InstallmentServiceTestSuite) TestDeleteInstallments_ClearsPlan() {
	ctx := context.Background()
	suite.expectOwnedTransaction("txn-1")
	suite.mockInstallmentRepo.On("DeleteInstallmentsByTransactionID", ctx, "txn-1").Return(nil).Once()

	err := suite.service.DeleteInstallments(ctx, suite.userID, "txn-1")

	suite.Require().NoError(err)
	suite.mockInstallmentRepo.AssertExpectations(suite.T())
}

func TestInstallmentService(t *testing.T) {
	suite.Run(t, new(InstallmentServiceTestSuite))
}

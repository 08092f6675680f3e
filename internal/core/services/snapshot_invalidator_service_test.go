package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/core/services"
)

// --- Mock BalanceSnapshotWriter ---

type MockSnapshotWriter struct {
	mock.Mock
}

func (m *MockSnapshotWriter) SaveSnapshots(ctx context.Context, snapshots []domain.BalanceSnapshot) error {
	args := m.Called(ctx, snapshots)
	return args.Error(0)
}

func (m *MockSnapshotWriter) DeleteFrom(ctx context.Context, accountID string, fromDate time.Time) error {
	args := m.Called(ctx, accountID, fromDate)
	return args.Error(0)
}

func (m *MockSnapshotWriter) DeleteFromInTx(ctx context.Context, tx pgx.Tx, accountID string, fromDate time.Time) error {
	args := m.Called(ctx, tx, accountID, fromDate)
	return args.Error(0)
}

// --- Test Suite ---

type SnapshotInvalidatorTestSuite struct {
	suite.Suite
	mockWriter *MockSnapshotWriter
}

func (suite *SnapshotInvalidatorTestSuite) SetupTest() {
	suite.mockWriter = new(MockSnapshotWriter)
}

func (suite *SnapshotInvalidatorTestSuite) TestInvalidateFrom_TruncatesToFirstOfMonth() {
	ctx := context.Background()
	service := services.NewSnapshotInvalidatorService(suite.mockWriter)

	suite.mockWriter.On("DeleteFromInTx", ctx, nil, "acc-1", date(2026, time.March, 1)).Return(nil).Once()

	err := service.InvalidateFrom(ctx, nil, "acc-1", date(2026, time.March, 19))

	suite.Require().NoError(err)
	suite.mockWriter.AssertExpectations(suite.T())
}

func (suite *SnapshotInvalidatorTestSuite) TestInvalidateFrom_FirstOfMonthStaysPut() {
	ctx := context.Background()
	service := services.NewSnapshotInvalidatorService(suite.mockWriter)

	suite.mockWriter.On("DeleteFromInTx", ctx, nil, "acc-1", date(2026, time.July, 1)).Return(nil).Once()

	err := service.InvalidateFrom(ctx, nil, "acc-1", date(2026, time.July, 1))

	suite.Require().NoError(err)
	suite.mockWriter.AssertExpectations(suite.T())
}

func (suite *SnapshotInvalidatorTestSuite) TestInvalidateFrom_DeleteFailureSurfaces() {
	ctx := context.Background()
	service := services.NewSnapshotInvalidatorService(suite.mockWriter)

	suite.mockWriter.On("DeleteFromInTx", ctx, nil, "acc-1", mock.AnythingOfType("time.Time")).Return(assert.AnError).Once()

	err := service.InvalidateFrom(ctx, nil, "acc-1", date(2026, time.March, 19))

	suite.Require().Error(err)
	suite.ErrorIs(err, assert.AnError)
}

func TestSnapshotInvalidatorService(t *testing.T) {
	suite.Run(t, new(SnapshotInvalidatorTestSuite))
}

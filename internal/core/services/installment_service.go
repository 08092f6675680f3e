package services

import (
	"context"
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
)

// installmentService implements the InstallmentSvcFacade interface.
//
// Installments are a payment schedule attached to a transaction; they carry
// no ledger weight of their own, so no snapshot invalidation is involved.
type installmentService struct {
	BaseService
	installmentRepo portsrepo.InstallmentRepository
	txnRepo         portsrepo.TransactionReader
	now             func() time.Time
}

// NewInstallmentService creates a new installment service.
func NewInstallmentService(installmentRepo portsrepo.InstallmentRepository, txnRepo portsrepo.TransactionReader) portssvc.InstallmentSvcFacade {
	return &installmentService{
		installmentRepo: installmentRepo,
		txnRepo:         txnRepo,
		now:             time.Now,
	}
}

var _ portssvc.InstallmentSvcFacade = (*installmentService)(nil)

// SetInstallments replaces the transaction's payment plan. Slices are
// numbered 1..n in the order given.
func (s *installmentService) SetInstallments(ctx context.Context, userID string, transactionID string, req dto.SetInstallmentsRequest) ([]domain.Installment, error) {
	if _, err := s.ownedTransaction(ctx, userID, transactionID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	installments := make([]domain.Installment, 0, len(req.Installments))
	for i, item := range req.Installments {
		if item.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: installment %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		dueDate, err := parseDate(item.DueDate)
		if err != nil {
			return nil, err
		}
		installments = append(installments, domain.Installment{
			InstallmentID:     uuid.NewString(),
			TransactionID:     transactionID,
			InstallmentNumber: i + 1,
			Amount:            item.Amount,
			DueDate:           dueDate,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				LastUpdatedAt: now,
			},
		})
	}

	if err := s.installmentRepo.ReplaceInstallments(ctx, transactionID, installments); err != nil {
		s.LogError(ctx, err, "Failed to replace installments", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Installment plan set", slog.String("transaction_id", transactionID), slog.Int("count", len(installments)))
	return installments, nil
}

func (s *installmentService) ListInstallments(ctx context.Context, userID string, transactionID string) ([]domain.Installment, error) {
	if _, err := s.ownedTransaction(ctx, userID, transactionID); err != nil {
		return nil, err
	}
	installments, err := s.installmentRepo.FindInstallmentsByTransactionID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list installments", slog.String("transaction_id", transactionID))
		return nil, err
	}
	return installments, nil
}

func (s *installmentService) DeleteInstallments(ctx context.Context, userID string, transactionID string) error {
	if _, err := s.ownedTransaction(ctx, userID, transactionID); err != nil {
		return err
	}
	if err := s.installmentRepo.DeleteInstallmentsByTransactionID(ctx, transactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete installments", slog.String("transaction_id", transactionID))
		return err
	}
	return nil
}

func (s *installmentService) ownedTransaction(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, fmt.Errorf("%w: transaction %s does not belong to user", apperrors.ErrForbidden, transactionID)
	}
	if txn.IsDeleted {
		return nil, fmt.Errorf("%w: transaction %s", apperrors.ErrNotFound, transactionID)
	}
	return txn, nil
}

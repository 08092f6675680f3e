package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

const dateLayout = "2006-01-02"

// transactionService implements the TransactionSvcFacade interface.
//
// Mutations and the snapshot invalidation they trigger run on one pgx.Tx:
// either both commit or neither does.
type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepository
	accountRepo  portsrepo.AccountReader
	categoryRepo portsrepo.CategoryRepository
	tagRepo      portsrepo.TagRepository
	invalidator  portssvc.SnapshotInvalidator
	now          func() time.Time
}

// NewTransactionService creates a new transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepository, accountRepo portsrepo.AccountReader, categoryRepo portsrepo.CategoryRepository, tagRepo portsrepo.TagRepository, invalidator portssvc.SnapshotInvalidator) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		accountRepo:  accountRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		invalidator:  invalidator,
		now:          time.Now,
	}
}

// Ensure transactionService implements the TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// CreateTransaction validates and persists a new transaction, invalidating
// snapshots for the target account from its date onward.
func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	txnDate, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	account, err := s.ownedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}
	if err := s.validateCategory(ctx, userID, req.CategoryID, req.TransactionType); err != nil {
		return nil, err
	}
	if err := s.validateTags(ctx, userID, req.TagIDs); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		UserID:          userID,
		AccountID:       account.AccountID,
		CategoryID:      req.CategoryID,
		TransactionType: req.TransactionType,
		Amount:          req.Amount,
		CurrencyCode:    account.CurrencyCode,
		TransactionDate: txnDate,
		Description:     req.Description,
		TagIDs:          req.TagIDs,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
			return err
		}
		if len(txn.TagIDs) > 0 {
			if err := s.txnRepo.ReplaceTransactionTagsInTx(ctx, tx, txn.TransactionID, txn.TagIDs); err != nil {
				return err
			}
		}
		return s.invalidator.InvalidateFrom(ctx, tx, txn.AccountID, txn.TransactionDate)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to create transaction", slog.String("account_id", txn.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created", slog.String("transaction_id", txn.TransactionID), slog.String("account_id", txn.AccountID))
	return &txn, nil
}

// GetTransactionByID retrieves a transaction owned by the user.
func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
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

// ListTransactions returns a page of the user's transactions matching the
// filters, newest first, with an opaque cursor for the next page.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	searchParams := portsrepo.TransactionSearchParams{
		AccountID:  params.AccountID,
		CategoryID: params.CategoryID,
		TagID:      params.TagID,
		Type:       params.Type,
		AmountMin:  params.AmountMin,
		AmountMax:  params.AmountMax,
		Limit:      params.Limit,
		NextToken:  params.NextToken,
	}
	if params.DateFrom != nil {
		from, err := parseDate(*params.DateFrom)
		if err != nil {
			return nil, err
		}
		searchParams.DateFrom = &from
	}
	if params.DateTo != nil {
		to, err := parseDate(*params.DateTo)
		if err != nil {
			return nil, err
		}
		searchParams.DateTo = &to
	}
	if searchParams.DateFrom != nil && searchParams.DateTo != nil && searchParams.DateFrom.After(*searchParams.DateTo) {
		return nil, fmt.Errorf("%w: dateFrom is after dateTo", apperrors.ErrInvalidRange)
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, userID, searchParams)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, err
	}

	resp := &dto.ListTransactionsResponse{
		Transactions: make([]dto.TransactionResponse, 0, len(txns)),
		NextToken:    nextToken,
	}
	for i := range txns {
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(&txns[i]))
	}
	return resp, nil
}

// UpdateTransaction applies a partial update. Snapshots are invalidated for
// the transaction's old (account, date) pair and, when either changed, for
// the new pair as well.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	existing, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	oldAccountID := existing.AccountID
	oldDate := existing.TransactionDate

	updated := *existing
	if req.AccountID != nil && *req.AccountID != updated.AccountID {
		account, err := s.ownedAccount(ctx, userID, *req.AccountID)
		if err != nil {
			return nil, err
		}
		updated.AccountID = account.AccountID
		updated.CurrencyCode = account.CurrencyCode
	}
	if req.TransactionType != nil {
		updated.TransactionType = *req.TransactionType
	}
	if req.CategoryID != nil {
		updated.CategoryID = req.CategoryID
	}
	if updated.CategoryID != nil {
		if err := s.validateCategory(ctx, userID, updated.CategoryID, updated.TransactionType); err != nil {
			return nil, err
		}
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
		}
		updated.Amount = *req.Amount
	}
	if req.Date != nil {
		newDate, err := parseDate(*req.Date)
		if err != nil {
			return nil, err
		}
		updated.TransactionDate = newDate
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.TagIDs != nil {
		if err := s.validateTags(ctx, userID, *req.TagIDs); err != nil {
			return nil, err
		}
		updated.TagIDs = *req.TagIDs
	}
	updated.LastUpdatedAt = s.now().UTC()

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := s.txnRepo.UpdateTransactionInTx(ctx, tx, updated); err != nil {
			return err
		}
		if req.TagIDs != nil {
			if err := s.txnRepo.ReplaceTransactionTagsInTx(ctx, tx, updated.TransactionID, updated.TagIDs); err != nil {
				return err
			}
		}
		// The old position always goes stale; the new one too when it moved.
		if err := s.invalidator.InvalidateFrom(ctx, tx, oldAccountID, oldDate); err != nil {
			return err
		}
		if updated.AccountID != oldAccountID || !updated.TransactionDate.Equal(oldDate) {
			return s.invalidator.InvalidateFrom(ctx, tx, updated.AccountID, updated.TransactionDate)
		}
		return nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return &updated, nil
}

// DeleteTransaction soft-deletes a transaction and invalidates snapshots for
// its account from its date onward.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	existing, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	err = s.withTx(ctx, func(tx pgx.Tx) error {
		if err := s.txnRepo.DeleteTransactionInTx(ctx, tx, transactionID, s.now().UTC()); err != nil {
			return err
		}
		return s.invalidator.InvalidateFrom(ctx, tx, existing.AccountID, existing.TransactionDate)
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}

// withTx runs fn inside one database transaction, rolling back on error.
func (s *transactionService) withTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		if rbErr := s.txnRepo.Rollback(ctx, tx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			s.LogError(ctx, rbErr, "Failed to rollback transaction")
		}
		return err
	}
	if err := s.txnRepo.Commit(ctx, tx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ownedAccount loads an account and checks it is owned by the user and active.
func (s *transactionService) ownedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrForbidden, accountID)
	}
	if account.IsDeleted {
		return nil, fmt.Errorf("%w: account %s is deleted", apperrors.ErrValidation, accountID)
	}
	return account, nil
}

func (s *transactionService) validateCategory(ctx context.Context, userID string, categoryID *string, txnType domain.TransactionType) error {
	if categoryID == nil {
		return nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, *categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, *categoryID)
		}
		return err
	}
	if category.UserID != userID || category.IsDeleted {
		return fmt.Errorf("%w: category %s not found", apperrors.ErrValidation, *categoryID)
	}
	if string(category.Type) != string(txnType) {
		return fmt.Errorf("%w: category type %s does not match transaction type %s", apperrors.ErrValidation, category.Type, txnType)
	}
	return nil
}

func (s *transactionService) validateTags(ctx context.Context, userID string, tagIDs []string) error {
	if len(tagIDs) == 0 {
		return nil
	}
	tags, err := s.tagRepo.FindTagsByIDs(ctx, tagIDs)
	if err != nil {
		return err
	}
	for _, tagID := range tagIDs {
		tag, ok := tags[tagID]
		if !ok || tag.UserID != userID || tag.IsDeleted {
			return fmt.Errorf("%w: tag %s not found", apperrors.ErrValidation, tagID)
		}
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", apperrors.ErrValidation, value)
	}
	return dates.Normalize(parsed), nil
}

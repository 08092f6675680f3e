package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// snapshotInvalidatorService drops stale snapshots when a transaction
// mutation rewrites history. It runs on the caller's database transaction so
// the mutation and the invalidation are atomic.
type snapshotInvalidatorService struct {
	BaseService
	snapshotRepo portsrepo.BalanceSnapshotWriter
}

// NewSnapshotInvalidatorService creates a new snapshot invalidator.
func NewSnapshotInvalidatorService(snapshotRepo portsrepo.BalanceSnapshotWriter) portssvc.SnapshotInvalidator {
	return &snapshotInvalidatorService{snapshotRepo: snapshotRepo}
}

var _ portssvc.SnapshotInvalidator = (*snapshotInvalidatorService)(nil)

// InvalidateFrom deletes every snapshot for the account dated on or after the
// first day of the effective date's month. The next read rebuilds whatever is
// missing.
func (s *snapshotInvalidatorService) InvalidateFrom(ctx context.Context, tx pgx.Tx, accountID string, effectiveDate time.Time) error {
	fromDate := dates.FirstOfMonth(effectiveDate)
	if err := s.snapshotRepo.DeleteFromInTx(ctx, tx, accountID, fromDate); err != nil {
		s.LogError(ctx, err, "Failed to invalidate snapshots",
			slog.String("account_id", accountID),
			slog.Time("from_date", fromDate))
		return err
	}
	s.LogDebug(ctx, "Invalidated snapshots",
		slog.String("account_id", accountID),
		slog.Time("from_date", fromDate))
	return nil
}

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
	"github.com/finkeeper/personal_finance_app/internal/utils/dates"
)

// balanceService implements the BalanceSvc interface on top of the snapshot
// cache and the transaction ledger.
//
// Batch methods resolve every account of a user in a fixed number of store
// calls: one snapshot lookup, one ledger load, and at most one guard lookup
// plus one batch insert when fresh month-start snapshots are needed. No
// method ever queries per account.
type balanceService struct {
	BaseService
	accountRepo  portsrepo.AccountReader
	snapshotRepo portsrepo.BalanceSnapshotRepository
	ledgerRepo   portsrepo.LedgerReader
	converter    portssvc.CurrencyConverterSvc
	now          func() time.Time
}

// NewBalanceService creates a new balance service.
func NewBalanceService(accountRepo portsrepo.AccountReader, snapshotRepo portsrepo.BalanceSnapshotRepository, ledgerRepo portsrepo.LedgerReader, converter portssvc.CurrencyConverterSvc) portssvc.BalanceSvc {
	return &balanceService{
		accountRepo:  accountRepo,
		snapshotRepo: snapshotRepo,
		ledgerRepo:   ledgerRepo,
		converter:    converter,
		now:          time.Now,
	}
}

// Ensure balanceService implements the BalanceSvc interface
var _ portssvc.BalanceSvc = (*balanceService)(nil)

// GetTotalBalance returns the user's total balance across all active accounts
// as of a date, converted to baseCurrency.
func (s *balanceService) GetTotalBalance(ctx context.Context, userID string, asOf time.Time, baseCurrency string) (decimal.Decimal, error) {
	_, total, err := s.GetAccountsBalance(ctx, userID, asOf, baseCurrency)
	return total, err
}

// GetAccountsBalance returns per-account balances as of a date along with the
// converted total.
func (s *balanceService) GetAccountsBalance(ctx context.Context, userID string, asOf time.Time, baseCurrency string) ([]domain.AccountBalance, decimal.Decimal, error) {
	asOf = dates.Normalize(asOf)

	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for balance", slog.String("user_id", userID))
		return nil, decimal.Zero, err
	}
	if len(accounts) == 0 {
		return []domain.AccountBalance{}, decimal.Zero, nil
	}

	native, err := s.computeNativeBalancesAsOf(ctx, accounts, asOf)
	if err != nil {
		return nil, decimal.Zero, err
	}

	balances := make([]domain.AccountBalance, 0, len(accounts))
	total := decimal.Zero
	for _, acc := range accounts {
		nat := native[acc.AccountID]
		converted, err := s.converter.Convert(ctx, nat, acc.CurrencyCode, baseCurrency, asOf)
		if err != nil {
			s.LogError(ctx, err, "Failed to convert account balance",
				slog.String("account_id", acc.AccountID),
				slog.String("from", acc.CurrencyCode),
				slog.String("to", baseCurrency))
			return nil, decimal.Zero, err
		}
		balances = append(balances, domain.AccountBalance{
			AccountID:        acc.AccountID,
			AccountName:      acc.Name,
			CurrencyCode:     acc.CurrencyCode,
			BalanceNative:    nat,
			BalanceConverted: converted,
		})
		total = total.Add(converted)
	}
	return balances, total, nil
}

// GetAccountBalance returns one account's native balance and currency as of a
// date. The account must belong to the user.
func (s *balanceService) GetAccountBalance(ctx context.Context, userID, accountID string, asOf time.Time) (decimal.Decimal, string, error) {
	asOf = dates.Normalize(asOf)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return decimal.Zero, "", err
	}
	if account.UserID != userID {
		return decimal.Zero, "", fmt.Errorf("%w: account %s does not belong to user", apperrors.ErrForbidden, accountID)
	}
	if account.IsDeleted {
		return decimal.Zero, "", fmt.Errorf("%w: account %s is deleted", apperrors.ErrNotFound, accountID)
	}

	monthStart := dates.FirstOfMonth(asOf)
	ids := []string{accountID}

	snaps, err := s.snapshotRepo.FindLatestOnOrBefore(ctx, ids, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot", slog.String("account_id", accountID))
		return decimal.Zero, "", err
	}

	var opening decimal.Decimal
	snap, hasSnap := snaps[accountID]
	switch {
	case hasSnap && snap.SnapshotDate.Equal(monthStart):
		opening = snap.Balance
	case hasSnap:
		// Chain forward from the older snapshot to the start of the month.
		delta, err := s.ledgerRepo.SumSignedAmountsInRange(ctx, accountID, snap.SnapshotDate, monthStart.AddDate(0, 0, -1))
		if err != nil {
			return decimal.Zero, "", err
		}
		opening = snap.Balance.Add(delta)
	default:
		sums, err := s.ledgerRepo.SumSignedAmountsUntil(ctx, ids, monthStart)
		if err != nil {
			return decimal.Zero, "", err
		}
		opening = account.InitialBalance.Add(sums[accountID])
	}

	if !hasSnap || snap.SnapshotDate.Before(monthStart) {
		err = s.snapshotRepo.SaveSnapshots(ctx, []domain.BalanceSnapshot{{
			SnapshotID:   uuid.NewString(),
			AccountID:    accountID,
			CurrencyCode: account.CurrencyCode,
			SnapshotDate: monthStart,
			Balance:      opening,
			CreatedAt:    s.now().UTC(),
		}})
		if err != nil {
			s.LogError(ctx, err, "Failed to save month snapshot", slog.String("account_id", accountID))
			return decimal.Zero, "", err
		}
	}

	delta, err := s.ledgerRepo.SumSignedAmountsInRange(ctx, accountID, monthStart, asOf)
	if err != nil {
		return decimal.Zero, "", err
	}
	return opening.Add(delta), account.CurrencyCode, nil
}

// GetBalanceHistory returns the ordered balance series between from and to at
// the requested granularity, converted to baseCurrency. Each point is labeled
// with its bucket start and carries the cumulative balance as of the end of
// the bucket; buckets without activity repeat the previous value.
func (s *balanceService) GetBalanceHistory(ctx context.Context, userID string, from, to time.Time, granularity dates.Granularity, baseCurrency string) ([]domain.BalancePoint, error) {
	from = dates.Normalize(from)
	to = dates.Normalize(to)
	if from.After(to) {
		return nil, fmt.Errorf("%w: from %s is after to %s", apperrors.ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}
	switch granularity {
	case dates.Daily, dates.Weekly, dates.Monthly:
	default:
		return nil, fmt.Errorf("%w: unknown granularity %q", apperrors.ErrInvalidRange, granularity)
	}

	buckets := dates.Buckets(from, to, granularity)

	accounts, err := s.accountRepo.FindAccountsByUserID(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for history", slog.String("user_id", userID))
		return nil, err
	}
	if len(accounts) == 0 {
		points := make([]domain.BalancePoint, 0, len(buckets))
		for _, b := range buckets {
			points = append(points, domain.BalancePoint{Date: b.Start, Balance: decimal.Zero})
		}
		return points, nil
	}

	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.AccountID)
	}

	// Anchor each account at the first day of the range's starting month:
	// an exact snapshot if present, otherwise the latest earlier one.
	monthStart := dates.FirstOfMonth(from)
	exact, err := s.snapshotRepo.FindAtDate(ctx, ids, monthStart)
	if err != nil {
		return nil, err
	}
	earlier, err := s.snapshotRepo.FindLatestBefore(ctx, ids, monthStart)
	if err != nil {
		return nil, err
	}

	// One ledger load covers the gap from the oldest anchor through the end
	// of the range. Any account without a snapshot pulls the load back to the
	// beginning of its history.
	loadFrom := monthStart
	for _, acc := range accounts {
		if _, ok := exact[acc.AccountID]; ok {
			continue
		}
		if snap, ok := earlier[acc.AccountID]; ok {
			if snap.SnapshotDate.Before(loadFrom) {
				loadFrom = snap.SnapshotDate
			}
			continue
		}
		loadFrom = time.Time{}
		break
	}
	entries, err := s.ledgerRepo.FindLedgerEntriesInRange(ctx, ids, loadFrom, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries for history", slog.String("user_id", userID))
		return nil, err
	}
	byAccount := groupEntries(entries)

	// Per-account running balance at the start of the range.
	running := make(map[string]decimal.Decimal, len(accounts))
	cursor := make(map[string]int, len(accounts))
	for _, acc := range accounts {
		var bal decimal.Decimal
		var appliedFrom time.Time
		if snap, ok := exact[acc.AccountID]; ok {
			bal = snap.Balance
			appliedFrom = snap.SnapshotDate
		} else if snap, ok := earlier[acc.AccountID]; ok {
			bal = snap.Balance
			appliedFrom = snap.SnapshotDate
		} else {
			bal = acc.InitialBalance
		}
		// Roll forward to just before the range start.
		i := 0
		accEntries := byAccount[acc.AccountID]
		for i < len(accEntries) {
			e := accEntries[i]
			if e.TransactionDate.Before(appliedFrom) || !e.TransactionDate.Before(from) {
				if !e.TransactionDate.Before(from) {
					break
				}
				i++
				continue
			}
			bal = bal.Add(e.Amount)
			i++
		}
		running[acc.AccountID] = bal
		cursor[acc.AccountID] = i
	}

	points := make([]domain.BalancePoint, 0, len(buckets))
	for _, b := range buckets {
		total := decimal.Zero
		for _, acc := range accounts {
			accEntries := byAccount[acc.AccountID]
			i := cursor[acc.AccountID]
			bal := running[acc.AccountID]
			for i < len(accEntries) && !accEntries[i].TransactionDate.After(b.End) {
				bal = bal.Add(accEntries[i].Amount)
				i++
			}
			running[acc.AccountID] = bal
			cursor[acc.AccountID] = i

			converted, err := s.converter.Convert(ctx, bal, acc.CurrencyCode, baseCurrency, b.End)
			if err != nil {
				s.LogError(ctx, err, "Failed to convert balance point",
					slog.String("account_id", acc.AccountID),
					slog.String("from", acc.CurrencyCode),
					slog.String("to", baseCurrency))
				return nil, err
			}
			total = total.Add(converted)
		}
		points = append(points, domain.BalancePoint{Date: b.Start, Balance: total})
	}
	return points, nil
}

// computeNativeBalancesAsOf resolves native balances for a batch of accounts
// as of a date, creating any missing month-start snapshots along the way.
//
// Store calls are bounded regardless of batch size: one snapshot lookup, one
// ledger load, and, only when some account lacks a snapshot for the month of
// asOf, one existence check plus one batch insert.
func (s *balanceService) computeNativeBalancesAsOf(ctx context.Context, accounts []domain.Account, asOf time.Time) (map[string]decimal.Decimal, error) {
	ids := make([]string, 0, len(accounts))
	for _, acc := range accounts {
		ids = append(ids, acc.AccountID)
	}
	monthStart := dates.FirstOfMonth(asOf)

	snaps, err := s.snapshotRepo.FindLatestOnOrBefore(ctx, ids, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshots")
		return nil, err
	}

	// Bound the ledger load to the oldest snapshot date in the batch. An
	// account with no snapshot forces a full-history load.
	loadFrom := monthStart
	for _, acc := range accounts {
		snap, ok := snaps[acc.AccountID]
		if !ok {
			loadFrom = time.Time{}
			break
		}
		if snap.SnapshotDate.Before(loadFrom) {
			loadFrom = snap.SnapshotDate
		}
	}
	entries, err := s.ledgerRepo.FindLedgerEntriesInRange(ctx, ids, loadFrom, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to load ledger entries")
		return nil, err
	}
	byAccount := groupEntries(entries)

	// Accounts whose latest snapshot predates the month of asOf get a fresh
	// month-start snapshot so later reads in the same month are cheap.
	staleIDs := make([]string, 0)
	for _, acc := range accounts {
		snap, ok := snaps[acc.AccountID]
		if !ok || snap.SnapshotDate.Before(monthStart) {
			staleIDs = append(staleIDs, acc.AccountID)
		}
	}
	existing := map[string]domain.BalanceSnapshot{}
	if len(staleIDs) > 0 {
		existing, err = s.snapshotRepo.FindAtDate(ctx, staleIDs, monthStart)
		if err != nil {
			return nil, err
		}
	}

	balances := make(map[string]decimal.Decimal, len(accounts))
	toInsert := make([]domain.BalanceSnapshot, 0, len(staleIDs))
	createdAt := s.now().UTC()
	for _, acc := range accounts {
		var base decimal.Decimal
		var baseDate time.Time
		hasBase := false
		if snap, ok := snaps[acc.AccountID]; ok {
			base = snap.Balance
			baseDate = snap.SnapshotDate
			hasBase = true
		} else {
			base = acc.InitialBalance
		}

		opening := base
		bal := base
		for _, e := range byAccount[acc.AccountID] {
			if hasBase && e.TransactionDate.Before(baseDate) {
				continue
			}
			if e.TransactionDate.Before(monthStart) {
				opening = opening.Add(e.Amount)
			}
			bal = bal.Add(e.Amount)
		}
		balances[acc.AccountID] = bal

		needsSnapshot := !hasBase || baseDate.Before(monthStart)
		if _, already := existing[acc.AccountID]; needsSnapshot && !already {
			toInsert = append(toInsert, domain.BalanceSnapshot{
				SnapshotID:   uuid.NewString(),
				AccountID:    acc.AccountID,
				CurrencyCode: acc.CurrencyCode,
				SnapshotDate: monthStart,
				Balance:      opening,
				CreatedAt:    createdAt,
			})
		}
	}

	if len(toInsert) > 0 {
		if err := s.snapshotRepo.SaveSnapshots(ctx, toInsert); err != nil {
			s.LogError(ctx, err, "Failed to save month snapshots", slog.Int("count", len(toInsert)))
			return nil, err
		}
		s.LogDebug(ctx, "Created month-start snapshots", slog.Int("count", len(toInsert)), slog.Time("snapshot_date", monthStart))
	}
	return balances, nil
}

// groupEntries splits a date-ordered ledger slice per account, preserving order.
func groupEntries(entries []domain.LedgerEntry) map[string][]domain.LedgerEntry {
	byAccount := make(map[string][]domain.LedgerEntry)
	for _, e := range entries {
		byAccount[e.AccountID] = append(byAccount[e.AccountID], e)
	}
	return byAccount
}

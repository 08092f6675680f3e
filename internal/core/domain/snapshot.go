package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot is a cached, rebuildable balance checkpoint.
//
// SnapshotDate is always the first day of a calendar month, and Balance is the
// account balance at the start of that day, in the account's native currency:
//
//	balance == account.initial_balance + sum(tx.amount where tx.date < snapshot_date)
//
// Snapshots are created lazily by the balance engine, deleted by the
// invalidation hook when a transaction mutation makes them stale, and never
// updated in place. Converted balances are never stored; FX is applied at read
// time only. (account_id, snapshot_date) is unique.
type BalanceSnapshot struct {
	SnapshotID   string          `json:"snapshotID"` // Primary Key (UUID)
	AccountID    string          `json:"accountID"`  // FK -> accounts.account_id, cascade-delete
	CurrencyCode string          `json:"currencyCode"`
	SnapshotDate time.Time       `json:"snapshotDate"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdAt"`
}

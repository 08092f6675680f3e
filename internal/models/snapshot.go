package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceSnapshot represents a row in the balance_snapshots table.
// (account_id, snapshot_date) is unique; snapshot_date is always the first day
// of a month. Rows are inserted and deleted, never updated.
type BalanceSnapshot struct {
	SnapshotID   string          `db:"snapshot_id"`
	AccountID    string          `db:"account_id"`
	CurrencyCode string          `db:"currency_code"`
	SnapshotDate time.Time       `db:"snapshot_date"`
	Balance      decimal.Decimal `db:"balance"`
	CreatedAt    time.Time       `db:"created_at"`
}

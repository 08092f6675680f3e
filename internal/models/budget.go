package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a row in the budgets table. Category links live in the
// budget_categories join table.
type Budget struct {
	BudgetID     string          `db:"budget_id"`
	UserID       string          `db:"user_id"`
	AccountID    *string         `db:"account_id"`
	Name         string          `db:"name"`
	Recurrence   string          `db:"recurrence"`
	StartDate    time.Time       `db:"start_date"`
	EndDate      *time.Time      `db:"end_date"`
	Amount       decimal.Decimal `db:"amount"`
	CurrencyCode string          `db:"currency_code"`
	IsDeleted    bool            `db:"is_deleted"`
	AuditFields
}

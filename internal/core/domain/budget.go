package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetRecurrence controls how a budget's spending window is resolved.
type BudgetRecurrence string

const (
	// BudgetOneOff covers the fixed [StartDate, EndDate] span once.
	BudgetOneOff BudgetRecurrence = "NONE"
	// BudgetMonthly resets every calendar month while the budget is active.
	BudgetMonthly BudgetRecurrence = "MONTHLY"
)

// Budget is a spending limit over a set of expense categories, optionally
// scoped to a single account. Amount is a positive limit expressed in
// CurrencyCode; spend in other currencies is converted before comparison.
type Budget struct {
	BudgetID     string           `json:"budgetID"` // Primary Key (UUID)
	UserID       string           `json:"userID"`
	AccountID    *string          `json:"accountID"` // Nullable FK -> accounts.account_id
	Name         string           `json:"name"`
	Recurrence   BudgetRecurrence `json:"recurrence"`
	StartDate    time.Time        `json:"startDate"`
	EndDate      *time.Time       `json:"endDate"` // Nil means open-ended (recurring budgets)
	Amount       decimal.Decimal  `json:"amount"`
	CurrencyCode string           `json:"currencyCode"`
	CategoryIDs  []string         `json:"categoryIDs"` // Empty means all expense spend counts
	IsDeleted    bool             `json:"isDeleted"`
	AuditFields
}

// BudgetStatus is a budget evaluated against actual spend for one window.
// Remaining goes negative when the budget is exceeded.
type BudgetStatus struct {
	Budget      Budget
	PeriodStart time.Time
	PeriodEnd   time.Time
	Spent       decimal.Decimal
	Remaining   decimal.Decimal
}

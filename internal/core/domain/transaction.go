package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds to or removes from an account.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction represents a single signed monetary movement against one account.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	UserID          string          `json:"userID"`        // FK -> users.user_id (Not Null)
	AccountID       string          `json:"accountID"`     // FK -> accounts.account_id (Not Null)
	CategoryID      *string         `json:"categoryID"`    // Nullable FK -> categories.category_id
	TransactionType TransactionType `json:"transactionType"`
	Amount          decimal.Decimal `json:"amount"` // Positive magnitude; sign derived from type
	CurrencyCode    string          `json:"currencyCode"`
	TransactionDate time.Time       `json:"transactionDate"` // Calendar date, no time component
	Description     string          `json:"description"`
	TagIDs          []string        `json:"tagIDs"`
	IsDeleted       bool            `json:"isDeleted"`
	AuditFields
}

// SignedAmount returns the amount with its sign applied: positive for income,
// negative for expense. Balance math only ever uses the signed form.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.TransactionType == Expense {
		return t.Amount.Neg()
	}
	return t.Amount
}

// LedgerEntry is the minimal projection of a transaction used by the balance
// engine: which account, which day, how much (signed).
type LedgerEntry struct {
	AccountID       string
	TransactionDate time.Time
	Amount          decimal.Decimal
}

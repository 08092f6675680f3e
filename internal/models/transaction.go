package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a transaction.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// Transaction represents a row in the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	UserID          string          `db:"user_id"`
	AccountID       string          `db:"account_id"`
	CategoryID      *string         `db:"category_id"`
	TransactionType TransactionType `db:"transaction_type"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	TransactionDate time.Time       `db:"transaction_date"`
	Description     string          `db:"description"`
	IsDeleted       bool            `db:"is_deleted"`
	AuditFields
}

// TransactionTag represents a row in the transaction_tags join table.
type TransactionTag struct {
	TransactionID string `db:"transaction_id"`
	TagID         string `db:"tag_id"`
}

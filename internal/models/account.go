package models

import (
	"github.com/shopspring/decimal"
)

// AccountType classifies a financial account.
type AccountType string

const (
	Cash       AccountType = "CASH"
	CreditCard AccountType = "CREDIT_CARD"
	DebitCard  AccountType = "DEBIT_CARD"
)

// Account represents a row in the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	UserID         string          `db:"user_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	CurrencyCode   string          `db:"currency_code"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	IsDeleted      bool            `db:"is_deleted"`
	AuditFields
}

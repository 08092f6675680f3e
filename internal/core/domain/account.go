package domain

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

// Account represents a financial account owned by a user.
// This is the primary representation used by services.
type Account struct {
	AccountID      string          `json:"accountID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`    // FK -> users.user_id (NON-NULL)
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"`
	InitialBalance decimal.Decimal `json:"initialBalance"` // Signed; balance before the first transaction
	IsDeleted      bool            `json:"isDeleted"`      // Soft delete; never hard-deleted while referenced
	AuditFields
}

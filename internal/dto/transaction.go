package dto

import (
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Date is a calendar date in YYYY-MM-DD form; the service parses and
// normalizes it.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountID" binding:"required,uuid"`
	CategoryID      *string                `json:"categoryID" binding:"omitempty,uuid"`
	TransactionType domain.TransactionType `json:"transactionType" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"required"`
	Date            string                 `json:"date" binding:"required"`
	Description     string                 `json:"description"`
	TagIDs          []string               `json:"tagIDs" binding:"omitempty,dive,uuid"`
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateTransactionRequest struct {
	AccountID       *string                 `json:"accountID" binding:"omitempty,uuid"`
	CategoryID      *string                 `json:"categoryID" binding:"omitempty,uuid"`
	TransactionType *domain.TransactionType `json:"transactionType" binding:"omitempty,oneof=INCOME EXPENSE"`
	Amount          *decimal.Decimal        `json:"amount"`
	Date            *string                 `json:"date"`
	Description     *string                 `json:"description"`
	TagIDs          *[]string               `json:"tagIDs" binding:"omitempty,dive,uuid"`
}

// ListTransactionsParams carries the query parameters for transaction listing.
type ListTransactionsParams struct {
	AccountID  *string                 `form:"accountID" binding:"omitempty,uuid"`
	CategoryID *string                 `form:"categoryID" binding:"omitempty,uuid"`
	TagID      *string                 `form:"tagID" binding:"omitempty,uuid"`
	Type       *domain.TransactionType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	DateFrom   *string                 `form:"dateFrom"`
	DateTo     *string                 `form:"dateTo"`
	AmountMin  *decimal.Decimal        `form:"amountMin"`
	AmountMax  *decimal.Decimal        `form:"amountMax"`
	Limit      int                     `form:"limit,default=50" binding:"omitempty,min=1,max=200"`
	NextToken  string                  `form:"nextToken"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	AccountID       string                 `json:"accountID"`
	CategoryID      *string                `json:"categoryID"`
	TransactionType domain.TransactionType `json:"transactionType"`
	Amount          decimal.Decimal        `json:"amount"`
	SignedAmount    decimal.Decimal        `json:"signedAmount"`
	CurrencyCode    string                 `json:"currencyCode"`
	Date            string                 `json:"date"`
	Description     string                 `json:"description"`
	TagIDs          []string               `json:"tagIDs"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps a page of transactions plus the cursor for
// the next page (empty when exhausted).
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		CategoryID:      txn.CategoryID,
		TransactionType: txn.TransactionType,
		Amount:          txn.Amount,
		SignedAmount:    txn.SignedAmount(),
		CurrencyCode:    txn.CurrencyCode,
		Date:            txn.TransactionDate.Format("2006-01-02"),
		Description:     txn.Description,
		TagIDs:          txn.TagIDs,
		CreatedAt:       txn.CreatedAt,
		LastUpdatedAt:   txn.LastUpdatedAt,
	}
}

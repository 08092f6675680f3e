package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountBalance is one account's balance at a point in time, in its native
// currency and converted to the requested base currency.
type AccountBalance struct {
	AccountID        string          `json:"accountID"`
	AccountName      string          `json:"accountName"`
	CurrencyCode     string          `json:"currencyCode"`
	BalanceNative    decimal.Decimal `json:"balanceNative"`
	BalanceConverted decimal.Decimal `json:"balanceConverted"`
}

// BalancePoint is one point of a balance history series. Date is the bucket
// start; Balance is the cumulative total balance as of the end of the bucket,
// in the requested base currency.
type BalancePoint struct {
	Date    time.Time       `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// CashflowPoint aggregates income and expense over one reporting bucket.
type CashflowPoint struct {
	BucketStart time.Time       `json:"bucketStart"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Net         decimal.Decimal `json:"net"`
}

// PeriodTotals holds aggregated sums for one date range.
type PeriodTotals struct {
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// PeriodComparison contrasts a date range with the preceding range of equal length.
type PeriodComparison struct {
	Current  PeriodTotals `json:"current"`
	Previous PeriodTotals `json:"previous"`
}

// CategorySummaryRow is one category's aggregated activity over a date range.
type CategorySummaryRow struct {
	CategoryID       string          `json:"categoryID"`
	Name             string          `json:"name"`
	Type             CategoryType    `json:"type"`
	NetAmount        decimal.Decimal `json:"netAmount"`
	TransactionCount int64           `json:"transactionCount"`
}

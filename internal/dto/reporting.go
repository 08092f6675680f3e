package dto

import (
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceResponse is the envelope for the total-balance endpoint.
type BalanceResponse struct {
	AsOf     string          `json:"asOf"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"`
}

// AccountBalanceResponse is one account's balance within the accounts-balance report.
type AccountBalanceResponse struct {
	AccountID        string          `json:"accountID"`
	AccountName      string          `json:"accountName"`
	CurrencyCode     string          `json:"currencyCode"`
	BalanceNative    decimal.Decimal `json:"balanceNative"`
	BalanceConverted decimal.Decimal `json:"balanceConverted"`
}

// AccountsBalanceResponse is the envelope for the per-account balance endpoint.
type AccountsBalanceResponse struct {
	AsOf     string                   `json:"asOf"`
	Currency string                   `json:"currency"`
	Accounts []AccountBalanceResponse `json:"accounts"`
	Total    decimal.Decimal          `json:"total"`
}

// BalancePointResponse is one point of a balance history series.
type BalancePointResponse struct {
	Date    string          `json:"date"`
	Balance decimal.Decimal `json:"balance"`
}

// BalanceHistoryResponse is the envelope for the balance-history endpoint.
type BalanceHistoryResponse struct {
	From        string                 `json:"from"`
	To          string                 `json:"to"`
	Granularity string                 `json:"granularity"`
	Currency    string                 `json:"currency"`
	Points      []BalancePointResponse `json:"points"`
}

// CashflowPointResponse is one bucket of the cashflow report.
type CashflowPointResponse struct {
	BucketStart string          `json:"bucketStart"`
	Income      decimal.Decimal `json:"income"`
	Expense     decimal.Decimal `json:"expense"`
	Net         decimal.Decimal `json:"net"`
}

// CashflowResponse is the envelope for the cashflow endpoint.
type CashflowResponse struct {
	From        string                  `json:"from"`
	To          string                  `json:"to"`
	Granularity string                  `json:"granularity"`
	Points      []CashflowPointResponse `json:"points"`
}

// PeriodTotalsResponse holds aggregated sums for one date range.
type PeriodTotalsResponse struct {
	From    string          `json:"from"`
	To      string          `json:"to"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// PeriodComparisonResponse contrasts a range with the preceding equal-length range.
type PeriodComparisonResponse struct {
	Current  PeriodTotalsResponse `json:"current"`
	Previous PeriodTotalsResponse `json:"previous"`
}

// CategorySummaryRowResponse is one category's aggregated activity.
type CategorySummaryRowResponse struct {
	CategoryID       string          `json:"categoryID"`
	Name             string          `json:"name"`
	Type             string          `json:"type"`
	NetAmount        decimal.Decimal `json:"netAmount"`
	TransactionCount int64           `json:"transactionCount"`
}

// CategorySummaryResponse is the envelope for the category-summary endpoint.
type CategorySummaryResponse struct {
	From       string                       `json:"from"`
	To         string                       `json:"to"`
	Categories []CategorySummaryRowResponse `json:"categories"`
}

const dateLayout = "2006-01-02"

// ToBalanceHistoryResponse converts domain balance points to a history response.
func ToBalanceHistoryResponse(points []domain.BalancePoint, from, to, granularity, currency string) BalanceHistoryResponse {
	resp := BalanceHistoryResponse{
		From:        from,
		To:          to,
		Granularity: granularity,
		Currency:    currency,
		Points:      make([]BalancePointResponse, len(points)),
	}
	for i, p := range points {
		resp.Points[i] = BalancePointResponse{
			Date:    p.Date.Format(dateLayout),
			Balance: p.Balance,
		}
	}
	return resp
}

// ToAccountsBalanceResponse converts per-account balances to the report envelope.
func ToAccountsBalanceResponse(balances []domain.AccountBalance, total decimal.Decimal, asOf, currency string) AccountsBalanceResponse {
	resp := AccountsBalanceResponse{
		AsOf:     asOf,
		Currency: currency,
		Accounts: make([]AccountBalanceResponse, len(balances)),
		Total:    total,
	}
	for i, b := range balances {
		resp.Accounts[i] = AccountBalanceResponse{
			AccountID:        b.AccountID,
			AccountName:      b.AccountName,
			CurrencyCode:     b.CurrencyCode,
			BalanceNative:    b.BalanceNative,
			BalanceConverted: b.BalanceConverted,
		}
	}
	return resp
}

// ToCashflowResponse converts domain cashflow points to the report envelope.
func ToCashflowResponse(points []domain.CashflowPoint, from, to, granularity string) CashflowResponse {
	resp := CashflowResponse{
		From:        from,
		To:          to,
		Granularity: granularity,
		Points:      make([]CashflowPointResponse, len(points)),
	}
	for i, p := range points {
		resp.Points[i] = CashflowPointResponse{
			BucketStart: p.BucketStart.Format(dateLayout),
			Income:      p.Income,
			Expense:     p.Expense,
			Net:         p.Net,
		}
	}
	return resp
}

// ToPeriodComparisonResponse converts a domain period comparison to its envelope.
func ToPeriodComparisonResponse(cmp *domain.PeriodComparison) PeriodComparisonResponse {
	toTotals := func(t domain.PeriodTotals) PeriodTotalsResponse {
		return PeriodTotalsResponse{
			From:    t.From.Format(dateLayout),
			To:      t.To.Format(dateLayout),
			Income:  t.Income,
			Expense: t.Expense,
			Net:     t.Net,
		}
	}
	return PeriodComparisonResponse{
		Current:  toTotals(cmp.Current),
		Previous: toTotals(cmp.Previous),
	}
}

// ToCategorySummaryResponse converts domain category summary rows to the envelope.
func ToCategorySummaryResponse(rows []domain.CategorySummaryRow, from, to string) CategorySummaryResponse {
	resp := CategorySummaryResponse{
		From:       from,
		To:         to,
		Categories: make([]CategorySummaryRowResponse, len(rows)),
	}
	for i, r := range rows {
		resp.Categories[i] = CategorySummaryRowResponse{
			CategoryID:       r.CategoryID,
			Name:             r.Name,
			Type:             string(r.Type),
			NetAmount:        r.NetAmount,
			TransactionCount: r.TransactionCount,
		}
	}
	return resp
}

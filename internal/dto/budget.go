package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// CreateBudgetRequest defines the data needed to create a budget. Dates are
// calendar dates in YYYY-MM-DD form; the service parses and normalizes them.
type CreateBudgetRequest struct {
	Name         string                  `json:"name" binding:"required"`
	AccountID    *string                 `json:"accountID" binding:"omitempty,uuid"`
	Recurrence   domain.BudgetRecurrence `json:"recurrence" binding:"required,oneof=NONE MONTHLY"`
	StartDate    string                  `json:"startDate" binding:"required"`
	EndDate      *string                 `json:"endDate"`
	Amount       decimal.Decimal         `json:"amount" binding:"required"`
	CurrencyCode string                  `json:"currencyCode" binding:"required,currencycode"`
	CategoryIDs  []string                `json:"categoryIDs" binding:"omitempty,dive,uuid"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBudgetRequest struct {
	Name        *string                  `json:"name"`
	AccountID   *string                  `json:"accountID" binding:"omitempty,uuid"`
	Recurrence  *domain.BudgetRecurrence `json:"recurrence" binding:"omitempty,oneof=NONE MONTHLY"`
	StartDate   *string                  `json:"startDate"`
	EndDate     *string                  `json:"endDate"`
	Amount      *decimal.Decimal         `json:"amount"`
	CategoryIDs *[]string                `json:"categoryIDs" binding:"omitempty,dive,uuid"`
}

// BudgetResponse defines the data returned for a budget.
type BudgetResponse struct {
	BudgetID      string                  `json:"budgetID"`
	Name          string                  `json:"name"`
	AccountID     *string                 `json:"accountID"`
	Recurrence    domain.BudgetRecurrence `json:"recurrence"`
	StartDate     string                  `json:"startDate"`
	EndDate       *string                 `json:"endDate"`
	Amount        decimal.Decimal         `json:"amount"`
	CurrencyCode  string                  `json:"currencyCode"`
	CategoryIDs   []string                `json:"categoryIDs"`
	CreatedAt     time.Time               `json:"createdAt"`
	LastUpdatedAt time.Time               `json:"lastUpdatedAt"`
}

// ListBudgetsResponse wraps a list of budgets.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// BudgetStatusResponse is a budget evaluated against actual spend for the
// window containing the requested date.
type BudgetStatusResponse struct {
	Budget      BudgetResponse  `json:"budget"`
	PeriodStart string          `json:"periodStart"`
	PeriodEnd   string          `json:"periodEnd"`
	Spent       decimal.Decimal `json:"spent"`
	Remaining   decimal.Decimal `json:"remaining"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	resp := BudgetResponse{
		BudgetID:      b.BudgetID,
		Name:          b.Name,
		AccountID:     b.AccountID,
		Recurrence:    b.Recurrence,
		StartDate:     b.StartDate.Format("2006-01-02"),
		Amount:        b.Amount,
		CurrencyCode:  b.CurrencyCode,
		CategoryIDs:   b.CategoryIDs,
		CreatedAt:     b.CreatedAt,
		LastUpdatedAt: b.LastUpdatedAt,
	}
	if b.EndDate != nil {
		end := b.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	return resp
}

// ToBudgetStatusResponse converts a domain.BudgetStatus to its DTO.
func ToBudgetStatusResponse(s *domain.BudgetStatus) BudgetStatusResponse {
	return BudgetStatusResponse{
		Budget:      ToBudgetResponse(&s.Budget),
		PeriodStart: s.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   s.PeriodEnd.Format("2006-01-02"),
		Spent:       s.Spent,
		Remaining:   s.Remaining,
	}
}

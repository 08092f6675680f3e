package dto

import (
	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// InstallmentItem is one slice of a payment plan as submitted by the client.
// Numbering is assigned by the service in list order.
type InstallmentItem struct {
	Amount  decimal.Decimal `json:"amount" binding:"required"`
	DueDate string          `json:"dueDate" binding:"required"`
}

// SetInstallmentsRequest replaces a transaction's payment plan wholesale.
type SetInstallmentsRequest struct {
	Installments []InstallmentItem `json:"installments" binding:"required,min=1,dive"`
}

// InstallmentResponse defines the data returned for one installment.
type InstallmentResponse struct {
	InstallmentID     string          `json:"installmentID"`
	InstallmentNumber int             `json:"installmentNumber"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           string          `json:"dueDate"`
}

// ListInstallmentsResponse wraps a transaction's payment plan.
type ListInstallmentsResponse struct {
	TransactionID string                `json:"transactionID"`
	Installments  []InstallmentResponse `json:"installments"`
}

// ToInstallmentResponse converts a domain.Installment to its DTO.
func ToInstallmentResponse(inst *domain.Installment) InstallmentResponse {
	return InstallmentResponse{
		InstallmentID:     inst.InstallmentID,
		InstallmentNumber: inst.InstallmentNumber,
		Amount:            inst.Amount,
		DueDate:           inst.DueDate.Format("2006-01-02"),
	}
}

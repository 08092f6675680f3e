package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment represents a row in the installments table.
type Installment struct {
	InstallmentID     string          `db:"installment_id"`
	TransactionID     string          `db:"transaction_id"`
	InstallmentNumber int             `db:"installment_number"`
	Amount            decimal.Decimal `db:"amount"`
	DueDate           time.Time       `db:"due_date"`
	AuditFields
}

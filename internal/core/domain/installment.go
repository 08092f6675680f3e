package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Installment is one slice of a transaction's payment plan. Plans are stored
// as an ordered list numbered from 1; installments never feed the balance
// engine, the parent transaction alone moves the ledger.
type Installment struct {
	InstallmentID     string          `json:"installmentID"` // Primary Key (UUID)
	TransactionID     string          `json:"transactionID"` // FK -> transactions.transaction_id
	InstallmentNumber int             `json:"installmentNumber"`
	Amount            decimal.Decimal `json:"amount"`
	DueDate           time.Time       `json:"dueDate"`
	AuditFields
}

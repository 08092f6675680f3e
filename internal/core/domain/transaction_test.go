package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

func TestTransaction_SignedAmount(t *testing.T) {
	tests := []struct {
		name        string
		transaction domain.Transaction
		want        string
	}{
		{
			name: "income keeps its sign",
			transaction: domain.Transaction{
				TransactionType: domain.Income,
				Amount:          decimal.RequireFromString("100.50"),
			},
			want: "100.50",
		},
		{
			name: "expense is negated",
			transaction: domain.Transaction{
				TransactionType: domain.Expense,
				Amount:          decimal.RequireFromString("42.25"),
			},
			want: "-42.25",
		},
		{
			name: "zero amount stays zero",
			transaction: domain.Transaction{
				TransactionType: domain.Expense,
				Amount:          decimal.Zero,
			},
			want: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.transaction.SignedAmount()
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
				"SignedAmount() = %s, want %s", got, tt.want)
		})
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate holds a conversion rate between two currencies, effective from a
// given date. The converter picks the latest rate effective on or before the
// requested date so conversions stay deterministic for a fixed as-of date.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"` // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"`
	ToCurrencyCode   string          `json:"toCurrencyCode"`
	Rate             decimal.Decimal `json:"rate"`
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

package repositories

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// ExchangeRateRepository defines operations for exchange rate data.
type ExchangeRateRepository interface {
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
	ListExchangeRates(ctx context.Context) ([]domain.ExchangeRate, error)

	// FindRateEffectiveOn returns the latest rate for the currency pair with
	// date_effective <= asOf, or ErrNotFound when no rate covers the date.
	FindRateEffectiveOn(ctx context.Context, fromCurrency, toCurrency string, asOf time.Time) (*domain.ExchangeRate, error)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
)

// currencyConverterService converts amounts using the stored exchange rates.
type currencyConverterService struct {
	BaseService
	rateRepo portsrepo.ExchangeRateRepository
}

// NewCurrencyConverterService creates a new currency converter.
func NewCurrencyConverterService(rateRepo portsrepo.ExchangeRateRepository) portssvc.CurrencyConverterSvc {
	return &currencyConverterService{rateRepo: rateRepo}
}

var _ portssvc.CurrencyConverterSvc = (*currencyConverterService)(nil)

// Convert converts amount from one currency to another at the rate effective
// on asOf. Identical currencies convert at par without a rate lookup; a
// missing rate is an error, never an implicit 1:1 fallback.
func (s *currencyConverterService) Convert(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string, asOf time.Time) (decimal.Decimal, error) {
	if fromCurrency == toCurrency {
		return amount, nil
	}

	rate, err := s.rateRepo.FindRateEffectiveOn(ctx, fromCurrency, toCurrency, asOf)
	if err == nil {
		return amount.Mul(rate.Rate), nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, err
	}

	// Try the inverse pair before giving up.
	inverse, invErr := s.rateRepo.FindRateEffectiveOn(ctx, toCurrency, fromCurrency, asOf)
	if invErr != nil {
		if errors.Is(invErr, apperrors.ErrNotFound) {
			return decimal.Zero, fmt.Errorf("%w: no exchange rate from %s to %s on or before %s", apperrors.ErrConversion, fromCurrency, toCurrency, asOf.Format("2006-01-02"))
		}
		return decimal.Zero, invErr
	}
	if inverse.Rate.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: zero inverse rate from %s to %s", apperrors.ErrConversion, toCurrency, fromCurrency)
	}
	return amount.DivRound(inverse.Rate, 8), nil
}

package services

import (
	"context"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade converts amounts between the base currency and any
// active transaction currency. Rounding is half-away-from-zero, applied once
// at the end of the multiplication.
type ConversionSvcFacade interface {
	// ToBase converts an amount in fromCurrency to the base currency, rounded
	// to the base currency's 2 decimal places. Identity (rate exactly 1, no
	// rounding) when fromCurrency is the base currency.
	ToBase(ctx context.Context, amount decimal.Decimal, fromCurrencyCode string) (*domain.ConversionResult, error)

	// FromBase converts a base-currency amount to toCurrency, rounded to the
	// target currency's configured decimal places.
	FromBase(ctx context.Context, amount decimal.Decimal, toCurrencyCode string) (*domain.ConversionResult, error)

	// BaseCurrency returns the configured base currency code.
	BaseCurrency() string
}

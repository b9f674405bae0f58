package services

import (
	"context"
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// RateSvcFacade is the rate repository contract: append-only observation
// history plus current-rate and staleness queries.
type RateSvcFacade interface {
	// RecordRate appends a rate observation. Fails with ErrInvalidRate when
	// rate <= 0 and ErrInvalidCurrency when either currency is unknown.
	RecordRate(ctx context.Context, req dto.RecordRateRequest, recordedByUserID string) (*domain.ExchangeRate, error)

	// CurrentRate returns the conversion rate from -> to as of now: 1 for the
	// same currency, the latest direct observation, or the inverse of the
	// latest reverse observation. Fails with ErrRateNotFound when neither
	// direction has any observation.
	CurrentRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (decimal.Decimal, error)

	// RateAsOf is CurrentRate evaluated at an arbitrary point in time.
	RateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (decimal.Decimal, error)

	// RateStaleness reports the age of the most recent observation across all
	// pairs.
	RateStaleness(ctx context.Context) (*domain.RateStaleness, error)

	// ListRates retrieves the observation history, newest first.
	ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int) ([]domain.ExchangeRate, error)
}

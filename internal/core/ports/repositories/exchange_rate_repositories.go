package repositories

import (
	"context"
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
)

// ExchangeRateReader defines read operations over the append-only rate history.
type ExchangeRateReader interface {
	// FindLatestRate retrieves the most recent observation for the exact
	// (from, to) direction with dateEffective <= asOf. Inverse derivation is
	// the rate service's job, not the repository's.
	FindLatestRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (*domain.ExchangeRate, error)

	// FindLatestObservation retrieves the single most recent observation
	// across all pairs, used for the staleness check.
	FindLatestObservation(ctx context.Context) (*domain.ExchangeRate, error)

	// ListExchangeRates retrieves observations, newest first, optionally
	// filtered by pair.
	ListExchangeRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int) ([]domain.ExchangeRate, error)
}

// ExchangeRateWriter defines write operations for rate observations.
type ExchangeRateWriter interface {
	// SaveExchangeRate appends a new observation. The history is append-only;
	// existing observations are never updated.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate) error
}

// ExchangeRateRepositoryFacade combines all exchange-rate repository interfaces.
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}

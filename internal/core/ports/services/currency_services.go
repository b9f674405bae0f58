package services

import (
	"context"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/sahab-erp/sahab-backend/internal/dto"
)

// CurrencySvcFacade defines currency administration operations.
type CurrencySvcFacade interface {
	// CreateCurrency registers a new currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves a currency by its 3-letter code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// DeactivateCurrency marks a currency inactive. Historical transactions
	// keep referencing it; currencies are never deleted.
	DeactivateCurrency(ctx context.Context, currencyCode string, updaterUserID string) error
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
)

// currencyService provides currency administration.
type currencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorUserID string) (*domain.Currency, error) {
	// Basic format validation (required, len=3, uppercase) is handled by DTO binding.
	precision := domain.DefaultCurrencyPrecision
	if req.Precision != nil {
		precision = *req.Precision
	}

	now := time.Now().UTC()
	currency := domain.Currency{
		CurrencyCode: req.CurrencyCode,
		Symbol:       req.Symbol,
		Name:         req.Name,
		Precision:    precision,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to create currency in service: %w", err)
	}
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: currency '%s' is not registered", apperrors.ErrInvalidCurrency, currencyCode)
		}
		return nil, fmt.Errorf("failed to get currency by code in service: %w", err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list currencies in service: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) DeactivateCurrency(ctx context.Context, currencyCode string, updaterUserID string) error {
	// Deactivation only; currencies referenced by historical transactions are
	// never deleted.
	if _, err := s.GetCurrencyByCode(ctx, currencyCode); err != nil {
		return err
	}
	if err := s.currencyRepo.SetCurrencyActive(ctx, currencyCode, false, updaterUserID); err != nil {
		return fmt.Errorf("failed to deactivate currency in service: %w", err)
	}
	return nil
}

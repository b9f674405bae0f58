package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
)

// conversionService converts amounts between the base currency and any
// transaction currency using the rate service. It never substitutes a default
// rate for an unmapped currency: conversion for a pair without observations
// fails with ErrRateNotFound.
type conversionService struct {
	rateSvc      portssvc.RateSvcFacade
	currencySvc  portssvc.CurrencySvcFacade
	baseCurrency string
	now          func() time.Time
}

// NewConversionService creates a new ConversionService bound to the
// configured base currency.
func NewConversionService(rateSvc portssvc.RateSvcFacade, currencySvc portssvc.CurrencySvcFacade, baseCurrency string) portssvc.ConversionSvcFacade {
	return &conversionService{
		rateSvc:      rateSvc,
		currencySvc:  currencySvc,
		baseCurrency: strings.ToUpper(baseCurrency),
		now:          time.Now,
	}
}

var _ portssvc.ConversionSvcFacade = (*conversionService)(nil)

func (s *conversionService) BaseCurrency() string {
	return s.baseCurrency
}

func (s *conversionService) ToBase(ctx context.Context, amount decimal.Decimal, fromCurrencyCode string) (*domain.ConversionResult, error) {
	fromCode := strings.ToUpper(fromCurrencyCode)
	now := s.now().UTC()

	if fromCode == s.baseCurrency {
		// Identity: rate exactly 1 and no rounding drift.
		return &domain.ConversionResult{
			OriginalAmount:   amount,
			OriginalCurrency: fromCode,
			ConvertedAmount:  amount,
			TargetCurrency:   s.baseCurrency,
			Rate:             decimal.NewFromInt(1),
			Date:             now,
		}, nil
	}

	rate, err := s.rateSvc.CurrentRate(ctx, fromCode, s.baseCurrency)
	if err != nil {
		return nil, err
	}

	// One multiplication, one terminal rounding. The base currency is fixed
	// at two decimal places.
	converted := amount.Mul(rate).Round(domain.BaseCurrencyPrecision)
	return &domain.ConversionResult{
		OriginalAmount:   amount,
		OriginalCurrency: fromCode,
		ConvertedAmount:  converted,
		TargetCurrency:   s.baseCurrency,
		Rate:             rate,
		Date:             now,
	}, nil
}

func (s *conversionService) FromBase(ctx context.Context, amount decimal.Decimal, toCurrencyCode string) (*domain.ConversionResult, error) {
	toCode := strings.ToUpper(toCurrencyCode)
	now := s.now().UTC()

	if toCode == s.baseCurrency {
		return &domain.ConversionResult{
			OriginalAmount:   amount,
			OriginalCurrency: s.baseCurrency,
			ConvertedAmount:  amount,
			TargetCurrency:   toCode,
			Rate:             decimal.NewFromInt(1),
			Date:             now,
		}, nil
	}

	rate, err := s.rateSvc.CurrentRate(ctx, s.baseCurrency, toCode)
	if err != nil {
		return nil, err
	}

	precision, err := s.targetPrecision(ctx, toCode)
	if err != nil {
		return nil, err
	}

	converted := amount.Mul(rate).Round(int32(precision))
	return &domain.ConversionResult{
		OriginalAmount:   amount,
		OriginalCurrency: s.baseCurrency,
		ConvertedAmount:  converted,
		TargetCurrency:   toCode,
		Rate:             rate,
		Date:             now,
	}, nil
}

// targetPrecision looks up the target currency's configured decimal places,
// defaulting to 2 when the currency record carries none.
func (s *conversionService) targetPrecision(ctx context.Context, currencyCode string) (int, error) {
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCurrency) || errors.Is(err, apperrors.ErrNotFound) {
			return domain.DefaultCurrencyPrecision, nil
		}
		return 0, fmt.Errorf("failed to resolve precision for %s: %w", currencyCode, err)
	}
	if currency.Precision < 0 {
		return domain.DefaultCurrencyPrecision, nil
	}
	return currency.Precision, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/sahab-erp/sahab-backend/internal/middleware"
)

// rateService manages the append-only exchange-rate observation history.
type rateService struct {
	rateRepo       portsrepo.ExchangeRateRepositoryFacade
	currencySvc    portssvc.CurrencySvcFacade
	notifier       portssvc.NotificationGateway
	staleAfterDays int
	now            func() time.Time
}

// NewRateService creates a new RateService. staleAfterDays controls when
// RateStaleness flips to stale (the default policy is 7 days).
func NewRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencySvc portssvc.CurrencySvcFacade, notifier portssvc.NotificationGateway, staleAfterDays int) portssvc.RateSvcFacade {
	return &rateService{
		rateRepo:       rateRepo,
		currencySvc:    currencySvc,
		notifier:       notifier,
		staleAfterDays: staleAfterDays,
		now:            time.Now,
	}
}

var _ portssvc.RateSvcFacade = (*rateService)(nil)

func (s *rateService) RecordRate(ctx context.Context, req dto.RecordRateRequest, recordedByUserID string) (*domain.ExchangeRate, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s for %s->%s", apperrors.ErrInvalidRate, req.Rate.String(), req.FromCurrencyCode, req.ToCurrencyCode)
	}

	fromCode := strings.ToUpper(req.FromCurrencyCode)
	toCode := strings.ToUpper(req.ToCurrencyCode)
	if fromCode == toCode {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrInvalidCurrency)
	}

	// Both currencies must be registered before rates can be observed.
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, fromCode); err != nil {
		return nil, err
	}
	if _, err := s.currencySvc.GetCurrencyByCode(ctx, toCode); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	rate := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: fromCode,
		ToCurrencyCode:   toCode,
		Rate:             req.Rate,
		DateEffective:    req.ObservedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     recordedByUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: recordedByUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate); err != nil {
		return nil, fmt.Errorf("failed to record exchange rate in service: %w", err)
	}

	logger.Info("Exchange rate recorded",
		"from", fromCode, "to", toCode, "rate", req.Rate.String())
	return &rate, nil
}

func (s *rateService) CurrentRate(ctx context.Context, fromCurrencyCode, toCurrencyCode string) (decimal.Decimal, error) {
	return s.RateAsOf(ctx, fromCurrencyCode, toCurrencyCode, s.now())
}

// RateAsOf resolves the conversion rate for a pair: identity for the same
// currency, the latest direct observation at or before asOf, or the
// multiplicative inverse of the latest reverse observation when only that
// direction was stored.
func (s *rateService) RateAsOf(ctx context.Context, fromCurrencyCode, toCurrencyCode string, asOf time.Time) (decimal.Decimal, error) {
	fromCode := strings.ToUpper(fromCurrencyCode)
	toCode := strings.ToUpper(toCurrencyCode)

	if fromCode == toCode {
		return decimal.NewFromInt(1), nil
	}

	direct, err := s.rateRepo.FindLatestRate(ctx, fromCode, toCode, asOf)
	if err == nil {
		return direct.Rate, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up exchange rate %s->%s: %w", fromCode, toCode, err)
	}

	inverse, invErr := s.rateRepo.FindLatestRate(ctx, toCode, fromCode, asOf)
	if invErr == nil {
		if inverse.Rate.IsZero() {
			// A zero observation cannot exist (RecordRate rejects it), but a
			// division by zero must never escape here.
			return decimal.Zero, fmt.Errorf("%w: stored rate %s->%s is zero", apperrors.ErrRateNotFound, toCode, fromCode)
		}
		return decimal.NewFromInt(1).Div(inverse.Rate), nil
	}
	if !errors.Is(invErr, apperrors.ErrNotFound) {
		return decimal.Zero, fmt.Errorf("failed to look up inverse exchange rate %s->%s: %w", toCode, fromCode, invErr)
	}

	return decimal.Zero, fmt.Errorf("%w: no observation for %s->%s in either direction", apperrors.ErrRateNotFound, fromCode, toCode)
}

func (s *rateService) RateStaleness(ctx context.Context) (*domain.RateStaleness, error) {
	latest, err := s.rateRepo.FindLatestObservation(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// No observation at all: report stale with a sentinel age.
			s.notifyStale(ctx, math.MaxInt32)
			return &domain.RateStaleness{
				IsStale:         true,
				DaysSinceUpdate: math.MaxInt32,
				LastUpdate:      nil,
			}, nil
		}
		return nil, fmt.Errorf("failed to check rate staleness in service: %w", err)
	}

	days := int(s.now().UTC().Sub(latest.DateEffective.UTC()).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if days >= s.staleAfterDays {
		s.notifyStale(ctx, days)
	}
	lastUpdate := latest.DateEffective
	return &domain.RateStaleness{
		IsStale:         days >= s.staleAfterDays,
		DaysSinceUpdate: days,
		LastUpdate:      &lastUpdate,
	}, nil
}

func (s *rateService) notifyStale(ctx context.Context, days int) {
	s.notifier.Publish(ctx, portssvc.Event{
		Name:       "rates.stale",
		OccurredAt: s.now().UTC(),
		Fields: map[string]any{
			"daysSinceUpdate": days,
			"staleAfterDays":  s.staleAfterDays,
		},
	})
}

func (s *rateService) ListRates(ctx context.Context, fromCurrencyCode, toCurrencyCode *string, limit int) ([]domain.ExchangeRate, error) {
	rates, err := s.rateRepo.ListExchangeRates(ctx, fromCurrencyCode, toCurrencyCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list exchange rates in service: %w", err)
	}
	if rates == nil {
		return []domain.ExchangeRate{}, nil
	}
	return rates, nil
}

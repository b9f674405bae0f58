package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
	"github.com/sahab-erp/sahab-backend/internal/dto"
	"github.com/sahab-erp/sahab-backend/internal/middleware"
)

// Gain/loss magnitudes below this (in base currency) are treated as rounding
// noise and excluded from the exposure report.
var fxMaterialityThreshold = decimal.NewFromFloat(0.01)

// fxService reprices foreign-currency transactions at the current rate and
// reports the difference against their frozen valuation. The report is derived
// on demand and never persisted.
type fxService struct {
	recordStore portsrepo.RecordStoreFacade
	rateSvc     portssvc.RateSvcFacade
	conversion  portssvc.ConversionSvcFacade
	now         func() time.Time
}

// NewFxService creates a new FxService.
func NewFxService(recordStore portsrepo.RecordStoreFacade, rateSvc portssvc.RateSvcFacade, conversion portssvc.ConversionSvcFacade) portssvc.FxSvcFacade {
	return &fxService{
		recordStore: recordStore,
		rateSvc:     rateSvc,
		conversion:  conversion,
		now:         time.Now,
	}
}

var _ portssvc.FxSvcFacade = (*fxService)(nil)

func (s *fxService) ComputeExposure(ctx context.Context, query dto.FxExposureQuery) (*domain.FxExposureReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if query.To.Before(query.From) {
		return nil, fmt.Errorf("%w: date range end precedes start", apperrors.ErrValidation)
	}

	sales, err := s.recordStore.ListSalesByDateRange(ctx, query.OrganizationID, query.From, query.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales for exposure report: %w", err)
	}
	purchases, err := s.recordStore.ListPurchasesByDateRange(ctx, query.OrganizationID, query.From, query.To)
	if err != nil {
		return nil, fmt.Errorf("failed to list purchases for exposure report: %w", err)
	}

	report := &domain.FxExposureReport{
		Records:    []domain.FxExposureRecord{},
		ByCurrency: map[string]domain.FxTotals{},
	}
	skipped := 0

	for i := range sales {
		rec, ok, err := s.reprice(ctx, sales[i].SaleID, domain.SourceSale, sales[i].Valuation, sales[i].Status)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}
		s.fold(report, rec, query)
	}
	for i := range purchases {
		rec, ok, err := s.reprice(ctx, purchases[i].PurchaseID, domain.SourcePurchase, purchases[i].Valuation, purchases[i].Status)
		if err != nil {
			return nil, err
		}
		if !ok {
			skipped++
			continue
		}
		s.fold(report, rec, query)
	}

	logger.Info("FX exposure computed",
		slog.Int("records", len(report.Records)),
		slog.Int("skipped", skipped),
		slog.String("net", report.Totals.Net.String()))
	return report, nil
}

// reprice converts one transaction's display amount at today's rate and
// compares against its frozen base amount. Base-currency transactions, and
// foreign ones whose movement is below the materiality threshold, report
// ok=false. A missing current rate also skips the record rather than failing
// the whole report.
func (s *fxService) reprice(ctx context.Context, sourceID string, sourceType domain.SourceType, valuation domain.TransactionValuation, settlement domain.SettlementStatus) (domain.FxExposureRecord, bool, error) {
	if !valuation.IsForeign(s.conversion.BaseCurrency()) {
		return domain.FxExposureRecord{}, false, nil
	}

	currentRate, err := s.rateSvc.CurrentRate(ctx, valuation.TransactionCurrency, s.conversion.BaseCurrency())
	if err != nil {
		if errors.Is(err, apperrors.ErrRateNotFound) {
			return domain.FxExposureRecord{}, false, nil
		}
		return domain.FxExposureRecord{}, false, fmt.Errorf("failed to reprice %s %s: %w", sourceType, sourceID, err)
	}

	currentBase := valuation.DisplayAmount.Mul(currentRate).Round(domain.BaseCurrencyPrecision)
	gainLoss := currentBase.Sub(valuation.BaseAmount)
	if gainLoss.Abs().LessThan(fxMaterialityThreshold) {
		return domain.FxExposureRecord{}, false, nil
	}

	status := domain.FxUnrealized
	if settlement == domain.StatusPaid {
		status = domain.FxRealized
	}
	return domain.FxExposureRecord{
		SourceID:           sourceID,
		SourceType:         sourceType,
		CurrencyCode:       valuation.TransactionCurrency,
		DisplayAmount:      valuation.DisplayAmount,
		OriginalBaseAmount: valuation.BaseAmount,
		CurrentBaseAmount:  currentBase,
		GainLoss:           gainLoss,
		Status:             status,
	}, true, nil
}

// fold applies the query's optional filters and accumulates the record into
// the report's overall and per-currency totals.
func (s *fxService) fold(report *domain.FxExposureReport, rec domain.FxExposureRecord, query dto.FxExposureQuery) {
	if query.Currency != "" && rec.CurrencyCode != query.Currency {
		return
	}
	if query.Status != "" && rec.Status != query.Status {
		return
	}

	report.Records = append(report.Records, rec)
	report.Totals.Accumulate(rec)

	perCurrency := report.ByCurrency[rec.CurrencyCode]
	perCurrency.Accumulate(rec)
	report.ByCurrency[rec.CurrencyCode] = perCurrency
}

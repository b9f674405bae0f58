package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portssvc "github.com/sahab-erp/sahab-backend/internal/core/ports/services"
)

// valuationService freezes a currency conversion at the moment a transaction
// is finalized, so later rate changes cannot alter historical records.
type valuationService struct {
	conversionSvc portssvc.ConversionSvcFacade
	currencySvc   portssvc.CurrencySvcFacade
	now           func() time.Time
}

// NewValuationService creates a new ValuationService.
func NewValuationService(conversionSvc portssvc.ConversionSvcFacade, currencySvc portssvc.CurrencySvcFacade) portssvc.ValuationSvcFacade {
	return &valuationService{
		conversionSvc: conversionSvc,
		currencySvc:   currencySvc,
		now:           time.Now,
	}
}

var _ portssvc.ValuationSvcFacade = (*valuationService)(nil)

func (s *valuationService) Valuate(ctx context.Context, baseSubtotal decimal.Decimal, transactionCurrencyCode string) (*domain.TransactionValuation, error) {
	conv, err := s.conversionSvc.FromBase(ctx, baseSubtotal, transactionCurrencyCode)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionValuation{
		TransactionCurrency: conv.TargetCurrency,
		DisplayAmount:       conv.ConvertedAmount,
		BaseAmount:          baseSubtotal,
		ExchangeRateUsed:    conv.Rate,
		ValuationDate:       s.now().UTC(),
	}, nil
}

// ValuateReturn reuses the originating transaction's frozen rate rather than
// the rate current at return time. A partial or full return therefore always
// nets to exactly the proportional original amount regardless of rate
// movement between sale and return.
func (s *valuationService) ValuateReturn(ctx context.Context, original domain.TransactionValuation, returnedBaseAmount decimal.Decimal) (*domain.TransactionValuation, error) {
	if returnedBaseAmount.IsNegative() {
		return nil, fmt.Errorf("%w: returned amount cannot be negative", apperrors.ErrValidation)
	}

	precision := domain.DefaultCurrencyPrecision
	currency, err := s.currencySvc.GetCurrencyByCode(ctx, original.TransactionCurrency)
	if err == nil {
		precision = currency.Precision
	} else if !errors.Is(err, apperrors.ErrInvalidCurrency) {
		return nil, fmt.Errorf("failed to resolve return currency %s: %w", original.TransactionCurrency, err)
	}

	display := returnedBaseAmount.Mul(original.ExchangeRateUsed).Round(int32(precision))
	return &domain.TransactionValuation{
		TransactionCurrency: original.TransactionCurrency,
		DisplayAmount:       display,
		BaseAmount:          returnedBaseAmount,
		ExchangeRateUsed:    original.ExchangeRateUsed,
		ValuationDate:       s.now().UTC(),
	}, nil
}

// ValidateReturnQuantities rejects the whole return when any line returns
// more than was originally transacted, or references a line that does not
// exist. No partial application: the first violation fails the operation.
func (s *valuationService) ValidateReturnQuantities(originalQuantities map[string]decimal.Decimal, returned []domain.ReturnItem) error {
	if len(returned) == 0 {
		return fmt.Errorf("%w: return must contain at least one item", apperrors.ErrValidation)
	}

	for _, item := range returned {
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: returned quantity must be positive for line %s", apperrors.ErrValidation, item.OriginalLineID)
		}
		original, ok := originalQuantities[item.OriginalLineID]
		if !ok {
			return fmt.Errorf("%w: line %s does not exist on the original transaction", apperrors.ErrExcessiveReturnQuantity, item.OriginalLineID)
		}
		if item.Quantity.GreaterThan(original) {
			return fmt.Errorf("%w: line %s has %s, attempted to return %s",
				apperrors.ErrExcessiveReturnQuantity, item.OriginalLineID, original.String(), item.Quantity.String())
		}
	}
	return nil
}

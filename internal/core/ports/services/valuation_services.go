package services

import (
	"context"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ValuationSvcFacade freezes currency conversions at transaction finalization.
type ValuationSvcFacade interface {
	// Valuate converts a base-currency subtotal into the transaction currency
	// at the rate current now and freezes the pair.
	Valuate(ctx context.Context, baseSubtotal decimal.Decimal, transactionCurrencyCode string) (*domain.TransactionValuation, error)

	// ValuateReturn values a return using the originating transaction's frozen
	// rate, never the rate current at return time.
	ValuateReturn(ctx context.Context, original domain.TransactionValuation, returnedBaseAmount decimal.Decimal) (*domain.TransactionValuation, error)

	// ValidateReturnQuantities rejects the whole return with
	// ErrExcessiveReturnQuantity when any returned quantity exceeds the
	// originating line's quantity or references an unknown line.
	ValidateReturnQuantities(originalQuantities map[string]decimal.Decimal, returned []domain.ReturnItem) error
}

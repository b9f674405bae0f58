package dto

import (
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConvertRequest defines the structure for a conversion between the base
// currency and a transaction currency.
type ConvertRequest struct {
	Amount       decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3,uppercase"`
}

// ConversionResponse mirrors domain.ConversionResult for API responses.
type ConversionResponse struct {
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	TargetCurrency   string          `json:"targetCurrency"`
	Rate             decimal.Decimal `json:"rate"`
	Date             time.Time       `json:"date"`
}

// ToConversionResponse converts a domain.ConversionResult.
func ToConversionResponse(r *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:   r.OriginalAmount,
		OriginalCurrency: r.OriginalCurrency,
		ConvertedAmount:  r.ConvertedAmount,
		TargetCurrency:   r.TargetCurrency,
		Rate:             r.Rate,
		Date:             r.Date,
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BaseCurrencyPrecision is the number of decimal places of the base currency.
// Journal entries and all base amounts are rounded to it.
const BaseCurrencyPrecision = 2

// DefaultCurrencyPrecision is used for currencies without a configured
// precision.
const DefaultCurrencyPrecision = 2

// MonetaryAmount pairs an amount with its currency. Amounts of different
// currencies are never mixed without going through the conversion service.
type MonetaryAmount struct {
	Amount       decimal.Decimal `json:"amount"`
	CurrencyCode string          `json:"currencyCode"`
}

// ConversionResult captures one conversion between the base currency and a
// transaction currency, including the rate that was applied.
type ConversionResult struct {
	OriginalAmount   decimal.Decimal `json:"originalAmount"`
	OriginalCurrency string          `json:"originalCurrency"`
	ConvertedAmount  decimal.Decimal `json:"convertedAmount"`
	TargetCurrency   string          `json:"targetCurrency"`
	Rate             decimal.Decimal `json:"rate"`
	Date             time.Time       `json:"date"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is one observation of the conversion rate between two
// currencies at a point in time. The history per pair is append-only; the
// current rate is the most recent observation at or before now. A pair need
// not be stored in both directions, the inverse is derived on lookup.
type ExchangeRate struct {
	ExchangeRateID   string          `json:"exchangeRateID"`   // Primary Key (UUID)
	FromCurrencyCode string          `json:"fromCurrencyCode"` // FK -> Currency.currencyCode
	ToCurrencyCode   string          `json:"toCurrencyCode"`   // FK -> Currency.currencyCode
	Rate             decimal.Decimal `json:"rate"`             // Strictly positive
	DateEffective    time.Time       `json:"dateEffective"`
	AuditFields
}

// RateStaleness reports how old the single most recent observation across all
// stored pairs is. LastUpdate is nil when no observation exists at all.
type RateStaleness struct {
	IsStale         bool       `json:"isStale"`
	DaysSinceUpdate int        `json:"daysSinceUpdate"`
	LastUpdate      *time.Time `json:"lastUpdate"`
}

package domain

import "github.com/shopspring/decimal"

// FxStatus classifies an exposure by the settlement state of its transaction.
type FxStatus string

const (
	FxRealized   FxStatus = "REALIZED"   // Transaction settled/closed
	FxUnrealized FxStatus = "UNREALIZED" // Transaction still open
)

// FxExposureRecord is the derived (never persisted) repricing of one
// foreign-currency transaction at the current rate.
type FxExposureRecord struct {
	SourceID           string          `json:"sourceID"`
	SourceType         SourceType      `json:"sourceType"`
	CurrencyCode       string          `json:"currencyCode"`
	DisplayAmount      decimal.Decimal `json:"displayAmount"`
	OriginalBaseAmount decimal.Decimal `json:"originalBaseAmount"`
	CurrentBaseAmount  decimal.Decimal `json:"currentBaseAmount"`
	GainLoss           decimal.Decimal `json:"gainLoss"` // current - original
	Status             FxStatus        `json:"status"`
}

// FxTotals aggregates gains and losses over a set of exposure records.
type FxTotals struct {
	Gain       decimal.Decimal `json:"gain"`       // Sum of positive gainLoss
	Loss       decimal.Decimal `json:"loss"`       // Sum of |negative gainLoss|
	Net        decimal.Decimal `json:"net"`        // Gain - Loss
	Realized   decimal.Decimal `json:"realized"`   // Net over realized records
	Unrealized decimal.Decimal `json:"unrealized"` // Net over unrealized records
}

// Accumulate folds one record into the totals.
func (t *FxTotals) Accumulate(rec FxExposureRecord) {
	if rec.GainLoss.IsPositive() {
		t.Gain = t.Gain.Add(rec.GainLoss)
	} else {
		t.Loss = t.Loss.Add(rec.GainLoss.Abs())
	}
	t.Net = t.Net.Add(rec.GainLoss)
	if rec.Status == FxRealized {
		t.Realized = t.Realized.Add(rec.GainLoss)
	} else {
		t.Unrealized = t.Unrealized.Add(rec.GainLoss)
	}
}

// FxExposureReport is the analyzer output: individual records plus aggregate
// totals, with per-currency subtotals.
type FxExposureReport struct {
	Records    []FxExposureRecord  `json:"records"`
	Totals     FxTotals            `json:"totals"`
	ByCurrency map[string]FxTotals `json:"byCurrency"`
}

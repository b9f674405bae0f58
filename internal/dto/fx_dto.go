package dto

import (
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FxExposureQuery narrows the analyzer scan. Currency and Status are optional
// filters; an empty value means no filtering on that dimension.
type FxExposureQuery struct {
	OrganizationID string
	From           time.Time
	To             time.Time
	Currency       string
	Status         domain.FxStatus
}

// FxExposureRecordResponse is one repriced foreign-currency transaction.
type FxExposureRecordResponse struct {
	SourceID           string          `json:"sourceID"`
	SourceType         string          `json:"sourceType"`
	CurrencyCode       string          `json:"currencyCode"`
	DisplayAmount      decimal.Decimal `json:"displayAmount"`
	OriginalBaseAmount decimal.Decimal `json:"originalBaseAmount"`
	CurrentBaseAmount  decimal.Decimal `json:"currentBaseAmount"`
	GainLoss           decimal.Decimal `json:"gainLoss"`
	Status             string          `json:"status"`
}

// FxTotalsResponse aggregates exposure over the reported records.
type FxTotalsResponse struct {
	Gain       decimal.Decimal `json:"gain"`
	Loss       decimal.Decimal `json:"loss"`
	Net        decimal.Decimal `json:"net"`
	Realized   decimal.Decimal `json:"realized"`
	Unrealized decimal.Decimal `json:"unrealized"`
}

// FxExposureReportResponse is the analyzer output for API responses.
type FxExposureReportResponse struct {
	Records    []FxExposureRecordResponse  `json:"records"`
	Totals     FxTotalsResponse            `json:"totals"`
	ByCurrency map[string]FxTotalsResponse `json:"byCurrency"`
}

// ToFxExposureReportResponse converts a domain.FxExposureReport.
func ToFxExposureReportResponse(r *domain.FxExposureReport) FxExposureReportResponse {
	records := make([]FxExposureRecordResponse, len(r.Records))
	for i, rec := range r.Records {
		records[i] = FxExposureRecordResponse{
			SourceID:           rec.SourceID,
			SourceType:         string(rec.SourceType),
			CurrencyCode:       rec.CurrencyCode,
			DisplayAmount:      rec.DisplayAmount,
			OriginalBaseAmount: rec.OriginalBaseAmount,
			CurrentBaseAmount:  rec.CurrentBaseAmount,
			GainLoss:           rec.GainLoss,
			Status:             string(rec.Status),
		}
	}
	byCurrency := make(map[string]FxTotalsResponse, len(r.ByCurrency))
	for code, totals := range r.ByCurrency {
		byCurrency[code] = toFxTotalsResponse(totals)
	}
	return FxExposureReportResponse{
		Records:    records,
		Totals:     toFxTotalsResponse(r.Totals),
		ByCurrency: byCurrency,
	}
}

func toFxTotalsResponse(t domain.FxTotals) FxTotalsResponse {
	return FxTotalsResponse{
		Gain:       t.Gain,
		Loss:       t.Loss,
		Net:        t.Net,
		Realized:   t.Realized,
		Unrealized: t.Unrealized,
	}
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields contains common fields for tracking creation and updates.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"` // User ID
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"` // User ID
}

// Valuation is the frozen conversion snapshot stored on every finalized
// transaction row.
type Valuation struct {
	TransactionCurrency string          `json:"transactionCurrency"`
	DisplayAmount       decimal.Decimal `json:"displayAmount"`
	BaseAmount          decimal.Decimal `json:"baseAmount"`
	ExchangeRateUsed    decimal.Decimal `json:"exchangeRateUsed"`
	ValuationDate       time.Time       `json:"valuationDate"`
}

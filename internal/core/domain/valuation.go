package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionValuation freezes the currency conversion of a transaction at
// the moment it is finalized. It is immutable thereafter: later rate changes
// never retroactively alter a finalized transaction's base amount.
//
// ExchangeRateUsed is stored in the base -> transaction-currency direction,
// so DisplayAmount == BaseAmount x ExchangeRateUsed (up to rounding). Returns
// reuse this frozen rate instead of the rate current at return time.
type TransactionValuation struct {
	TransactionCurrency string          `json:"transactionCurrency"`
	DisplayAmount       decimal.Decimal `json:"displayAmount"` // In the transaction currency
	BaseAmount          decimal.Decimal `json:"baseAmount"`    // In the base currency
	ExchangeRateUsed    decimal.Decimal `json:"exchangeRateUsed"`
	ValuationDate       time.Time       `json:"valuationDate"`
}

// IsForeign reports whether the transaction is denominated in a currency
// other than the given base currency.
func (v TransactionValuation) IsForeign(baseCurrency string) bool {
	return v.TransactionCurrency != baseCurrency
}

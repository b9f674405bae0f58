package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod determines which settlement account a journal entry hits.
type PaymentMethod string

const (
	PaymentCash   PaymentMethod = "CASH"
	PaymentBank   PaymentMethod = "BANK"
	PaymentCredit PaymentMethod = "CREDIT" // On account (AR / AP)
)

// SettlementStatus indicates whether a transaction has been paid/closed.
type SettlementStatus string

const (
	StatusPaid    SettlementStatus = "PAID"
	StatusPending SettlementStatus = "PENDING"
)

// SaleItem is a single line of a sale. Prices are in the base currency.
type SaleItem struct {
	LineID    string          `json:"lineID"` // Primary Key (UUID)
	ProductID string          `json:"productID"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// Sale is a finalized sales transaction. Monetary totals are in the base
// currency; Valuation carries the frozen transaction-currency view.
type Sale struct {
	SaleID         string               `json:"saleID"` // Primary Key (UUID)
	OrganizationID string               `json:"organizationID"`
	SaleDate       time.Time            `json:"saleDate"`
	Status         SettlementStatus     `json:"status"`
	PaymentMethod  PaymentMethod        `json:"paymentMethod"`
	BaseSubtotal   decimal.Decimal      `json:"baseSubtotal"`
	BaseTax        decimal.Decimal      `json:"baseTax"`
	BaseGrandTotal decimal.Decimal      `json:"baseGrandTotal"`
	Valuation      TransactionValuation `json:"valuation"`
	Items          []SaleItem           `json:"items,omitempty"`
	AuditFields
}

// TotalCost is the inventory cost of the sold goods, Σ(quantity x costPrice).
func (s *Sale) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.Quantity.Mul(item.CostPrice))
	}
	return total
}

// QuantitiesByLine maps line IDs to sold quantities, used to validate returns.
func (s *Sale) QuantitiesByLine() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(s.Items))
	for _, item := range s.Items {
		m[item.LineID] = item.Quantity
	}
	return m
}

// ItemsByLine maps line IDs to sale items.
func (s *Sale) ItemsByLine() map[string]SaleItem {
	m := make(map[string]SaleItem, len(s.Items))
	for _, item := range s.Items {
		m[item.LineID] = item
	}
	return m
}

// PurchaseItem is a single line of a purchase. Costs are in the base currency.
type PurchaseItem struct {
	LineID    string          `json:"lineID"` // Primary Key (UUID)
	ProductID string          `json:"productID"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unitCost"`
}

// Purchase is a finalized purchase transaction.
type Purchase struct {
	PurchaseID     string               `json:"purchaseID"` // Primary Key (UUID)
	OrganizationID string               `json:"organizationID"`
	PurchaseDate   time.Time            `json:"purchaseDate"`
	Status         SettlementStatus     `json:"status"`
	PaymentMethod  PaymentMethod        `json:"paymentMethod"`
	BaseSubtotal   decimal.Decimal      `json:"baseSubtotal"`
	BaseTax        decimal.Decimal      `json:"baseTax"`
	BaseGrandTotal decimal.Decimal      `json:"baseGrandTotal"`
	Valuation      TransactionValuation `json:"valuation"`
	Items          []PurchaseItem       `json:"items,omitempty"`
	AuditFields
}

// QuantitiesByLine maps line IDs to purchased quantities.
func (p *Purchase) QuantitiesByLine() map[string]decimal.Decimal {
	m := make(map[string]decimal.Decimal, len(p.Items))
	for _, item := range p.Items {
		m[item.LineID] = item.Quantity
	}
	return m
}

// ItemsByLine maps line IDs to purchase items.
func (p *Purchase) ItemsByLine() map[string]PurchaseItem {
	m := make(map[string]PurchaseItem, len(p.Items))
	for _, item := range p.Items {
		m[item.LineID] = item
	}
	return m
}

// ReturnItem references a line of the originating transaction and the
// quantity being returned from it.
type ReturnItem struct {
	OriginalLineID string          `json:"originalLineID"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// SaleReturn is a finalized return against a sale. Its valuation inherits the
// originating sale's frozen exchange rate so refunds net exactly proportional
// to the original amount regardless of rate movement in between.
type SaleReturn struct {
	ReturnID       string               `json:"returnID"` // Primary Key (UUID)
	OriginalSaleID string               `json:"originalSaleID"`
	OrganizationID string               `json:"organizationID"`
	ReturnDate     time.Time            `json:"returnDate"`
	PaymentMethod  PaymentMethod        `json:"paymentMethod"`
	BaseSubtotal   decimal.Decimal      `json:"baseSubtotal"`
	BaseTax        decimal.Decimal      `json:"baseTax"`
	BaseGrandTotal decimal.Decimal      `json:"baseGrandTotal"`
	BaseTotalCost  decimal.Decimal      `json:"baseTotalCost"` // Inventory cost of the returned goods
	Valuation      TransactionValuation `json:"valuation"`
	Items          []ReturnItem         `json:"items,omitempty"`
	AuditFields
}

// PurchaseReturn is a finalized return against a purchase.
type PurchaseReturn struct {
	ReturnID           string               `json:"returnID"` // Primary Key (UUID)
	OriginalPurchaseID string               `json:"originalPurchaseID"`
	OrganizationID     string               `json:"organizationID"`
	ReturnDate         time.Time            `json:"returnDate"`
	PaymentMethod      PaymentMethod        `json:"paymentMethod"`
	BaseSubtotal       decimal.Decimal      `json:"baseSubtotal"`
	BaseTax            decimal.Decimal      `json:"baseTax"`
	BaseGrandTotal     decimal.Decimal      `json:"baseGrandTotal"`
	Valuation          TransactionValuation `json:"valuation"`
	Items              []ReturnItem         `json:"items,omitempty"`
	AuditFields
}

// VoucherType distinguishes money received from money paid out.
type VoucherType string

const (
	ReceiptVoucher VoucherType = "RECEIPT"
	PaymentVoucher VoucherType = "PAYMENT"
)

// Voucher is a cash or bank receipt/payment. It is valued at the rate current
// at voucher time, not at the time of the invoice it settles.
type Voucher struct {
	VoucherID      string               `json:"voucherID"` // Primary Key (UUID)
	OrganizationID string               `json:"organizationID"`
	VoucherType    VoucherType          `json:"voucherType"`
	PaymentMethod  PaymentMethod        `json:"paymentMethod"` // CASH or BANK
	VoucherDate    time.Time            `json:"voucherDate"`
	PartyID        string               `json:"partyID"` // Customer or supplier reference
	Valuation      TransactionValuation `json:"valuation"`
	Notes          string               `json:"notes"`
	AuditFields
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a finalized sale with its frozen valuation.
type Sale struct {
	SaleID         string          `json:"saleID"` // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"`
	SaleDate       time.Time       `json:"saleDate"`
	Status         string          `json:"status"`        // PAID or PENDING
	PaymentMethod  string          `json:"paymentMethod"` // CASH, BANK, CREDIT
	BaseSubtotal   decimal.Decimal `json:"baseSubtotal"`
	BaseTax        decimal.Decimal `json:"baseTax"`
	BaseGrandTotal decimal.Decimal `json:"baseGrandTotal"`
	Valuation
	AuditFields
}

// SaleItem is one line of a sale.
type SaleItem struct {
	LineID    string          `json:"lineID"` // Primary Key (e.g., UUID)
	SaleID    string          `json:"saleID"` // FK -> Sale
	ProductID string          `json:"productID"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"` // Base currency
	CostPrice decimal.Decimal `json:"costPrice"` // Base currency, for COGS
}

// Purchase represents a finalized purchase with its frozen valuation.
type Purchase struct {
	PurchaseID     string          `json:"purchaseID"` // Primary Key (e.g., UUID)
	OrganizationID string          `json:"organizationID"`
	PurchaseDate   time.Time       `json:"purchaseDate"`
	Status         string          `json:"status"`
	PaymentMethod  string          `json:"paymentMethod"`
	BaseSubtotal   decimal.Decimal `json:"baseSubtotal"`
	BaseTax        decimal.Decimal `json:"baseTax"`
	BaseGrandTotal decimal.Decimal `json:"baseGrandTotal"`
	Valuation
	AuditFields
}

// PurchaseItem is one line of a purchase.
type PurchaseItem struct {
	LineID     string          `json:"lineID"`     // Primary Key (e.g., UUID)
	PurchaseID string          `json:"purchaseID"` // FK -> Purchase
	ProductID  string          `json:"productID"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unitCost"` // Base currency
}

// SaleReturn reverses part or all of a sale at the original frozen rate.
type SaleReturn struct {
	ReturnID       string          `json:"returnID"` // Primary Key (e.g., UUID)
	OriginalSaleID string          `json:"originalSaleID"`
	OrganizationID string          `json:"organizationID"`
	ReturnDate     time.Time       `json:"returnDate"`
	PaymentMethod  string          `json:"paymentMethod"`
	BaseSubtotal   decimal.Decimal `json:"baseSubtotal"`
	BaseTax        decimal.Decimal `json:"baseTax"`
	BaseGrandTotal decimal.Decimal `json:"baseGrandTotal"`
	BaseTotalCost  decimal.Decimal `json:"baseTotalCost"` // Restocked inventory value
	Valuation
	AuditFields
}

// PurchaseReturn reverses part or all of a purchase at the original frozen rate.
type PurchaseReturn struct {
	ReturnID           string          `json:"returnID"` // Primary Key (e.g., UUID)
	OriginalPurchaseID string          `json:"originalPurchaseID"`
	OrganizationID     string          `json:"organizationID"`
	ReturnDate         time.Time       `json:"returnDate"`
	PaymentMethod      string          `json:"paymentMethod"`
	BaseSubtotal       decimal.Decimal `json:"baseSubtotal"`
	BaseTax            decimal.Decimal `json:"baseTax"`
	BaseGrandTotal     decimal.Decimal `json:"baseGrandTotal"`
	Valuation
	AuditFields
}

// ReturnItem is one returned line, referencing the originating sale or
// purchase line it partially reverses.
type ReturnItem struct {
	ReturnItemID   string          `json:"returnItemID"` // Primary Key (e.g., UUID)
	ReturnID       string          `json:"returnID"`     // FK -> SaleReturn or PurchaseReturn
	OriginalLineID string          `json:"originalLineID"`
	Quantity       decimal.Decimal `json:"quantity"`
}

// Voucher represents a standalone money movement (receipt or payment).
type Voucher struct {
	VoucherID      string    `json:"voucherID"` // Primary Key (e.g., UUID)
	OrganizationID string    `json:"organizationID"`
	VoucherType    string    `json:"voucherType"` // RECEIPT or PAYMENT
	PaymentMethod  string    `json:"paymentMethod"`
	VoucherDate    time.Time `json:"voucherDate"`
	PartyID        string    `json:"partyID"` // Customer or supplier
	Notes          string    `json:"notes"`
	Valuation
	AuditFields
}

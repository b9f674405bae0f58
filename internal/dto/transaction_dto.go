package dto

import (
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SaleItemRequest is one line of a sale. Prices are in the base currency.
type SaleItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required"`
	CostPrice decimal.Decimal `json:"costPrice"`
}

// CreateSaleRequest defines the structure for posting a sale.
// CurrencyCode may be omitted; the handler fills in the configured default
// sale currency (which may differ from the base currency).
type CreateSaleRequest struct {
	OrganizationID string            `json:"organizationID" binding:"required"`
	SaleDate       time.Time         `json:"saleDate" binding:"required"`
	CurrencyCode   string            `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	PaymentMethod  string            `json:"paymentMethod" binding:"required,oneof=CASH BANK CREDIT"`
	Status         string            `json:"status" binding:"required,oneof=PAID PENDING"`
	TaxAmount      decimal.Decimal   `json:"taxAmount"`
	Items          []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// PurchaseItemRequest is one line of a purchase. Costs are in the base currency.
type PurchaseItemRequest struct {
	ProductID string          `json:"productID" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unitCost" binding:"required"`
}

// CreatePurchaseRequest defines the structure for posting a purchase.
type CreatePurchaseRequest struct {
	OrganizationID string                `json:"organizationID" binding:"required"`
	PurchaseDate   time.Time             `json:"purchaseDate" binding:"required"`
	CurrencyCode   string                `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	PaymentMethod  string                `json:"paymentMethod" binding:"required,oneof=CASH BANK CREDIT"`
	Status         string                `json:"status" binding:"required,oneof=PAID PENDING"`
	TaxAmount      decimal.Decimal       `json:"taxAmount"`
	Items          []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReturnItemRequest references an original transaction line and the quantity
// returned from it.
type ReturnItemRequest struct {
	OriginalLineID string          `json:"originalLineID" binding:"required"`
	Quantity       decimal.Decimal `json:"quantity" binding:"required"`
}

// CreateSaleReturnRequest defines the structure for posting a sale return.
type CreateSaleReturnRequest struct {
	OriginalSaleID string              `json:"originalSaleID" binding:"required"`
	ReturnDate     time.Time           `json:"returnDate" binding:"required"`
	PaymentMethod  string              `json:"paymentMethod" binding:"required,oneof=CASH BANK CREDIT"`
	Items          []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreatePurchaseReturnRequest defines the structure for posting a purchase return.
type CreatePurchaseReturnRequest struct {
	OriginalPurchaseID string              `json:"originalPurchaseID" binding:"required"`
	ReturnDate         time.Time           `json:"returnDate" binding:"required"`
	PaymentMethod      string              `json:"paymentMethod" binding:"required,oneof=CASH BANK CREDIT"`
	Items              []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CreateVoucherRequest defines the structure for posting a receipt or payment
// voucher. Amount is in the voucher currency and is converted to base at the
// rate current at voucher time.
type CreateVoucherRequest struct {
	OrganizationID string          `json:"organizationID" binding:"required"`
	VoucherType    string          `json:"voucherType" binding:"required,oneof=RECEIPT PAYMENT"`
	PaymentMethod  string          `json:"paymentMethod" binding:"required,oneof=CASH BANK"`
	VoucherDate    time.Time       `json:"voucherDate" binding:"required"`
	Amount         decimal.Decimal `json:"amount" binding:"required"`
	CurrencyCode   string          `json:"currencyCode" binding:"omitempty,len=3,uppercase"`
	PartyID        string          `json:"partyID" binding:"required"`
	Notes          string          `json:"notes"`
}

// PostingResult reports the outcome of posting a business transaction.
// Posted=false with a PendingReason is the soft-failure case: the transaction
// was recorded but journal entries are pending account configuration.
type PostingResult struct {
	TransactionID      string                      `json:"transactionID"`
	SourceType         domain.SourceType           `json:"sourceType"`
	JournalEntryID     string                      `json:"journalEntryID,omitempty"`
	CogsJournalEntryID string                      `json:"cogsJournalEntryID,omitempty"`
	Posted             bool                        `json:"posted"`
	PendingReason      string                      `json:"pendingReason,omitempty"`
	Valuation          domain.TransactionValuation `json:"valuation"`
}

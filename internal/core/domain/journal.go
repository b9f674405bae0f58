package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceType identifies the business transaction a journal entry records.
type SourceType string

const (
	SourceSale           SourceType = "SALE"
	SourcePurchase       SourceType = "PURCHASE"
	SourceSaleReturn     SourceType = "SALE_RETURN"
	SourcePurchaseReturn SourceType = "PURCHASE_RETURN"
	SourceReceiptVoucher SourceType = "RECEIPT_VOUCHER"
	SourcePaymentVoucher SourceType = "PAYMENT_VOUCHER"
)

// AccountRole is a semantic accounting concept resolved to a concrete ledger
// account through the account directory. The engine never hard-codes account
// identifiers.
type AccountRole string

const (
	RoleAccountsReceivable AccountRole = "ACCOUNTS_RECEIVABLE"
	RoleAccountsPayable    AccountRole = "ACCOUNTS_PAYABLE"
	RoleCash               AccountRole = "CASH"
	RoleBank               AccountRole = "BANK"
	RoleSalesRevenue       AccountRole = "SALES_REVENUE"
	RoleVATPayable         AccountRole = "VAT_PAYABLE"
	RoleVATReceivable      AccountRole = "VAT_RECEIVABLE"
	RoleInventory          AccountRole = "INVENTORY"
	RoleCOGS               AccountRole = "COST_OF_GOODS_SOLD"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalLine is a single debit or credit against one account. Exactly one of
// Debit/Credit is non-zero and both are non-negative.
type JournalLine struct {
	LineID         string          `json:"lineID"` // Primary Key (UUID)
	JournalEntryID string          `json:"journalEntryID"`
	AccountID      string          `json:"accountID"`
	Role           AccountRole     `json:"role"` // The semantic role AccountID was resolved from
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	Description    string          `json:"description"`
}

// JournalEntry is a balanced set of debit/credit lines in the base currency
// recording one business transaction's financial effect. Entries are never
// mutated after posting, only reversed by a compensating entry.
type JournalEntry struct {
	JournalEntryID    string        `json:"journalEntryID"` // Primary Key (UUID)
	EntryDate         time.Time     `json:"entryDate"`
	SourceType        SourceType    `json:"sourceType"`
	SourceID          string        `json:"sourceID"`
	CurrencyCode      string        `json:"currencyCode"` // Always the base currency
	Description       string        `json:"description"`
	Status            JournalStatus `json:"status"`
	ReversesEntryID   *string       `json:"reversesEntryID,omitempty"`   // Set on compensating entries
	ReversedByEntryID *string       `json:"reversedByEntryID,omitempty"` // Set on the original once reversed
	Lines             []JournalLine `json:"lines"`
	AuditFields
}

// TotalDebits sums the debit side of the entry.
func (e *JournalEntry) TotalDebits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredits sums the credit side of the entry.
func (e *JournalEntry) TotalCredits() decimal.Decimal {
	total := decimal.Zero
	for _, line := range e.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates the state of a journal entry.
type JournalStatus string

const (
	Posted   JournalStatus = "POSTED"
	Reversed JournalStatus = "REVERSED"
)

// JournalEntry represents a single, balanced financial event produced from a
// business transaction.
type JournalEntry struct {
	JournalEntryID    string        `json:"journalEntryID"` // Primary Key (e.g., UUID)
	EntryDate         time.Time     `json:"entryDate"`      // Date the event occurred
	SourceType        string        `json:"sourceType"`     // SALE, PURCHASE, ...
	SourceID          string        `json:"sourceID"`       // ID of the originating transaction
	CurrencyCode      string        `json:"currencyCode"`   // Always the base currency
	Description       string        `json:"description"`
	Status            JournalStatus `json:"status"`                      // Default: Posted
	ReversesEntryID   *string       `json:"reversesEntryID,omitempty"`   // Set on reversal entries
	ReversedByEntryID *string       `json:"reversedByEntryID,omitempty"` // Set on reversed entries
	AuditFields
}

// JournalLine is a single debit or credit within a JournalEntry.
type JournalLine struct {
	LineID         string          `json:"lineID"`         // Primary Key (e.g., UUID)
	JournalEntryID string          `json:"journalEntryID"` // FK -> JournalEntry
	AccountID      string          `json:"accountID"`      // Resolved concrete account
	Role           string          `json:"role"`           // Semantic role the line was built from
	Debit          decimal.Decimal `json:"debit"`          // Zero when the line is a credit
	Credit         decimal.Decimal `json:"credit"`         // Zero when the line is a debit
	Description    string          `json:"description"`
}

package dto

import (
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineResponse is one debit/credit line of a journal entry.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	Role        string          `json:"role"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description string          `json:"description"`
}

// JournalEntryResponse defines the structure for API responses containing a
// journal entry and its lines.
type JournalEntryResponse struct {
	JournalEntryID    string                `json:"journalEntryID"`
	EntryDate         time.Time             `json:"entryDate"`
	SourceType        string                `json:"sourceType"`
	SourceID          string                `json:"sourceID"`
	CurrencyCode      string                `json:"currencyCode"`
	Description       string                `json:"description"`
	Status            string                `json:"status"`
	ReversesEntryID   *string               `json:"reversesEntryID,omitempty"`
	ReversedByEntryID *string               `json:"reversedByEntryID,omitempty"`
	TotalDebits       decimal.Decimal       `json:"totalDebits"`
	TotalCredits      decimal.Decimal       `json:"totalCredits"`
	Lines             []JournalLineResponse `json:"lines"`
	CreatedAt         time.Time             `json:"createdAt"`
	CreatedBy         string                `json:"createdBy"`
}

// ToJournalEntryResponse converts a domain.JournalEntry.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	lines := make([]JournalLineResponse, len(e.Lines))
	for i, line := range e.Lines {
		lines[i] = JournalLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			Role:        string(line.Role),
			Debit:       line.Debit,
			Credit:      line.Credit,
			Description: line.Description,
		}
	}
	return JournalEntryResponse{
		JournalEntryID:    e.JournalEntryID,
		EntryDate:         e.EntryDate,
		SourceType:        string(e.SourceType),
		SourceID:          e.SourceID,
		CurrencyCode:      e.CurrencyCode,
		Description:       e.Description,
		Status:            string(e.Status),
		ReversesEntryID:   e.ReversesEntryID,
		ReversedByEntryID: e.ReversedByEntryID,
		TotalDebits:       e.TotalDebits(),
		TotalCredits:      e.TotalCredits(),
		Lines:             lines,
		CreatedAt:         e.CreatedAt,
		CreatedBy:         e.CreatedBy,
	}
}

// ReverseEntryRequest defines the structure for reversing a posted entry.
type ReverseEntryRequest struct {
	Reason string `json:"reason" binding:"required"`
}

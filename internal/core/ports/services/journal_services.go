package services

import (
	"context"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	"github.com/sahab-erp/sahab-backend/internal/dto"
)

// JournalSvcFacade posts business transactions: it valuates them, constructs
// balanced journal entries from account roles, and commits transaction plus
// entries atomically.
//
// A missing account mapping is a soft failure: the business transaction is
// still recorded and the result carries Posted=false with a pending reason.
// Conversion and valuation errors are hard failures returned before anything
// is persisted.
type JournalSvcFacade interface {
	PostSale(ctx context.Context, req dto.CreateSaleRequest, creatorUserID string) (*dto.PostingResult, error)
	PostPurchase(ctx context.Context, req dto.CreatePurchaseRequest, creatorUserID string) (*dto.PostingResult, error)
	PostSaleReturn(ctx context.Context, req dto.CreateSaleReturnRequest, creatorUserID string) (*dto.PostingResult, error)
	PostPurchaseReturn(ctx context.Context, req dto.CreatePurchaseReturnRequest, creatorUserID string) (*dto.PostingResult, error)
	PostVoucher(ctx context.Context, req dto.CreateVoucherRequest, creatorUserID string) (*dto.PostingResult, error)

	// GetEntryByID retrieves a posted journal entry with its lines.
	GetEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListEntriesBySource retrieves the entries recorded for one business
	// transaction, oldest first.
	ListEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error)

	// ReverseEntry posts a compensating entry with every line's debit/credit
	// swapped and links it to the original. The original is never mutated
	// beyond its status and linkage.
	ReverseEntry(ctx context.Context, journalEntryID string, reason string, updaterUserID string) (*domain.JournalEntry, error)
}

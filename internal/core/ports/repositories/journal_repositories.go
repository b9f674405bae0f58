package repositories

import (
	"context"
	"time"

	"github.com/sahab-erp/sahab-backend/internal/core/domain"
)

// JournalReader defines read operations for journal entries.
type JournalReader interface {
	// FindEntryByID retrieves a journal entry with its lines.
	FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error)

	// ListEntriesBySource retrieves entries recorded for one business
	// transaction, oldest first.
	ListEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error)
}

// JournalWriter defines write operations for journal entries.
type JournalWriter interface {
	// SaveReversalEntry persists a compensating entry and marks the original
	// as reversed, linking the two, in one database transaction. The original
	// entry's lines are never touched.
	SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, updatedBy string, updatedAt time.Time) error
}

// JournalRepositoryFacade combines all journal-related repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

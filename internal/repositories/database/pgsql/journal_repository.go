package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sahab-erp/sahab-backend/internal/apperrors"
	"github.com/sahab-erp/sahab-backend/internal/core/domain"
	portsrepo "github.com/sahab-erp/sahab-backend/internal/core/ports/repositories"
	"github.com/sahab-erp/sahab-backend/internal/models"
	"github.com/sahab-erp/sahab-backend/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates a new repository for journal entry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

const journalEntryColumns = `journal_entry_id, entry_date, source_type, source_id, currency_code, description, status, reverses_entry_id, reversed_by_entry_id, created_at, created_by, last_updated_at, last_updated_by`

// insertJournalEntryTx writes one entry and its lines inside an open database
// transaction. Shared with the record store so business transactions and their
// entries commit as a single unit.
func insertJournalEntryTx(ctx context.Context, tx pgx.Tx, entry domain.JournalEntry) error {
	modelEntry := mapping.ToModelJournalEntry(entry)

	entryQuery := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, entryQuery,
		modelEntry.JournalEntryID,
		modelEntry.EntryDate,
		modelEntry.SourceType,
		modelEntry.SourceID,
		modelEntry.CurrencyCode,
		modelEntry.Description,
		modelEntry.Status,
		modelEntry.ReversesEntryID,
		modelEntry.ReversedByEntryID,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert journal entry %s: %w", modelEntry.JournalEntryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_lines (line_id, journal_entry_id, account_id, role, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range entry.Lines {
		modelLine := mapping.ToModelJournalLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.JournalEntryID,
			modelLine.AccountID,
			modelLine.Role,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.Description,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert lines for journal entry %s: %w", modelEntry.JournalEntryID, err)
	}
	return nil
}

func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var modelEntry models.JournalEntry
	err := row.Scan(
		&modelEntry.JournalEntryID,
		&modelEntry.EntryDate,
		&modelEntry.SourceType,
		&modelEntry.SourceID,
		&modelEntry.CurrencyCode,
		&modelEntry.Description,
		&modelEntry.Status,
		&modelEntry.ReversesEntryID,
		&modelEntry.ReversedByEntryID,
		&modelEntry.CreatedAt,
		&modelEntry.CreatedBy,
		&modelEntry.LastUpdatedAt,
		&modelEntry.LastUpdatedBy,
	)
	return modelEntry, err
}

// findLinesByEntryIDs loads the lines for a set of entries in one query.
func (r *PgxJournalRepository) findLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]models.JournalLine, error) {
	query := `
		SELECT line_id, journal_entry_id, account_id, role, debit, credit, description
		FROM journal_lines
		WHERE journal_entry_id = ANY($1)
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines: %w", err)
	}
	defer rows.Close()

	linesByEntry := make(map[string][]models.JournalLine)
	for rows.Next() {
		var line models.JournalLine
		if err := rows.Scan(
			&line.LineID,
			&line.JournalEntryID,
			&line.AccountID,
			&line.Role,
			&line.Debit,
			&line.Credit,
			&line.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan journal line: %w", err)
		}
		linesByEntry[line.JournalEntryID] = append(linesByEntry[line.JournalEntryID], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate journal lines: %w", err)
	}
	return linesByEntry, nil
}

// FindEntryByID retrieves a journal entry with its lines.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, journalEntryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE journal_entry_id = $1;
	`
	modelEntry, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, journalEntryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", journalEntryID, err)
	}

	linesByEntry, err := r.findLinesByEntryIDs(ctx, []string{journalEntryID})
	if err != nil {
		return nil, err
	}

	domainEntry := mapping.ToDomainJournalEntry(modelEntry)
	domainEntry.Lines = mapping.ToDomainJournalLineSlice(linesByEntry[journalEntryID])
	return &domainEntry, nil
}

// ListEntriesBySource retrieves entries recorded for one business transaction,
// oldest first.
func (r *PgxJournalRepository) ListEntriesBySource(ctx context.Context, sourceType domain.SourceType, sourceID string) ([]domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE source_type = $1 AND source_id = $2
		ORDER BY created_at, journal_entry_id;
	`
	rows, err := r.Pool.Query(ctx, query, string(sourceType), sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries for %s %s: %w", sourceType, sourceID, err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.JournalEntry, error) {
		return scanJournalEntry(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan journal entries: %w", err)
	}
	if len(modelEntries) == 0 {
		return []domain.JournalEntry{}, nil
	}

	entryIDs := make([]string, len(modelEntries))
	for i, m := range modelEntries {
		entryIDs[i] = m.JournalEntryID
	}
	linesByEntry, err := r.findLinesByEntryIDs(ctx, entryIDs)
	if err != nil {
		return nil, err
	}

	domainEntries := make([]domain.JournalEntry, len(modelEntries))
	for i, m := range modelEntries {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
		domainEntries[i].Lines = mapping.ToDomainJournalLineSlice(linesByEntry[m.JournalEntryID])
	}
	return domainEntries, nil
}

// SaveReversalEntry persists the compensating entry and marks the original as
// reversed, linking the two, in one database transaction.
func (r *PgxJournalRepository) SaveReversalEntry(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, updatedBy string, updatedAt time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := insertJournalEntryTx(ctx, tx, reversal); err != nil {
		return err
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = $2, reversed_by_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE journal_entry_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, updateQuery,
		originalEntryID,
		string(domain.Reversed),
		reversal.JournalEntryID,
		updatedAt,
		updatedBy,
		string(domain.Posted),
	)
	if err != nil {
		return fmt.Errorf("failed to mark journal entry %s reversed: %w", originalEntryID, err)
	}
	if tag.RowsAffected() == 0 {
		// Either the entry vanished or a concurrent reversal won.
		return apperrors.NewAppError(409, "journal entry "+originalEntryID+" is not in a reversible state", apperrors.ErrValidation)
	}

	return r.Commit(ctx, tx)
}

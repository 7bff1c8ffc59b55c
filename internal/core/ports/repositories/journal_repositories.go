package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
)

// JournalReader defines read operations for journal entries
type JournalReader interface {
	// FindEntryByID retrieves an entry header with its lines.
	FindEntryByID(ctx context.Context, orgID, entryID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers, newest first, using token-based pagination.
	// It returns the entries, a token for the next page, and an error.
	ListEntries(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error)
}

// JournalWriter defines write operations for journal entries.
// Header and line writes are separate so callers can compensate a partial failure.
type JournalWriter interface {
	// InsertEntry persists a new entry header.
	InsertEntry(ctx context.Context, entry domain.JournalEntry) error

	// UpdateEntryHeader overwrites the header fields of an unposted entry. Posted entries yield ErrState.
	UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error

	// ReplaceLines deletes the entry's lines and inserts the given ones in one transaction.
	// Posted entries yield ErrState.
	ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error

	// SetPosted flips the posted flag.
	SetPosted(ctx context.Context, orgID, entryID string, posted bool, userID string, now time.Time) error

	// DeleteEntry removes an unposted header and its lines together. Posted entries yield ErrState.
	DeleteEntry(ctx context.Context, orgID, entryID string) error
}

// LedgerReader projects journal lines into ledger rows.
type LedgerReader interface {
	// ListLedgerEntries returns lines matching the filter, ordered by entry date,
	// entry creation sequence, then line number.
	ListLedgerEntries(ctx context.Context, orgID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error)
}

// JournalRepositoryFacade combines all journal-related repository interfaces
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}

package services

import (
	"context"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
)

// JournalReaderSvc defines read operations for journal entries
type JournalReaderSvc interface {
	// GetEntry retrieves an entry with its lines.
	GetEntry(ctx context.Context, orgID, entryID, userID string) (*domain.JournalEntry, error)

	// ListEntries retrieves a page of entry headers.
	ListEntries(ctx context.Context, orgID, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error)
}

// JournalWriterSvc defines write operations for journal entries
type JournalWriterSvc interface {
	// CreateEntry validates double-entry invariants and persists an unposted entry.
	CreateEntry(ctx context.Context, orgID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// UpdateEntry replaces the header and lines of an unposted entry.
	UpdateEntry(ctx context.Context, orgID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error)

	// SetPosted posts or unposts an entry.
	SetPosted(ctx context.Context, orgID, entryID string, posted bool, userID string) (*domain.JournalEntry, error)

	// DeleteEntry removes an unposted entry and its lines.
	DeleteEntry(ctx context.Context, orgID, entryID, userID string) error
}

// JournalSvcFacade combines all journal-related service interfaces
type JournalSvcFacade interface {
	JournalReaderSvc
	JournalWriterSvc
}

// LedgerSvc projects journal lines into the general ledger.
type LedgerSvc interface {
	GetLedger(ctx context.Context, orgID string, filter domain.LedgerFilter, userID string) ([]domain.LedgerEntry, error)
}

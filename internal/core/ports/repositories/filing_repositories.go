package repositories

import (
	"context"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
)

// FilingGuard inspects the stored filing for a period before it is overwritten.
// Returning an error aborts the upsert.
type FilingGuard func(existing *domain.TaxFiling) error

// FilingReader defines read operations for tax filings
type FilingReader interface {
	// FindFilingByID retrieves a filing by ID.
	FindFilingByID(ctx context.Context, orgID, filingID string) (*domain.TaxFiling, error)

	// FindFilingByPeriod retrieves the filing for (form, year, month), or ErrNotFound.
	FindFilingByPeriod(ctx context.Context, orgID string, period domain.FilingPeriod) (*domain.TaxFiling, error)

	// ListFilings lists an organization's filings for a year, optionally narrowed to a form.
	ListFilings(ctx context.Context, orgID string, year int, formType *domain.FormType) ([]domain.TaxFiling, error)
}

// FilingWriter defines write operations for tax filings
type FilingWriter interface {
	// InsertFiling persists a new filing. A second row for the same period yields ErrDuplicate.
	InsertFiling(ctx context.Context, filing domain.TaxFiling) error

	// UpsertFiling looks up the period's filing and, within one transaction, either inserts
	// filing or overwrites the existing row's figures and status after guard approves it.
	// It returns the stored row.
	UpsertFiling(ctx context.Context, filing domain.TaxFiling, guard FilingGuard) (*domain.TaxFiling, error)

	// UpdateFilingStatus persists a lifecycle change.
	UpdateFilingStatus(ctx context.Context, filing domain.TaxFiling) error

	// DeleteFiling removes a filing.
	DeleteFiling(ctx context.Context, orgID, filingID string) error
}

// FilingRepositoryFacade combines all filing-related repository interfaces
type FilingRepositoryFacade interface {
	FilingReader
	FilingWriter
}

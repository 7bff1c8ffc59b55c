package services

import (
	"context"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
)

// FilingReaderSvc defines read operations for tax filings
type FilingReaderSvc interface {
	GetFiling(ctx context.Context, orgID, filingID, userID string) (*domain.TaxFiling, error)
	ListFilings(ctx context.Context, orgID string, year int, formType *domain.FormType, userID string) ([]domain.TaxFiling, error)
}

// FilingWriterSvc defines write operations for tax filings
type FilingWriterSvc interface {
	// ComputeFiling derives the figures for a period from upstream data and upserts the filing as CALCULATED.
	ComputeFiling(ctx context.Context, orgID string, period domain.FilingPeriod, userID string) (*domain.TaxFiling, error)

	// CreateDraft inserts an empty DRAFT filing for a period that has none.
	CreateDraft(ctx context.Context, orgID string, period domain.FilingPeriod, userID string) (*domain.TaxFiling, error)

	// TransitionFiling advances a filing through its lifecycle.
	TransitionFiling(ctx context.Context, orgID, filingID string, req dto.TransitionFilingRequest, userID string) (*domain.TaxFiling, error)

	// DeleteFiling removes a DRAFT or CALCULATED filing.
	DeleteFiling(ctx context.Context, orgID, filingID, userID string) error
}

// FilingSvcFacade combines all filing-related service interfaces
type FilingSvcFacade interface {
	FilingReaderSvc
	FilingWriterSvc
}

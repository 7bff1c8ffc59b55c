package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
)

// ledgerProjector loads ledger rows through the cache. It performs no authorization.
type ledgerProjector struct {
	BaseService
	ledgerRepo portsrepo.LedgerReader
	cache      portsrepo.LedgerCache
}

func (p *ledgerProjector) project(ctx context.Context, orgID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, fmt.Errorf("%w: start date %s is after end date %s", apperrors.ErrValidation,
			filter.StartDate.Format("2006-01-02"), filter.EndDate.Format("2006-01-02"))
	}

	// The slot is fixed before the read; rows read across an Invalidate land in an orphaned slot.
	var slot string
	if p.cache != nil {
		cached, missSlot, ok := p.cache.Get(ctx, orgID, filter)
		if ok {
			p.LogDebug(ctx, "Ledger served from cache", slog.String("org_id", orgID), slog.Int("count", len(cached)))
			return cached, nil
		}
		slot = missSlot
	}

	entries, err := p.ledgerRepo.ListLedgerEntries(ctx, orgID, filter)
	if err != nil {
		p.LogError(ctx, err, "Failed to list ledger entries", slog.String("org_id", orgID))
		return nil, err
	}
	if entries == nil {
		entries = []domain.LedgerEntry{}
	}

	if p.cache != nil {
		p.cache.Set(ctx, slot, entries)
	}
	return entries, nil
}

// ledgerService implements the LedgerSvc interface
type ledgerService struct {
	ledgerProjector
}

// NewLedgerService creates a ledger service. cache may be nil.
func NewLedgerService(ledgerRepo portsrepo.LedgerReader, cache portsrepo.LedgerCache, authorizer portssvc.Authorizer) portssvc.LedgerSvc {
	svc := &ledgerService{ledgerProjector{ledgerRepo: ledgerRepo, cache: cache}}
	svc.Authorizer = authorizer
	return svc
}

var _ portssvc.LedgerSvc = (*ledgerService)(nil)

// GetLedger returns lines matching the filter ordered by entry date, entry sequence and line number.
func (s *ledgerService) GetLedger(ctx context.Context, orgID string, filter domain.LedgerFilter, userID string) ([]domain.LedgerEntry, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}
	return s.project(ctx, orgID, filter)
}

package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
)

// AuditRepository persists audit records.
type AuditRepository interface {
	SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error
}

// MembershipReader resolves a user's role within an organization.
type MembershipReader interface {
	// FindMemberRole returns ErrNotFound when the user is not a member.
	FindMemberRole(ctx context.Context, orgID, userID string) (domain.MemberRole, error)
}

// SalesDocumentReader reads sales documents issued within [from, to].
type SalesDocumentReader interface {
	ListForPeriod(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.SalesDocument, error)
}

// ExpenseReader reads expense records dated within [from, to].
type ExpenseReader interface {
	ListForPeriod(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.ExpenseRecord, error)
}

// PayrollReader reads payroll runs whose period overlaps [from, to], with their details.
type PayrollReader interface {
	ListRunsOverlapping(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.PayrollRun, error)
}

// UpstreamReaders groups the read-only sources used by the filing calculators.
type UpstreamReaders struct {
	Sales    SalesDocumentReader
	Expenses ExpenseReader
	Payroll  PayrollReader
}

// LedgerCache stores ledger projections per organization and filter.
type LedgerCache interface {
	// Get looks up a projection. On a miss the returned slot names where the projection
	// belongs under the organization's current generation; pass it to Set unchanged.
	Get(ctx context.Context, orgID string, filter domain.LedgerFilter) (entries []domain.LedgerEntry, slot string, ok bool)
	// Set stores entries in a slot returned by Get. An empty slot is ignored.
	// A slot obtained before Invalidate is never read again.
	Set(ctx context.Context, slot string, entries []domain.LedgerEntry)
	// Invalidate drops every cached projection of the organization.
	Invalidate(ctx context.Context, orgID string)
}

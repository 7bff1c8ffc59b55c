package services

import (
	"context"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
)

// Authorizer checks a user's capability within an organization.
// It returns an error wrapping apperrors.ErrForbidden when denied.
type Authorizer interface {
	Authorize(ctx context.Context, userID, orgID string, capability domain.Capability) error
}

// AuditRecorder records successful mutations. Failures are logged, never returned.
type AuditRecorder interface {
	Record(ctx context.Context, record domain.AuditRecord)
}

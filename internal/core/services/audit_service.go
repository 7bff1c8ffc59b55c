package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// auditRecorder persists audit records. A failed write never fails the caller.
type auditRecorder struct {
	BaseService
	repo portsrepo.AuditRepository
}

// NewAuditRecorder creates an AuditRecorder over the audit repository.
func NewAuditRecorder(repo portsrepo.AuditRepository) portssvc.AuditRecorder {
	return &auditRecorder{repo: repo}
}

var _ portssvc.AuditRecorder = (*auditRecorder)(nil)

func (r *auditRecorder) Record(ctx context.Context, record domain.AuditRecord) {
	if record.AuditID == "" {
		record.AuditID = uuid.NewString()
	}
	if record.RecordedAt.IsZero() {
		record.RecordedAt = r.Now()
	}
	if record.Context == nil {
		record.Context = map[string]any{}
	}

	if err := r.repo.SaveAuditRecord(ctx, record); err != nil {
		r.GetLogger(ctx).Warn("Failed to record audit entry",
			slog.String("error", err.Error()),
			slog.String("action", record.Action),
			slog.String("entity_type", record.EntityType),
			slog.String("entity_id", record.EntityID))
		return
	}
	r.LogDebug(ctx, "Audit entry recorded",
		slog.String("audit_id", record.AuditID),
		slog.String("action", record.Action))
}

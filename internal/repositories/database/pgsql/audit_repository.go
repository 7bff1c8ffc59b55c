package pgsql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAuditRepository appends to the audit log.
type PgxAuditRepository struct {
	BaseRepository
}

func newPgxAuditRepository(pool *pgxpool.Pool) *PgxAuditRepository {
	return &PgxAuditRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AuditRepository = (*PgxAuditRepository)(nil)

// SaveAuditRecord inserts one audit row. Context is stored as JSONB.
func (r *PgxAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	payload, err := json.Marshal(record.Context)
	if err != nil {
		return fmt.Errorf("%w: audit context is not serializable: %v", apperrors.ErrValidation, err)
	}
	query := `
		INSERT INTO audit_log (audit_id, organization_id, actor, action, entity_type, entity_id, summary, context, recorded_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		record.AuditID,
		record.OrganizationID,
		record.Actor,
		record.Action,
		record.EntityType,
		record.EntityID,
		record.Summary,
		payload,
		record.RecordedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert audit record", err)
	}
	return nil
}

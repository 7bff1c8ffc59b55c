package pgsql

import (
	"context"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxMembershipRepository reads organization memberships.
type PgxMembershipRepository struct {
	BaseRepository
}

func newPgxMembershipRepository(pool *pgxpool.Pool) *PgxMembershipRepository {
	return &PgxMembershipRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.MembershipReader = (*PgxMembershipRepository)(nil)

// FindMemberRole returns the user's role in the organization.
func (r *PgxMembershipRepository) FindMemberRole(ctx context.Context, orgID, userID string) (domain.MemberRole, error) {
	var role string
	err := r.Pool.QueryRow(ctx,
		`SELECT role FROM organization_members WHERE organization_id = $1 AND user_id = $2;`,
		orgID, userID,
	).Scan(&role)
	if err != nil {
		return "", wrapReadError(err, "membership of user "+userID)
	}
	return domain.MemberRole(role), nil
}

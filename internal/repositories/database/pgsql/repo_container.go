package pgsql

import (
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider wires the pgx-backed repositories. Upstream readers and the
// ledger cache live in their own packages and are attached by the caller.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:    newPgxAccountRepository(dbPool),
		JournalRepo:    newPgxJournalRepository(dbPool),
		LedgerRepo:     newLedgerRepository(dbPool),
		FilingRepo:     newPgxFilingRepository(dbPool),
		AuditRepo:      newPgxAuditRepository(dbPool),
		MembershipRepo: newPgxMembershipRepository(dbPool),
	}
}

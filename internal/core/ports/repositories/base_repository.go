package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager scopes multi-statement journal writes (line replacement, entry deletion)
// to one database transaction.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	// Rollback is safe to defer; it is a no-op after Commit.
	Rollback(ctx context.Context, tx pgx.Tx) error
}

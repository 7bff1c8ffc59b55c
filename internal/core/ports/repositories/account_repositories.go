package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves every account of an organization, ordered by code.
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)

	// IsAccountReferenced reports whether any journal line points at the account.
	IsAccountReferenced(ctx context.Context, orgID, accountID string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's name and parent.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, orgID, accountID, userID string, now time.Time) error

	// DeleteAccount physically removes an account.
	DeleteAccount(ctx context.Context, orgID, accountID string) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}

package services

import (
	"context"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
)

// AccountReaderSvc defines read operations for the chart of accounts
type AccountReaderSvc interface {
	// GetAccount retrieves a specific account with its derived depth.
	GetAccount(ctx context.Context, orgID, accountID, userID string) (*domain.Account, error)

	// ListAccounts retrieves every account of an organization, ordered by code, with depth.
	ListAccounts(ctx context.Context, orgID, userID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for the chart of accounts
type AccountWriterSvc interface {
	// CreateAccount validates the code and parent, then persists a new active account.
	CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error)

	// UpdateAccount renames or re-parents an account, refusing cycles.
	UpdateAccount(ctx context.Context, orgID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive.
	DeactivateAccount(ctx context.Context, orgID, accountID, userID string) error

	// DeleteAccount removes an unreferenced account, otherwise deactivates it.
	// deleted reports which of the two happened.
	DeleteAccount(ctx context.Context, orgID, accountID, userID string) (deleted bool, err error)
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

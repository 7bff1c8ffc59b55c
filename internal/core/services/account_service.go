package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/google/uuid"
)

const entityAccount = "account"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	ledgerCache portsrepo.LedgerCache
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithAccountAuthorizer sets the capability checker
func WithAccountAuthorizer(authorizer portssvc.Authorizer) AccountServiceOption {
	return func(s *accountService) {
		s.Authorizer = authorizer
	}
}

// WithAccountAudit sets the audit recorder
func WithAccountAudit(recorder portssvc.AuditRecorder) AccountServiceOption {
	return func(s *accountService) {
		s.Audit = recorder
	}
}

// WithAccountLedgerCache sets the cache to invalidate when account names or status change
func WithAccountLedgerCache(cache portsrepo.LedgerCache) AccountServiceOption {
	return func(s *accountService) {
		s.ledgerCache = cache
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) loadTree(ctx context.Context, orgID string) (*domain.AccountTree, []domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, orgID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("org_id", orgID))
		return nil, nil, err
	}
	return domain.NewAccountTree(accounts), accounts, nil
}

func (s *accountService) invalidateLedger(ctx context.Context, orgID string) {
	if s.ledgerCache != nil {
		s.ledgerCache.Invalidate(ctx, orgID)
	}
}

// checkParent validates parent assignment for accountID (empty for a new account) with the given code.
func (s *accountService) checkParent(tree *domain.AccountTree, accountID, code, parentID string) error {
	if err := tree.CheckParent(accountID, parentID); err != nil {
		return err
	}
	parent, _ := tree.Get(parentID)
	if !parent.IsActive {
		return fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parent.Code)
	}
	return domain.ValidateChildCode(parent.Code, code)
}

// GetAccount retrieves a specific account with its derived depth.
func (s *accountService) GetAccount(ctx context.Context, orgID, accountID, userID string) (*domain.Account, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}

	tree, _, err := s.loadTree(ctx, orgID)
	if err != nil {
		return nil, err
	}
	account.Depth = tree.Depth(account.AccountID)
	return account, nil
}

// ListAccounts retrieves the chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, orgID, userID string) ([]domain.Account, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}

	tree, accounts, err := s.loadTree(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	for i := range accounts {
		accounts[i].Depth = tree.Depth(accounts[i].AccountID)
	}

	s.LogDebug(ctx, "Accounts listed successfully", slog.Int("count", len(accounts)))
	return accounts, nil
}

// CreateAccount validates the code and parent, then persists a new active account.
func (s *accountService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerCreate); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name is required", apperrors.ErrValidation)
	}
	if err := domain.ValidateCode(req.Code); err != nil {
		return nil, err
	}
	if !req.AccountType.IsValid() {
		return nil, fmt.Errorf("%w: invalid account type %q", apperrors.ErrValidation, req.AccountType)
	}

	depth := 0
	if req.ParentID != nil {
		tree, _, err := s.loadTree(ctx, orgID)
		if err != nil {
			return nil, err
		}
		if err := s.checkParent(tree, "", req.Code, *req.ParentID); err != nil {
			return nil, err
		}
		depth = tree.Depth(*req.ParentID) + 1
	}

	account := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: orgID,
		Code:           req.Code,
		Name:           name,
		AccountType:    req.AccountType,
		ParentID:       req.ParentID,
		IsActive:       true,
		Depth:          depth,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		}
		return nil, err
	}

	s.RecordAudit(ctx, orgID, userID, domain.AuditCreate, entityAccount, account.AccountID,
		fmt.Sprintf("created account %s %s", account.Code, account.Name),
		map[string]any{"code": account.Code, "accountType": string(account.AccountType)})
	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

// UpdateAccount renames or re-parents an account, refusing cycles.
func (s *accountService) UpdateAccount(ctx context.Context, orgID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerEdit); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		return nil, err
	}

	tree, accounts, err := s.loadTree(ctx, orgID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: account name cannot be empty", apperrors.ErrValidation)
		}
		account.Name = name
	}

	switch {
	case req.ClearParent:
		account.ParentID = nil
	case req.ParentID != nil:
		if err := s.checkParent(tree, account.AccountID, account.Code, *req.ParentID); err != nil {
			return nil, err
		}
		parentID := *req.ParentID
		account.ParentID = &parentID
	}

	account.Touch(userID, s.Now())
	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	for i := range accounts {
		if accounts[i].AccountID == account.AccountID {
			accounts[i] = *account
		}
	}
	account.Depth = domain.NewAccountTree(accounts).Depth(account.AccountID)

	s.invalidateLedger(ctx, orgID)
	s.RecordAudit(ctx, orgID, userID, domain.AuditUpdate, entityAccount, account.AccountID,
		fmt.Sprintf("updated account %s", account.Code), map[string]any{"name": account.Name})
	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

func (s *accountService) deactivate(ctx context.Context, account *domain.Account, userID string) error {
	if !account.IsActive {
		return nil
	}
	if err := s.accountRepo.DeactivateAccount(ctx, account.OrganizationID, account.AccountID, userID, s.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", account.AccountID))
		return err
	}
	account.IsActive = false
	s.invalidateLedger(ctx, account.OrganizationID)
	s.RecordAudit(ctx, account.OrganizationID, userID, domain.AuditDeactivate, entityAccount, account.AccountID,
		fmt.Sprintf("deactivated account %s", account.Code), nil)
	return nil
}

// DeactivateAccount marks an account as inactive. Deactivating an inactive account is a no-op.
func (s *accountService) DeactivateAccount(ctx context.Context, orgID, accountID, userID string) error {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerEdit); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		return err
	}
	if err := s.deactivate(ctx, account, userID); err != nil {
		return err
	}

	s.LogInfo(ctx, "Account deactivated successfully", slog.String("account_id", accountID))
	return nil
}

// DeleteAccount removes an account no journal line references; otherwise it is deactivated.
func (s *accountService) DeleteAccount(ctx context.Context, orgID, accountID, userID string) (bool, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerDelete); err != nil {
		return false, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, orgID, accountID)
	if err != nil {
		return false, err
	}

	referenced, err := s.accountRepo.IsAccountReferenced(ctx, orgID, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account references", slog.String("account_id", accountID))
		return false, err
	}
	if referenced {
		if err := s.deactivate(ctx, account, userID); err != nil {
			return false, err
		}
		s.LogInfo(ctx, "Account is referenced by journal lines, deactivated instead of deleted",
			slog.String("account_id", accountID))
		return false, nil
	}

	_, accounts, err := s.loadTree(ctx, orgID)
	if err != nil {
		return false, err
	}
	for _, a := range accounts {
		if a.ParentID != nil && *a.ParentID == accountID {
			return false, fmt.Errorf("%w: account %s has child account %s", apperrors.ErrValidation, account.Code, a.Code)
		}
	}

	if err := s.accountRepo.DeleteAccount(ctx, orgID, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return false, err
	}

	s.invalidateLedger(ctx, orgID)
	s.RecordAudit(ctx, orgID, userID, domain.AuditDelete, entityAccount, accountID,
		fmt.Sprintf("deleted account %s", account.Code), nil)
	s.LogInfo(ctx, "Account deleted successfully", slog.String("account_id", accountID))
	return true, nil
}

package domain

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
)

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}
	return false
}

// UnknownAccountName is shown for ledger lines whose account is missing or deactivated.
const UnknownAccountName = "unknown account"

// Account represents a node in an organization's chart of accounts.
type Account struct {
	AccountID      string      `json:"accountID"`      // Primary Key (UUID)
	OrganizationID string      `json:"organizationID"` // Owning organization
	Code           string      `json:"code"`           // Digit string, unique per organization
	Name           string      `json:"name"`
	AccountType    AccountType `json:"accountType"`
	ParentID       *string     `json:"parentID"` // Nullable self reference
	IsActive       bool        `json:"isActive"`
	Depth          int         `json:"depth"` // Derived from the parent chain, not stored
	AuditFields
}

// ValidateCode checks that code is a non-empty digit string.
func ValidateCode(code string) error {
	if code == "" {
		return fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: account code %q must contain only digits", apperrors.ErrValidation, code)
		}
	}
	return nil
}

// ValidateChildCode checks that a child's code extends its parent's code.
func ValidateChildCode(parentCode, childCode string) error {
	if len(childCode) <= len(parentCode) || !strings.HasPrefix(childCode, parentCode) {
		return fmt.Errorf("%w: account code %s must extend parent code %s", apperrors.ErrValidation, childCode, parentCode)
	}
	return nil
}

// AccountTree is an arena of accounts keyed by ID, used to walk parent links.
type AccountTree struct {
	nodes map[string]Account
}

// NewAccountTree indexes accounts by ID.
func NewAccountTree(accounts []Account) *AccountTree {
	nodes := make(map[string]Account, len(accounts))
	for _, a := range accounts {
		nodes[a.AccountID] = a
	}
	return &AccountTree{nodes: nodes}
}

// Get returns the account with the given ID.
func (t *AccountTree) Get(accountID string) (Account, bool) {
	a, ok := t.nodes[accountID]
	return a, ok
}

// CheckParent verifies that assigning parentID to accountID keeps the graph acyclic.
// accountID may be empty for an account that does not exist yet.
func (t *AccountTree) CheckParent(accountID, parentID string) error {
	if _, ok := t.nodes[parentID]; !ok {
		return fmt.Errorf("%w: parent account %s", apperrors.ErrNotFound, parentID)
	}
	if accountID == "" {
		return nil
	}
	seen := make(map[string]struct{}, len(t.nodes))
	for cur := parentID; cur != ""; {
		if cur == accountID {
			return fmt.Errorf("%w: account %s cannot be its own ancestor", apperrors.ErrValidation, accountID)
		}
		if _, dup := seen[cur]; dup {
			// Pre-existing cycle among ancestors; refuse rather than loop.
			return fmt.Errorf("%w: cycle detected above account %s", apperrors.ErrValidation, cur)
		}
		seen[cur] = struct{}{}
		node, ok := t.nodes[cur]
		if !ok || node.ParentID == nil {
			break
		}
		cur = *node.ParentID
	}
	return nil
}

// Depth returns the number of ancestors of accountID (0 for a root).
func (t *AccountTree) Depth(accountID string) int {
	depth := 0
	seen := map[string]struct{}{accountID: {}}
	node, ok := t.nodes[accountID]
	for ok && node.ParentID != nil {
		if _, dup := seen[*node.ParentID]; dup {
			break
		}
		seen[*node.ParentID] = struct{}{}
		depth++
		node, ok = t.nodes[*node.ParentID]
	}
	return depth
}

package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// BalanceTolerance is the largest debit/credit difference an entry may carry, exclusive.
var BalanceTolerance = decimal.New(1, -2)

// JournalEntry is the header of a double-entry posting.
type JournalEntry struct {
	EntryID         string             `json:"entryID"` // Primary Key (UUID)
	OrganizationID  string             `json:"organizationID"`
	EntryDate       time.Time          `json:"entryDate"`
	Description     string             `json:"description"`
	ReferenceNumber *string            `json:"referenceNumber"`
	IsPosted        bool               `json:"isPosted"`
	Lines           []JournalEntryLine `json:"lines,omitempty"` // Loaded separately
	AuditFields
}

// JournalEntryLine is one side of a posting against a single account.
type JournalEntryLine struct {
	LineID      string          `json:"lineID"`
	EntryID     string          `json:"entryID"`
	LineNo      int             `json:"lineNo"` // 1-based order within the entry
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description *string         `json:"description"`
}

// EntryTotals sums the debit and credit sides of lines.
func EntryTotals(lines []JournalEntryLine) (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range lines {
		debit = debit.Add(l.Debit)
		credit = credit.Add(l.Credit)
	}
	return debit, credit
}

// ValidateLines enforces the double-entry invariants on a set of lines.
func ValidateLines(lines []JournalEntryLine) error {
	if len(lines) < 2 {
		return fmt.Errorf("%w: journal entry must have at least two lines", apperrors.ErrValidation)
	}
	for i, l := range lines {
		if l.AccountID == "" {
			return fmt.Errorf("%w: line %d has no account", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsNegative() || l.Credit.IsNegative() {
			return fmt.Errorf("%w: line %d has a negative amount", apperrors.ErrValidation, i+1)
		}
		// Amounts are stored with two decimals.
		if !l.Debit.Equal(l.Debit.Round(2)) || !l.Credit.Equal(l.Credit.Round(2)) {
			return fmt.Errorf("%w: line %d has an amount with more than two decimals", apperrors.ErrValidation, i+1)
		}
		if l.Debit.IsPositive() == l.Credit.IsPositive() {
			return fmt.Errorf("%w: line %d must have exactly one of debit or credit", apperrors.ErrValidation, i+1)
		}
	}
	debit, credit := EntryTotals(lines)
	if !debit.IsPositive() {
		return fmt.Errorf("%w: journal entry amount must be greater than zero", apperrors.ErrValidation)
	}
	if debit.Sub(credit).Abs().GreaterThanOrEqual(BalanceTolerance) {
		return fmt.Errorf("%w: debits (%s) != credits (%s)", apperrors.ErrValidation, debit.StringFixed(2), credit.StringFixed(2))
	}
	return nil
}

// CanModify refuses edits and deletes of posted entries.
func (e *JournalEntry) CanModify(action string) error {
	if e.IsPosted {
		return apperrors.NewStateError("journal entry", "POSTED", action)
	}
	return nil
}

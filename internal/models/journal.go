package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalEntry is the journal_entries table row.
type JournalEntry struct {
	EntryID         string    `db:"entry_id"`
	OrganizationID  string    `db:"organization_id"`
	EntrySeq        int64     `db:"entry_seq"` // Insertion order, assigned by the database
	EntryDate       time.Time `db:"entry_date"`
	Description     string    `db:"description"`
	ReferenceNumber *string   `db:"reference_number"`
	IsPosted        bool      `db:"is_posted"`
	AuditFields
}

// JournalEntryLine is the journal_entry_lines table row.
type JournalEntryLine struct {
	LineID      string          `db:"line_id"`
	EntryID     string          `db:"entry_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	Description *string         `db:"description"`
}

// LedgerRow is a journal line joined with its entry and, when present and active, its account.
type LedgerRow struct {
	EntryID          string          `db:"entry_id"`
	EntryDate        time.Time       `db:"entry_date"`
	EntryDescription string          `db:"entry_description"`
	ReferenceNumber  *string         `db:"reference_number"`
	IsPosted         bool            `db:"is_posted"`
	LineID           string          `db:"line_id"`
	LineNo           int             `db:"line_no"`
	LineDescription  *string         `db:"line_description"`
	AccountID        string          `db:"account_id"`
	AccountCode      *string         `db:"account_code"` // NULL when the account is missing or inactive
	AccountName      *string         `db:"account_name"`
	AccountType      *string         `db:"account_type"`
	Debit            decimal.Decimal `db:"debit"`
	Credit           decimal.Decimal `db:"credit"`
}

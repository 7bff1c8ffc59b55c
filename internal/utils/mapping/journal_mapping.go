package mapping

import (
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/SscSPs/ledger_tax_app/internal/models"
)

// ToModelJournalEntry converts a domain JournalEntry header to a model row
func ToModelJournalEntry(d domain.JournalEntry) models.JournalEntry {
	return models.JournalEntry{
		EntryID:         d.EntryID,
		OrganizationID:  d.OrganizationID,
		EntryDate:       d.EntryDate,
		Description:     d.Description,
		ReferenceNumber: d.ReferenceNumber,
		IsPosted:        d.IsPosted,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalEntry converts a model row to a domain JournalEntry without lines
func ToDomainJournalEntry(m models.JournalEntry) domain.JournalEntry {
	return domain.JournalEntry{
		EntryID:         m.EntryID,
		OrganizationID:  m.OrganizationID,
		EntryDate:       m.EntryDate,
		Description:     m.Description,
		ReferenceNumber: m.ReferenceNumber,
		IsPosted:        m.IsPosted,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalEntryLine converts a domain line to a model row
func ToModelJournalEntryLine(d domain.JournalEntryLine) models.JournalEntryLine {
	return models.JournalEntryLine{
		LineID:      d.LineID,
		EntryID:     d.EntryID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		Debit:       d.Debit,
		Credit:      d.Credit,
		Description: d.Description,
	}
}

// ToDomainJournalEntryLine converts a model row to a domain line
func ToDomainJournalEntryLine(m models.JournalEntryLine) domain.JournalEntryLine {
	return domain.JournalEntryLine{
		LineID:      m.LineID,
		EntryID:     m.EntryID,
		LineNo:      m.LineNo,
		AccountID:   m.AccountID,
		Debit:       m.Debit,
		Credit:      m.Credit,
		Description: m.Description,
	}
}

// ToDomainLedgerEntry converts a joined ledger row. Lines without a resolvable
// active account render with an empty code and the unknown-account name.
func ToDomainLedgerEntry(m models.LedgerRow) domain.LedgerEntry {
	e := domain.LedgerEntry{
		EntryID:          m.EntryID,
		EntryDate:        m.EntryDate,
		EntryDescription: m.EntryDescription,
		ReferenceNumber:  m.ReferenceNumber,
		IsPosted:         m.IsPosted,
		LineID:           m.LineID,
		LineNo:           m.LineNo,
		LineDescription:  m.LineDescription,
		AccountID:        m.AccountID,
		AccountName:      domain.UnknownAccountName,
		Debit:            m.Debit,
		Credit:           m.Credit,
	}
	if m.AccountCode != nil && m.AccountName != nil {
		e.AccountCode = *m.AccountCode
		e.AccountName = *m.AccountName
	}
	if m.AccountType != nil {
		e.AccountType = domain.AccountType(*m.AccountType)
	}
	return e
}

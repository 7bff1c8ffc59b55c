package dto

import (
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// JournalLineRequest is one line of a create or update request.
type JournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Debit       decimal.Decimal `json:"debit" binding:"decimalgte0"`
	Credit      decimal.Decimal `json:"credit" binding:"decimalgte0"`
	Description *string         `json:"description"`
}

// CreateJournalEntryRequest defines the data needed to create a journal entry with its lines.
type CreateJournalEntryRequest struct {
	EntryDate       time.Time            `json:"entryDate" binding:"required"`
	Description     string               `json:"description" binding:"required,max=500"`
	ReferenceNumber *string              `json:"referenceNumber" binding:"omitempty,max=100"`
	Lines           []JournalLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateJournalEntryRequest fully replaces an unposted entry's header and lines.
type UpdateJournalEntryRequest CreateJournalEntryRequest

// ToDomainLines converts request lines to domain lines, numbering them from 1.
func ToDomainLines(lines []JournalLineRequest) []domain.JournalEntryLine {
	out := make([]domain.JournalEntryLine, len(lines))
	for i, l := range lines {
		out[i] = domain.JournalEntryLine{
			LineNo:      i + 1,
			AccountID:   l.AccountID,
			Debit:       l.Debit,
			Credit:      l.Credit,
			Description: l.Description,
		}
	}
	return out
}

// ListJournalEntriesParams defines query parameters for listing journal entries.
type ListJournalEntriesParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=200"`
	NextToken string `form:"nextToken"`
}

// JournalLineResponse defines the data returned for a journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	Description *string         `json:"description"`
}

// JournalEntryResponse defines the data returned for a journal entry.
type JournalEntryResponse struct {
	EntryID         string                `json:"entryID"`
	EntryDate       time.Time             `json:"entryDate"`
	Description     string                `json:"description"`
	ReferenceNumber *string               `json:"referenceNumber"`
	IsPosted        bool                  `json:"isPosted"`
	TotalDebit      decimal.Decimal       `json:"totalDebit"`
	TotalCredit     decimal.Decimal       `json:"totalCredit"`
	Lines           []JournalLineResponse `json:"lines,omitempty"`
	CreatedAt       time.Time             `json:"createdAt"`
	CreatedBy       string                `json:"createdBy"`
	LastUpdatedAt   time.Time             `json:"lastUpdatedAt"`
	LastUpdatedBy   string                `json:"lastUpdatedBy"`
}

// ListJournalEntriesResponse wraps a page of journal entries.
type ListJournalEntriesResponse struct {
	Entries   []JournalEntryResponse `json:"entries"`
	NextToken *string                `json:"nextToken"`
}

// ToJournalEntryResponse converts a domain.JournalEntry to its DTO.
func ToJournalEntryResponse(e *domain.JournalEntry) JournalEntryResponse {
	debit, credit := domain.EntryTotals(e.Lines)
	resp := JournalEntryResponse{
		EntryID:         e.EntryID,
		EntryDate:       e.EntryDate,
		Description:     e.Description,
		ReferenceNumber: e.ReferenceNumber,
		IsPosted:        e.IsPosted,
		TotalDebit:      debit,
		TotalCredit:     credit,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
		LastUpdatedAt:   e.LastUpdatedAt,
		LastUpdatedBy:   e.LastUpdatedBy,
	}
	if len(e.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(e.Lines))
		for i, l := range e.Lines {
			resp.Lines[i] = JournalLineResponse{
				LineID:      l.LineID,
				LineNo:      l.LineNo,
				AccountID:   l.AccountID,
				Debit:       l.Debit,
				Credit:      l.Credit,
				Description: l.Description,
			}
		}
	}
	return resp
}

// ToJournalEntryResponses converts a slice of entries.
func ToJournalEntryResponses(entries []domain.JournalEntry) []JournalEntryResponse {
	res := make([]JournalEntryResponse, len(entries))
	for i := range entries {
		res[i] = ToJournalEntryResponse(&entries[i])
	}
	return res
}

// LedgerParams defines query parameters for the general ledger.
type LedgerParams struct {
	AccountID  string `form:"accountId"`
	StartDate  string `form:"startDate"` // YYYY-MM-DD
	EndDate    string `form:"endDate"`   // YYYY-MM-DD
	PostedOnly bool   `form:"postedOnly"`
}

// LedgerResponse wraps ledger rows.
type LedgerResponse struct {
	Entries []domain.LedgerEntry `json:"entries"`
}

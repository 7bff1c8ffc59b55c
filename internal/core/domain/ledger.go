package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerFilter narrows a ledger projection. Nil fields do not filter.
type LedgerFilter struct {
	AccountID  *string
	StartDate  *time.Time
	EndDate    *time.Time
	PostedOnly bool
}

// LedgerEntry is one journal line enriched with its entry header and account.
type LedgerEntry struct {
	EntryID          string          `json:"entryID"`
	EntryDate        time.Time       `json:"entryDate"`
	EntryDescription string          `json:"entryDescription"`
	ReferenceNumber  *string         `json:"referenceNumber"`
	IsPosted         bool            `json:"isPosted"`
	LineID           string          `json:"lineID"`
	LineNo           int             `json:"lineNo"`
	LineDescription  *string         `json:"lineDescription"`
	AccountID        string          `json:"accountID"`
	AccountCode      string          `json:"accountCode"`
	AccountName      string          `json:"accountName"`
	AccountType      AccountType     `json:"accountType"`
	Debit            decimal.Decimal `json:"debit"`
	Credit           decimal.Decimal `json:"credit"`
}

// TrialBalanceRow is the reduction of all ledger entries of one account.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Balance     decimal.Decimal `json:"balance"` // TotalDebit - TotalCredit
}

// TrialBalance holds per-account rows and their grand totals.
type TrialBalance struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"totalDebit"`
	TotalCredit decimal.Decimal   `json:"totalCredit"`
}

// IsBalanced reports whether grand debit equals grand credit.
func (tb TrialBalance) IsBalanced() bool {
	return tb.TotalDebit.Equal(tb.TotalCredit)
}

// ReduceTrialBalance accumulates ledger entries per account and sorts rows by account code.
func ReduceTrialBalance(entries []LedgerEntry) TrialBalance {
	index := make(map[string]int)
	rows := make([]TrialBalanceRow, 0)
	totalDebit, totalCredit := decimal.Zero, decimal.Zero

	for _, e := range entries {
		i, ok := index[e.AccountID]
		if !ok {
			i = len(rows)
			index[e.AccountID] = i
			rows = append(rows, TrialBalanceRow{
				AccountID:   e.AccountID,
				AccountCode: e.AccountCode,
				AccountName: e.AccountName,
				AccountType: e.AccountType,
				TotalDebit:  decimal.Zero,
				TotalCredit: decimal.Zero,
			})
		}
		rows[i].TotalDebit = rows[i].TotalDebit.Add(e.Debit)
		rows[i].TotalCredit = rows[i].TotalCredit.Add(e.Credit)
		totalDebit = totalDebit.Add(e.Debit)
		totalCredit = totalCredit.Add(e.Credit)
	}

	for i := range rows {
		rows[i].Balance = rows[i].TotalDebit.Sub(rows[i].TotalCredit)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].AccountCode != rows[j].AccountCode {
			return rows[i].AccountCode < rows[j].AccountCode
		}
		return rows[i].AccountID < rows[j].AccountID
	})

	return TrialBalance{Rows: rows, TotalDebit: totalDebit, TotalCredit: totalCredit}
}

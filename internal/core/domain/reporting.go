package domain

import (
	"github.com/shopspring/decimal"
)

// AccountAmount represents an account with its net amount for financial reports
type AccountAmount struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	Name        string          `json:"name"`
	NetAmount   decimal.Decimal `json:"netAmount"`
}

// PAndLReport represents a profit and loss report
type PAndLReport struct {
	Revenue       []AccountAmount `json:"revenue"`  // Net revenue accounts
	Expenses      []AccountAmount `json:"expenses"` // Net expense accounts
	TotalRevenue  decimal.Decimal `json:"totalRevenue"`
	TotalExpenses decimal.Decimal `json:"totalExpenses"`
	NetProfit     decimal.Decimal `json:"netProfit"` // Total revenue minus total expenses
}

// BalanceSheetReport represents a balance sheet report
type BalanceSheetReport struct {
	Assets           []AccountAmount `json:"assets"`
	Liabilities      []AccountAmount `json:"liabilities"`
	Equity           []AccountAmount `json:"equity"`
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	TotalEquity      decimal.Decimal `json:"totalEquity"`
	// Revenue minus expenses not yet closed into equity.
	CurrentEarnings decimal.Decimal `json:"currentEarnings"`
}

func amountOf(row TrialBalanceRow, creditNormal bool) AccountAmount {
	net := row.Balance
	if creditNormal {
		net = net.Neg()
	}
	return AccountAmount{AccountID: row.AccountID, AccountCode: row.AccountCode, Name: row.AccountName, NetAmount: net}
}

// BuildPAndL projects revenue and expense rows of a trial balance.
func BuildPAndL(tb TrialBalance) PAndLReport {
	report := PAndLReport{
		Revenue:       []AccountAmount{},
		Expenses:      []AccountAmount{},
		TotalRevenue:  decimal.Zero,
		TotalExpenses: decimal.Zero,
	}
	for _, row := range tb.Rows {
		switch row.AccountType {
		case Revenue:
			a := amountOf(row, true)
			report.Revenue = append(report.Revenue, a)
			report.TotalRevenue = report.TotalRevenue.Add(a.NetAmount)
		case Expense:
			a := amountOf(row, false)
			report.Expenses = append(report.Expenses, a)
			report.TotalExpenses = report.TotalExpenses.Add(a.NetAmount)
		}
	}
	report.NetProfit = report.TotalRevenue.Sub(report.TotalExpenses)
	return report
}

// BuildBalanceSheet projects asset, liability and equity rows of a trial balance.
func BuildBalanceSheet(tb TrialBalance) BalanceSheetReport {
	report := BalanceSheetReport{
		Assets:           []AccountAmount{},
		Liabilities:      []AccountAmount{},
		Equity:           []AccountAmount{},
		TotalAssets:      decimal.Zero,
		TotalLiabilities: decimal.Zero,
		TotalEquity:      decimal.Zero,
	}
	for _, row := range tb.Rows {
		switch row.AccountType {
		case Asset:
			a := amountOf(row, false)
			report.Assets = append(report.Assets, a)
			report.TotalAssets = report.TotalAssets.Add(a.NetAmount)
		case Liability:
			a := amountOf(row, true)
			report.Liabilities = append(report.Liabilities, a)
			report.TotalLiabilities = report.TotalLiabilities.Add(a.NetAmount)
		case Equity:
			a := amountOf(row, true)
			report.Equity = append(report.Equity, a)
			report.TotalEquity = report.TotalEquity.Add(a.NetAmount)
		}
	}
	report.CurrentEarnings = BuildPAndL(tb).NetProfit
	return report
}

package domain_test

import (
	"testing"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func ledgerLine(accountID, code string, typ domain.AccountType, debit, credit string) domain.LedgerEntry {
	return domain.LedgerEntry{
		AccountID:   accountID,
		AccountCode: code,
		AccountName: code,
		AccountType: typ,
		Debit:       decimal.RequireFromString(debit),
		Credit:      decimal.RequireFromString(credit),
	}
}

func TestReduceTrialBalance(t *testing.T) {
	entries := []domain.LedgerEntry{
		ledgerLine("rev", "4101", domain.Revenue, "0", "500.00"),
		ledgerLine("cash", "1101", domain.Asset, "500.00", "0"),
		ledgerLine("exp", "5101", domain.Expense, "120.50", "0"),
		ledgerLine("cash", "1101", domain.Asset, "0", "120.50"),
	}

	tb := domain.ReduceTrialBalance(entries)

	assert.True(t, tb.IsBalanced())
	assert.True(t, tb.TotalDebit.Equal(decimal.RequireFromString("620.50")))
	if assert.Len(t, tb.Rows, 3) {
		assert.Equal(t, "1101", tb.Rows[0].AccountCode)
		assert.Equal(t, "4101", tb.Rows[1].AccountCode)
		assert.Equal(t, "5101", tb.Rows[2].AccountCode)
		assert.True(t, tb.Rows[0].Balance.Equal(decimal.RequireFromString("379.50")))
		assert.True(t, tb.Rows[1].Balance.Equal(decimal.RequireFromString("-500.00")))
	}

	pnl := domain.BuildPAndL(tb)
	assert.True(t, pnl.TotalRevenue.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, pnl.TotalExpenses.Equal(decimal.RequireFromString("120.50")))
	assert.True(t, pnl.NetProfit.Equal(decimal.RequireFromString("379.50")))

	bs := domain.BuildBalanceSheet(tb)
	assert.True(t, bs.TotalAssets.Equal(decimal.RequireFromString("379.50")))
	assert.True(t, bs.TotalAssets.Equal(bs.TotalLiabilities.Add(bs.TotalEquity).Add(bs.CurrentEarnings)))
}

func TestReduceTrialBalance_Empty(t *testing.T) {
	tb := domain.ReduceTrialBalance(nil)
	assert.Empty(t, tb.Rows)
	assert.NotNil(t, tb.Rows)
	assert.True(t, tb.IsBalanced())
}

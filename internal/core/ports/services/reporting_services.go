package services

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
)

// ReportingService defines operations for generating financial reports
type ReportingService interface {
	// TrialBalance reduces the ledger into one row per account.
	TrialBalance(ctx context.Context, orgID string, params dto.TrialBalanceParams, userID string) (*domain.TrialBalance, error)

	// ProfitAndLoss generates a profit and loss report for a specific period
	ProfitAndLoss(ctx context.Context, orgID string, from, to time.Time, userID string) (*domain.PAndLReport, error)

	// BalanceSheet generates a balance sheet report as of a specific date
	BalanceSheet(ctx context.Context, orgID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error)
}

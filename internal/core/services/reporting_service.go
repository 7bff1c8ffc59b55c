package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
)

// reportingService reduces the ledger into the trial balance and financial statements.
type reportingService struct {
	ledgerProjector
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingAuthorizer sets the capability checker
func WithReportingAuthorizer(authorizer portssvc.Authorizer) ReportingServiceOption {
	return func(s *reportingService) {
		s.Authorizer = authorizer
	}
}

// WithReportingLedgerCache sets the ledger cache shared with the ledger service
func WithReportingLedgerCache(cache portsrepo.LedgerCache) ReportingServiceOption {
	return func(s *reportingService) {
		s.cache = cache
	}
}

// NewReportingService creates a new reporting service
func NewReportingService(ledgerRepo portsrepo.LedgerReader, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{ledgerProjector{ledgerRepo: ledgerRepo}}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

func (s *reportingService) trialBalance(ctx context.Context, orgID string, filter domain.LedgerFilter) (domain.TrialBalance, error) {
	entries, err := s.project(ctx, orgID, filter)
	if err != nil {
		return domain.TrialBalance{}, err
	}
	tb := domain.ReduceTrialBalance(entries)
	if !tb.IsBalanced() {
		s.GetLogger(ctx).Warn("Trial balance does not balance",
			slog.String("org_id", orgID),
			slog.String("total_debit", tb.TotalDebit.StringFixed(2)),
			slog.String("total_credit", tb.TotalCredit.StringFixed(2)))
	}
	return tb, nil
}

// TrialBalance reduces the ledger into one row per account. Only posted entries count unless
// PostedOnly is explicitly false.
func (s *reportingService) TrialBalance(ctx context.Context, orgID string, params dto.TrialBalanceParams, userID string) (*domain.TrialBalance, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}

	postedOnly := true
	if params.PostedOnly != nil {
		postedOnly = *params.PostedOnly
	}
	tb, err := s.trialBalance(ctx, orgID, domain.LedgerFilter{
		StartDate:  params.StartDate,
		EndDate:    params.EndDate,
		PostedOnly: postedOnly,
	})
	if err != nil {
		return nil, err
	}

	s.LogDebug(ctx, "Trial balance generated", slog.Int("rows", len(tb.Rows)))
	return &tb, nil
}

// ProfitAndLoss generates a profit and loss report over posted entries dated within [from, to].
func (s *reportingService) ProfitAndLoss(ctx context.Context, orgID string, from, to time.Time, userID string) (*domain.PAndLReport, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from date must not be after to date", apperrors.ErrValidation)
	}

	tb, err := s.trialBalance(ctx, orgID, domain.LedgerFilter{StartDate: &from, EndDate: &to, PostedOnly: true})
	if err != nil {
		return nil, err
	}
	report := domain.BuildPAndL(tb)

	s.LogInfo(ctx, "Profit and loss report generated",
		slog.String("org_id", orgID),
		slog.String("net_profit", report.NetProfit.StringFixed(2)))
	return &report, nil
}

// BalanceSheet generates a balance sheet over posted entries dated on or before asOf.
func (s *reportingService) BalanceSheet(ctx context.Context, orgID string, asOf time.Time, userID string) (*domain.BalanceSheetReport, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}

	tb, err := s.trialBalance(ctx, orgID, domain.LedgerFilter{EndDate: &asOf, PostedOnly: true})
	if err != nil {
		return nil, err
	}
	report := domain.BuildBalanceSheet(tb)

	s.LogInfo(ctx, "Balance sheet generated",
		slog.String("org_id", orgID),
		slog.String("total_assets", report.TotalAssets.StringFixed(2)))
	return &report, nil
}

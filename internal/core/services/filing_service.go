package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/SscSPs/ledger_tax_app/internal/utils/accounting"
)

const entityTaxFiling = "tax_filing"

// filingService computes statutory filings from upstream data and drives their lifecycle.
type filingService struct {
	BaseService
	filingRepo portsrepo.FilingRepositoryFacade
	upstream   portsrepo.UpstreamReaders
}

// FilingServiceOption is a functional option for configuring the filing service
type FilingServiceOption func(*filingService)

// WithFilingAuthorizer sets the capability checker
func WithFilingAuthorizer(authorizer portssvc.Authorizer) FilingServiceOption {
	return func(s *filingService) {
		s.Authorizer = authorizer
	}
}

// WithFilingAudit sets the audit recorder
func WithFilingAudit(recorder portssvc.AuditRecorder) FilingServiceOption {
	return func(s *filingService) {
		s.Audit = recorder
	}
}

// NewFilingService creates a new filing service
func NewFilingService(filingRepo portsrepo.FilingRepositoryFacade, upstream portsrepo.UpstreamReaders, options ...FilingServiceOption) portssvc.FilingSvcFacade {
	svc := &filingService{filingRepo: filingRepo, upstream: upstream}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.FilingSvcFacade = (*filingService)(nil)

func periodAttrs(orgID string, period domain.FilingPeriod) []any {
	attrs := []any{
		slog.String("org_id", orgID),
		slog.String("form_type", string(period.FormType)),
		slog.Int("period_year", period.Year),
	}
	if period.Month != nil {
		attrs = append(attrs, slog.Int("period_month", *period.Month))
	}
	return attrs
}

func filingAuditContext(f *domain.TaxFiling) map[string]any {
	c := map[string]any{
		"formType":   string(f.FormType),
		"periodYear": f.PeriodYear,
		"status":     string(f.Status),
	}
	if f.PeriodMonth != nil {
		c["periodMonth"] = *f.PeriodMonth
	}
	return c
}

// GetFiling retrieves a filing by ID.
func (s *filingService) GetFiling(ctx context.Context, orgID, filingID, userID string) (*domain.TaxFiling, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapTaxesView); err != nil {
		return nil, err
	}

	filing, err := s.filingRepo.FindFilingByID(ctx, orgID, filingID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find tax filing", slog.String("filing_id", filingID))
		}
		return nil, err
	}
	return filing, nil
}

// ListFilings lists the organization's filings for a year.
func (s *filingService) ListFilings(ctx context.Context, orgID string, year int, formType *domain.FormType, userID string) ([]domain.TaxFiling, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapTaxesView); err != nil {
		return nil, err
	}
	if formType != nil && !formType.IsValid() {
		return nil, fmt.Errorf("%w: unknown form type %q", apperrors.ErrValidation, *formType)
	}

	filings, err := s.filingRepo.ListFilings(ctx, orgID, year, formType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list tax filings", slog.String("org_id", orgID), slog.Int("year", year))
		return nil, err
	}
	if filings == nil {
		return []domain.TaxFiling{}, nil
	}
	return filings, nil
}

// computeFigures reads the upstream sources for the period and runs the form's calculator.
func (s *filingService) computeFigures(ctx context.Context, orgID string, period domain.FilingPeriod) (domain.FilingFigures, error) {
	from, to := period.Bounds()

	sales, err := s.upstream.Sales.ListForPeriod(ctx, orgID, from, to, domain.QualifyingSalesStatuses)
	if err != nil {
		return domain.FilingFigures{}, err
	}

	switch period.FormType {
	case domain.FormF07:
		expenses, err := s.upstream.Expenses.ListForPeriod(ctx, orgID, from, to, domain.ApprovedExpenseStatuses)
		if err != nil {
			return domain.FilingFigures{}, err
		}
		return accounting.ComputeF07(sales, expenses), nil

	case domain.FormF11:
		runs, err := s.upstream.Payroll.ListRunsOverlapping(ctx, orgID, from, to, domain.QualifyingPayrollStatuses)
		if err != nil {
			return domain.FilingFigures{}, err
		}
		return accounting.ComputeF11(sales, runs), nil

	case domain.FormF14:
		expenses, err := s.upstream.Expenses.ListForPeriod(ctx, orgID, from, to, domain.ApprovedExpenseStatuses)
		if err != nil {
			return domain.FilingFigures{}, err
		}
		runs, err := s.upstream.Payroll.ListRunsOverlapping(ctx, orgID, from, to, domain.QualifyingPayrollStatuses)
		if err != nil {
			return domain.FilingFigures{}, err
		}
		f11 := domain.FormF11
		advances, err := s.filingRepo.ListFilings(ctx, orgID, period.Year, &f11)
		if err != nil {
			return domain.FilingFigures{}, err
		}
		return accounting.ComputeF14(sales, expenses, runs, advances), nil
	}

	return domain.FilingFigures{}, fmt.Errorf("%w: unknown form type %q", apperrors.ErrValidation, period.FormType)
}

// ComputeFiling derives the period's figures and upserts the filing as CALCULATED.
// Recomputing a FILED or ACCEPTED filing is refused.
func (s *filingService) ComputeFiling(ctx context.Context, orgID string, period domain.FilingPeriod, userID string) (*domain.TaxFiling, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapTaxesFile); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	figures, err := s.computeFigures(ctx, orgID, period)
	if err != nil {
		s.LogError(ctx, err, "Failed to compute tax filing figures", periodAttrs(orgID, period)...)
		return nil, err
	}

	filing := domain.TaxFiling{
		FilingID:       uuid.NewString(),
		OrganizationID: orgID,
		FormType:       period.FormType,
		PeriodYear:     period.Year,
		PeriodMonth:    period.Month,
		Status:         domain.FilingCalculated,
		FilingFigures:  figures,
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	stored, err := s.filingRepo.UpsertFiling(ctx, filing, func(existing *domain.TaxFiling) error {
		return existing.CanRecompute()
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrState) {
			s.LogError(ctx, err, "Failed to store computed tax filing", periodAttrs(orgID, period)...)
		}
		return nil, err
	}

	s.RecordAudit(ctx, orgID, userID, domain.AuditCompute, entityTaxFiling, stored.FilingID,
		fmt.Sprintf("computed %s for %d", stored.FormType, stored.PeriodYear), filingAuditContext(stored))
	s.LogInfo(ctx, "Tax filing computed", append(periodAttrs(orgID, period), slog.String("filing_id", stored.FilingID))...)
	return stored, nil
}

// CreateDraft inserts an all-zero DRAFT filing for a period that has none.
func (s *filingService) CreateDraft(ctx context.Context, orgID string, period domain.FilingPeriod, userID string) (*domain.TaxFiling, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapTaxesFile); err != nil {
		return nil, err
	}
	if err := period.Validate(); err != nil {
		return nil, err
	}

	filing := domain.TaxFiling{
		FilingID:       uuid.NewString(),
		OrganizationID: orgID,
		FormType:       period.FormType,
		PeriodYear:     period.Year,
		PeriodMonth:    period.Month,
		Status:         domain.FilingDraft,
		FilingFigures:  domain.ZeroFigures(),
		AuditFields:    domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.filingRepo.InsertFiling(ctx, filing); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			s.LogError(ctx, err, "Failed to insert draft tax filing", periodAttrs(orgID, period)...)
		}
		return nil, err
	}

	s.RecordAudit(ctx, orgID, userID, domain.AuditCreate, entityTaxFiling, filing.FilingID,
		fmt.Sprintf("drafted %s for %d", filing.FormType, filing.PeriodYear), filingAuditContext(&filing))
	s.LogInfo(ctx, "Draft tax filing created", append(periodAttrs(orgID, period), slog.String("filing_id", filing.FilingID))...)
	return &filing, nil
}

// TransitionFiling advances a filing through its lifecycle. Moving to FILED stamps the
// filing time and the optional authority reference.
func (s *filingService) TransitionFiling(ctx context.Context, orgID, filingID string, req dto.TransitionFilingRequest, userID string) (*domain.TaxFiling, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapTaxesFile); err != nil {
		return nil, err
	}
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown filing status %q", apperrors.ErrValidation, req.Status)
	}

	filing, err := s.filingRepo.FindFilingByID(ctx, orgID, filingID)
	if err != nil {
		return nil, err
	}

	from := filing.Status
	if err := domain.ValidateTransition(from, req.Status); err != nil {
		return nil, err
	}

	now := s.Now()
	filing.Status = req.Status
	if req.Status == domain.FilingFiled {
		filedAt := now
		filing.FiledAt = &filedAt
		filing.FilingReference = req.FilingReference
	}
	filing.Touch(userID, now)

	if err := s.filingRepo.UpdateFilingStatus(ctx, *filing); err != nil {
		s.LogError(ctx, err, "Failed to update tax filing status",
			slog.String("filing_id", filingID),
			slog.String("status", string(req.Status)))
		return nil, err
	}

	auditCtx := filingAuditContext(filing)
	auditCtx["from"] = string(from)
	s.RecordAudit(ctx, orgID, userID, domain.AuditTransition, entityTaxFiling, filingID,
		fmt.Sprintf("moved %s filing from %s to %s", filing.FormType, from, req.Status), auditCtx)
	s.LogInfo(ctx, "Tax filing status changed",
		slog.String("filing_id", filingID),
		slog.String("from", string(from)),
		slog.String("to", string(req.Status)))
	return filing, nil
}

// DeleteFiling removes a DRAFT or CALCULATED filing.
func (s *filingService) DeleteFiling(ctx context.Context, orgID, filingID, userID string) error {
	if err := s.Authorize(ctx, userID, orgID, domain.CapTaxesFile); err != nil {
		return err
	}

	filing, err := s.filingRepo.FindFilingByID(ctx, orgID, filingID)
	if err != nil {
		return err
	}
	if err := filing.CanDelete(); err != nil {
		return err
	}

	if err := s.filingRepo.DeleteFiling(ctx, orgID, filingID); err != nil {
		s.LogError(ctx, err, "Failed to delete tax filing", slog.String("filing_id", filingID))
		return err
	}

	s.RecordAudit(ctx, orgID, userID, domain.AuditDelete, entityTaxFiling, filingID,
		fmt.Sprintf("deleted %s filing for %d", filing.FormType, filing.PeriodYear), filingAuditContext(filing))
	s.LogInfo(ctx, "Tax filing deleted", slog.String("filing_id", filingID))
	return nil
}

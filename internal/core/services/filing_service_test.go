package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/core/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type FilingServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockFilingRepository
	mockSales    *MockSalesReader
	mockExpenses *MockExpenseReader
	mockPayroll  *MockPayrollReader
	mockAuth     *MockAuthorizer
	mockAudit    *MockAuditRecorder
	service      portssvc.FilingSvcFacade

	ctx    context.Context
	orgID  string
	userID string
}

func (suite *FilingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockFilingRepository)
	suite.mockSales = new(MockSalesReader)
	suite.mockExpenses = new(MockExpenseReader)
	suite.mockPayroll = new(MockPayrollReader)
	suite.mockAuth = new(MockAuthorizer)
	suite.mockAudit = new(MockAuditRecorder)
	suite.service = services.NewFilingService(
		suite.mockRepo,
		portsrepo.UpstreamReaders{Sales: suite.mockSales, Expenses: suite.mockExpenses, Payroll: suite.mockPayroll},
		services.WithFilingAuthorizer(suite.mockAuth),
		services.WithFilingAudit(suite.mockAudit),
	)
	suite.ctx = context.Background()
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
}

func (suite *FilingServiceTestSuite) allow(capability domain.Capability) {
	suite.mockAuth.On("Authorize", suite.ctx, suite.userID, suite.orgID, capability).Return(nil).Once()
}

func (suite *FilingServiceTestSuite) expectAudit(action string) {
	suite.mockAudit.On("Record", suite.ctx, mock.MatchedBy(func(r domain.AuditRecord) bool {
		return r.Action == action && r.EntityType == "tax_filing"
	})).Return().Once()
}

func (suite *FilingServiceTestSuite) assertAll() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSales.AssertExpectations(suite.T())
	suite.mockExpenses.AssertExpectations(suite.T())
	suite.mockPayroll.AssertExpectations(suite.T())
	suite.mockAuth.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
}

func month(m int) *int { return &m }

func amount(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func (suite *FilingServiceTestSuite) march2024() (domain.FilingPeriod, time.Time, time.Time) {
	return domain.FilingPeriod{FormType: domain.FormF07, Year: 2024, Month: month(3)},
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
}

// Scenario A: a single taxed sale of 1,000.00 yields 130.00 payable.
func (suite *FilingServiceTestSuite) TestComputeF07_ScenarioA() {
	period, from, to := suite.march2024()
	sales := []domain.SalesDocument{{
		DocumentID: "inv-1", Status: "APPROVED",
		TaxedBase: amount("1000.00"), ExemptBase: decimal.Zero, NonSubjectBase: decimal.Zero,
		TaxCollected: amount("130.00"), TaxWithheld: decimal.Zero,
	}}

	suite.allow(domain.CapTaxesFile)
	suite.mockSales.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.QualifyingSalesStatuses).Return(sales, nil).Once()
	suite.mockExpenses.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.ApprovedExpenseStatuses).Return([]domain.ExpenseRecord{}, nil).Once()
	suite.mockRepo.On("UpsertFiling", suite.ctx, mock.MatchedBy(func(f domain.TaxFiling) bool {
		return f.FormType == domain.FormF07 && f.Status == domain.FilingCalculated && *f.PeriodMonth == 3
	}), mock.Anything).Return(nil, nil).Once()
	suite.expectAudit(domain.AuditCompute)

	filing, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.FilingCalculated, filing.Status)
	suite.Equal("130.00", filing.TaxCollected.StringFixed(2))
	suite.Equal("0.00", filing.TaxCredit.StringFixed(2))
	suite.Equal("130.00", filing.TaxPayable.StringFixed(2))
	suite.assertAll()
}

// Recomputing with unchanged inputs keeps the row and yields identical figures.
func (suite *FilingServiceTestSuite) TestComputeF07_Idempotent() {
	period, from, to := suite.march2024()
	supplier := "J-12345678"
	expenses := []domain.ExpenseRecord{{ExpenseID: "exp-1", Status: "APPROVED", Amount: amount("113.00"), SupplierTaxID: &supplier}}

	suite.mockAuth.On("Authorize", suite.ctx, suite.userID, suite.orgID, domain.CapTaxesFile).Return(nil).Twice()
	suite.mockSales.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.QualifyingSalesStatuses).Return([]domain.SalesDocument{}, nil).Twice()
	suite.mockExpenses.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.ApprovedExpenseStatuses).Return(expenses, nil).Twice()
	suite.mockRepo.On("UpsertFiling", suite.ctx, mock.Anything, mock.Anything).Return(nil, nil).Once()
	suite.mockAudit.On("Record", suite.ctx, mock.Anything).Return().Twice()

	first, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)
	suite.Require().NoError(err)

	suite.mockRepo.On("UpsertFiling", suite.ctx, mock.Anything, mock.Anything).Return(first, nil).Once()

	second, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)
	suite.Require().NoError(err)

	suite.Equal(first.FilingID, second.FilingID)
	suite.Equal(first.FilingFigures, second.FilingFigures)
	// Scenario B through the service: 113.00 inclusive splits into 100.00 + 13.00.
	suite.Equal("100.00", second.PurchasesTaxed.StringFixed(2))
	suite.Equal("13.00", second.TaxCredit.StringFixed(2))
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestComputeFiling_RefusesFiledRecompute() {
	period, from, to := suite.march2024()
	filed := &domain.TaxFiling{
		FilingID: uuid.NewString(), OrganizationID: suite.orgID, FormType: domain.FormF07,
		PeriodYear: 2024, PeriodMonth: month(3), Status: domain.FilingFiled,
		FilingFigures: domain.ZeroFigures(),
	}

	suite.allow(domain.CapTaxesFile)
	suite.mockSales.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.QualifyingSalesStatuses).Return([]domain.SalesDocument{}, nil).Once()
	suite.mockExpenses.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.ApprovedExpenseStatuses).Return([]domain.ExpenseRecord{}, nil).Once()
	suite.mockRepo.On("UpsertFiling", suite.ctx, mock.Anything, mock.Anything).Return(filed, nil).Once()

	filing, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)

	suite.Nil(filing)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.Equal(domain.FilingFiled, filed.Status)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestComputeFiling_RejectedBecomesCalculated() {
	period, from, to := suite.march2024()
	rejected := &domain.TaxFiling{
		FilingID: uuid.NewString(), OrganizationID: suite.orgID, FormType: domain.FormF07,
		PeriodYear: 2024, PeriodMonth: month(3), Status: domain.FilingRejected,
		FilingFigures: domain.ZeroFigures(),
	}

	suite.allow(domain.CapTaxesFile)
	suite.mockSales.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.QualifyingSalesStatuses).Return([]domain.SalesDocument{}, nil).Once()
	suite.mockExpenses.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.ApprovedExpenseStatuses).Return([]domain.ExpenseRecord{}, nil).Once()
	suite.mockRepo.On("UpsertFiling", suite.ctx, mock.Anything, mock.Anything).Return(rejected, nil).Once()
	suite.expectAudit(domain.AuditCompute)

	filing, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(rejected.FilingID, filing.FilingID)
	suite.Equal(domain.FilingCalculated, filing.Status)
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestComputeF11_PayrollWithholding() {
	period := domain.FilingPeriod{FormType: domain.FormF11, Year: 2024, Month: month(3)}
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	sales := []domain.SalesDocument{{
		Status: "SIGNED", TaxedBase: amount("8000.00"), ExemptBase: amount("1500.00"), NonSubjectBase: amount("500.00"),
		TaxCollected: amount("1040.00"), TaxWithheld: decimal.Zero,
	}}
	runs := []domain.PayrollRun{{
		RunID: "run-1", Status: "PAID", TotalGross: amount("4000.00"),
		PeriodStart: from, PeriodEnd: to,
		Details: []domain.PayrollDetail{
			{EmployeeID: "e1", IncomeTaxWithheld: amount("120.50")},
			{EmployeeID: "e2", IncomeTaxWithheld: amount("79.50")},
		},
	}}

	suite.allow(domain.CapTaxesFile)
	suite.mockSales.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.QualifyingSalesStatuses).Return(sales, nil).Once()
	suite.mockPayroll.On("ListRunsOverlapping", suite.ctx, suite.orgID, from, to, domain.QualifyingPayrollStatuses).Return(runs, nil).Once()
	suite.mockRepo.On("UpsertFiling", suite.ctx, mock.Anything, mock.Anything).Return(nil, nil).Once()
	suite.expectAudit(domain.AuditCompute)

	filing, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("10000.00", filing.GrossIncome.StringFixed(2))
	suite.Equal("175.00", filing.AdvanceTax.StringFixed(2))
	suite.Equal("200.00", filing.IncomeTaxWithheld.StringFixed(2))
	suite.Equal("375.00", filing.TotalPayable.StringFixed(2))
	suite.assertAll()
}

// Scenario E: 50,000 income, 20,000 cost and 3,000 in advances leave 6,000 due.
func (suite *FilingServiceTestSuite) TestComputeF14_ScenarioE() {
	period := domain.FilingPeriod{FormType: domain.FormF14, Year: 2024}
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	sales := []domain.SalesDocument{{
		Status: "TRANSMITTED", TaxedBase: amount("50000.00"), ExemptBase: decimal.Zero, NonSubjectBase: decimal.Zero,
		TaxCollected: amount("6500.00"), TaxWithheld: decimal.Zero,
	}}
	expenses := []domain.ExpenseRecord{{Status: "APPROVED", Amount: amount("20000.00")}}
	advance := func(status domain.FilingStatus, tax string) domain.TaxFiling {
		f := domain.TaxFiling{FormType: domain.FormF11, PeriodYear: 2024, Status: status, FilingFigures: domain.ZeroFigures()}
		f.AdvanceTax = amount(tax)
		return f
	}
	advances := []domain.TaxFiling{
		advance(domain.FilingAccepted, "1000.00"),
		advance(domain.FilingFiled, "1500.00"),
		advance(domain.FilingCalculated, "500.00"),
		advance(domain.FilingDraft, "9999.00"),
	}
	f11 := domain.FormF11

	suite.allow(domain.CapTaxesFile)
	suite.mockSales.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.QualifyingSalesStatuses).Return(sales, nil).Once()
	suite.mockExpenses.On("ListForPeriod", suite.ctx, suite.orgID, from, to, domain.ApprovedExpenseStatuses).Return(expenses, nil).Once()
	suite.mockPayroll.On("ListRunsOverlapping", suite.ctx, suite.orgID, from, to, domain.QualifyingPayrollStatuses).Return([]domain.PayrollRun{}, nil).Once()
	suite.mockRepo.On("ListFilings", suite.ctx, suite.orgID, 2024, &f11).Return(advances, nil).Once()
	suite.mockRepo.On("UpsertFiling", suite.ctx, mock.MatchedBy(func(f domain.TaxFiling) bool {
		return f.FormType == domain.FormF14 && f.PeriodMonth == nil
	}), mock.Anything).Return(nil, nil).Once()
	suite.expectAudit(domain.AuditCompute)

	filing, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("30000.00", filing.TaxableIncome.StringFixed(2))
	suite.Equal("9000.00", filing.AnnualTax.StringFixed(2))
	suite.Equal("3000.00", filing.AccumulatedAdvances.StringFixed(2))
	suite.Equal("6000.00", filing.BalanceDue.StringFixed(2))
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestComputeFiling_ForbiddenBeforeReads() {
	period, _, _ := suite.march2024()

	suite.mockAuth.On("Authorize", suite.ctx, suite.userID, suite.orgID, domain.CapTaxesFile).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, period, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockSales.AssertNotCalled(suite.T(), "ListForPeriod", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestComputeFiling_InvalidPeriod() {
	suite.allow(domain.CapTaxesFile)

	_, err := suite.service.ComputeFiling(suite.ctx, suite.orgID, domain.FilingPeriod{FormType: domain.FormF07, Year: 2024}, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestCreateDraft_Duplicate() {
	period, _, _ := suite.march2024()

	suite.allow(domain.CapTaxesFile)
	suite.mockRepo.On("InsertFiling", suite.ctx, mock.MatchedBy(func(f domain.TaxFiling) bool {
		return f.Status == domain.FilingDraft && f.TaxPayable.IsZero()
	})).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateDraft(suite.ctx, suite.orgID, period, suite.userID)

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestTransition_FiledStampsReference() {
	filing := &domain.TaxFiling{
		FilingID: uuid.NewString(), OrganizationID: suite.orgID, FormType: domain.FormF07,
		PeriodYear: 2024, PeriodMonth: month(3), Status: domain.FilingCalculated,
	}
	ref := "SENIAT-2024-03-0001"

	suite.allow(domain.CapTaxesFile)
	suite.mockRepo.On("FindFilingByID", suite.ctx, suite.orgID, filing.FilingID).Return(filing, nil).Once()
	suite.mockRepo.On("UpdateFilingStatus", suite.ctx, mock.MatchedBy(func(f domain.TaxFiling) bool {
		return f.Status == domain.FilingFiled && f.FiledAt != nil && f.FilingReference != nil && *f.FilingReference == ref
	})).Return(nil).Once()
	suite.expectAudit(domain.AuditTransition)

	updated, err := suite.service.TransitionFiling(suite.ctx, suite.orgID, filing.FilingID,
		dto.TransitionFilingRequest{Status: domain.FilingFiled, FilingReference: &ref}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.FilingFiled, updated.Status)
	suite.NotNil(updated.FiledAt)
	suite.assertAll()
}

func (suite *FilingServiceTestSuite) TestTransition_IllegalLeavesStatus() {
	tests := []struct {
		from domain.FilingStatus
		to   domain.FilingStatus
	}{
		{domain.FilingDraft, domain.FilingFiled},
		{domain.FilingCalculated, domain.FilingAccepted},
		{domain.FilingAccepted, domain.FilingCalculated},
		{domain.FilingRejected, domain.FilingFiled},
	}
	for _, tt := range tests {
		suite.Run(string(tt.from)+"->"+string(tt.to), func() {
			suite.SetupTest()
			filing := &domain.TaxFiling{FilingID: uuid.NewString(), OrganizationID: suite.orgID, Status: tt.from}

			suite.allow(domain.CapTaxesFile)
			suite.mockRepo.On("FindFilingByID", suite.ctx, suite.orgID, filing.FilingID).Return(filing, nil).Once()

			_, err := suite.service.TransitionFiling(suite.ctx, suite.orgID, filing.FilingID,
				dto.TransitionFilingRequest{Status: tt.to}, suite.userID)

			suite.ErrorIs(err, apperrors.ErrState)
			suite.ErrorContains(err, string(tt.from))
			suite.ErrorContains(err, string(tt.to))
			suite.Equal(tt.from, filing.Status)
			suite.mockRepo.AssertNotCalled(suite.T(), "UpdateFilingStatus", mock.Anything, mock.Anything)
			suite.assertAll()
		})
	}
}

func (suite *FilingServiceTestSuite) TestDeleteFiling() {
	tests := []struct {
		status  domain.FilingStatus
		allowed bool
	}{
		{domain.FilingDraft, true},
		{domain.FilingCalculated, true},
		{domain.FilingFiled, false},
		{domain.FilingAccepted, false},
		{domain.FilingRejected, false},
	}
	for _, tt := range tests {
		suite.Run(string(tt.status), func() {
			suite.SetupTest()
			filing := &domain.TaxFiling{FilingID: uuid.NewString(), OrganizationID: suite.orgID, FormType: domain.FormF07, Status: tt.status}

			suite.allow(domain.CapTaxesFile)
			suite.mockRepo.On("FindFilingByID", suite.ctx, suite.orgID, filing.FilingID).Return(filing, nil).Once()
			if tt.allowed {
				suite.mockRepo.On("DeleteFiling", suite.ctx, suite.orgID, filing.FilingID).Return(nil).Once()
				suite.expectAudit(domain.AuditDelete)
			}

			err := suite.service.DeleteFiling(suite.ctx, suite.orgID, filing.FilingID, suite.userID)

			if tt.allowed {
				suite.NoError(err)
			} else {
				suite.ErrorIs(err, apperrors.ErrState)
			}
			suite.assertAll()
		})
	}
}

func (suite *FilingServiceTestSuite) TestListFilings_ReadOnlyCapability() {
	suite.mockAuth.On("Authorize", suite.ctx, suite.userID, suite.orgID, domain.CapTaxesView).Return(nil).Once()
	suite.mockRepo.On("ListFilings", suite.ctx, suite.orgID, 2024, (*domain.FormType)(nil)).Return(nil, nil).Once()

	filings, err := suite.service.ListFilings(suite.ctx, suite.orgID, 2024, nil, suite.userID)

	suite.Require().NoError(err)
	suite.NotNil(filings)
	suite.Empty(filings)
	suite.assertAll()
}

func TestFilingService(t *testing.T) {
	suite.Run(t, new(FilingServiceTestSuite))
}

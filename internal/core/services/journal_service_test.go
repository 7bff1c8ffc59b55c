package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/core/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo *MockJournalRepository
	mockAccountRepo *MockAccountRepository
	mockAuth        *MockAuthorizer
	mockAudit       *MockAuditRecorder
	mockCache       *MockLedgerCache
	service         portssvc.JournalSvcFacade

	ctx       context.Context
	orgID     string
	userID    string
	cashID    string
	revenueID string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockAuth = new(MockAuthorizer)
	suite.mockAudit = new(MockAuditRecorder)
	suite.mockCache = new(MockLedgerCache)
	suite.service = services.NewJournalService(
		suite.mockJournalRepo,
		suite.mockAccountRepo,
		services.WithJournalAuthorizer(suite.mockAuth),
		services.WithJournalAudit(suite.mockAudit),
		services.WithJournalLedgerCache(suite.mockCache),
	)
	suite.ctx = context.Background()
	suite.orgID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.cashID = uuid.NewString()
	suite.revenueID = uuid.NewString()
}

func (suite *JournalServiceTestSuite) allow(capability domain.Capability) {
	suite.mockAuth.On("Authorize", suite.ctx, suite.userID, suite.orgID, capability).Return(nil).Once()
}

func (suite *JournalServiceTestSuite) expectAccounts() {
	accounts := map[string]domain.Account{
		suite.cashID:    {AccountID: suite.cashID, OrganizationID: suite.orgID, Code: "1101", AccountType: domain.Asset, IsActive: true},
		suite.revenueID: {AccountID: suite.revenueID, OrganizationID: suite.orgID, Code: "4101", AccountType: domain.Revenue, IsActive: true},
	}
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, suite.orgID, []string{suite.cashID, suite.revenueID}).
		Return(accounts, nil).Once()
}

func (suite *JournalServiceTestSuite) expectMutationSideEffects(action string) {
	suite.mockCache.On("Invalidate", suite.ctx, suite.orgID).Return().Once()
	suite.mockAudit.On("Record", suite.ctx, mock.MatchedBy(func(r domain.AuditRecord) bool {
		return r.Action == action && r.EntityType == "journal_entry" && r.Actor == suite.userID
	})).Return().Once()
}

func (suite *JournalServiceTestSuite) assertAll() {
	suite.mockJournalRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockAuth.AssertExpectations(suite.T())
	suite.mockAudit.AssertExpectations(suite.T())
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) saleRequest(debit, credit string) dto.CreateJournalEntryRequest {
	return dto.CreateJournalEntryRequest{
		EntryDate:   time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC),
		Description: "Cash sale",
		Lines: []dto.JournalLineRequest{
			{AccountID: suite.cashID, Debit: decimal.RequireFromString(debit), Credit: decimal.Zero},
			{AccountID: suite.revenueID, Debit: decimal.Zero, Credit: decimal.RequireFromString(credit)},
		},
	}
}

func (suite *JournalServiceTestSuite) storedEntry(posted bool) *domain.JournalEntry {
	entryID := uuid.NewString()
	return &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.orgID,
		EntryDate:      time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description:    "Cash sale",
		IsPosted:       posted,
		Lines: []domain.JournalEntryLine{
			{LineID: uuid.NewString(), EntryID: entryID, LineNo: 1, AccountID: suite.cashID, Debit: decimal.NewFromInt(500), Credit: decimal.Zero},
			{LineID: uuid.NewString(), EntryID: entryID, LineNo: 2, AccountID: suite.revenueID, Debit: decimal.Zero, Credit: decimal.NewFromInt(500)},
		},
	}
}

// Scenario C: a balanced entry is accepted.
func (suite *JournalServiceTestSuite) TestCreateEntry_Balanced() {
	req := suite.saleRequest("500.00", "500.00")

	suite.allow(domain.CapLedgerCreate)
	suite.expectAccounts()
	suite.mockJournalRepo.On("InsertEntry", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return !e.IsPosted && e.OrganizationID == suite.orgID &&
			e.EntryDate.Equal(time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))
	})).Return(nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", suite.ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(lines []domain.JournalEntryLine) bool {
		return len(lines) == 2 && lines[0].LineNo == 1 && lines[1].LineNo == 2 && lines[0].LineID != ""
	})).Return(nil).Once()
	suite.expectMutationSideEffects(domain.AuditCreate)

	entry, err := suite.service.CreateEntry(suite.ctx, suite.orgID, req, suite.userID)

	suite.Require().NoError(err)
	suite.False(entry.IsPosted)
	suite.Len(entry.Lines, 2)
	for _, l := range entry.Lines {
		suite.Equal(entry.EntryID, l.EntryID)
	}
	suite.assertAll()
}

// Scenario C: the same entry with a 499.99 credit is rejected.
func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	req := suite.saleRequest("500.00", "499.99")

	suite.allow(domain.CapLedgerCreate)

	entry, err := suite.service.CreateEntry(suite.ctx, suite.orgID, req, suite.userID)

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SubCentAmountsRejected() {
	tests := []struct {
		name          string
		debit, credit string
	}{
		{"rounds to zero", "0.004", "0.004"},
		{"three decimals", "10.005", "10.005"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.SetupTest()
			suite.allow(domain.CapLedgerCreate)

			entry, err := suite.service.CreateEntry(suite.ctx, suite.orgID, suite.saleRequest(tt.debit, tt.credit), suite.userID)

			suite.Nil(entry)
			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.Contains(err.Error(), "more than two decimals")
			suite.mockJournalRepo.AssertNotCalled(suite.T(), "InsertEntry", mock.Anything, mock.Anything)
			suite.assertAll()
		})
	}
}

func (suite *JournalServiceTestSuite) TestCreateEntry_InactiveAccount() {
	req := suite.saleRequest("500.00", "500.00")

	suite.allow(domain.CapLedgerCreate)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, suite.orgID, []string{suite.cashID, suite.revenueID}).
		Return(map[string]domain.Account{
			suite.cashID:    {AccountID: suite.cashID, Code: "1101", IsActive: true},
			suite.revenueID: {AccountID: suite.revenueID, Code: "4101", IsActive: false},
		}, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.orgID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestCreateEntry_UnknownAccount() {
	req := suite.saleRequest("500.00", "500.00")

	suite.allow(domain.CapLedgerCreate)
	suite.mockAccountRepo.On("FindAccountsByIDs", suite.ctx, suite.orgID, []string{suite.cashID, suite.revenueID}).
		Return(map[string]domain.Account{
			suite.cashID: {AccountID: suite.cashID, Code: "1101", IsActive: true},
		}, nil).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.orgID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestCreateEntry_LineFailureRemovesHeader() {
	req := suite.saleRequest("500.00", "500.00")
	var insertedID string

	suite.allow(domain.CapLedgerCreate)
	suite.expectAccounts()
	suite.mockJournalRepo.On("InsertEntry", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).
		Run(func(args mock.Arguments) { insertedID = args.Get(1).(domain.JournalEntry).EntryID }).
		Return(nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", suite.ctx, mock.AnythingOfType("string"), mock.Anything).
		Return(apperrors.NewAppError(500, "failed to insert journal lines", assert.AnError)).Once()
	suite.mockJournalRepo.On("DeleteEntry", suite.ctx, suite.orgID, mock.AnythingOfType("string")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(suite.ctx, suite.orgID, req, suite.userID)

	suite.Nil(entry)
	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.mockJournalRepo.AssertCalled(suite.T(), "DeleteEntry", suite.ctx, suite.orgID, insertedID)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "Invalidate", mock.Anything, mock.Anything)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestCreateEntry_ForbiddenFirst() {
	req := suite.saleRequest("500.00", "499.99")

	suite.mockAuth.On("Authorize", suite.ctx, suite.userID, suite.orgID, domain.CapLedgerCreate).
		Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateEntry(suite.ctx, suite.orgID, req, suite.userID)

	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.NotErrorIs(err, apperrors.ErrValidation)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedIsRefused() {
	stored := suite.storedEntry(true)

	suite.allow(domain.CapLedgerEdit)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()

	_, err := suite.service.UpdateEntry(suite.ctx, suite.orgID, stored.EntryID,
		dto.UpdateJournalEntryRequest(suite.saleRequest("10", "10")), suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntryHeader", mock.Anything, mock.Anything)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_LineFailureRestoresHeader() {
	stored := suite.storedEntry(false)
	previous := *stored
	req := suite.saleRequest("750.00", "750.00")
	req.Description = "Corrected sale"

	suite.allow(domain.CapLedgerEdit)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()
	suite.expectAccounts()
	suite.mockJournalRepo.On("UpdateEntryHeader", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Description == "Corrected sale"
	})).Return(nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", suite.ctx, stored.EntryID, mock.Anything).
		Return(apperrors.NewAppError(500, "failed to replace journal lines", assert.AnError)).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", suite.ctx, mock.MatchedBy(func(e domain.JournalEntry) bool {
		return e.Description == previous.Description && e.EntryID == previous.EntryID
	})).Return(nil).Once()

	_, err := suite.service.UpdateEntry(suite.ctx, suite.orgID, stored.EntryID, dto.UpdateJournalEntryRequest(req), suite.userID)

	suite.ErrorIs(err, apperrors.ErrPersistence)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestUpdateEntry_Success() {
	stored := suite.storedEntry(false)
	req := suite.saleRequest("750.00", "750.00")

	suite.allow(domain.CapLedgerEdit)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()
	suite.expectAccounts()
	suite.mockJournalRepo.On("UpdateEntryHeader", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", suite.ctx, stored.EntryID, mock.Anything).Return(nil).Once()
	suite.expectMutationSideEffects(domain.AuditUpdate)

	updated, err := suite.service.UpdateEntry(suite.ctx, suite.orgID, stored.EntryID, dto.UpdateJournalEntryRequest(req), suite.userID)

	suite.Require().NoError(err)
	debit, credit := domain.EntryTotals(updated.Lines)
	suite.True(debit.Equal(decimal.NewFromInt(750)))
	suite.True(credit.Equal(decimal.NewFromInt(750)))
	suite.assertAll()
}

// Scenario D: deleting a posted entry is refused and nothing is removed.
func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedIsRefused() {
	stored := suite.storedEntry(true)

	suite.allow(domain.CapLedgerDelete)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()

	err := suite.service.DeleteEntry(suite.ctx, suite.orgID, stored.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.True(stored.IsPosted)
	suite.Len(stored.Lines, 2)
	suite.assertAll()
}

// The entry is posted between the read and the delete; the store refuses it.
func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedConcurrentlyIsRefused() {
	stored := suite.storedEntry(false)

	suite.allow(domain.CapLedgerDelete)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", suite.ctx, suite.orgID, stored.EntryID).
		Return(apperrors.NewStateError("journal entry", "POSTED", "delete")).Once()

	err := suite.service.DeleteEntry(suite.ctx, suite.orgID, stored.EntryID, suite.userID)

	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockAudit.AssertNotCalled(suite.T(), "Record", mock.Anything, mock.Anything)
	suite.mockCache.AssertNotCalled(suite.T(), "Invalidate", mock.Anything, mock.Anything)
	suite.assertAll()
}

// The entry is posted between the header update and the line replacement.
func (suite *JournalServiceTestSuite) TestUpdateEntry_PostedConcurrentlyIsRefused() {
	stored := suite.storedEntry(false)
	req := suite.saleRequest("750.00", "750.00")
	posted := apperrors.NewStateError("journal entry", "POSTED", "edit")

	suite.allow(domain.CapLedgerEdit)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()
	suite.expectAccounts()
	suite.mockJournalRepo.On("UpdateEntryHeader", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()
	suite.mockJournalRepo.On("ReplaceLines", suite.ctx, stored.EntryID, mock.Anything).Return(posted).Once()
	suite.mockJournalRepo.On("UpdateEntryHeader", suite.ctx, mock.AnythingOfType("domain.JournalEntry")).Return(posted).Once()

	updated, err := suite.service.UpdateEntry(suite.ctx, suite.orgID, stored.EntryID, dto.UpdateJournalEntryRequest(req), suite.userID)

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrState)
	suite.mockCache.AssertNotCalled(suite.T(), "Invalidate", mock.Anything, mock.Anything)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_Unposted() {
	stored := suite.storedEntry(false)

	suite.allow(domain.CapLedgerDelete)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", suite.ctx, suite.orgID, stored.EntryID).Return(nil).Once()
	suite.expectMutationSideEffects(domain.AuditDelete)

	err := suite.service.DeleteEntry(suite.ctx, suite.orgID, stored.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestSetPosted_PostAndUnpost() {
	stored := suite.storedEntry(false)

	suite.allow(domain.CapLedgerPost)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(stored, nil).Once()
	suite.mockJournalRepo.On("SetPosted", suite.ctx, suite.orgID, stored.EntryID, true, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.expectMutationSideEffects(domain.AuditPost)

	posted, err := suite.service.SetPosted(suite.ctx, suite.orgID, stored.EntryID, true, suite.userID)
	suite.Require().NoError(err)
	suite.True(posted.IsPosted)

	suite.allow(domain.CapLedgerPost)
	suite.mockJournalRepo.On("FindEntryByID", suite.ctx, suite.orgID, stored.EntryID).Return(posted, nil).Once()
	suite.mockJournalRepo.On("SetPosted", suite.ctx, suite.orgID, stored.EntryID, false, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.expectMutationSideEffects(domain.AuditUnpost)

	unposted, err := suite.service.SetPosted(suite.ctx, suite.orgID, stored.EntryID, false, suite.userID)
	suite.Require().NoError(err)
	suite.False(unposted.IsPosted)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestListEntries_PassesToken() {
	token := "abc"
	entries := []domain.JournalEntry{*suite.storedEntry(false)}

	suite.allow(domain.CapLedgerView)
	suite.mockJournalRepo.On("ListEntries", suite.ctx, suite.orgID, 10, &token).Return(entries, "next", nil).Once()

	resp, err := suite.service.ListEntries(suite.ctx, suite.orgID, suite.userID, dto.ListJournalEntriesParams{Limit: 10, NextToken: token})

	suite.Require().NoError(err)
	suite.Len(resp.Entries, 1)
	suite.Require().NotNil(resp.NextToken)
	suite.Equal("next", *resp.NextToken)
	suite.assertAll()
}

func (suite *JournalServiceTestSuite) TestListEntries_DefaultLimit() {
	suite.allow(domain.CapLedgerView)
	suite.mockJournalRepo.On("ListEntries", suite.ctx, suite.orgID, 20, (*string)(nil)).Return([]domain.JournalEntry{}, nil, nil).Once()

	resp, err := suite.service.ListEntries(suite.ctx, suite.orgID, suite.userID, dto.ListJournalEntriesParams{})

	suite.Require().NoError(err)
	suite.Empty(resp.Entries)
	suite.Nil(resp.NextToken)
	suite.assertAll()
}

func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}

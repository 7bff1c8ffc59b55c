package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/stretchr/testify/mock"
)

// --- Mock Authorizer ---
type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.Authorizer = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) Authorize(ctx context.Context, userID, orgID string, capability domain.Capability) error {
	args := m.Called(ctx, userID, orgID, capability)
	return args.Error(0)
}

// --- Mock AuditRecorder ---
type MockAuditRecorder struct {
	mock.Mock
}

var _ portssvc.AuditRecorder = (*MockAuditRecorder)(nil)

func (m *MockAuditRecorder) Record(ctx context.Context, record domain.AuditRecord) {
	m.Called(ctx, record)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) IsAccountReferenced(ctx context.Context, orgID, accountID string) (bool, error) {
	args := m.Called(ctx, orgID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, orgID, accountID, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) DeleteAccount(ctx context.Context, orgID, accountID string) error {
	args := m.Called(ctx, orgID, accountID)
	return args.Error(0)
}

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, orgID, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, orgID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, orgID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	args := m.Called(ctx, entryID, lines)
	return args.Error(0)
}

func (m *MockJournalRepository) SetPosted(ctx context.Context, orgID, entryID string, posted bool, userID string, now time.Time) error {
	args := m.Called(ctx, orgID, entryID, posted, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, orgID, entryID string) error {
	args := m.Called(ctx, orgID, entryID)
	return args.Error(0)
}

// --- Mock LedgerReader ---
type MockLedgerReader struct {
	mock.Mock
}

var _ portsrepo.LedgerReader = (*MockLedgerReader)(nil)

func (m *MockLedgerReader) ListLedgerEntries(ctx context.Context, orgID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

// --- Mock LedgerCache ---
type MockLedgerCache struct {
	mock.Mock
}

var _ portsrepo.LedgerCache = (*MockLedgerCache)(nil)

func (m *MockLedgerCache) Get(ctx context.Context, orgID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, string, bool) {
	args := m.Called(ctx, orgID, filter)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Bool(2)
	}
	return args.Get(0).([]domain.LedgerEntry), args.String(1), args.Bool(2)
}

func (m *MockLedgerCache) Set(ctx context.Context, slot string, entries []domain.LedgerEntry) {
	m.Called(ctx, slot, entries)
}

func (m *MockLedgerCache) Invalidate(ctx context.Context, orgID string) {
	m.Called(ctx, orgID)
}

// --- Mock FilingRepository ---
type MockFilingRepository struct {
	mock.Mock
}

var _ portsrepo.FilingRepositoryFacade = (*MockFilingRepository)(nil)

func (m *MockFilingRepository) FindFilingByID(ctx context.Context, orgID, filingID string) (*domain.TaxFiling, error) {
	args := m.Called(ctx, orgID, filingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxFiling), args.Error(1)
}

func (m *MockFilingRepository) FindFilingByPeriod(ctx context.Context, orgID string, period domain.FilingPeriod) (*domain.TaxFiling, error) {
	args := m.Called(ctx, orgID, period)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TaxFiling), args.Error(1)
}

func (m *MockFilingRepository) ListFilings(ctx context.Context, orgID string, year int, formType *domain.FormType) ([]domain.TaxFiling, error) {
	args := m.Called(ctx, orgID, year, formType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TaxFiling), args.Error(1)
}

func (m *MockFilingRepository) InsertFiling(ctx context.Context, filing domain.TaxFiling) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

// UpsertFiling runs the guard against the configured existing row, if any, the way the
// store does inside its transaction.
func (m *MockFilingRepository) UpsertFiling(ctx context.Context, filing domain.TaxFiling, guard portsrepo.FilingGuard) (*domain.TaxFiling, error) {
	args := m.Called(ctx, filing, guard)
	if existing, ok := args.Get(0).(*domain.TaxFiling); ok && existing != nil {
		if err := guard(existing); err != nil {
			return nil, err
		}
		stored := *existing
		stored.FilingFigures = filing.FilingFigures
		stored.Status = filing.Status
		stored.LastUpdatedAt = filing.LastUpdatedAt
		stored.LastUpdatedBy = filing.LastUpdatedBy
		return &stored, args.Error(1)
	}
	if err := args.Error(1); err != nil {
		return nil, err
	}
	return &filing, nil
}

func (m *MockFilingRepository) UpdateFilingStatus(ctx context.Context, filing domain.TaxFiling) error {
	args := m.Called(ctx, filing)
	return args.Error(0)
}

func (m *MockFilingRepository) DeleteFiling(ctx context.Context, orgID, filingID string) error {
	args := m.Called(ctx, orgID, filingID)
	return args.Error(0)
}

// --- Mock upstream readers ---
type MockSalesReader struct {
	mock.Mock
}

func (m *MockSalesReader) ListForPeriod(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.SalesDocument, error) {
	args := m.Called(ctx, orgID, from, to, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SalesDocument), args.Error(1)
}

type MockExpenseReader struct {
	mock.Mock
}

func (m *MockExpenseReader) ListForPeriod(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.ExpenseRecord, error) {
	args := m.Called(ctx, orgID, from, to, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExpenseRecord), args.Error(1)
}

type MockPayrollReader struct {
	mock.Mock
}

func (m *MockPayrollReader) ListRunsOverlapping(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.PayrollRun, error) {
	args := m.Called(ctx, orgID, from, to, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PayrollRun), args.Error(1)
}

// --- Mock MembershipReader / AuditRepository ---
type MockMembershipReader struct {
	mock.Mock
}

func (m *MockMembershipReader) FindMemberRole(ctx context.Context, orgID, userID string) (domain.MemberRole, error) {
	args := m.Called(ctx, orgID, userID)
	return args.Get(0).(domain.MemberRole), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) SaveAuditRecord(ctx context.Context, record domain.AuditRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

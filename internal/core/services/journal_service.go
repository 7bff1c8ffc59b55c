package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
)

const (
	entityJournalEntry = "journal_entry"
	defaultPageSize    = 20
)

// journalService enforces double-entry invariants over journal entries.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
	accountRepo portsrepo.AccountReader
	ledgerCache portsrepo.LedgerCache
}

// JournalServiceOption is a functional option for configuring the journal service
type JournalServiceOption func(*journalService)

// WithJournalAuthorizer sets the capability checker
func WithJournalAuthorizer(authorizer portssvc.Authorizer) JournalServiceOption {
	return func(s *journalService) {
		s.Authorizer = authorizer
	}
}

// WithJournalAudit sets the audit recorder
func WithJournalAudit(recorder portssvc.AuditRecorder) JournalServiceOption {
	return func(s *journalService) {
		s.Audit = recorder
	}
}

// WithJournalLedgerCache sets the ledger cache invalidated after every mutation
func WithJournalLedgerCache(cache portsrepo.LedgerCache) JournalServiceOption {
	return func(s *journalService) {
		s.ledgerCache = cache
	}
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountRepo portsrepo.AccountReader, options ...JournalServiceOption) portssvc.JournalSvcFacade {
	svc := &journalService{journalRepo: journalRepo, accountRepo: accountRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// entryDay truncates a timestamp to its calendar day in UTC.
func entryDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// buildLines validates the request header and lines and assigns line IDs.
func (s *journalService) buildLines(ctx context.Context, orgID, entryID string, req dto.CreateJournalEntryRequest) ([]domain.JournalEntryLine, error) {
	if req.EntryDate.IsZero() {
		return nil, fmt.Errorf("%w: entry date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(req.Description) == "" {
		return nil, fmt.Errorf("%w: entry description is required", apperrors.ErrValidation)
	}

	lines := dto.ToDomainLines(req.Lines)
	if err := domain.ValidateLines(lines); err != nil {
		return nil, err
	}
	if err := s.validateAccounts(ctx, orgID, lines); err != nil {
		return nil, err
	}

	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].EntryID = entryID
	}
	return lines, nil
}

// validateAccounts requires every line's account to exist in the organization and be active.
func (s *journalService) validateAccounts(ctx context.Context, orgID string, lines []domain.JournalEntryLine) error {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.AccountID]; ok {
			continue
		}
		seen[l.AccountID] = struct{}{}
		ids = append(ids, l.AccountID)
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, orgID, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to load accounts for journal lines", slog.String("org_id", orgID))
		return err
	}
	for _, id := range ids {
		account, ok := accounts[id]
		if !ok {
			return fmt.Errorf("%w: account %s not found in organization", apperrors.ErrValidation, id)
		}
		if !account.IsActive {
			return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, account.Code)
		}
	}
	return nil
}

func (s *journalService) invalidateLedger(ctx context.Context, orgID string) {
	if s.ledgerCache != nil {
		s.ledgerCache.Invalidate(ctx, orgID)
	}
}

func entryAuditContext(entry *domain.JournalEntry) map[string]any {
	debit, credit := domain.EntryTotals(entry.Lines)
	return map[string]any{
		"entryDate":   entry.EntryDate.Format("2006-01-02"),
		"lines":       len(entry.Lines),
		"totalDebit":  debit.StringFixed(2),
		"totalCredit": credit.StringFixed(2),
	}
}

// GetEntry retrieves an entry with its lines.
func (s *journalService) GetEntry(ctx context.Context, orgID, entryID, userID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal entry", slog.String("entry_id", entryID))
		}
		return nil, err
	}
	return entry, nil
}

// ListEntries retrieves a page of entry headers, newest first.
func (s *journalService) ListEntries(ctx context.Context, orgID, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerView); err != nil {
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	var token *string
	if params.NextToken != "" {
		token = &params.NextToken
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, orgID, limit, token)
	if err != nil {
		if !errors.Is(err, apperrors.ErrValidation) {
			s.LogError(ctx, err, "Failed to list journal entries", slog.String("org_id", orgID))
		}
		return nil, err
	}

	s.LogDebug(ctx, "Journal entries listed successfully", slog.Int("count", len(entries)))
	return &dto.ListJournalEntriesResponse{
		Entries:   dto.ToJournalEntryResponses(entries),
		NextToken: nextToken,
	}, nil
}

// CreateEntry validates and persists an unposted entry. The header is written first;
// if the lines fail to persist, the header is deleted again.
func (s *journalService) CreateEntry(ctx context.Context, orgID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerCreate); err != nil {
		return nil, err
	}

	entryID := uuid.NewString()
	lines, err := s.buildLines(ctx, orgID, entryID, req)
	if err != nil {
		return nil, err
	}

	entry := domain.JournalEntry{
		EntryID:         entryID,
		OrganizationID:  orgID,
		EntryDate:       entryDay(req.EntryDate),
		Description:     strings.TrimSpace(req.Description),
		ReferenceNumber: req.ReferenceNumber,
		IsPosted:        false,
		AuditFields:     domain.NewAuditFields(userID, s.Now()),
	}

	if err := s.journalRepo.InsertEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to insert journal entry header", slog.String("entry_id", entryID))
		return nil, err
	}

	if err := s.journalRepo.ReplaceLines(ctx, entryID, lines); err != nil {
		s.LogError(ctx, err, "Failed to insert journal lines, removing header", slog.String("entry_id", entryID))
		if delErr := s.journalRepo.DeleteEntry(ctx, orgID, entryID); delErr != nil {
			s.LogError(ctx, delErr, "Failed to remove orphaned journal entry header", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	entry.Lines = lines
	s.invalidateLedger(ctx, orgID)
	s.RecordAudit(ctx, orgID, userID, domain.AuditCreate, entityJournalEntry, entryID,
		fmt.Sprintf("created journal entry %s", entry.Description), entryAuditContext(&entry))
	s.LogInfo(ctx, "Journal entry created successfully",
		slog.String("entry_id", entryID),
		slog.Int("lines", len(lines)))
	return &entry, nil
}

// UpdateEntry replaces the header and lines of an unposted entry. If the lines fail to
// persist, the previous header is written back.
func (s *journalService) UpdateEntry(ctx context.Context, orgID, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerEdit); err != nil {
		return nil, err
	}

	existing, err := s.journalRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}
	if err := existing.CanModify("update"); err != nil {
		return nil, err
	}

	lines, err := s.buildLines(ctx, orgID, entryID, dto.CreateJournalEntryRequest(req))
	if err != nil {
		return nil, err
	}

	updated := *existing
	updated.EntryDate = entryDay(req.EntryDate)
	updated.Description = strings.TrimSpace(req.Description)
	updated.ReferenceNumber = req.ReferenceNumber
	updated.Touch(userID, s.Now())

	if err := s.journalRepo.UpdateEntryHeader(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update journal entry header", slog.String("entry_id", entryID))
		return nil, err
	}

	if err := s.journalRepo.ReplaceLines(ctx, entryID, lines); err != nil {
		s.LogError(ctx, err, "Failed to replace journal lines, restoring header", slog.String("entry_id", entryID))
		if restoreErr := s.journalRepo.UpdateEntryHeader(ctx, *existing); restoreErr != nil {
			s.LogError(ctx, restoreErr, "Failed to restore journal entry header", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	updated.Lines = lines
	s.invalidateLedger(ctx, orgID)
	s.RecordAudit(ctx, orgID, userID, domain.AuditUpdate, entityJournalEntry, entryID,
		fmt.Sprintf("updated journal entry %s", updated.Description), entryAuditContext(&updated))
	s.LogInfo(ctx, "Journal entry updated successfully", slog.String("entry_id", entryID))
	return &updated, nil
}

// SetPosted posts or unposts an entry.
func (s *journalService) SetPosted(ctx context.Context, orgID, entryID string, posted bool, userID string) (*domain.JournalEntry, error) {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerPost); err != nil {
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.journalRepo.SetPosted(ctx, orgID, entryID, posted, userID, now); err != nil {
		s.LogError(ctx, err, "Failed to change journal entry posted flag",
			slog.String("entry_id", entryID),
			slog.Bool("posted", posted))
		return nil, err
	}
	entry.IsPosted = posted
	entry.Touch(userID, now)

	action := domain.AuditPost
	if !posted {
		action = domain.AuditUnpost
	}
	s.invalidateLedger(ctx, orgID)
	s.RecordAudit(ctx, orgID, userID, action, entityJournalEntry, entryID,
		fmt.Sprintf("%s journal entry %s", strings.ToLower(action), entry.Description), entryAuditContext(entry))
	s.LogInfo(ctx, "Journal entry posted flag changed",
		slog.String("entry_id", entryID),
		slog.Bool("posted", posted))
	return entry, nil
}

// DeleteEntry removes an unposted entry and its lines.
func (s *journalService) DeleteEntry(ctx context.Context, orgID, entryID, userID string) error {
	if err := s.Authorize(ctx, userID, orgID, domain.CapLedgerDelete); err != nil {
		return err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, orgID, entryID)
	if err != nil {
		return err
	}
	if err := entry.CanModify("delete"); err != nil {
		return err
	}

	if err := s.journalRepo.DeleteEntry(ctx, orgID, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal entry", slog.String("entry_id", entryID))
		return err
	}

	s.invalidateLedger(ctx, orgID)
	s.RecordAudit(ctx, orgID, userID, domain.AuditDelete, entityJournalEntry, entryID,
		fmt.Sprintf("deleted journal entry %s", entry.Description), entryAuditContext(entry))
	s.LogInfo(ctx, "Journal entry deleted successfully", slog.String("entry_id", entryID))
	return nil
}

package pgsql

import (
	"context"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_tax_app/internal/models"
	"github.com/SscSPs/ledger_tax_app/internal/utils/mapping"
	"github.com/SscSPs/ledger_tax_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxJournalRepository stores journal entry headers and lines.
type PgxJournalRepository struct {
	BaseRepository
}

func newPgxJournalRepository(pool *pgxpool.Pool) *PgxJournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

// lockUnpostedEntrySQL locks the header row so a concurrent SetPosted waits for the writer.
const lockUnpostedEntrySQL = `SELECT is_posted FROM journal_entries WHERE entry_id = $1 FOR UPDATE;`

// rowQuerier is satisfied by pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// lockUnpostedEntry locks an entry header inside tx and refuses posted entries.
func lockUnpostedEntry(ctx context.Context, tx rowQuerier, entryID, action string) error {
	var posted bool
	if err := tx.QueryRow(ctx, lockUnpostedEntrySQL, entryID).Scan(&posted); err != nil {
		return wrapReadError(err, "journal entry "+entryID)
	}
	if posted {
		return apperrors.NewStateError("journal entry", "POSTED", action)
	}
	return nil
}

const entryColumns = `entry_id, organization_id, entry_seq, entry_date, description, reference_number, is_posted,
	created_at, created_by, last_updated_at, last_updated_by`

func scanEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.EntrySeq,
		&m.EntryDate,
		&m.Description,
		&m.ReferenceNumber,
		&m.IsPosted,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// InsertEntry persists a new entry header. entry_seq is assigned by the database.
func (r *PgxJournalRepository) InsertEntry(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	query := `
		INSERT INTO journal_entries (
			entry_id, organization_id, entry_date, description, reference_number, is_posted,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.EntryID,
		m.OrganizationID,
		m.EntryDate,
		m.Description,
		m.ReferenceNumber,
		m.IsPosted,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return wrapWriteError(err, "journal entry "+m.EntryID)
	}
	return nil
}

// UpdateEntryHeader overwrites the header fields of an unposted entry.
// A posted entry yields a StateError.
func (r *PgxJournalRepository) UpdateEntryHeader(ctx context.Context, entry domain.JournalEntry) error {
	m := mapping.ToModelJournalEntry(entry)
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := lockUnpostedEntry(ctx, tx, m.EntryID, "edit"); err != nil {
		return err
	}

	query := `
		UPDATE journal_entries
		SET entry_date = $1, description = $2, reference_number = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $6 AND entry_id = $7 AND is_posted = FALSE;
	`
	tag, err := tx.Exec(ctx, query, m.EntryDate, m.Description, m.ReferenceNumber, m.LastUpdatedAt, m.LastUpdatedBy, m.OrganizationID, m.EntryID)
	if err != nil {
		return wrapWriteError(err, "journal entry "+m.EntryID)
	}
	if err := requireAffected(tag, "journal entry "+m.EntryID); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// ReplaceLines deletes the entry's lines and inserts the given ones in one transaction.
// The header is locked first; a posted entry yields a StateError.
func (r *PgxJournalRepository) ReplaceLines(ctx context.Context, entryID string, lines []domain.JournalEntryLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op once committed

	if err := lockUnpostedEntry(ctx, tx, entryID, "edit"); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to clear lines of journal entry "+entryID, err)
	}

	batch := &pgx.Batch{}
	lineQuery := `
		INSERT INTO journal_entry_lines (line_id, entry_id, line_no, account_id, debit, credit, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	for _, line := range lines {
		m := mapping.ToModelJournalEntryLine(line)
		batch.Queue(lineQuery, m.LineID, entryID, m.LineNo, m.AccountID, m.Debit, m.Credit, m.Description)
	}

	// Close reports the first failing command of the batch
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return wrapWriteError(err, "lines of journal entry "+entryID)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header with its lines ordered by line number.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, orgID, entryID string) (*domain.JournalEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1 AND entry_id = $2;`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, orgID, entryID))
	if err != nil {
		return nil, wrapReadError(err, "journal entry "+entryID)
	}
	entry := mapping.ToDomainJournalEntry(m)

	rows, err := r.Pool.Query(ctx, `
		SELECT line_id, entry_id, line_no, account_id, debit, credit, description
		FROM journal_entry_lines
		WHERE entry_id = $1
		ORDER BY line_no ASC;
	`, entryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query lines of journal entry "+entryID, err)
	}
	defer rows.Close()

	entry.Lines = make([]domain.JournalEntryLine, 0)
	for rows.Next() {
		var l models.JournalEntryLine
		if err := rows.Scan(&l.LineID, &l.EntryID, &l.LineNo, &l.AccountID, &l.Debit, &l.Credit, &l.Description); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan line of journal entry "+entryID, err)
		}
		entry.Lines = append(entry.Lines, mapping.ToDomainJournalEntryLine(l))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating lines of journal entry "+entryID, err)
	}

	return &entry, nil
}

// ListEntries retrieves a page of entry headers ordered newest first.
// It returns the entries, a token for the next page (if any), and an error.
func (r *PgxJournalRepository) ListEntries(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	query := `SELECT ` + entryColumns + ` FROM journal_entries WHERE organization_id = $1`
	args := []interface{}{orgID}

	if nextToken != nil && *nextToken != "" {
		cursor, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", apperrors.ErrValidation)
		}
		// Tuple comparison keeps the ordering stable across pages
		query += ` AND (entry_date, created_at, entry_id) < ($2, $3, $4)`
		args = append(args, cursor.EntryDate, cursor.CreatedAt, cursor.EntryID)
	}
	query += ` ORDER BY entry_date DESC, created_at DESC, entry_id DESC LIMIT $` + strconv.Itoa(len(args)+1) + `;`
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query journal entries for organization "+orgID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanEntry(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan journal entry row", scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating journal entry rows", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(pagination.EntryCursor{EntryDate: last.EntryDate, CreatedAt: last.CreatedAt, EntryID: last.EntryID})
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	entries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		entries[i] = mapping.ToDomainJournalEntry(m)
	}
	return entries, nextTokenVal, nil
}

// SetPosted flips the posted flag.
func (r *PgxJournalRepository) SetPosted(ctx context.Context, orgID, entryID string, posted bool, userID string, now time.Time) error {
	query := `
		UPDATE journal_entries
		SET is_posted = $1, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $4 AND entry_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, posted, now, userID, orgID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set posted flag on journal entry "+entryID, err)
	}
	return requireAffected(tag, "journal entry "+entryID)
}

// DeleteEntry removes an unposted header and its lines in one transaction.
// A posted entry yields a StateError.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, orgID, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := lockUnpostedEntry(ctx, tx, entryID, "delete"); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return apperrors.NewAppError(500, "failed to delete lines of journal entry "+entryID, err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM journal_entries WHERE organization_id = $1 AND entry_id = $2 AND is_posted = FALSE;`, orgID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete journal entry "+entryID, err)
	}
	if err := requireAffected(tag, "journal entry "+entryID); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

package pgsql

import (
	"context"
	"strconv"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_tax_app/internal/models"
	"github.com/SscSPs/ledger_tax_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ledgerRepository projects journal lines into ledger rows.
type ledgerRepository struct {
	BaseRepository
}

func newLedgerRepository(db *pgxpool.Pool) *ledgerRepository {
	return &ledgerRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.LedgerReader = (*ledgerRepository)(nil)

// ListLedgerEntries joins lines with their entries and active accounts.
// Inactive or missing accounts yield NULL account columns.
func (r *ledgerRepository) ListLedgerEntries(ctx context.Context, orgID string, filter domain.LedgerFilter) ([]domain.LedgerEntry, error) {
	query := `
		SELECT
			e.entry_id,
			e.entry_date,
			e.description AS entry_description,
			e.reference_number,
			e.is_posted,
			l.line_id,
			l.line_no,
			l.description AS line_description,
			l.account_id,
			a.code AS account_code,
			a.name AS account_name,
			a.account_type,
			l.debit,
			l.credit
		FROM journal_entry_lines l
		JOIN journal_entries e ON e.entry_id = l.entry_id
		LEFT JOIN accounts a ON a.account_id = l.account_id AND a.organization_id = e.organization_id AND a.is_active
		WHERE e.organization_id = $1`
	args := []interface{}{orgID}

	if filter.AccountID != nil {
		args = append(args, *filter.AccountID)
		query += ` AND l.account_id = $` + strconv.Itoa(len(args))
	}
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		query += ` AND e.entry_date >= $` + strconv.Itoa(len(args))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		query += ` AND e.entry_date <= $` + strconv.Itoa(len(args))
	}
	if filter.PostedOnly {
		query += ` AND e.is_posted`
	}
	query += ` ORDER BY e.entry_date ASC, e.entry_seq ASC, l.line_no ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "error querying ledger for organization "+orgID, err)
	}
	defer rows.Close()

	result := make([]domain.LedgerEntry, 0)
	for rows.Next() {
		var m models.LedgerRow
		if err := rows.Scan(
			&m.EntryID,
			&m.EntryDate,
			&m.EntryDescription,
			&m.ReferenceNumber,
			&m.IsPosted,
			&m.LineID,
			&m.LineNo,
			&m.LineDescription,
			&m.AccountID,
			&m.AccountCode,
			&m.AccountName,
			&m.AccountType,
			&m.Debit,
			&m.Credit,
		); err != nil {
			return nil, apperrors.NewAppError(500, "error scanning ledger row", err)
		}
		result = append(result, mapping.ToDomainLedgerEntry(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating ledger rows", err)
	}
	return result, nil
}

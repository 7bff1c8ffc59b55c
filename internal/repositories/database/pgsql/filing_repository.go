package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_tax_app/internal/models"
	"github.com/SscSPs/ledger_tax_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxFilingRepository stores tax filings.
type PgxFilingRepository struct {
	BaseRepository
}

func newPgxFilingRepository(pool *pgxpool.Pool) *PgxFilingRepository {
	return &PgxFilingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.FilingRepositoryFacade = (*PgxFilingRepository)(nil)

const filingColumns = `filing_id, organization_id, form_type, period_year, period_month, status, filed_at, filing_reference,
	sales_taxed, sales_exempt, tax_collected, tax_withheld, purchases_taxed, purchases_exempt, tax_credit, tax_payable,
	gross_income, advance_tax, income_tax_withheld, total_payable,
	annual_income, deductible_cost, taxable_income, annual_tax, accumulated_advances, balance_due,
	created_at, created_by, last_updated_at, last_updated_by`

// figureAssignments are overwritten on recompute.
const figureAssignments = `
	sales_taxed = $1, sales_exempt = $2, tax_collected = $3, tax_withheld = $4,
	purchases_taxed = $5, purchases_exempt = $6, tax_credit = $7, tax_payable = $8,
	gross_income = $9, advance_tax = $10, income_tax_withheld = $11, total_payable = $12,
	annual_income = $13, deductible_cost = $14, taxable_income = $15, annual_tax = $16,
	accumulated_advances = $17, balance_due = $18`

func scanFiling(row pgx.Row) (models.TaxFiling, error) {
	var m models.TaxFiling
	err := row.Scan(
		&m.FilingID, &m.OrganizationID, &m.FormType, &m.PeriodYear, &m.PeriodMonth, &m.Status, &m.FiledAt, &m.FilingReference,
		&m.SalesTaxed, &m.SalesExempt, &m.TaxCollected, &m.TaxWithheld, &m.PurchasesTaxed, &m.PurchasesExempt, &m.TaxCredit, &m.TaxPayable,
		&m.GrossIncome, &m.AdvanceTax, &m.IncomeTaxWithheld, &m.TotalPayable,
		&m.AnnualIncome, &m.DeductibleCost, &m.TaxableIncome, &m.AnnualTax, &m.AccumulatedAdvances, &m.BalanceDue,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	return m, err
}

func figureArgs(m models.TaxFiling) []interface{} {
	return []interface{}{
		m.SalesTaxed, m.SalesExempt, m.TaxCollected, m.TaxWithheld,
		m.PurchasesTaxed, m.PurchasesExempt, m.TaxCredit, m.TaxPayable,
		m.GrossIncome, m.AdvanceTax, m.IncomeTaxWithheld, m.TotalPayable,
		m.AnnualIncome, m.DeductibleCost, m.TaxableIncome, m.AnnualTax,
		m.AccumulatedAdvances, m.BalanceDue,
	}
}

func findByPeriod(ctx context.Context, q dbtx, orgID string, period domain.FilingPeriod, forUpdate bool) (*domain.TaxFiling, error) {
	query := `
		SELECT ` + filingColumns + ` FROM tax_filings
		WHERE organization_id = $1 AND form_type = $2 AND period_year = $3
		  AND COALESCE(period_month, 0) = COALESCE($4::int, 0)`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	m, err := scanFiling(q.QueryRow(ctx, query, orgID, string(period.FormType), period.Year, period.Month))
	if err != nil {
		return nil, wrapReadError(err, "tax filing for period")
	}
	f := mapping.ToDomainTaxFiling(m)
	return &f, nil
}

// FindFilingByID retrieves a filing by ID.
func (r *PgxFilingRepository) FindFilingByID(ctx context.Context, orgID, filingID string) (*domain.TaxFiling, error) {
	query := `SELECT ` + filingColumns + ` FROM tax_filings WHERE organization_id = $1 AND filing_id = $2;`
	m, err := scanFiling(r.Pool.QueryRow(ctx, query, orgID, filingID))
	if err != nil {
		return nil, wrapReadError(err, "tax filing "+filingID)
	}
	f := mapping.ToDomainTaxFiling(m)
	return &f, nil
}

// FindFilingByPeriod retrieves the filing for a (form, year, month) key.
func (r *PgxFilingRepository) FindFilingByPeriod(ctx context.Context, orgID string, period domain.FilingPeriod) (*domain.TaxFiling, error) {
	return findByPeriod(ctx, r.Pool, orgID, period, false)
}

// ListFilings lists a year's filings, monthly forms first by month.
func (r *PgxFilingRepository) ListFilings(ctx context.Context, orgID string, year int, formType *domain.FormType) ([]domain.TaxFiling, error) {
	query := `SELECT ` + filingColumns + ` FROM tax_filings WHERE organization_id = $1 AND period_year = $2`
	args := []interface{}{orgID, year}
	if formType != nil {
		query += ` AND form_type = $3`
		args = append(args, string(*formType))
	}
	query += ` ORDER BY form_type ASC, COALESCE(period_month, 0) ASC;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list tax filings", err)
	}
	defer rows.Close()

	out := make([]domain.TaxFiling, 0)
	for rows.Next() {
		m, err := scanFiling(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax filing", err)
		}
		out = append(out, mapping.ToDomainTaxFiling(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax filings", err)
	}
	return out, nil
}

func insertFiling(ctx context.Context, db dbtx, m models.TaxFiling) error {
	query := `
		INSERT INTO tax_filings (` + filingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12, $13, $14, $15, $16,
			$17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26,
			$27, $28, $29, $30);
	`
	args := []interface{}{m.FilingID, m.OrganizationID, m.FormType, m.PeriodYear, m.PeriodMonth, m.Status, m.FiledAt, m.FilingReference}
	args = append(args, figureArgs(m)...)
	args = append(args, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy)

	if _, err := db.Exec(ctx, query, args...); err != nil {
		return wrapWriteError(err, "tax filing "+m.FormType)
	}
	return nil
}

// InsertFiling persists a new filing.
func (r *PgxFilingRepository) InsertFiling(ctx context.Context, filing domain.TaxFiling) error {
	return insertFiling(ctx, r.Pool, mapping.ToModelTaxFiling(filing))
}

// UpsertFiling locks the period's row, if any, and inserts or overwrites it in one transaction.
// An existing row keeps its ID and creation audit fields.
func (r *PgxFilingRepository) UpsertFiling(ctx context.Context, filing domain.TaxFiling, guard portsrepo.FilingGuard) (*domain.TaxFiling, error) {
	period := domain.FilingPeriod{FormType: filing.FormType, Year: filing.PeriodYear, Month: filing.PeriodMonth}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	existing, err := findByPeriod(ctx, tx, filing.OrganizationID, period, true)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if existing == nil {
		if err := insertFiling(ctx, tx, mapping.ToModelTaxFiling(filing)); err != nil {
			return nil, err
		}
		if err := r.Commit(ctx, tx); err != nil {
			return nil, err
		}
		return &filing, nil
	}

	if guard != nil {
		if err := guard(existing); err != nil {
			return nil, err
		}
	}

	stored := *existing
	stored.FilingFigures = filing.FilingFigures
	stored.Status = filing.Status
	stored.LastUpdatedAt = filing.LastUpdatedAt
	stored.LastUpdatedBy = filing.LastUpdatedBy

	m := mapping.ToModelTaxFiling(stored)
	query := `UPDATE tax_filings SET ` + figureAssignments + `,
		status = $19, last_updated_at = $20, last_updated_by = $21
		WHERE filing_id = $22;`
	args := append(figureArgs(m), m.Status, m.LastUpdatedAt, m.LastUpdatedBy, m.FilingID)
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return nil, wrapWriteError(err, "tax filing "+m.FilingID)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateFilingStatus persists a lifecycle change.
func (r *PgxFilingRepository) UpdateFilingStatus(ctx context.Context, filing domain.TaxFiling) error {
	query := `
		UPDATE tax_filings
		SET status = $1, filed_at = $2, filing_reference = $3, last_updated_at = $4, last_updated_by = $5
		WHERE organization_id = $6 AND filing_id = $7;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(filing.Status),
		filing.FiledAt,
		filing.FilingReference,
		filing.LastUpdatedAt,
		filing.LastUpdatedBy,
		filing.OrganizationID,
		filing.FilingID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update status of tax filing "+filing.FilingID, err)
	}
	return requireAffected(tag, "tax filing "+filing.FilingID)
}

// DeleteFiling removes a filing.
func (r *PgxFilingRepository) DeleteFiling(ctx context.Context, orgID, filingID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM tax_filings WHERE organization_id = $1 AND filing_id = $2;`, orgID, filingID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete tax filing "+filingID, err)
	}
	return requireAffected(tag, "tax filing "+filingID)
}

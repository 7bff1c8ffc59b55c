// Package upstream reads the sales, expense and payroll snapshots consumed by the
// filing calculators. The tables belong to other subsystems and are only read here.
package upstream

import (
	"context"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portsrepo "github.com/SscSPs/ledger_tax_app/internal/core/ports/repositories"
	"github.com/SscSPs/ledger_tax_app/internal/models"
	"github.com/SscSPs/ledger_tax_app/internal/utils/mapping"
	"github.com/jmoiron/sqlx"
)

// NewReaders builds the sqlx-backed upstream readers over one database handle.
func NewReaders(db *sqlx.DB) portsrepo.UpstreamReaders {
	return portsrepo.UpstreamReaders{
		Sales:    &salesDocumentReader{db: db},
		Expenses: &expenseReader{db: db},
		Payroll:  &payrollReader{db: db},
	}
}

// selectIn expands the IN (?) placeholders and rebinds the query for the driver.
func selectIn(ctx context.Context, db *sqlx.DB, dest interface{}, query string, args ...interface{}) error {
	q, expanded, err := sqlx.In(query, args...)
	if err != nil {
		return err
	}
	return db.SelectContext(ctx, dest, db.Rebind(q), expanded...)
}

type salesDocumentReader struct {
	db *sqlx.DB
}

var _ portsrepo.SalesDocumentReader = (*salesDocumentReader)(nil)

func (r *salesDocumentReader) ListForPeriod(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.SalesDocument, error) {
	if len(statuses) == 0 {
		return []domain.SalesDocument{}, nil
	}
	var rows []models.SalesDocument
	err := selectIn(ctx, r.db, &rows, `
		SELECT document_id, issue_date, status, taxed_base, exempt_base, non_subject_base, tax_collected, tax_withheld
		FROM sales_documents
		WHERE organization_id = ? AND issue_date >= ? AND issue_date <= ? AND status IN (?)
		ORDER BY issue_date, document_id`,
		orgID, from, to, statuses,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read sales documents", err)
	}
	return mapping.ToDomainSalesDocuments(rows), nil
}

type expenseReader struct {
	db *sqlx.DB
}

var _ portsrepo.ExpenseReader = (*expenseReader)(nil)

func (r *expenseReader) ListForPeriod(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.ExpenseRecord, error) {
	if len(statuses) == 0 {
		return []domain.ExpenseRecord{}, nil
	}
	var rows []models.ExpenseRecord
	err := selectIn(ctx, r.db, &rows, `
		SELECT expense_id, expense_date, status, amount, supplier_tax_id
		FROM expense_records
		WHERE organization_id = ? AND expense_date >= ? AND expense_date <= ? AND status IN (?)
		ORDER BY expense_date, expense_id`,
		orgID, from, to, statuses,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read expense records", err)
	}
	return mapping.ToDomainExpenseRecords(rows), nil
}

type payrollReader struct {
	db *sqlx.DB
}

var _ portsrepo.PayrollReader = (*payrollReader)(nil)

// ListRunsOverlapping returns runs with period_start <= to and period_end >= from.
func (r *payrollReader) ListRunsOverlapping(ctx context.Context, orgID string, from, to time.Time, statuses []string) ([]domain.PayrollRun, error) {
	if len(statuses) == 0 {
		return []domain.PayrollRun{}, nil
	}
	var runs []models.PayrollRun
	err := selectIn(ctx, r.db, &runs, `
		SELECT run_id, period_start, period_end, status, total_gross
		FROM payroll_runs
		WHERE organization_id = ? AND period_start <= ? AND period_end >= ? AND status IN (?)
		ORDER BY period_start, run_id`,
		orgID, to, from, statuses,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read payroll runs", err)
	}
	if len(runs) == 0 {
		return []domain.PayrollRun{}, nil
	}

	runIDs := make([]string, len(runs))
	for i, run := range runs {
		runIDs[i] = run.RunID
	}
	var details []models.PayrollRunDetail
	err = selectIn(ctx, r.db, &details, `
		SELECT run_id, employee_id, income_tax_withheld
		FROM payroll_run_details
		WHERE run_id IN (?)
		ORDER BY run_id, employee_id`,
		runIDs,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to read payroll run details", err)
	}

	return mapping.ToDomainPayrollRuns(runs, details), nil
}

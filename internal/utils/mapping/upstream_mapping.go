package mapping

import (
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/SscSPs/ledger_tax_app/internal/models"
)

// ToDomainSalesDocuments converts sales document rows
func ToDomainSalesDocuments(ms []models.SalesDocument) []domain.SalesDocument {
	ds := make([]domain.SalesDocument, len(ms))
	for i, m := range ms {
		ds[i] = domain.SalesDocument{
			DocumentID:     m.DocumentID,
			IssueDate:      m.IssueDate,
			Status:         m.Status,
			TaxedBase:      m.TaxedBase,
			ExemptBase:     m.ExemptBase,
			NonSubjectBase: m.NonSubjectBase,
			TaxCollected:   m.TaxCollected,
			TaxWithheld:    m.TaxWithheld,
		}
	}
	return ds
}

// ToDomainExpenseRecords converts expense rows
func ToDomainExpenseRecords(ms []models.ExpenseRecord) []domain.ExpenseRecord {
	ds := make([]domain.ExpenseRecord, len(ms))
	for i, m := range ms {
		ds[i] = domain.ExpenseRecord{
			ExpenseID:     m.ExpenseID,
			ExpenseDate:   m.ExpenseDate,
			Status:        m.Status,
			Amount:        m.Amount,
			SupplierTaxID: m.SupplierTaxID,
		}
	}
	return ds
}

// ToDomainPayrollRuns converts run rows and attaches their details by run ID
func ToDomainPayrollRuns(runs []models.PayrollRun, details []models.PayrollRunDetail) []domain.PayrollRun {
	byRun := make(map[string][]domain.PayrollDetail, len(runs))
	for _, d := range details {
		byRun[d.RunID] = append(byRun[d.RunID], domain.PayrollDetail{
			EmployeeID:        d.EmployeeID,
			IncomeTaxWithheld: d.IncomeTaxWithheld,
		})
	}
	ds := make([]domain.PayrollRun, len(runs))
	for i, r := range runs {
		ds[i] = domain.PayrollRun{
			RunID:       r.RunID,
			PeriodStart: r.PeriodStart,
			PeriodEnd:   r.PeriodEnd,
			Status:      r.Status,
			TotalGross:  r.TotalGross,
			Details:     byRun[r.RunID],
		}
	}
	return ds
}

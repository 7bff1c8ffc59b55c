package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesDocument is the sales_documents row subset read by the filing calculators.
type SalesDocument struct {
	DocumentID     string          `db:"document_id"`
	IssueDate      time.Time       `db:"issue_date"`
	Status         string          `db:"status"`
	TaxedBase      decimal.Decimal `db:"taxed_base"`
	ExemptBase     decimal.Decimal `db:"exempt_base"`
	NonSubjectBase decimal.Decimal `db:"non_subject_base"`
	TaxCollected   decimal.Decimal `db:"tax_collected"`
	TaxWithheld    decimal.Decimal `db:"tax_withheld"`
}

// ExpenseRecord is the expense_records row subset read by the filing calculators.
type ExpenseRecord struct {
	ExpenseID     string          `db:"expense_id"`
	ExpenseDate   time.Time       `db:"expense_date"`
	Status        string          `db:"status"`
	Amount        decimal.Decimal `db:"amount"`
	SupplierTaxID *string         `db:"supplier_tax_id"`
}

// PayrollRun is the payroll_runs row subset read by the filing calculators.
type PayrollRun struct {
	RunID       string          `db:"run_id"`
	PeriodStart time.Time       `db:"period_start"`
	PeriodEnd   time.Time       `db:"period_end"`
	Status      string          `db:"status"`
	TotalGross  decimal.Decimal `db:"total_gross"`
}

// PayrollRunDetail is the payroll_run_details row subset read by the filing calculators.
type PayrollRunDetail struct {
	RunID             string          `db:"run_id"`
	EmployeeID        string          `db:"employee_id"`
	IncomeTaxWithheld decimal.Decimal `db:"income_tax_withheld"`
}

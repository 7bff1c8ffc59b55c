package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesDocument is the read-only slice of an invoice consumed by the filing calculators.
type SalesDocument struct {
	DocumentID     string          `json:"documentID"`
	IssueDate      time.Time       `json:"issueDate"`
	Status         string          `json:"status"`
	TaxedBase      decimal.Decimal `json:"taxedBase"`
	ExemptBase     decimal.Decimal `json:"exemptBase"`
	NonSubjectBase decimal.Decimal `json:"nonSubjectBase"`
	TaxCollected   decimal.Decimal `json:"taxCollected"`
	TaxWithheld    decimal.Decimal `json:"taxWithheld"`
}

// ExpenseRecord is a purchase whose amount is tax-inclusive when a supplier tax ID is present.
type ExpenseRecord struct {
	ExpenseID     string          `json:"expenseID"`
	ExpenseDate   time.Time       `json:"expenseDate"`
	Status        string          `json:"status"`
	Amount        decimal.Decimal `json:"amount"`
	SupplierTaxID *string         `json:"supplierTaxID"`
}

// PayrollDetail is one employee's line in a payroll run.
type PayrollDetail struct {
	EmployeeID        string          `json:"employeeID"`
	IncomeTaxWithheld decimal.Decimal `json:"incomeTaxWithheld"`
}

// PayrollRun is a payroll period with its employee details.
type PayrollRun struct {
	RunID       string          `json:"runID"`
	PeriodStart time.Time       `json:"periodStart"`
	PeriodEnd   time.Time       `json:"periodEnd"`
	Status      string          `json:"status"`
	TotalGross  decimal.Decimal `json:"totalGross"`
	Details     []PayrollDetail `json:"details"`
}

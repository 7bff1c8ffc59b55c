package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxFiling is the tax_filings table row.
type TaxFiling struct {
	FilingID        string     `db:"filing_id"`
	OrganizationID  string     `db:"organization_id"`
	FormType        string     `db:"form_type"`
	PeriodYear      int        `db:"period_year"`
	PeriodMonth     *int       `db:"period_month"`
	Status          string     `db:"status"`
	FiledAt         *time.Time `db:"filed_at"`
	FilingReference *string    `db:"filing_reference"`

	SalesTaxed      decimal.Decimal `db:"sales_taxed"`
	SalesExempt     decimal.Decimal `db:"sales_exempt"`
	TaxCollected    decimal.Decimal `db:"tax_collected"`
	TaxWithheld     decimal.Decimal `db:"tax_withheld"`
	PurchasesTaxed  decimal.Decimal `db:"purchases_taxed"`
	PurchasesExempt decimal.Decimal `db:"purchases_exempt"`
	TaxCredit       decimal.Decimal `db:"tax_credit"`
	TaxPayable      decimal.Decimal `db:"tax_payable"`

	GrossIncome       decimal.Decimal `db:"gross_income"`
	AdvanceTax        decimal.Decimal `db:"advance_tax"`
	IncomeTaxWithheld decimal.Decimal `db:"income_tax_withheld"`
	TotalPayable      decimal.Decimal `db:"total_payable"`

	AnnualIncome        decimal.Decimal `db:"annual_income"`
	DeductibleCost      decimal.Decimal `db:"deductible_cost"`
	TaxableIncome       decimal.Decimal `db:"taxable_income"`
	AnnualTax           decimal.Decimal `db:"annual_tax"`
	AccumulatedAdvances decimal.Decimal `db:"accumulated_advances"`
	BalanceDue          decimal.Decimal `db:"balance_due"`

	AuditFields
}

// AuditLog is the audit_log table row.
type AuditLog struct {
	AuditID        string    `db:"audit_id"`
	OrganizationID string    `db:"organization_id"`
	Actor          string    `db:"actor"`
	Action         string    `db:"action"`
	EntityType     string    `db:"entity_type"`
	EntityID       string    `db:"entity_id"`
	Summary        string    `db:"summary"`
	Context        []byte    `db:"context"` // JSONB
	RecordedAt     time.Time `db:"recorded_at"`
}

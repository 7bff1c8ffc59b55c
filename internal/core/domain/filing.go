package domain

import (
	"fmt"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// FormType identifies a statutory filing form.
type FormType string

const (
	FormF07 FormType = "F07" // Monthly value-added tax
	FormF11 FormType = "F11" // Monthly advance income tax
	FormF14 FormType = "F14" // Annual income tax
)

// IsValid reports whether f is a supported form.
func (f FormType) IsValid() bool {
	switch f {
	case FormF07, FormF11, FormF14:
		return true
	}
	return false
}

// IsMonthly reports whether the form is filed per month.
func (f FormType) IsMonthly() bool {
	return f == FormF07 || f == FormF11
}

// FilingStatus is the lifecycle state of a tax filing.
type FilingStatus string

const (
	FilingDraft      FilingStatus = "DRAFT"
	FilingCalculated FilingStatus = "CALCULATED"
	FilingFiled      FilingStatus = "FILED"
	FilingAccepted   FilingStatus = "ACCEPTED"
	FilingRejected   FilingStatus = "REJECTED"
)

// Statutory rates.
var (
	VATRate           = decimal.RequireFromString("0.13")
	VATInclusiveRatio = decimal.RequireFromString("1.13")
	AdvanceTaxRate    = decimal.RequireFromString("0.0175")
	IncomeTaxRate     = decimal.RequireFromString("0.30")
)

// Upstream status filters applied by the calculators.
var (
	QualifyingSalesStatuses   = []string{"APPROVED", "SIGNED", "TRANSMITTED"}
	ApprovedExpenseStatuses   = []string{"APPROVED"}
	QualifyingPayrollStatuses = []string{"APPROVED", "PAID"}
	// F-11 filings whose advance tax counts toward the annual F-14 balance.
	AdvanceCountingStatuses = []FilingStatus{FilingCalculated, FilingFiled, FilingAccepted}
)

var filingTransitions = map[FilingStatus][]FilingStatus{
	FilingDraft:      {FilingCalculated},
	FilingCalculated: {FilingFiled},
	FilingFiled:      {FilingAccepted, FilingRejected},
	FilingRejected:   {FilingCalculated},
	FilingAccepted:   {},
}

// ValidateTransition checks from -> to against the filing lifecycle table.
func ValidateTransition(from, to FilingStatus) error {
	for _, allowed := range filingTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apperrors.NewStateError("tax filing", string(from), string(to))
}

// IsValid reports whether s is a known filing status.
func (s FilingStatus) IsValid() bool {
	_, ok := filingTransitions[s]
	return ok
}

// FilingFigures holds every computed amount. Fields not produced by a form stay zero.
type FilingFigures struct {
	// F-07
	SalesTaxed      decimal.Decimal `json:"salesTaxed"`
	SalesExempt     decimal.Decimal `json:"salesExempt"`
	TaxCollected    decimal.Decimal `json:"taxCollected"`
	TaxWithheld     decimal.Decimal `json:"taxWithheld"`
	PurchasesTaxed  decimal.Decimal `json:"purchasesTaxed"`
	PurchasesExempt decimal.Decimal `json:"purchasesExempt"`
	TaxCredit       decimal.Decimal `json:"taxCredit"`
	TaxPayable      decimal.Decimal `json:"taxPayable"`

	// F-11
	GrossIncome       decimal.Decimal `json:"grossIncome"`
	AdvanceTax        decimal.Decimal `json:"advanceTax"`
	IncomeTaxWithheld decimal.Decimal `json:"incomeTaxWithheld"`
	TotalPayable      decimal.Decimal `json:"totalPayable"`

	// F-14
	AnnualIncome        decimal.Decimal `json:"annualIncome"`
	DeductibleCost      decimal.Decimal `json:"deductibleCost"`
	TaxableIncome       decimal.Decimal `json:"taxableIncome"`
	AnnualTax           decimal.Decimal `json:"annualTax"`
	AccumulatedAdvances decimal.Decimal `json:"accumulatedAdvances"`
	BalanceDue          decimal.Decimal `json:"balanceDue"`
}

// ZeroFigures returns figures with every amount set to 0.
func ZeroFigures() FilingFigures {
	z := decimal.Zero
	return FilingFigures{
		SalesTaxed: z, SalesExempt: z, TaxCollected: z, TaxWithheld: z,
		PurchasesTaxed: z, PurchasesExempt: z, TaxCredit: z, TaxPayable: z,
		GrossIncome: z, AdvanceTax: z, IncomeTaxWithheld: z, TotalPayable: z,
		AnnualIncome: z, DeductibleCost: z, TaxableIncome: z, AnnualTax: z,
		AccumulatedAdvances: z, BalanceDue: z,
	}
}

// TaxFiling is one statutory declaration for an organization and period.
type TaxFiling struct {
	FilingID        string       `json:"filingID"`
	OrganizationID  string       `json:"organizationID"`
	FormType        FormType     `json:"formType"`
	PeriodYear      int          `json:"periodYear"`
	PeriodMonth     *int         `json:"periodMonth"` // nil for annual forms
	Status          FilingStatus `json:"status"`
	FiledAt         *time.Time   `json:"filedAt"`
	FilingReference *string      `json:"filingReference"`
	FilingFigures
	AuditFields
}

// CanDelete allows deletion only before a filing has been submitted.
func (f *TaxFiling) CanDelete() error {
	if f.Status == FilingDraft || f.Status == FilingCalculated {
		return nil
	}
	return apperrors.NewStateError("tax filing", string(f.Status), "delete")
}

// CanRecompute refuses recomputation once a filing has been submitted.
func (f *TaxFiling) CanRecompute() error {
	if f.Status == FilingFiled || f.Status == FilingAccepted {
		return apperrors.NewStateError("tax filing", string(f.Status), string(FilingCalculated))
	}
	return nil
}

// FilingPeriod is the (form, year, month) key of a filing.
type FilingPeriod struct {
	FormType FormType
	Year     int
	Month    *int
}

// Validate checks that the month is present for monthly forms only and in range.
func (p FilingPeriod) Validate() error {
	if !p.FormType.IsValid() {
		return fmt.Errorf("%w: unknown form type %q", apperrors.ErrValidation, p.FormType)
	}
	if p.Year < 1900 || p.Year > 9999 {
		return fmt.Errorf("%w: invalid period year %d", apperrors.ErrValidation, p.Year)
	}
	if p.FormType.IsMonthly() {
		if p.Month == nil {
			return fmt.Errorf("%w: form %s requires a period month", apperrors.ErrValidation, p.FormType)
		}
		if *p.Month < 1 || *p.Month > 12 {
			return fmt.Errorf("%w: invalid period month %d", apperrors.ErrValidation, *p.Month)
		}
		return nil
	}
	if p.Month != nil {
		return fmt.Errorf("%w: form %s is annual and takes no month", apperrors.ErrValidation, p.FormType)
	}
	return nil
}

// Bounds returns the first and last calendar day of the period, in UTC.
func (p FilingPeriod) Bounds() (from, to time.Time) {
	if p.Month == nil {
		from = time.Date(p.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return from, from.AddDate(1, 0, -1)
	}
	from = time.Date(p.Year, time.Month(*p.Month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

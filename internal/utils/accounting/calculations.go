package accounting

import (
	"strings"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// add returns the rounded sum so every intermediate amount carries two decimals.
func add(acc, d decimal.Decimal) decimal.Decimal {
	return Round2(acc.Add(d))
}

func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func hasStatus(status string, allowed []string) bool {
	for _, s := range allowed {
		if strings.EqualFold(status, s) {
			return true
		}
	}
	return false
}

// SplitInclusiveVAT backs the tax-exclusive base and creditable tax out of a tax-inclusive amount.
func SplitInclusiveVAT(amount decimal.Decimal) (base, credit decimal.Decimal) {
	base = Round2(amount.Div(domain.VATInclusiveRatio))
	credit = Round2(amount.Sub(base))
	return base, credit
}

// ComputeF07 computes the monthly value-added tax declaration.
// Sales documents and expenses outside the qualifying statuses are ignored.
func ComputeF07(sales []domain.SalesDocument, expenses []domain.ExpenseRecord) domain.FilingFigures {
	f := domain.ZeroFigures()

	for _, doc := range sales {
		if !hasStatus(doc.Status, domain.QualifyingSalesStatuses) {
			continue
		}
		f.SalesTaxed = add(f.SalesTaxed, doc.TaxedBase)
		f.SalesExempt = add(f.SalesExempt, doc.ExemptBase)
		f.TaxCollected = add(f.TaxCollected, doc.TaxCollected)
		f.TaxWithheld = add(f.TaxWithheld, doc.TaxWithheld)
	}

	for _, exp := range expenses {
		if !hasStatus(exp.Status, domain.ApprovedExpenseStatuses) {
			continue
		}
		if exp.SupplierTaxID != nil && strings.TrimSpace(*exp.SupplierTaxID) != "" {
			base, credit := SplitInclusiveVAT(exp.Amount)
			f.PurchasesTaxed = add(f.PurchasesTaxed, base)
			f.TaxCredit = add(f.TaxCredit, credit)
			continue
		}
		f.PurchasesExempt = add(f.PurchasesExempt, exp.Amount)
	}

	f.TaxPayable = nonNegative(Round2(f.TaxCollected.Sub(f.TaxCredit).Sub(f.TaxWithheld)))
	return f
}

// grossSales sums the taxed, exempt and non-subject bases of qualifying documents.
func grossSales(sales []domain.SalesDocument) decimal.Decimal {
	total := decimal.Zero
	for _, doc := range sales {
		if !hasStatus(doc.Status, domain.QualifyingSalesStatuses) {
			continue
		}
		total = add(total, doc.TaxedBase)
		total = add(total, doc.ExemptBase)
		total = add(total, doc.NonSubjectBase)
	}
	return total
}

// ComputeF11 computes the monthly advance income tax plus payroll withholding.
// runs are expected to already overlap the period.
func ComputeF11(sales []domain.SalesDocument, runs []domain.PayrollRun) domain.FilingFigures {
	f := domain.ZeroFigures()

	f.GrossIncome = grossSales(sales)
	f.AdvanceTax = Round2(f.GrossIncome.Mul(domain.AdvanceTaxRate))

	for _, run := range runs {
		if !hasStatus(run.Status, domain.QualifyingPayrollStatuses) {
			continue
		}
		for _, d := range run.Details {
			f.IncomeTaxWithheld = add(f.IncomeTaxWithheld, d.IncomeTaxWithheld)
		}
	}

	f.TotalPayable = add(f.AdvanceTax, f.IncomeTaxWithheld)
	return f
}

// ComputeF14 computes the annual income tax. advances are the year's F-11 filings;
// only those in an advance-counting status contribute.
func ComputeF14(sales []domain.SalesDocument, expenses []domain.ExpenseRecord, runs []domain.PayrollRun, advances []domain.TaxFiling) domain.FilingFigures {
	f := domain.ZeroFigures()

	f.AnnualIncome = grossSales(sales)

	for _, exp := range expenses {
		if hasStatus(exp.Status, domain.ApprovedExpenseStatuses) {
			f.DeductibleCost = add(f.DeductibleCost, exp.Amount)
		}
	}
	for _, run := range runs {
		if hasStatus(run.Status, domain.QualifyingPayrollStatuses) {
			f.DeductibleCost = add(f.DeductibleCost, run.TotalGross)
		}
	}

	f.TaxableIncome = nonNegative(Round2(f.AnnualIncome.Sub(f.DeductibleCost)))
	f.AnnualTax = Round2(f.TaxableIncome.Mul(domain.IncomeTaxRate))

	for _, adv := range advances {
		if adv.FormType != domain.FormF11 || !countsAsAdvance(adv.Status) {
			continue
		}
		f.AccumulatedAdvances = add(f.AccumulatedAdvances, adv.AdvanceTax)
	}

	f.BalanceDue = nonNegative(Round2(f.AnnualTax.Sub(f.AccumulatedAdvances)))
	return f
}

func countsAsAdvance(status domain.FilingStatus) bool {
	for _, s := range domain.AdvanceCountingStatuses {
		if s == status {
			return true
		}
	}
	return false
}

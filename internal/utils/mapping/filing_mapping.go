package mapping

import (
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	"github.com/SscSPs/ledger_tax_app/internal/models"
)

// ToModelTaxFiling converts a domain TaxFiling to a model row
func ToModelTaxFiling(d domain.TaxFiling) models.TaxFiling {
	f := d.FilingFigures
	return models.TaxFiling{
		FilingID:        d.FilingID,
		OrganizationID:  d.OrganizationID,
		FormType:        string(d.FormType),
		PeriodYear:      d.PeriodYear,
		PeriodMonth:     d.PeriodMonth,
		Status:          string(d.Status),
		FiledAt:         d.FiledAt,
		FilingReference: d.FilingReference,

		SalesTaxed:      f.SalesTaxed,
		SalesExempt:     f.SalesExempt,
		TaxCollected:    f.TaxCollected,
		TaxWithheld:     f.TaxWithheld,
		PurchasesTaxed:  f.PurchasesTaxed,
		PurchasesExempt: f.PurchasesExempt,
		TaxCredit:       f.TaxCredit,
		TaxPayable:      f.TaxPayable,

		GrossIncome:       f.GrossIncome,
		AdvanceTax:        f.AdvanceTax,
		IncomeTaxWithheld: f.IncomeTaxWithheld,
		TotalPayable:      f.TotalPayable,

		AnnualIncome:        f.AnnualIncome,
		DeductibleCost:      f.DeductibleCost,
		TaxableIncome:       f.TaxableIncome,
		AnnualTax:           f.AnnualTax,
		AccumulatedAdvances: f.AccumulatedAdvances,
		BalanceDue:          f.BalanceDue,

		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTaxFiling converts a model row to a domain TaxFiling
func ToDomainTaxFiling(m models.TaxFiling) domain.TaxFiling {
	return domain.TaxFiling{
		FilingID:        m.FilingID,
		OrganizationID:  m.OrganizationID,
		FormType:        domain.FormType(m.FormType),
		PeriodYear:      m.PeriodYear,
		PeriodMonth:     m.PeriodMonth,
		Status:          domain.FilingStatus(m.Status),
		FiledAt:         m.FiledAt,
		FilingReference: m.FilingReference,
		FilingFigures: domain.FilingFigures{
			SalesTaxed:      m.SalesTaxed,
			SalesExempt:     m.SalesExempt,
			TaxCollected:    m.TaxCollected,
			TaxWithheld:     m.TaxWithheld,
			PurchasesTaxed:  m.PurchasesTaxed,
			PurchasesExempt: m.PurchasesExempt,
			TaxCredit:       m.TaxCredit,
			TaxPayable:      m.TaxPayable,

			GrossIncome:       m.GrossIncome,
			AdvanceTax:        m.AdvanceTax,
			IncomeTaxWithheld: m.IncomeTaxWithheld,
			TotalPayable:      m.TotalPayable,

			AnnualIncome:        m.AnnualIncome,
			DeductibleCost:      m.DeductibleCost,
			TaxableIncome:       m.TaxableIncome,
			AnnualTax:           m.AnnualTax,
			AccumulatedAdvances: m.AccumulatedAdvances,
			BalanceDue:          m.BalanceDue,
		},
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

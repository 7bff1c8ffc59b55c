package dto

import (
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
)

// FilingPeriodRequest identifies the form and period to compute or draft.
type FilingPeriodRequest struct {
	FormType    domain.FormType `json:"formType" binding:"required,oneof=F07 F11 F14"`
	PeriodYear  int             `json:"periodYear" binding:"required,min=1900,max=9999"`
	PeriodMonth *int            `json:"periodMonth" binding:"omitempty,min=1,max=12"`
}

// ToPeriod converts the request to a domain period.
func (r FilingPeriodRequest) ToPeriod() domain.FilingPeriod {
	return domain.FilingPeriod{FormType: r.FormType, Year: r.PeriodYear, Month: r.PeriodMonth}
}

// TransitionFilingRequest advances a filing through its lifecycle.
type TransitionFilingRequest struct {
	Status          domain.FilingStatus `json:"status" binding:"required,oneof=DRAFT CALCULATED FILED ACCEPTED REJECTED"`
	FilingReference *string             `json:"filingReference" binding:"omitempty,max=100"`
}

// ListFilingsParams defines query parameters for listing filings.
type ListFilingsParams struct {
	Year     int    `form:"year" binding:"required,min=1900,max=9999"`
	FormType string `form:"formType" binding:"omitempty,oneof=F07 F11 F14"`
}

// ListFilingsResponse wraps a list of filings.
type ListFilingsResponse struct {
	Filings []domain.TaxFiling `json:"filings"`
}

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// filingHandler handles HTTP requests related to statutory tax filings.
type filingHandler struct {
	filingService portssvc.FilingSvcFacade
}

func newFilingHandler(fs portssvc.FilingSvcFacade) *filingHandler {
	return &filingHandler{filingService: fs}
}

// registerFilingRoutes registers tax filing routes under an organization group.
func registerFilingRoutes(rg *gin.RouterGroup, filingService portssvc.FilingSvcFacade) {
	h := newFilingHandler(filingService)

	filings := rg.Group("/tax-filings")
	{
		filings.POST("/compute", h.computeFiling)
		filings.POST("/drafts", h.createDraft)
		filings.GET("", h.listFilings)
		filings.GET("/:filing_id", h.getFiling)
		filings.POST("/:filing_id/transition", h.transitionFiling)
		filings.DELETE("/:filing_id", h.deleteFiling)
	}
}

// computeFiling godoc
// @Summary Compute a tax filing
// @Description Computes F07, F11 or F14 figures for a period from upstream sales, expenses and payroll, and stores the filing as CALCULATED
// @Tags tax-filings
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   period body dto.FilingPeriodRequest true "Form and period"
// @Success 200 {object} domain.TaxFiling
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Filing already submitted"
// @Failure 500 {object} map[string]string "Failed to compute tax filing"
// @Security BearerAuth
// @Router /organizations/{org_id}/tax-filings/compute [post]
func (h *filingHandler) computeFiling(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.FilingPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ComputeFiling", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	filing, err := h.filingService.ComputeFiling(c.Request.Context(), orgID, req.ToPeriod(), userID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("form_type", string(req.FormType))), err, "Failed to compute tax filing")
		return
	}

	c.JSON(http.StatusOK, filing)
}

// createDraft godoc
// @Summary Create a draft tax filing
// @Description Creates an all-zero DRAFT filing for a period that has none
// @Tags tax-filings
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   period body dto.FilingPeriodRequest true "Form and period"
// @Success 201 {object} domain.TaxFiling
// @Failure 400 {object} map[string]string "Invalid period"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 409 {object} map[string]string "Filing already exists for the period"
// @Failure 500 {object} map[string]string "Failed to create draft tax filing"
// @Security BearerAuth
// @Router /organizations/{org_id}/tax-filings/drafts [post]
func (h *filingHandler) createDraft(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.FilingPeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateDraft", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	filing, err := h.filingService.CreateDraft(c.Request.Context(), orgID, req.ToPeriod(), userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create draft tax filing")
		return
	}

	c.JSON(http.StatusCreated, filing)
}

// listFilings godoc
// @Summary List tax filings
// @Description Lists the organization's filings for a year, optionally for one form
// @Tags tax-filings
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   year query int true "Period year"
// @Param   formType query string false "F07, F11 or F14"
// @Success 200 {object} dto.ListFilingsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list tax filings"
// @Security BearerAuth
// @Router /organizations/{org_id}/tax-filings [get]
func (h *filingHandler) listFilings(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListFilingsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListFilings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	var formType *domain.FormType
	if params.FormType != "" {
		ft := domain.FormType(params.FormType)
		formType = &ft
	}

	filings, err := h.filingService.ListFilings(c.Request.Context(), orgID, params.Year, formType, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list tax filings")
		return
	}

	c.JSON(http.StatusOK, dto.ListFilingsResponse{Filings: filings})
}

// getFiling godoc
// @Summary Get a tax filing
// @Tags tax-filings
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   filing_id path string true "Filing ID"
// @Success 200 {object} domain.TaxFiling
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Filing not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax filing"
// @Security BearerAuth
// @Router /organizations/{org_id}/tax-filings/{filing_id} [get]
func (h *filingHandler) getFiling(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	filingID := c.Param("filing_id")

	filing, err := h.filingService.GetFiling(c.Request.Context(), orgID, filingID, userID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("filing_id", filingID)), err, "Failed to retrieve tax filing")
		return
	}

	c.JSON(http.StatusOK, filing)
}

// transitionFiling godoc
// @Summary Change a tax filing's status
// @Description Moves a filing along DRAFT, CALCULATED, FILED, then ACCEPTED or REJECTED. Filing stamps the submission time and reference.
// @Tags tax-filings
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   filing_id path string true "Filing ID"
// @Param   transition body dto.TransitionFilingRequest true "Target status"
// @Success 200 {object} domain.TaxFiling
// @Failure 400 {object} map[string]string "Invalid status"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Filing not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Failure 500 {object} map[string]string "Failed to change tax filing status"
// @Security BearerAuth
// @Router /organizations/{org_id}/tax-filings/{filing_id}/transition [post]
func (h *filingHandler) transitionFiling(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	filingID := c.Param("filing_id")
	logger = logger.With(slog.String("filing_id", filingID))

	var req dto.TransitionFilingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for TransitionFiling", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	filing, err := h.filingService.TransitionFiling(c.Request.Context(), orgID, filingID, req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to change tax filing status")
		return
	}

	c.JSON(http.StatusOK, filing)
}

// deleteFiling godoc
// @Summary Delete a tax filing
// @Description Removes a DRAFT or CALCULATED filing
// @Tags tax-filings
// @Param   org_id path string true "Organization ID"
// @Param   filing_id path string true "Filing ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Filing not found"
// @Failure 409 {object} map[string]string "Filing already submitted"
// @Failure 500 {object} map[string]string "Failed to delete tax filing"
// @Security BearerAuth
// @Router /organizations/{org_id}/tax-filings/{filing_id} [delete]
func (h *filingHandler) deleteFiling(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	filingID := c.Param("filing_id")

	if err := h.filingService.DeleteFiling(c.Request.Context(), orgID, filingID, userID); err != nil {
		handleServiceError(c, logger.With(slog.String("filing_id", filingID)), err, "Failed to delete tax filing")
		return
	}

	c.Status(http.StatusNoContent)
}

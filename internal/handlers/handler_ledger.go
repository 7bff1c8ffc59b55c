package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// ledgerHandler serves the general ledger projection.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvc
}

func newLedgerHandler(ledgerService portssvc.LedgerSvc) *ledgerHandler {
	return &ledgerHandler{ledgerService: ledgerService}
}

// registerLedgerRoutes registers the ledger route under an organization group.
func registerLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvc) {
	h := newLedgerHandler(ledgerService)
	rg.GET("/ledger", h.getLedger)
}

// parseOptionalDate reads a YYYY-MM-DD query value; an empty value yields nil.
func parseOptionalDate(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s format, use YYYY-MM-DD", name)
	}
	return &t, nil
}

// getLedger godoc
// @Summary Get the general ledger
// @Description Lists journal lines enriched with entry and account data, ordered by entry date and insertion order
// @Tags ledger
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param accountId query string false "Restrict to one account"
// @Param startDate query string false "Start date (YYYY-MM-DD)"
// @Param endDate query string false "End date (YYYY-MM-DD)"
// @Param postedOnly query bool false "Only posted entries" default(false)
// @Success 200 {object} dto.LedgerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to retrieve ledger"
// @Security BearerAuth
// @Router /organizations/{org_id}/ledger [get]
func (h *ledgerHandler) getLedger(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.LedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for GetLedger", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	filter := domain.LedgerFilter{PostedOnly: params.PostedOnly}
	if params.AccountID != "" {
		filter.AccountID = &params.AccountID
	}
	var err error
	if filter.StartDate, err = parseOptionalDate("startDate", params.StartDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.EndDate, err = parseOptionalDate("endDate", params.EndDate); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entries, err := h.ledgerService.GetLedger(c.Request.Context(), orgID, filter, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to retrieve ledger")
		return
	}

	logger.Debug("Ledger retrieved", slog.Int("rows", len(entries)))
	c.JSON(http.StatusOK, dto.LedgerResponse{Entries: entries})
}

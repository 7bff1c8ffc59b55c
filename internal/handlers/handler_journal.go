package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/dto"
	"github.com/gin-gonic/gin"
)

// journalHandler handles HTTP requests related to journal entries.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers journal entry routes under an organization group.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	entries := rg.Group("/journal-entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entry_id", h.getEntry)
		entries.PUT("/:entry_id", h.updateEntry)
		entries.POST("/:entry_id/post", h.postEntry)
		entries.POST("/:entry_id/unpost", h.unpostEntry)
		entries.DELETE("/:entry_id", h.deleteEntry)
	}
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates an unposted entry. Lines must balance and reference active accounts.
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry body dto.CreateJournalEntryRequest true "Entry header and lines"
// @Success 201 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to create journal entry"
// @Security BearerAuth
// @Router /organizations/{org_id}/journal-entries [post]
func (h *journalHandler) createEntry(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var req dto.CreateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.CreateEntry(c.Request.Context(), orgID, req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create journal entry")
		return
	}

	logger.Info("Journal entry created successfully", slog.String("entry_id", entry.EntryID), slog.Int("lines", len(entry.Lines)))
	c.JSON(http.StatusCreated, dto.ToJournalEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves an entry with its lines
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal entry"
// @Security BearerAuth
// @Router /organizations/{org_id}/journal-entries/{entry_id} [get]
func (h *journalHandler) getEntry(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")

	entry, err := h.journalService.GetEntry(c.Request.Context(), orgID, entryID, userID)
	if err != nil {
		handleServiceError(c, logger.With(slog.String("entry_id", entryID)), err, "Failed to retrieve journal entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Lists entry headers newest first using a continuation token
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   limit query int false "Page size" default(20)
// @Param   nextToken query string false "Continuation token from the previous page"
// @Success 200 {object} dto.ListJournalEntriesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 500 {object} map[string]string "Failed to list journal entries"
// @Security BearerAuth
// @Router /organizations/{org_id}/journal-entries [get]
func (h *journalHandler) listEntries(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}

	var params dto.ListJournalEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.journalService.ListEntries(c.Request.Context(), orgID, userID, params)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list journal entries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Replace an unposted journal entry
// @Description Replaces the header and every line of an unposted entry
// @Tags journal-entries
// @Accept  json
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Param   entry body dto.UpdateJournalEntryRequest true "Entry header and lines"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 400 {object} map[string]string "Invalid input or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is posted"
// @Failure 500 {object} map[string]string "Failed to update journal entry"
// @Security BearerAuth
// @Router /organizations/{org_id}/journal-entries/{entry_id} [put]
func (h *journalHandler) updateEntry(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	logger = logger.With(slog.String("entry_id", entryID))

	var req dto.UpdateJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	entry, err := h.journalService.UpdateEntry(c.Request.Context(), orgID, entryID, req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to update journal entry")
		return
	}

	logger.Info("Journal entry updated successfully")
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// postEntry godoc
// @Summary Post a journal entry
// @Description Marks an entry as posted. Posted entries can be neither edited nor deleted.
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to post journal entry"
// @Security BearerAuth
// @Router /organizations/{org_id}/journal-entries/{entry_id}/post [post]
func (h *journalHandler) postEntry(c *gin.Context) {
	h.setPosted(c, true)
}

// unpostEntry godoc
// @Summary Unpost a journal entry
// @Description Returns a posted entry to the editable state
// @Tags journal-entries
// @Produce  json
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 200 {object} dto.JournalEntryResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 500 {object} map[string]string "Failed to unpost journal entry"
// @Security BearerAuth
// @Router /organizations/{org_id}/journal-entries/{entry_id}/unpost [post]
func (h *journalHandler) unpostEntry(c *gin.Context) {
	h.setPosted(c, false)
}

func (h *journalHandler) setPosted(c *gin.Context, posted bool) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	logger = logger.With(slog.String("entry_id", entryID), slog.Bool("posted", posted))

	failMsg := "Failed to post journal entry"
	if !posted {
		failMsg = "Failed to unpost journal entry"
	}

	entry, err := h.journalService.SetPosted(c.Request.Context(), orgID, entryID, posted, userID)
	if err != nil {
		handleServiceError(c, logger, err, failMsg)
		return
	}

	logger.Info("Journal entry posting changed")
	c.JSON(http.StatusOK, dto.ToJournalEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete an unposted journal entry
// @Description Removes an unposted entry and its lines
// @Tags journal-entries
// @Param   org_id path string true "Organization ID"
// @Param   entry_id path string true "Entry ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Journal entry not found"
// @Failure 409 {object} map[string]string "Entry is posted"
// @Failure 500 {object} map[string]string "Failed to delete journal entry"
// @Security BearerAuth
// @Router /organizations/{org_id}/journal-entries/{entry_id} [delete]
func (h *journalHandler) deleteEntry(c *gin.Context) {
	orgID, userID, logger, ok := requestScope(c)
	if !ok {
		return
	}
	entryID := c.Param("entry_id")
	logger = logger.With(slog.String("entry_id", entryID))

	if err := h.journalService.DeleteEntry(c.Request.Context(), orgID, entryID, userID); err != nil {
		handleServiceError(c, logger, err, "Failed to delete journal entry")
		return
	}

	logger.Info("Journal entry deleted successfully")
	c.Status(http.StatusNoContent)
}

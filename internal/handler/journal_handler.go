package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbooks/internal/domain"
	"gstbooks/internal/service"
)

// JournalHandler handles journal entry endpoints.
type JournalHandler struct {
	journalService service.JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService service.JournalService) *JournalHandler {
	return &JournalHandler{journalService: journalService}
}

// SaveDraft handles POST /api/v1/journal-entries
//
// The body is the reviewed draft returned by bill ingestion, with any
// accountant edits applied.
func (h *JournalHandler) SaveDraft(c *gin.Context) {
	orgID, _, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var draft domain.JournalEntryDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	entry, err := h.journalService.SaveDraft(c.Request.Context(), orgID, userID, draft)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, entry)
}

// List handles GET /api/v1/journal-entries
//
// An optional vendor_id query parameter narrows the listing to one
// vendor's entries.
func (h *JournalHandler) List(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	if vendorIDStr := c.Query("vendor_id"); vendorIDStr != "" {
		vendorID, err := uuid.Parse(vendorIDStr)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vendor ID")
			return
		}
		entries, err := h.journalService.ListByVendor(c.Request.Context(), orgID, vendorID)
		if err != nil {
			HandleError(c, err)
			return
		}
		RespondOK(c, entries)
		return
	}

	entries, err := h.journalService.List(c.Request.Context(), orgID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, entries)
}

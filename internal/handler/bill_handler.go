package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbooks/internal/service"
)

// BillHandler handles purchase bill ingestion and review endpoints.
type BillHandler struct {
	ingestionService service.IngestionService
	billService      service.BillService
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(ingestionService service.IngestionService, billService service.BillService) *BillHandler {
	return &BillHandler{ingestionService: ingestionService, billService: billService}
}

// Ingest handles POST /api/v1/bills/ingest
func (h *BillHandler) Ingest(c *gin.Context) {
	orgID, branchID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILE", "could not read uploaded file")
		return
	}

	contentType := header.Header.Get("Content-Type")
	result, err := h.ingestionService.Ingest(c.Request.Context(), orgID, branchID, userID, service.IngestInput{
		FileName:    header.Filename,
		FileBytes:   data,
		ContentType: contentType,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/bills
func (h *BillHandler) List(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	bills, err := h.billService.List(c.Request.Context(), orgID, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, bills)
}

// GetByID handles GET /api/v1/bills/:id
func (h *BillHandler) GetByID(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	result, err := h.billService.GetByID(c.Request.Context(), orgID, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// ArtifactURL handles GET /api/v1/bills/:id/artifact
func (h *BillHandler) ArtifactURL(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	url, err := h.billService.ArtifactURL(c.Request.Context(), orgID, billID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"download_url": url})
}

// MarkReviewed handles POST /api/v1/bills/:id/review
func (h *BillHandler) MarkReviewed(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	billID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid bill ID")
		return
	}

	if err := h.billService.MarkReviewed(c.Request.Context(), orgID, billID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "bill marked as reviewed"})
}

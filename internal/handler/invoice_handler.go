package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbooks/internal/service"
)

// InvoiceHandler handles sales invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	paymentService service.PaymentService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, paymentService service.PaymentService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, paymentService: paymentService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	orgID, branchID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.invoiceService.Create(c.Request.Context(), orgID, branchID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	invoices, total, err := h.invoiceService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	result, err := h.invoiceService.GetByID(c.Request.Context(), orgID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// DownloadPDF handles GET /api/v1/invoices/:id/pdf
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	pdf, err := h.invoiceService.RenderPDF(c.Request.Context(), orgID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "invoice-"+invoiceID.String()+".pdf"))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// Email handles POST /api/v1/invoices/:id/email
func (h *InvoiceHandler) Email(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.EmailInvoice(c.Request.Context(), orgID, invoiceID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice emailed"})
}

// ListPayments handles GET /api/v1/invoices/:id/payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), orgID, invoiceID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

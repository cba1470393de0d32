package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gstbooks/internal/service"
)

// PaymentHandler handles payment recording endpoints.
type PaymentHandler struct {
	paymentService service.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record handles POST /api/v1/payments
func (h *PaymentHandler) Record(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.RecordPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	payment, err := h.paymentService.Record(c.Request.Context(), orgID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, payment)
}

// List handles GET /api/v1/payments
func (h *PaymentHandler) List(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	payments, err := h.paymentService.ListByOrganization(c.Request.Context(), orgID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}

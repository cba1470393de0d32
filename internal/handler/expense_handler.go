package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbooks/internal/service"
)

// ExpenseHandler handles expense book endpoints.
type ExpenseHandler struct {
	expenseService service.ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseService service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// Create handles POST /api/v1/expenses
func (h *ExpenseHandler) Create(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), orgID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, expense)
}

// List handles GET /api/v1/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	expenses, total, err := h.expenseService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, expenses, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/expenses/:id
func (h *ExpenseHandler) GetByID(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid expense ID")
		return
	}

	expense, err := h.expenseService.GetByID(c.Request.Context(), orgID, expenseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, expense)
}

// Update handles PUT /api/v1/expenses/:id
func (h *ExpenseHandler) Update(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid expense ID")
		return
	}

	var input service.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), orgID, expenseID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, expense)
}

// Delete handles DELETE /api/v1/expenses/:id
func (h *ExpenseHandler) Delete(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	expenseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid expense ID")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), orgID, expenseID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "expense deleted"})
}

package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gstbooks/internal/service"
)

// parsePagination reads offset and limit query parameters with the
// usual clamps.
func parsePagination(c *gin.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}

// CustomerHandler handles customer book endpoints.
type CustomerHandler struct {
	customerService service.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(customerService service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Create handles POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	orgID, branchID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.PartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), orgID, branchID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, customer)
}

// List handles GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	customers, total, err := h.customerService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, customers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/customers/:id
func (h *CustomerHandler) GetByID(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), orgID, customerID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}

// Update handles PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	var input service.PartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), orgID, customerID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, customer)
}

// Delete handles DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid customer ID")
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), orgID, customerID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "customer deleted"})
}

// VendorHandler handles vendor book endpoints.
type VendorHandler struct {
	vendorService service.VendorService
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService service.VendorService) *VendorHandler {
	return &VendorHandler{vendorService: vendorService}
}

// Create handles POST /api/v1/vendors
func (h *VendorHandler) Create(c *gin.Context) {
	orgID, branchID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.PartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	vendor, err := h.vendorService.Create(c.Request.Context(), orgID, branchID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, vendor)
}

// List handles GET /api/v1/vendors
func (h *VendorHandler) List(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)
	vendors, total, err := h.vendorService.List(c.Request.Context(), orgID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vendors, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/vendors/:id
func (h *VendorHandler) GetByID(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vendor ID")
		return
	}

	vendor, err := h.vendorService.GetByID(c.Request.Context(), orgID, vendorID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vendor)
}

// Update handles PUT /api/v1/vendors/:id
func (h *VendorHandler) Update(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vendor ID")
		return
	}

	var input service.PartyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	vendor, err := h.vendorService.Update(c.Request.Context(), orgID, vendorID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vendor)
}

// Delete handles DELETE /api/v1/vendors/:id
func (h *VendorHandler) Delete(c *gin.Context) {
	orgID, _, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	vendorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid vendor ID")
		return
	}

	if err := h.vendorService.Delete(c.Request.Context(), orgID, vendorID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "vendor deleted"})
}

package handlers

import (
	"net/http"

	"bank-ledger.backend/internal/domain/entities"
	"bank-ledger.backend/internal/interfaces/http/middleware"
	"bank-ledger.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// CustomerHandler handles customer profile endpoints
type CustomerHandler struct {
	customers CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customers CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// CreateCustomer creates the caller's profile
// POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(c *gin.Context) {
	var input entities.CustomerProfileInput
	if !bindJSON(c, &input) {
		return
	}
	customer, err := h.customers.CreateCustomer(c.Request.Context(), middleware.GetCaller(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"customer": customer})
}

// ListCustomers lists all profiles
// GET /api/v1/customers
func (h *CustomerHandler) ListCustomers(c *gin.Context) {
	items, meta, err := h.customers.ListCustomers(c.Request.Context(), middleware.GetCaller(c), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, meta)
}

// GetCustomer gets a profile with its accounts and loans
// GET /api/v1/customers/:id
func (h *CustomerHandler) GetCustomer(c *gin.Context) {
	id, ok := parsePathID(c, "id", "customer")
	if !ok {
		return
	}
	customer, err := h.customers.GetCustomer(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

// UpdateCustomer updates profile fields
// PATCH /api/v1/customers/:id
func (h *CustomerHandler) UpdateCustomer(c *gin.Context) {
	id, ok := parsePathID(c, "id", "customer")
	if !ok {
		return
	}
	var input entities.CustomerProfileInput
	if !bindJSON(c, &input) {
		return
	}
	customer, err := h.customers.UpdateCustomer(c.Request.Context(), middleware.GetCaller(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

package handlers

import (
	"net/http"

	"bank-ledger.backend/internal/domain/entities"
	"bank-ledger.backend/internal/interfaces/http/middleware"
	"bank-ledger.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	accounts AccountService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accounts AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// CreateAccount opens an account
// POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var input entities.CreateAccountInput
	if !bindJSON(c, &input) {
		return
	}
	account, err := h.accounts.CreateAccount(c.Request.Context(), middleware.GetCaller(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"account": account})
}

// ListAccounts lists accounts visible to the caller
// GET /api/v1/accounts
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	items, meta, err := h.accounts.ListAccounts(c.Request.Context(), middleware.GetCaller(c), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, meta)
}

// GetAccount gets an account with its transactions
// GET /api/v1/accounts/:id
func (h *AccountHandler) GetAccount(c *gin.Context) {
	id, ok := parsePathID(c, "id", "account")
	if !ok {
		return
	}
	account, err := h.accounts.GetAccount(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": account})
}

// UpdateAccountStatus changes an account status
// PATCH /api/v1/accounts/:id/status
func (h *AccountHandler) UpdateAccountStatus(c *gin.Context) {
	id, ok := parsePathID(c, "id", "account")
	if !ok {
		return
	}
	var input entities.UpdateAccountStatusInput
	if !bindJSON(c, &input) {
		return
	}
	account, err := h.accounts.SetAccountStatus(c.Request.Context(), middleware.GetCaller(c), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"account": account})
}

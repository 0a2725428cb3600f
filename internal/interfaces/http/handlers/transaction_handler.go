package handlers

import (
	"net/http"
	"strconv"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/interfaces/http/middleware"
	"bank-ledger.backend/internal/interfaces/http/response"
	"bank-ledger.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles deposit, withdrawal and ledger listing endpoints
type TransactionHandler struct {
	transactions TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactions TransactionService) *TransactionHandler {
	return &TransactionHandler{transactions: transactions}
}

// CreateTransaction applies a deposit or withdrawal
// POST /api/v1/transactions
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	var input entities.CreateTransactionInput
	if !bindJSON(c, &input) {
		return
	}
	tx, err := h.transactions.ApplyTransaction(c.Request.Context(), middleware.GetCaller(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// ListTransactions lists recent ledger entries
// GET /api/v1/transactions?accountId=&limit=
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	var accountID *uuid.UUID
	if raw := c.Query("accountId"); raw != "" {
		id, err := utils.ParseID(raw)
		if err != nil {
			response.Error(c, domainerrors.InvalidArgument("Invalid account ID"))
			return
		}
		accountID = &id
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	items, err := h.transactions.ListTransactions(c.Request.Context(), middleware.GetCaller(c), accountID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": items})
}

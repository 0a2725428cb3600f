package handlers

import (
	"net/http"
	"strconv"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/interfaces/http/middleware"
	"bank-ledger.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loans LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loans LoanService) *LoanHandler {
	return &LoanHandler{loans: loans}
}

// CreateLoan originates a loan
// POST /api/v1/loans
func (h *LoanHandler) CreateLoan(c *gin.Context) {
	var input entities.CreateLoanInput
	if !bindJSON(c, &input) {
		return
	}
	loan, err := h.loans.CreateLoan(c.Request.Context(), middleware.GetCaller(c), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"loan": loan})
}

// ListLoans lists loans visible to the caller
// GET /api/v1/loans
func (h *LoanHandler) ListLoans(c *gin.Context) {
	items, meta, err := h.loans.ListLoans(c.Request.Context(), middleware.GetCaller(c), paginationFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, http.StatusOK, items, meta)
}

// QuoteLoan computes an amortization schedule
// GET /api/v1/loans/quote?amount=&interest=&term=
func (h *LoanHandler) QuoteLoan(c *gin.Context) {
	amount, err := decimal.NewFromString(c.Query("amount"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("Invalid amount"))
		return
	}
	interest, err := decimal.NewFromString(c.Query("interest"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("Invalid interest"))
		return
	}
	term, err := strconv.Atoi(c.Query("term"))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("Invalid term"))
		return
	}

	quote, err := h.loans.QuoteLoan(amount, interest, term)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"amortization": quote})
}

// GetLoan gets a loan with payments and totals
// GET /api/v1/loans/:id
func (h *LoanHandler) GetLoan(c *gin.Context) {
	id, ok := parsePathID(c, "id", "loan")
	if !ok {
		return
	}
	loan, err := h.loans.GetLoan(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"loan": loan})
}

// UpdateLoanStatus changes a loan status
// PATCH /api/v1/loans/:id/status
func (h *LoanHandler) UpdateLoanStatus(c *gin.Context) {
	id, ok := parsePathID(c, "id", "loan")
	if !ok {
		return
	}
	var input entities.UpdateLoanStatusInput
	if !bindJSON(c, &input) {
		return
	}
	loan, err := h.loans.SetLoanStatus(c.Request.Context(), middleware.GetCaller(c), id, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"loan": loan})
}

// ListLoanPayments lists the payments of a loan
// GET /api/v1/loans/:id/payments
func (h *LoanHandler) ListLoanPayments(c *gin.Context) {
	id, ok := parsePathID(c, "id", "loan")
	if !ok {
		return
	}
	payments, err := h.loans.ListLoanPayments(c.Request.Context(), middleware.GetCaller(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"items": payments})
}

// CreateLoanPayment applies a repayment
// POST /api/v1/loans/:id/payments
func (h *LoanHandler) CreateLoanPayment(c *gin.Context) {
	id, ok := parsePathID(c, "id", "loan")
	if !ok {
		return
	}
	var input entities.LoanPaymentInput
	if !bindJSON(c, &input) {
		return
	}
	payment, err := h.loans.ApplyLoanPayment(c.Request.Context(), middleware.GetCaller(c), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": payment})
}

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bank-ledger.backend/internal/domain/entities"
	"bank-ledger.backend/internal/interfaces/http/middleware"
	"bank-ledger.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var testCaller = &entities.Caller{UserID: "user_1", Role: entities.UserRoleCustomer}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CallerKey, testCaller)
		c.Next()
	})
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type identityStub struct {
	me  *entities.MeResponse
	err error
}

func (s *identityStub) Me(context.Context, *entities.Caller) (*entities.MeResponse, error) {
	return s.me, s.err
}

type customerStub struct {
	customer *entities.Customer
	list     []*entities.Customer
	meta     utils.PaginationMeta
	err      error

	gotID    uuid.UUID
	gotInput *entities.CustomerProfileInput
	gotPage  utils.PaginationParams
}

func (s *customerStub) CreateCustomer(_ context.Context, _ *entities.Caller, input *entities.CustomerProfileInput) (*entities.Customer, error) {
	s.gotInput = input
	return s.customer, s.err
}

func (s *customerStub) GetCustomer(_ context.Context, _ *entities.Caller, id uuid.UUID) (*entities.Customer, error) {
	s.gotID = id
	return s.customer, s.err
}

func (s *customerStub) UpdateCustomer(_ context.Context, _ *entities.Caller, id uuid.UUID, input *entities.CustomerProfileInput) (*entities.Customer, error) {
	s.gotID = id
	s.gotInput = input
	return s.customer, s.err
}

func (s *customerStub) ListCustomers(_ context.Context, _ *entities.Caller, page utils.PaginationParams) ([]*entities.Customer, utils.PaginationMeta, error) {
	s.gotPage = page
	return s.list, s.meta, s.err
}

type accountStub struct {
	view *entities.AccountView
	list []*entities.AccountView
	meta utils.PaginationMeta
	err  error

	gotID     uuid.UUID
	gotInput  *entities.CreateAccountInput
	gotStatus entities.AccountStatus
}

func (s *accountStub) CreateAccount(_ context.Context, _ *entities.Caller, input *entities.CreateAccountInput) (*entities.AccountView, error) {
	s.gotInput = input
	return s.view, s.err
}

func (s *accountStub) GetAccount(_ context.Context, _ *entities.Caller, id uuid.UUID) (*entities.AccountView, error) {
	s.gotID = id
	return s.view, s.err
}

func (s *accountStub) ListAccounts(context.Context, *entities.Caller, utils.PaginationParams) ([]*entities.AccountView, utils.PaginationMeta, error) {
	return s.list, s.meta, s.err
}

func (s *accountStub) SetAccountStatus(_ context.Context, _ *entities.Caller, id uuid.UUID, status entities.AccountStatus) (*entities.AccountView, error) {
	s.gotID = id
	s.gotStatus = status
	return s.view, s.err
}

type transactionStub struct {
	tx    *entities.Transaction
	views []*entities.TransactionView
	err   error

	gotInput     *entities.CreateTransactionInput
	gotAccountID *uuid.UUID
	gotLimit     int
}

func (s *transactionStub) ApplyTransaction(_ context.Context, _ *entities.Caller, input *entities.CreateTransactionInput) (*entities.Transaction, error) {
	s.gotInput = input
	return s.tx, s.err
}

func (s *transactionStub) ListTransactions(_ context.Context, _ *entities.Caller, accountID *uuid.UUID, limit int) ([]*entities.TransactionView, error) {
	s.gotAccountID = accountID
	s.gotLimit = limit
	return s.views, s.err
}

type loanStub struct {
	quote    *entities.Amortization
	view     *entities.LoanView
	list     []*entities.Loan
	meta     utils.PaginationMeta
	payment  *entities.LoanPayment
	payments []*entities.LoanPayment
	err      error

	gotID       uuid.UUID
	gotStatus   entities.LoanStatus
	gotAmount   decimal.Decimal
	gotInterest decimal.Decimal
	gotTerm     int
	gotPayment  *entities.LoanPaymentInput
}

func (s *loanStub) QuoteLoan(amount, interest decimal.Decimal, term int) (*entities.Amortization, error) {
	s.gotAmount, s.gotInterest, s.gotTerm = amount, interest, term
	return s.quote, s.err
}

func (s *loanStub) CreateLoan(_ context.Context, _ *entities.Caller, input *entities.CreateLoanInput) (*entities.LoanView, error) {
	s.gotAmount = input.Amount
	return s.view, s.err
}

func (s *loanStub) GetLoan(_ context.Context, _ *entities.Caller, id uuid.UUID) (*entities.LoanView, error) {
	s.gotID = id
	return s.view, s.err
}

func (s *loanStub) ListLoans(context.Context, *entities.Caller, utils.PaginationParams) ([]*entities.Loan, utils.PaginationMeta, error) {
	return s.list, s.meta, s.err
}

func (s *loanStub) SetLoanStatus(_ context.Context, _ *entities.Caller, id uuid.UUID, status entities.LoanStatus) (*entities.LoanView, error) {
	s.gotID = id
	s.gotStatus = status
	return s.view, s.err
}

func (s *loanStub) ApplyLoanPayment(_ context.Context, _ *entities.Caller, loanID uuid.UUID, input *entities.LoanPaymentInput) (*entities.LoanPayment, error) {
	s.gotID = loanID
	s.gotPayment = input
	return s.payment, s.err
}

func (s *loanStub) ListLoanPayments(_ context.Context, _ *entities.Caller, loanID uuid.UUID) ([]*entities.LoanPayment, error) {
	s.gotID = loanID
	return s.payments, s.err
}

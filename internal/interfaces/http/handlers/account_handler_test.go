package handlers

import (
	"net/http"
	"testing"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func accountRouter(stub *accountStub) http.Handler {
	h := NewAccountHandler(stub)
	r := newTestRouter()
	r.POST("/accounts", h.CreateAccount)
	r.GET("/accounts", h.ListAccounts)
	r.GET("/accounts/:id", h.GetAccount)
	r.PATCH("/accounts/:id/status", h.UpdateAccountStatus)
	return r
}

func TestAccountHandler_CreateAccount(t *testing.T) {
	customerID := uuid.New()
	stub := &accountStub{view: entities.NewAccountView(&entities.Account{
		ID:      uuid.New(),
		Type:    entities.AccountTypeSavings,
		Balance: decimal.NewFromInt(1000),
		Status:  entities.AccountStatusActive,
	})}

	w := doJSON(t, accountRouter(stub), http.MethodPost, "/accounts", map[string]string{
		"customerId":     customerID.String(),
		"type":           "SAVINGS",
		"initialDeposit": "1000.50",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "ACTIVE", decode(t, w)["account"].(map[string]interface{})["status"])
	assert.Equal(t, customerID, stub.gotInput.CustomerID)
	assert.True(t, decimal.RequireFromString("1000.50").Equal(stub.gotInput.InitialDeposit))
}

func TestAccountHandler_CreateAccount_MissingCustomer(t *testing.T) {
	w := doJSON(t, accountRouter(&accountStub{}), http.MethodPost, "/accounts", map[string]string{
		"type":           "SAVINGS",
		"initialDeposit": "1000",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAccountHandler_CreateAccount_BelowMinimum(t *testing.T) {
	stub := &accountStub{err: domainerrors.InvalidArgument("Initial deposit must be at least 500")}
	w := doJSON(t, accountRouter(stub), http.MethodPost, "/accounts", map[string]string{
		"customerId":     uuid.NewString(),
		"type":           "SAVINGS",
		"initialDeposit": "10",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Initial deposit must be at least 500", decode(t, w)["message"])
}

func TestAccountHandler_ListAccounts(t *testing.T) {
	stub := &accountStub{list: []*entities.AccountView{
		entities.NewAccountView((&entities.Account{ID: uuid.New(), AccountNumber: "ACC123456"}).Masked()),
	}}
	w := doJSON(t, accountRouter(stub), http.MethodGet, "/accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	items := decode(t, w)["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, "AC*****56", items[0].(map[string]interface{})["accountNumber"])
}

func TestAccountHandler_GetAccount(t *testing.T) {
	id := uuid.New()
	stub := &accountStub{view: entities.NewAccountView(&entities.Account{ID: id})}

	w := doJSON(t, accountRouter(stub), http.MethodGet, "/accounts/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, stub.gotID)

	w = doJSON(t, accountRouter(stub), http.MethodGet, "/accounts/123", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	stub.err = domainerrors.NotFound("Account not found")
	w = doJSON(t, accountRouter(stub), http.MethodGet, "/accounts/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccountHandler_UpdateAccountStatus(t *testing.T) {
	id := uuid.New()
	stub := &accountStub{view: entities.NewAccountView(&entities.Account{ID: id, Status: entities.AccountStatusSuspended})}

	w := doJSON(t, accountRouter(stub), http.MethodPatch, "/accounts/"+id.String()+"/status", map[string]string{"status": "SUSPENDED"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, entities.AccountStatusSuspended, stub.gotStatus)

	stub.err = domainerrors.InvalidState("Cannot change account status from CLOSED to ACTIVE")
	w = doJSON(t, accountRouter(stub), http.MethodPatch, "/accounts/"+id.String()+"/status", map[string]string{"status": "ACTIVE"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, accountRouter(stub), http.MethodPatch, "/accounts/"+id.String()+"/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

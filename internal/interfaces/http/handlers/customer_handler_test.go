package handlers

import (
	"net/http"
	"testing"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerRouter(stub *customerStub) http.Handler {
	h := NewCustomerHandler(stub)
	r := newTestRouter()
	r.POST("/customers", h.CreateCustomer)
	r.GET("/customers", h.ListCustomers)
	r.GET("/customers/:id", h.GetCustomer)
	r.PATCH("/customers/:id", h.UpdateCustomer)
	return r
}

func TestCustomerHandler_CreateCustomer(t *testing.T) {
	id := uuid.New()
	stub := &customerStub{customer: &entities.Customer{ID: id, UserID: "user_1"}}

	w := doJSON(t, customerRouter(stub), http.MethodPost, "/customers", map[string]string{"city": "Porto"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, id.String(), decode(t, w)["customer"].(map[string]interface{})["id"])
	require.NotNil(t, stub.gotInput.City)
	assert.Equal(t, "Porto", *stub.gotInput.City)
}

func TestCustomerHandler_CreateCustomer_BadJSON(t *testing.T) {
	w := doJSON(t, customerRouter(&customerStub{}), http.MethodPost, "/customers", "{")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandler_CreateCustomer_Conflict(t *testing.T) {
	stub := &customerStub{err: domainerrors.Conflict("Customer profile already exists")}
	w := doJSON(t, customerRouter(stub), http.MethodPost, "/customers", map[string]string{})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Customer profile already exists", decode(t, w)["message"])
}

func TestCustomerHandler_ListCustomers(t *testing.T) {
	stub := &customerStub{
		list: []*entities.Customer{{ID: uuid.New()}},
		meta: utils.CalculateMeta(1, 2, 5),
	}
	w := doJSON(t, customerRouter(stub), http.MethodGet, "/customers?page=2&limit=5", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Len(t, body["items"], 1)
	assert.Contains(t, body, "meta")
	assert.Equal(t, 2, stub.gotPage.Page)
	assert.Equal(t, 5, stub.gotPage.Limit)
}

func TestCustomerHandler_ListCustomers_Forbidden(t *testing.T) {
	stub := &customerStub{err: domainerrors.Forbidden("Forbidden")}
	w := doJSON(t, customerRouter(stub), http.MethodGet, "/customers", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCustomerHandler_GetCustomer(t *testing.T) {
	id := uuid.New()
	stub := &customerStub{customer: &entities.Customer{ID: id}}

	w := doJSON(t, customerRouter(stub), http.MethodGet, "/customers/"+id.String(), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, stub.gotID)

	w = doJSON(t, customerRouter(stub), http.MethodGet, "/customers/not-a-uuid", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid customer ID", decode(t, w)["message"])
}

func TestCustomerHandler_UpdateCustomer(t *testing.T) {
	id := uuid.New()
	stub := &customerStub{customer: &entities.Customer{ID: id}}

	w := doJSON(t, customerRouter(stub), http.MethodPatch, "/customers/"+id.String(), map[string]string{"phone": "555"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, id, stub.gotID)
	require.NotNil(t, stub.gotInput.Phone)
	assert.Equal(t, "555", *stub.gotInput.Phone)

	stub.err = domainerrors.NotFound("Customer not found")
	w = doJSON(t, customerRouter(stub), http.MethodPatch, "/customers/"+id.String(), map[string]string{})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

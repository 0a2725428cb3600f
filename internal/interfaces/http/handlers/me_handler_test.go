package handlers

import (
	"errors"
	"net/http"
	"testing"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeHandler_Me(t *testing.T) {
	stub := &identityStub{me: &entities.MeResponse{User: &entities.User{ID: "user_1", Role: entities.UserRoleCustomer}}}
	r := newTestRouter()
	r.GET("/me", NewMeHandler(stub).Me)

	w := doJSON(t, r, http.MethodGet, "/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "user_1", user["id"])
}

func TestMeHandler_Errors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown user", domainerrors.Unauthorized("Unknown user"), http.StatusUnauthorized},
		{"store failure", errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter()
			r.GET("/me", NewMeHandler(&identityStub{err: tc.err}).Me)
			w := doJSON(t, r, http.MethodGet, "/me", nil)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

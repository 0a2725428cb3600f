package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bank-ledger.backend/internal/domain/entities"
	"bank-ledger.backend/pkg/jwt"
	"github.com/gin-gonic/gin"
)

type tokenValidatorStub struct {
	claims *jwt.Claims
	err    error
}

func (s tokenValidatorStub) ValidateToken(string) (*jwt.Claims, error) {
	return s.claims, s.err
}

type callerResolverStub struct {
	caller *entities.Caller
	err    error
	seen   entities.Identity
}

func (s *callerResolverStub) ResolveCaller(_ context.Context, identity entities.Identity) (*entities.Caller, error) {
	s.seen = identity
	return s.caller, s.err
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func serve(t *testing.T, r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

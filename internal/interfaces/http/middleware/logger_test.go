package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerMiddleware_LogsAndCountsByRoute(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	prev := logger.GetLogger()
	logger.SetLogger(zap.New(core))
	t.Cleanup(func() { logger.SetLogger(prev) })

	r := newTestRouter()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	r.GET("/api/v1/accounts/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts/abc?x=1", nil)
	req.Header.Set(RequestIDHeader, "req-log")
	serve(t, r, req)

	entries := logs.FilterMessage("HTTP Request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/v1/accounts/abc?x=1", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Equal(t, "req-log", fields["request_id"])

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/v1/accounts/:id",status="418"}`)
}

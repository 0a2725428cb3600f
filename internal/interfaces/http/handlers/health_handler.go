package handlers

import (
	"context"
	"net/http"
	"time"

	"bank-ledger.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger checks a backing store
type Pinger func(ctx context.Context) error

// HealthHandler reports service liveness and database reachability
type HealthHandler struct {
	ping    Pinger
	timeout time.Duration
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(ping Pinger) *HealthHandler {
	return &HealthHandler{ping: ping, timeout: 2 * time.Second}
}

// Health pings the database
// GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.ping(ctx); err != nil {
		logger.Error(ctx, "Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": "down"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

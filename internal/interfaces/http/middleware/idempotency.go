package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bank-ledger.backend/internal/interfaces/http/response"
	"bank-ledger.backend/pkg/logger"
	"bank-ledger.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	IdempotencyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a replayed response
	IdempotencyReplayHeader = "X-Idempotency-Hit"
	// LockDuration is the time we hold the lock while processing
	LockDuration = 30 * time.Second
	// RetentionDuration is how long we keep the response
	RetentionDuration = 24 * time.Hour

	processingMarker = "processing"
)

var (
	redisEnabled = redis.Enabled
	redisGet     = redis.Get
	redisSet     = redis.Set
	redisSetNX   = redis.SetNX
	redisDel     = redis.Del
)

type cachedResponse struct {
	Status int    `json:"status"`
	Body   string `json:"body"`
}

type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware replays the first successful response for a repeated
// Idempotency-Key from the same caller. Without Redis requests are processed normally.
func IdempotencyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(IdempotencyHeader)
		if key == "" || !redisEnabled() {
			c.Next()
			return
		}

		storageKey := idempotencyStorageKey(c, key)
		ctx := c.Request.Context()

		acquired, err := redisSetNX(ctx, storageKey, processingMarker, LockDuration)
		if err != nil {
			logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !acquired {
			replay(c, storageKey)
			return
		}

		w := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = w

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			payload, _ := json.Marshal(cachedResponse{Status: status, Body: w.body.String()})
			if err := redisSet(ctx, storageKey, string(payload), RetentionDuration); err != nil {
				logger.Warn(ctx, "Failed to store idempotent response", zap.Error(err))
			}
			return
		}
		// allow a retry after a failed attempt
		_ = redisDel(ctx, storageKey)
	}
}

// idempotencyStorageKey scopes a client key to the caller, the route pattern
// and its path parameters so one key cannot replay across endpoints.
func idempotencyStorageKey(c *gin.Context, key string) string {
	callerID := "anonymous"
	if caller := GetCaller(c); caller != nil {
		callerID = caller.UserID
	}
	parts := []string{"idempotency", callerID, c.Request.Method, c.FullPath()}
	for _, p := range c.Params {
		parts = append(parts, p.Value)
	}
	return redis.Key(append(parts, key)...)
}

func replay(c *gin.Context, storageKey string) {
	ctx := c.Request.Context()
	val, err := redisGet(ctx, storageKey)
	switch {
	case errors.Is(err, redis.Nil):
		// released between SetNX and Get
		abortInProgress(c)
		return
	case err != nil:
		logger.Warn(ctx, "Idempotency store unavailable", zap.Error(err))
		c.Next()
		return
	case val == processingMarker:
		abortInProgress(c)
		return
	}

	var cached cachedResponse
	if err := json.Unmarshal([]byte(val), &cached); err != nil {
		logger.Warn(ctx, "Discarding unreadable idempotent response", zap.Error(err))
		_ = redisDel(ctx, storageKey)
		abortInProgress(c)
		return
	}
	c.Header(IdempotencyReplayHeader, "true")
	c.Data(cached.Status, "application/json; charset=utf-8", []byte(cached.Body))
	c.Abort()
}

func abortInProgress(c *gin.Context) {
	response.ErrorWithError(c, http.StatusConflict, "CONFLICT", "Request already in progress")
	c.Abort()
}

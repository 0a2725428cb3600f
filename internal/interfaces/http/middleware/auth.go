package middleware

import (
	"context"
	"errors"
	"strings"

	"bank-ledger.backend/internal/domain/entities"
	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/interfaces/http/response"
	"bank-ledger.backend/pkg/jwt"
	"bank-ledger.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// CallerKey is the context key for the resolved caller
	CallerKey = "caller"
)

// TokenValidator verifies bearer tokens
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// CallerResolver maps a verified identity to a local caller
type CallerResolver interface {
	ResolveCaller(ctx context.Context, identity entities.Identity) (*entities.Caller, error)
}

// AuthMiddleware validates the bearer token and resolves the caller
func AuthMiddleware(tokens TokenValidator, callers CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Debug(c.Request.Context(), "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		caller, err := callers.ResolveCaller(c.Request.Context(), entities.Identity{
			Subject:   claims.Subject,
			Email:     claims.Email,
			FirstName: claims.FirstName,
			LastName:  claims.LastName,
		})
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(CallerKey, caller)
		ctx := context.WithValue(c.Request.Context(), logger.CallerIDKey, caller.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	response.Error(c, domainerrors.Unauthorized(message))
	c.Abort()
}

// GetCaller gets the resolved caller from context
func GetCaller(c *gin.Context) *entities.Caller {
	v, exists := c.Get(CallerKey)
	if !exists {
		return nil
	}
	caller, _ := v.(*entities.Caller)
	return caller
}

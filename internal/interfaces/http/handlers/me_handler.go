package handlers

import (
	"net/http"

	"bank-ledger.backend/internal/interfaces/http/middleware"
	"bank-ledger.backend/internal/interfaces/http/response"
	"github.com/gin-gonic/gin"
)

// MeHandler handles the current-user endpoint
type MeHandler struct {
	identity IdentityService
}

// NewMeHandler creates a new me handler
func NewMeHandler(identity IdentityService) *MeHandler {
	return &MeHandler{identity: identity}
}

// Me returns the resolved caller
// GET /api/v1/me
func (h *MeHandler) Me(c *gin.Context) {
	me, err := h.identity.Me(c.Request.Context(), middleware.GetCaller(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

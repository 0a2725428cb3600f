package handlers

import (
	"strconv"

	domainerrors "bank-ledger.backend/internal/domain/errors"
	"bank-ledger.backend/internal/interfaces/http/response"
	"bank-ledger.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// parsePathID reads a UUID path parameter, writing a 400 on failure
func parsePathID(c *gin.Context, param, what string) (uuid.UUID, bool) {
	id, err := utils.ParseID(c.Param(param))
	if err != nil {
		response.Error(c, domainerrors.InvalidArgument("Invalid "+what+" ID"))
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the request body, writing a 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.InvalidArgument(err.Error()))
		return false
	}
	return true
}

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit)
}

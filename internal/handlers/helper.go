package handlers

import (
	"net/http"
	"strconv"

	"github.com/SAP-F-2025/career-orientation-service/internal/auth"
	"github.com/SAP-F-2025/career-orientation-service/internal/scoring"
	"github.com/gin-gonic/gin"
)

// parseIDParam reads a positive numeric path parameter. On failure it writes
// a 400 response and returns 0.
func parseIDParam(c *gin.Context, param string) uint {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil || id == 0 {
		details := "must be a positive integer"
		if err != nil {
			details = err.Error()
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: details,
			Code:    "BAD_REQUEST",
		})
		return 0
	}
	return uint(id)
}

// parseModuleParam reads the module number; the range is checked by the service.
func parseModuleParam(c *gin.Context) (scoring.Module, bool) {
	n, err := strconv.Atoi(c.Param("module"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid module",
			Details: err.Error(),
			Code:    "BAD_REQUEST",
		})
		return 0, false
	}
	return scoring.Module(n), true
}

func parseIntQuery(c *gin.Context, param string, defaultValue int) int {
	valueStr := c.Query(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// requireUser returns the authenticated caller or writes a 401.
func requireUser(c *gin.Context) (uint, bool) {
	userID, _, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
			Code:    "UNAUTHORIZED",
		})
		return 0, false
	}
	return userID, true
}

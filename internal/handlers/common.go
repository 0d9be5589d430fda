package handlers

import (
	"errors"
	"net/http"

	apperrors "github.com/SAP-F-2025/career-orientation-service/internal/errors"
	"github.com/SAP-F-2025/career-orientation-service/internal/services"
	"github.com/SAP-F-2025/career-orientation-service/internal/utils"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// BaseHandler provides common logging and response helpers for all handlers
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{
		logger: logger,
	}
}

// requestLogger prefers the request-scoped logger set by ContextLogger.
func (h *BaseHandler) requestLogger(c *gin.Context) utils.Logger {
	if _, exists := c.Get("logger"); exists {
		return utils.GetLoggerFromContext(c)
	}
	if userID, exists := c.Get("user_id"); exists {
		return h.logger.With("user_id", userID, "method", c.Request.Method, "path", c.Request.URL.Path)
	}
	return h.logger.With("method", c.Request.Method, "path", c.Request.URL.Path)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Info(message, additionalFields...)
}

// LogError logs error details with context information
func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.requestLogger(c).LogError(err, message, additionalFields...)
}

// LogWarn logs warning messages with context
func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.requestLogger(c).Warn(message, additionalFields...)
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
		Code:    errorCode(statusCode),
	}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// RespondWithSuccess sends a consistent success response
func (h *BaseHandler) RespondWithSuccess(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, SuccessResponse{
		Message: message,
		Data:    data,
	})
}

// handleServiceError maps service errors to HTTP responses
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors apperrors.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var businessRuleError *services.BusinessRuleError
	if errors.As(err, &businessRuleError) {
		h.RespondWithError(c, http.StatusUnprocessableEntity, businessRuleError.Message, err, map[string]interface{}{
			"rule":    businessRuleError.Rule,
			"context": businessRuleError.Context,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		h.RespondWithError(c, http.StatusForbidden, "Access denied", err, map[string]interface{}{
			"resource": permissionError.Resource,
			"action":   permissionError.Action,
			"reason":   permissionError.Reason,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrAttemptNotFound):
		h.RespondWithError(c, http.StatusNotFound, "Test attempt not found", err)
	case errors.Is(err, services.ErrUserNotFound):
		h.RespondWithError(c, http.StatusNotFound, "User not found", err)
	case errors.Is(err, services.ErrAttemptCompleted):
		h.RespondWithError(c, http.StatusConflict, "Test is already completed", err)
	case errors.Is(err, services.ErrAttemptNotCompleted):
		h.RespondWithError(c, http.StatusConflict, "Test is not completed yet", err)
	case errors.Is(err, services.ErrRecommendationInProgress):
		h.RespondWithError(c, http.StatusConflict, "Recommendation is already being generated", err)
	case errors.Is(err, services.ErrEmailTaken):
		h.RespondWithError(c, http.StatusConflict, "Email is already registered", err)
	case errors.Is(err, services.ErrUnknownModule):
		h.RespondWithError(c, http.StatusBadRequest, "Unknown test module", err)
	case errors.Is(err, services.ErrNoAnswers):
		h.RespondWithError(c, http.StatusBadRequest, "No answers were submitted", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		h.RespondWithError(c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, services.ErrAccessDenied):
		h.RespondWithError(c, http.StatusForbidden, "Test access is not active", err)
	// Generic errors
	case services.IsNotFound(err):
		h.RespondWithError(c, http.StatusNotFound, "Resource not found", err)
	case services.IsUnauthorized(err):
		h.RespondWithError(c, http.StatusUnauthorized, "Unauthorized access", err)
	case services.IsForbidden(err):
		h.RespondWithError(c, http.StatusForbidden, "Forbidden - insufficient permissions", err)
	case services.IsConflict(err):
		h.RespondWithError(c, http.StatusConflict, "Resource conflict", err)
	case services.IsValidation(err):
		h.RespondWithError(c, http.StatusBadRequest, "Bad request", err)
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusUnprocessableEntity:
		return "BUSINESS_RULE"
	}
	return "INTERNAL"
}

// HealthCheck reports liveness
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "career-orientation-service",
	})
}

package services

import (
	"errors"
	"fmt"

	apperrors "github.com/SAP-F-2025/career-orientation-service/internal/errors"
	"github.com/SAP-F-2025/career-orientation-service/internal/repositories"
)

// ===== SERVICE ERROR DEFINITIONS =====

// Generic errors
var (
	ErrNotFound         = errors.New("resource not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("forbidden")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")
	ErrBadRequest       = errors.New("bad request")
	ErrConflict         = errors.New("resource conflict")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccessDenied       = errors.New("test access is not paid or has been revoked")
)

// Attempt errors
var (
	ErrAttemptNotFound     = errors.New("test attempt not found")
	ErrAttemptCompleted    = errors.New("test attempt is already completed")
	ErrAttemptNotCompleted = errors.New("test attempt is not completed")
	ErrUnknownModule       = errors.New("unknown test module")
	ErrNoAnswers           = errors.New("no answers were submitted")
)

// Recommendation errors
var (
	ErrRecommendationInProgress = errors.New("recommendation is already being generated")
	ErrRecommendationSuperseded = errors.New("recommendation claim was lost to a reset or rescore")
)

// ===== CUSTOM ERROR TYPES =====

// BusinessRuleError represents a business rule violation
type BusinessRuleError struct {
	Rule    string                 `json:"rule"`
	Message string                 `json:"message"`
	Context map[string]interface{} `json:"context,omitempty"`
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("business rule violation [%s]: %s", e.Rule, e.Message)
}

func NewBusinessRuleError(rule, message string, context map[string]interface{}) *BusinessRuleError {
	return &BusinessRuleError{
		Rule:    rule,
		Message: message,
		Context: context,
	}
}

// PermissionError represents a permission denied error
type PermissionError struct {
	UserID   uint   `json:"user_id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Reason   string `json:"reason"`
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("permission denied: user %d cannot %s %s: %s", e.UserID, e.Action, e.Resource, e.Reason)
}

func NewPermissionError(userID uint, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:   userID,
		Resource: resource,
		Action:   action,
		Reason:   reason,
	}
}

// ===== ERROR CLASSIFICATION =====

// IsNotFound checks if error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAttemptNotFound) ||
		repositories.IsNotFoundError(err)
}

// IsUnauthorized checks if error is an authentication failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrInvalidCredentials)
}

// IsForbidden checks if error is a permission error
func IsForbidden(err error) bool {
	var permErr *PermissionError
	return errors.As(err, &permErr) ||
		errors.Is(err, ErrForbidden) ||
		errors.Is(err, ErrAccessDenied)
}

// IsValidation checks if error is a validation error
func IsValidation(err error) bool {
	var verrs apperrors.ValidationErrors
	var verr *apperrors.ValidationError
	return errors.As(err, &verrs) ||
		errors.As(err, &verr) ||
		errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrBadRequest) ||
		errors.Is(err, ErrUnknownModule) ||
		errors.Is(err, ErrNoAnswers)
}

// IsBusinessRule checks if error is a business rule violation
func IsBusinessRule(err error) bool {
	var bizErr *BusinessRuleError
	return errors.As(err, &bizErr)
}

// IsConflict checks if error is a conflict error
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrAttemptCompleted) ||
		errors.Is(err, ErrAttemptNotCompleted) ||
		errors.Is(err, ErrRecommendationInProgress) ||
		errors.Is(err, ErrRecommendationSuperseded) ||
		repositories.IsDuplicateError(err)
}

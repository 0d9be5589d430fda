package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	apperrors "github.com/SAP-F-2025/career-orientation-service/internal/errors"
	"github.com/SAP-F-2025/career-orientation-service/internal/utils"
)

// ServiceLogger provides structured logging for service layer operations
type ServiceLogger struct {
	logger *slog.Logger
	config LogConfig
}

type LogConfig struct {
	Service     string
	Component   string
	EnableDebug bool
}

func NewServiceLogger(logger *slog.Logger, config LogConfig) *ServiceLogger {
	return &ServiceLogger{
		logger: logger.With("service", config.Service, "component", config.Component),
		config: config,
	}
}

// Logger returns the underlying slog logger with the service attributes.
func (l *ServiceLogger) Logger() *slog.Logger {
	return l.logger
}

// ===== OPERATION LOGGING =====

// operationStatus classifies err for the "status" attribute and picks a level.
func operationStatus(err error) (slog.Level, string) {
	switch {
	case err == nil:
		return slog.LevelInfo, "success"
	case IsValidation(err) || IsBusinessRule(err):
		return slog.LevelWarn, "validation_error"
	case IsUnauthorized(err) || IsForbidden(err):
		return slog.LevelWarn, "unauthorized"
	case IsNotFound(err):
		return slog.LevelInfo, "not_found"
	case IsConflict(err):
		return slog.LevelInfo, "conflict"
	default:
		return slog.LevelError, "error"
	}
}

func (l *ServiceLogger) LogOperation(ctx context.Context, operation string, userID uint, resourceID uint, resourceType string, duration time.Duration, err error) {
	level, status := operationStatus(err)

	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Uint64("user_id", uint64(userID)),
		slog.Uint64("resource_id", uint64(resourceID)),
		slog.String("resource_type", resourceType),
		slog.String("status", status),
		slog.Duration("duration", duration),
	}

	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))

		var verrs apperrors.ValidationErrors
		var bizErr *BusinessRuleError
		var permErr *PermissionError
		switch {
		case errors.As(err, &verrs):
			attrs = append(attrs, slog.Int("validation_errors_count", len(verrs)))
		case errors.As(err, &bizErr):
			attrs = append(attrs, slog.String("business_rule", bizErr.Rule))
		case errors.As(err, &permErr):
			attrs = append(attrs, slog.String("permission_action", permErr.Action))
		}
	}

	if requestID := utils.RequestIDFromContext(ctx); requestID != "" {
		attrs = append(attrs, slog.String("request_id", requestID))
	}

	// Caller information for unexpected failures only
	if level == slog.LevelError {
		if pc, file, line, ok := runtime.Caller(2); ok {
			if fn := runtime.FuncForPC(pc); fn != nil {
				attrs = append(attrs,
					slog.String("caller_func", fn.Name()),
					slog.String("caller_file", file),
					slog.Int("caller_line", line),
				)
			}
		}
	}

	l.logger.LogAttrs(ctx, level, fmt.Sprintf("%s operation %s", operation, status), attrs...)
}

func (l *ServiceLogger) LogValidationError(ctx context.Context, operation string, userID uint, validationErrors apperrors.ValidationErrors) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Uint64("user_id", uint64(userID)),
		slog.Int("error_count", len(validationErrors)),
	}

	for i, err := range validationErrors {
		if i == 5 {
			break
		}
		attrs = append(attrs, slog.Group(fmt.Sprintf("error_%d", i+1),
			slog.String("field", err.Field),
			slog.String("message", err.Message),
		))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Validation failed", attrs...)
}

func (l *ServiceLogger) LogBusinessRuleViolation(ctx context.Context, operation string, userID uint, rule *BusinessRuleError) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.Uint64("user_id", uint64(userID)),
		slog.String("rule", rule.Rule),
		slog.String("message", rule.Message),
	}

	for key, value := range rule.Context {
		attrs = append(attrs, slog.Any("context_"+key, value))
	}

	l.logger.LogAttrs(ctx, slog.LevelWarn, "Business rule violation", attrs...)
}

func (l *ServiceLogger) LogPermissionDenied(ctx context.Context, operation string, permError *PermissionError) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, "Permission denied",
		slog.String("operation", operation),
		slog.Uint64("user_id", uint64(permError.UserID)),
		slog.String("resource_type", permError.Resource),
		slog.String("action", permError.Action),
		slog.String("reason", permError.Reason),
	)
}

// ===== AUDIT LOGGING =====

func (l *ServiceLogger) LogAuditEvent(ctx context.Context, event AuditEvent) {
	attrs := []slog.Attr{
		slog.String("event_type", string(event.Type)),
		slog.Uint64("user_id", uint64(event.UserID)),
		slog.Uint64("resource_id", uint64(event.ResourceID)),
		slog.String("resource_type", event.ResourceType),
		slog.String("action", event.Action),
		slog.Time("timestamp", event.Timestamp),
	}

	if event.OldValue != nil {
		attrs = append(attrs, slog.Any("old_value", event.OldValue))
	}
	if event.NewValue != nil {
		attrs = append(attrs, slog.Any("new_value", event.NewValue))
	}
	for key, value := range event.Metadata {
		attrs = append(attrs, slog.Any("meta_"+key, value))
	}
	if event.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", event.RequestID))
	}

	l.logger.LogAttrs(ctx, slog.LevelInfo, fmt.Sprintf("Audit: %s %s", event.Action, event.ResourceType), attrs...)
}

// ===== SECURITY LOGGING =====

func (l *ServiceLogger) LogSecurityEvent(ctx context.Context, event SecurityEvent) {
	level := slog.LevelWarn
	if event.Severity == SecuritySeverityHigh {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("security_event", string(event.Type)),
		slog.String("severity", string(event.Severity)),
		slog.Uint64("user_id", uint64(event.UserID)),
		slog.String("description", event.Description),
		slog.Time("timestamp", event.Timestamp),
	}
	for key, value := range event.Metadata {
		attrs = append(attrs, slog.Any("meta_"+key, value))
	}

	l.logger.LogAttrs(ctx, level, "Security: "+event.Description, attrs...)
}

// ===== STRUCTURED LOGGING TYPES =====

type AuditEventType string

const (
	AuditEventCreate AuditEventType = "create"
	AuditEventRead   AuditEventType = "read"
	AuditEventUpdate AuditEventType = "update"
	AuditEventDelete AuditEventType = "delete"
	AuditEventExport AuditEventType = "export"
)

type AuditEvent struct {
	Type         AuditEventType         `json:"type"`
	UserID       uint                   `json:"user_id"`
	ResourceID   uint                   `json:"resource_id"`
	ResourceType string                 `json:"resource_type"`
	Action       string                 `json:"action"`
	OldValue     interface{}            `json:"old_value,omitempty"`
	NewValue     interface{}            `json:"new_value,omitempty"`
	Timestamp    time.Time              `json:"timestamp"`
	RequestID    string                 `json:"request_id,omitempty"`
	Metadata     map[string]interface{} `json:"metadata,omitempty"`
}

type SecurityEventType string
type SecuritySeverity string

const (
	SecurityEventFailedLogin       SecurityEventType = "failed_login"
	SecurityEventRevokedAccessUsed SecurityEventType = "revoked_access_used"

	SecuritySeverityLow    SecuritySeverity = "low"
	SecuritySeverityMedium SecuritySeverity = "medium"
	SecuritySeverityHigh   SecuritySeverity = "high"
)

type SecurityEvent struct {
	Type        SecurityEventType      `json:"type"`
	Severity    SecuritySeverity       `json:"severity"`
	UserID      uint                   `json:"user_id"`
	Description string                 `json:"description"`
	Timestamp   time.Time              `json:"timestamp"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// ===== MIDDLEWARE AND HELPERS =====

// ContextualLogger wraps operations with automatic logging
type ContextualLogger struct {
	logger    *ServiceLogger
	operation string
	userID    uint
	startTime time.Time
	ctx       context.Context
}

func (l *ServiceLogger) WithOperation(ctx context.Context, operation string, userID uint) *ContextualLogger {
	return &ContextualLogger{
		logger:    l,
		operation: operation,
		userID:    userID,
		startTime: time.Now(),
		ctx:       ctx,
	}
}

func (cl *ContextualLogger) LogResult(resourceID uint, resourceType string, err error) {
	cl.logger.LogOperation(cl.ctx, cl.operation, cl.userID, resourceID, resourceType, time.Since(cl.startTime), err)

	if err == nil {
		return
	}
	var verrs apperrors.ValidationErrors
	var bizErr *BusinessRuleError
	var permErr *PermissionError
	switch {
	case errors.As(err, &verrs):
		cl.logger.LogValidationError(cl.ctx, cl.operation, cl.userID, verrs)
	case errors.As(err, &bizErr):
		cl.logger.LogBusinessRuleViolation(cl.ctx, cl.operation, cl.userID, bizErr)
	case errors.As(err, &permErr):
		cl.logger.LogPermissionDenied(cl.ctx, cl.operation, permErr)
	}
}

func (cl *ContextualLogger) LogAudit(eventType AuditEventType, resourceID uint, resourceType string, oldValue, newValue interface{}) {
	cl.logger.LogAuditEvent(cl.ctx, AuditEvent{
		Type:         eventType,
		UserID:       cl.userID,
		ResourceID:   resourceID,
		ResourceType: resourceType,
		Action:       cl.operation,
		OldValue:     oldValue,
		NewValue:     newValue,
		Timestamp:    time.Now(),
		RequestID:    utils.RequestIDFromContext(cl.ctx),
	})
}

func (cl *ContextualLogger) LogSecurity(eventType SecurityEventType, severity SecuritySeverity, description string, metadata map[string]interface{}) {
	cl.logger.LogSecurityEvent(cl.ctx, SecurityEvent{
		Type:        eventType,
		Severity:    severity,
		UserID:      cl.userID,
		Description: description,
		Timestamp:   time.Now(),
		Metadata:    metadata,
	})
}

// ===== ERROR FORMATTING HELPERS =====

// FormatError describes err as a map suitable for structured responses.
func FormatError(err error) map[string]interface{} {
	if err == nil {
		return nil
	}

	result := map[string]interface{}{
		"message": err.Error(),
		"type":    "unknown",
	}

	var verrs apperrors.ValidationErrors
	var bizErr *BusinessRuleError
	var permErr *PermissionError
	switch {
	case errors.As(err, &verrs):
		result["type"] = "validation"
		result["count"] = len(verrs)
		fields := make([]map[string]interface{}, len(verrs))
		for i, v := range verrs {
			fields[i] = map[string]interface{}{
				"field":   v.Field,
				"message": v.Message,
			}
		}
		result["errors"] = fields
	case errors.As(err, &bizErr):
		result["type"] = "business_rule"
		result["rule"] = bizErr.Rule
		result["context"] = bizErr.Context
	case errors.As(err, &permErr):
		result["type"] = "permission"
		result["user_id"] = permErr.UserID
		result["resource"] = permErr.Resource
		result["action"] = permErr.Action
		result["reason"] = permErr.Reason
	case IsNotFound(err):
		result["type"] = "not_found"
	case IsUnauthorized(err):
		result["type"] = "unauthorized"
	case IsForbidden(err):
		result["type"] = "forbidden"
	case IsConflict(err):
		result["type"] = "conflict"
	case IsValidation(err):
		result["type"] = "validation"
	}

	return result
}

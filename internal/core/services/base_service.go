package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/ledger_tax_app/internal/apperrors"
	"github.com/SscSPs/ledger_tax_app/internal/core/domain"
	portssvc "github.com/SscSPs/ledger_tax_app/internal/core/ports/services"
	"github.com/SscSPs/ledger_tax_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Authorizer portssvc.Authorizer
	Audit      portssvc.AuditRecorder
	// Clock returns the current time; nil means time.Now in UTC.
	Clock func() time.Time
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock's current time.
func (s *BaseService) Now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now().UTC()
}

// Authorize checks the capability before anything else happens.
// Without an authorizer every request is denied.
func (s *BaseService) Authorize(ctx context.Context, userID, orgID string, capability domain.Capability) error {
	if s.Authorizer == nil {
		s.LogError(ctx, apperrors.ErrForbidden, "No authorizer configured, denying request",
			slog.String("user_id", userID),
			slog.String("org_id", orgID),
			slog.String("capability", string(capability)))
		return fmt.Errorf("%w: no authorizer configured", apperrors.ErrForbidden)
	}
	if err := s.Authorizer.Authorize(ctx, userID, orgID, capability); err != nil {
		s.LogDebug(ctx, "Authorization denied",
			slog.String("user_id", userID),
			slog.String("org_id", orgID),
			slog.String("capability", string(capability)),
			slog.String("error", err.Error()))
		return err
	}
	return nil
}

// RecordAudit forwards a record to the audit recorder, if one is configured.
func (s *BaseService) RecordAudit(ctx context.Context, orgID, userID, action, entityType, entityID, summary string, auditCtx map[string]any) {
	if s.Audit == nil {
		return
	}
	s.Audit.Record(ctx, domain.AuditRecord{
		OrganizationID: orgID,
		Actor:          userID,
		Action:         action,
		EntityType:     entityType,
		EntityID:       entityID,
		Summary:        summary,
		Context:        auditCtx,
		RecordedAt:     s.Now(),
	})
}

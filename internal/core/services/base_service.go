package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/inventory_ledger/internal/apperrors"
	"github.com/SscSPs/inventory_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/inventory_ledger/internal/core/ports/services"
	"github.com/SscSPs/inventory_ledger/internal/middleware"
	"github.com/SscSPs/inventory_ledger/internal/platform/metrics"
	"github.com/go-playground/validator/v10"
)

const defaultLockTimeout = 3 * time.Second

// BaseService provides common functionality for all services
type BaseService struct {
	clock            domain.Clock
	location         *time.Location
	metrics          *metrics.Metrics
	audit            portssvc.AuditEmitter
	validate         *validator.Validate
	lockTimeout      time.Duration
	strictThresholds bool
}

// ServiceOption is a functional option shared by all services
type ServiceOption func(*BaseService)

// WithClock overrides the wall clock.
func WithClock(clock domain.Clock) ServiceOption {
	return func(s *BaseService) {
		s.clock = clock
	}
}

// WithLocation sets the timezone that defines "today".
func WithLocation(loc *time.Location) ServiceOption {
	return func(s *BaseService) {
		s.location = loc
	}
}

// WithMetrics adds a metrics recorder.
func WithMetrics(m *metrics.Metrics) ServiceOption {
	return func(s *BaseService) {
		s.metrics = m
	}
}

// WithAuditEmitter adds the audit collaborator.
func WithAuditEmitter(a portssvc.AuditEmitter) ServiceOption {
	return func(s *BaseService) {
		s.audit = a
	}
}

// WithLockTimeout bounds the wait for a per-product write lock.
func WithLockTimeout(d time.Duration) ServiceOption {
	return func(s *BaseService) {
		if d > 0 {
			s.lockTimeout = d
		}
	}
}

// WithStrictThresholds rejects criticalQty > maintainingQty on catalog writes.
// Off by default: such configurations are accepted and status checks critical first.
func WithStrictThresholds(strict bool) ServiceOption {
	return func(s *BaseService) {
		s.strictThresholds = strict
	}
}

func newBaseService(options ...ServiceOption) BaseService {
	base := BaseService{
		clock:            domain.SystemClock{},
		location:         time.UTC,
		validate:         validator.New(),
		lockTimeout:      defaultLockTimeout,
		strictThresholds: false,
	}
	for _, option := range options {
		option(&base)
	}
	if base.location == nil {
		base.location = time.UTC
	}
	return base
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
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

// Now returns the current instant in UTC.
func (s *BaseService) Now() time.Time {
	return s.clock.Now().UTC()
}

// Today returns the current calendar date in the configured timezone.
func (s *BaseService) Today() domain.Date {
	return domain.DateOf(s.clock.Now(), s.location)
}

// RequireAdmin fails with ErrForbidden unless actor is an admin.
func (s *BaseService) RequireAdmin(ctx context.Context, actor domain.ActingUser, action string) error {
	if actor.Role.IsAdmin() {
		return nil
	}
	s.GetLogger(ctx).Warn("Non-admin attempted catalog write",
		slog.String("user_id", actor.UserID),
		slog.String("role", string(actor.Role)),
		slog.String("action", action))
	return fmt.Errorf("%w: %s requires admin role", apperrors.ErrForbidden, action)
}

// ValidateStruct runs struct-tag validation and wraps failures as ErrValidation.
func (s *BaseService) ValidateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	return nil
}

// emit hands an event to the audit collaborator. Never fails the caller.
func (s *BaseService) emit(ctx context.Context, action domain.AuditAction, entity domain.AuditEntityType, entityID string, actor domain.ActingUser, oldValue, newValue any) {
	if s.audit == nil {
		return
	}
	s.audit.Emit(ctx, domain.AuditEvent{
		Action:     action,
		EntityType: entity,
		EntityID:   entityID,
		ActingUser: actor,
		OldValue:   oldValue,
		NewValue:   newValue,
		Timestamp:  s.Now(),
	})
}

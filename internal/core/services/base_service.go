package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/pension_management_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	UserReader portsrepo.UserReader
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

// AuthorizeRole checks that userID exists and holds the required role.
func (s *BaseService) AuthorizeRole(ctx context.Context, userID string, required domain.UserRole) error {
	if s.UserReader == nil {
		return fmt.Errorf("%w: no user directory configured", apperrors.ErrForbidden)
	}
	user, err := s.UserReader.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: unknown user", apperrors.ErrForbidden)
		}
		return fmt.Errorf("failed to load user for authorization: %w", err)
	}
	if user.Role != required {
		s.LogDebug(ctx, "Role check failed",
			slog.String("user_id", userID),
			slog.String("required_role", string(required)))
		return fmt.Errorf("%w: %s role required", apperrors.ErrForbidden, required)
	}
	return nil
}

// isExpected reports errors that are normal outcomes rather than faults worth an error log.
func isExpected(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrDuplicate) ||
		errors.Is(err, apperrors.ErrForbidden) ||
		errors.Is(err, apperrors.ErrUnauthorized)
}

package services

import (
	"context"
	"time"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
	"github.com/SscSPs/pension_management_app/internal/dto"
)

// StatementSvcFacade generates member statements
type StatementSvcFacade interface {
	// GenerateStatement builds a statement for the requested period. Statements are not stored.
	GenerateStatement(ctx context.Context, memberID string, req dto.GenerateStatementRequest, now time.Time) (*domain.Statement, error)
}

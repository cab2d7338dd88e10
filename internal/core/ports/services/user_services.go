package services

import (
	"context"
	"time"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
	"github.com/SscSPs/pension_management_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// UserAuthSvc defines operations for user authentication
type UserAuthSvc interface {
	// Register creates a new member account.
	Register(ctx context.Context, req dto.RegisterRequest, now time.Time) (*domain.User, error)

	// Login checks credentials and issues an access token.
	// Unknown email and wrong password both return apperrors.ErrUnauthorized.
	Login(ctx context.Context, req dto.LoginRequest, now time.Time) (*dto.LoginResponse, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
}

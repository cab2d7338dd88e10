package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
	"github.com/SscSPs/pension_management_app/internal/platform/config"
	"github.com/SscSPs/pension_management_app/internal/utils"
)

type userService struct {
	BaseService
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
	jwtIssuer string
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.UserSvcFacade {
	return &userService{
		BaseService: BaseService{UserReader: userRepo},
		userRepo:    userRepo,
		jwtSecret:   cfg.JWTSecret,
		jwtExpiry:   cfg.JWTExpiryDuration,
		jwtIssuer:   cfg.JWTIssuer,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Register(ctx context.Context, req dto.RegisterRequest, now time.Time) (*domain.User, error) {
	user, err := req.ToDomainUser()
	if err != nil {
		return nil, err
	}
	user.Email = normalizeEmail(user.Email)

	if _, err := s.userRepo.FindUserByEmail(ctx, user.Email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check existing user")
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.UserID = uuid.NewString()
	user.PasswordHash = hash
	user.Role = domain.RoleMember
	user.AuditFields = domain.NewAuditFields(user.UserID, now)

	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to save user")
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	return user, nil
}

func (s *userService) Login(ctx context.Context, req dto.LoginRequest, now time.Time) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		s.LogError(ctx, err, "Failed to load user for login")
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer, now)
	if err != nil {
		s.LogError(ctx, err, "Failed to sign JWT token")
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.LogInfo(ctx, "User logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{Token: token, ExpiresAt: now.Add(s.jwtExpiry)}, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

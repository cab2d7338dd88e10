package handlers_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
)

// --- Mock ContributionService ---
type MockContributionService struct {
	mock.Mock
}

func (m *MockContributionService) SubmitContribution(ctx context.Context, memberID string, req dto.CreateContributionRequest, now time.Time) (*domain.Contribution, error) {
	args := m.Called(ctx, memberID, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionService) CheckContribution(ctx context.Context, memberID string, req dto.CreateContributionRequest, now time.Time) (contributions.ValidationResult, error) {
	args := m.Called(ctx, memberID, req, now)
	return args.Get(0).(contributions.ValidationResult), args.Error(1)
}

func (m *MockContributionService) UpdateContribution(ctx context.Context, memberID, contributionID string, req dto.UpdateContributionRequest, now time.Time) (*domain.Contribution, error) {
	args := m.Called(ctx, memberID, contributionID, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionService) GetContribution(ctx context.Context, memberID, contributionID string) (*domain.Contribution, error) {
	args := m.Called(ctx, memberID, contributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionService) ListContributions(ctx context.Context, memberID string, params dto.ListContributionsParams) ([]domain.Contribution, string, error) {
	args := m.Called(ctx, memberID, params)
	if args.Get(0) == nil {
		return nil, args.String(1), args.Error(2)
	}
	return args.Get(0).([]domain.Contribution), args.String(1), args.Error(2)
}

func (m *MockContributionService) GetSummary(ctx context.Context, memberID string, statuses []domain.ContributionStatus, now time.Time) (*domain.ContributionSummary, error) {
	args := m.Called(ctx, memberID, statuses, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContributionSummary), args.Error(1)
}

func (m *MockContributionService) UpdateContributionStatus(ctx context.Context, adminID, contributionID string, status domain.ContributionStatus, now time.Time) (*domain.Contribution, error) {
	args := m.Called(ctx, adminID, contributionID, status, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

// --- Mock StatementService ---
type MockStatementService struct {
	mock.Mock
}

func (m *MockStatementService) GenerateStatement(ctx context.Context, memberID string, req dto.GenerateStatementRequest, now time.Time) (*domain.Statement, error) {
	args := m.Called(ctx, memberID, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statement), args.Error(1)
}

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest, now time.Time) (*domain.User, error) {
	args := m.Called(ctx, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, req dto.LoginRequest, now time.Time) (*dto.LoginResponse, error) {
	args := m.Called(ctx, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.LoginResponse), args.Error(1)
}

var (
	_ portssvc.ContributionSvcFacade = (*MockContributionService)(nil)
	_ portssvc.StatementSvcFacade    = (*MockStatementService)(nil)
	_ portssvc.UserSvcFacade         = (*MockUserService)(nil)
)

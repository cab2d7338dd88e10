package services

import (
	"context"
	"time"

	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	"github.com/SscSPs/pension_management_app/internal/dto"
)

// ContributionSubmitterSvc defines the admission of new and edited contributions
type ContributionSubmitterSvc interface {
	// SubmitContribution validates and stores a new pending contribution for the member.
	// A rejected candidate is returned as a wrapped *contributions.Rejection.
	SubmitContribution(ctx context.Context, memberID string, req dto.CreateContributionRequest, now time.Time) (*domain.Contribution, error)

	// CheckContribution runs the admission rules without storing anything.
	CheckContribution(ctx context.Context, memberID string, req dto.CreateContributionRequest, now time.Time) (contributions.ValidationResult, error)

	// UpdateContribution edits a pending contribution owned by the member.
	UpdateContribution(ctx context.Context, memberID, contributionID string, req dto.UpdateContributionRequest, now time.Time) (*domain.Contribution, error)
}

// ContributionReaderSvc defines read operations for contribution data
type ContributionReaderSvc interface {
	// GetContribution retrieves a contribution owned by the member.
	GetContribution(ctx context.Context, memberID, contributionID string) (*domain.Contribution, error)

	// ListContributions returns one page of the member's filtered history and the token of the next page.
	ListContributions(ctx context.Context, memberID string, params dto.ListContributionsParams) ([]domain.Contribution, string, error)

	// GetSummary aggregates the member's contributions, restricted to statuses when given.
	GetSummary(ctx context.Context, memberID string, statuses []domain.ContributionStatus, now time.Time) (*domain.ContributionSummary, error)
}

// ContributionApprovalSvc defines the approval workflow
type ContributionApprovalSvc interface {
	// UpdateContributionStatus approves or rejects a pending contribution. Admins only.
	UpdateContributionStatus(ctx context.Context, adminID, contributionID string, status domain.ContributionStatus, now time.Time) (*domain.Contribution, error)
}

// ContributionSvcFacade combines all contribution-related service interfaces
type ContributionSvcFacade interface {
	ContributionSubmitterSvc
	ContributionReaderSvc
	ContributionApprovalSvc
}

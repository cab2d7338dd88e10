package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/pension_management_app/internal/core/domain"
)

// ContributionReader defines read operations for contribution data
type ContributionReader interface {
	// FindContributionByID retrieves a specific contribution by its ID.
	// Returns apperrors.ErrNotFound when it does not exist.
	FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error)

	// ListContributionsByMember retrieves every contribution of a member in creation order.
	ListContributionsByMember(ctx context.Context, memberID string) ([]domain.Contribution, error)
}

// ContributionWriter defines write operations for contribution data
type ContributionWriter interface {
	// SaveContribution persists a new contribution.
	// Returns apperrors.ErrDuplicate when a storage uniqueness constraint is violated.
	SaveContribution(ctx context.Context, contribution domain.Contribution) error

	// UpdateContribution replaces the editable fields of a pending contribution.
	// Returns apperrors.ErrNotFound when no pending contribution with that ID exists.
	UpdateContribution(ctx context.Context, contribution domain.Contribution) error

	// UpdateContributionStatus moves a contribution from one status to another.
	// Returns apperrors.ErrNotFound when the contribution is not in the from status.
	UpdateContributionStatus(ctx context.Context, contributionID string, from, to domain.ContributionStatus, updatedBy string, at time.Time) error
}

// ContributionStore is the set of operations available inside a member lock.
type ContributionStore interface {
	ContributionReader
	ContributionWriter
}

// ContributionRepositoryFacade combines all contribution-related repository interfaces
type ContributionRepositoryFacade interface {
	ContributionStore

	// WithMemberLock runs fn in a single transaction that holds an exclusive lock on the
	// member's contribution set. Writes made through store commit only if fn returns nil.
	WithMemberLock(ctx context.Context, memberID string, fn func(store ContributionStore) error) error
}

package services_test

import (
	"context"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/pension_management_app/internal/events"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Mock Publisher ---
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event *events.ContributionEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	return m.Called().Error(0)
}

// --- In-memory ContributionRepository ---
//
// WithMemberLock does not serialise callers, so tests exercise the service's own locking.
type memContributionRepo struct {
	mu        sync.Mutex
	items     []domain.Contribution
	listCalls int
	saveErr   error
}

func (r *memContributionRepo) FindContributionByID(_ context.Context, contributionID string) (*domain.Contribution, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.ContributionID == contributionID {
			found := c
			return &found, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memContributionRepo) ListContributionsByMember(ctx context.Context, memberID string) ([]domain.Contribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listCalls++
	out := []domain.Contribution{}
	for _, c := range r.items {
		if c.MemberID == memberID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memContributionRepo) SaveContribution(_ context.Context, c domain.Contribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.items = append(r.items, c)
	return nil
}

func (r *memContributionRepo) UpdateContribution(_ context.Context, c domain.Contribution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ContributionID == c.ContributionID && r.items[i].Status == domain.StatusPending {
			r.items[i] = c
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memContributionRepo) UpdateContributionStatus(_ context.Context, contributionID string, from, to domain.ContributionStatus, updatedBy string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ContributionID == contributionID && r.items[i].Status == from {
			r.items[i].Status = to
			r.items[i].Touch(updatedBy, at)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *memContributionRepo) WithMemberLock(_ context.Context, _ string, fn func(store portsrepo.ContributionStore) error) error {
	return fn(r)
}

func (r *memContributionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

func (r *memContributionRepo) lists() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.listCalls
}

var _ portsrepo.ContributionRepositoryFacade = (*memContributionRepo)(nil)
var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

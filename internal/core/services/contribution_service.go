package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
	"github.com/SscSPs/pension_management_app/internal/events"
	"github.com/SscSPs/pension_management_app/internal/utils/pagination"
)

const defaultPageSize = 20

// contributionService admits, edits, lists and aggregates member contributions.
type contributionService struct {
	BaseService
	contributionRepo portsrepo.ContributionRepositoryFacade
	publisher        events.Publisher
	locker           *memberLocker

	summaries   *expirable.LRU[string, domain.ContributionSummary]
	flight      singleflight.Group
	generations *lru.Cache[string, uint64]
	genCounter  atomic.Uint64
}

// ContributionServiceOption is a functional option for configuring the contribution service
type ContributionServiceOption func(*contributionService)

// WithEventPublisher sets the publisher used for contribution events
func WithEventPublisher(p events.Publisher) ContributionServiceOption {
	return func(s *contributionService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithSummaryCache enables caching of summaries for up to size entries, each valid for ttl
func WithSummaryCache(size int, ttl time.Duration) ContributionServiceOption {
	return func(s *contributionService) {
		if size <= 0 {
			return
		}
		s.summaries = expirable.NewLRU[string, domain.ContributionSummary](size, nil, ttl)
		// A member whose generation is evicted falls back to generation zero, so its
		// summaries have to go with it.
		s.generations, _ = lru.NewWithEvict[string, uint64](size, func(memberID string, _ uint64) {
			s.purgeSummaries(memberID)
		})
	}
}

// NewContributionService creates a new contribution service with the provided options
func NewContributionService(repo portsrepo.ContributionRepositoryFacade, users portsrepo.UserReader, options ...ContributionServiceOption) portssvc.ContributionSvcFacade {
	svc := &contributionService{
		BaseService:      BaseService{UserReader: users},
		contributionRepo: repo,
		publisher:        events.NoopPublisher{},
		locker:           newMemberLocker(),
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

var _ portssvc.ContributionSvcFacade = (*contributionService)(nil)

// withMemberLock runs fn while holding both the in-process and the storage lock for memberID.
func (s *contributionService) withMemberLock(ctx context.Context, memberID string, fn func(store portsrepo.ContributionStore) error) error {
	unlock := s.locker.Lock(memberID)
	defer unlock()
	return s.contributionRepo.WithMemberLock(ctx, memberID, fn)
}

func (s *contributionService) SubmitContribution(ctx context.Context, memberID string, req dto.CreateContributionRequest, now time.Time) (*domain.Contribution, error) {
	candidate, err := req.ToInput(memberID, "")
	if err != nil {
		return nil, err
	}

	var saved domain.Contribution
	err = s.withMemberLock(ctx, memberID, func(store portsrepo.ContributionStore) error {
		existing, err := store.ListContributionsByMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to load member contributions: %w", err)
		}

		res := contributions.Validate(candidate, existing, now)
		if !res.Admit {
			return fmt.Errorf("contribution rejected: %w", res.Err())
		}

		amount, err := contributions.ResolveAmount(candidate)
		if err != nil {
			return fmt.Errorf("contribution rejected: %w", contributions.NewRejection(contributions.InvalidAmount))
		}

		saved = domain.Contribution{
			ContributionID: uuid.NewString(),
			MemberID:       memberID,
			Amount:         amount,
			Date:           contributions.DayOf(*candidate.Date),
			Type:           candidate.Type,
			Status:         domain.StatusPending,
			Reference:      candidate.Reference,
			Description:    candidate.Description,
			AuditFields:    domain.NewAuditFields(memberID, now),
		}
		return store.SaveContribution(ctx, saved)
	})
	if err != nil {
		if isExpected(err) {
			s.LogInfo(ctx, "Contribution not admitted", slog.String("member_id", memberID), slog.String("reason", err.Error()))
		} else {
			s.LogError(ctx, err, "Failed to submit contribution", slog.String("member_id", memberID))
		}
		return nil, err
	}

	s.invalidateSummaries(memberID)
	s.publish(ctx, events.NewContributionEvent(events.ContributionSubmitted, saved, now))

	s.LogInfo(ctx, "Contribution submitted",
		slog.String("contribution_id", saved.ContributionID),
		slog.String("type", string(saved.Type)))
	return &saved, nil
}

func (s *contributionService) CheckContribution(ctx context.Context, memberID string, req dto.CreateContributionRequest, now time.Time) (contributions.ValidationResult, error) {
	candidate, err := req.ToInput(memberID, "")
	if err != nil {
		return contributions.ValidationResult{}, err
	}
	existing, err := s.contributionRepo.ListContributionsByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load member contributions", slog.String("member_id", memberID))
		return contributions.ValidationResult{}, fmt.Errorf("failed to load member contributions: %w", err)
	}
	return contributions.Validate(candidate, existing, now), nil
}

func (s *contributionService) UpdateContribution(ctx context.Context, memberID, contributionID string, req dto.UpdateContributionRequest, now time.Time) (*domain.Contribution, error) {
	candidate, err := req.ToInput(memberID, contributionID)
	if err != nil {
		return nil, err
	}

	var updated domain.Contribution
	err = s.withMemberLock(ctx, memberID, func(store portsrepo.ContributionStore) error {
		current, err := store.FindContributionByID(ctx, contributionID)
		if err != nil {
			return err
		}
		if current.MemberID != memberID {
			return fmt.Errorf("%w: contribution belongs to another member", apperrors.ErrForbidden)
		}
		if current.Status != domain.StatusPending {
			return fmt.Errorf("%w: only pending contributions can be edited", apperrors.ErrValidation)
		}

		existing, err := store.ListContributionsByMember(ctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to load member contributions: %w", err)
		}
		res := contributions.Validate(candidate, existing, now)
		if !res.Admit {
			return fmt.Errorf("contribution rejected: %w", res.Err())
		}
		amount, err := contributions.ResolveAmount(candidate)
		if err != nil {
			return fmt.Errorf("contribution rejected: %w", contributions.NewRejection(contributions.InvalidAmount))
		}

		updated = *current
		updated.Amount = amount
		updated.Date = contributions.DayOf(*candidate.Date)
		updated.Type = candidate.Type
		updated.Reference = candidate.Reference
		updated.Description = candidate.Description
		updated.Touch(memberID, now)
		return store.UpdateContribution(ctx, updated)
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to update contribution", slog.String("contribution_id", contributionID))
		}
		return nil, err
	}

	s.invalidateSummaries(memberID)
	s.LogInfo(ctx, "Contribution updated", slog.String("contribution_id", contributionID))
	return &updated, nil
}

func (s *contributionService) GetContribution(ctx context.Context, memberID, contributionID string) (*domain.Contribution, error) {
	c, err := s.contributionRepo.FindContributionByID(ctx, contributionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find contribution", slog.String("contribution_id", contributionID))
		}
		return nil, err
	}
	if c.MemberID != memberID {
		return nil, fmt.Errorf("%w: contribution belongs to another member", apperrors.ErrForbidden)
	}
	return c, nil
}

func (s *contributionService) ListContributions(ctx context.Context, memberID string, params dto.ListContributionsParams) ([]domain.Contribution, string, error) {
	filter, err := params.ToHistoryFilter()
	if err != nil {
		return nil, "", err
	}
	queryKey := params.QueryKey()
	offset, err := pagination.DecodeOffsetToken(params.NextToken, queryKey)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}

	all, err := s.contributionRepo.ListContributionsByMember(ctx, memberID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contributions", slog.String("member_id", memberID))
		return nil, "", fmt.Errorf("failed to list contributions: %w", err)
	}

	page, next := pagination.Page(contributions.FilterHistory(all, filter), offset, limit, queryKey)
	s.LogDebug(ctx, "Contributions listed", slog.Int("count", len(page)), slog.Int("offset", offset))
	return page, next, nil
}

// GetSummary totals every contribution of the member whose status is in statuses.
// An empty statuses list means all statuses, pending and rejected included.
func (s *contributionService) GetSummary(ctx context.Context, memberID string, statuses []domain.ContributionStatus, now time.Time) (*domain.ContributionSummary, error) {
	for _, st := range statuses {
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, st)
		}
	}

	key, gen := s.summaryKey(memberID, statuses, now)
	if s.summaries != nil {
		if cached, ok := s.summaries.Get(key); ok {
			return &cached, nil
		}
	}

	v, err, _ := s.flight.Do(key, func() (any, error) {
		// Shared by every caller coalesced on key, so one client going away must not cancel it.
		list, err := s.contributionRepo.ListContributionsByMember(context.WithoutCancel(ctx), memberID)
		if err != nil {
			return nil, fmt.Errorf("failed to load member contributions: %w", err)
		}
		summary := contributions.Summarize(contributions.FilterByStatus(list, statuses), now)
		if s.summaries != nil && s.generation(memberID) == gen {
			s.summaries.Add(key, summary)
		}
		return summary, nil
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to summarise contributions", slog.String("member_id", memberID))
		return nil, err
	}
	summary := v.(domain.ContributionSummary)
	return &summary, nil
}

func (s *contributionService) UpdateContributionStatus(ctx context.Context, adminID, contributionID string, status domain.ContributionStatus, now time.Time) (*domain.Contribution, error) {
	if status != domain.StatusApproved && status != domain.StatusRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", apperrors.ErrValidation)
	}
	if err := s.AuthorizeRole(ctx, adminID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	current, err := s.contributionRepo.FindContributionByID(ctx, contributionID)
	if err != nil {
		return nil, err
	}

	var updated domain.Contribution
	err = s.withMemberLock(ctx, current.MemberID, func(store portsrepo.ContributionStore) error {
		fresh, err := store.FindContributionByID(ctx, contributionID)
		if err != nil {
			return err
		}
		if fresh.Status != domain.StatusPending {
			return fmt.Errorf("%w: contribution is already %s", apperrors.ErrValidation, fresh.Status)
		}
		if err := store.UpdateContributionStatus(ctx, contributionID, domain.StatusPending, status, adminID, now); err != nil {
			return err
		}
		updated = *fresh
		updated.Status = status
		updated.Touch(adminID, now)
		return nil
	})
	if err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to update contribution status", slog.String("contribution_id", contributionID))
		}
		return nil, err
	}

	s.invalidateSummaries(updated.MemberID)
	event := events.NewContributionEvent(events.ContributionStatusChanged, updated, now)
	event.PreviousStatus = domain.StatusPending
	s.publish(ctx, event)

	s.LogInfo(ctx, "Contribution status changed",
		slog.String("contribution_id", contributionID),
		slog.String("status", string(status)))
	return &updated, nil
}

// summaryKey ties a cached summary to the member's current generation, the status filter and the day.
func (s *contributionService) summaryKey(memberID string, statuses []domain.ContributionStatus, now time.Time) (string, uint64) {
	names := make([]string, len(statuses))
	for i, st := range statuses {
		names[i] = string(st)
	}
	sort.Strings(names)

	gen := s.generation(memberID)
	return fmt.Sprintf("%s|%d|%s|%s", memberID, gen, strings.Join(names, ","), contributions.DayOf(now).Format("2006-01-02")), gen
}

// generation returns the member's current summary generation, zero when none is tracked.
func (s *contributionService) generation(memberID string) uint64 {
	if s.generations == nil {
		return 0
	}
	gen, _ := s.generations.Get(memberID)
	return gen
}

// invalidateSummaries makes every cached summary of memberID unreachable.
// Generations come from a single counter and are never reused.
func (s *contributionService) invalidateSummaries(memberID string) {
	if s.generations == nil {
		return
	}
	s.generations.Add(memberID, s.genCounter.Add(1))
}

// purgeSummaries drops every cached summary of memberID.
func (s *contributionService) purgeSummaries(memberID string) {
	prefix := memberID + "|"
	for _, key := range s.summaries.Keys() {
		if strings.HasPrefix(key, prefix) {
			s.summaries.Remove(key)
		}
	}
}

// publish sends event downstream. Failures are logged and never fail the caller.
func (s *contributionService) publish(ctx context.Context, event *events.ContributionEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish contribution event",
			slog.String("event_type", string(event.Type)),
			slog.String("contribution_id", event.ContributionID))
	}
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/dto"
	"github.com/SscSPs/pension_management_app/internal/platform/config"
	"github.com/SscSPs/pension_management_app/internal/utils/benefits"
)

// statementService builds member statements on demand.
type statementService struct {
	BaseService
	contributionRepo portsrepo.ContributionReader
	projection       config.ProjectionConfig
}

// NewStatementService creates a new statement service.
func NewStatementService(contributionRepo portsrepo.ContributionReader, users portsrepo.UserReader, projection config.ProjectionConfig) portssvc.StatementSvcFacade {
	return &statementService{
		BaseService:      BaseService{UserReader: users},
		contributionRepo: contributionRepo,
		projection:       projection,
	}
}

var _ portssvc.StatementSvcFacade = (*statementService)(nil)

func (s *statementService) GenerateStatement(ctx context.Context, memberID string, req dto.GenerateStatementRequest, now time.Time) (*domain.Statement, error) {
	filter, err := req.ToFilter()
	if err != nil {
		return nil, err
	}
	for _, t := range filter.Types {
		if !t.IsValid() {
			return nil, fmt.Errorf("%w: unknown contribution type %q", apperrors.ErrValidation, t)
		}
	}

	var (
		member  *domain.User
		history []domain.Contribution
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		u, err := s.UserReader.FindUserByID(gctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to load member profile: %w", err)
		}
		member = u
		return nil
	})
	g.Go(func() error {
		list, err := s.contributionRepo.ListContributionsByMember(gctx, memberID)
		if err != nil {
			return fmt.Errorf("failed to load member contributions: %w", err)
		}
		history = list
		return nil
	})
	if err := g.Wait(); err != nil {
		if !isExpected(err) {
			s.LogError(ctx, err, "Failed to gather statement data", slog.String("member_id", memberID))
		}
		return nil, err
	}

	selected := contributions.FilterForStatement(history, filter)
	total := decimal.Zero
	for _, c := range selected {
		total = total.Add(c.Amount)
	}

	statement := &domain.Statement{
		StatementID:   uuid.NewString(),
		MemberID:      memberID,
		MemberName:    member.FullName,
		GeneratedAt:   now,
		Filter:        filter,
		Contributions: selected,
		TotalAmount:   total,
		Summary:       contributions.Summarize(selected, now),
		// The outlook uses the whole approved history, not just the statement period.
		ProjectedBenefits: benefits.Project(history, s.assumptionsFor(member, now)),
	}

	s.LogInfo(ctx, "Statement generated",
		slog.String("statement_id", statement.StatementID),
		slog.Int("contributions", len(selected)))
	return statement, nil
}

func (s *statementService) assumptionsFor(member *domain.User, now time.Time) benefits.Assumptions {
	age := s.projection.DefaultMemberAge
	if a, ok := member.AgeAt(now); ok {
		age = a
	}
	return benefits.Assumptions{
		AnnualReturnRate:     decimal.NewFromFloat(s.projection.AnnualReturnRate),
		InflationRate:        decimal.NewFromFloat(s.projection.InflationRate),
		YearsToRetirement:    s.projection.RetirementAge - age,
		PensionDurationYears: s.projection.PensionDurationYears,
	}
}

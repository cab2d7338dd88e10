package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
)

type RepositorySuite struct {
	suite.Suite
	ctx   context.Context
	repos portsrepo.RepositoryProvider
	now   time.Time
}

func TestRepositorySuite(t *testing.T) {
	suite.Run(t, new(RepositorySuite))
}

func (s *RepositorySuite) SetupTest() {
	db, err := Open(filepath.Join(s.T().TempDir(), "pension.db"))
	s.Require().NoError(err)
	s.T().Cleanup(func() { db.Close() })

	s.ctx = context.Background()
	s.repos = NewRepositoryProvider(db)
	s.now = time.Date(2024, 5, 20, 9, 30, 0, 0, time.UTC)

	s.Require().NoError(s.repos.UserRepo.SaveUser(s.ctx, s.user("member-1", "Member@Example.com")))
}

func (s *RepositorySuite) user(id, email string) domain.User {
	dob := time.Date(1990, 1, 15, 0, 0, 0, 0, time.UTC)
	return domain.User{
		UserID:       id,
		Email:        email,
		PasswordHash: "hash",
		FullName:     "Test Member",
		Role:         domain.RoleMember,
		DateOfBirth:  &dob,
		AuditFields:  domain.NewAuditFields(id, s.now),
	}
}

func (s *RepositorySuite) contribution(id string, typ domain.ContributionType, date time.Time, ref string) domain.Contribution {
	return domain.Contribution{
		ContributionID: id,
		MemberID:       "member-1",
		Amount:         decimal.RequireFromString("1000.50"),
		Date:           date,
		Type:           typ,
		Status:         domain.StatusPending,
		Reference:      ref,
		AuditFields:    domain.NewAuditFields("member-1", s.now),
	}
}

func (s *RepositorySuite) TestUserRoundTrip() {
	byEmail, err := s.repos.UserRepo.FindUserByEmail(s.ctx, "member@example.com")
	s.Require().NoError(err)
	s.Equal("member-1", byEmail.UserID)
	s.Require().NotNil(byEmail.DateOfBirth)
	s.Equal(1990, byEmail.DateOfBirth.Year())
	s.True(byEmail.CreatedAt.Equal(s.now))

	_, err = s.repos.UserRepo.FindUserByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)

	err = s.repos.UserRepo.SaveUser(s.ctx, s.user("member-2", "MEMBER@example.com"))
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *RepositorySuite) TestContributionRoundTrip() {
	date := time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC)
	s.Require().NoError(s.repos.ContributionRepo.SaveContribution(s.ctx, s.contribution("c-1", domain.Mandatory, date, "REF-1")))

	got, err := s.repos.ContributionRepo.FindContributionByID(s.ctx, "c-1")
	s.Require().NoError(err)
	s.True(got.Amount.Equal(decimal.RequireFromString("1000.50")))
	s.True(got.Date.Equal(date))
	s.Equal(domain.Mandatory, got.Type)
	s.Equal("REF-1", got.Reference)

	list, err := s.repos.ContributionRepo.ListContributionsByMember(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.repos.ContributionRepo.FindContributionByID(s.ctx, "missing")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *RepositorySuite) TestUniqueIndexesMapToRejections() {
	repo := s.repos.ContributionRepo
	s.Require().NoError(repo.SaveContribution(s.ctx, s.contribution("c-1", domain.Mandatory, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), "REF-1")))

	err := repo.SaveContribution(s.ctx, s.contribution("c-2", domain.Mandatory, time.Date(2024, 5, 28, 0, 0, 0, 0, time.UTC), ""))
	var rejection *contributions.Rejection
	s.Require().True(errors.As(err, &rejection))
	s.Equal(contributions.DuplicateMandatoryMonth, rejection.Kind)

	err = repo.SaveContribution(s.ctx, s.contribution("c-3", domain.Voluntary, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), "REF-1"))
	s.Require().True(errors.As(err, &rejection))
	s.Equal(contributions.DuplicateReference, rejection.Kind)

	// Voluntary contributions without a reference never collide.
	s.NoError(repo.SaveContribution(s.ctx, s.contribution("c-4", domain.Voluntary, time.Date(2024, 5, 4, 0, 0, 0, 0, time.UTC), "")))
	s.NoError(repo.SaveContribution(s.ctx, s.contribution("c-5", domain.Voluntary, time.Date(2024, 5, 5, 0, 0, 0, 0, time.UTC), "")))

	err = repo.SaveContribution(s.ctx, s.contribution("c-1", domain.Voluntary, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), ""))
	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *RepositorySuite) TestUpdateContributionStatus() {
	repo := s.repos.ContributionRepo
	s.Require().NoError(repo.SaveContribution(s.ctx, s.contribution("c-1", domain.Voluntary, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), "")))

	later := s.now.Add(time.Hour)
	s.Require().NoError(repo.UpdateContributionStatus(s.ctx, "c-1", domain.StatusPending, domain.StatusApproved, "admin-1", later))

	got, err := repo.FindContributionByID(s.ctx, "c-1")
	s.Require().NoError(err)
	s.Equal(domain.StatusApproved, got.Status)
	s.Equal("admin-1", got.LastUpdatedBy)
	s.EqualValues(2, got.Version)

	err = repo.UpdateContributionStatus(s.ctx, "c-1", domain.StatusPending, domain.StatusRejected, "admin-1", later)
	s.ErrorIs(err, apperrors.ErrNotFound)

	edited := *got
	edited.Description = "too late"
	s.ErrorIs(repo.UpdateContribution(s.ctx, edited), apperrors.ErrNotFound)
}

func (s *RepositorySuite) TestWithMemberLockRollsBackOnError() {
	repo := s.repos.ContributionRepo
	boom := errors.New("boom")

	err := repo.WithMemberLock(s.ctx, "member-1", func(store portsrepo.ContributionStore) error {
		if err := store.SaveContribution(s.ctx, s.contribution("c-1", domain.Voluntary, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), "")); err != nil {
			return err
		}
		return boom
	})
	s.ErrorIs(err, boom)

	list, err := repo.ListContributionsByMember(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Empty(list)

	err = repo.WithMemberLock(s.ctx, "member-1", func(store portsrepo.ContributionStore) error {
		return store.SaveContribution(s.ctx, s.contribution("c-2", domain.Voluntary, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), ""))
	})
	s.Require().NoError(err)

	list, err = repo.ListContributionsByMember(s.ctx, "member-1")
	s.Require().NoError(err)
	s.Len(list, 1)
}

func TestRunMigrationsIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pension.db")
	require.NoError(t, RunMigrations(path))
	assert.NoError(t, RunMigrations(path))
}

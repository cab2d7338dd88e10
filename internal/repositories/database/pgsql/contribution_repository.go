package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/pension_management_app/internal/models"
	"github.com/SscSPs/pension_management_app/internal/utils/mapping"
)

// Unique indexes created by the contributions migration.
const (
	constraintMandatoryPeriod = "uq_contributions_mandatory_period"
	constraintReference       = "uq_contributions_member_reference"
)

const contributionColumns = `contribution_id, member_id, amount, contribution_date, period, contribution_type, status,
	reference, description, created_at, created_by, last_updated_at, last_updated_by, version`

// PgxContributionRepository stores contributions in Postgres.
type PgxContributionRepository struct {
	BaseRepository
	pgxContributionStore
}

func newPgxContributionRepository(pool *pgxpool.Pool) *PgxContributionRepository {
	return &PgxContributionRepository{
		BaseRepository:       BaseRepository{Pool: pool},
		pgxContributionStore: pgxContributionStore{db: pool},
	}
}

var _ portsrepo.ContributionRepositoryFacade = (*PgxContributionRepository)(nil)

// WithMemberLock runs fn in a transaction holding a transaction-scoped advisory lock keyed by member.
func (r *PgxContributionRepository) WithMemberLock(ctx context.Context, memberID string, fn func(store portsrepo.ContributionStore) error) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) //nolint:errcheck

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, memberID); err != nil {
		return fmt.Errorf("failed to acquire member lock: %w", err)
	}

	if err := fn(&pgxContributionStore{db: tx}); err != nil {
		return err
	}
	return r.Commit(ctx, tx)
}

// pgxContributionStore runs contribution queries against a pool or a transaction.
type pgxContributionStore struct {
	db querier
}

func (s *pgxContributionStore) FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE contribution_id = $1;`
	rows, err := s.db.Query(ctx, query, contributionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contribution %s: %w", contributionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Contribution])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan contribution %s: %w", contributionID, err)
	}
	c := mapping.ToDomainContribution(m)
	return &c, nil
}

func (s *pgxContributionStore) ListContributionsByMember(ctx context.Context, memberID string) ([]domain.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE member_id = $1 ORDER BY created_at, contribution_id;`
	rows, err := s.db.Query(ctx, query, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions for member %s: %w", memberID, err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Contribution])
	if err != nil {
		return nil, fmt.Errorf("failed to scan contributions for member %s: %w", memberID, err)
	}
	return mapping.ToDomainContributionSlice(ms), nil
}

func (s *pgxContributionStore) SaveContribution(ctx context.Context, contribution domain.Contribution) error {
	m := mapping.ToModelContribution(contribution)
	query := `
		INSERT INTO contributions (` + contributionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := s.db.Exec(ctx, query,
		m.ContributionID, m.MemberID, m.Amount, m.ContributionDate, m.Period, m.Type, m.Status,
		m.Reference, m.Description, m.CreatedAt, m.CreatedBy, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return mapContributionWriteError("failed to save contribution", err)
	}
	return nil
}

func (s *pgxContributionStore) UpdateContribution(ctx context.Context, contribution domain.Contribution) error {
	m := mapping.ToModelContribution(contribution)
	query := `
		UPDATE contributions
		SET amount = $2, contribution_date = $3, period = $4, contribution_type = $5,
			reference = $6, description = $7, last_updated_at = $8, last_updated_by = $9, version = $10
		WHERE contribution_id = $1 AND status = 'pending';
	`
	tag, err := s.db.Exec(ctx, query,
		m.ContributionID, m.Amount, m.ContributionDate, m.Period, m.Type,
		m.Reference, m.Description, m.LastUpdatedAt, m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return mapContributionWriteError("failed to update contribution", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *pgxContributionStore) UpdateContributionStatus(ctx context.Context, contributionID string, from, to domain.ContributionStatus, updatedBy string, at time.Time) error {
	query := `
		UPDATE contributions
		SET status = $3, last_updated_at = $4, last_updated_by = $5, version = version + 1
		WHERE contribution_id = $1 AND status = $2;
	`
	tag, err := s.db.Exec(ctx, query, contributionID, string(from), string(to), at, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update contribution status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// mapContributionWriteError turns unique index violations and amount overflow into the
// matching rejection.
func mapContributionWriteError(msg string, err error) error {
	if isNumericOverflow(err) {
		return fmt.Errorf("%s: %w", msg, contributions.NewRejection(contributions.InvalidAmount))
	}
	constraint, ok := isUniqueViolation(err)
	if !ok {
		return fmt.Errorf("%s: %w", msg, err)
	}
	switch constraint {
	case constraintMandatoryPeriod:
		return fmt.Errorf("%s: %w", msg, contributions.NewRejection(contributions.DuplicateMandatoryMonth))
	case constraintReference:
		return fmt.Errorf("%s: %w", msg, contributions.NewRejection(contributions.DuplicateReference))
	default:
		return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
	}
}

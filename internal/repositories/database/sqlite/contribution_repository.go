package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/contributions"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/pension_management_app/internal/models"
	"github.com/SscSPs/pension_management_app/internal/utils/mapping"
)

const contributionColumns = `contribution_id, member_id, amount, contribution_date, period, contribution_type, status,
	reference, description, created_at, created_by, last_updated_at, last_updated_by, version`

// SQLiteContributionRepository stores contributions in an embedded SQLite database.
type SQLiteContributionRepository struct {
	db *sql.DB
	sqliteContributionStore
}

func newSQLiteContributionRepository(db *sql.DB) *SQLiteContributionRepository {
	return &SQLiteContributionRepository{db: db, sqliteContributionStore: sqliteContributionStore{q: db}}
}

var _ portsrepo.ContributionRepositoryFacade = (*SQLiteContributionRepository)(nil)

// WithMemberLock runs fn inside a write transaction. The single connection serialises writers.
func (r *SQLiteContributionRepository) WithMemberLock(ctx context.Context, _ string, fn func(store portsrepo.ContributionStore) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if err := fn(&sqliteContributionStore{q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

type sqliteContributionStore struct {
	q querier
}

func (s *sqliteContributionStore) FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+contributionColumns+` FROM contributions WHERE contribution_id = ?;`, contributionID)
	m, err := scanContribution(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan contribution %s: %w", contributionID, err)
	}
	c := mapping.ToDomainContribution(*m)
	return &c, nil
}

func (s *sqliteContributionStore) ListContributionsByMember(ctx context.Context, memberID string) ([]domain.Contribution, error) {
	rows, err := s.q.QueryContext(ctx, `SELECT `+contributionColumns+` FROM contributions WHERE member_id = ? ORDER BY created_at, contribution_id;`, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions for member %s: %w", memberID, err)
	}
	defer rows.Close()

	var ms []models.Contribution
	for rows.Next() {
		m, err := scanContribution(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contributions for member %s: %w", memberID, err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contributions for member %s: %w", memberID, err)
	}
	return mapping.ToDomainContributionSlice(ms), nil
}

func (s *sqliteContributionStore) SaveContribution(ctx context.Context, contribution domain.Contribution) error {
	m := mapping.ToModelContribution(contribution)
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO contributions (`+contributionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.ContributionID, m.MemberID, m.Amount.String(), m.ContributionDate.Format(dateLayout), m.Period, m.Type, m.Status,
		m.Reference, m.Description, formatTimestamp(m.CreatedAt), m.CreatedBy, formatTimestamp(m.LastUpdatedAt), m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		return mapContributionWriteError("failed to save contribution", err)
	}
	return nil
}

func (s *sqliteContributionStore) UpdateContribution(ctx context.Context, contribution domain.Contribution) error {
	m := mapping.ToModelContribution(contribution)
	res, err := s.q.ExecContext(ctx, `
		UPDATE contributions
		SET amount = ?, contribution_date = ?, period = ?, contribution_type = ?,
			reference = ?, description = ?, last_updated_at = ?, last_updated_by = ?, version = ?
		WHERE contribution_id = ? AND status = 'pending';`,
		m.Amount.String(), m.ContributionDate.Format(dateLayout), m.Period, m.Type,
		m.Reference, m.Description, formatTimestamp(m.LastUpdatedAt), m.LastUpdatedBy, m.Version,
		m.ContributionID,
	)
	if err != nil {
		return mapContributionWriteError("failed to update contribution", err)
	}
	return requireRow(res)
}

func (s *sqliteContributionStore) UpdateContributionStatus(ctx context.Context, contributionID string, from, to domain.ContributionStatus, updatedBy string, at time.Time) error {
	res, err := s.q.ExecContext(ctx, `
		UPDATE contributions
		SET status = ?, last_updated_at = ?, last_updated_by = ?, version = version + 1
		WHERE contribution_id = ? AND status = ?;`,
		string(to), formatTimestamp(at), updatedBy, contributionID, string(from),
	)
	if err != nil {
		return fmt.Errorf("failed to update contribution status: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanContribution(row rowScanner) (*models.Contribution, error) {
	var (
		m                                 models.Contribution
		amount, date, created, lastUpdate string
	)
	err := row.Scan(&m.ContributionID, &m.MemberID, &amount, &date, &m.Period, &m.Type, &m.Status,
		&m.Reference, &m.Description, &created, &m.CreatedBy, &lastUpdate, &m.LastUpdatedBy, &m.Version)
	if err != nil {
		return nil, err
	}

	if m.Amount, err = decimal.NewFromString(amount); err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amount, err)
	}
	if m.ContributionDate, err = time.Parse(dateLayout, date); err != nil {
		return nil, fmt.Errorf("parse contribution date %q: %w", date, err)
	}
	if m.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if m.LastUpdatedAt, err = parseTimestamp(lastUpdate); err != nil {
		return nil, err
	}
	return &m, nil
}

// mapContributionWriteError turns unique index violations into the matching rejection.
// SQLite names the indexed columns in the message.
func mapContributionWriteError(msg string, err error) error {
	detail, ok := isUniqueViolation(err)
	if !ok {
		return fmt.Errorf("%s: %w", msg, err)
	}
	switch {
	case strings.Contains(detail, "contributions.period"):
		return fmt.Errorf("%s: %w", msg, contributions.NewRejection(contributions.DuplicateMandatoryMonth))
	case strings.Contains(detail, "contributions.reference"):
		return fmt.Errorf("%s: %w", msg, contributions.NewRejection(contributions.DuplicateReference))
	default:
		return fmt.Errorf("%s: %w", msg, apperrors.ErrDuplicate)
	}
}

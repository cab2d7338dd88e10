package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/pension_management_app/internal/apperrors"
	"github.com/SscSPs/pension_management_app/internal/core/domain"
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	"github.com/SscSPs/pension_management_app/internal/models"
	"github.com/SscSPs/pension_management_app/internal/utils/mapping"
)

const userColumns = `user_id, email, password_hash, full_name, role, date_of_birth, phone_number, address,
	created_at, created_by, last_updated_at, last_updated_by, version`

type SQLiteUserRepository struct {
	db *sql.DB
}

func newSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*SQLiteUserRepository)(nil)

func (r *SQLiteUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	var dob sql.NullString
	if m.DateOfBirth != nil {
		dob = sql.NullString{String: m.DateOfBirth.Format(dateLayout), Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
		m.UserID, m.Email, m.PasswordHash, m.FullName, m.Role, dob, m.PhoneNumber, m.Address,
		formatTimestamp(m.CreatedAt), m.CreatedBy, formatTimestamp(m.LastUpdatedAt), m.LastUpdatedBy, m.Version,
	)
	if err != nil {
		if _, dup := isUniqueViolation(err); dup {
			return fmt.Errorf("user with email %s already exists: %w", m.Email, apperrors.ErrDuplicate)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = ?;`, userID)
}

// FindUserByEmail matches case-insensitively through the column's NOCASE collation.
func (r *SQLiteUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?;`, email)
}

func (r *SQLiteUserRepository) findOne(ctx context.Context, query, arg string) (*domain.User, error) {
	var (
		m                   models.User
		dob                 sql.NullString
		created, lastUpdate string
	)
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&m.UserID, &m.Email, &m.PasswordHash, &m.FullName, &m.Role,
		&dob, &m.PhoneNumber, &m.Address, &created, &m.CreatedBy, &lastUpdate, &m.LastUpdatedBy, &m.Version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}

	if dob.Valid {
		t, err := time.Parse(dateLayout, dob.String)
		if err != nil {
			return nil, fmt.Errorf("parse date of birth %q: %w", dob.String, err)
		}
		m.DateOfBirth = &t
	}
	if m.CreatedAt, err = parseTimestamp(created); err != nil {
		return nil, err
	}
	if m.LastUpdatedAt, err = parseTimestamp(lastUpdate); err != nil {
		return nil, err
	}

	u := mapping.ToDomainUser(m)
	return &u, nil
}

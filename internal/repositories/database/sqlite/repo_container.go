package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the SQLite implementations of every repository port.
func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ContributionRepo: newSQLiteContributionRepository(db),
		UserRepo:         newSQLiteUserRepository(db),
	}
}

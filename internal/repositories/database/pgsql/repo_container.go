package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires the Postgres implementations of every repository port.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ContributionRepo: newPgxContributionRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}

package services

import (
	portsrepo "github.com/SscSPs/pension_management_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/pension_management_app/internal/core/ports/services"
	"github.com/SscSPs/pension_management_app/internal/events"
	"github.com/SscSPs/pension_management_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, publisher events.Publisher) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, cfg)
	container.Contribution = NewContributionService(
		repos.ContributionRepo,
		repos.UserRepo,
		WithEventPublisher(publisher),
		WithSummaryCache(cfg.SummaryCacheSize, cfg.SummaryCacheTTL),
	)
	container.Statement = NewStatementService(repos.ContributionRepo, repos.UserRepo, cfg.Projection)

	return container
}

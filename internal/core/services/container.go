package services

import (
	portsrepo "github.com/SscSPs/ledger_aggregator/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/ledger_aggregator/internal/core/ports/services"
	"github.com/SscSPs/ledger_aggregator/internal/platform/cache"
	"github.com/SscSPs/ledger_aggregator/internal/platform/metrics"
)

// Dependencies carries the shared infrastructure handed to services.
// Every field is optional.
type Dependencies struct {
	Cache    *cache.Cache
	Metrics  *metrics.Metrics
	RuleSets RuleSetProvider
	Queue    portssvc.IntegrityQueue
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, deps Dependencies) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Initialize workplace service first since other services depend on it
	container.Workplace = NewWorkplaceService(repos.WorkplaceRepo)

	container.Reporting = NewReportingService(repos.LedgerRepo,
		WithReportingWorkplaceAuthorizer(container.Workplace),
		WithReportCache(deps.Cache),
		WithReportMetrics(deps.Metrics),
		WithRuleSets(deps.RuleSets),
	)
	container.LedgerSources = NewLedgerSourceService(repos.SourceRepo,
		WithLedgerSourceWorkplaceAuthorizer(container.Workplace),
	)
	container.Integrity = NewIntegrityService(repos.LedgerRepo,
		WithIntegrityMetrics(deps.Metrics),
	)
	container.Checks = NewIntegrityRequestService(deps.Queue,
		WithIntegrityRequestWorkplaceAuthorizer(container.Workplace),
	)

	return container
}

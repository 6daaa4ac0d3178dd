package services

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// The notifier is injected from the adapters layer; pass nil to disable event publishing.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, notifier portssvc.EntryNotifier) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Organization service first since most other services authorize through it
	container.Organization = NewOrganizationService(repos.OrganizationRepo)
	organizationAuthorizer := container.Organization.(portssvc.OrganizationAuthorizerSvc)

	container.Schedule = NewScheduleService()

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithOrganizationAuthorizer(organizationAuthorizer),
	)

	container.Category = NewCategoryService(repos.CategoryRepo, organizationAuthorizer)
	container.Counterparty = NewCounterpartyService(repos.CounterpartyRepo, organizationAuthorizer)

	container.Entry = NewEntryService(
		repos.EntryRepo,
		container.Schedule,
		container.Account,
		container.Organization,
		notifier,
	)

	container.Contract = NewContractService(repos.ContractRepo, container.Organization)

	container.User = NewUserService(repos.UserRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, WithReportingOrganizationAuthorizer(organizationAuthorizer))

	container.TokenService = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthService(cfg)

	return container
}

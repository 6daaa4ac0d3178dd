package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	EntryRepo        EntryRepositoryWithTx
	ContractRepo     ContractRepositoryFacade
	AccountRepo      AccountRepositoryFacade
	CategoryRepo     CategoryRepositoryFacade
	CounterpartyRepo CounterpartyRepositoryFacade
	OrganizationRepo OrganizationRepositoryFacade
	UserRepo         UserRepositoryFacade
	ReportingRepo    ReportingRepositoryFacade
}

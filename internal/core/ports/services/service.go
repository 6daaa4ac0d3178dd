package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Schedule     ScheduleSvcFacade
	Entry        EntrySvcFacade
	Contract     ContractSvcFacade
	Account      AccountSvcFacade
	Category     CategorySvcFacade
	Counterparty CounterpartySvcFacade
	Organization OrganizationSvcFacade
	User         UserSvcFacade
	Reporting    ReportingSvcFacade
	TokenService TokenSvcFacade
	GoogleOAuth  GoogleOAuthSvcFacade
}

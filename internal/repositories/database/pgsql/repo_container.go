package pgsql

import (
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)
	contractRepo := newPgxContractRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	counterpartyRepo := newPgxCounterpartyRepository(dbPool)
	organizationRepo := newPgxOrganizationRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo:        entryRepo,
		ContractRepo:     contractRepo,
		AccountRepo:      accountRepo,
		CategoryRepo:     categoryRepo,
		CounterpartyRepo: counterpartyRepo,
		OrganizationRepo: organizationRepo,
		UserRepo:         userRepo,
		ReportingRepo:    reportingRepo,
	}
}

package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// AccountRepositoryFacade defines operations for money account data
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)
	// FindAccountsByIDs retrieves multiple accounts keyed by ID; every
	// requested ID must exist or ErrNotFound is returned.
	FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, account domain.Account) error
	DeactivateAccount(ctx context.Context, organizationID, accountID, updatedBy string) error
	// HasEntries reports whether any ledger entry references the account.
	HasEntries(ctx context.Context, organizationID, accountID string) (bool, error)
}

// CategoryRepositoryFacade defines operations for category reference data
type CategoryRepositoryFacade interface {
	SaveCategory(ctx context.Context, category domain.Category) error
	FindCategoryByID(ctx context.Context, organizationID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, organizationID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category domain.Category) error
	DeactivateCategory(ctx context.Context, organizationID, categoryID, updatedBy string) error
}

// CounterpartyRepositoryFacade defines operations for counterparty reference data
type CounterpartyRepositoryFacade interface {
	SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error
	FindCounterpartyByID(ctx context.Context, organizationID, counterpartyID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, organizationID string, limit, offset int) ([]domain.Counterparty, error)
	UpdateCounterparty(ctx context.Context, counterparty domain.Counterparty) error
	DeactivateCounterparty(ctx context.Context, organizationID, counterpartyID, updatedBy string) error
}

package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// AccountSvcFacade defines operations for money accounts
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error)
	UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)
	// DeactivateAccount soft deletes an account; rejected while ledger entries
	// still reference it.
	DeactivateAccount(ctx context.Context, organizationID, accountID, requestingUserID string) error
}

// CategorySvcFacade defines operations for entry categories
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, organizationID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, organizationID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, organizationID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, organizationID, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error)
	DeactivateCategory(ctx context.Context, organizationID, categoryID, requestingUserID string) error
}

// CounterpartySvcFacade defines operations for counterparties
type CounterpartySvcFacade interface {
	CreateCounterparty(ctx context.Context, organizationID string, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error)
	GetCounterpartyByID(ctx context.Context, organizationID, counterpartyID string) (*domain.Counterparty, error)
	ListCounterparties(ctx context.Context, organizationID string, limit, offset int) ([]domain.Counterparty, error)
	UpdateCounterparty(ctx context.Context, organizationID, counterpartyID string, req dto.UpdateCounterpartyRequest, requestingUserID string) (*domain.Counterparty, error)
	DeactivateCounterparty(ctx context.Context, organizationID, counterpartyID, requestingUserID string) error
}

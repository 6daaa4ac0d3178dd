package repositories

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ContractReader defines read operations for contract payment-plan data
type ContractReader interface {
	// FindContractByID retrieves a contract by its unique identifier.
	FindContractByID(ctx context.Context, organizationID, contractID string) (*domain.Contract, error)

	// FindPaymentPlan retrieves a contract together with its explicit
	// installments, trade-in credits and the persisted residual row.
	// The residual amount in the result is the raw cached copy; callers must
	// recompute before displaying it.
	FindPaymentPlan(ctx context.Context, organizationID, contractID string) (*domain.ContractPaymentPlan, error)

	// ListContracts retrieves all contracts of an organization.
	ListContracts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Contract, error)
}

// ContractWriter defines write operations for contract payment-plan data
type ContractWriter interface {
	// SaveContract persists a new contract with its initial residual row.
	SaveContract(ctx context.Context, contract domain.Contract, residual domain.ResidualInstallment) error

	// UpdateContractTotal updates a contract's authoritative total price.
	UpdateContractTotal(ctx context.Context, organizationID, contractID string, total decimal.Decimal, updatedBy string) error

	// SaveInstallment persists one explicit installment.
	SaveInstallment(ctx context.Context, installment domain.ContractInstallment) error

	// UpdateInstallment updates one explicit installment.
	UpdateInstallment(ctx context.Context, installment domain.ContractInstallment) error

	// DeleteInstallment removes one explicit installment.
	DeleteInstallment(ctx context.Context, contractID, installmentID string) error

	// SaveTradeIn persists one trade-in credit.
	SaveTradeIn(ctx context.Context, tradeIn domain.TradeInCredit) error

	// DeleteTradeIn removes one trade-in credit.
	DeleteTradeIn(ctx context.Context, contractID, tradeInID string) error

	// UpdateResidualCache overwrites the persisted residual copy. Only the
	// explicit resync path calls this; regular reads never write the cache.
	UpdateResidualCache(ctx context.Context, residual domain.ResidualInstallment) error
}

// ContractRepositoryFacade combines all contract-related repository interfaces
type ContractRepositoryFacade interface {
	ContractReader
	ContractWriter
}

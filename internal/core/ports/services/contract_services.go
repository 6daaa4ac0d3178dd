package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// ContractReaderSvc defines read operations for contract payment plans
type ContractReaderSvc interface {
	// GetPaymentPlan retrieves a contract's plan with the residual recomputed
	// and a drift advisory against the persisted cache.
	GetPaymentPlan(ctx context.Context, organizationID, contractID, requestingUserID string) (*domain.ContractPaymentPlan, error)

	// ListContracts retrieves an organization's contracts.
	ListContracts(ctx context.Context, organizationID, requestingUserID string, limit, offset int) ([]domain.Contract, error)
}

// ContractWriterSvc defines write operations for contract payment plans
type ContractWriterSvc interface {
	// CreateContract persists a new contract with an initial residual equal to
	// its total price.
	CreateContract(ctx context.Context, organizationID string, req dto.CreateContractRequest, creatorUserID string) (*domain.Contract, error)

	// UpdateTotalPrice changes the contract's authoritative total. The
	// residual is not rewritten; it is recomputed on the next read.
	UpdateTotalPrice(ctx context.Context, organizationID, contractID string, req dto.UpdateContractTotalRequest, requestingUserID string) error

	// AddInstallment appends an explicit installment to the plan.
	AddInstallment(ctx context.Context, organizationID, contractID string, req dto.CreateContractInstallmentRequest, requestingUserID string) (*domain.ContractInstallment, error)

	// UpdateInstallment edits an explicit installment.
	UpdateInstallment(ctx context.Context, organizationID, contractID, installmentID string, req dto.UpdateContractInstallmentRequest, requestingUserID string) (*domain.ContractInstallment, error)

	// RemoveInstallment deletes an explicit installment.
	RemoveInstallment(ctx context.Context, organizationID, contractID, installmentID, requestingUserID string) error

	// AddTradeIn appends a trade-in credit to the plan.
	AddTradeIn(ctx context.Context, organizationID, contractID string, req dto.CreateTradeInRequest, requestingUserID string) (*domain.TradeInCredit, error)

	// RemoveTradeIn deletes a trade-in credit.
	RemoveTradeIn(ctx context.Context, organizationID, contractID, tradeInID, requestingUserID string) error

	// ResyncResidual overwrites the persisted residual cache with the
	// recomputed value. This is the only path that writes the cache, and it
	// runs only on the user's explicit request.
	ResyncResidual(ctx context.Context, organizationID, contractID, requestingUserID string) (*domain.ResidualReconciliation, error)
}

// ContractSvcFacade combines all contract-related service interfaces
type ContractSvcFacade interface {
	ContractReaderSvc
	ContractWriterSvc
}

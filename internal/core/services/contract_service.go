package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/bizledger/bizledger_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrTotalNotPositive       = errors.New("contract total price must be positive")
	ErrInstallmentNotPositive = errors.New("installment amount must be positive")
	ErrTradeInNotPositive     = errors.New("trade-in amount must be positive")
)

// contractService provides contract payment-plan and residual reconciliation
// operations.
type contractService struct {
	contractRepo    portsrepo.ContractRepositoryFacade
	organizationSvc portssvc.OrganizationSvcFacade
}

// NewContractService creates a new ContractService.
func NewContractService(contractRepo portsrepo.ContractRepositoryFacade, organizationSvc portssvc.OrganizationSvcFacade) portssvc.ContractSvcFacade {
	return &contractService{
		contractRepo:    contractRepo,
		organizationSvc: organizationSvc,
	}
}

// Ensure contractService implements the portssvc.ContractSvcFacade interface
var _ portssvc.ContractSvcFacade = (*contractService)(nil)

func (s *contractService) authorize(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole) error {
	if s.organizationSvc == nil {
		return nil
	}
	return s.organizationSvc.AuthorizeUserAction(ctx, userID, organizationID, role)
}

// loadPlan fetches the plan and attaches the reconciliation. This is the
// single read path, so every caller sees the recomputed residual, never the
// raw cache.
func (s *contractService) loadPlan(ctx context.Context, organizationID, contractID string) (*domain.ContractPaymentPlan, error) {
	plan, err := s.contractRepo.FindPaymentPlan(ctx, organizationID, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment plan for contract %s: %w", contractID, err)
	}
	plan.Reconciled = accounting.ReconcileResidual(plan.Contract.TotalPrice, plan.Installments, plan.TradeIns, plan.Residual.CachedAmount)
	return plan, nil
}

// GetPaymentPlan retrieves a contract's plan with the residual recomputed and
// a drift advisory against the persisted cache.
// Implements portssvc.ContractReaderSvc
func (s *contractService) GetPaymentPlan(ctx context.Context, organizationID, contractID, requestingUserID string) (*domain.ContractPaymentPlan, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for GetPaymentPlan", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return nil, err
	}

	plan, err := s.loadPlan(ctx, organizationID, contractID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to load payment plan", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		}
		return nil, err
	}

	if plan.Reconciled.HasDrift {
		logger.Warn("Residual cache drift detected",
			slog.String("contract_id", contractID),
			slog.String("computed", plan.Reconciled.Computed.String()),
			slog.String("cached", plan.Reconciled.Cached.String()),
			slog.String("drift", plan.Reconciled.Drift.String()),
		)
	}
	return plan, nil
}

// ListContracts retrieves an organization's contracts.
// Implements portssvc.ContractReaderSvc
func (s *contractService) ListContracts(ctx context.Context, organizationID, requestingUserID string, limit, offset int) ([]domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListContracts", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	contracts, err := s.contractRepo.ListContracts(ctx, organizationID, limit, offset)
	if err != nil {
		logger.Error("Failed to list contracts", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve contracts: %w", err)
	}
	return contracts, nil
}

// CreateContract persists a new contract. The residual starts equal to the
// total price since no installments or trade-ins exist yet.
// Implements portssvc.ContractWriterSvc
func (s *contractService) CreateContract(ctx context.Context, organizationID string, req dto.CreateContractRequest, creatorUserID string) (*domain.Contract, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateContract", slog.String("user_id", creatorUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}
	if req.TotalPrice.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrTotalNotPositive, req.TotalPrice)
	}

	now := time.Now().UTC()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	contract := domain.Contract{
		ContractID:     uuid.NewString(),
		OrganizationID: organizationID,
		CounterpartyID: req.CounterpartyID,
		Description:    req.Description,
		TotalPrice:     req.TotalPrice,
		SignedAt:       req.SignedAt,
		AuditFields:    audit,
	}
	residualDescription := req.ResidualDescription
	if residualDescription == "" {
		residualDescription = "Final payment"
	}
	residual := domain.ResidualInstallment{
		ContractID:   contract.ContractID,
		Description:  residualDescription,
		DueDate:      req.ResidualDueDate,
		CachedAmount: req.TotalPrice,
		AuditFields:  audit,
	}

	if err := s.contractRepo.SaveContract(ctx, contract, residual); err != nil {
		logger.Error("Failed to save contract", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save contract: %w", err)
	}

	logger.Info("Contract created successfully", slog.String("contract_id", contract.ContractID), slog.String("organization_id", organizationID))
	return &contract, nil
}

// UpdateTotalPrice changes the contract's authoritative total. The cached
// residual is deliberately left untouched; the next read recomputes and the
// drift advisory tells the user the cache is stale.
// Implements portssvc.ContractWriterSvc
func (s *contractService) UpdateTotalPrice(ctx context.Context, organizationID, contractID string, req dto.UpdateContractTotalRequest, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for UpdateTotalPrice", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return err
	}
	if req.TotalPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: got %s", ErrTotalNotPositive, req.TotalPrice)
	}

	if _, err := s.contractRepo.FindContractByID(ctx, organizationID, contractID); err != nil {
		return fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	if err := s.contractRepo.UpdateContractTotal(ctx, organizationID, contractID, req.TotalPrice, requestingUserID); err != nil {
		logger.Error("Failed to update contract total", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return fmt.Errorf("failed to update contract total: %w", err)
	}
	logger.Info("Contract total updated", slog.String("contract_id", contractID), slog.String("total", req.TotalPrice.String()))
	return nil
}

// AddInstallment appends an explicit installment to the plan.
// Implements portssvc.ContractWriterSvc
func (s *contractService) AddInstallment(ctx context.Context, organizationID, contractID string, req dto.CreateContractInstallmentRequest, requestingUserID string) (*domain.ContractInstallment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for AddInstallment", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrInstallmentNotPositive, req.Amount)
	}
	if _, err := s.contractRepo.FindContractByID(ctx, organizationID, contractID); err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	now := time.Now().UTC()
	installment := domain.ContractInstallment{
		InstallmentID: uuid.NewString(),
		ContractID:    contractID,
		Description:   req.Description,
		Kind:          req.Kind,
		DueDate:       req.DueDate,
		Amount:        req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.contractRepo.SaveInstallment(ctx, installment); err != nil {
		logger.Error("Failed to save installment", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save installment: %w", err)
	}
	logger.Info("Installment added", slog.String("contract_id", contractID), slog.String("installment_id", installment.InstallmentID))
	return &installment, nil
}

// UpdateInstallment edits an explicit installment.
// Implements portssvc.ContractWriterSvc
func (s *contractService) UpdateInstallment(ctx context.Context, organizationID, contractID, installmentID string, req dto.UpdateContractInstallmentRequest, requestingUserID string) (*domain.ContractInstallment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for UpdateInstallment", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return nil, err
	}

	plan, err := s.contractRepo.FindPaymentPlan(ctx, organizationID, contractID)
	if err != nil {
		return nil, fmt.Errorf("failed to find payment plan for contract %s: %w", contractID, err)
	}
	var installment *domain.ContractInstallment
	for i := range plan.Installments {
		if plan.Installments[i].InstallmentID == installmentID {
			installment = &plan.Installments[i]
			break
		}
	}
	if installment == nil {
		return nil, fmt.Errorf("installment %s: %w", installmentID, apperrors.ErrNotFound)
	}

	if req.Description != nil {
		installment.Description = *req.Description
	}
	if req.Kind != nil {
		installment.Kind = *req.Kind
	}
	if req.DueDate != nil {
		installment.DueDate = *req.DueDate
	}
	if req.Amount != nil {
		if req.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: got %s", ErrInstallmentNotPositive, req.Amount)
		}
		installment.Amount = *req.Amount
	}
	installment.LastUpdatedAt = time.Now().UTC()
	installment.LastUpdatedBy = requestingUserID

	if err := s.contractRepo.UpdateInstallment(ctx, *installment); err != nil {
		logger.Error("Failed to update installment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return nil, fmt.Errorf("failed to update installment: %w", err)
	}
	logger.Info("Installment updated", slog.String("contract_id", contractID), slog.String("installment_id", installmentID))
	return installment, nil
}

// RemoveInstallment deletes an explicit installment. The residual grows by
// the removed amount on the next read; no cache write happens here.
// Implements portssvc.ContractWriterSvc
func (s *contractService) RemoveInstallment(ctx context.Context, organizationID, contractID, installmentID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for RemoveInstallment", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return err
	}
	if _, err := s.contractRepo.FindContractByID(ctx, organizationID, contractID); err != nil {
		return fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	if err := s.contractRepo.DeleteInstallment(ctx, contractID, installmentID); err != nil {
		logger.Error("Failed to delete installment", slog.String("error", err.Error()), slog.String("installment_id", installmentID))
		return fmt.Errorf("failed to delete installment: %w", err)
	}
	logger.Info("Installment removed", slog.String("contract_id", contractID), slog.String("installment_id", installmentID))
	return nil
}

// AddTradeIn appends a trade-in credit to the plan.
// Implements portssvc.ContractWriterSvc
func (s *contractService) AddTradeIn(ctx context.Context, organizationID, contractID string, req dto.CreateTradeInRequest, requestingUserID string) (*domain.TradeInCredit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for AddTradeIn", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return nil, err
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrTradeInNotPositive, req.Amount)
	}
	if _, err := s.contractRepo.FindContractByID(ctx, organizationID, contractID); err != nil {
		return nil, fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	now := time.Now().UTC()
	tradeIn := domain.TradeInCredit{
		TradeInID:   uuid.NewString(),
		ContractID:  contractID,
		Description: req.Description,
		Date:        req.Date,
		Amount:      req.Amount,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.contractRepo.SaveTradeIn(ctx, tradeIn); err != nil {
		logger.Error("Failed to save trade-in", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to save trade-in: %w", err)
	}
	logger.Info("Trade-in added", slog.String("contract_id", contractID), slog.String("trade_in_id", tradeIn.TradeInID))
	return &tradeIn, nil
}

// RemoveTradeIn deletes a trade-in credit.
// Implements portssvc.ContractWriterSvc
func (s *contractService) RemoveTradeIn(ctx context.Context, organizationID, contractID, tradeInID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for RemoveTradeIn", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return err
	}
	if _, err := s.contractRepo.FindContractByID(ctx, organizationID, contractID); err != nil {
		return fmt.Errorf("failed to find contract %s: %w", contractID, err)
	}

	if err := s.contractRepo.DeleteTradeIn(ctx, contractID, tradeInID); err != nil {
		logger.Error("Failed to delete trade-in", slog.String("error", err.Error()), slog.String("trade_in_id", tradeInID))
		return fmt.Errorf("failed to delete trade-in: %w", err)
	}
	logger.Info("Trade-in removed", slog.String("contract_id", contractID), slog.String("trade_in_id", tradeInID))
	return nil
}

// ResyncResidual overwrites the persisted residual cache with the recomputed
// value on the user's explicit request. Reads never write the cache.
// Implements portssvc.ContractWriterSvc
func (s *contractService) ResyncResidual(ctx context.Context, organizationID, contractID, requestingUserID string) (*domain.ResidualReconciliation, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for ResyncResidual", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("contract_id", contractID), slog.String("error", err.Error()))
		return nil, err
	}

	plan, err := s.loadPlan(ctx, organizationID, contractID)
	if err != nil {
		return nil, err
	}

	residual := plan.Residual
	residual.CachedAmount = plan.Reconciled.Computed
	residual.LastUpdatedAt = time.Now().UTC()
	residual.LastUpdatedBy = requestingUserID
	if err := s.contractRepo.UpdateResidualCache(ctx, residual); err != nil {
		logger.Error("Failed to update residual cache", slog.String("error", err.Error()), slog.String("contract_id", contractID))
		return nil, fmt.Errorf("failed to update residual cache: %w", err)
	}

	// After the write, cache equals computed and the drift is gone.
	reconciled := accounting.ReconcileResidual(plan.Contract.TotalPrice, plan.Installments, plan.TradeIns, residual.CachedAmount)
	logger.Info("Residual cache resynchronized", slog.String("contract_id", contractID), slog.String("residual", reconciled.Computed.String()))
	return &reconciled, nil
}

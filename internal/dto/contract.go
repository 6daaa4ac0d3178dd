package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateContractRequest defines the data needed to create a contract.
type CreateContractRequest struct {
	Description    string          `json:"description" binding:"required"`
	CounterpartyID string          `json:"counterpartyID" binding:"required"`
	TotalPrice     decimal.Decimal `json:"totalPrice" binding:"required"`
	SignedAt       time.Time       `json:"signedAt" binding:"required"`
	// Residual installment presentation fields.
	ResidualDescription string    `json:"residualDescription"`
	ResidualDueDate     time.Time `json:"residualDueDate" binding:"required"`
}

// UpdateContractTotalRequest changes the contract's authoritative total price.
type UpdateContractTotalRequest struct {
	TotalPrice decimal.Decimal `json:"totalPrice" binding:"required"`
}

// CreateContractInstallmentRequest defines one explicit installment.
type CreateContractInstallmentRequest struct {
	Description string                 `json:"description" binding:"required"`
	Kind        domain.InstallmentKind `json:"kind" binding:"required,oneof=DOWN_PAYMENT CONSTRUCTION ADDITIONAL"`
	DueDate     time.Time              `json:"dueDate" binding:"required"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
}

// UpdateContractInstallmentRequest edits one explicit installment.
type UpdateContractInstallmentRequest struct {
	Description *string                 `json:"description"`
	Kind        *domain.InstallmentKind `json:"kind" binding:"omitempty,oneof=DOWN_PAYMENT CONSTRUCTION ADDITIONAL"`
	DueDate     *time.Time              `json:"dueDate"`
	Amount      *decimal.Decimal        `json:"amount"`
}

// CreateTradeInRequest defines one trade-in credit.
type CreateTradeInRequest struct {
	Description string          `json:"description" binding:"required"`
	Date        time.Time       `json:"date" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
}

// ResidualAdvisoryResponse carries the recomputed residual and the drift
// banner data. The computed value is authoritative; the cached value is shown
// only so the user can decide to resynchronize.
type ResidualAdvisoryResponse struct {
	Computed decimal.Decimal `json:"computed"`
	Cached   decimal.Decimal `json:"cached"`
	Drift    decimal.Decimal `json:"drift"`
	HasDrift bool            `json:"hasDrift"`
}

// ContractResponse defines the data returned for a contract.
type ContractResponse struct {
	ContractID     string          `json:"contractID"`
	OrganizationID string          `json:"organizationID"`
	CounterpartyID string          `json:"counterpartyID"`
	Description    string          `json:"description"`
	TotalPrice     decimal.Decimal `json:"totalPrice"`
	SignedAt       time.Time       `json:"signedAt"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      string          `json:"createdBy"`
}

// ContractInstallmentResponse defines the data returned for an installment.
type ContractInstallmentResponse struct {
	InstallmentID string                 `json:"installmentID"`
	Description   string                 `json:"description"`
	Kind          domain.InstallmentKind `json:"kind"`
	DueDate       time.Time              `json:"dueDate"`
	Amount        decimal.Decimal        `json:"amount"`
}

// TradeInResponse defines the data returned for a trade-in credit.
type TradeInResponse struct {
	TradeInID   string          `json:"tradeInID"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentPlanResponse is the full payment plan with the residual recomputed.
type PaymentPlanResponse struct {
	Contract     ContractResponse              `json:"contract"`
	Installments []ContractInstallmentResponse `json:"installments"`
	TradeIns     []TradeInResponse             `json:"tradeIns"`
	ResidualDescription string                 `json:"residualDescription"`
	ResidualDueDate     time.Time              `json:"residualDueDate"`
	Residual     ResidualAdvisoryResponse      `json:"residual"`
}

// ToContractResponse converts a domain.Contract to ContractResponse DTO.
func ToContractResponse(c *domain.Contract) ContractResponse {
	return ContractResponse{
		ContractID:     c.ContractID,
		OrganizationID: c.OrganizationID,
		CounterpartyID: c.CounterpartyID,
		Description:    c.Description,
		TotalPrice:     c.TotalPrice,
		SignedAt:       c.SignedAt,
		CreatedAt:      c.CreatedAt,
		CreatedBy:      c.CreatedBy,
	}
}

// ToPaymentPlanResponse converts a domain.ContractPaymentPlan to its DTO.
func ToPaymentPlanResponse(plan *domain.ContractPaymentPlan) PaymentPlanResponse {
	installments := make([]ContractInstallmentResponse, len(plan.Installments))
	for i, inst := range plan.Installments {
		installments[i] = ContractInstallmentResponse{
			InstallmentID: inst.InstallmentID,
			Description:   inst.Description,
			Kind:          inst.Kind,
			DueDate:       inst.DueDate,
			Amount:        inst.Amount,
		}
	}
	tradeIns := make([]TradeInResponse, len(plan.TradeIns))
	for i, ti := range plan.TradeIns {
		tradeIns[i] = TradeInResponse{
			TradeInID:   ti.TradeInID,
			Description: ti.Description,
			Date:        ti.Date,
			Amount:      ti.Amount,
		}
	}
	return PaymentPlanResponse{
		Contract:            ToContractResponse(&plan.Contract),
		Installments:        installments,
		TradeIns:            tradeIns,
		ResidualDescription: plan.Residual.Description,
		ResidualDueDate:     plan.Residual.DueDate,
		Residual: ResidualAdvisoryResponse{
			Computed: plan.Reconciled.Computed,
			Cached:   plan.Reconciled.Cached,
			Drift:    plan.Reconciled.Drift,
			HasDrift: plan.Reconciled.HasDrift,
		},
	}
}

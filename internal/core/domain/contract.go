package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InstallmentKind tags an explicit contract installment.
type InstallmentKind string

const (
	DownPayment  InstallmentKind = "DOWN_PAYMENT"
	Construction InstallmentKind = "CONSTRUCTION"
	Additional   InstallmentKind = "ADDITIONAL"
)

// Contract represents a sale contract whose payment plan this engine reconciles.
type Contract struct {
	ContractID     string          `json:"contractID"` // Primary Key (UUID)
	OrganizationID string          `json:"organizationID"`
	CounterpartyID string          `json:"counterpartyID"` // The buyer
	Description    string          `json:"description"`
	TotalPrice     decimal.Decimal `json:"totalPrice"` // Authoritative, mutable
	SignedAt       time.Time       `json:"signedAt"`
	AuditFields
}

// ContractInstallment is one explicit slice of a contract's payment plan.
type ContractInstallment struct {
	InstallmentID string          `json:"installmentID"` // Primary Key (UUID)
	ContractID    string          `json:"contractID"`    // FK -> contracts.contract_id
	Description   string          `json:"description"`
	Kind          InstallmentKind `json:"kind"`
	DueDate       time.Time       `json:"dueDate"`
	Amount        decimal.Decimal `json:"amount"`
	AuditFields
}

// TradeInCredit is a non-cash value applied against a contract's total price.
type TradeInCredit struct {
	TradeInID   string          `json:"tradeInID"` // Primary Key (UUID)
	ContractID  string          `json:"contractID"`
	Description string          `json:"description"`
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	AuditFields
}

// ResidualInstallment is the balancing final payment of a contract. The amount
// held here is only a persisted cache for reporting; readers must always use
// the recomputed value (see ResidualReconciliation).
type ResidualInstallment struct {
	ContractID   string          `json:"contractID"` // Primary Key / FK
	Description  string          `json:"description"`
	DueDate      time.Time       `json:"dueDate"`
	CachedAmount decimal.Decimal `json:"cachedAmount"`
	AuditFields
}

// ResidualReconciliation is the advisory result of recomputing a contract's
// residual against its persisted cache. Drift is never an error.
type ResidualReconciliation struct {
	Computed decimal.Decimal `json:"computed"` // Authoritative residual amount
	Cached   decimal.Decimal `json:"cached"`   // Stale persisted copy, zero when absent
	Drift    decimal.Decimal `json:"drift"`    // Computed minus cached
	HasDrift bool            `json:"hasDrift"` // True when |Drift| exceeds the alert threshold
}

// ContractPaymentPlan is the full schedule attached to a contract, with the
// residual recomputed on every read.
type ContractPaymentPlan struct {
	Contract     Contract               `json:"contract"`
	Installments []ContractInstallment  `json:"installments"`
	TradeIns     []TradeInCredit        `json:"tradeIns"`
	Residual     ResidualInstallment    `json:"residual"`
	Reconciled   ResidualReconciliation `json:"reconciled"`
}

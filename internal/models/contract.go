package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract represents a sale contract row.
type Contract struct {
	ContractID     string          `db:"contract_id"`
	OrganizationID string          `db:"organization_id"`
	CounterpartyID string          `db:"counterparty_id"`
	Description    string          `db:"description"`
	TotalPrice     decimal.Decimal `db:"total_price"`
	SignedAt       time.Time       `db:"signed_at"`
	AuditFields
}

// ContractInstallment is one explicit payment plan row.
type ContractInstallment struct {
	InstallmentID string          `db:"installment_id"`
	ContractID    string          `db:"contract_id"`
	Description   string          `db:"description"`
	Kind          string          `db:"kind"`
	DueDate       time.Time       `db:"due_date"`
	Amount        decimal.Decimal `db:"amount"`
	AuditFields
}

// TradeInCredit is a non-cash credit row applied against a contract.
type TradeInCredit struct {
	TradeInID   string          `db:"trade_in_id"`
	ContractID  string          `db:"contract_id"`
	Description string          `db:"description"`
	Date        time.Time       `db:"date"`
	Amount      decimal.Decimal `db:"amount"`
	AuditFields
}

// ResidualInstallment is the balancing final payment row of a contract. The
// amount column is a reporting cache, not the source of truth.
type ResidualInstallment struct {
	ContractID   string          `db:"contract_id"`
	Description  string          `db:"description"`
	DueDate      time.Time       `db:"due_date"`
	CachedAmount decimal.Decimal `db:"cached_amount"`
	AuditFields
}

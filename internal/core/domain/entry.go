package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryNature indicates whether a ledger entry is money going out or coming in.
type EntryNature string

const (
	Expense EntryNature = "EXPENSE"
	Income  EntryNature = "INCOME"
)

// SettlementStatus indicates whether an entry has been paid/received.
type SettlementStatus string

const (
	Pending SettlementStatus = "PENDING"
	Settled SettlementStatus = "SETTLED"
)

// RecurrenceFrequency is the cadence of a recurring series. Only monthly is
// supported; the field exists on the first entry of a series for downstream
// bookkeeping.
type RecurrenceFrequency string

const (
	Monthly RecurrenceFrequency = "MONTHLY"
)

// LedgerEntry represents a single financial movement within an organization.
// Amount is always positive; Nature carries the sign.
type LedgerEntry struct {
	EntryID         string           `json:"entryID"`        // Primary Key (UUID), empty on drafts
	OrganizationID  string           `json:"organizationID"` // FK -> organizations.organization_id (Not Null)
	Description     string           `json:"description"`
	Amount          decimal.Decimal  `json:"amount"` // Positive value; precise decimal type
	Nature          EntryNature      `json:"nature"`
	TransactionDate time.Time        `json:"transactionDate"`
	DueDate         time.Time        `json:"dueDate"`
	Status          SettlementStatus `json:"status"`
	SettlementDate  *time.Time       `json:"settlementDate,omitempty"` // Present iff Status == Settled
	AccountID       string           `json:"accountID"`                // FK -> accounts.account_id (Not Null)
	CounterpartyID  string           `json:"counterpartyID"`           // Nullable FK -> counterparties
	CategoryID      string           `json:"categoryID"`               // Nullable FK -> categories
	VentureID       string           `json:"ventureID"`                // Nullable cost-center reference
	PhaseID         string           `json:"phaseID"`                  // Nullable cost-center reference
	CompanyID       string           `json:"companyID"`                // Nullable cost-center reference
	SeriesID        string           `json:"seriesID"`                 // Shared by all entries of one generation batch
	TransferID      string           `json:"transferID"`               // Shared by the two legs of a transfer pair
	Notes           string           `json:"notes"`

	// Recurrence metadata, carried only by the first entry of a recurring series.
	RecurrenceFrequency RecurrenceFrequency `json:"recurrenceFrequency,omitempty"`
	RecurrenceEndDate   *time.Time          `json:"recurrenceEndDate,omitempty"`

	AuditFields
}

// IsTransferLeg reports whether the entry belongs to a transfer pair.
func (e *LedgerEntry) IsTransferLeg() bool {
	return e.TransferID != ""
}

// InSeries reports whether the entry was created as part of an
// installment/recurring batch.
func (e *LedgerEntry) InSeries() bool {
	return e.SeriesID != ""
}

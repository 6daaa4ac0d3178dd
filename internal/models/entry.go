package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry represents one financial movement row. Amount is always
// positive; nature carries the sign. Nullable references use sql.NullString
// so absent links stay NULL rather than empty strings.
type LedgerEntry struct {
	EntryID         string          `db:"entry_id"`
	OrganizationID  string          `db:"organization_id"`
	Description     string          `db:"description"`
	Amount          decimal.Decimal `db:"amount"`
	Nature          string          `db:"nature"`
	TransactionDate time.Time       `db:"transaction_date"`
	DueDate         time.Time       `db:"due_date"`
	Status          string          `db:"status"`
	SettlementDate  sql.NullTime    `db:"settlement_date"`
	AccountID       string          `db:"account_id"`
	CounterpartyID  sql.NullString  `db:"counterparty_id"`
	CategoryID      sql.NullString  `db:"category_id"`
	VentureID       sql.NullString  `db:"venture_id"`
	PhaseID         sql.NullString  `db:"phase_id"`
	CompanyID       sql.NullString  `db:"company_id"`
	SeriesID        sql.NullString  `db:"series_id"`
	TransferID      sql.NullString  `db:"transfer_id"`
	Notes           string          `db:"notes"`

	RecurrenceFrequency sql.NullString `db:"recurrence_frequency"`
	RecurrenceEndDate   sql.NullTime   `db:"recurrence_end_date"`

	AuditFields
}

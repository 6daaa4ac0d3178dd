package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cadence selects how a series spec is expanded into entries.
type Cadence string

const (
	// Installment divides a total amount into N dated slices.
	Installment Cadence = "INSTALLMENT"
	// Recurring repeats a flat amount every month.
	Recurring Cadence = "RECURRING"
)

// DefaultOpenEndedOccurrences bounds the batch produced for an open-ended
// recurring spec. The value is inherited behavior with no stronger business
// meaning; callers may override it via SeriesSpec.MaxOccurrences.
const DefaultOpenEndedOccurrences = 60

// SeriesSpec is the single user intent from which a whole series of ledger
// entries is generated.
type SeriesSpec struct {
	Cadence Cadence `json:"cadence"`

	// TotalAmount is the sum to be divided for Installment, or the flat
	// per-occurrence amount for Recurring.
	TotalAmount decimal.Decimal `json:"totalAmount"`

	// InstallmentCount is required for Installment (>= 1); ignored for Recurring.
	InstallmentCount int `json:"installmentCount"`

	// RecurrenceEndDate bounds a Recurring series; nil means open-ended.
	RecurrenceEndDate *time.Time `json:"recurrenceEndDate,omitempty"`

	// MaxOccurrences caps an open-ended recurring series; zero means
	// DefaultOpenEndedOccurrences.
	MaxOccurrences int `json:"maxOccurrences,omitempty"`

	// AnchorDueDate is the due date of the first entry; subsequent entries are
	// placed one calendar month apart, day-of-month clamped.
	AnchorDueDate time.Time `json:"anchorDueDate"`

	// Shared fields copied onto every generated entry.
	Description     string      `json:"description"`
	Nature          EntryNature `json:"nature"`
	TransactionDate time.Time   `json:"transactionDate"`
	AccountID       string      `json:"accountID"`
	CategoryID      string      `json:"categoryID"`
	CounterpartyID  string      `json:"counterpartyID"`
	VentureID       string      `json:"ventureID"`
	PhaseID         string      `json:"phaseID"`
	CompanyID       string      `json:"companyID"`
	Notes           string      `json:"notes"`
}

// EditScope selects how far an edit to one series member reaches.
type EditScope string

const (
	// ScopeSingle applies the edit to the edited entry alone.
	ScopeSingle EditScope = "SINGLE"
	// ScopeFuture applies the edit to the edited entry and every later entry
	// of the same series.
	ScopeFuture EditScope = "FUTURE"
)

// SeriesEdit is the fully resolved command for editing a series member. The
// caller decides the scope up front; for ScopeFuture, FutureEntries must hold
// every sibling of the same series whose due date is strictly after the
// original entry's due date, excluding the edited entry itself.
type SeriesEdit struct {
	Original      LedgerEntry   `json:"original"`
	Edited        LedgerEntry   `json:"edited"`
	Scope         EditScope     `json:"scope"`
	FutureEntries []LedgerEntry `json:"futureEntries,omitempty"`
}


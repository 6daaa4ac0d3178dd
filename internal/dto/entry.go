package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateEntryRequest defines the data needed to create a single ledger entry.
type CreateEntryRequest struct {
	Description     string             `json:"description" binding:"required"`
	Amount          decimal.Decimal    `json:"amount" binding:"required"`
	Nature          domain.EntryNature `json:"nature" binding:"required,oneof=EXPENSE INCOME"`
	TransactionDate time.Time          `json:"transactionDate" binding:"required"`
	DueDate         time.Time          `json:"dueDate" binding:"required"`
	AccountID       string             `json:"accountID" binding:"required"`
	CategoryID      string             `json:"categoryID"`
	CounterpartyID  string             `json:"counterpartyID"`
	VentureID       string             `json:"ventureID"`
	PhaseID         string             `json:"phaseID"`
	CompanyID       string             `json:"companyID"`
	Settled         bool               `json:"settled"`
	SettlementDate  *time.Time         `json:"settlementDate"`
	Notes           string             `json:"notes"`
}

// UpdateEntryRequest defines an edit to an existing entry together with its
// scope. Scope FUTURE cascades the edit to every later entry of the same
// series; SINGLE (the default) touches the edited entry alone.
type UpdateEntryRequest struct {
	Scope           domain.EditScope   `json:"scope" binding:"omitempty,oneof=SINGLE FUTURE"`
	Description     *string            `json:"description"`
	Amount          *decimal.Decimal   `json:"amount"`
	Nature          *domain.EntryNature `json:"nature" binding:"omitempty,oneof=EXPENSE INCOME"`
	TransactionDate *time.Time         `json:"transactionDate"`
	DueDate         *time.Time         `json:"dueDate"`
	AccountID       *string            `json:"accountID"`
	CategoryID      *string            `json:"categoryID"`
	CounterpartyID  *string            `json:"counterpartyID"`
	VentureID       *string            `json:"ventureID"`
	PhaseID         *string            `json:"phaseID"`
	CompanyID       *string            `json:"companyID"`
	Settled         *bool              `json:"settled"`
	SettlementDate  *time.Time         `json:"settlementDate"`
	Notes           *string            `json:"notes"`
}

// EntryResponse defines the data returned for a ledger entry.
type EntryResponse struct {
	EntryID         string              `json:"entryID"`
	OrganizationID  string              `json:"organizationID"`
	Description     string              `json:"description"`
	Amount          decimal.Decimal     `json:"amount"`
	Nature          domain.EntryNature  `json:"nature"`
	TransactionDate time.Time           `json:"transactionDate"`
	DueDate         time.Time           `json:"dueDate"`
	Status          domain.SettlementStatus `json:"status"`
	SettlementDate  *time.Time          `json:"settlementDate,omitempty"`
	AccountID       string              `json:"accountID"`
	CategoryID      string              `json:"categoryID,omitempty"`
	CounterpartyID  string              `json:"counterpartyID,omitempty"`
	VentureID       string              `json:"ventureID,omitempty"`
	PhaseID         string              `json:"phaseID,omitempty"`
	CompanyID       string              `json:"companyID,omitempty"`
	SeriesID        string              `json:"seriesID,omitempty"`
	TransferID      string              `json:"transferID,omitempty"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"createdAt"`
	CreatedBy       string              `json:"createdBy"`
}

// ListEntriesParams defines query parameters for listing entries.
type ListEntriesParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
}

// ListEntriesResponse wraps a page of entries with the token for the next page.
type ListEntriesResponse struct {
	Entries   []EntryResponse `json:"entries"`
	NextToken *string         `json:"nextToken,omitempty"`
}

// ToEntryResponse converts a domain.LedgerEntry to EntryResponse DTO.
func ToEntryResponse(e *domain.LedgerEntry) EntryResponse {
	return EntryResponse{
		EntryID:         e.EntryID,
		OrganizationID:  e.OrganizationID,
		Description:     e.Description,
		Amount:          e.Amount,
		Nature:          e.Nature,
		TransactionDate: e.TransactionDate,
		DueDate:         e.DueDate,
		Status:          e.Status,
		SettlementDate:  e.SettlementDate,
		AccountID:       e.AccountID,
		CategoryID:      e.CategoryID,
		CounterpartyID:  e.CounterpartyID,
		VentureID:       e.VentureID,
		PhaseID:         e.PhaseID,
		CompanyID:       e.CompanyID,
		SeriesID:        e.SeriesID,
		TransferID:      e.TransferID,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
		CreatedBy:       e.CreatedBy,
	}
}

// ToEntryResponses converts a slice of domain.LedgerEntry to []EntryResponse.
func ToEntryResponses(entries []domain.LedgerEntry) []EntryResponse {
	responses := make([]EntryResponse, len(entries))
	for i, e := range entries {
		responses[i] = ToEntryResponse(&e)
	}
	return responses
}

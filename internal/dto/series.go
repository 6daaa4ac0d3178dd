package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSeriesRequest defines the single user intent from which an
// installment or recurring series is generated.
type CreateSeriesRequest struct {
	Cadence           domain.Cadence     `json:"cadence" binding:"required,oneof=INSTALLMENT RECURRING"`
	TotalAmount       decimal.Decimal    `json:"totalAmount" binding:"required"`
	InstallmentCount  int                `json:"installmentCount"`
	RecurrenceEndDate *time.Time         `json:"recurrenceEndDate"`
	MaxOccurrences    int                `json:"maxOccurrences"`
	AnchorDueDate     time.Time          `json:"anchorDueDate" binding:"required"`
	Description       string             `json:"description" binding:"required"`
	Nature            domain.EntryNature `json:"nature" binding:"required,oneof=EXPENSE INCOME"`
	TransactionDate   time.Time          `json:"transactionDate" binding:"required"`
	AccountID         string             `json:"accountID" binding:"required"`
	CategoryID        string             `json:"categoryID"`
	CounterpartyID    string             `json:"counterpartyID"`
	VentureID         string             `json:"ventureID"`
	PhaseID           string             `json:"phaseID"`
	CompanyID         string             `json:"companyID"`
	Notes             string             `json:"notes"`
}

// ToSeriesSpec converts the request into the domain spec consumed by the
// scheduling engine.
func (r *CreateSeriesRequest) ToSeriesSpec() domain.SeriesSpec {
	return domain.SeriesSpec{
		Cadence:           r.Cadence,
		TotalAmount:       r.TotalAmount,
		InstallmentCount:  r.InstallmentCount,
		RecurrenceEndDate: r.RecurrenceEndDate,
		MaxOccurrences:    r.MaxOccurrences,
		AnchorDueDate:     r.AnchorDueDate,
		Description:       r.Description,
		Nature:            r.Nature,
		TransactionDate:   r.TransactionDate,
		AccountID:         r.AccountID,
		CategoryID:        r.CategoryID,
		CounterpartyID:    r.CounterpartyID,
		VentureID:         r.VentureID,
		PhaseID:           r.PhaseID,
		CompanyID:         r.CompanyID,
		Notes:             r.Notes,
	}
}

// CreateSeriesResponse returns the persisted batch and its shared series ID.
type CreateSeriesResponse struct {
	SeriesID string          `json:"seriesID"`
	Entries  []EntryResponse `json:"entries"`
}

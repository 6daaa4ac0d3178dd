package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTransferRequest defines the data needed to create a linked
// double-entry transfer pair.
type CreateTransferRequest struct {
	SourceAccountID string          `json:"sourceAccountID" binding:"required"`
	DestAccountID   string          `json:"destAccountID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Date            time.Time       `json:"date" binding:"required"`
	Description     string          `json:"description" binding:"required"`
}

// TransferResponse returns both legs of a created transfer.
type TransferResponse struct {
	TransferID string        `json:"transferID"`
	Outgoing   EntryResponse `json:"outgoing"`
	Incoming   EntryResponse `json:"incoming"`
}

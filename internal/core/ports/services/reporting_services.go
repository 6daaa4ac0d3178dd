package services

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// ReportingSvcFacade defines aggregate read operations over an organization's entries
type ReportingSvcFacade interface {
	// GetCashflowSummary aggregates entries over [from, to], split by nature
	// and settlement status.
	GetCashflowSummary(ctx context.Context, organizationID, requestingUserID string, from, to time.Time) (*domain.CashflowSummary, error)
}

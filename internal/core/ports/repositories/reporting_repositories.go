package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// ReportingRepositoryFacade defines aggregate read operations over entries
type ReportingRepositoryFacade interface {
	// GetCashflowSummary aggregates an organization's entries over [from, to].
	GetCashflowSummary(ctx context.Context, organizationID string, from, to time.Time) (*domain.CashflowSummary, error)
}

package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// ScheduleSvcFacade exposes the pure scheduling engine: expanding a single
// series spec into dated entry drafts, and computing the update set for an
// edit scoped to one entry or to the whole future tail of its series.
// Neither operation performs I/O; persistence of the returned batches is the
// caller's responsibility and must happen atomically per batch.
type ScheduleSvcFacade interface {
	// GenerateSeries expands spec into an ordered list of entry drafts, all
	// sharing one freshly assigned series identifier. The whole batch is
	// produced or none is.
	GenerateSeries(ctx context.Context, organizationID string, spec domain.SeriesSpec, creatorUserID string) ([]domain.LedgerEntry, error)

	// PropagateEdit computes the update set for a series edit. ScopeSingle
	// returns exactly the edited entry; ScopeFuture additionally shifts every
	// entry in edit.FutureEntries, re-anchored to the edited entry's
	// day-of-month.
	PropagateEdit(ctx context.Context, edit domain.SeriesEdit, editorUserID string) ([]domain.LedgerEntry, error)
}

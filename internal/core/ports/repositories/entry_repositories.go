package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// EntryReader defines read operations for ledger entry data
type EntryReader interface {
	// FindEntryByID retrieves a specific entry by its unique identifier.
	FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries for an organization
	// using token-based pagination. It returns the entries, a token for the
	// next page, and an error.
	ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error)

	// FindSeriesEntriesDueAfter retrieves every entry of a series whose due
	// date is strictly after the given date, excluding excludeEntryID.
	// This is the read backing a ScopeFuture propagation.
	FindSeriesEntriesDueAfter(ctx context.Context, organizationID, seriesID string, after time.Time, excludeEntryID string) ([]domain.LedgerEntry, error)

	// FindEntriesByTransferID retrieves both legs of a transfer pair.
	FindEntriesByTransferID(ctx context.Context, organizationID, transferID string) ([]domain.LedgerEntry, error)

	// FindEntriesDueBetween retrieves pending entries across all organizations
	// whose due date falls in [from, to]; used by the due scanner.
	FindEntriesDueBetween(ctx context.Context, from, to time.Time) ([]domain.LedgerEntry, error)
}

// EntryWriter defines write operations for ledger entry data
type EntryWriter interface {
	// SaveEntries persists a batch of entries atomically. A whole generated
	// series (or a transfer pair) is written in one database transaction or
	// not at all.
	SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error

	// UpdateEntries applies a batch of entry updates atomically; a ScopeFuture
	// propagation submits its pivot plus the shifted tail here as one batch.
	UpdateEntries(ctx context.Context, entries []domain.LedgerEntry) error

	// DeleteEntry removes a single entry.
	DeleteEntry(ctx context.Context, organizationID, entryID string) error

	// DeleteTransferPair removes both legs of a transfer atomically.
	DeleteTransferPair(ctx context.Context, organizationID, transferID string) error
}

// EntryRepositoryFacade combines all entry-related repository interfaces
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}

// EntryRepositoryWithTx extends EntryRepositoryFacade with transaction capabilities
type EntryRepositoryWithTx interface {
	EntryRepositoryFacade
	TransactionManager
}

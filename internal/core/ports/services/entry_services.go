package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
	"github.com/bizledger/bizledger_app/internal/dto"
)

// EntryReaderSvc defines read operations for ledger entry data
type EntryReaderSvc interface {
	// GetEntryByID retrieves a specific entry by its ID.
	GetEntryByID(ctx context.Context, organizationID, entryID, requestingUserID string) (*domain.LedgerEntry, error)

	// ListEntries retrieves a paginated list of entries in an organization.
	ListEntries(ctx context.Context, organizationID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error)
}

// EntryWriterSvc defines write operations for ledger entry data
type EntryWriterSvc interface {
	// CreateEntry persists a single entry.
	CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error)

	// CreateSeries generates an installment/recurring series from one spec and
	// persists the whole batch atomically.
	CreateSeries(ctx context.Context, organizationID string, req dto.CreateSeriesRequest, creatorUserID string) ([]domain.LedgerEntry, error)

	// UpdateEntry applies an edit with the requested scope. For ScopeFuture it
	// fetches the series tail, computes the propagation and persists pivot
	// plus tail as one batch. It returns every updated entry.
	UpdateEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateEntryRequest, requestingUserID string) ([]domain.LedgerEntry, error)

	// DeleteEntry removes an entry; when the entry is a transfer leg, both
	// legs are removed atomically.
	DeleteEntry(ctx context.Context, organizationID, entryID, requestingUserID string) error
}

// TransferSvc defines operations for linked double-entry transfer pairs
type TransferSvc interface {
	// CreateTransfer builds and persists the outgoing and incoming legs of an
	// inter-account transfer as one atomic pair.
	CreateTransfer(ctx context.Context, organizationID string, req dto.CreateTransferRequest, creatorUserID string) ([]domain.LedgerEntry, error)

	// DeleteTransfer removes both legs of a transfer pair atomically.
	DeleteTransfer(ctx context.Context, organizationID, transferID, requestingUserID string) error
}

// EntrySvcFacade combines all entry-related service interfaces
type EntrySvcFacade interface {
	EntryReaderSvc
	EntryWriterSvc
	TransferSvc
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/middleware"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTransfer   = errors.New("invalid transfer")
	ErrAccountNotFound   = errors.New("account not found")
	ErrAmountNotPositive = errors.New("entry amount must be positive")
)

// entryService provides ledger entry, series and transfer operations.
type entryService struct {
	entryRepo       portsrepo.EntryRepositoryWithTx
	scheduleSvc     portssvc.ScheduleSvcFacade
	accountSvc      portssvc.AccountSvcFacade
	organizationSvc portssvc.OrganizationSvcFacade
	notifier        portssvc.EntryNotifier
}

// NewEntryService creates a new EntryService. The notifier may be nil when no
// event transport is configured.
func NewEntryService(entryRepo portsrepo.EntryRepositoryWithTx, scheduleSvc portssvc.ScheduleSvcFacade, accountSvc portssvc.AccountSvcFacade, organizationSvc portssvc.OrganizationSvcFacade, notifier portssvc.EntryNotifier) portssvc.EntrySvcFacade {
	return &entryService{
		entryRepo:       entryRepo,
		scheduleSvc:     scheduleSvc,
		accountSvc:      accountSvc,
		organizationSvc: organizationSvc,
		notifier:        notifier,
	}
}

// Ensure entryService implements the portssvc.EntrySvcFacade interface
var _ portssvc.EntrySvcFacade = (*entryService)(nil)

func (s *entryService) authorize(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole) error {
	if s.organizationSvc == nil {
		return nil
	}
	return s.organizationSvc.AuthorizeUserAction(ctx, userID, organizationID, role)
}

// validateAccount ensures the referenced account exists, is active and belongs
// to the organization the entry is being written into.
func (s *entryService) validateAccount(ctx context.Context, organizationID, accountID string) error {
	acc, err := s.accountSvc.GetAccountByID(ctx, organizationID, accountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: ID %s", ErrAccountNotFound, accountID)
		}
		return fmt.Errorf("failed to fetch account %s: %w", accountID, err)
	}
	if !acc.IsActive {
		return fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return nil
}

// publishCreated is best-effort; delivery failures never fail the write that
// already committed.
func (s *entryService) publishCreated(ctx context.Context, entries []domain.LedgerEntry) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.PublishEntriesCreated(ctx, entries); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to publish entry created events", slog.String("error", err.Error()), slog.Int("count", len(entries)))
	}
}

// CreateEntry creates a single ledger entry after validation.
// Implements portssvc.EntryWriterSvc
func (s *entryService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateEntryRequest, creatorUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateEntry", slog.String("user_id", creatorUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.Amount)
	}
	if err := s.validateAccount(ctx, organizationID, req.AccountID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	entry := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		OrganizationID:  organizationID,
		Description:     req.Description,
		Amount:          req.Amount,
		Nature:          req.Nature,
		TransactionDate: req.TransactionDate,
		DueDate:         req.DueDate,
		Status:          domain.Pending,
		AccountID:       req.AccountID,
		CategoryID:      req.CategoryID,
		CounterpartyID:  req.CounterpartyID,
		VentureID:       req.VentureID,
		PhaseID:         req.PhaseID,
		CompanyID:       req.CompanyID,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if req.Settled {
		entry.Status = domain.Settled
		settledAt := now
		if req.SettlementDate != nil {
			settledAt = *req.SettlementDate
		}
		entry.SettlementDate = &settledAt
	}

	if err := s.entryRepo.SaveEntries(ctx, []domain.LedgerEntry{entry}); err != nil {
		logger.Error("Failed to save entry", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save entry: %w", err)
	}

	logger.Info("Entry created successfully", slog.String("entry_id", entry.EntryID), slog.String("organization_id", organizationID))
	s.publishCreated(ctx, []domain.LedgerEntry{entry})
	return &entry, nil
}

// CreateSeries expands a single installment/recurring intent into a dated
// batch and persists the whole batch atomically.
// Implements portssvc.EntryWriterSvc
func (s *entryService) CreateSeries(ctx context.Context, organizationID string, req dto.CreateSeriesRequest, creatorUserID string) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateSeries", slog.String("user_id", creatorUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}
	if err := s.validateAccount(ctx, organizationID, req.AccountID); err != nil {
		return nil, err
	}

	entries, err := s.scheduleSvc.GenerateSeries(ctx, organizationID, req.ToSeriesSpec(), creatorUserID)
	if err != nil {
		return nil, err
	}

	// The generator leaves entry IDs blank; IDs are assigned at the
	// persistence boundary so a failed generation never burns identifiers.
	for i := range entries {
		entries[i].EntryID = uuid.NewString()
	}

	if err := s.entryRepo.SaveEntries(ctx, entries); err != nil {
		logger.Error("Failed to save series batch", slog.String("error", err.Error()), slog.String("series_id", entries[0].SeriesID), slog.Int("count", len(entries)))
		return nil, fmt.Errorf("failed to save series: %w", err)
	}

	logger.Info("Series created successfully", slog.String("series_id", entries[0].SeriesID), slog.String("organization_id", organizationID), slog.Int("count", len(entries)))
	s.publishCreated(ctx, entries)
	return entries, nil
}

// applyEntryEdit overlays the non-nil request fields onto a copy of the entry.
func applyEntryEdit(entry domain.LedgerEntry, req dto.UpdateEntryRequest, now time.Time) domain.LedgerEntry {
	edited := entry
	if req.Description != nil {
		edited.Description = *req.Description
	}
	if req.Amount != nil {
		edited.Amount = *req.Amount
	}
	if req.Nature != nil {
		edited.Nature = *req.Nature
	}
	if req.TransactionDate != nil {
		edited.TransactionDate = *req.TransactionDate
	}
	if req.DueDate != nil {
		edited.DueDate = *req.DueDate
	}
	if req.AccountID != nil {
		edited.AccountID = *req.AccountID
	}
	if req.CategoryID != nil {
		edited.CategoryID = *req.CategoryID
	}
	if req.CounterpartyID != nil {
		edited.CounterpartyID = *req.CounterpartyID
	}
	if req.VentureID != nil {
		edited.VentureID = *req.VentureID
	}
	if req.PhaseID != nil {
		edited.PhaseID = *req.PhaseID
	}
	if req.CompanyID != nil {
		edited.CompanyID = *req.CompanyID
	}
	if req.Notes != nil {
		edited.Notes = *req.Notes
	}
	if req.Settled != nil {
		if *req.Settled {
			edited.Status = domain.Settled
			settledAt := now
			if req.SettlementDate != nil {
				settledAt = *req.SettlementDate
			}
			edited.SettlementDate = &settledAt
		} else {
			edited.Status = domain.Pending
			edited.SettlementDate = nil
		}
	} else if req.SettlementDate != nil {
		edited.SettlementDate = req.SettlementDate
	}
	return edited
}

// UpdateEntry applies an edit with the requested scope and persists every
// touched entry as one batch.
// Implements portssvc.EntryWriterSvc
func (s *entryService) UpdateEntry(ctx context.Context, organizationID, entryID string, req dto.UpdateEntryRequest, requestingUserID string) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for UpdateEntry", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	original, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if original.IsTransferLeg() {
		// Amount, account, nature, dates and settlement of a transfer leg are
		// fixed by the pair; delete and recreate the transfer instead.
		if req.Amount != nil || req.AccountID != nil || req.Nature != nil {
			return nil, fmt.Errorf("%w: transfer legs cannot change amount, account or nature", ErrInvalidTransfer)
		}
		if req.Settled != nil || req.SettlementDate != nil || req.TransactionDate != nil {
			return nil, fmt.Errorf("%w: transfer legs stay settled on the transfer date", ErrInvalidTransfer)
		}
	}
	if req.Amount != nil && req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: got %s", ErrAmountNotPositive, req.Amount)
	}
	if req.AccountID != nil {
		if err := s.validateAccount(ctx, organizationID, *req.AccountID); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	edited := applyEntryEdit(*original, req, now)

	scope := req.Scope
	if scope == "" {
		scope = domain.ScopeSingle
	}
	if scope == domain.ScopeFuture && !original.InSeries() {
		return nil, fmt.Errorf("%w: entry %s", ErrSeriesNotFound, entryID)
	}

	var updates []domain.LedgerEntry
	if original.InSeries() {
		edit := domain.SeriesEdit{
			Original: *original,
			Edited:   edited,
			Scope:    scope,
		}
		if scope == domain.ScopeFuture {
			future, err := s.entryRepo.FindSeriesEntriesDueAfter(ctx, organizationID, original.SeriesID, original.DueDate, original.EntryID)
			if err != nil {
				logger.Error("Failed to load series tail for propagation", slog.String("error", err.Error()), slog.String("series_id", original.SeriesID))
				return nil, fmt.Errorf("failed to load series entries: %w", err)
			}
			edit.FutureEntries = future
		}
		updates, err = s.scheduleSvc.PropagateEdit(ctx, edit, requestingUserID)
		if err != nil {
			return nil, err
		}
	} else {
		// Standalone entries and transfer legs have no series to propagate
		// through; the edit applies to this entry alone.
		edited.LastUpdatedAt = now
		edited.LastUpdatedBy = requestingUserID
		updates = []domain.LedgerEntry{edited}
	}

	if err := s.entryRepo.UpdateEntries(ctx, updates); err != nil {
		logger.Error("Failed to persist entry updates", slog.String("error", err.Error()), slog.String("entry_id", entryID), slog.Int("count", len(updates)))
		return nil, fmt.Errorf("failed to update entries: %w", err)
	}

	logger.Info("Entry updated successfully", slog.String("entry_id", entryID), slog.String("scope", string(scope)), slog.Int("updated_count", len(updates)))
	return updates, nil
}

// DeleteEntry removes an entry. Deleting one leg of a transfer removes both
// legs so the pair never dangles.
// Implements portssvc.EntryWriterSvc
func (s *entryService) DeleteEntry(ctx context.Context, organizationID, entryID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for DeleteEntry", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}

	if entry.IsTransferLeg() {
		if err := s.entryRepo.DeleteTransferPair(ctx, organizationID, entry.TransferID); err != nil {
			logger.Error("Failed to delete transfer pair", slog.String("error", err.Error()), slog.String("transfer_id", entry.TransferID))
			return fmt.Errorf("failed to delete transfer pair: %w", err)
		}
		logger.Info("Transfer pair deleted via entry", slog.String("entry_id", entryID), slog.String("transfer_id", entry.TransferID))
		return nil
	}

	if err := s.entryRepo.DeleteEntry(ctx, organizationID, entryID); err != nil {
		logger.Error("Failed to delete entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	logger.Info("Entry deleted successfully", slog.String("entry_id", entryID))
	return nil
}

// CreateTransfer builds both legs of an inter-account transfer and persists
// them as one atomic pair.
// Implements portssvc.TransferSvc
func (s *entryService) CreateTransfer(ctx context.Context, organizationID string, req dto.CreateTransferRequest, creatorUserID string) ([]domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for CreateTransfer", slog.String("user_id", creatorUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.SourceAccountID == req.DestAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", ErrInvalidTransfer)
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive, got %s", ErrInvalidTransfer, req.Amount)
	}

	accounts, err := s.accountSvc.GetAccountsByIDs(ctx, organizationID, []string{req.SourceAccountID, req.DestAccountID})
	if err != nil {
		logger.Error("Failed to fetch accounts for transfer", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range []string{req.SourceAccountID, req.DestAccountID} {
		acc, found := accounts[id]
		if !found {
			return nil, fmt.Errorf("%w: ID %s", ErrAccountNotFound, id)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	sourceAccount := accounts[req.SourceAccountID]
	destAccount := accounts[req.DestAccountID]

	now := time.Now().UTC()
	transferID := uuid.NewString()
	settledAt := req.Date
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}

	// Each leg's description names the counterpart account so either side of
	// the pair reads on its own in an account statement.
	outgoing := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		OrganizationID:  organizationID,
		Description:     fmt.Sprintf("%s (to %s)", req.Description, destAccount.Name),
		Amount:          req.Amount,
		Nature:          domain.Expense,
		TransactionDate: req.Date,
		DueDate:         req.Date,
		Status:          domain.Settled,
		SettlementDate:  &settledAt,
		AccountID:       req.SourceAccountID,
		TransferID:      transferID,
		AuditFields:     audit,
	}
	incoming := outgoing
	incoming.EntryID = uuid.NewString()
	incoming.Description = fmt.Sprintf("%s (from %s)", req.Description, sourceAccount.Name)
	incoming.Nature = domain.Income
	incoming.AccountID = req.DestAccountID

	pair := []domain.LedgerEntry{outgoing, incoming}
	if err := s.entryRepo.SaveEntries(ctx, pair); err != nil {
		logger.Error("Failed to save transfer pair", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		return nil, fmt.Errorf("failed to save transfer: %w", err)
	}

	logger.Info("Transfer created successfully", slog.String("transfer_id", transferID), slog.String("source", req.SourceAccountID), slog.String("destination", req.DestAccountID))
	s.publishCreated(ctx, pair)
	return pair, nil
}

// DeleteTransfer removes both legs of a transfer pair atomically.
// Implements portssvc.TransferSvc
func (s *entryService) DeleteTransfer(ctx context.Context, organizationID, transferID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		logger.Warn("Authorization failed for DeleteTransfer", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("transfer_id", transferID), slog.String("error", err.Error()))
		return err
	}

	legs, err := s.entryRepo.FindEntriesByTransferID(ctx, organizationID, transferID)
	if err != nil {
		return fmt.Errorf("failed to find transfer %s: %w", transferID, err)
	}
	if len(legs) == 0 {
		return apperrors.ErrNotFound
	}

	if err := s.entryRepo.DeleteTransferPair(ctx, organizationID, transferID); err != nil {
		logger.Error("Failed to delete transfer pair", slog.String("error", err.Error()), slog.String("transfer_id", transferID))
		return fmt.Errorf("failed to delete transfer pair: %w", err)
	}
	logger.Info("Transfer deleted successfully", slog.String("transfer_id", transferID))
	return nil
}

// GetEntryByID retrieves a specific ledger entry.
// Implements portssvc.EntryReaderSvc
func (s *entryService) GetEntryByID(ctx context.Context, organizationID, entryID, requestingUserID string) (*domain.LedgerEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for GetEntryByID", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("entry_id", entryID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.entryRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find entry by ID", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find entry %s: %w", entryID, err)
	}
	if entry.OrganizationID != organizationID {
		// Obscure existence across tenants.
		return nil, apperrors.ErrNotFound
	}
	return entry, nil
}

// ListEntries retrieves a paginated list of entries for an organization.
// Implements portssvc.EntryReaderSvc
func (s *entryService) ListEntries(ctx context.Context, organizationID, requestingUserID string, params dto.ListEntriesParams) (*dto.ListEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.authorize(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		logger.Warn("Authorization failed for ListEntries", slog.String("user_id", requestingUserID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, organizationID, params.Limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list entries from repository", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to retrieve entries: %w", err)
	}

	resp := &dto.ListEntriesResponse{
		Entries:   dto.ToEntryResponses(entries),
		NextToken: nextToken,
	}
	logger.Debug("Entries listed successfully", slog.Int("count", len(entries)), slog.String("organization_id", organizationID))
	return resp, nil
}

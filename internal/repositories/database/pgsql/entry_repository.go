package pgsql

import (
	"context"
	"errors"
	"strconv"

	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/bizledger/bizledger_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const entryColumns = `
	entry_id, organization_id, description, amount, nature,
	transaction_date, due_date, status, settlement_date,
	account_id, counterparty_id, category_id, venture_id, phase_id, company_id,
	series_id, transfer_id, notes, recurrence_frequency, recurrence_end_date,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxEntryRepository struct {
	BaseRepository
}

// newPgxEntryRepository creates a new repository for ledger entry data.
func newPgxEntryRepository(pool *pgxpool.Pool) portsrepo.EntryRepositoryWithTx {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.EntryRepositoryWithTx = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (*models.LedgerEntry, error) {
	var m models.LedgerEntry
	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.Description,
		&m.Amount,
		&m.Nature,
		&m.TransactionDate,
		&m.DueDate,
		&m.Status,
		&m.SettlementDate,
		&m.AccountID,
		&m.CounterpartyID,
		&m.CategoryID,
		&m.VentureID,
		&m.PhaseID,
		&m.CompanyID,
		&m.SeriesID,
		&m.TransferID,
		&m.Notes,
		&m.RecurrenceFrequency,
		&m.RecurrenceEndDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectEntries(rows pgx.Rows) ([]models.LedgerEntry, error) {
	defer rows.Close()
	entries := []models.LedgerEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveEntries persists a batch of entries in one database transaction. A
// generated series or a transfer pair is written whole or not at all.
func (r *PgxEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // No-op after a successful commit

	insertQuery := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24);
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(insertQuery,
			m.EntryID,
			m.OrganizationID,
			m.Description,
			m.Amount,
			m.Nature,
			m.TransactionDate,
			m.DueDate,
			m.Status,
			m.SettlementDate,
			m.AccountID,
			m.CounterpartyID,
			m.CategoryID,
			m.VentureID,
			m.PhaseID,
			m.CompanyID,
			m.SeriesID,
			m.TransferID,
			m.Notes,
			m.RecurrenceFrequency,
			m.RecurrenceEndDate,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute entry insert batch", err)
	}

	return r.Commit(ctx, tx)
}

// UpdateEntries applies a batch of entry updates in one database transaction.
// A propagation submits its pivot plus the shifted tail here as one batch.
func (r *PgxEntryRepository) UpdateEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	updateQuery := `
		UPDATE ledger_entries SET
			description = $3,
			amount = $4,
			nature = $5,
			transaction_date = $6,
			due_date = $7,
			status = $8,
			settlement_date = $9,
			account_id = $10,
			counterparty_id = $11,
			category_id = $12,
			venture_id = $13,
			phase_id = $14,
			company_id = $15,
			notes = $16,
			last_updated_at = $17,
			last_updated_by = $18
		WHERE organization_id = $1 AND entry_id = $2;
	`

	batch := &pgx.Batch{}
	for _, entry := range entries {
		m := mapping.ToModelLedgerEntry(entry)
		batch.Queue(updateQuery,
			m.OrganizationID,
			m.EntryID,
			m.Description,
			m.Amount,
			m.Nature,
			m.TransactionDate,
			m.DueDate,
			m.Status,
			m.SettlementDate,
			m.AccountID,
			m.CounterpartyID,
			m.CategoryID,
			m.VentureID,
			m.PhaseID,
			m.CompanyID,
			m.Notes,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for range entries {
		ct, err := br.Exec()
		if err != nil {
			br.Close()
			return apperrors.NewAppError(500, "failed to execute entry update batch", err)
		}
		if ct.RowsAffected() == 0 {
			br.Close()
			return apperrors.ErrNotFound
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to close entry update batch", err)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a specific entry scoped to an organization.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE organization_id = $1 AND entry_id = $2;
	`
	m, err := scanEntry(r.Pool.QueryRow(ctx, query, organizationID, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find entry by ID "+entryID, err)
	}

	entry := mapping.ToDomainLedgerEntry(*m)
	return &entry, nil
}

// ListEntries retrieves a paginated list of an organization's entries using
// token-based pagination ordered by due date descending.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to learn whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE organization_id = $1
	`
	orderByClause := `ORDER BY due_date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{organizationID}

	if nextToken != nil && *nextToken != "" {
		lastDueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `AND (due_date, created_at) < ($2, $3)`
		args = append(args, lastDueDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	}
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query entries for organization "+organizationID, err)
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to scan entry rows for organization "+organizationID, err)
	}

	var nextTokenVal *string
	if len(entries) > limit {
		last := entries[limit-1]
		token := pagination.EncodeToken(last.DueDate, last.CreatedAt)
		nextTokenVal = &token
		entries = entries[:limit]
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nextTokenVal, nil
}

// FindSeriesEntriesDueAfter retrieves the tail of a series: every sibling
// whose due date is strictly after the given date, excluding the pivot itself.
// Ordering by due date keeps the propagation deterministic.
func (r *PgxEntryRepository) FindSeriesEntriesDueAfter(ctx context.Context, organizationID, seriesID string, after time.Time, excludeEntryID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE organization_id = $1 AND series_id = $2 AND due_date > $3 AND entry_id != $4
		ORDER BY due_date ASC, created_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, seriesID, after, excludeEntryID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query series entries for series "+seriesID, err)
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan series entry rows for series "+seriesID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// FindEntriesByTransferID retrieves both legs of a transfer pair.
func (r *PgxEntryRepository) FindEntriesByTransferID(ctx context.Context, organizationID, transferID string) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE organization_id = $1 AND transfer_id = $2
		ORDER BY nature ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, transferID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transfer legs for transfer "+transferID, err)
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan transfer leg rows for transfer "+transferID, err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// FindEntriesDueBetween retrieves pending entries across all organizations
// whose due date falls in [from, to]. This backs the due scanner.
func (r *PgxEntryRepository) FindEntriesDueBetween(ctx context.Context, from, to time.Time) ([]domain.LedgerEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM ledger_entries
		WHERE status = 'PENDING' AND due_date >= $1 AND due_date <= $2
		ORDER BY organization_id, due_date ASC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query due entries", err)
	}

	entries, err := collectEntries(rows)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to scan due entry rows", err)
	}

	return mapping.ToDomainLedgerEntrySlice(entries), nil
}

// DeleteEntry removes a single entry.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, organizationID, entryID string) error {
	query := `DELETE FROM ledger_entries WHERE organization_id = $1 AND entry_id = $2;`
	ct, err := r.Pool.Exec(ctx, query, organizationID, entryID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete entry "+entryID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransferPair removes both legs of a transfer in one statement, which
// is atomic; a transfer can never lose only one leg.
func (r *PgxEntryRepository) DeleteTransferPair(ctx context.Context, organizationID, transferID string) error {
	query := `DELETE FROM ledger_entries WHERE organization_id = $1 AND transfer_id = $2;`
	ct, err := r.Pool.Exec(ctx, query, organizationID, transferID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete transfer pair "+transferID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

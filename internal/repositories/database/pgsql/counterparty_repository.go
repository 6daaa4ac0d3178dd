package pgsql

import (
	"context"
	"errors"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxCounterpartyRepository struct {
	BaseRepository
}

// newPgxCounterpartyRepository creates a new repository for counterparty data.
func newPgxCounterpartyRepository(pool *pgxpool.Pool) portsrepo.CounterpartyRepositoryFacade {
	return &PgxCounterpartyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CounterpartyRepositoryFacade = (*PgxCounterpartyRepository)(nil)

// SaveCounterparty persists a new counterparty.
func (r *PgxCounterpartyRepository) SaveCounterparty(ctx context.Context, counterparty domain.Counterparty) error {
	m := mapping.ToModelCounterparty(counterparty)
	query := `
		INSERT INTO counterparties (
			counterparty_id, organization_id, name, kind, email, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CounterpartyID,
		m.OrganizationID,
		m.Name,
		m.Kind,
		m.Email,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert counterparty "+m.CounterpartyID, err)
	}
	return nil
}

// FindCounterpartyByID retrieves a counterparty scoped to an organization.
func (r *PgxCounterpartyRepository) FindCounterpartyByID(ctx context.Context, organizationID, counterpartyID string) (*domain.Counterparty, error) {
	query := `
		SELECT counterparty_id, organization_id, name, kind, email, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM counterparties
		WHERE organization_id = $1 AND counterparty_id = $2;
	`
	var m models.Counterparty
	err := r.Pool.QueryRow(ctx, query, organizationID, counterpartyID).Scan(
		&m.CounterpartyID,
		&m.OrganizationID,
		&m.Name,
		&m.Kind,
		&m.Email,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find counterparty by ID "+counterpartyID, err)
	}

	counterparty := mapping.ToDomainCounterparty(m)
	return &counterparty, nil
}

// ListCounterparties retrieves an organization's counterparties with offset pagination.
func (r *PgxCounterpartyRepository) ListCounterparties(ctx context.Context, organizationID string, limit, offset int) ([]domain.Counterparty, error) {
	if limit <= 0 {
		limit = 50
	}
	query := `
		SELECT counterparty_id, organization_id, name, kind, email, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM counterparties
		WHERE organization_id = $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query counterparties for organization "+organizationID, err)
	}
	defer rows.Close()

	counterparties := []models.Counterparty{}
	for rows.Next() {
		var m models.Counterparty
		err := rows.Scan(
			&m.CounterpartyID,
			&m.OrganizationID,
			&m.Name,
			&m.Kind,
			&m.Email,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan counterparty row", err)
		}
		counterparties = append(counterparties, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating counterparty rows", err)
	}

	return mapping.ToDomainCounterpartySlice(counterparties), nil
}

// UpdateCounterparty updates a counterparty's mutable fields.
func (r *PgxCounterpartyRepository) UpdateCounterparty(ctx context.Context, counterparty domain.Counterparty) error {
	m := mapping.ToModelCounterparty(counterparty)
	query := `
		UPDATE counterparties
		SET name = $3, kind = $4, email = $5, is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE organization_id = $1 AND counterparty_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.CounterpartyID,
		m.Name,
		m.Kind,
		m.Email,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update counterparty "+m.CounterpartyID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCounterparty flips the active flag off.
func (r *PgxCounterpartyRepository) DeactivateCounterparty(ctx context.Context, organizationID, counterpartyID, updatedBy string) error {
	query := `
		UPDATE counterparties
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $3
		WHERE organization_id = $1 AND counterparty_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, organizationID, counterpartyID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate counterparty "+counterpartyID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

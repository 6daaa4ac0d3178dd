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

type PgxCategoryRepository struct {
	BaseRepository
}

// newPgxCategoryRepository creates a new repository for category reference data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// SaveCategory persists a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		INSERT INTO categories (
			category_id, organization_id, name, nature, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CategoryID,
		m.OrganizationID,
		m.Name,
		m.Nature,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert category "+m.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category scoped to an organization.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, organizationID, categoryID string) (*domain.Category, error) {
	query := `
		SELECT category_id, organization_id, name, nature, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		WHERE organization_id = $1 AND category_id = $2;
	`
	var m models.Category
	err := r.Pool.QueryRow(ctx, query, organizationID, categoryID).Scan(
		&m.CategoryID,
		&m.OrganizationID,
		&m.Name,
		&m.Nature,
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
		return nil, apperrors.NewAppError(500, "failed to find category by ID "+categoryID, err)
	}

	category := mapping.ToDomainCategory(m)
	return &category, nil
}

// ListCategories retrieves all of an organization's categories.
func (r *PgxCategoryRepository) ListCategories(ctx context.Context, organizationID string) ([]domain.Category, error) {
	query := `
		SELECT category_id, organization_id, name, nature, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM categories
		WHERE organization_id = $1
		ORDER BY name ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query categories for organization "+organizationID, err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var m models.Category
		err := rows.Scan(
			&m.CategoryID,
			&m.OrganizationID,
			&m.Name,
			&m.Nature,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan category row", err)
		}
		categories = append(categories, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating category rows", err)
	}

	return mapping.ToDomainCategorySlice(categories), nil
}

// UpdateCategory updates a category's mutable fields.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `
		UPDATE categories
		SET name = $3, nature = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE organization_id = $1 AND category_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.CategoryID,
		m.Name,
		m.Nature,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update category "+m.CategoryID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCategory flips the active flag off.
func (r *PgxCategoryRepository) DeactivateCategory(ctx context.Context, organizationID, categoryID, updatedBy string) error {
	query := `
		UPDATE categories
		SET is_active = FALSE, last_updated_at = NOW(), last_updated_by = $3
		WHERE organization_id = $1 AND category_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, organizationID, categoryID, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate category "+categoryID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

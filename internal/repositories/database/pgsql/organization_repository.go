package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	"github.com/bizledger/bizledger_app/internal/models"
	"github.com/bizledger/bizledger_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

// SaveOrganization persists a new organization and its creator's admin
// membership in one transaction. An organization without an admin is never
// observable.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization, creatorMembership domain.UserOrganization) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	mo := mapping.ToModelOrganization(organization)
	orgQuery := `
		INSERT INTO organizations (
			organization_id, name, description, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, orgQuery,
		mo.OrganizationID,
		mo.Name,
		mo.Description,
		mo.IsActive,
		mo.CreatedAt,
		mo.CreatedBy,
		mo.LastUpdatedAt,
		mo.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert organization "+mo.OrganizationID, err)
	}

	mm := mapping.ToModelUserOrganization(creatorMembership)
	memberQuery := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, memberQuery, mm.UserID, mm.OrganizationID, mm.Role, mm.JoinedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert creator membership for organization "+mo.OrganizationID, err)
	}

	return r.Commit(ctx, tx)
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT organization_id, name, description, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM organizations
		WHERE organization_id = $1;
	`
	var m models.Organization
	err := r.Pool.QueryRow(ctx, query, organizationID).Scan(
		&m.OrganizationID,
		&m.Name,
		&m.Description,
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
		return nil, apperrors.NewAppError(500, "failed to find organization by ID "+organizationID, err)
	}

	organization := mapping.ToDomainOrganization(m)
	return &organization, nil
}

// ListOrganizationsByUserID retrieves organizations a user belongs to,
// excluding memberships marked REMOVED.
func (r *PgxOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.name, o.description, o.is_active,
		       o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN user_organizations uo ON o.organization_id = uo.organization_id
		WHERE uo.user_id = $1 AND uo.role != 'REMOVED'
	`
	if !includeDisabled {
		query += ` AND o.is_active = TRUE`
	}
	query += ` ORDER BY o.name ASC;`

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query organizations for user "+userID, err)
	}
	defer rows.Close()

	organizations := []models.Organization{}
	for rows.Next() {
		var m models.Organization
		err := rows.Scan(
			&m.OrganizationID,
			&m.Name,
			&m.Description,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan organization row", err)
		}
		organizations = append(organizations, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating organization rows", err)
	}

	return mapping.ToDomainOrganizationSlice(organizations), nil
}

// FindUserOrganizationRole retrieves a user's membership in an organization.
func (r *PgxOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, uo.organization_id, uo.role, uo.joined_at, u.name
		FROM user_organizations uo
		JOIN users u ON uo.user_id = u.user_id
		WHERE uo.user_id = $1 AND uo.organization_id = $2;
	`
	var m models.UserOrganization
	var userName string
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
		&userName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find membership for user "+userID, err)
	}

	membership := mapping.ToDomainUserOrganization(m)
	membership.UserName = userName
	return &membership, nil
}

// ListOrganizationUsers retrieves all members of an organization, excluding
// removed ones.
func (r *PgxOrganizationRepository) ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
		SELECT uo.user_id, uo.organization_id, uo.role, uo.joined_at, u.name
		FROM user_organizations uo
		JOIN users u ON uo.user_id = u.user_id
		WHERE uo.organization_id = $1 AND uo.role != 'REMOVED'
		ORDER BY uo.joined_at ASC;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members for organization "+organizationID, err)
	}
	defer rows.Close()

	memberships := []domain.UserOrganization{}
	for rows.Next() {
		var m models.UserOrganization
		var userName string
		err := rows.Scan(&m.UserID, &m.OrganizationID, &m.Role, &m.JoinedAt, &userName)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan membership row", err)
		}
		membership := mapping.ToDomainUserOrganization(m)
		membership.UserName = userName
		memberships = append(memberships, membership)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating membership rows", err)
	}

	return memberships, nil
}

// AddUserToOrganization persists a membership row. Re-adding a previously
// removed member reactivates the existing row with the new role.
func (r *PgxOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	m := mapping.ToModelUserOrganization(membership)
	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, organization_id) DO UPDATE SET role = EXCLUDED.role;
	`
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.OrganizationID, m.Role, m.JoinedAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to add user "+m.UserID+" to organization "+m.OrganizationID, err)
	}
	return nil
}

// UpdateUserOrganizationRole changes a member's role.
func (r *PgxOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole, updatedAt time.Time) error {
	query := `
		UPDATE user_organizations
		SET role = $3
		WHERE user_id = $1 AND organization_id = $2;
	`
	ct, err := r.Pool.Exec(ctx, query, userID, organizationID, string(role))
	if err != nil {
		return apperrors.NewAppError(500, "failed to update role for user "+userID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetOrganizationActive toggles the organization's active flag.
func (r *PgxOrganizationRepository) SetOrganizationActive(ctx context.Context, organizationID string, isActive bool, updatedBy string) error {
	query := `
		UPDATE organizations
		SET is_active = $2, last_updated_at = NOW(), last_updated_by = $3
		WHERE organization_id = $1;
	`
	ct, err := r.Pool.Exec(ctx, query, organizationID, isActive, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to set active flag for organization "+organizationID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

package repositories

import (
	"context"
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUserID retrieves organizations a user belongs to.
	ListOrganizationsByUserID(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error)

	// FindUserOrganizationRole retrieves a user's membership in an organization.
	FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error)

	// ListOrganizationUsers retrieves all members of an organization.
	ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization and its creator's
	// membership atomically.
	SaveOrganization(ctx context.Context, organization domain.Organization, creatorMembership domain.UserOrganization) error

	// AddUserToOrganization persists a membership row.
	AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error

	// UpdateUserOrganizationRole changes a member's role.
	UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole, updatedAt time.Time) error

	// SetOrganizationActive toggles the organization's active flag.
	SetOrganizationActive(ctx context.Context, organizationID string, isActive bool, updatedBy string) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}

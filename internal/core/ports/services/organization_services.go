package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// FindOrganizationByID retrieves a specific organization by its ID.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves organizations a user belongs to.
	ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error)

	// ListOrganizationUsers retrieves all members of an organization; only
	// members may see the list.
	ListOrganizationUsers(ctx context.Context, organizationID, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization and makes the creator
	// its admin.
	CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error)

	// AddUserToOrganization adds a user with a specific role; only admins may
	// do this.
	AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error

	// DeactivateOrganization marks an organization as inactive.
	DeactivateOrganization(ctx context.Context, organizationID, requestingUserID string) error
}

// OrganizationAuthorizerSvc defines operations for organization authorization
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has the required role for an
	// organization; ErrForbidden when not.
	AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationAuthorizerSvc
}

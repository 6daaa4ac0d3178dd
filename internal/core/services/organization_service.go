package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/google/uuid"
)

// organizationService implements the OrganizationSvcFacade interface
type organizationService struct {
	BaseService
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(repo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		organizationRepo: repo,
	}
}

// Ensure organizationService implements the OrganizationSvcFacade interface
var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// FindOrganizationByID retrieves an organization by its ID.
func (s *organizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find organization by ID",
				slog.String("organization_id", organizationID))
		}
		return nil, err
	}
	return organization, nil
}

// ListUserOrganizations retrieves all organizations a user belongs to.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	organizations, err := s.organizationRepo.ListOrganizationsByUserID(ctx, userID, includeDisabled)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organizations for user",
			slog.String("user_id", userID))
		return nil, err
	}
	if organizations == nil {
		return []domain.Organization{}, nil
	}
	return organizations, nil
}

// ListOrganizationUsers retrieves all members of an organization; only members
// may see the list.
func (s *organizationService) ListOrganizationUsers(ctx context.Context, organizationID, requestingUserID string) ([]domain.UserOrganization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	members, err := s.organizationRepo.ListOrganizationUsers(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list organization members",
			slog.String("organization_id", organizationID))
		return nil, err
	}
	if members == nil {
		return []domain.UserOrganization{}, nil
	}
	return members, nil
}

// CreateOrganization persists a new organization and makes the creator its
// admin in one write.
func (s *organizationService) CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error) {
	now := time.Now().UTC()
	organization := domain.Organization{
		OrganizationID: uuid.NewString(),
		Name:           name,
		Description:    description,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	creatorMembership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: organization.OrganizationID,
		Role:           domain.RoleAdmin,
		JoinedAt:       now,
	}

	if err := s.organizationRepo.SaveOrganization(ctx, organization, creatorMembership); err != nil {
		s.LogError(ctx, err, "Failed to save organization",
			slog.String("organization_id", organization.OrganizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Organization created successfully",
		slog.String("organization_id", organization.OrganizationID),
		slog.String("creator_id", creatorUserID))
	return &organization, nil
}

// AddUserToOrganization adds a user to an organization with a specific role.
// Self-assignment is not permitted here; creation handles the creator's
// membership.
func (s *organizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	if err := s.AuthorizeUserAction(ctx, addingUserID, organizationID, domain.RoleAdmin); err != nil {
		s.LogError(ctx, err, "User not authorized to add members to organization",
			slog.String("adding_user_id", addingUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       time.Now().UTC(),
	}
	if err := s.organizationRepo.AddUserToOrganization(ctx, membership); err != nil {
		s.LogError(ctx, err, "Failed to add user to organization",
			slog.String("target_user_id", targetUserID),
			slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "User added to organization successfully",
		slog.String("target_user_id", targetUserID),
		slog.String("organization_id", organizationID),
		slog.String("role", string(role)))
	return nil
}

// DeactivateOrganization marks an organization as inactive; admins only.
func (s *organizationService) DeactivateOrganization(ctx context.Context, organizationID, requestingUserID string) error {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		return err
	}

	if err := s.organizationRepo.SetOrganizationActive(ctx, organizationID, false, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate organization",
			slog.String("organization_id", organizationID))
		return err
	}

	s.LogInfo(ctx, "Organization deactivated successfully",
		slog.String("organization_id", organizationID))
	return nil
}

// AuthorizeUserAction checks if a user has the required role for an organization.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	membership, err := s.organizationRepo.FindUserOrganizationRole(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of organization",
				slog.String("user_id", userID),
				slog.String("organization_id", organizationID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to find user organization role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID))
		return err
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		s.LogDebug(ctx, "User does not have required role",
			slog.String("user_id", userID),
			slog.String("organization_id", organizationID),
			slog.String("user_role", string(membership.Role)),
			slog.String("required_role", string(requiredRole)))
		return apperrors.ErrForbidden
	}
	return nil
}

// hasRequiredRole checks if the user's role meets or exceeds the required role.
func hasRequiredRole(userRole, requiredRole domain.UserOrganizationRole) bool {
	if userRole == domain.RoleRemoved {
		return false
	}
	switch requiredRole {
	case domain.RoleReadOnly:
		return userRole == domain.RoleReadOnly || userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleMember:
		return userRole == domain.RoleMember || userRole == domain.RoleAdmin
	case domain.RoleAdmin:
		return userRole == domain.RoleAdmin
	default:
		return false
	}
}

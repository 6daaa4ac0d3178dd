package dto

import (
	"time"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreateOrganizationRequest defines the data needed to create an organization.
type CreateOrganizationRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// AddUserToOrganizationRequest adds a member with a role.
type AddUserToOrganizationRequest struct {
	UserID string                      `json:"userID" binding:"required"`
	Role   domain.UserOrganizationRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// OrganizationResponse defines the data returned for an organization.
type OrganizationResponse struct {
	OrganizationID string    `json:"organizationID"`
	Name           string    `json:"name"`
	Description    string    `json:"description,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
}

// OrganizationMemberResponse defines the data returned for a membership row.
type OrganizationMemberResponse struct {
	UserID   string                      `json:"userID"`
	UserName string                      `json:"userName"`
	Role     domain.UserOrganizationRole `json:"role"`
	JoinedAt time.Time                   `json:"joinedAt"`
}

// ToOrganizationResponse converts a domain.Organization to its DTO.
func ToOrganizationResponse(org *domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID: org.OrganizationID,
		Name:           org.Name,
		Description:    org.Description,
		IsActive:       org.IsActive,
		CreatedAt:      org.CreatedAt,
		CreatedBy:      org.CreatedBy,
	}
}

// ToListOrganizationResponse converts a slice of domain.Organization to DTOs.
func ToListOrganizationResponse(orgs []domain.Organization) []OrganizationResponse {
	res := make([]OrganizationResponse, len(orgs))
	for i, org := range orgs {
		res[i] = ToOrganizationResponse(&org)
	}
	return res
}

// ToOrganizationMemberResponses converts membership rows to DTOs.
func ToOrganizationMemberResponses(members []domain.UserOrganization) []OrganizationMemberResponse {
	res := make([]OrganizationMemberResponse, len(members))
	for i, m := range members {
		res[i] = OrganizationMemberResponse{
			UserID:   m.UserID,
			UserName: m.UserName,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		}
	}
	return res
}

package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreateCounterpartyRequest defines the data needed to create a counterparty.
type CreateCounterpartyRequest struct {
	Name  string                  `json:"name" binding:"required"`
	Kind  domain.CounterpartyKind `json:"kind" binding:"required,oneof=CUSTOMER SUPPLIER EMPLOYEE"`
	Email string                  `json:"email" binding:"omitempty,email"`
}

// UpdateCounterpartyRequest defines the data allowed for updating a counterparty.
type UpdateCounterpartyRequest struct {
	Name  *string                  `json:"name"`
	Kind  *domain.CounterpartyKind `json:"kind" binding:"omitempty,oneof=CUSTOMER SUPPLIER EMPLOYEE"`
	Email *string                  `json:"email" binding:"omitempty,email"`
}

// CounterpartyResponse defines the data returned for a counterparty.
type CounterpartyResponse struct {
	CounterpartyID string                  `json:"counterpartyID"`
	OrganizationID string                  `json:"organizationID"`
	Name           string                  `json:"name"`
	Kind           domain.CounterpartyKind `json:"kind"`
	Email          string                  `json:"email,omitempty"`
	IsActive       bool                    `json:"isActive"`
}

// ListCounterpartiesParams defines query parameters for listing counterparties.
type ListCounterpartiesParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// ToCounterpartyResponse converts a domain.Counterparty to its DTO.
func ToCounterpartyResponse(cp *domain.Counterparty) CounterpartyResponse {
	return CounterpartyResponse{
		CounterpartyID: cp.CounterpartyID,
		OrganizationID: cp.OrganizationID,
		Name:           cp.Name,
		Kind:           cp.Kind,
		Email:          cp.Email,
		IsActive:       cp.IsActive,
	}
}

// ToListCounterpartyResponse converts a slice of domain.Counterparty to DTOs.
func ToListCounterpartyResponse(counterparties []domain.Counterparty) []CounterpartyResponse {
	res := make([]CounterpartyResponse, len(counterparties))
	for i, cp := range counterparties {
		res[i] = ToCounterpartyResponse(&cp)
	}
	return res
}

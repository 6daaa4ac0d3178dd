package dto

import (
	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name   string             `json:"name" binding:"required"`
	Nature domain.EntryNature `json:"nature" binding:"required,oneof=EXPENSE INCOME"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
type UpdateCategoryRequest struct {
	Name   *string             `json:"name"`
	Nature *domain.EntryNature `json:"nature" binding:"omitempty,oneof=EXPENSE INCOME"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID     string             `json:"categoryID"`
	OrganizationID string             `json:"organizationID"`
	Name           string             `json:"name"`
	Nature         domain.EntryNature `json:"nature"`
	IsActive       bool               `json:"isActive"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO.
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:     cat.CategoryID,
		OrganizationID: cat.OrganizationID,
		Name:           cat.Name,
		Nature:         cat.Nature,
		IsActive:       cat.IsActive,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs.
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}

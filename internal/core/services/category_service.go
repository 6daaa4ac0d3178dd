package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/google/uuid"
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.CategorySvcFacade {
	return &categoryService{
		BaseService:  BaseService{OrganizationAuthorizer: authorizer},
		categoryRepo: repo,
	}
}

// Ensure categoryService implements the CategorySvcFacade interface
var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, organizationID string, req dto.CreateCategoryRequest, creatorUserID string) (*domain.Category, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create category",
			slog.String("user_id", creatorUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	now := time.Now().UTC()
	category := domain.Category{
		CategoryID:     uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Nature:         req.Nature,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category",
			slog.String("category_id", category.CategoryID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created successfully",
		slog.String("category_id", category.CategoryID),
		slog.String("organization_id", organizationID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, organizationID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, organizationID, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category by ID",
				slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if category.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, organizationID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, organizationID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list categories for organization %s: %w", organizationID, err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, organizationID, categoryID string, req dto.UpdateCategoryRequest, requestingUserID string) (*domain.Category, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	category, err := s.GetCategoryByID(ctx, organizationID, categoryID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		category.Name = *req.Name
		updated = true
	}
	if req.Nature != nil {
		category.Nature = *req.Nature
		updated = true
	}
	if !updated {
		return category, nil
	}

	category.LastUpdatedAt = time.Now().UTC()
	category.LastUpdatedBy = requestingUserID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category",
			slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated successfully",
		slog.String("category_id", categoryID),
		slog.String("organization_id", organizationID))
	return category, nil
}

func (s *categoryService) DeactivateCategory(ctx context.Context, organizationID, categoryID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetCategoryByID(ctx, organizationID, categoryID); err != nil {
		return err
	}

	if err := s.categoryRepo.DeactivateCategory(ctx, organizationID, categoryID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate category",
			slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deactivated successfully",
		slog.String("category_id", categoryID),
		slog.String("organization_id", organizationID))
	return nil
}

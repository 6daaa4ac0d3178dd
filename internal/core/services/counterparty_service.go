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

// counterpartyService implements the CounterpartySvcFacade interface
type counterpartyService struct {
	BaseService
	counterpartyRepo portsrepo.CounterpartyRepositoryFacade
}

// NewCounterpartyService creates a new CounterpartyService.
func NewCounterpartyService(repo portsrepo.CounterpartyRepositoryFacade, authorizer portssvc.OrganizationAuthorizerSvc) portssvc.CounterpartySvcFacade {
	return &counterpartyService{
		BaseService:      BaseService{OrganizationAuthorizer: authorizer},
		counterpartyRepo: repo,
	}
}

// Ensure counterpartyService implements the CounterpartySvcFacade interface
var _ portssvc.CounterpartySvcFacade = (*counterpartyService)(nil)

func (s *counterpartyService) CreateCounterparty(ctx context.Context, organizationID string, req dto.CreateCounterpartyRequest, creatorUserID string) (*domain.Counterparty, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, organizationID, domain.RoleMember); err != nil {
		s.LogError(ctx, err, "User not authorized to create counterparty",
			slog.String("user_id", creatorUserID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	now := time.Now().UTC()
	counterparty := domain.Counterparty{
		CounterpartyID: uuid.NewString(),
		OrganizationID: organizationID,
		Name:           req.Name,
		Kind:           req.Kind,
		Email:          req.Email,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.counterpartyRepo.SaveCounterparty(ctx, counterparty); err != nil {
		s.LogError(ctx, err, "Failed to save counterparty",
			slog.String("counterparty_id", counterparty.CounterpartyID),
			slog.String("organization_id", organizationID))
		return nil, err
	}

	s.LogInfo(ctx, "Counterparty created successfully",
		slog.String("counterparty_id", counterparty.CounterpartyID),
		slog.String("organization_id", organizationID))
	return &counterparty, nil
}

func (s *counterpartyService) GetCounterpartyByID(ctx context.Context, organizationID, counterpartyID string) (*domain.Counterparty, error) {
	counterparty, err := s.counterpartyRepo.FindCounterpartyByID(ctx, organizationID, counterpartyID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find counterparty by ID",
				slog.String("counterparty_id", counterpartyID))
		}
		return nil, err
	}
	if counterparty.OrganizationID != organizationID {
		return nil, apperrors.ErrNotFound
	}
	return counterparty, nil
}

func (s *counterpartyService) ListCounterparties(ctx context.Context, organizationID string, limit, offset int) ([]domain.Counterparty, error) {
	counterparties, err := s.counterpartyRepo.ListCounterparties(ctx, organizationID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list counterparties",
			slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to list counterparties for organization %s: %w", organizationID, err)
	}
	if counterparties == nil {
		return []domain.Counterparty{}, nil
	}
	return counterparties, nil
}

func (s *counterpartyService) UpdateCounterparty(ctx context.Context, organizationID, counterpartyID string, req dto.UpdateCounterpartyRequest, requestingUserID string) (*domain.Counterparty, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return nil, err
	}

	counterparty, err := s.GetCounterpartyByID(ctx, organizationID, counterpartyID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		counterparty.Name = *req.Name
		updated = true
	}
	if req.Kind != nil {
		counterparty.Kind = *req.Kind
		updated = true
	}
	if req.Email != nil {
		counterparty.Email = *req.Email
		updated = true
	}
	if !updated {
		return counterparty, nil
	}

	counterparty.LastUpdatedAt = time.Now().UTC()
	counterparty.LastUpdatedBy = requestingUserID

	if err := s.counterpartyRepo.UpdateCounterparty(ctx, *counterparty); err != nil {
		s.LogError(ctx, err, "Failed to update counterparty",
			slog.String("counterparty_id", counterpartyID))
		return nil, err
	}

	s.LogInfo(ctx, "Counterparty updated successfully",
		slog.String("counterparty_id", counterpartyID),
		slog.String("organization_id", organizationID))
	return counterparty, nil
}

func (s *counterpartyService) DeactivateCounterparty(ctx context.Context, organizationID, counterpartyID, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, organizationID, domain.RoleMember); err != nil {
		return err
	}

	if _, err := s.GetCounterpartyByID(ctx, organizationID, counterpartyID); err != nil {
		return err
	}

	if err := s.counterpartyRepo.DeactivateCounterparty(ctx, organizationID, counterpartyID, requestingUserID); err != nil {
		s.LogError(ctx, err, "Failed to deactivate counterparty",
			slog.String("counterparty_id", counterpartyID))
		return err
	}

	s.LogInfo(ctx, "Counterparty deactivated successfully",
		slog.String("counterparty_id", counterpartyID),
		slog.String("organization_id", organizationID))
	return nil
}

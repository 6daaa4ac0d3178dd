package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/bizledger/bizledger_app/internal/apperrors"
	"github.com/bizledger/bizledger_app/internal/core/domain"
	portsrepo "github.com/bizledger/bizledger_app/internal/core/ports/repositories"
	portssvc "github.com/bizledger/bizledger_app/internal/core/ports/services"
	"github.com/bizledger/bizledger_app/internal/core/services"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock OrganizationRepository ---
type MockOrganizationRepository struct {
	mock.Mock
}

var _ portsrepo.OrganizationRepositoryFacade = (*MockOrganizationRepository)(nil)

func (m *MockOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationsByUserID(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	args := m.Called(ctx, userID, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationRepository) FindUserOrganizationRole(ctx context.Context, userID, organizationID string) (*domain.UserOrganization, error) {
	args := m.Called(ctx, userID, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) ListOrganizationUsers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization, creatorMembership domain.UserOrganization) error {
	args := m.Called(ctx, organization, creatorMembership)
	return args.Error(0)
}

func (m *MockOrganizationRepository) AddUserToOrganization(ctx context.Context, membership domain.UserOrganization) error {
	args := m.Called(ctx, membership)
	return args.Error(0)
}

func (m *MockOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID, organizationID string, role domain.UserOrganizationRole, updatedAt time.Time) error {
	args := m.Called(ctx, userID, organizationID, role, updatedAt)
	return args.Error(0)
}

func (m *MockOrganizationRepository) SetOrganizationActive(ctx context.Context, organizationID string, isActive bool, updatedBy string) error {
	args := m.Called(ctx, organizationID, isActive, updatedBy)
	return args.Error(0)
}

// --- Test Suite ---

type OrganizationServiceTestSuite struct {
	suite.Suite
	mockRepo *MockOrganizationRepository
	service  portssvc.OrganizationSvcFacade
	ctx      context.Context
}

func (s *OrganizationServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockOrganizationRepository)
	s.service = services.NewOrganizationService(s.mockRepo)
	s.ctx = context.Background()
}

func TestOrganizationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrganizationServiceTestSuite))
}

func (s *OrganizationServiceTestSuite) membership(role domain.UserOrganizationRole) *domain.UserOrganization {
	return &domain.UserOrganization{
		UserID:         "user-1",
		OrganizationID: "org-1",
		Role:           role,
		JoinedAt:       time.Now(),
	}
}

func (s *OrganizationServiceTestSuite) TestCreateOrganization_CreatorBecomesAdmin() {
	s.mockRepo.On("SaveOrganization", s.ctx,
		mock.AnythingOfType("domain.Organization"),
		mock.MatchedBy(func(m domain.UserOrganization) bool {
			return m.UserID == "creator-1" && m.Role == domain.RoleAdmin
		}),
	).Return(nil).Once()

	org, err := s.service.CreateOrganization(s.ctx, "Acme", "widgets", "creator-1")

	s.Require().NoError(err)
	s.Equal("Acme", org.Name)
	s.True(org.IsActive)
	s.NotEmpty(org.OrganizationID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *OrganizationServiceTestSuite) TestAuthorizeUserAction_RoleHierarchy() {
	cases := []struct {
		userRole     domain.UserOrganizationRole
		requiredRole domain.UserOrganizationRole
		allowed      bool
	}{
		{domain.RoleAdmin, domain.RoleAdmin, true},
		{domain.RoleAdmin, domain.RoleMember, true},
		{domain.RoleAdmin, domain.RoleReadOnly, true},
		{domain.RoleMember, domain.RoleAdmin, false},
		{domain.RoleMember, domain.RoleMember, true},
		{domain.RoleMember, domain.RoleReadOnly, true},
		{domain.RoleReadOnly, domain.RoleMember, false},
		{domain.RoleReadOnly, domain.RoleReadOnly, true},
		{domain.RoleRemoved, domain.RoleReadOnly, false},
	}

	for _, tc := range cases {
		s.SetupTest()
		s.mockRepo.On("FindUserOrganizationRole", s.ctx, "user-1", "org-1").Return(s.membership(tc.userRole), nil).Once()

		err := s.service.AuthorizeUserAction(s.ctx, "user-1", "org-1", tc.requiredRole)

		if tc.allowed {
			s.NoError(err, "role %s should satisfy %s", tc.userRole, tc.requiredRole)
		} else {
			s.ErrorIs(err, apperrors.ErrForbidden, "role %s should not satisfy %s", tc.userRole, tc.requiredRole)
		}
	}
}

func (s *OrganizationServiceTestSuite) TestAuthorizeUserAction_NonMemberForbidden() {
	s.mockRepo.On("FindUserOrganizationRole", s.ctx, "stranger", "org-1").Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.AuthorizeUserAction(s.ctx, "stranger", "org-1", domain.RoleReadOnly)

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *OrganizationServiceTestSuite) TestAddUserToOrganization_RequiresAdmin() {
	s.mockRepo.On("FindUserOrganizationRole", s.ctx, "user-1", "org-1").Return(s.membership(domain.RoleMember), nil).Once()

	err := s.service.AddUserToOrganization(s.ctx, "user-1", "new-user", "org-1", domain.RoleMember)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "AddUserToOrganization", mock.Anything, mock.Anything)
}

func (s *OrganizationServiceTestSuite) TestAddUserToOrganization_AdminSucceeds() {
	s.mockRepo.On("FindUserOrganizationRole", s.ctx, "user-1", "org-1").Return(s.membership(domain.RoleAdmin), nil).Once()
	s.mockRepo.On("AddUserToOrganization", s.ctx, mock.MatchedBy(func(m domain.UserOrganization) bool {
		return m.UserID == "new-user" && m.OrganizationID == "org-1" && m.Role == domain.RoleReadOnly
	})).Return(nil).Once()

	err := s.service.AddUserToOrganization(s.ctx, "user-1", "new-user", "org-1", domain.RoleReadOnly)

	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *OrganizationServiceTestSuite) TestListOrganizationUsers_MembersOnly() {
	s.mockRepo.On("FindUserOrganizationRole", s.ctx, "outsider", "org-1").Return(nil, apperrors.ErrNotFound).Once()

	_, err := s.service.ListOrganizationUsers(s.ctx, "org-1", "outsider")

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "ListOrganizationUsers", mock.Anything, mock.Anything)
}

func (s *OrganizationServiceTestSuite) TestDeactivateOrganization_AdminOnly() {
	s.mockRepo.On("FindUserOrganizationRole", s.ctx, "user-1", "org-1").Return(s.membership(domain.RoleAdmin), nil).Once()
	s.mockRepo.On("SetOrganizationActive", s.ctx, "org-1", false, "user-1").Return(nil).Once()

	err := s.service.DeactivateOrganization(s.ctx, "org-1", "user-1")

	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *OrganizationServiceTestSuite) TestListUserOrganizations_NilBecomesEmpty() {
	s.mockRepo.On("ListOrganizationsByUserID", s.ctx, "user-1", false).Return(nil, nil).Once()

	orgs, err := s.service.ListUserOrganizations(s.ctx, "user-1", false)

	s.Require().NoError(err)
	s.NotNil(orgs)
	s.Empty(orgs)
}

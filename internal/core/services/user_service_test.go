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
	"github.com/bizledger/bizledger_app/internal/dto"
	"github.com/bizledger/bizledger_app/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiryTime *time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiryTime)
	return args.Error(0)
}

// --- Test Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (s *UserServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockUserRepository)
	s.service = services.NewUserService(s.mockRepo)
	s.ctx = context.Background()
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}

func (s *UserServiceTestSuite) TestCreateUser_Success() {
	req := dto.CreateUserRequest{
		Username: "jdoe",
		Password: "s3cret-pass",
		Name:     "Jane Doe",
		Email:    "jane@example.com",
	}

	s.mockRepo.On("FindUserByUsername", s.ctx, "jdoe").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := s.service.CreateUser(s.ctx, req)

	s.Require().NoError(err)
	s.Equal("jdoe", user.Username)
	s.Equal("Jane Doe", user.Name)
	s.NotEmpty(user.UserID)
	s.NotEqual("s3cret-pass", user.PasswordHash)
	// The stored hash must verify against the original password
	s.NoError(bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")))
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestCreateUser_UsernameTaken() {
	existing := &domain.User{UserID: uuid.NewString(), Username: "jdoe"}
	s.mockRepo.On("FindUserByUsername", s.ctx, "jdoe").Return(existing, nil).Once()

	_, err := s.service.CreateUser(s.ctx, dto.CreateUserRequest{
		Username: "jdoe",
		Password: "whatever1",
		Name:     "Other",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrDuplicate)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestGetUserByID_SoftDeletedHidden() {
	deletedAt := time.Now()
	user := &domain.User{UserID: "user-1", Username: "gone", DeletedAt: &deletedAt}
	s.mockRepo.On("FindUserByID", s.ctx, "user-1").Return(user, nil).Once()

	_, err := s.service.GetUserByID(s.ctx, "user-1")

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *UserServiceTestSuite) TestUpdateUser_OtherUserForbidden() {
	newName := "Hacker"
	_, err := s.service.UpdateUser(s.ctx, "victim-id", dto.UpdateUserRequest{Name: &newName}, "attacker-id")

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.mockRepo.AssertNotCalled(s.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestDeleteUser_SelfOnly() {
	err := s.service.DeleteUser(s.ctx, "someone-else", "me")
	s.ErrorIs(err, apperrors.ErrForbidden)

	s.mockRepo.On("FindUserByID", s.ctx, "me").Return(&domain.User{UserID: "me"}, nil).Once()
	s.mockRepo.On("MarkUserDeleted", s.ctx, "me", mock.AnythingOfType("time.Time"), "me").Return(nil).Once()

	err = s.service.DeleteUser(s.ctx, "me", "me")
	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestAuthenticateUser_Success() {
	hash, err := utils.HashPassword("correct-horse")
	s.Require().NoError(err)
	user := &domain.User{UserID: "user-1", Username: "jdoe", PasswordHash: hash}
	s.mockRepo.On("FindUserByUsername", s.ctx, "jdoe").Return(user, nil).Once()

	got, err := s.service.AuthenticateUser(s.ctx, "jdoe", "correct-horse")

	s.Require().NoError(err)
	s.Equal("user-1", got.UserID)
}

func (s *UserServiceTestSuite) TestAuthenticateUser_FailuresAreIndistinguishable() {
	// Unknown user
	s.mockRepo.On("FindUserByUsername", s.ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()
	_, errMissing := s.service.AuthenticateUser(s.ctx, "ghost", "anything")

	// Wrong password
	hash, err := utils.HashPassword("right-password")
	s.Require().NoError(err)
	s.mockRepo.On("FindUserByUsername", s.ctx, "jdoe").Return(&domain.User{Username: "jdoe", PasswordHash: hash}, nil).Once()
	_, errWrongPass := s.service.AuthenticateUser(s.ctx, "jdoe", "wrong-password")

	// OAuth-only account
	s.mockRepo.On("FindUserByUsername", s.ctx, "google:123").Return(&domain.User{Username: "google:123"}, nil).Once()
	_, errOAuthOnly := s.service.AuthenticateUser(s.ctx, "google:123", "anything")

	s.ErrorIs(errMissing, apperrors.ErrUnauthorized)
	s.ErrorIs(errWrongPass, apperrors.ErrUnauthorized)
	s.ErrorIs(errOAuthOnly, apperrors.ErrUnauthorized)
}

func (s *UserServiceTestSuite) TestFindOrCreateOAuthUser_FirstSignInProvisions() {
	info := domain.GoogleUserInfo{
		ID:            "sub-123",
		Email:         "jane@example.com",
		VerifiedEmail: true,
		Name:          "Jane Doe",
	}

	s.mockRepo.On("FindUserByUsername", s.ctx, "google:sub-123").Return(nil, apperrors.ErrNotFound).Once()
	s.mockRepo.On("SaveUser", s.ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Username == "google:sub-123" && u.AuthProvider == "google" && u.Name == "Jane Doe"
	})).Return(nil).Once()

	user, err := s.service.FindOrCreateOAuthUser(s.ctx, info)

	s.Require().NoError(err)
	s.Equal("google:sub-123", user.Username)
	s.Empty(user.PasswordHash)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *UserServiceTestSuite) TestFindOrCreateOAuthUser_RepeatSignInIsIdempotent() {
	existing := &domain.User{UserID: "user-1", Username: "google:sub-123", AuthProvider: "google"}
	s.mockRepo.On("FindUserByUsername", s.ctx, "google:sub-123").Return(existing, nil).Once()

	user, err := s.service.FindOrCreateOAuthUser(s.ctx, domain.GoogleUserInfo{
		ID:            "sub-123",
		Email:         "jane@example.com",
		VerifiedEmail: true,
	})

	s.Require().NoError(err)
	s.Equal("user-1", user.UserID)
	s.mockRepo.AssertNotCalled(s.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (s *UserServiceTestSuite) TestFindOrCreateOAuthUser_UnverifiedEmailRejected() {
	_, err := s.service.FindOrCreateOAuthUser(s.ctx, domain.GoogleUserInfo{
		ID:            "sub-123",
		Email:         "jane@example.com",
		VerifiedEmail: false,
	})

	s.ErrorIs(err, apperrors.ErrValidation)
}

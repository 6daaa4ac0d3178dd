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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock EntryRepository ---
type MockEntryRepository struct {
	mock.Mock
}

// Ensure MockEntryRepository implements portsrepo.EntryRepositoryWithTx
var _ portsrepo.EntryRepositoryWithTx = (*MockEntryRepository)(nil)

func (m *MockEntryRepository) FindEntryByID(ctx context.Context, organizationID, entryID string) (*domain.LedgerEntry, error) {
	args := m.Called(ctx, organizationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) ListEntries(ctx context.Context, organizationID string, limit int, nextToken *string) ([]domain.LedgerEntry, *string, error) {
	args := m.Called(ctx, organizationID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.LedgerEntry), returnedNextToken, args.Error(2)
}

func (m *MockEntryRepository) FindSeriesEntriesDueAfter(ctx context.Context, organizationID, seriesID string, after time.Time, excludeEntryID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, organizationID, seriesID, after, excludeEntryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesByTransferID(ctx context.Context, organizationID, transferID string) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, organizationID, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) FindEntriesDueBetween(ctx context.Context, from, to time.Time) ([]domain.LedgerEntry, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LedgerEntry), args.Error(1)
}

func (m *MockEntryRepository) SaveEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateEntries(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteEntry(ctx context.Context, organizationID, entryID string) error {
	args := m.Called(ctx, organizationID, entryID)
	return args.Error(0)
}

func (m *MockEntryRepository) DeleteTransferPair(ctx context.Context, organizationID, transferID string) error {
	args := m.Called(ctx, organizationID, transferID)
	return args.Error(0)
}

func (m *MockEntryRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(pgx.Tx), args.Error(1)
}

func (m *MockEntryRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockEntryRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) GetAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService) DeactivateAccount(ctx context.Context, organizationID, accountID, requestingUserID string) error {
	args := m.Called(ctx, organizationID, accountID, requestingUserID)
	return args.Error(0)
}

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

func (m *MockOrganizationService) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListUserOrganizations(ctx context.Context, userID string, includeDisabled bool) ([]domain.Organization, error) {
	args := m.Called(ctx, userID, includeDisabled)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListOrganizationUsers(ctx context.Context, organizationID, requestingUserID string) ([]domain.UserOrganization, error) {
	args := m.Called(ctx, organizationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, name, description, creatorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, name, description, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) AddUserToOrganization(ctx context.Context, addingUserID, targetUserID, organizationID string, role domain.UserOrganizationRole) error {
	args := m.Called(ctx, addingUserID, targetUserID, organizationID, role)
	return args.Error(0)
}

func (m *MockOrganizationService) DeactivateOrganization(ctx context.Context, organizationID, requestingUserID string) error {
	args := m.Called(ctx, organizationID, requestingUserID)
	return args.Error(0)
}

func (m *MockOrganizationService) AuthorizeUserAction(ctx context.Context, userID, organizationID string, requiredRole domain.UserOrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

// --- Mock EntryNotifier ---
type MockEntryNotifier struct {
	mock.Mock
}

var _ portssvc.EntryNotifier = (*MockEntryNotifier)(nil)

func (m *MockEntryNotifier) PublishEntriesCreated(ctx context.Context, entries []domain.LedgerEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

// --- Test Suite Setup ---
type EntryServiceTestSuite struct {
	suite.Suite
	mockEntryRepo  *MockEntryRepository
	mockAccountSvc *MockAccountService
	mockOrgSvc     *MockOrganizationService
	mockNotifier   *MockEntryNotifier
	service        portssvc.EntrySvcFacade
	checkingAccount domain.Account
	savingsAccount  domain.Account
	organizationID  string
	userID          string
}

func (suite *EntryServiceTestSuite) SetupTest() {
	suite.mockEntryRepo = new(MockEntryRepository)
	suite.mockAccountSvc = new(MockAccountService)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.mockNotifier = new(MockEntryNotifier)
	// The real scheduling engine is pure, so it is exercised directly rather
	// than mocked.
	suite.service = services.NewEntryService(suite.mockEntryRepo, services.NewScheduleService(), suite.mockAccountSvc, suite.mockOrgSvc, suite.mockNotifier)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.checkingAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "Checking",
		AccountType:    domain.Checking,
		IsActive:       true,
	}
	suite.savingsAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "Savings",
		AccountType:    domain.Savings,
		IsActive:       true,
	}
}

func (suite *EntryServiceTestSuite) expectMember() {
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
}

// --- Test Cases ---

func (suite *EntryServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description:     "Notary fee",
		Amount:          decimal.NewFromInt(150),
		Nature:          domain.Expense,
		TransactionDate: time.Now().UTC(),
		DueDate:         time.Now().UTC().AddDate(0, 0, 7),
		AccountID:       suite.checkingAccount.AccountID,
	}

	suite.expectMember()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.checkingAccount.AccountID).Return(&suite.checkingAccount, nil).Once()
	suite.mockEntryRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()
	suite.mockNotifier.On("PublishEntriesCreated", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.organizationID, entry.OrganizationID)
	suite.Equal(domain.Pending, entry.Status)
	suite.Equal(suite.userID, entry.CreatedBy)

	suite.mockEntryRepo.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateEntry_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateEntryRequest{
		Description: "Zero amount",
		Amount:      decimal.Zero,
		Nature:      domain.Expense,
		AccountID:   suite.checkingAccount.AccountID,
	}

	suite.expectMember()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAmountNotPositive)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateEntry_AuthorizationFail() {
	ctx := context.Background()
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleMember).Return(apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, dto.CreateEntryRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateSeries_PersistsWholeBatch() {
	ctx := context.Background()
	req := dto.CreateSeriesRequest{
		Cadence:          domain.Installment,
		TotalAmount:      decimal.NewFromInt(1200),
		InstallmentCount: 12,
		AnchorDueDate:    time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		Description:      "Equipment purchase",
		Nature:           domain.Expense,
		TransactionDate:  time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC),
		AccountID:        suite.checkingAccount.AccountID,
	}

	suite.expectMember()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.checkingAccount.AccountID).Return(&suite.checkingAccount, nil).Once()

	var saved []domain.LedgerEntry
	suite.mockEntryRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Run(func(args mock.Arguments) {
		saved = args.Get(1).([]domain.LedgerEntry)
	}).Return(nil).Once()
	suite.mockNotifier.On("PublishEntriesCreated", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	entries, err := suite.service.CreateSeries(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(entries, 12)
	suite.Require().Len(saved, 12, "the full batch goes to the repository in one call")
	for _, e := range entries {
		suite.NotEmpty(e.EntryID)
		suite.Equal(entries[0].SeriesID, e.SeriesID)
	}
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateSeries_InvalidSpecSavesNothing() {
	ctx := context.Background()
	req := dto.CreateSeriesRequest{
		Cadence:          domain.Installment,
		TotalAmount:      decimal.Zero,
		InstallmentCount: 3,
		AnchorDueDate:    time.Now().UTC(),
		Description:      "Broken",
		Nature:           domain.Expense,
		AccountID:        suite.checkingAccount.AccountID,
	}

	suite.expectMember()
	suite.mockAccountSvc.On("GetAccountByID", ctx, suite.organizationID, suite.checkingAccount.AccountID).Return(&suite.checkingAccount, nil).Once()

	_, err := suite.service.CreateSeries(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidSpec)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_ScopeSingle() {
	ctx := context.Background()
	existing := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		Description:    "Office rent (3/12)",
		Amount:         decimal.NewFromInt(100),
		Nature:         domain.Expense,
		DueDate:        time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Status:         domain.Pending,
		AccountID:      suite.checkingAccount.AccountID,
		SeriesID:       uuid.NewString(),
	}
	newAmount := decimal.NewFromInt(200)
	req := dto.UpdateEntryRequest{Amount: &newAmount}

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, existing.EntryID).Return(&existing, nil).Once()

	var updated []domain.LedgerEntry
	suite.mockEntryRepo.On("UpdateEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Run(func(args mock.Arguments) {
		updated = args.Get(1).([]domain.LedgerEntry)
	}).Return(nil).Once()

	result, err := suite.service.UpdateEntry(ctx, suite.organizationID, existing.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Require().Len(updated, 1)
	suite.True(newAmount.Equal(updated[0].Amount))
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "FindSeriesEntriesDueAfter", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_StandaloneEntry() {
	ctx := context.Background()
	existing := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		Description:    "Notary fee",
		Amount:         decimal.NewFromInt(150),
		Nature:         domain.Expense,
		DueDate:        time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
		Status:         domain.Pending,
		AccountID:      suite.checkingAccount.AccountID,
	}
	newAmount := decimal.NewFromInt(175)
	newDescription := "Notary and registration fees"
	req := dto.UpdateEntryRequest{Amount: &newAmount, Description: &newDescription}

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, existing.EntryID).Return(&existing, nil).Once()

	var updated []domain.LedgerEntry
	suite.mockEntryRepo.On("UpdateEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Run(func(args mock.Arguments) {
		updated = args.Get(1).([]domain.LedgerEntry)
	}).Return(nil).Once()

	result, err := suite.service.UpdateEntry(ctx, suite.organizationID, existing.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Require().Len(updated, 1)
	suite.True(newAmount.Equal(updated[0].Amount))
	suite.Equal(newDescription, updated[0].Description)
	suite.Equal(suite.userID, updated[0].LastUpdatedBy)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_ScopeFuturePropagates() {
	ctx := context.Background()
	seriesID := uuid.NewString()
	pivot := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		OrganizationID:  suite.organizationID,
		Description:     "Office rent (3/12)",
		Amount:          decimal.NewFromInt(100),
		Nature:          domain.Expense,
		DueDate:         time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		TransactionDate: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Status:          domain.Pending,
		AccountID:       suite.checkingAccount.AccountID,
		SeriesID:        seriesID,
	}
	future := make([]domain.LedgerEntry, 2)
	for i := range future {
		future[i] = pivot
		future[i].EntryID = uuid.NewString()
		future[i].DueDate = pivot.DueDate.AddDate(0, i+1, 0)
		future[i].TransactionDate = future[i].DueDate
	}

	newAmount := decimal.NewFromInt(200)
	newDue := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
	req := dto.UpdateEntryRequest{
		Scope:   domain.ScopeFuture,
		Amount:  &newAmount,
		DueDate: &newDue,
	}

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, pivot.EntryID).Return(&pivot, nil).Once()
	suite.mockEntryRepo.On("FindSeriesEntriesDueAfter", ctx, suite.organizationID, seriesID, pivot.DueDate, pivot.EntryID).Return(future, nil).Once()

	var updated []domain.LedgerEntry
	suite.mockEntryRepo.On("UpdateEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Run(func(args mock.Arguments) {
		updated = args.Get(1).([]domain.LedgerEntry)
	}).Return(nil).Once()

	result, err := suite.service.UpdateEntry(ctx, suite.organizationID, pivot.EntryID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(result, 3, "pivot plus both future entries")
	suite.Require().Len(updated, 3)
	for _, e := range updated {
		suite.True(newAmount.Equal(e.Amount))
		suite.Equal(10, e.DueDate.Day())
	}
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_ScopeFutureWithoutSeries() {
	ctx := context.Background()
	standalone := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		Description:    "One-off",
		Amount:         decimal.NewFromInt(50),
		Nature:         domain.Expense,
		DueDate:        time.Now().UTC(),
		AccountID:      suite.checkingAccount.AccountID,
	}
	req := dto.UpdateEntryRequest{Scope: domain.ScopeFuture}

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, standalone.EntryID).Return(&standalone, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, suite.organizationID, standalone.EntryID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSeriesNotFound)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntries", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateTransfer_Success() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		SourceAccountID: suite.checkingAccount.AccountID,
		DestAccountID:   suite.savingsAccount.AccountID,
		Amount:          decimal.NewFromInt(500),
		Date:            time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		Description:     "Monthly savings",
	}

	suite.expectMember()
	accounts := map[string]domain.Account{
		suite.checkingAccount.AccountID: suite.checkingAccount,
		suite.savingsAccount.AccountID:  suite.savingsAccount,
	}
	suite.mockAccountSvc.On("GetAccountsByIDs", ctx, suite.organizationID, []string{suite.checkingAccount.AccountID, suite.savingsAccount.AccountID}).Return(accounts, nil).Once()
	suite.mockEntryRepo.On("SaveEntries", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()
	suite.mockNotifier.On("PublishEntriesCreated", ctx, mock.AnythingOfType("[]domain.LedgerEntry")).Return(nil).Once()

	pair, err := suite.service.CreateTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(pair, 2)

	outgoing, incoming := pair[0], pair[1]
	suite.Equal(domain.Expense, outgoing.Nature)
	suite.Equal(domain.Income, incoming.Nature)
	suite.Equal(suite.checkingAccount.AccountID, outgoing.AccountID)
	suite.Equal(suite.savingsAccount.AccountID, incoming.AccountID)
	suite.True(outgoing.Amount.Equal(incoming.Amount))
	suite.NotEmpty(outgoing.TransferID)
	suite.Equal(outgoing.TransferID, incoming.TransferID)
	suite.NotEqual(outgoing.EntryID, incoming.EntryID)
	suite.Equal("Monthly savings (to Savings)", outgoing.Description)
	suite.Equal("Monthly savings (from Checking)", incoming.Description)

	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestCreateTransfer_SameAccount() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		SourceAccountID: suite.checkingAccount.AccountID,
		DestAccountID:   suite.checkingAccount.AccountID,
		Amount:          decimal.NewFromInt(500),
		Date:            time.Now().UTC(),
		Description:     "Self transfer",
	}

	suite.expectMember()

	_, err := suite.service.CreateTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransfer)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "SaveEntries", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestCreateTransfer_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreateTransferRequest{
		SourceAccountID: suite.checkingAccount.AccountID,
		DestAccountID:   suite.savingsAccount.AccountID,
		Amount:          decimal.NewFromInt(-5),
		Date:            time.Now().UTC(),
		Description:     "Negative transfer",
	}

	suite.expectMember()

	_, err := suite.service.CreateTransfer(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransfer)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_TransferLegAmountRejected() {
	ctx := context.Background()
	leg := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		Description:    "Monthly savings",
		Amount:         decimal.NewFromInt(500),
		Nature:         domain.Expense,
		DueDate:        time.Now().UTC(),
		AccountID:      suite.checkingAccount.AccountID,
		TransferID:     uuid.NewString(),
	}
	newAmount := decimal.NewFromInt(600)
	req := dto.UpdateEntryRequest{Amount: &newAmount}

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, leg.EntryID).Return(&leg, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, suite.organizationID, leg.EntryID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransfer)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntries", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestUpdateEntry_TransferLegUnsettleRejected() {
	ctx := context.Background()
	transferDate := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	leg := domain.LedgerEntry{
		EntryID:         uuid.NewString(),
		OrganizationID:  suite.organizationID,
		Description:     "Monthly savings (to Savings)",
		Amount:          decimal.NewFromInt(500),
		Nature:          domain.Expense,
		TransactionDate: transferDate,
		DueDate:         transferDate,
		Status:          domain.Settled,
		SettlementDate:  &transferDate,
		AccountID:       suite.checkingAccount.AccountID,
		TransferID:      uuid.NewString(),
	}
	unsettled := false
	req := dto.UpdateEntryRequest{Settled: &unsettled}

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, leg.EntryID).Return(&leg, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, suite.organizationID, leg.EntryID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrInvalidTransfer)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "UpdateEntries", mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestDeleteEntry_TransferLegDeletesPair() {
	ctx := context.Background()
	transferID := uuid.NewString()
	leg := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: suite.organizationID,
		Amount:         decimal.NewFromInt(500),
		Nature:         domain.Income,
		AccountID:      suite.savingsAccount.AccountID,
		TransferID:     transferID,
	}

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, leg.EntryID).Return(&leg, nil).Once()
	suite.mockEntryRepo.On("DeleteTransferPair", ctx, suite.organizationID, transferID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.organizationID, leg.EntryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
	suite.mockEntryRepo.AssertExpectations(suite.T())
}

func (suite *EntryServiceTestSuite) TestDeleteTransfer_NotFound() {
	ctx := context.Background()
	transferID := uuid.NewString()

	suite.expectMember()
	suite.mockEntryRepo.On("FindEntriesByTransferID", ctx, suite.organizationID, transferID).Return([]domain.LedgerEntry{}, nil).Once()

	err := suite.service.DeleteTransfer(ctx, suite.organizationID, transferID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockEntryRepo.AssertNotCalled(suite.T(), "DeleteTransferPair", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *EntryServiceTestSuite) TestGetEntryByID_OtherOrganizationHidden() {
	ctx := context.Background()
	other := domain.LedgerEntry{
		EntryID:        uuid.NewString(),
		OrganizationID: uuid.NewString(),
		Amount:         decimal.NewFromInt(10),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
	suite.mockEntryRepo.On("FindEntryByID", ctx, suite.organizationID, other.EntryID).Return(&other, nil).Once()

	_, err := suite.service.GetEntryByID(ctx, suite.organizationID, other.EntryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestEntryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(EntryServiceTestSuite))
}

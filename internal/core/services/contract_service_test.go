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
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ContractRepository ---
type MockContractRepository struct {
	mock.Mock
}

var _ portsrepo.ContractRepositoryFacade = (*MockContractRepository)(nil)

func (m *MockContractRepository) FindContractByID(ctx context.Context, organizationID, contractID string) (*domain.Contract, error) {
	args := m.Called(ctx, organizationID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contract), args.Error(1)
}

func (m *MockContractRepository) FindPaymentPlan(ctx context.Context, organizationID, contractID string) (*domain.ContractPaymentPlan, error) {
	args := m.Called(ctx, organizationID, contractID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractPaymentPlan), args.Error(1)
}

func (m *MockContractRepository) ListContracts(ctx context.Context, organizationID string, limit, offset int) ([]domain.Contract, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contract), args.Error(1)
}

func (m *MockContractRepository) SaveContract(ctx context.Context, contract domain.Contract, residual domain.ResidualInstallment) error {
	args := m.Called(ctx, contract, residual)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateContractTotal(ctx context.Context, organizationID, contractID string, total decimal.Decimal, updatedBy string) error {
	args := m.Called(ctx, organizationID, contractID, total, updatedBy)
	return args.Error(0)
}

func (m *MockContractRepository) SaveInstallment(ctx context.Context, installment domain.ContractInstallment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateInstallment(ctx context.Context, installment domain.ContractInstallment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

func (m *MockContractRepository) DeleteInstallment(ctx context.Context, contractID, installmentID string) error {
	args := m.Called(ctx, contractID, installmentID)
	return args.Error(0)
}

func (m *MockContractRepository) SaveTradeIn(ctx context.Context, tradeIn domain.TradeInCredit) error {
	args := m.Called(ctx, tradeIn)
	return args.Error(0)
}

func (m *MockContractRepository) DeleteTradeIn(ctx context.Context, contractID, tradeInID string) error {
	args := m.Called(ctx, contractID, tradeInID)
	return args.Error(0)
}

func (m *MockContractRepository) UpdateResidualCache(ctx context.Context, residual domain.ResidualInstallment) error {
	args := m.Called(ctx, residual)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ContractServiceTestSuite struct {
	suite.Suite
	mockContractRepo *MockContractRepository
	mockOrgSvc       *MockOrganizationService
	service          portssvc.ContractSvcFacade
	organizationID   string
	userID           string
	contract         domain.Contract
}

func (suite *ContractServiceTestSuite) SetupTest() {
	suite.mockContractRepo = new(MockContractRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewContractService(suite.mockContractRepo, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.contract = domain.Contract{
		ContractID:     uuid.NewString(),
		OrganizationID: suite.organizationID,
		CounterpartyID: uuid.NewString(),
		Description:    "Unit 204 sale",
		TotalPrice:     decimal.NewFromInt(100000),
		SignedAt:       time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (suite *ContractServiceTestSuite) expectMember() {
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleMember).Return(nil).Once()
}

func (suite *ContractServiceTestSuite) expectReadOnly() {
	suite.mockOrgSvc.On("AuthorizeUserAction", mock.Anything, suite.userID, suite.organizationID, domain.RoleReadOnly).Return(nil).Once()
}

func (suite *ContractServiceTestSuite) planWith(installments []domain.ContractInstallment, tradeIns []domain.TradeInCredit, cached decimal.Decimal) *domain.ContractPaymentPlan {
	return &domain.ContractPaymentPlan{
		Contract:     suite.contract,
		Installments: installments,
		TradeIns:     tradeIns,
		Residual: domain.ResidualInstallment{
			ContractID:   suite.contract.ContractID,
			Description:  "Final payment",
			DueDate:      time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
			CachedAmount: cached,
		},
	}
}

// --- Test Cases ---

func (suite *ContractServiceTestSuite) TestCreateContract_ResidualStartsAtTotal() {
	ctx := context.Background()
	req := dto.CreateContractRequest{
		Description:     "Unit 204 sale",
		CounterpartyID:  suite.contract.CounterpartyID,
		TotalPrice:      decimal.NewFromInt(100000),
		SignedAt:        suite.contract.SignedAt,
		ResidualDueDate: time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
	}

	suite.expectMember()

	var savedResidual domain.ResidualInstallment
	suite.mockContractRepo.On("SaveContract", ctx, mock.AnythingOfType("domain.Contract"), mock.AnythingOfType("domain.ResidualInstallment")).Run(func(args mock.Arguments) {
		savedResidual = args.Get(2).(domain.ResidualInstallment)
	}).Return(nil).Once()

	contract, err := suite.service.CreateContract(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(contract)
	suite.NotEmpty(contract.ContractID)
	suite.True(req.TotalPrice.Equal(savedResidual.CachedAmount), "initial residual equals the total price")
	suite.Equal(contract.ContractID, savedResidual.ContractID)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *ContractServiceTestSuite) TestCreateContract_NonPositiveTotal() {
	ctx := context.Background()
	req := dto.CreateContractRequest{
		Description:    "Bad contract",
		CounterpartyID: uuid.NewString(),
		TotalPrice:     decimal.Zero,
	}

	suite.expectMember()

	_, err := suite.service.CreateContract(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTotalNotPositive)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "SaveContract", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContractServiceTestSuite) TestGetPaymentPlan_RecomputesResidual() {
	ctx := context.Background()
	installments := []domain.ContractInstallment{
		{InstallmentID: uuid.NewString(), ContractID: suite.contract.ContractID, Kind: domain.DownPayment, Amount: decimal.NewFromInt(20000)},
		{InstallmentID: uuid.NewString(), ContractID: suite.contract.ContractID, Kind: domain.Construction, Amount: decimal.NewFromInt(30000)},
	}
	tradeIns := []domain.TradeInCredit{
		{TradeInID: uuid.NewString(), ContractID: suite.contract.ContractID, Amount: decimal.NewFromInt(10000)},
	}
	// Cache is stale: holds the full total instead of the remaining 40000.
	plan := suite.planWith(installments, tradeIns, decimal.NewFromInt(100000))

	suite.expectReadOnly()
	suite.mockContractRepo.On("FindPaymentPlan", ctx, suite.organizationID, suite.contract.ContractID).Return(plan, nil).Once()

	result, err := suite.service.GetPaymentPlan(ctx, suite.organizationID, suite.contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(40000).Equal(result.Reconciled.Computed))
	suite.True(decimal.NewFromInt(100000).Equal(result.Reconciled.Cached))
	suite.True(decimal.NewFromInt(-60000).Equal(result.Reconciled.Drift))
	suite.True(result.Reconciled.HasDrift)
	// Reads never write the cache.
	suite.mockContractRepo.AssertNotCalled(suite.T(), "UpdateResidualCache", mock.Anything, mock.Anything)
}

func (suite *ContractServiceTestSuite) TestGetPaymentPlan_NoDriftAtThreshold() {
	ctx := context.Background()
	// Computed is 100000; cache off by exactly one cent is rounding noise.
	plan := suite.planWith(nil, nil, decimal.NewFromFloat(99999.99))

	suite.expectReadOnly()
	suite.mockContractRepo.On("FindPaymentPlan", ctx, suite.organizationID, suite.contract.ContractID).Return(plan, nil).Once()

	result, err := suite.service.GetPaymentPlan(ctx, suite.organizationID, suite.contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.False(result.Reconciled.HasDrift)
	suite.True(decimal.NewFromFloat(0.01).Equal(result.Reconciled.Drift))
}

func (suite *ContractServiceTestSuite) TestGetPaymentPlan_NegativeResidualSurfaced() {
	ctx := context.Background()
	installments := []domain.ContractInstallment{
		{InstallmentID: uuid.NewString(), ContractID: suite.contract.ContractID, Kind: domain.Additional, Amount: decimal.NewFromInt(120000)},
	}
	plan := suite.planWith(installments, nil, decimal.NewFromInt(-20000))

	suite.expectReadOnly()
	suite.mockContractRepo.On("FindPaymentPlan", ctx, suite.organizationID, suite.contract.ContractID).Return(plan, nil).Once()

	result, err := suite.service.GetPaymentPlan(ctx, suite.organizationID, suite.contract.ContractID, suite.userID)

	// An over-allocated plan is valid and reported, never rejected.
	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(-20000).Equal(result.Reconciled.Computed))
	suite.False(result.Reconciled.HasDrift)
}

func (suite *ContractServiceTestSuite) TestUpdateTotalPrice_DoesNotTouchCache() {
	ctx := context.Background()
	req := dto.UpdateContractTotalRequest{TotalPrice: decimal.NewFromInt(110000)}

	suite.expectMember()
	suite.mockContractRepo.On("FindContractByID", ctx, suite.organizationID, suite.contract.ContractID).Return(&suite.contract, nil).Once()
	suite.mockContractRepo.On("UpdateContractTotal", ctx, suite.organizationID, suite.contract.ContractID, req.TotalPrice, suite.userID).Return(nil).Once()

	err := suite.service.UpdateTotalPrice(ctx, suite.organizationID, suite.contract.ContractID, req, suite.userID)

	suite.Require().NoError(err)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "UpdateResidualCache", mock.Anything, mock.Anything)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func (suite *ContractServiceTestSuite) TestAddInstallment_Success() {
	ctx := context.Background()
	req := dto.CreateContractInstallmentRequest{
		Description: "Down payment",
		Kind:        domain.DownPayment,
		DueDate:     time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(20000),
	}

	suite.expectMember()
	suite.mockContractRepo.On("FindContractByID", ctx, suite.organizationID, suite.contract.ContractID).Return(&suite.contract, nil).Once()
	suite.mockContractRepo.On("SaveInstallment", ctx, mock.AnythingOfType("domain.ContractInstallment")).Return(nil).Once()

	installment, err := suite.service.AddInstallment(ctx, suite.organizationID, suite.contract.ContractID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(installment)
	suite.NotEmpty(installment.InstallmentID)
	suite.Equal(suite.contract.ContractID, installment.ContractID)
	suite.Equal(domain.DownPayment, installment.Kind)
	// No cache write: the residual shrinks on the next read.
	suite.mockContractRepo.AssertNotCalled(suite.T(), "UpdateResidualCache", mock.Anything, mock.Anything)
}

func (suite *ContractServiceTestSuite) TestAddInstallment_ContractMissing() {
	ctx := context.Background()
	req := dto.CreateContractInstallmentRequest{
		Description: "Down payment",
		Kind:        domain.DownPayment,
		DueDate:     time.Now().UTC(),
		Amount:      decimal.NewFromInt(20000),
	}
	missingID := uuid.NewString()

	suite.expectMember()
	suite.mockContractRepo.On("FindContractByID", ctx, suite.organizationID, missingID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AddInstallment(ctx, suite.organizationID, missingID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockContractRepo.AssertNotCalled(suite.T(), "SaveInstallment", mock.Anything, mock.Anything)
}

func (suite *ContractServiceTestSuite) TestUpdateInstallment_Success() {
	ctx := context.Background()
	installment := domain.ContractInstallment{
		InstallmentID: uuid.NewString(),
		ContractID:    suite.contract.ContractID,
		Description:   "Down payment",
		Kind:          domain.DownPayment,
		DueDate:       time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		Amount:        decimal.NewFromInt(20000),
	}
	plan := suite.planWith([]domain.ContractInstallment{installment}, nil, decimal.NewFromInt(80000))
	newAmount := decimal.NewFromInt(25000)
	req := dto.UpdateContractInstallmentRequest{Amount: &newAmount}

	suite.expectMember()
	suite.mockContractRepo.On("FindPaymentPlan", ctx, suite.organizationID, suite.contract.ContractID).Return(plan, nil).Once()
	suite.mockContractRepo.On("UpdateInstallment", ctx, mock.AnythingOfType("domain.ContractInstallment")).Return(nil).Once()

	updated, err := suite.service.UpdateInstallment(ctx, suite.organizationID, suite.contract.ContractID, installment.InstallmentID, req, suite.userID)

	suite.Require().NoError(err)
	suite.True(newAmount.Equal(updated.Amount))
	suite.Equal(suite.userID, updated.LastUpdatedBy)
}

func (suite *ContractServiceTestSuite) TestAddTradeIn_Success() {
	ctx := context.Background()
	req := dto.CreateTradeInRequest{
		Description: "Used vehicle",
		Date:        time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.NewFromInt(15000),
	}

	suite.expectMember()
	suite.mockContractRepo.On("FindContractByID", ctx, suite.organizationID, suite.contract.ContractID).Return(&suite.contract, nil).Once()
	suite.mockContractRepo.On("SaveTradeIn", ctx, mock.AnythingOfType("domain.TradeInCredit")).Return(nil).Once()

	tradeIn, err := suite.service.AddTradeIn(ctx, suite.organizationID, suite.contract.ContractID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(tradeIn)
	suite.NotEmpty(tradeIn.TradeInID)
	suite.Equal(suite.contract.ContractID, tradeIn.ContractID)
}

func (suite *ContractServiceTestSuite) TestResyncResidual_WritesComputedValue() {
	ctx := context.Background()
	installments := []domain.ContractInstallment{
		{InstallmentID: uuid.NewString(), ContractID: suite.contract.ContractID, Kind: domain.DownPayment, Amount: decimal.NewFromInt(20000)},
	}
	// Stale cache from before the installment was added.
	plan := suite.planWith(installments, nil, decimal.NewFromInt(100000))

	suite.expectMember()
	suite.mockContractRepo.On("FindPaymentPlan", ctx, suite.organizationID, suite.contract.ContractID).Return(plan, nil).Once()

	var written domain.ResidualInstallment
	suite.mockContractRepo.On("UpdateResidualCache", ctx, mock.AnythingOfType("domain.ResidualInstallment")).Run(func(args mock.Arguments) {
		written = args.Get(1).(domain.ResidualInstallment)
	}).Return(nil).Once()

	result, err := suite.service.ResyncResidual(ctx, suite.organizationID, suite.contract.ContractID, suite.userID)

	suite.Require().NoError(err)
	suite.True(decimal.NewFromInt(80000).Equal(written.CachedAmount), "cache now holds the recomputed residual")
	suite.True(decimal.NewFromInt(80000).Equal(result.Computed))
	suite.True(result.Drift.IsZero())
	suite.False(result.HasDrift)
	suite.mockContractRepo.AssertExpectations(suite.T())
}

func TestContractServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContractServiceTestSuite))
}

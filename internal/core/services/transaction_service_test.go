package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/core/services"
	"github.com/zivabsuite/contable/internal/dto"
)

// --- Mock CompanyAuthorizer ---
type MockAuthorizer struct {
	mock.Mock
}

var _ portssvc.CompanyAuthorizerSvc = (*MockAuthorizer)(nil)

func (m *MockAuthorizer) AuthorizeUserForCompany(ctx context.Context, userID string, companyID string, required domain.UserCompanyRole) (*domain.UserCompany, error) {
	args := m.Called(ctx, userID, companyID, required)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserCompany), args.Error(1)
}

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindMovementsByTransactionID(ctx context.Context, transactionID string) ([]domain.Movement, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Movement), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByCompany(ctx context.Context, companyID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, companyID, filter, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Transaction), returnedNextToken, args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, movements []domain.Movement) error {
	args := m.Called(ctx, txn, movements)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveMovement(ctx context.Context, movement domain.Movement, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, movement, totalDebit, totalCredit, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeactivateMovement(ctx context.Context, movementID string, transactionID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, movementID, transactionID, totalDebit, totalCredit, userID, now)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, expected, next domain.TransactionStatus, postedAt *time.Time, userID string, now time.Time) error {
	args := m.Called(ctx, transactionID, expected, next, postedAt, userID, now)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, companyID string, activeOnly bool) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListChildAccounts(ctx context.Context, accountID string) ([]domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasMovements(ctx context.Context, accountID string) (bool, error) {
	args := m.Called(ctx, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, accountID, userID, now)
	return args.Error(0)
}

// --- Mock TransactionTypeRepository ---
type MockTransactionTypeRepository struct {
	mock.Mock
}

var _ portsrepo.TransactionTypeRepositoryFacade = (*MockTransactionTypeRepository)(nil)

func (m *MockTransactionTypeRepository) FindTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error) {
	args := m.Called(ctx, transactionTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionType), args.Error(1)
}

func (m *MockTransactionTypeRepository) FindTransactionTypeByCode(ctx context.Context, companyID string, code string) (*domain.TransactionType, error) {
	args := m.Called(ctx, companyID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionType), args.Error(1)
}

func (m *MockTransactionTypeRepository) ListTransactionTypes(ctx context.Context, companyID string) ([]domain.TransactionType, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionType), args.Error(1)
}

func (m *MockTransactionTypeRepository) SaveTransactionType(ctx context.Context, tt domain.TransactionType) error {
	args := m.Called(ctx, tt)
	return args.Error(0)
}

func (m *MockTransactionTypeRepository) UpdateTransactionType(ctx context.Context, tt domain.TransactionType) error {
	args := m.Called(ctx, tt)
	return args.Error(0)
}

func (m *MockTransactionTypeRepository) NextFolio(ctx context.Context, companyID string, transactionTypeID *string, kind domain.TransactionKind, userID string) (string, error) {
	args := m.Called(ctx, companyID, transactionTypeID, kind, userID)
	return args.String(0), args.Error(1)
}

// --- Mock CostCenterRepository ---
type MockCostCenterRepository struct {
	mock.Mock
}

var _ portsrepo.CostCenterRepositoryFacade = (*MockCostCenterRepository)(nil)

func (m *MockCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	args := m.Called(ctx, costCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CostCenter), args.Error(1)
}

func (m *MockCostCenterRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Project), args.Error(1)
}

func (m *MockCostCenterRepository) ListProjects(ctx context.Context, companyID string) ([]domain.Project, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *MockCostCenterRepository) SaveCostCenter(ctx context.Context, cc domain.CostCenter) error {
	args := m.Called(ctx, cc)
	return args.Error(0)
}

func (m *MockCostCenterRepository) UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error {
	args := m.Called(ctx, cc)
	return args.Error(0)
}

func (m *MockCostCenterRepository) DeactivateCostCenter(ctx context.Context, costCenterID string, userID string, now time.Time) error {
	args := m.Called(ctx, costCenterID, userID, now)
	return args.Error(0)
}

func (m *MockCostCenterRepository) SaveProject(ctx context.Context, p domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockCostCenterRepository) UpdateProject(ctx context.Context, p domain.Project) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo        *MockTransactionRepository
	mockAccountRepo    *MockAccountRepository
	mockTypeRepo       *MockTransactionTypeRepository
	mockCostCenterRepo *MockCostCenterRepository
	mockAuthorizer     *MockAuthorizer
	service            portssvc.TransactionSvcFacade
	companyID          string
	userID             string
	cashAccount        domain.Account
	salesAccount       domain.Account
	summaryAccount     domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTypeRepo = new(MockTransactionTypeRepository)
	suite.mockCostCenterRepo = new(MockCostCenterRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		suite.mockAccountRepo,
		suite.mockTypeRepo,
		suite.mockCostCenterRepo,
		services.WithTxnCompanyAuthorizer(suite.mockAuthorizer),
	)

	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.cashAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1.1.01",
		AccountType: domain.Asset,
		Nature:      domain.DebitNature,
		Postable:    true,
		IsActive:    true,
	}
	suite.salesAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "4.1.01",
		AccountType: domain.Revenue,
		Nature:      domain.CreditNature,
		Postable:    true,
		IsActive:    true,
	}
	suite.summaryAccount = domain.Account{
		AccountID:   uuid.NewString(),
		CompanyID:   suite.companyID,
		Code:        "1.1",
		AccountType: domain.Asset,
		Nature:      domain.DebitNature,
		Postable:    false,
		IsActive:    true,
	}
}

func (suite *TransactionServiceTestSuite) authorize(role domain.UserCompanyRole) {
	link := &domain.UserCompany{UserID: suite.userID, CompanyID: suite.companyID, Role: role, IsActive: true}
	suite.mockAuthorizer.On("AuthorizeUserForCompany", mock.Anything, suite.userID, suite.companyID, mock.AnythingOfType("domain.UserCompanyRole")).Return(link, nil)
}

func (suite *TransactionServiceTestSuite) draftTransaction(movements ...domain.Movement) *domain.Transaction {
	txn := &domain.Transaction{
		TransactionID: uuid.NewString(),
		CompanyID:     suite.companyID,
		Folio:         "DIA-000001",
		Date:          time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind:          domain.GeneralEntry,
		Status:        domain.Draft,
		IsActive:      true,
		Movements:     movements,
	}
	txn.RecomputeTotals()
	return txn
}

func (suite *TransactionServiceTestSuite) movement(accountID string, debit, credit int64) domain.Movement {
	return domain.Movement{
		MovementID: uuid.NewString(),
		AccountID:  accountID,
		Debit:      decimal.NewFromInt(debit),
		Credit:     decimal.NewFromInt(credit),
		IsActive:   true,
	}
}

// --- CreateTransaction ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		Kind: domain.IncomeEntry,
		Memo: "Venta de mostrador",
		Movements: []dto.CreateMovementRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(1160)},
			{AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(1160)},
		},
	}

	suite.authorize(domain.RoleAssistant)
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.salesAccount.AccountID).Return(&suite.salesAccount, nil).Once()
	suite.mockTypeRepo.On("NextFolio", ctx, suite.companyID, (*string)(nil), domain.IncomeEntry, suite.userID).Return("ING-000001", nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.AnythingOfType("[]domain.Movement")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.Equal("ING-000001", txn.Folio)
	suite.Equal(domain.Draft, txn.Status)
	suite.True(txn.TotalDebit.Equal(decimal.NewFromInt(1160)))
	suite.True(txn.TotalCredit.Equal(decimal.NewFromInt(1160)))
	suite.Len(txn.Movements, 2)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockTypeRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_Forbidden() {
	ctx := context.Background()
	suite.mockAuthorizer.On("AuthorizeUserForCompany", mock.Anything, suite.userID, suite.companyID, domain.RoleAssistant).Return(nil, apperrors.ErrForbidden).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.companyID, dto.CreateTransactionRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NonPostableAccount() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date: time.Now(),
		Kind: domain.GeneralEntry,
		Movements: []dto.CreateMovementRequest{
			{AccountID: suite.summaryAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: suite.salesAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}

	suite.authorize(domain.RoleAssistant)
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.summaryAccount.AccountID).Return(&suite.summaryAccount, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotPostable)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CrossCompanyAccount() {
	ctx := context.Background()
	foreign := suite.cashAccount
	foreign.CompanyID = uuid.NewString()
	req := dto.CreateTransactionRequest{
		Date: time.Now(),
		Kind: domain.GeneralEntry,
		Movements: []dto.CreateMovementRequest{
			{AccountID: foreign.AccountID, Debit: decimal.NewFromInt(100)},
		},
	}

	suite.authorize(domain.RoleAssistant)
	suite.mockAccountRepo.On("FindAccountByID", ctx, foreign.AccountID).Return(&foreign, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrCrossCompanyReference)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_MovementWithBothSides() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Date: time.Now(),
		Kind: domain.GeneralEntry,
		Movements: []dto.CreateMovementRequest{
			{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(100), Credit: decimal.NewFromInt(100)},
		},
	}

	suite.authorize(domain.RoleAssistant)

	_, err := suite.service.CreateTransaction(ctx, suite.companyID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidMovement)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

// --- Lifecycle ---

func (suite *TransactionServiceTestSuite) TestValidateTransaction_Success() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.Draft, domain.Validated, (*time.Time)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	validated, err := suite.service.ValidateTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Validated, validated.Status)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestValidateTransaction_Unbalanced() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 400),
	}
	txn := suite.draftTransaction(movements...)

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()

	_, err := suite.service.ValidateTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrUnbalancedTransaction)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestValidateTransaction_InsufficientMovements() {
	ctx := context.Background()
	movements := []domain.Movement{suite.movement(suite.cashAccount.AccountID, 500, 0)}
	txn := suite.draftTransaction(movements...)

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()

	_, err := suite.service.ValidateTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInsufficientMovements)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_Success() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)
	txn.Status = domain.Validated

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.Validated, domain.Posted, mock.AnythingOfType("*time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	posted, err := suite.service.PostTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Posted, posted.Status)
	suite.Require().NotNil(posted.PostedAt)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_FromDraftRejected() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()

	_, err := suite.service.PostTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidStateTransition)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "UpdateTransactionStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction_Success() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)
	txn.Status = domain.Posted
	postedAt := time.Now()
	txn.PostedAt = &postedAt

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.Posted, domain.Cancelled, (*time.Time)(nil), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	cancelled, err := suite.service.CancelTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.Cancelled, cancelled.Status)
}

func (suite *TransactionServiceTestSuite) TestCancelTransaction_FromDraftRejected() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()

	_, err := suite.service.CancelTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidStateTransition)
}

func (suite *TransactionServiceTestSuite) TestPostTransaction_LostStatusRaceRejected() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)
	txn.Status = domain.Validated

	// Another request transitioned the row between our read and the write;
	// the guarded status update reports the conflict instead of landing.
	raceErr := fmt.Errorf("%w: transaction %s is %s, expected %s",
		domain.ErrInvalidStateTransition, txn.TransactionID, domain.Cancelled, domain.Validated)

	suite.authorize(domain.RoleAccountant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()
	suite.mockTxnRepo.On("UpdateTransactionStatus", ctx, txn.TransactionID, domain.Validated, domain.Posted, mock.AnythingOfType("*time.Time"), suite.userID, mock.AnythingOfType("time.Time")).Return(raceErr).Once()

	_, err := suite.service.PostTransaction(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidStateTransition)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Movement editing ---

func (suite *TransactionServiceTestSuite) TestAddMovement_NotEditable() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)
	txn.Status = domain.Posted

	suite.authorize(domain.RoleAssistant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()

	req := dto.AddMovementRequest{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10)}
	_, err := suite.service.AddMovement(ctx, suite.companyID, txn.TransactionID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrTransactionNotEditable)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveMovement", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestAddMovement_LostDraftRaceRejected() {
	ctx := context.Background()
	movements := []domain.Movement{
		suite.movement(suite.cashAccount.AccountID, 500, 0),
		suite.movement(suite.salesAccount.AccountID, 0, 500),
	}
	txn := suite.draftTransaction(movements...)

	// The draft was validated by a concurrent request after our read; the
	// DRAFT-guarded totals write rolls the insert back and reports it.
	raceErr := fmt.Errorf("%w: transaction %s is %s, expected %s",
		domain.ErrInvalidStateTransition, txn.TransactionID, domain.Validated, domain.Draft)

	suite.authorize(domain.RoleAssistant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return(movements, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.cashAccount.AccountID).Return(&suite.cashAccount, nil).Once()
	suite.mockTxnRepo.On("SaveMovement", ctx, mock.AnythingOfType("domain.Movement"),
		mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).Return(raceErr).Once()

	req := dto.AddMovementRequest{AccountID: suite.cashAccount.AccountID, Debit: decimal.NewFromInt(10)}
	_, err := suite.service.AddMovement(ctx, suite.companyID, txn.TransactionID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrInvalidStateTransition)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestRemoveMovement_RecomputesTotals() {
	ctx := context.Background()
	keep := suite.movement(suite.cashAccount.AccountID, 500, 0)
	drop := suite.movement(suite.salesAccount.AccountID, 0, 500)
	txn := suite.draftTransaction(keep, drop)

	suite.authorize(domain.RoleAssistant)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()
	suite.mockTxnRepo.On("FindMovementsByTransactionID", ctx, txn.TransactionID).Return([]domain.Movement{keep, drop}, nil).Once()
	suite.mockTxnRepo.On("DeactivateMovement", ctx, drop.MovementID, txn.TransactionID,
		mock.AnythingOfType("decimal.Decimal"), mock.AnythingOfType("decimal.Decimal"), suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.RemoveMovement(ctx, suite.companyID, txn.TransactionID, drop.MovementID, suite.userID)

	suite.Require().NoError(err)
	suite.True(updated.TotalDebit.Equal(decimal.NewFromInt(500)))
	suite.True(updated.TotalCredit.IsZero())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

// --- Reads ---

func (suite *TransactionServiceTestSuite) TestGetTransaction_OtherCompanyHidden() {
	ctx := context.Background()
	txn := suite.draftTransaction()
	txn.CompanyID = uuid.NewString()

	suite.authorize(domain.RoleReadOnly)
	suite.mockTxnRepo.On("FindTransactionByID", ctx, txn.TransactionID).Return(txn, nil).Once()

	_, err := suite.service.GetTransactionByID(ctx, suite.companyID, txn.TransactionID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindMovementsByTransactionID", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_UnknownStatus() {
	ctx := context.Background()
	bad := "APPROVED"
	params := dto.ListTransactionsParams{Status: &bad}

	suite.authorize(domain.RoleReadOnly)

	_, err := suite.service.ListTransactions(ctx, suite.companyID, suite.userID, params)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByCompany", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/core/services"
)

// --- Mock ReportingRepository ---
type MockReportingRepository struct {
	mock.Mock
}

var _ portsrepo.ReportingRepository = (*MockReportingRepository)(nil)

func (m *MockReportingRepository) ActivityByAccount(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, companyID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) PostedMovements(ctx context.Context, companyID string, accountIDs []string, from, to time.Time) ([]domain.PostedMovement, error) {
	args := m.Called(ctx, companyID, accountIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PostedMovement), args.Error(1)
}

func (m *MockReportingRepository) OpeningActivity(ctx context.Context, companyID string, accountIDs []string, before time.Time) ([]domain.AccountActivity, error) {
	args := m.Called(ctx, companyID, accountIDs, before)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountActivity), args.Error(1)
}

func (m *MockReportingRepository) FindCashAccounts(ctx context.Context, companyID string, codePrefix string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, codePrefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockReportingRepository) FindAccountsByNameHint(ctx context.Context, companyID string, hints []string) ([]domain.Account, error) {
	args := m.Called(ctx, companyID, hints)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Test Suite Setup ---
type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo       *MockReportingRepository
	mockAuthorizer *MockAuthorizer
	service        portssvc.ReportingService
	companyID      string
	userID         string
	asOf           time.Time
	from           time.Time
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.mockAuthorizer = new(MockAuthorizer)
	suite.service = services.NewReportingService(suite.mockRepo, services.WithReportingCompanyAuthorizer(suite.mockAuthorizer))
	suite.companyID = uuid.NewString()
	suite.userID = uuid.NewString()
	suite.asOf = time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	suite.from = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	link := &domain.UserCompany{UserID: suite.userID, CompanyID: suite.companyID, Role: domain.RoleReadOnly, IsActive: true}
	suite.mockAuthorizer.On("AuthorizeUserForCompany", mock.Anything, suite.userID, suite.companyID, domain.RoleReadOnly).Return(link, nil)
}

func (suite *ReportingServiceTestSuite) activity(code, name string, accountType domain.AccountType, nature domain.AccountNature, debit, credit int64) domain.AccountActivity {
	return domain.AccountActivity{
		Account: domain.Account{
			AccountID:   uuid.NewString(),
			CompanyID:   suite.companyID,
			Code:        code,
			Name:        name,
			AccountType: accountType,
			Nature:      nature,
			Postable:    true,
			IsActive:    true,
		},
		DebitTotal:  decimal.NewFromInt(debit),
		CreditTotal: decimal.NewFromInt(credit),
	}
}

// --- TrialBalance ---

func (suite *ReportingServiceTestSuite) TestTrialBalance_Balanced() {
	ctx := context.Background()
	activities := []domain.AccountActivity{
		suite.activity("4.1.01", "Ventas", domain.Revenue, domain.CreditNature, 0, 1000),
		suite.activity("1.1.01", "Caja", domain.Asset, domain.DebitNature, 1000, 0),
	}

	suite.mockRepo.On("ActivityByAccount", ctx, suite.companyID, time.Time{}, suite.asOf).Return(activities, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(tb.Balanced)
	suite.Require().Len(tb.Rows, 2)
	suite.Equal("1.1.01", tb.Rows[0].AccountCode) // sorted by code
	suite.True(tb.Rows[0].DebitBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(tb.Rows[0].CreditBalance.IsZero())
	suite.True(tb.Rows[1].CreditBalance.Equal(decimal.NewFromInt(1000)))
	suite.True(tb.TotalDebitBalance.Equal(tb.TotalCreditBalance))
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_IntegrityViolationAborts() {
	ctx := context.Background()
	// Posted data that no longer satisfies double entry.
	activities := []domain.AccountActivity{
		suite.activity("1.1.01", "Caja", domain.Asset, domain.DebitNature, 1000, 0),
		suite.activity("4.1.01", "Ventas", domain.Revenue, domain.CreditNature, 0, 900),
	}

	suite.mockRepo.On("ActivityByAccount", ctx, suite.companyID, time.Time{}, suite.asOf).Return(activities, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, domain.ErrIntegrityViolation)
	suite.Nil(tb)
}

func (suite *ReportingServiceTestSuite) TestTrialBalance_NegativeBalanceFlipsColumn() {
	ctx := context.Background()
	// An overdrawn debit-normal account lands in the credit column.
	activities := []domain.AccountActivity{
		suite.activity("1.1.02", "Bancos", domain.Asset, domain.DebitNature, 100, 400),
		suite.activity("2.1.01", "Proveedores", domain.Liability, domain.CreditNature, 300, 0),
	}

	suite.mockRepo.On("ActivityByAccount", ctx, suite.companyID, time.Time{}, suite.asOf).Return(activities, nil).Once()

	tb, err := suite.service.TrialBalance(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(tb.Rows[0].DebitBalance.IsZero())
	suite.True(tb.Rows[0].CreditBalance.Equal(decimal.NewFromInt(300)))
	// The liability with net debit activity flips to the debit column.
	suite.True(tb.Rows[1].DebitBalance.Equal(decimal.NewFromInt(300)))
	suite.True(tb.Balanced)
}

// --- IncomeStatement ---

func (suite *ReportingServiceTestSuite) TestIncomeStatement_ProfitComputation() {
	ctx := context.Background()
	activities := []domain.AccountActivity{
		suite.activity("4.1.01", "Ventas", domain.Revenue, domain.CreditNature, 0, 1000),
		suite.activity("5.1.01", "Costo de ventas", domain.Cost, domain.DebitNature, 300, 0),
		suite.activity("6.1.01", "Sueldos", domain.Expense, domain.DebitNature, 200, 0),
		// Activity that nets to zero stays out of the detail sections.
		suite.activity("6.1.02", "Papelería", domain.Expense, domain.DebitNature, 150, 150),
		// Balance sheet accounts must not leak into the P&L.
		suite.activity("1.1.01", "Caja", domain.Asset, domain.DebitNature, 500, 0),
	}

	suite.mockRepo.On("ActivityByAccount", ctx, suite.companyID, suite.from, suite.asOf).Return(activities, nil).Once()

	is, err := suite.service.IncomeStatement(ctx, suite.companyID, suite.from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(is.Revenue.Equal(decimal.NewFromInt(1000)))
	suite.True(is.Cost.Equal(decimal.NewFromInt(300)))
	suite.True(is.Expense.Equal(decimal.NewFromInt(200)))
	suite.True(is.GrossProfit.Equal(decimal.NewFromInt(700)))
	suite.True(is.NetProfit.Equal(decimal.NewFromInt(500)))
	suite.Len(is.RevenueDetail, 1)
	suite.Len(is.CostDetail, 1)
	suite.Require().Len(is.ExpenseDetail, 1)
	suite.Equal("6.1.01", is.ExpenseDetail[0].AccountCode)
}

// --- BalanceSheet ---

func (suite *ReportingServiceTestSuite) TestBalanceSheet_PeriodResultFoldedIntoEquity() {
	ctx := context.Background()
	full := []domain.AccountActivity{
		suite.activity("1.1.01", "Caja", domain.Asset, domain.DebitNature, 600, 0),
		suite.activity("3.1.01", "Capital social", domain.Equity, domain.CreditNature, 0, 100),
		suite.activity("4.1.01", "Ventas", domain.Revenue, domain.CreditNature, 0, 500),
	}
	yearStart := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	period := []domain.AccountActivity{
		suite.activity("4.1.01", "Ventas", domain.Revenue, domain.CreditNature, 0, 500),
	}

	suite.mockRepo.On("ActivityByAccount", ctx, suite.companyID, time.Time{}, suite.asOf).Return(full, nil).Once()
	suite.mockRepo.On("ActivityByAccount", ctx, suite.companyID, yearStart, suite.asOf).Return(period, nil).Once()

	bs, err := suite.service.BalanceSheet(ctx, suite.companyID, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(bs.TotalAssets.Equal(decimal.NewFromInt(600)))
	suite.True(bs.TotalLiabilities.IsZero())
	suite.True(bs.CapitalBase.Equal(decimal.NewFromInt(100)))
	suite.True(bs.PeriodResult.Equal(decimal.NewFromInt(500)))
	suite.True(bs.TotalEquity.Equal(decimal.NewFromInt(600)))
	suite.True(bs.Balanced)
}

// --- GeneralLedger ---

func (suite *ReportingServiceTestSuite) TestGeneralLedger_RunningBalances() {
	ctx := context.Background()
	cash := suite.activity("1.1.01", "Caja", domain.Asset, domain.DebitNature, 50, 30)
	cashID := cash.Account.AccountID

	opening := []domain.AccountActivity{
		{Account: cash.Account, DebitTotal: decimal.NewFromInt(100), CreditTotal: decimal.Zero},
	}
	movements := []domain.PostedMovement{
		{MovementID: uuid.NewString(), AccountID: cashID, Date: suite.from, Folio: "ING-000001", Kind: domain.IncomeEntry, Debit: decimal.NewFromInt(50)},
		{MovementID: uuid.NewString(), AccountID: cashID, Date: suite.from.AddDate(0, 0, 5), Folio: "EGR-000001", Kind: domain.DisbursementEntry, Credit: decimal.NewFromInt(30)},
	}

	suite.mockRepo.On("ActivityByAccount", ctx, suite.companyID, time.Time{}, suite.asOf).Return([]domain.AccountActivity{cash}, nil).Once()
	suite.mockRepo.On("OpeningActivity", ctx, suite.companyID, []string{cashID}, suite.from).Return(opening, nil).Once()
	suite.mockRepo.On("PostedMovements", ctx, suite.companyID, []string{cashID}, suite.from, suite.asOf).Return(movements, nil).Once()

	gl, err := suite.service.GeneralLedger(ctx, suite.companyID, suite.from, suite.asOf, nil, suite.userID)

	suite.Require().NoError(err)
	suite.Require().Len(gl.Accounts, 1)
	ledger := gl.Accounts[0]
	suite.True(ledger.OpeningBalance.Equal(decimal.NewFromInt(100)))
	suite.Require().Len(ledger.Lines, 2)
	suite.True(ledger.Lines[0].Balance.Equal(decimal.NewFromInt(150)))
	suite.True(ledger.Lines[1].Balance.Equal(decimal.NewFromInt(120)))
	suite.True(ledger.ClosingBalance.Equal(decimal.NewFromInt(120)))
	suite.True(ledger.PeriodDebit.Equal(decimal.NewFromInt(50)))
	suite.True(ledger.PeriodCredit.Equal(decimal.NewFromInt(30)))
}

// --- CashFlow ---

func (suite *ReportingServiceTestSuite) TestCashFlow_Reconciles() {
	ctx := context.Background()
	cash := suite.activity("1.1.01", "Caja", domain.Asset, domain.DebitNature, 0, 0).Account
	accountIDs := []string{cash.AccountID}

	opening := []domain.AccountActivity{
		{Account: cash, DebitTotal: decimal.NewFromInt(100), CreditTotal: decimal.Zero},
	}
	movements := []domain.PostedMovement{
		{MovementID: uuid.NewString(), AccountID: cash.AccountID, Date: suite.from, Folio: "ING-000001", Kind: domain.IncomeEntry, Debit: decimal.NewFromInt(200)},
		{MovementID: uuid.NewString(), AccountID: cash.AccountID, Date: suite.from.AddDate(0, 0, 2), Folio: "EGR-000001", Kind: domain.DisbursementEntry, Credit: decimal.NewFromInt(50)},
	}

	suite.mockRepo.On("FindCashAccounts", ctx, suite.companyID, "1.1").Return([]domain.Account{cash}, nil).Once()
	suite.mockRepo.On("OpeningActivity", ctx, suite.companyID, accountIDs, suite.from).Return(opening, nil).Once()
	suite.mockRepo.On("PostedMovements", ctx, suite.companyID, accountIDs, suite.from, suite.asOf).Return(movements, nil).Once()

	cf, err := suite.service.CashFlow(ctx, suite.companyID, suite.from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.True(cf.OpeningBalance.Equal(decimal.NewFromInt(100)))
	suite.True(cf.TotalInflows.Equal(decimal.NewFromInt(200)))
	suite.True(cf.TotalOutflows.Equal(decimal.NewFromInt(50)))
	suite.True(cf.NetFlow.Equal(decimal.NewFromInt(150)))
	suite.True(cf.ClosingBalance.Equal(decimal.NewFromInt(250)))
	suite.Len(cf.Inflows, 1)
	suite.Len(cf.Outflows, 1)
	suite.True(cf.ByKind[domain.IncomeEntry].Inflows.Equal(decimal.NewFromInt(200)))
	suite.True(cf.ByKind[domain.DisbursementEntry].Outflows.Equal(decimal.NewFromInt(50)))
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NameHintFallback() {
	ctx := context.Background()
	cash := suite.activity("100-01", "Caja general", domain.Asset, domain.DebitNature, 0, 0).Account

	suite.mockRepo.On("FindCashAccounts", ctx, suite.companyID, "1.1").Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("FindAccountsByNameHint", ctx, suite.companyID, []string{"caja", "banco"}).Return([]domain.Account{cash}, nil).Once()
	suite.mockRepo.On("OpeningActivity", ctx, suite.companyID, []string{cash.AccountID}, suite.from).Return([]domain.AccountActivity{}, nil).Once()
	suite.mockRepo.On("PostedMovements", ctx, suite.companyID, []string{cash.AccountID}, suite.from, suite.asOf).Return([]domain.PostedMovement{}, nil).Once()

	cf, err := suite.service.CashFlow(ctx, suite.companyID, suite.from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Len(cf.CashAccounts, 1)
	suite.True(cf.NetFlow.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestCashFlow_NoCashAccounts() {
	ctx := context.Background()

	suite.mockRepo.On("FindCashAccounts", ctx, suite.companyID, "1.1").Return([]domain.Account{}, nil).Once()
	suite.mockRepo.On("FindAccountsByNameHint", ctx, suite.companyID, mock.Anything).Return([]domain.Account{}, nil).Once()

	cf, err := suite.service.CashFlow(ctx, suite.companyID, suite.from, suite.asOf, suite.userID)

	suite.Require().NoError(err)
	suite.Empty(cf.CashAccounts)
	suite.True(cf.ClosingBalance.IsZero())
	suite.mockRepo.AssertNotCalled(suite.T(), "PostedMovements", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}

package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/utils/accounting"
)

// defaultCashAccountPrefix matches the customary chart position of cash and
// bank accounts (activo circulante).
const defaultCashAccountPrefix = "1.1"

// cashAccountNameHints is the fallback when the chart does not follow the
// standard code prefix.
var cashAccountNameHints = []string{"caja", "banco"}

// ledgerConcurrency bounds the parallel per-account ledger computation.
const ledgerConcurrency = 8

// reportingService implements the ReportingService interface. All reports
// aggregate POSTED transactions only; the repository queries enforce that.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	cashPrefix    string
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingCompanyAuthorizer sets the company authorizer for the reporting service.
func WithReportingCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) ReportingServiceOption {
	return func(s *reportingService) {
		s.CompanyAuthorizer = authorizer
	}
}

// WithCashAccountPrefix overrides the account code prefix used to identify
// cash accounts in the cash flow report.
func WithCashAccountPrefix(prefix string) ReportingServiceOption {
	return func(s *reportingService) {
		if prefix != "" {
			s.cashPrefix = prefix
		}
	}
}

// NewReportingService creates a new reporting service with the provided options
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{
		reportingRepo: repo,
		cashPrefix:    defaultCashAccountPrefix,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// TrialBalance generates a trial balance as of a specific date. Over posted,
// balanced transactions the two balance columns must agree exactly; a
// mismatch means stored data no longer satisfies double entry and is
// surfaced as an integrity error rather than returned as a report.
func (s *reportingService) TrialBalance(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.TrialBalance, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	activities, err := s.reportingRepo.ActivityByAccount(ctx, companyID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve trial balance activity", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve trial balance data: %w", err)
	}

	tb := &domain.TrialBalance{AsOf: asOf, Rows: make([]domain.TrialBalanceRow, 0, len(activities))}
	totalDebitBalance := decimal.Zero
	totalCreditBalance := decimal.Zero
	for _, act := range activities {
		signed, err := accounting.SignedBalance(act.Account.Nature, act.DebitTotal, act.CreditTotal)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", act.Account.Code, err)
		}
		debitBal, creditBal := accounting.SplitBalanceColumns(act.Account.Nature, signed)
		tb.Rows = append(tb.Rows, domain.TrialBalanceRow{
			AccountCode:   act.Account.Code,
			AccountName:   act.Account.Name,
			AccountType:   act.Account.AccountType,
			DebitTotal:    act.DebitTotal,
			CreditTotal:   act.CreditTotal,
			DebitBalance:  debitBal,
			CreditBalance: creditBal,
		})
		totalDebitBalance = totalDebitBalance.Add(debitBal)
		totalCreditBalance = totalCreditBalance.Add(creditBal)
	}
	sort.Slice(tb.Rows, func(i, j int) bool { return tb.Rows[i].AccountCode < tb.Rows[j].AccountCode })

	tb.TotalDebitBalance = totalDebitBalance
	tb.TotalCreditBalance = totalCreditBalance
	tb.Balanced = accounting.ExactlyBalanced(totalDebitBalance, totalCreditBalance)
	if !tb.Balanced {
		s.LogError(ctx, domain.ErrIntegrityViolation, "Trial balance columns disagree",
			slog.String("company_id", companyID),
			slog.String("debit_balance", totalDebitBalance.String()),
			slog.String("credit_balance", totalCreditBalance.String()))
		return nil, fmt.Errorf("%w: trial balance debit %s vs credit %s",
			domain.ErrIntegrityViolation, totalDebitBalance.String(), totalCreditBalance.String())
	}

	s.LogInfo(ctx, "Trial balance generated", slog.String("company_id", companyID), slog.Int("rows", len(tb.Rows)))
	return tb, nil
}

// signedAmounts aggregates activity rows of one account type into signed
// detail lines plus their total. Accounts whose activity nets to zero are
// left out of the detail.
func signedAmounts(activities []domain.AccountActivity, accountType domain.AccountType) ([]domain.AccountAmount, decimal.Decimal, error) {
	detail := make([]domain.AccountAmount, 0)
	total := decimal.Zero
	for _, act := range activities {
		if act.Account.AccountType != accountType {
			continue
		}
		signed, err := accounting.SignedBalance(act.Account.Nature, act.DebitTotal, act.CreditTotal)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("account %s: %w", act.Account.Code, err)
		}
		if signed.IsZero() {
			continue
		}
		detail = append(detail, domain.AccountAmount{
			AccountID:   act.Account.AccountID,
			AccountCode: act.Account.Code,
			AccountName: act.Account.Name,
			Balance:     signed,
		})
		total = total.Add(signed)
	}
	sort.Slice(detail, func(i, j int) bool { return detail[i].AccountCode < detail[j].AccountCode })
	return detail, total, nil
}

// buildIncomeStatement computes the P&L over already-fetched period activity.
func buildIncomeStatement(activities []domain.AccountActivity, from, to time.Time) (*domain.IncomeStatement, error) {
	revenueDetail, revenue, err := signedAmounts(activities, domain.Revenue)
	if err != nil {
		return nil, err
	}
	costDetail, cost, err := signedAmounts(activities, domain.Cost)
	if err != nil {
		return nil, err
	}
	expenseDetail, expense, err := signedAmounts(activities, domain.Expense)
	if err != nil {
		return nil, err
	}

	gross := revenue.Sub(cost)
	operating := gross.Sub(expense)
	return &domain.IncomeStatement{
		From:            from,
		To:              to,
		Revenue:         revenue,
		Cost:            cost,
		Expense:         expense,
		GrossProfit:     gross,
		OperatingProfit: operating,
		NetProfit:       operating,
		RevenueDetail:   revenueDetail,
		CostDetail:      costDetail,
		ExpenseDetail:   expenseDetail,
	}, nil
}

// IncomeStatement generates the profit and loss report for a period.
func (s *reportingService) IncomeStatement(ctx context.Context, companyID string, from, to time.Time, requestingUserID string) (*domain.IncomeStatement, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	activities, err := s.reportingRepo.ActivityByAccount(ctx, companyID, from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve income statement activity", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve income statement data: %w", err)
	}

	is, err := buildIncomeStatement(activities, from, to)
	if err != nil {
		return nil, err
	}
	s.LogInfo(ctx, "Income statement generated",
		slog.String("company_id", companyID),
		slog.String("net_profit", is.NetProfit.String()))
	return is, nil
}

// BalanceSheet generates the statement of financial position as of a date.
// The current-period result (January 1st of asOf's year through asOf) is
// folded into equity so the books balance without a formal year-end close.
func (s *reportingService) BalanceSheet(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.BalanceSheet, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	activities, err := s.reportingRepo.ActivityByAccount(ctx, companyID, time.Time{}, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to retrieve balance sheet activity", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to retrieve balance sheet data: %w", err)
	}

	assets, totalAssets, err := signedAmounts(activities, domain.Asset)
	if err != nil {
		return nil, err
	}
	liabilities, totalLiabilities, err := signedAmounts(activities, domain.Liability)
	if err != nil {
		return nil, err
	}
	equity, capitalBase, err := signedAmounts(activities, domain.Equity)
	if err != nil {
		return nil, err
	}

	yearStart := time.Date(asOf.Year(), time.January, 1, 0, 0, 0, 0, asOf.Location())
	periodActivities, err := s.reportingRepo.ActivityByAccount(ctx, companyID, yearStart, asOf)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve period result data: %w", err)
	}
	periodIS, err := buildIncomeStatement(periodActivities, yearStart, asOf)
	if err != nil {
		return nil, err
	}

	totalEquity := capitalBase.Add(periodIS.NetProfit)
	balanced := accounting.WithinTolerance(totalAssets, totalLiabilities.Add(totalEquity), accounting.DefaultReconciliationTolerance)

	bs := &domain.BalanceSheet{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      totalAssets,
		TotalLiabilities: totalLiabilities,
		CapitalBase:      capitalBase,
		PeriodResult:     periodIS.NetProfit,
		TotalEquity:      totalEquity,
		Balanced:         balanced,
	}
	if !balanced {
		s.LogError(ctx, domain.ErrIntegrityViolation, "Balance sheet equation does not hold",
			slog.String("company_id", companyID),
			slog.String("total_assets", totalAssets.String()),
			slog.String("liabilities_plus_equity", totalLiabilities.Add(totalEquity).String()))
	}

	s.LogInfo(ctx, "Balance sheet generated", slog.String("company_id", companyID), slog.Bool("balanced", balanced))
	return bs, nil
}

// buildAccountLedger computes one account's ledger over pre-filtered movements.
func buildAccountLedger(account domain.Account, opening decimal.Decimal, movements []domain.PostedMovement) (domain.AccountLedger, error) {
	ledger := domain.AccountLedger{
		AccountID:      account.AccountID,
		AccountCode:    account.Code,
		AccountName:    account.Name,
		AccountType:    account.AccountType,
		Nature:         account.Nature,
		OpeningBalance: opening,
		Lines:          make([]domain.LedgerLine, 0, len(movements)),
		PeriodDebit:    decimal.Zero,
		PeriodCredit:   decimal.Zero,
	}
	running := opening
	for _, m := range movements {
		effect, err := accounting.SignedEffect(account.Nature, m.Debit, m.Credit)
		if err != nil {
			return domain.AccountLedger{}, fmt.Errorf("account %s: %w", account.Code, err)
		}
		running = running.Add(effect)
		ledger.Lines = append(ledger.Lines, domain.LedgerLine{
			Date:    m.Date,
			Folio:   m.Folio,
			Memo:    m.Memo,
			Debit:   m.Debit,
			Credit:  m.Credit,
			Balance: running,
		})
		ledger.PeriodDebit = ledger.PeriodDebit.Add(m.Debit)
		ledger.PeriodCredit = ledger.PeriodCredit.Add(m.Credit)
	}
	ledger.ClosingBalance = running
	return ledger, nil
}

// GeneralLedger generates per-account movement detail with running balances.
// Accounts are computed in parallel; movement ordering within an account is
// preserved from the repository (date, then folio).
func (s *reportingService) GeneralLedger(ctx context.Context, companyID string, from, to time.Time, accountID *string, requestingUserID string) (*domain.GeneralLedger, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	// Accounts in scope: either the requested one, or every account with
	// activity before or during the period.
	all, err := s.reportingRepo.ActivityByAccount(ctx, companyID, time.Time{}, to)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ledger accounts: %w", err)
	}
	accounts := map[string]domain.Account{}
	for _, act := range all {
		if accountID != nil && act.Account.AccountID != *accountID {
			continue
		}
		accounts[act.Account.AccountID] = act.Account
	}

	accountIDs := make([]string, 0, len(accounts))
	for id := range accounts {
		accountIDs = append(accountIDs, id)
	}

	openings := map[string]decimal.Decimal{}
	if len(accountIDs) > 0 {
		openingActs, err := s.reportingRepo.OpeningActivity(ctx, companyID, accountIDs, from)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve opening balances: %w", err)
		}
		for _, act := range openingActs {
			signed, err := accounting.SignedBalance(act.Account.Nature, act.DebitTotal, act.CreditTotal)
			if err != nil {
				return nil, fmt.Errorf("account %s: %w", act.Account.Code, err)
			}
			openings[act.Account.AccountID] = signed
		}
	}

	movementsByAccount := map[string][]domain.PostedMovement{}
	if len(accountIDs) > 0 {
		movements, err := s.reportingRepo.PostedMovements(ctx, companyID, accountIDs, from, to)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve ledger movements: %w", err)
		}
		for _, m := range movements {
			movementsByAccount[m.AccountID] = append(movementsByAccount[m.AccountID], m)
		}
	}

	ledgers := make([]domain.AccountLedger, len(accountIDs))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(ledgerConcurrency)
	for i, id := range accountIDs {
		i, id := i, id
		g.Go(func() error {
			opening := openings[id]
			ledger, err := buildAccountLedger(accounts[id], opening, movementsByAccount[id])
			if err != nil {
				return err
			}
			ledgers[i] = ledger
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(ledgers, func(i, j int) bool { return ledgers[i].AccountCode < ledgers[j].AccountCode })

	s.LogInfo(ctx, "General ledger generated", slog.String("company_id", companyID), slog.Int("accounts", len(ledgers)))
	return &domain.GeneralLedger{From: from, To: to, Accounts: ledgers}, nil
}

// CashFlow reconciles cash account movement over a period. Cash accounts are
// found by code prefix first, falling back to a name heuristic for charts
// that do not follow the standard layout. Cash accounts are debit-normal, so
// debits to them are inflows and credits are outflows.
func (s *reportingService) CashFlow(ctx context.Context, companyID string, from, to time.Time, requestingUserID string) (*domain.CashFlow, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}

	cashAccounts, err := s.reportingRepo.FindCashAccounts(ctx, companyID, s.cashPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to find cash accounts: %w", err)
	}
	if len(cashAccounts) == 0 {
		cashAccounts, err = s.reportingRepo.FindAccountsByNameHint(ctx, companyID, cashAccountNameHints)
		if err != nil {
			return nil, fmt.Errorf("failed to find cash accounts by name: %w", err)
		}
	}

	cf := &domain.CashFlow{
		From:           from,
		To:             to,
		CashAccounts:   cashAccounts,
		OpeningBalance: decimal.Zero,
		Inflows:        []domain.CashFlowEntry{},
		Outflows:       []domain.CashFlowEntry{},
		TotalInflows:   decimal.Zero,
		TotalOutflows:  decimal.Zero,
		ByKind:         map[domain.TransactionKind]domain.CashFlowKindTotals{},
	}
	if len(cashAccounts) == 0 {
		cf.NetFlow = decimal.Zero
		cf.ClosingBalance = decimal.Zero
		s.LogInfo(ctx, "Cash flow generated with no cash accounts", slog.String("company_id", companyID))
		return cf, nil
	}

	accountsByID := make(map[string]domain.Account, len(cashAccounts))
	accountIDs := make([]string, 0, len(cashAccounts))
	for _, a := range cashAccounts {
		accountsByID[a.AccountID] = a
		accountIDs = append(accountIDs, a.AccountID)
	}

	openingActs, err := s.reportingRepo.OpeningActivity(ctx, companyID, accountIDs, from)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve opening cash balances: %w", err)
	}
	for _, act := range openingActs {
		signed, err := accounting.SignedBalance(act.Account.Nature, act.DebitTotal, act.CreditTotal)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", act.Account.Code, err)
		}
		cf.OpeningBalance = cf.OpeningBalance.Add(signed)
	}

	movements, err := s.reportingRepo.PostedMovements(ctx, companyID, accountIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cash movements: %w", err)
	}

	for _, m := range movements {
		account := accountsByID[m.AccountID]
		entry := domain.CashFlowEntry{
			Date:        m.Date,
			Folio:       m.Folio,
			AccountCode: account.Code,
			AccountName: account.Name,
			Memo:        m.Memo,
			Kind:        m.Kind,
		}
		kindTotals := cf.ByKind[m.Kind]
		if m.Debit.IsPositive() {
			entry.Amount = m.Debit
			cf.Inflows = append(cf.Inflows, entry)
			cf.TotalInflows = cf.TotalInflows.Add(m.Debit)
			kindTotals.Inflows = kindTotals.Inflows.Add(m.Debit)
		} else {
			entry.Amount = m.Credit
			cf.Outflows = append(cf.Outflows, entry)
			cf.TotalOutflows = cf.TotalOutflows.Add(m.Credit)
			kindTotals.Outflows = kindTotals.Outflows.Add(m.Credit)
		}
		cf.ByKind[m.Kind] = kindTotals
	}

	cf.NetFlow = cf.TotalInflows.Sub(cf.TotalOutflows)
	cf.ClosingBalance = cf.OpeningBalance.Add(cf.NetFlow)

	s.LogInfo(ctx, "Cash flow generated",
		slog.String("company_id", companyID),
		slog.Int("cash_accounts", len(cashAccounts)),
		slog.String("net_flow", cf.NetFlow.String()))
	return cf, nil
}

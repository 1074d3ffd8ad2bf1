package services

import (
	"context"
	"time"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// ReportingService defines operations for generating financial reports.
// Every report aggregates POSTED transactions only.
type ReportingService interface {
	// TrialBalance generates a trial balance as of a specific date.
	TrialBalance(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.TrialBalance, error)

	// IncomeStatement generates the profit and loss report for a period.
	IncomeStatement(ctx context.Context, companyID string, from, to time.Time, requestingUserID string) (*domain.IncomeStatement, error)

	// BalanceSheet generates the statement of financial position as of a date,
	// folding the current-period result into equity.
	BalanceSheet(ctx context.Context, companyID string, asOf time.Time, requestingUserID string) (*domain.BalanceSheet, error)

	// GeneralLedger generates per-account movement detail with running
	// balances for a period. A nil accountID covers every account with
	// activity or opening balance.
	GeneralLedger(ctx context.Context, companyID string, from, to time.Time, accountID *string, requestingUserID string) (*domain.GeneralLedger, error)

	// CashFlow reconciles cash account movement over a period.
	CashFlow(ctx context.Context, companyID string, from, to time.Time, requestingUserID string) (*domain.CashFlow, error)
}

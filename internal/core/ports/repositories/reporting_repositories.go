package repositories

import (
	"context"
	"time"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// ReportingRepository defines the raw aggregations the report engine consumes.
// Only POSTED transactions contribute; drafts, validated-but-unposted and
// cancelled transactions are excluded at the query level.
type ReportingRepository interface {
	// ActivityByAccount retrieves per-account debit/credit sums over posted
	// movements with transaction dates in [from, to]. A zero from means
	// "from the beginning". Accounts without activity are omitted.
	ActivityByAccount(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountActivity, error)

	// PostedMovements retrieves the movements of the given accounts joined with
	// their posted headers, ordered by transaction date then folio.
	PostedMovements(ctx context.Context, companyID string, accountIDs []string, from, to time.Time) ([]domain.PostedMovement, error)

	// OpeningActivity retrieves per-account debit/credit sums for posted
	// movements strictly before the given date.
	OpeningActivity(ctx context.Context, companyID string, accountIDs []string, before time.Time) ([]domain.AccountActivity, error)

	// FindCashAccounts retrieves the postable asset accounts whose code starts
	// with the configured cash prefix.
	FindCashAccounts(ctx context.Context, companyID string, codePrefix string) ([]domain.Account, error)

	// FindAccountsByNameHint retrieves postable asset accounts whose name
	// contains any of the hints, case-insensitively. Fallback for charts that
	// do not follow the standard cash code prefix.
	FindAccountsByNameHint(ctx context.Context, companyID string, hints []string) ([]domain.Account, error)
}

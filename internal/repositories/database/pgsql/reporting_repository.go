package pgsql

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	"github.com/zivabsuite/contable/internal/models"
	"github.com/zivabsuite/contable/internal/utils/mapping"
)

// prefixedAccountColumns qualifies the account column list for joined queries.
const prefixedAccountColumns = `a.account_id, a.company_id, a.code, a.name, a.parent_account_id, a.level, a.account_type, a.nature, a.postable, a.is_active, a.created_at, a.created_by, a.last_updated_at, a.last_updated_by`

type PgxReportingRepository struct {
	pool *pgxpool.Pool
}

// newPgxReportingRepository creates a new repository for report aggregations.
// Every query here restricts to POSTED headers and active rows; drafts,
// unposted and cancelled transactions never reach a report.
func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &PgxReportingRepository{pool: pool}
}

var _ portsrepo.ReportingRepository = (*PgxReportingRepository)(nil)

// ActivityByAccount retrieves per-account debit/credit sums over posted
// movements with transaction dates in [from, to]. A zero from means "from the
// beginning".
func (r *PgxReportingRepository) ActivityByAccount(ctx context.Context, companyID string, from, to time.Time) ([]domain.AccountActivity, error) {
	query := `
		SELECT ` + prefixedAccountColumns + `,
		       COALESCE(SUM(m.debit), 0) AS debit_total,
		       COALESCE(SUM(m.credit), 0) AS credit_total
		FROM movements m
		JOIN transactions t ON t.transaction_id = m.transaction_id
		JOIN accounts a ON a.account_id = m.account_id
		WHERE t.company_id = $1
		  AND t.status = 'POSTED'
		  AND t.is_active = TRUE
		  AND m.is_active = TRUE
		  AND t.transaction_date <= $2`
	args := []any{companyID, to}

	if !from.IsZero() {
		args = append(args, from)
		query += `
		  AND t.transaction_date >= $` + strconv.Itoa(len(args))
	}
	query += `
		GROUP BY ` + prefixedAccountColumns + `
		ORDER BY a.code;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query account activity for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var result []domain.AccountActivity
	for rows.Next() {
		var m models.Account
		var activity domain.AccountActivity
		err := rows.Scan(
			&m.AccountID,
			&m.CompanyID,
			&m.Code,
			&m.Name,
			&m.ParentAccountID,
			&m.Level,
			&m.AccountType,
			&m.Nature,
			&m.Postable,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&activity.DebitTotal,
			&activity.CreditTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account activity row: %w", err)
		}
		activity.Account = mapping.ToDomainAccount(m)
		result = append(result, activity)
	}
	return result, rows.Err()
}

// PostedMovements retrieves the movements of the given accounts joined with
// their posted headers, ordered by transaction date then folio. The movement
// memo falls back to the transaction memo when empty.
func (r *PgxReportingRepository) PostedMovements(ctx context.Context, companyID string, accountIDs []string, from, to time.Time) ([]domain.PostedMovement, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT m.movement_id, m.account_id, t.transaction_date, t.folio, t.kind,
		       CASE WHEN m.memo <> '' THEN m.memo ELSE t.memo END AS memo,
		       m.debit, m.credit
		FROM movements m
		JOIN transactions t ON t.transaction_id = m.transaction_id
		WHERE t.company_id = $1
		  AND t.status = 'POSTED'
		  AND t.is_active = TRUE
		  AND m.is_active = TRUE
		  AND m.account_id = ANY($2)
		  AND t.transaction_date <= $3`
	args := []any{companyID, accountIDs, to}

	if !from.IsZero() {
		args = append(args, from)
		query += `
		  AND t.transaction_date >= $` + strconv.Itoa(len(args))
	}
	query += `
		ORDER BY t.transaction_date, t.folio, m.created_at;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query posted movements for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var result []domain.PostedMovement
	for rows.Next() {
		var pm domain.PostedMovement
		var kind string
		err := rows.Scan(
			&pm.MovementID,
			&pm.AccountID,
			&pm.Date,
			&pm.Folio,
			&kind,
			&pm.Memo,
			&pm.Debit,
			&pm.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan posted movement row: %w", err)
		}
		pm.Kind = domain.TransactionKind(kind)
		result = append(result, pm)
	}
	return result, rows.Err()
}

// OpeningActivity retrieves per-account debit/credit sums for posted movements
// strictly before the given date.
func (r *PgxReportingRepository) OpeningActivity(ctx context.Context, companyID string, accountIDs []string, before time.Time) ([]domain.AccountActivity, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + prefixedAccountColumns + `,
		       COALESCE(SUM(m.debit), 0) AS debit_total,
		       COALESCE(SUM(m.credit), 0) AS credit_total
		FROM movements m
		JOIN transactions t ON t.transaction_id = m.transaction_id
		JOIN accounts a ON a.account_id = m.account_id
		WHERE t.company_id = $1
		  AND t.status = 'POSTED'
		  AND t.is_active = TRUE
		  AND m.is_active = TRUE
		  AND m.account_id = ANY($2)
		  AND t.transaction_date < $3
		GROUP BY ` + prefixedAccountColumns + `
		ORDER BY a.code;`

	rows, err := r.pool.Query(ctx, query, companyID, accountIDs, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query opening activity for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var result []domain.AccountActivity
	for rows.Next() {
		var m models.Account
		var activity domain.AccountActivity
		err := rows.Scan(
			&m.AccountID,
			&m.CompanyID,
			&m.Code,
			&m.Name,
			&m.ParentAccountID,
			&m.Level,
			&m.AccountType,
			&m.Nature,
			&m.Postable,
			&m.IsActive,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&activity.DebitTotal,
			&activity.CreditTotal,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan opening activity row: %w", err)
		}
		activity.Account = mapping.ToDomainAccount(m)
		result = append(result, activity)
	}
	return result, rows.Err()
}

// FindCashAccounts retrieves the postable asset accounts whose code starts
// with the given prefix.
func (r *PgxReportingRepository) FindCashAccounts(ctx context.Context, companyID string, codePrefix string) ([]domain.Account, error) {
	query := `
		SELECT ` + prefixedAccountColumns + `
		FROM accounts a
		WHERE a.company_id = $1
		  AND a.account_type = $2
		  AND a.postable = TRUE
		  AND a.is_active = TRUE
		  AND a.code LIKE $3
		ORDER BY a.code;`

	rows, err := r.pool.Query(ctx, query, companyID, string(domain.Asset), codePrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to query cash accounts for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cash account row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainAccountSlice(ms), rows.Err()
}

// FindAccountsByNameHint retrieves postable asset accounts whose name contains
// any of the hints, case-insensitively.
func (r *PgxReportingRepository) FindAccountsByNameHint(ctx context.Context, companyID string, hints []string) ([]domain.Account, error) {
	if len(hints) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + prefixedAccountColumns + `
		FROM accounts a
		WHERE a.company_id = $1
		  AND a.account_type = $2
		  AND a.postable = TRUE
		  AND a.is_active = TRUE
		  AND (`
	args := []any{companyID, string(domain.Asset)}
	var clauses []string
	for _, hint := range hints {
		args = append(args, "%"+hint+"%")
		clauses = append(clauses, `a.name ILIKE $`+strconv.Itoa(len(args)))
	}
	query += strings.Join(clauses, " OR ") + `)
		ORDER BY a.code;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by name hint for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ms []models.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainAccountSlice(ms), rows.Err()
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	"github.com/zivabsuite/contable/internal/models"
	"github.com/zivabsuite/contable/internal/utils/mapping"
	"github.com/zivabsuite/contable/internal/utils/pagination"
)

const transactionColumns = `transaction_id, company_id, folio, transaction_date, kind, transaction_type_id, memo, status, total_debit, total_credit, posted_at, is_active, created_at, created_by, last_updated_at, last_updated_by`

const movementColumns = `movement_id, transaction_id, account_id, memo, debit, credit, cost_center_id, project_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for journal entry data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.CompanyID,
		&m.Folio,
		&m.TransactionDate,
		&m.Kind,
		&m.TransactionTypeID,
		&m.Memo,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&m.PostedAt,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func scanMovement(row pgx.Row) (*models.Movement, error) {
	var m models.Movement
	err := row.Scan(
		&m.MovementID,
		&m.TransactionID,
		&m.AccountID,
		&m.Memo,
		&m.Debit,
		&m.Credit,
		&m.CostCenterID,
		&m.ProjectID,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func insertMovementTx(ctx context.Context, tx pgx.Tx, m models.Movement) error {
	query := `
		INSERT INTO movements (` + movementColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.MovementID,
		m.TransactionID,
		m.AccountID,
		m.Memo,
		m.Debit,
		m.Credit,
		m.CostCenterID,
		m.ProjectID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert movement %s: %w", m.MovementID, err)
	}
	return nil
}

// rowQuerier is satisfied by both the pool and an open pgx.Tx.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// explainStatusMismatch distinguishes a missing row from a lost status race
// after a status-guarded header write matched nothing.
func explainStatusMismatch(ctx context.Context, q rowQuerier, transactionID string, expected domain.TransactionStatus) error {
	var current string
	err := q.QueryRow(ctx, `SELECT status FROM transactions WHERE transaction_id = $1;`, transactionID).Scan(&current)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read status of transaction %s: %w", transactionID, err)
	}
	return fmt.Errorf("%w: transaction %s is %s, expected %s", domain.ErrInvalidStateTransition, transactionID, current, expected)
}

// updateTransactionTotalsTx rewrites the denormalized header totals. Guarded on
// status = DRAFT so a movement mutation that raced a validate/post cannot
// corrupt a finalized header; the surrounding tx rolls the movement back too.
func updateTransactionTotalsTx(ctx context.Context, tx pgx.Tx, transactionID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET total_debit = $2, total_credit = $3, last_updated_at = $4, last_updated_by = $5
		WHERE transaction_id = $1 AND status = $6;
	`
	tag, err := tx.Exec(ctx, query, transactionID, totalDebit, totalCredit, now, userID, string(domain.Draft))
	if err != nil {
		return fmt.Errorf("failed to update totals for transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return explainStatusMismatch(ctx, tx, transactionID, domain.Draft)
	}
	return nil
}

// SaveTransaction persists a transaction header and its movements atomically.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, movements []domain.Movement) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, query,
		m.TransactionID,
		m.CompanyID,
		m.Folio,
		m.TransactionDate,
		m.Kind,
		m.TransactionTypeID,
		m.Memo,
		m.Status,
		m.TotalDebit,
		m.TotalCredit,
		m.PostedAt,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: folio %s already exists in company", apperrors.ErrDuplicate, m.Folio)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}

	for _, mov := range movements {
		if err := insertMovementTx(ctx, tx, mapping.ToModelMovement(mov)); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction header by its ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(*m)
	return &txn, nil
}

// FindMovementsByTransactionID retrieves all movements of a transaction in
// insertion order.
func (r *PgxTransactionRepository) FindMovementsByTransactionID(ctx context.Context, transactionID string) ([]domain.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE transaction_id = $1 ORDER BY created_at, movement_id;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movements for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	var ms []models.Movement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan movement row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainMovementSlice(ms), rows.Err()
}

// ListTransactionsByCompany retrieves a page of transactions for a company,
// newest first, using token-based pagination over (transaction_date, created_at).
func (r *PgxTransactionRepository) ListTransactionsByCompany(ctx context.Context, companyID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	fetchLimit := limit + 1

	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE company_id = $1 AND is_active = TRUE`
	args := []any{companyID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		query += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Kind != nil {
		args = append(args, string(*filter.Kind))
		query += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND transaction_date >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND transaction_date <= $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, cursor.TransactionDate, cursor.CreatedAt)
		query += ` AND (transaction_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query += ` ORDER BY transaction_date DESC, created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ms []models.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		ms = append(ms, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate transaction rows: %w", err)
	}

	var newNextToken *string
	if len(ms) == fetchLimit {
		last := ms[limit-1]
		token := pagination.Cursor{TransactionDate: last.TransactionDate, CreatedAt: last.CreatedAt}.Encode()
		newNextToken = &token
		ms = ms[:limit]
	}

	return mapping.ToDomainTransactionSlice(ms), newNextToken, nil
}

// UpdateTransaction updates the editable header fields of a transaction. The
// write only lands while the stored status is still DRAFT, so a header edit
// that raced a validate cannot mutate a finalized transaction.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)

	query := `
		UPDATE transactions
		SET transaction_date = $2, memo = $3, total_debit = $4, total_credit = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE transaction_id = $1 AND status = $8;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionID,
		m.TransactionDate,
		m.Memo,
		m.TotalDebit,
		m.TotalCredit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		string(domain.Draft),
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return explainStatusMismatch(ctx, r.Pool, m.TransactionID, domain.Draft)
	}
	return nil
}

// SaveMovement appends a movement and rewrites the header totals atomically.
func (r *PgxTransactionRepository) SaveMovement(ctx context.Context, movement domain.Movement, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if err := insertMovementTx(ctx, tx, mapping.ToModelMovement(movement)); err != nil {
		return err
	}
	if err := updateTransactionTotalsTx(ctx, tx, movement.TransactionID, totalDebit, totalCredit, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeactivateMovement soft-deletes a movement and rewrites the header totals
// atomically.
func (r *PgxTransactionRepository) DeactivateMovement(ctx context.Context, movementID string, transactionID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	query := `
		UPDATE movements
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE movement_id = $1 AND transaction_id = $2;
	`
	tag, err := tx.Exec(ctx, query, movementID, transactionID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate movement %s: %w", movementID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := updateTransactionTotalsTx(ctx, tx, transactionID, totalDebit, totalCredit, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateTransactionStatus advances the lifecycle state of a transaction as a
// compare-and-swap: the row is only updated while it still holds the expected
// status, so two interleaved transitions cannot both land. The loser of the
// race gets domain.ErrInvalidStateTransition.
func (r *PgxTransactionRepository) UpdateTransactionStatus(ctx context.Context, transactionID string, expected, next domain.TransactionStatus, postedAt *time.Time, userID string, now time.Time) error {
	query := `
		UPDATE transactions
		SET status = $3, posted_at = COALESCE($4, posted_at), last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1 AND status = $2;
	`
	tag, err := r.Pool.Exec(ctx, query, transactionID, string(expected), string(next), postedAt, now, userID)
	if err != nil {
		return fmt.Errorf("failed to update status of transaction %s: %w", transactionID, err)
	}
	if tag.RowsAffected() == 0 {
		return explainStatusMismatch(ctx, r.Pool, transactionID, expected)
	}
	return nil
}

package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	"github.com/zivabsuite/contable/internal/models"
	"github.com/zivabsuite/contable/internal/utils/mapping"
)

const transactionTypeColumns = `transaction_type_id, company_id, code, name, description, prefix, suffix, number_length, last_folio, requires_validation, allows_editing, is_active, created_at, created_by, last_updated_at, last_updated_by`

// defaultNumberLength is the zero-padding width for built-in folio series.
const defaultNumberLength = 6

type PgxTransactionTypeRepository struct {
	BaseRepository
}

// newPgxTransactionTypeRepository creates a new repository for folio series data.
func newPgxTransactionTypeRepository(pool *pgxpool.Pool) portsrepo.TransactionTypeRepositoryFacade {
	return &PgxTransactionTypeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionTypeRepositoryFacade = (*PgxTransactionTypeRepository)(nil)

func scanTransactionType(row pgx.Row) (*models.TransactionType, error) {
	var m models.TransactionType
	err := row.Scan(
		&m.TransactionTypeID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.Prefix,
		&m.Suffix,
		&m.NumberLength,
		&m.LastFolio,
		&m.RequiresValidation,
		&m.AllowsEditing,
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

// SaveTransactionType inserts a new folio series.
func (r *PgxTransactionTypeRepository) SaveTransactionType(ctx context.Context, tt domain.TransactionType) error {
	m := mapping.ToModelTransactionType(tt)

	query := `
		INSERT INTO transaction_types (` + transactionTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransactionTypeID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.Description,
		m.Prefix,
		m.Suffix,
		m.NumberLength,
		m.LastFolio,
		m.RequiresValidation,
		m.AllowsEditing,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: transaction type code %s already exists in company", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save transaction type %s: %w", m.TransactionTypeID, err)
	}
	return nil
}

// FindTransactionTypeByID retrieves a folio series by its ID.
func (r *PgxTransactionTypeRepository) FindTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error) {
	query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE transaction_type_id = $1;`

	m, err := scanTransactionType(r.Pool.QueryRow(ctx, query, transactionTypeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction type %s: %w", transactionTypeID, err)
	}
	tt := mapping.ToDomainTransactionType(*m)
	return &tt, nil
}

// FindTransactionTypeByCode retrieves a folio series by code within a company.
func (r *PgxTransactionTypeRepository) FindTransactionTypeByCode(ctx context.Context, companyID string, code string) (*domain.TransactionType, error) {
	query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE company_id = $1 AND code = $2;`

	m, err := scanTransactionType(r.Pool.QueryRow(ctx, query, companyID, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction type by code %s: %w", code, err)
	}
	tt := mapping.ToDomainTransactionType(*m)
	return &tt, nil
}

// ListTransactionTypes retrieves the folio series of a company ordered by code.
func (r *PgxTransactionTypeRepository) ListTransactionTypes(ctx context.Context, companyID string) ([]domain.TransactionType, error) {
	query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE company_id = $1 ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction types for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ms []models.TransactionType
	for rows.Next() {
		m, err := scanTransactionType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction type row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainTransactionTypeSlice(ms), rows.Err()
}

// UpdateTransactionType updates the editable fields of a folio series. The
// numbering fields (prefix, suffix, number_length) are frozen after creation
// so already-assigned folios keep their shape.
func (r *PgxTransactionTypeRepository) UpdateTransactionType(ctx context.Context, tt domain.TransactionType) error {
	m := mapping.ToModelTransactionType(tt)

	query := `
		UPDATE transaction_types
		SET name = $2, description = $3, requires_validation = $4, allows_editing = $5,
		    is_active = $6, last_updated_at = $7, last_updated_by = $8
		WHERE transaction_type_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.TransactionTypeID,
		m.Name,
		m.Description,
		m.RequiresValidation,
		m.AllowsEditing,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction type %s: %w", m.TransactionTypeID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// NextFolio advances a folio series under a row lock and returns the rendered
// folio. When transactionTypeID is nil the built-in series for the kind is
// used, creating it on first use. The row lock serializes concurrent callers
// so folios are gapless per series.
func (r *PgxTransactionTypeRepository) NextFolio(ctx context.Context, companyID string, transactionTypeID *string, kind domain.TransactionKind, userID string) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	var m *models.TransactionType
	if transactionTypeID != nil {
		query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE transaction_type_id = $1 AND company_id = $2 FOR UPDATE;`
		m, err = scanTransactionType(tx.QueryRow(ctx, query, *transactionTypeID, companyID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return "", apperrors.ErrNotFound
			}
			return "", fmt.Errorf("failed to lock transaction type %s: %w", *transactionTypeID, err)
		}
	} else {
		m, err = r.lockBuiltinSeries(ctx, tx, companyID, kind, userID)
		if err != nil {
			return "", err
		}
	}

	tt := mapping.ToDomainTransactionType(*m)
	folio := tt.NextFolio()

	update := `
		UPDATE transaction_types
		SET last_folio = $2, last_updated_at = $3, last_updated_by = $4
		WHERE transaction_type_id = $1;
	`
	if _, err := tx.Exec(ctx, update, tt.TransactionTypeID, tt.LastFolio, time.Now().UTC(), userID); err != nil {
		return "", fmt.Errorf("failed to advance folio series %s: %w", tt.TransactionTypeID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return folio, nil
}

// lockBuiltinSeries locks the built-in series row for a kind, inserting it on
// first use. The insert races with concurrent first users; a unique violation
// means the other writer won, so we retry the lock.
func (r *PgxTransactionTypeRepository) lockBuiltinSeries(ctx context.Context, tx pgx.Tx, companyID string, kind domain.TransactionKind, userID string) (*models.TransactionType, error) {
	code := string(kind)
	query := `SELECT ` + transactionTypeColumns + ` FROM transaction_types WHERE company_id = $1 AND code = $2 FOR UPDATE;`

	m, err := scanTransactionType(tx.QueryRow(ctx, query, companyID, code))
	if err == nil {
		return m, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to lock builtin series %s: %w", code, err)
	}

	now := time.Now().UTC()
	seed := models.TransactionType{
		TransactionTypeID:  uuid.NewString(),
		CompanyID:          companyID,
		Code:               code,
		Name:               code,
		Prefix:             domain.DefaultFolioPrefix(kind),
		NumberLength:       defaultNumberLength,
		LastFolio:          0,
		RequiresValidation: true,
		AllowsEditing:      true,
		IsActive:           true,
		AuditFields: models.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	insert := `
		INSERT INTO transaction_types (` + transactionTypeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (company_id, code) DO NOTHING;
	`
	_, err = tx.Exec(ctx, insert,
		seed.TransactionTypeID,
		seed.CompanyID,
		seed.Code,
		seed.Name,
		seed.Description,
		seed.Prefix,
		seed.Suffix,
		seed.NumberLength,
		seed.LastFolio,
		seed.RequiresValidation,
		seed.AllowsEditing,
		seed.IsActive,
		seed.CreatedAt,
		seed.CreatedBy,
		seed.LastUpdatedAt,
		seed.LastUpdatedBy,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to seed builtin series %s: %w", code, err)
	}

	m, err = scanTransactionType(tx.QueryRow(ctx, query, companyID, code))
	if err != nil {
		return nil, fmt.Errorf("failed to lock builtin series %s after seed: %w", code, err)
	}
	return m, nil
}

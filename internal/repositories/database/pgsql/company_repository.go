package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	"github.com/zivabsuite/contable/internal/models"
	"github.com/zivabsuite/contable/internal/utils/mapping"
)

const companyColumns = `company_id, name, trade_name, rfc, user_limit, is_active, created_at, created_by, last_updated_at, last_updated_by`

const userCompanyColumns = `user_id, company_id, role, is_default, last_access_at, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCompanyRepository struct {
	BaseRepository
}

// newPgxCompanyRepository creates a new repository for company and membership data.
func newPgxCompanyRepository(pool *pgxpool.Pool) portsrepo.CompanyRepositoryFacade {
	return &PgxCompanyRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.CompanyRepositoryFacade = (*PgxCompanyRepository)(nil)

func scanCompany(row pgx.Row) (*models.Company, error) {
	var m models.Company
	err := row.Scan(
		&m.CompanyID,
		&m.Name,
		&m.TradeName,
		&m.RFC,
		&m.UserLimit,
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

func scanUserCompany(row pgx.Row) (*models.UserCompany, error) {
	var m models.UserCompany
	err := row.Scan(
		&m.UserID,
		&m.CompanyID,
		&m.Role,
		&m.IsDefault,
		&m.LastAccessAt,
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

func insertUserCompanyTx(ctx context.Context, tx pgx.Tx, m models.UserCompany) error {
	query := `
		INSERT INTO user_companies (` + userCompanyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.UserID,
		m.CompanyID,
		m.Role,
		m.IsDefault,
		m.LastAccessAt,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: user %s already belongs to company %s", apperrors.ErrDuplicate, m.UserID, m.CompanyID)
		}
		return fmt.Errorf("failed to insert membership for user %s: %w", m.UserID, err)
	}
	return nil
}

// SaveCompany persists a new company and its owner membership atomically.
func (r *PgxCompanyRepository) SaveCompany(ctx context.Context, company domain.Company, owner domain.UserCompany) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	m := mapping.ToModelCompany(company)
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.TradeName,
		m.RFC,
		m.UserLimit,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: company with rfc %s already exists", apperrors.ErrDuplicate, m.RFC)
		}
		return fmt.Errorf("failed to save company %s: %w", m.CompanyID, err)
	}

	if err := insertUserCompanyTx(ctx, tx, mapping.ToModelUserCompany(owner)); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindCompanyByID retrieves a company by its ID.
func (r *PgxCompanyRepository) FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE company_id = $1;`

	m, err := scanCompany(r.Pool.QueryRow(ctx, query, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company %s: %w", companyID, err)
	}
	company := mapping.ToDomainCompany(*m)
	return &company, nil
}

// FindCompanyByRFC retrieves a company by its tax id.
func (r *PgxCompanyRepository) FindCompanyByRFC(ctx context.Context, rfc string) (*domain.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE rfc = $1;`

	m, err := scanCompany(r.Pool.QueryRow(ctx, query, rfc))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find company by rfc %s: %w", rfc, err)
	}
	company := mapping.ToDomainCompany(*m)
	return &company, nil
}

// ListCompaniesByUser retrieves the active companies a user belongs to.
func (r *PgxCompanyRepository) ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error) {
	query := `
		SELECT c.company_id, c.name, c.trade_name, c.rfc, c.user_limit, c.is_active,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM companies c
		JOIN user_companies uc ON uc.company_id = c.company_id
		WHERE uc.user_id = $1 AND uc.is_active = TRUE AND c.is_active = TRUE
		ORDER BY c.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies for user %s: %w", userID, err)
	}
	defer rows.Close()

	var ms []models.Company
	for rows.Next() {
		m, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainCompanySlice(ms), rows.Err()
}

// FindUserCompanyRole retrieves the membership link of a user in a company.
func (r *PgxCompanyRepository) FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompany, error) {
	query := `SELECT ` + userCompanyColumns + ` FROM user_companies WHERE user_id = $1 AND company_id = $2;`

	m, err := scanUserCompany(r.Pool.QueryRow(ctx, query, userID, companyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership of user %s in company %s: %w", userID, companyID, err)
	}
	link := mapping.ToDomainUserCompany(*m)
	return &link, nil
}

// CountActiveUsers counts the active memberships of a company.
func (r *PgxCompanyRepository) CountActiveUsers(ctx context.Context, companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM user_companies WHERE company_id = $1 AND is_active = TRUE;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active users of company %s: %w", companyID, err)
	}
	return count, nil
}

// CountActiveOwners counts the active OWNER memberships of a company.
func (r *PgxCompanyRepository) CountActiveOwners(ctx context.Context, companyID string) (int, error) {
	query := `SELECT COUNT(*) FROM user_companies WHERE company_id = $1 AND role = $2 AND is_active = TRUE;`

	var count int
	if err := r.Pool.QueryRow(ctx, query, companyID, string(domain.RoleOwner)).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count owners of company %s: %w", companyID, err)
	}
	return count, nil
}

// UpdateCompany updates an existing company's details.
func (r *PgxCompanyRepository) UpdateCompany(ctx context.Context, company domain.Company) error {
	m := mapping.ToModelCompany(company)

	query := `
		UPDATE companies
		SET name = $2, trade_name = $3, user_limit = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.CompanyID,
		m.Name,
		m.TradeName,
		m.UserLimit,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update company %s: %w", m.CompanyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveUserCompany persists a membership link. A previously deactivated link is
// reactivated with the new role instead of violating the primary key.
func (r *PgxCompanyRepository) SaveUserCompany(ctx context.Context, link domain.UserCompany) error {
	m := mapping.ToModelUserCompany(link)

	query := `
		INSERT INTO user_companies (` + userCompanyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (user_id, company_id) DO UPDATE
		SET role = EXCLUDED.role, is_active = TRUE,
		    last_updated_at = EXCLUDED.last_updated_at, last_updated_by = EXCLUDED.last_updated_by
		WHERE user_companies.is_active = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.CompanyID,
		m.Role,
		m.IsDefault,
		m.LastAccessAt,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save membership for user %s: %w", m.UserID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: user %s already belongs to company %s", apperrors.ErrDuplicate, m.UserID, m.CompanyID)
	}
	return nil
}

// UpdateUserCompanyRole changes a member's role.
func (r *PgxCompanyRepository) UpdateUserCompanyRole(ctx context.Context, userID string, companyID string, role domain.UserCompanyRole, updatedBy string, now time.Time) error {
	query := `
		UPDATE user_companies
		SET role = $3, last_updated_at = $4, last_updated_by = $5
		WHERE user_id = $1 AND company_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, companyID, string(role), now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to update role of user %s in company %s: %w", userID, companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateUserCompany removes a member from a company.
func (r *PgxCompanyRepository) DeactivateUserCompany(ctx context.Context, userID string, companyID string, updatedBy string, now time.Time) error {
	query := `
		UPDATE user_companies
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $1 AND company_id = $2 AND is_active = TRUE;
	`
	tag, err := r.Pool.Exec(ctx, query, userID, companyID, now, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to deactivate membership of user %s in company %s: %w", userID, companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCompany marks a company as inactive.
func (r *PgxCompanyRepository) DeactivateCompany(ctx context.Context, companyID string, userID string, now time.Time) error {
	query := `
		UPDATE companies
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE company_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query, companyID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate company %s: %w", companyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

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

const costCenterColumns = `cost_center_id, company_id, code, name, parent_id, level, allows_movements, is_active, created_at, created_by, last_updated_at, last_updated_by`

const projectColumns = `project_id, company_id, code, name, status, cost_center_id, is_active, created_at, created_by, last_updated_at, last_updated_by`

type PgxCostCenterRepository struct {
	pool *pgxpool.Pool
}

// newPgxCostCenterRepository creates a new repository for analytic dimension data.
func newPgxCostCenterRepository(pool *pgxpool.Pool) portsrepo.CostCenterRepositoryFacade {
	return &PgxCostCenterRepository{pool: pool}
}

var _ portsrepo.CostCenterRepositoryFacade = (*PgxCostCenterRepository)(nil)

func scanCostCenter(row pgx.Row) (*models.CostCenter, error) {
	var m models.CostCenter
	err := row.Scan(
		&m.CostCenterID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.ParentID,
		&m.Level,
		&m.AllowsMovements,
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

func scanProject(row pgx.Row) (*models.Project, error) {
	var m models.Project
	err := row.Scan(
		&m.ProjectID,
		&m.CompanyID,
		&m.Code,
		&m.Name,
		&m.Status,
		&m.CostCenterID,
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

// SaveCostCenter inserts a new cost center.
func (r *PgxCostCenterRepository) SaveCostCenter(ctx context.Context, cc domain.CostCenter) error {
	m := mapping.ToModelCostCenter(cc)

	query := `
		INSERT INTO cost_centers (` + costCenterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.pool.Exec(ctx, query,
		m.CostCenterID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.ParentID,
		m.Level,
		m.AllowsMovements,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: cost center code %s already exists in company", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save cost center %s: %w", m.CostCenterID, err)
	}
	return nil
}

// FindCostCenterByID retrieves a cost center by its ID.
func (r *PgxCostCenterRepository) FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE cost_center_id = $1;`

	m, err := scanCostCenter(r.pool.QueryRow(ctx, query, costCenterID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find cost center %s: %w", costCenterID, err)
	}
	cc := mapping.ToDomainCostCenter(*m)
	return &cc, nil
}

// ListCostCenters retrieves the cost centers of a company ordered by code.
func (r *PgxCostCenterRepository) ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error) {
	query := `SELECT ` + costCenterColumns + ` FROM cost_centers WHERE company_id = $1 ORDER BY code;`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cost centers for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ms []models.CostCenter
	for rows.Next() {
		m, err := scanCostCenter(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan cost center row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainCostCenterSlice(ms), rows.Err()
}

// UpdateCostCenter updates an existing cost center.
func (r *PgxCostCenterRepository) UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error {
	m := mapping.ToModelCostCenter(cc)

	query := `
		UPDATE cost_centers
		SET name = $2, parent_id = $3, level = $4, allows_movements = $5, is_active = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE cost_center_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.CostCenterID,
		m.Name,
		m.ParentID,
		m.Level,
		m.AllowsMovements,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update cost center %s: %w", m.CostCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCostCenter marks a cost center as inactive.
func (r *PgxCostCenterRepository) DeactivateCostCenter(ctx context.Context, costCenterID string, userID string, now time.Time) error {
	query := `
		UPDATE cost_centers
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE cost_center_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query, costCenterID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to deactivate cost center %s: %w", costCenterID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveProject inserts a new project.
func (r *PgxCostCenterRepository) SaveProject(ctx context.Context, p domain.Project) error {
	m := mapping.ToModelProject(p)

	query := `
		INSERT INTO projects (` + projectColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		m.ProjectID,
		m.CompanyID,
		m.Code,
		m.Name,
		m.Status,
		m.CostCenterID,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: project code %s already exists in company", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save project %s: %w", m.ProjectID, err)
	}
	return nil
}

// FindProjectByID retrieves a project by its ID.
func (r *PgxCostCenterRepository) FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE project_id = $1;`

	m, err := scanProject(r.pool.QueryRow(ctx, query, projectID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find project %s: %w", projectID, err)
	}
	p := mapping.ToDomainProject(*m)
	return &p, nil
}

// ListProjects retrieves the projects of a company ordered by code.
func (r *PgxCostCenterRepository) ListProjects(ctx context.Context, companyID string) ([]domain.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE company_id = $1 ORDER BY code;`

	rows, err := r.pool.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects for company %s: %w", companyID, err)
	}
	defer rows.Close()

	var ms []models.Project
	for rows.Next() {
		m, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		ms = append(ms, *m)
	}
	return mapping.ToDomainProjectSlice(ms), rows.Err()
}

// UpdateProject updates an existing project, including status changes.
func (r *PgxCostCenterRepository) UpdateProject(ctx context.Context, p domain.Project) error {
	m := mapping.ToModelProject(p)

	query := `
		UPDATE projects
		SET name = $2, status = $3, cost_center_id = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE project_id = $1;
	`
	tag, err := r.pool.Exec(ctx, query,
		m.ProjectID,
		m.Name,
		m.Status,
		m.CostCenterID,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update project %s: %w", m.ProjectID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

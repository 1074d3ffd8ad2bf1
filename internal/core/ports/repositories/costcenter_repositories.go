package repositories

import (
	"context"
	"time"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// CostCenterReader defines read operations for analytic dimension data
type CostCenterReader interface {
	// FindCostCenterByID retrieves a cost center by its unique identifier.
	FindCostCenterByID(ctx context.Context, costCenterID string) (*domain.CostCenter, error)

	// ListCostCenters retrieves the cost centers of a company ordered by code.
	ListCostCenters(ctx context.Context, companyID string) ([]domain.CostCenter, error)

	// FindProjectByID retrieves a project by its unique identifier.
	FindProjectByID(ctx context.Context, projectID string) (*domain.Project, error)

	// ListProjects retrieves the projects of a company ordered by code.
	ListProjects(ctx context.Context, companyID string) ([]domain.Project, error)
}

// CostCenterWriter defines write operations for analytic dimension data
type CostCenterWriter interface {
	// SaveCostCenter persists a new cost center.
	SaveCostCenter(ctx context.Context, cc domain.CostCenter) error

	// UpdateCostCenter updates an existing cost center.
	UpdateCostCenter(ctx context.Context, cc domain.CostCenter) error

	// DeactivateCostCenter marks a cost center as inactive.
	DeactivateCostCenter(ctx context.Context, costCenterID string, userID string, now time.Time) error

	// SaveProject persists a new project.
	SaveProject(ctx context.Context, p domain.Project) error

	// UpdateProject updates an existing project, including status changes.
	UpdateProject(ctx context.Context, p domain.Project) error
}

// CostCenterRepositoryFacade combines all analytic dimension repository interfaces
type CostCenterRepositoryFacade interface {
	CostCenterReader
	CostCenterWriter
}

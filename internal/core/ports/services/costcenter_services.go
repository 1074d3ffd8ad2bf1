package services

import (
	"context"

	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/dto"
)

// CostCenterReaderSvc defines read operations for analytic dimensions
type CostCenterReaderSvc interface {
	// GetCostCenterByID retrieves a cost center by its ID.
	GetCostCenterByID(ctx context.Context, companyID string, costCenterID string, requestingUserID string) (*domain.CostCenter, error)

	// ListCostCenters retrieves a company's cost centers ordered by code.
	ListCostCenters(ctx context.Context, companyID string, requestingUserID string) ([]domain.CostCenter, error)

	// GetProjectByID retrieves a project by its ID.
	GetProjectByID(ctx context.Context, companyID string, projectID string, requestingUserID string) (*domain.Project, error)

	// ListProjects retrieves a company's projects ordered by code.
	ListProjects(ctx context.Context, companyID string, requestingUserID string) ([]domain.Project, error)
}

// CostCenterWriterSvc defines write operations for analytic dimensions
type CostCenterWriterSvc interface {
	// CreateCostCenter persists a new cost center.
	CreateCostCenter(ctx context.Context, companyID string, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error)

	// UpdateCostCenter updates a cost center.
	UpdateCostCenter(ctx context.Context, companyID string, costCenterID string, req dto.UpdateCostCenterRequest, requestingUserID string) (*domain.CostCenter, error)

	// DeactivateCostCenter marks a cost center as inactive.
	DeactivateCostCenter(ctx context.Context, companyID string, costCenterID string, requestingUserID string) error

	// CreateProject persists a new project in PLANNING status.
	CreateProject(ctx context.Context, companyID string, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error)

	// UpdateProject updates a project, including status changes.
	UpdateProject(ctx context.Context, companyID string, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error)
}

// CostCenterSvcFacade combines all analytic dimension service interfaces
type CostCenterSvcFacade interface {
	CostCenterReaderSvc
	CostCenterWriterSvc
}

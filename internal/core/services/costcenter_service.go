package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/dto"
)

var ErrProjectClosed = errors.New("closed projects cannot be reopened")

// costCenterService manages analytic dimensions: cost centers and projects.
type costCenterService struct {
	BaseService
	ccRepo portsrepo.CostCenterRepositoryFacade
}

// CostCenterServiceOption is a functional option for configuring the service
type CostCenterServiceOption func(*costCenterService)

// WithCCCompanyAuthorizer sets the company authorizer for the cost center service.
func WithCCCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) CostCenterServiceOption {
	return func(s *costCenterService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewCostCenterService creates a new CostCenterService.
func NewCostCenterService(ccRepo portsrepo.CostCenterRepositoryFacade, options ...CostCenterServiceOption) portssvc.CostCenterSvcFacade {
	svc := &costCenterService{ccRepo: ccRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CostCenterSvcFacade = (*costCenterService)(nil)

// CreateCostCenter persists a new cost center. Requires ACCOUNTANT.
func (s *costCenterService) CreateCostCenter(ctx context.Context, companyID string, req dto.CreateCostCenterRequest, creatorUserID string) (*domain.CostCenter, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	level := 1
	if req.ParentID != nil {
		parent, err := s.ccRepo.FindCostCenterByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent.CompanyID != companyID {
			return nil, fmt.Errorf("%w: cost center %s", domain.ErrCrossCompanyReference, parent.Code)
		}
		level = parent.Level + 1
	}

	now := time.Now()
	cc := domain.CostCenter{
		CostCenterID:    uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		ParentID:        req.ParentID,
		Level:           level,
		AllowsMovements: req.AllowsMovements,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.ccRepo.SaveCostCenter(ctx, cc); err != nil {
		s.LogError(ctx, err, "Failed to save cost center", slog.String("company_id", companyID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save cost center: %w", err)
	}
	return &cc, nil
}

// GetCostCenterByID retrieves a cost center scoped to the company.
func (s *costCenterService) GetCostCenterByID(ctx context.Context, companyID string, costCenterID string, requestingUserID string) (*domain.CostCenter, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	cc, err := s.ccRepo.FindCostCenterByID(ctx, costCenterID)
	if err != nil {
		return nil, err
	}
	if cc.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return cc, nil
}

// ListCostCenters retrieves a company's cost centers ordered by code.
func (s *costCenterService) ListCostCenters(ctx context.Context, companyID string, requestingUserID string) ([]domain.CostCenter, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	ccs, err := s.ccRepo.ListCostCenters(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cost centers: %w", err)
	}
	return ccs, nil
}

// UpdateCostCenter updates a cost center. Requires ACCOUNTANT.
func (s *costCenterService) UpdateCostCenter(ctx context.Context, companyID string, costCenterID string, req dto.UpdateCostCenterRequest, requestingUserID string) (*domain.CostCenter, error) {
	cc, err := s.GetCostCenterByID(ctx, companyID, costCenterID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if req.Name != nil {
		cc.Name = *req.Name
	}
	if req.AllowsMovements != nil {
		cc.AllowsMovements = *req.AllowsMovements
	}
	if req.IsActive != nil {
		cc.IsActive = *req.IsActive
	}
	cc.LastUpdatedAt = time.Now()
	cc.LastUpdatedBy = requestingUserID

	if err := s.ccRepo.UpdateCostCenter(ctx, *cc); err != nil {
		s.LogError(ctx, err, "Failed to update cost center", slog.String("cost_center_id", costCenterID))
		return nil, fmt.Errorf("failed to update cost center: %w", err)
	}
	return cc, nil
}

// DeactivateCostCenter marks a cost center as inactive. Requires ACCOUNTANT.
func (s *costCenterService) DeactivateCostCenter(ctx context.Context, companyID string, costCenterID string, requestingUserID string) error {
	if _, err := s.GetCostCenterByID(ctx, companyID, costCenterID, requestingUserID); err != nil {
		return err
	}
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return err
	}
	if err := s.ccRepo.DeactivateCostCenter(ctx, costCenterID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate cost center", slog.String("cost_center_id", costCenterID))
		return fmt.Errorf("failed to deactivate cost center: %w", err)
	}
	return nil
}

// CreateProject persists a new project in PLANNING status. Requires ACCOUNTANT.
func (s *costCenterService) CreateProject(ctx context.Context, companyID string, req dto.CreateProjectRequest, creatorUserID string) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if req.CostCenterID != nil {
		cc, err := s.ccRepo.FindCostCenterByID(ctx, *req.CostCenterID)
		if err != nil {
			return nil, err
		}
		if cc.CompanyID != companyID {
			return nil, fmt.Errorf("%w: cost center %s", domain.ErrCrossCompanyReference, cc.Code)
		}
	}

	now := time.Now()
	p := domain.Project{
		ProjectID:    uuid.NewString(),
		CompanyID:    companyID,
		Code:         req.Code,
		Name:         req.Name,
		Status:       domain.ProjectPlanning,
		CostCenterID: req.CostCenterID,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.ccRepo.SaveProject(ctx, p); err != nil {
		s.LogError(ctx, err, "Failed to save project", slog.String("company_id", companyID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save project: %w", err)
	}
	return &p, nil
}

// GetProjectByID retrieves a project scoped to the company.
func (s *costCenterService) GetProjectByID(ctx context.Context, companyID string, projectID string, requestingUserID string) (*domain.Project, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	p, err := s.ccRepo.FindProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return p, nil
}

// ListProjects retrieves a company's projects ordered by code.
func (s *costCenterService) ListProjects(ctx context.Context, companyID string, requestingUserID string) ([]domain.Project, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	ps, err := s.ccRepo.ListProjects(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return ps, nil
}

// UpdateProject updates a project, including status changes. Closed projects
// stay closed. Requires ACCOUNTANT.
func (s *costCenterService) UpdateProject(ctx context.Context, companyID string, projectID string, req dto.UpdateProjectRequest, requestingUserID string) (*domain.Project, error) {
	p, err := s.GetProjectByID(ctx, companyID, projectID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Status != nil {
		if p.Status == domain.ProjectClosed && *req.Status != domain.ProjectClosed {
			return nil, ErrProjectClosed
		}
		p.Status = *req.Status
	}
	if req.CostCenterID != nil {
		cc, err := s.ccRepo.FindCostCenterByID(ctx, *req.CostCenterID)
		if err != nil {
			return nil, err
		}
		if cc.CompanyID != companyID {
			return nil, fmt.Errorf("%w: cost center %s", domain.ErrCrossCompanyReference, cc.Code)
		}
		p.CostCenterID = req.CostCenterID
	}
	p.LastUpdatedAt = time.Now()
	p.LastUpdatedBy = requestingUserID

	if err := s.ccRepo.UpdateProject(ctx, *p); err != nil {
		s.LogError(ctx, err, "Failed to update project", slog.String("project_id", projectID))
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return p, nil
}

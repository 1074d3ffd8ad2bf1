package dto

import (
	"github.com/zivabsuite/contable/internal/core/domain"
)

// --- Cost center DTOs ---

// CreateCostCenterRequest defines the data needed to create a cost center.
type CreateCostCenterRequest struct {
	Code            string  `json:"code" binding:"required"`
	Name            string  `json:"name" binding:"required"`
	ParentID        *string `json:"parentID"`
	AllowsMovements bool    `json:"allowsMovements"`
}

// UpdateCostCenterRequest defines the data allowed for updating a cost center.
type UpdateCostCenterRequest struct {
	Name            *string `json:"name"`
	AllowsMovements *bool   `json:"allowsMovements"`
	IsActive        *bool   `json:"isActive"`
}

// CostCenterResponse defines the data returned for a cost center.
type CostCenterResponse struct {
	CostCenterID    string  `json:"costCenterID"`
	CompanyID       string  `json:"companyID"`
	Code            string  `json:"code"`
	Name            string  `json:"name"`
	ParentID        *string `json:"parentID,omitempty"`
	Level           int     `json:"level"`
	AllowsMovements bool    `json:"allowsMovements"`
	IsActive        bool    `json:"isActive"`
}

// ToCostCenterResponse converts a domain.CostCenter to DTO.
func ToCostCenterResponse(cc *domain.CostCenter) CostCenterResponse {
	return CostCenterResponse{
		CostCenterID:    cc.CostCenterID,
		CompanyID:       cc.CompanyID,
		Code:            cc.Code,
		Name:            cc.Name,
		ParentID:        cc.ParentID,
		Level:           cc.Level,
		AllowsMovements: cc.AllowsMovements,
		IsActive:        cc.IsActive,
	}
}

// ToListCostCentersResponse converts a slice of domain.CostCenter to DTOs.
func ToListCostCentersResponse(ccs []domain.CostCenter) []CostCenterResponse {
	res := make([]CostCenterResponse, len(ccs))
	for i, cc := range ccs {
		res[i] = ToCostCenterResponse(&cc)
	}
	return res
}

// --- Project DTOs ---

// CreateProjectRequest defines the data needed to create a project.
type CreateProjectRequest struct {
	Code         string  `json:"code" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	CostCenterID *string `json:"costCenterID"`
}

// UpdateProjectRequest defines the data allowed for updating a project.
type UpdateProjectRequest struct {
	Name         *string               `json:"name"`
	Status       *domain.ProjectStatus `json:"status" binding:"omitempty,oneof=PLANNING ACTIVE SUSPENDED CLOSED"`
	CostCenterID *string               `json:"costCenterID"`
}

// ProjectResponse defines the data returned for a project.
type ProjectResponse struct {
	ProjectID    string               `json:"projectID"`
	CompanyID    string               `json:"companyID"`
	Code         string               `json:"code"`
	Name         string               `json:"name"`
	Status       domain.ProjectStatus `json:"status"`
	CostCenterID *string              `json:"costCenterID,omitempty"`
	IsActive     bool                 `json:"isActive"`
}

// ToProjectResponse converts a domain.Project to DTO.
func ToProjectResponse(p *domain.Project) ProjectResponse {
	return ProjectResponse{
		ProjectID:    p.ProjectID,
		CompanyID:    p.CompanyID,
		Code:         p.Code,
		Name:         p.Name,
		Status:       p.Status,
		CostCenterID: p.CostCenterID,
		IsActive:     p.IsActive,
	}
}

// ToListProjectsResponse converts a slice of domain.Project to DTOs.
func ToListProjectsResponse(ps []domain.Project) []ProjectResponse {
	res := make([]ProjectResponse, len(ps))
	for i, p := range ps {
		res[i] = ToProjectResponse(&p)
	}
	return res
}

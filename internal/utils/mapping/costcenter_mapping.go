package mapping

import (
	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/models"
)

// ToModelCostCenter converts a domain CostCenter to a model CostCenter
func ToModelCostCenter(d domain.CostCenter) models.CostCenter {
	return models.CostCenter{
		CostCenterID:    d.CostCenterID,
		CompanyID:       d.CompanyID,
		Code:            d.Code,
		Name:            d.Name,
		ParentID:        d.ParentID,
		Level:           d.Level,
		AllowsMovements: d.AllowsMovements,
		IsActive:        d.IsActive,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCostCenter converts a model CostCenter to a domain CostCenter
func ToDomainCostCenter(m models.CostCenter) domain.CostCenter {
	return domain.CostCenter{
		CostCenterID:    m.CostCenterID,
		CompanyID:       m.CompanyID,
		Code:            m.Code,
		Name:            m.Name,
		ParentID:        m.ParentID,
		Level:           m.Level,
		AllowsMovements: m.AllowsMovements,
		IsActive:        m.IsActive,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCostCenterSlice converts a slice of model CostCenters to domain form
func ToDomainCostCenterSlice(ms []models.CostCenter) []domain.CostCenter {
	ds := make([]domain.CostCenter, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCostCenter(m)
	}
	return ds
}

// ToModelProject converts a domain Project to a model Project
func ToModelProject(d domain.Project) models.Project {
	return models.Project{
		ProjectID:    d.ProjectID,
		CompanyID:    d.CompanyID,
		Code:         d.Code,
		Name:         d.Name,
		Status:       string(d.Status),
		CostCenterID: d.CostCenterID,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainProject converts a model Project to a domain Project
func ToDomainProject(m models.Project) domain.Project {
	return domain.Project{
		ProjectID:    m.ProjectID,
		CompanyID:    m.CompanyID,
		Code:         m.Code,
		Name:         m.Name,
		Status:       domain.ProjectStatus(m.Status),
		CostCenterID: m.CostCenterID,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainProjectSlice converts a slice of model Projects to domain form
func ToDomainProjectSlice(ms []models.Project) []domain.Project {
	ds := make([]domain.Project, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainProject(m)
	}
	return ds
}

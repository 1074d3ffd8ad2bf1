package mapping

import (
	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/models"
)

// ToModelCompany converts a domain Company to a model Company
func ToModelCompany(d domain.Company) models.Company {
	return models.Company{
		CompanyID:   d.CompanyID,
		Name:        d.Name,
		TradeName:   d.TradeName,
		RFC:         d.RFC,
		UserLimit:   d.UserLimit,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCompany converts a model Company to a domain Company
func ToDomainCompany(m models.Company) domain.Company {
	return domain.Company{
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		TradeName:   m.TradeName,
		RFC:         m.RFC,
		UserLimit:   m.UserLimit,
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCompanySlice converts a slice of model Companies to a slice of domain Companies
func ToDomainCompanySlice(ms []models.Company) []domain.Company {
	ds := make([]domain.Company, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCompany(m)
	}
	return ds
}

// ToModelUserCompany converts a domain UserCompany link to its model form
func ToModelUserCompany(d domain.UserCompany) models.UserCompany {
	return models.UserCompany{
		UserID:       d.UserID,
		CompanyID:    d.CompanyID,
		Role:         string(d.Role),
		IsDefault:    d.IsDefault,
		LastAccessAt: d.LastAccessAt,
		IsActive:     d.IsActive,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainUserCompany converts a model UserCompany link to its domain form
func ToDomainUserCompany(m models.UserCompany) domain.UserCompany {
	return domain.UserCompany{
		UserID:       m.UserID,
		CompanyID:    m.CompanyID,
		Role:         domain.UserCompanyRole(m.Role),
		IsDefault:    m.IsDefault,
		LastAccessAt: m.LastAccessAt,
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

package mapping

import (
	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/models"
)

// ToModelTransactionType converts a domain TransactionType to a model TransactionType
func ToModelTransactionType(d domain.TransactionType) models.TransactionType {
	return models.TransactionType{
		TransactionTypeID:  d.TransactionTypeID,
		CompanyID:          d.CompanyID,
		Code:               d.Code,
		Name:               d.Name,
		Description:        d.Description,
		Prefix:             d.Prefix,
		Suffix:             d.Suffix,
		NumberLength:       d.NumberLength,
		LastFolio:          d.LastFolio,
		RequiresValidation: d.RequiresValidation,
		AllowsEditing:      d.AllowsEditing,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionType converts a model TransactionType to a domain TransactionType
func ToDomainTransactionType(m models.TransactionType) domain.TransactionType {
	return domain.TransactionType{
		TransactionTypeID:  m.TransactionTypeID,
		CompanyID:          m.CompanyID,
		Code:               m.Code,
		Name:               m.Name,
		Description:        m.Description,
		Prefix:             m.Prefix,
		Suffix:             m.Suffix,
		NumberLength:       m.NumberLength,
		LastFolio:          m.LastFolio,
		RequiresValidation: m.RequiresValidation,
		AllowsEditing:      m.AllowsEditing,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionTypeSlice converts a slice of model TransactionTypes to domain form
func ToDomainTransactionTypeSlice(ms []models.TransactionType) []domain.TransactionType {
	ds := make([]domain.TransactionType, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransactionType(m)
	}
	return ds
}

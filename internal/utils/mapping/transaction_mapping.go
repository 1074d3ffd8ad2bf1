package mapping

import (
	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
// Movements are persisted separately and are not carried over.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		CompanyID:         d.CompanyID,
		Folio:             d.Folio,
		TransactionDate:   d.Date,
		Kind:              string(d.Kind),
		TransactionTypeID: d.TransactionTypeID,
		Memo:              d.Memo,
		Status:            string(d.Status),
		TotalDebit:        d.TotalDebit,
		TotalCredit:       d.TotalCredit,
		PostedAt:          d.PostedAt,
		IsActive:          d.IsActive,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:     m.TransactionID,
		CompanyID:         m.CompanyID,
		Folio:             m.Folio,
		Date:              m.TransactionDate,
		Kind:              domain.TransactionKind(m.Kind),
		TransactionTypeID: m.TransactionTypeID,
		Memo:              m.Memo,
		Status:            domain.TransactionStatus(m.Status),
		TotalDebit:        m.TotalDebit,
		TotalCredit:       m.TotalCredit,
		PostedAt:          m.PostedAt,
		IsActive:          m.IsActive,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToModelMovement converts a domain Movement to a model Movement
func ToModelMovement(d domain.Movement) models.Movement {
	return models.Movement{
		MovementID:    d.MovementID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Memo:          d.Memo,
		Debit:         d.Debit,
		Credit:        d.Credit,
		CostCenterID:  d.CostCenterID,
		ProjectID:     d.ProjectID,
		IsActive:      d.IsActive,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainMovement converts a model Movement to a domain Movement
func ToDomainMovement(m models.Movement) domain.Movement {
	return domain.Movement{
		MovementID:    m.MovementID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Memo:          m.Memo,
		Debit:         m.Debit,
		Credit:        m.Credit,
		CostCenterID:  m.CostCenterID,
		ProjectID:     m.ProjectID,
		IsActive:      m.IsActive,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainMovementSlice converts a slice of model Movements to a slice of domain Movements
func ToDomainMovementSlice(ms []models.Movement) []domain.Movement {
	ds := make([]domain.Movement, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainMovement(m)
	}
	return ds
}

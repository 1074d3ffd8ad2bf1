package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// CreateMovementRequest defines one debit or credit line within a create request.
// Exactly one of debit/credit must be positive; the other must be zero or absent.
type CreateMovementRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Memo         string          `json:"memo"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID *string         `json:"costCenterID"`
	ProjectID    *string         `json:"projectID"`
}

// CreateTransactionRequest defines the data needed to create a draft transaction.
type CreateTransactionRequest struct {
	Date              time.Time               `json:"date" binding:"required"`
	Kind              domain.TransactionKind  `json:"kind" binding:"required,oneof=INCOME DISBURSEMENT GENERAL ADJUSTMENT"`
	TransactionTypeID *string                 `json:"transactionTypeID"`
	Memo              string                  `json:"memo"`
	Movements         []CreateMovementRequest `json:"movements" binding:"dive"`
}

// UpdateTransactionRequest defines header fields editable while the
// transaction is still a draft.
type UpdateTransactionRequest struct {
	Date *time.Time `json:"date"`
	Memo *string    `json:"memo"`
}

// MovementResponse defines the data returned for a movement.
type MovementResponse struct {
	MovementID   string          `json:"movementID"`
	AccountID    string          `json:"accountID"`
	Memo         string          `json:"memo,omitempty"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID *string         `json:"costCenterID,omitempty"`
	ProjectID    *string         `json:"projectID,omitempty"`
	IsActive     bool            `json:"isActive"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID     string                   `json:"transactionID"`
	CompanyID         string                   `json:"companyID"`
	Folio             string                   `json:"folio"`
	Date              time.Time                `json:"date"`
	Kind              domain.TransactionKind   `json:"kind"`
	TransactionTypeID *string                  `json:"transactionTypeID,omitempty"`
	Memo              string                   `json:"memo"`
	Status            domain.TransactionStatus `json:"status"`
	TotalDebit        decimal.Decimal          `json:"totalDebit"`
	TotalCredit       decimal.Decimal          `json:"totalCredit"`
	PostedAt          *time.Time               `json:"postedAt,omitempty"`
	Movements         []MovementResponse       `json:"movements,omitempty"`
	CreatedAt         time.Time                `json:"createdAt"`
	CreatedBy         string                   `json:"createdBy"`
}

// ToMovementResponse converts a domain.Movement to MovementResponse DTO.
func ToMovementResponse(m *domain.Movement) MovementResponse {
	return MovementResponse{
		MovementID:   m.MovementID,
		AccountID:    m.AccountID,
		Memo:         m.Memo,
		Debit:        m.Debit,
		Credit:       m.Credit,
		CostCenterID: m.CostCenterID,
		ProjectID:    m.ProjectID,
		IsActive:     m.IsActive,
	}
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	movements := make([]MovementResponse, len(t.Movements))
	for i, m := range t.Movements {
		movements[i] = ToMovementResponse(&m)
	}
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		CompanyID:         t.CompanyID,
		Folio:             t.Folio,
		Date:              t.Date,
		Kind:              t.Kind,
		TransactionTypeID: t.TransactionTypeID,
		Memo:              t.Memo,
		Status:            t.Status,
		TotalDebit:        t.TotalDebit,
		TotalCredit:       t.TotalCredit,
		PostedAt:          t.PostedAt,
		Movements:         movements,
		CreatedAt:         t.CreatedAt,
		CreatedBy:         t.CreatedBy,
	}
}

// AddMovementRequest defines the data for appending a movement to a draft.
type AddMovementRequest struct {
	AccountID    string          `json:"accountID" binding:"required"`
	Memo         string          `json:"memo"`
	Debit        decimal.Decimal `json:"debit"`
	Credit       decimal.Decimal `json:"credit"`
	CostCenterID *string         `json:"costCenterID"`
	ProjectID    *string         `json:"projectID"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int     `form:"limit,default=20"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
	Kind      *string `form:"kind"`
	From      *string `form:"from"` // YYYY-MM-DD
	To        *string `form:"to"`   // YYYY-MM-DD
}

// ListTransactionsResponse wraps a page of transactions with the cursor for
// the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse converts a page of domain.Transaction to DTO.
func ToListTransactionsResponse(ts []domain.Transaction, nextToken *string) ListTransactionsResponse {
	list := make([]TransactionResponse, len(ts))
	for i, t := range ts {
		list[i] = ToTransactionResponse(&t)
	}
	return ListTransactionsResponse{Transactions: list, NextToken: nextToken}
}

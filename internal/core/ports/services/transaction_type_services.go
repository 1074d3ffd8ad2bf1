package services

import (
	"context"

	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/dto"
)

// TransactionTypeReaderSvc defines read operations for folio series data
type TransactionTypeReaderSvc interface {
	// GetTransactionTypeByID retrieves a folio series by its ID.
	GetTransactionTypeByID(ctx context.Context, companyID string, transactionTypeID string, requestingUserID string) (*domain.TransactionType, error)

	// ListTransactionTypes retrieves a company's folio series.
	ListTransactionTypes(ctx context.Context, companyID string, requestingUserID string) ([]domain.TransactionType, error)
}

// TransactionTypeWriterSvc defines write operations for folio series data
type TransactionTypeWriterSvc interface {
	// CreateTransactionType persists a new folio series.
	CreateTransactionType(ctx context.Context, companyID string, req dto.CreateTransactionTypeRequest, creatorUserID string) (*domain.TransactionType, error)

	// UpdateTransactionType updates a folio series. The prefix, suffix and
	// number length are frozen once the series has issued folios.
	UpdateTransactionType(ctx context.Context, companyID string, transactionTypeID string, req dto.UpdateTransactionTypeRequest, requestingUserID string) (*domain.TransactionType, error)
}

// TransactionTypeSvcFacade combines all folio-series service interfaces
type TransactionTypeSvcFacade interface {
	TransactionTypeReaderSvc
	TransactionTypeWriterSvc
}

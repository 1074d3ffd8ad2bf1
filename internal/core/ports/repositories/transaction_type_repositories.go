package repositories

import (
	"context"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// TransactionTypeReader defines read operations for folio series data
type TransactionTypeReader interface {
	// FindTransactionTypeByID retrieves a folio series by its unique identifier.
	FindTransactionTypeByID(ctx context.Context, transactionTypeID string) (*domain.TransactionType, error)

	// FindTransactionTypeByCode retrieves a folio series by code within a company.
	FindTransactionTypeByCode(ctx context.Context, companyID string, code string) (*domain.TransactionType, error)

	// ListTransactionTypes retrieves the folio series of a company.
	ListTransactionTypes(ctx context.Context, companyID string) ([]domain.TransactionType, error)
}

// TransactionTypeWriter defines write operations for folio series data
type TransactionTypeWriter interface {
	// SaveTransactionType persists a new folio series.
	SaveTransactionType(ctx context.Context, tt domain.TransactionType) error

	// UpdateTransactionType updates an existing folio series.
	UpdateTransactionType(ctx context.Context, tt domain.TransactionType) error

	// NextFolio atomically advances a folio series under a row lock and returns
	// the rendered folio. When transactionTypeID is nil the built-in series for
	// the kind is used, creating it on first use.
	NextFolio(ctx context.Context, companyID string, transactionTypeID *string, kind domain.TransactionKind, userID string) (string, error)
}

// TransactionTypeRepositoryFacade combines all folio-series repository interfaces
type TransactionTypeRepositoryFacade interface {
	TransactionTypeReader
	TransactionTypeWriter
}

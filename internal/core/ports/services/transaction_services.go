package services

import (
	"context"

	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a transaction with its movements.
	GetTransactionByID(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// ListTransactions retrieves a paginated list of transactions in a company.
	ListTransactions(ctx context.Context, companyID string, requestingUserID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionWriterSvc defines write operations for transaction data
type TransactionWriterSvc interface {
	// CreateTransaction persists a new draft with its movements, assigning the
	// next folio of the applicable series.
	CreateTransaction(ctx context.Context, companyID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// UpdateTransaction updates draft header fields.
	UpdateTransaction(ctx context.Context, companyID string, transactionID string, req dto.UpdateTransactionRequest, requestingUserID string) (*domain.Transaction, error)

	// AddMovement appends a movement to a draft and recomputes totals.
	AddMovement(ctx context.Context, companyID string, transactionID string, req dto.AddMovementRequest, requestingUserID string) (*domain.Transaction, error)

	// RemoveMovement soft-deletes a movement from a draft and recomputes totals.
	RemoveMovement(ctx context.Context, companyID string, transactionID string, movementID string, requestingUserID string) (*domain.Transaction, error)
}

// TransactionLifecycleSvc defines the state machine transitions
type TransactionLifecycleSvc interface {
	// ValidateTransaction advances DRAFT -> VALIDATED after the balance check.
	ValidateTransaction(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// PostTransaction advances VALIDATED -> POSTED.
	PostTransaction(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error)

	// CancelTransaction advances POSTED -> CANCELLED.
	CancelTransaction(ctx context.Context, companyID string, transactionID string, requestingUserID string) (*domain.Transaction, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
	TransactionLifecycleSvc
}

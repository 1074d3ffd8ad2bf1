package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindMovementsByTransactionID retrieves all movements of a transaction,
	// active and inactive, in insertion order.
	FindMovementsByTransactionID(ctx context.Context, transactionID string) ([]domain.Movement, error)

	// ListTransactionsByCompany retrieves a paginated list of transactions for a
	// company using token-based pagination, newest first. Optional status and
	// date-range filters narrow the listing. It returns the transactions, a
	// token for the next page, and an error.
	ListTransactionsByCompany(ctx context.Context, companyID string, filter domain.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction header together with its
	// initial movements in a single database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction, movements []domain.Movement) error

	// UpdateTransaction updates editable header fields. The write is guarded
	// on the stored status still being DRAFT; a concurrent lifecycle change
	// surfaces as domain.ErrInvalidStateTransition.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// SaveMovement appends a movement and rewrites the header totals in the
	// same database transaction. The totals write is guarded on the stored
	// status still being DRAFT.
	SaveMovement(ctx context.Context, movement domain.Movement, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error

	// DeactivateMovement soft-deletes a movement and rewrites the header totals
	// in the same database transaction. The totals write is guarded on the
	// stored status still being DRAFT.
	DeactivateMovement(ctx context.Context, movementID string, transactionID string, totalDebit, totalCredit decimal.Decimal, userID string, now time.Time) error

	// UpdateTransactionStatus advances the lifecycle state, stamping PostedAt
	// when provided. The write is a compare-and-swap on the stored status:
	// it only lands while the row still holds expected, so an interleaved
	// transition cannot be overwritten. A lost race surfaces as
	// domain.ErrInvalidStateTransition.
	UpdateTransactionStatus(ctx context.Context, transactionID string, expected, next domain.TransactionStatus, postedAt *time.Time, userID string, now time.Time) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

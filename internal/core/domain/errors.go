package domain

import "errors"

// Ledger rule violations. These are raised synchronously by the state machine
// and movement validation; a failed transition never mutates state.
var (
	// ErrUnbalancedTransaction indicates debit and credit totals differ at validation time.
	ErrUnbalancedTransaction = errors.New("transaction debits and credits do not balance")

	// ErrInsufficientMovements indicates fewer than two movements at validation time.
	ErrInsufficientMovements = errors.New("transaction must have at least two movements")

	// ErrInvalidStateTransition indicates an out-of-order lifecycle change attempt.
	ErrInvalidStateTransition = errors.New("invalid transaction state transition")

	// ErrInvalidMovement indicates a movement with both or neither of debit/credit set,
	// or one targeting an account that cannot receive movements.
	ErrInvalidMovement = errors.New("invalid movement")

	// ErrCrossCompanyReference indicates a referenced entity belongs to a different company.
	ErrCrossCompanyReference = errors.New("referenced entity belongs to a different company")

	// ErrAccountHierarchy indicates an account level inconsistent with its parent,
	// or a parent link that would close a cycle.
	ErrAccountHierarchy = errors.New("account hierarchy is inconsistent")

	// ErrIntegrityViolation indicates a report-time invariant that must hold by
	// construction was found false. It signals upstream data corruption and
	// aborts the affected report instead of emitting wrong figures.
	ErrIntegrityViolation = errors.New("ledger integrity violation")
)

package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a transaction. Transitions are
// strictly linear: DRAFT -> VALIDATED -> POSTED -> CANCELLED, no skipping and
// no back-transitions.
type TransactionStatus string

const (
	Draft     TransactionStatus = "DRAFT"
	Validated TransactionStatus = "VALIDATED"
	Posted    TransactionStatus = "POSTED"
	Cancelled TransactionStatus = "CANCELLED"
)

// TransactionKind is the built-in classification of a transaction.
type TransactionKind string

const (
	IncomeEntry       TransactionKind = "INCOME"
	DisbursementEntry TransactionKind = "DISBURSEMENT"
	GeneralEntry      TransactionKind = "GENERAL"
	AdjustmentEntry   TransactionKind = "ADJUSTMENT"
)

// Transaction is a double-entry ledger header owning an ordered set of
// movements. TotalDebit/TotalCredit are derived state: they are only ever
// written by RecomputeTotals after movement membership changes.
type Transaction struct {
	TransactionID     string            `json:"transactionID"`
	CompanyID         string            `json:"companyID"`
	Folio             string            `json:"folio"` // unique per company, sequential per type
	Date              time.Time         `json:"date"`
	Kind              TransactionKind   `json:"kind"`
	TransactionTypeID *string           `json:"transactionTypeID,omitempty"` // optional custom folio series
	Memo              string            `json:"memo"`
	Status            TransactionStatus `json:"status"`
	TotalDebit        decimal.Decimal   `json:"totalDebit"`
	TotalCredit       decimal.Decimal   `json:"totalCredit"`
	PostedAt          *time.Time        `json:"postedAt,omitempty"`
	IsActive          bool              `json:"isActive"`
	Movements         []Movement        `json:"movements,omitempty"`
	AuditFields
}

// TransactionFilter narrows transaction listings. Nil fields are ignored.
type TransactionFilter struct {
	Status *TransactionStatus
	Kind   *TransactionKind
	From   *time.Time
	To     *time.Time
}

// ActiveMovements returns the movements that still belong to the transaction.
func (t *Transaction) ActiveMovements() []Movement {
	active := make([]Movement, 0, len(t.Movements))
	for _, m := range t.Movements {
		if m.IsActive {
			active = append(active, m)
		}
	}
	return active
}

// RecomputeTotals recalculates TotalDebit/TotalCredit from the active
// movements. It is pure over the movement set and idempotent.
func (t *Transaction) RecomputeTotals() {
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for _, m := range t.Movements {
		if !m.IsActive {
			continue
		}
		totalDebit = totalDebit.Add(m.Debit)
		totalCredit = totalCredit.Add(m.Credit)
	}
	t.TotalDebit = totalDebit
	t.TotalCredit = totalCredit
}

// IsBalanced reports exact decimal equality of the totals. No tolerance: the
// validation invariant is strict (the tolerance-based reconciliation helper in
// utils/accounting serves legacy-data review only and must not be used here).
func (t *Transaction) IsBalanced() bool {
	return t.TotalDebit.Equal(t.TotalCredit)
}

// Validate advances DRAFT -> VALIDATED. It recomputes totals, requires at
// least two movements and an exactly balanced entry. On failure the
// transaction is left unchanged apart from the recomputed totals.
func (t *Transaction) Validate() error {
	if t.Status != Draft {
		return fmt.Errorf("%w: cannot validate a %s transaction", ErrInvalidStateTransition, t.Status)
	}
	t.RecomputeTotals()
	if len(t.ActiveMovements()) < 2 {
		return ErrInsufficientMovements
	}
	if !t.IsBalanced() {
		return fmt.Errorf("%w: debit total %s, credit total %s",
			ErrUnbalancedTransaction, t.TotalDebit.String(), t.TotalCredit.String())
	}
	t.Status = Validated
	return nil
}

// Post advances VALIDATED -> POSTED and stamps PostedAt. From this point the
// transaction contributes to every financial report and its header is frozen.
func (t *Transaction) Post(now time.Time) error {
	if t.Status != Validated {
		return fmt.Errorf("%w: cannot post a %s transaction", ErrInvalidStateTransition, t.Status)
	}
	t.Status = Posted
	t.PostedAt = &now
	return nil
}

// Cancel advances POSTED -> CANCELLED. Cancelled transactions drop out of
// report aggregation but are never deleted.
func (t *Transaction) Cancel() error {
	if t.Status != Posted {
		return fmt.Errorf("%w: cannot cancel a %s transaction", ErrInvalidStateTransition, t.Status)
	}
	t.Status = Cancelled
	return nil
}

// Editable reports whether header fields and movements may still change.
func (t *Transaction) Editable() bool {
	return t.Status == Draft
}

package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// MovementSide indicates which column of a movement carries its amount.
type MovementSide string

const (
	DebitSide  MovementSide = "DEBIT"
	CreditSide MovementSide = "CREDIT"
)

// Movement is a single debit or credit line owned by a transaction. Exactly one
// of Debit/Credit is strictly positive; the other is exactly zero.
type Movement struct {
	MovementID    string          `json:"movementID"`
	TransactionID string          `json:"transactionID"`
	AccountID     string          `json:"accountID"`
	Memo          string          `json:"memo,omitempty"` // falls back to the transaction memo when empty
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	CostCenterID  *string         `json:"costCenterID,omitempty"`
	ProjectID     *string         `json:"projectID,omitempty"`
	IsActive      bool            `json:"isActive"`
	AuditFields
}

// Validate enforces the debit/credit exclusivity rule.
func (m Movement) Validate() error {
	if m.Debit.IsNegative() || m.Credit.IsNegative() {
		return fmt.Errorf("%w: amounts must not be negative", ErrInvalidMovement)
	}
	if m.Debit.IsPositive() && m.Credit.IsPositive() {
		return fmt.Errorf("%w: a movement cannot carry both debit and credit", ErrInvalidMovement)
	}
	if m.Debit.IsZero() && m.Credit.IsZero() {
		return fmt.Errorf("%w: a movement must carry a debit or a credit amount", ErrInvalidMovement)
	}
	return nil
}

// Side returns the column carrying the amount. Only meaningful for valid movements.
func (m Movement) Side() MovementSide {
	if m.Debit.IsPositive() {
		return DebitSide
	}
	return CreditSide
}

// Amount returns the movement's magnitude regardless of side.
func (m Movement) Amount() decimal.Decimal {
	if m.Debit.IsPositive() {
		return m.Debit
	}
	return m.Credit
}

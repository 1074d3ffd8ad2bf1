package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a journal entry header. Totals are denormalized and
// kept in sync with the active movements by the repository.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	CompanyID         string          `db:"company_id"`
	Folio             string          `db:"folio"`
	TransactionDate   time.Time       `db:"transaction_date"`
	Kind              string          `db:"kind"`
	TransactionTypeID *string         `db:"transaction_type_id"`
	Memo              string          `db:"memo"`
	Status            string          `db:"status"`
	TotalDebit        decimal.Decimal `db:"total_debit"`
	TotalCredit       decimal.Decimal `db:"total_credit"`
	PostedAt          *time.Time      `db:"posted_at"`
	IsActive          bool            `db:"is_active"`
	AuditFields
}

// Movement represents a single debit or credit line within a transaction.
type Movement struct {
	MovementID    string          `db:"movement_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Memo          string          `db:"memo"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	CostCenterID  *string         `db:"cost_center_id"`
	ProjectID     *string         `db:"project_id"`
	IsActive      bool            `db:"is_active"`
	AuditFields
}

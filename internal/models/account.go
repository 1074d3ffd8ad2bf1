package models

// Account represents a chart-of-accounts row.
// ParentAccountID is a nullable self-referencing foreign key.
type Account struct {
	AccountID       string  `db:"account_id"`
	CompanyID       string  `db:"company_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	ParentAccountID *string `db:"parent_account_id"`
	Level           int     `db:"level"`
	AccountType     string  `db:"account_type"`
	Nature          string  `db:"nature"`
	Postable        bool    `db:"postable"`
	IsActive        bool    `db:"is_active"`
	AuditFields
}

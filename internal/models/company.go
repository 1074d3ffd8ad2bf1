package models

import "time"

// Company represents a tenant row. All ledger data hangs off a company.
type Company struct {
	CompanyID string `db:"company_id"`
	Name      string `db:"name"`
	TradeName string `db:"trade_name"`
	RFC       string `db:"rfc"`
	UserLimit int    `db:"user_limit"`
	IsActive  bool   `db:"is_active"`
	AuditFields
}

// UserCompany links a user to a company with a role.
type UserCompany struct {
	UserID       string     `db:"user_id"`
	CompanyID    string     `db:"company_id"`
	Role         string     `db:"role"`
	IsDefault    bool       `db:"is_default"`
	LastAccessAt *time.Time `db:"last_access_at"`
	IsActive     bool       `db:"is_active"`
	AuditFields
}

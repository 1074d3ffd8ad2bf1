package models

// CostCenter represents an analytical dimension for movements.
type CostCenter struct {
	CostCenterID    string  `db:"cost_center_id"`
	CompanyID       string  `db:"company_id"`
	Code            string  `db:"code"`
	Name            string  `db:"name"`
	ParentID        *string `db:"parent_id"`
	Level           int     `db:"level"`
	AllowsMovements bool    `db:"allows_movements"`
	IsActive        bool    `db:"is_active"`
	AuditFields
}

// Project represents a trackable initiative that movements can be tagged with.
type Project struct {
	ProjectID    string  `db:"project_id"`
	CompanyID    string  `db:"company_id"`
	Code         string  `db:"code"`
	Name         string  `db:"name"`
	Status       string  `db:"status"`
	CostCenterID *string `db:"cost_center_id"`
	IsActive     bool    `db:"is_active"`
	AuditFields
}

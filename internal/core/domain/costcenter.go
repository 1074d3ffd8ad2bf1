package domain

// CostCenter is an optional analytic dimension for movements, organized as a
// hierarchy like the chart of accounts.
type CostCenter struct {
	CostCenterID    string  `json:"costCenterID"`
	CompanyID       string  `json:"companyID"`
	Code            string  `json:"code"` // unique per company
	Name            string  `json:"name"`
	ParentID        *string `json:"parentID,omitempty"`
	Level           int     `json:"level"`
	AllowsMovements bool    `json:"allowsMovements"` // aggregation-only nodes reject direct movements
	IsActive        bool    `json:"isActive"`
	AuditFields
}

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPlanning  ProjectStatus = "PLANNING"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectSuspended ProjectStatus = "SUSPENDED"
	ProjectClosed    ProjectStatus = "CLOSED"
)

// Project is an optional analytic dimension for movements.
type Project struct {
	ProjectID    string        `json:"projectID"`
	CompanyID    string        `json:"companyID"`
	Code         string        `json:"code"` // unique per company
	Name         string        `json:"name"`
	Status       ProjectStatus `json:"status"`
	CostCenterID *string       `json:"costCenterID,omitempty"`
	IsActive     bool          `json:"isActive"`
	AuditFields
}

// AcceptsMovements reports whether movements may be assigned to the project.
// Only active or in-planning projects do.
func (p Project) AcceptsMovements() bool {
	return p.Status == ProjectActive || p.Status == ProjectPlanning
}

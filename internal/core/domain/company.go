package domain

import "time"

// Company is the tenant boundary. Every ledger entity is scoped to exactly one
// company; the RFC (Mexican tax ID) is validated at the management edge and
// treated as opaque everywhere else.
type Company struct {
	CompanyID string `json:"companyID"`
	Name      string `json:"name"`      // legal name
	TradeName string `json:"tradeName,omitempty"`
	RFC       string `json:"rfc"`
	UserLimit int    `json:"userLimit"`
	IsActive  bool   `json:"isActive"`
	AuditFields
}

// UserCompanyRole is a user's role within a company.
type UserCompanyRole string

const (
	RoleOwner      UserCompanyRole = "OWNER"
	RoleAdmin      UserCompanyRole = "ADMIN"
	RoleAccountant UserCompanyRole = "ACCOUNTANT"
	RoleAssistant  UserCompanyRole = "ASSISTANT"
	RoleReadOnly   UserCompanyRole = "READONLY"
)

// roleRank orders roles by privilege for HasPrivilege checks.
var roleRank = map[UserCompanyRole]int{
	RoleReadOnly:   0,
	RoleAssistant:  1,
	RoleAccountant: 2,
	RoleAdmin:      3,
	RoleOwner:      4,
}

// HasPrivilege reports whether the role grants at least the required role's access.
func (r UserCompanyRole) HasPrivilege(required UserCompanyRole) bool {
	return roleRank[r] >= roleRank[required]
}

// UserCompany links an opaque user ID to a company with a role.
type UserCompany struct {
	UserID       string          `json:"userID"`
	CompanyID    string          `json:"companyID"`
	Role         UserCompanyRole `json:"role"`
	IsDefault    bool            `json:"isDefault"`
	LastAccessAt *time.Time      `json:"lastAccessAt,omitempty"`
	IsActive     bool            `json:"isActive"`
	AuditFields
}

package dto

import (
	"time"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// --- Company DTOs ---

// CreateCompanyRequest defines data for creating a new company.
type CreateCompanyRequest struct {
	Name      string `json:"name" binding:"required"`
	TradeName string `json:"tradeName"`
	RFC       string `json:"rfc" binding:"required,rfc"`
	UserLimit int    `json:"userLimit"`
}

// UpdateCompanyRequest defines the data allowed for updating a company.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCompanyRequest struct {
	Name      *string `json:"name"`
	TradeName *string `json:"tradeName"`
	RFC       *string `json:"rfc" binding:"omitempty,rfc"`
	UserLimit *int    `json:"userLimit"`
}

// CompanyResponse defines data returned for a company.
type CompanyResponse struct {
	CompanyID     string    `json:"companyID"`
	Name          string    `json:"name"`
	TradeName     string    `json:"tradeName,omitempty"`
	RFC           string    `json:"rfc"`
	UserLimit     int       `json:"userLimit"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// ToCompanyResponse converts domain.Company to DTO.
func ToCompanyResponse(c *domain.Company) CompanyResponse {
	return CompanyResponse{
		CompanyID:     c.CompanyID,
		Name:          c.Name,
		TradeName:     c.TradeName,
		RFC:           c.RFC,
		UserLimit:     c.UserLimit,
		IsActive:      c.IsActive,
		CreatedAt:     c.CreatedAt,
		CreatedBy:     c.CreatedBy,
		LastUpdatedAt: c.LastUpdatedAt,
		LastUpdatedBy: c.LastUpdatedBy,
	}
}

// ListCompaniesResponse wraps a list of companies.
type ListCompaniesResponse struct {
	Companies []CompanyResponse `json:"companies"`
}

// ToListCompaniesResponse converts a slice of domain.Company to DTO.
func ToListCompaniesResponse(cs []domain.Company) ListCompaniesResponse {
	list := make([]CompanyResponse, len(cs))
	for i, c := range cs {
		list[i] = ToCompanyResponse(&c)
	}
	return ListCompaniesResponse{Companies: list}
}

// --- Membership DTOs ---

// AddUserToCompanyRequest defines data for adding a user to a company.
type AddUserToCompanyRequest struct {
	UserID string                 `json:"userID" binding:"required"`
	Role   domain.UserCompanyRole `json:"role" binding:"required,oneof=OWNER ADMIN ACCOUNTANT ASSISTANT READONLY"`
}

// UpdateUserCompanyRoleRequest defines data for changing a member's role.
type UpdateUserCompanyRoleRequest struct {
	Role domain.UserCompanyRole `json:"role" binding:"required,oneof=OWNER ADMIN ACCOUNTANT ASSISTANT READONLY"`
}

// UserCompanyResponse defines data returned about a user's membership.
type UserCompanyResponse struct {
	UserID    string                 `json:"userID"`
	CompanyID string                 `json:"companyID"`
	Role      domain.UserCompanyRole `json:"role"`
	IsDefault bool                   `json:"isDefault"`
	JoinedAt  time.Time              `json:"joinedAt"`
}

// ToUserCompanyResponse converts domain.UserCompany to DTO.
func ToUserCompanyResponse(uc *domain.UserCompany) UserCompanyResponse {
	return UserCompanyResponse{
		UserID:    uc.UserID,
		CompanyID: uc.CompanyID,
		Role:      uc.Role,
		IsDefault: uc.IsDefault,
		JoinedAt:  uc.CreatedAt,
	}
}

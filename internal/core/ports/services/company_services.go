package services

import (
	"context"

	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/dto"
)

// CompanyReaderSvc defines read operations for company data
type CompanyReaderSvc interface {
	// GetCompanyByID retrieves a specific company by its ID.
	GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error)

	// ListCompanies retrieves the companies the requesting user belongs to.
	ListCompanies(ctx context.Context, requestingUserID string) ([]domain.Company, error)

	// AuthorizeUserForCompany checks that the user holds at least the required
	// role in the company and returns the membership.
	AuthorizeUserForCompany(ctx context.Context, userID string, companyID string, required domain.UserCompanyRole) (*domain.UserCompany, error)
}

// CompanyWriterSvc defines write operations for company data
type CompanyWriterSvc interface {
	// CreateCompany persists a new company with the creator as OWNER.
	CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error)

	// UpdateCompany updates company details.
	UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error)

	// DeactivateCompany marks a company as inactive.
	DeactivateCompany(ctx context.Context, companyID string, requestingUserID string) error

	// AddUserToCompany adds a member with a role, enforcing the user limit.
	AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, requestingUserID string) (*domain.UserCompany, error)

	// UpdateUserRole changes a member's role.
	UpdateUserRole(ctx context.Context, companyID string, userID string, req dto.UpdateUserCompanyRoleRequest, requestingUserID string) error

	// RemoveUserFromCompany removes a member. The last owner cannot be removed.
	RemoveUserFromCompany(ctx context.Context, companyID string, userID string, requestingUserID string) error
}

// CompanyAuthorizerSvc is the narrow interface other services use to check
// membership and role before acting within a company.
type CompanyAuthorizerSvc interface {
	AuthorizeUserForCompany(ctx context.Context, userID string, companyID string, required domain.UserCompanyRole) (*domain.UserCompany, error)
}

// CompanySvcFacade combines all company-related service interfaces
type CompanySvcFacade interface {
	CompanyReaderSvc
	CompanyWriterSvc
}

package repositories

import (
	"context"
	"time"

	"github.com/zivabsuite/contable/internal/core/domain"
)

// CompanyReader defines read operations for company data
type CompanyReader interface {
	// FindCompanyByID retrieves a specific company by its unique identifier.
	FindCompanyByID(ctx context.Context, companyID string) (*domain.Company, error)

	// FindCompanyByRFC retrieves a company by its tax id.
	FindCompanyByRFC(ctx context.Context, rfc string) (*domain.Company, error)

	// ListCompaniesByUser retrieves the companies a user belongs to.
	ListCompaniesByUser(ctx context.Context, userID string) ([]domain.Company, error)

	// FindUserCompanyRole retrieves the membership link of a user in a company.
	FindUserCompanyRole(ctx context.Context, userID string, companyID string) (*domain.UserCompany, error)

	// CountActiveUsers counts the active memberships of a company.
	CountActiveUsers(ctx context.Context, companyID string) (int, error)

	// CountActiveOwners counts the active OWNER memberships of a company.
	CountActiveOwners(ctx context.Context, companyID string) (int, error)
}

// CompanyWriter defines write operations for company data
type CompanyWriter interface {
	// SaveCompany persists a new company and its owner membership atomically.
	SaveCompany(ctx context.Context, company domain.Company, owner domain.UserCompany) error

	// UpdateCompany updates an existing company's details.
	UpdateCompany(ctx context.Context, company domain.Company) error

	// SaveUserCompany persists a membership link.
	SaveUserCompany(ctx context.Context, link domain.UserCompany) error

	// UpdateUserCompanyRole changes a member's role.
	UpdateUserCompanyRole(ctx context.Context, userID string, companyID string, role domain.UserCompanyRole, updatedBy string, now time.Time) error

	// DeactivateUserCompany removes a member from a company.
	DeactivateUserCompany(ctx context.Context, userID string, companyID string, updatedBy string, now time.Time) error

	// DeactivateCompany marks a company as inactive.
	DeactivateCompany(ctx context.Context, companyID string, userID string, now time.Time) error
}

// CompanyRepositoryFacade combines all company-related repository interfaces
type CompanyRepositoryFacade interface {
	CompanyReader
	CompanyWriter
}

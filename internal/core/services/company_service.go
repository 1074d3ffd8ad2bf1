package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/internal/dto"
	"github.com/zivabsuite/contable/internal/utils/validation"
)

var (
	ErrInvalidRFC       = errors.New("rfc is not a valid tax id")
	ErrUserLimitReached = errors.New("company user limit reached")
	ErrLastOwner        = errors.New("the last owner of a company cannot be removed")
)

const defaultUserLimit = 5

// companyService provides company management and membership authorization.
type companyService struct {
	BaseService
	companyRepo portsrepo.CompanyRepositoryFacade
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companyRepo portsrepo.CompanyRepositoryFacade) portssvc.CompanySvcFacade {
	return &companyService{companyRepo: companyRepo}
}

var _ portssvc.CompanySvcFacade = (*companyService)(nil)

// AuthorizeUserForCompany checks that the user holds at least the required role.
// It returns apperrors.ErrNotFound when the user has no membership at all, so
// company existence is not leaked to outsiders, and apperrors.ErrForbidden
// when the membership exists but the role is too weak.
func (s *companyService) AuthorizeUserForCompany(ctx context.Context, userID string, companyID string, required domain.UserCompanyRole) (*domain.UserCompany, error) {
	link, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to check company membership: %w", err)
	}
	if !link.IsActive {
		return nil, apperrors.ErrNotFound
	}
	if !link.Role.HasPrivilege(required) {
		return nil, apperrors.ErrForbidden
	}
	return link, nil
}

// CreateCompany persists a new company with the creator as OWNER.
func (s *companyService) CreateCompany(ctx context.Context, req dto.CreateCompanyRequest, creatorUserID string) (*domain.Company, error) {
	logger := s.GetLogger(ctx)

	rfc := validation.NormalizeRFC(req.RFC)
	if !validation.IsValidRFC(rfc) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidRFC, req.RFC)
	}

	if existing, err := s.companyRepo.FindCompanyByRFC(ctx, rfc); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: a company with rfc %s already exists", apperrors.ErrDuplicate, rfc)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check rfc uniqueness: %w", err)
	}

	userLimit := req.UserLimit
	if userLimit <= 0 {
		userLimit = defaultUserLimit
	}

	now := time.Now()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	company := domain.Company{
		CompanyID:   uuid.NewString(),
		Name:        req.Name,
		TradeName:   req.TradeName,
		RFC:         rfc,
		UserLimit:   userLimit,
		IsActive:    true,
		AuditFields: audit,
	}
	owner := domain.UserCompany{
		UserID:      creatorUserID,
		CompanyID:   company.CompanyID,
		Role:        domain.RoleOwner,
		IsDefault:   true,
		IsActive:    true,
		AuditFields: audit,
	}

	if err := s.companyRepo.SaveCompany(ctx, company, owner); err != nil {
		s.LogError(ctx, err, "Failed to save company", slog.String("rfc", rfc))
		return nil, fmt.Errorf("failed to save company: %w", err)
	}

	logger.Info("Company created", slog.String("company_id", company.CompanyID), slog.String("rfc", rfc))
	return &company, nil
}

// GetCompanyByID retrieves a company the requesting user belongs to.
func (s *companyService) GetCompanyByID(ctx context.Context, companyID string, requestingUserID string) (*domain.Company, error) {
	if _, err := s.AuthorizeUserForCompany(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return company, nil
}

// ListCompanies retrieves the companies the requesting user belongs to.
func (s *companyService) ListCompanies(ctx context.Context, requestingUserID string) ([]domain.Company, error) {
	companies, err := s.companyRepo.ListCompaniesByUser(ctx, requestingUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return companies, nil
}

// UpdateCompany updates company details. Requires ADMIN.
func (s *companyService) UpdateCompany(ctx context.Context, companyID string, req dto.UpdateCompanyRequest, requestingUserID string) (*domain.Company, error) {
	if _, err := s.AuthorizeUserForCompany(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		company.Name = *req.Name
	}
	if req.TradeName != nil {
		company.TradeName = *req.TradeName
	}
	if req.RFC != nil {
		rfc := validation.NormalizeRFC(*req.RFC)
		if !validation.IsValidRFC(rfc) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidRFC, *req.RFC)
		}
		company.RFC = rfc
	}
	if req.UserLimit != nil {
		if *req.UserLimit < 1 {
			return nil, fmt.Errorf("%w: user limit must be at least 1", apperrors.ErrValidation)
		}
		company.UserLimit = *req.UserLimit
	}

	company.LastUpdatedAt = time.Now()
	company.LastUpdatedBy = requestingUserID

	if err := s.companyRepo.UpdateCompany(ctx, *company); err != nil {
		s.LogError(ctx, err, "Failed to update company", slog.String("company_id", companyID))
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return company, nil
}

// DeactivateCompany marks a company as inactive. Requires OWNER.
func (s *companyService) DeactivateCompany(ctx context.Context, companyID string, requestingUserID string) error {
	if _, err := s.AuthorizeUserForCompany(ctx, requestingUserID, companyID, domain.RoleOwner); err != nil {
		return err
	}
	if err := s.companyRepo.DeactivateCompany(ctx, companyID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate company", slog.String("company_id", companyID))
		return fmt.Errorf("failed to deactivate company: %w", err)
	}
	s.LogInfo(ctx, "Company deactivated", slog.String("company_id", companyID))
	return nil
}

// AddUserToCompany adds a member with a role, enforcing the user limit. Requires ADMIN.
func (s *companyService) AddUserToCompany(ctx context.Context, companyID string, req dto.AddUserToCompanyRequest, requestingUserID string) (*domain.UserCompany, error) {
	if _, err := s.AuthorizeUserForCompany(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return nil, err
	}

	company, err := s.companyRepo.FindCompanyByID(ctx, companyID)
	if err != nil {
		return nil, err
	}

	count, err := s.companyRepo.CountActiveUsers(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to count company users: %w", err)
	}
	if count >= company.UserLimit {
		return nil, fmt.Errorf("%w: limit is %d", ErrUserLimitReached, company.UserLimit)
	}

	if existing, err := s.companyRepo.FindUserCompanyRole(ctx, req.UserID, companyID); err == nil && existing != nil && existing.IsActive {
		return nil, fmt.Errorf("%w: user %s is already a member", apperrors.ErrDuplicate, req.UserID)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing membership: %w", err)
	}

	now := time.Now()
	link := domain.UserCompany{
		UserID:    req.UserID,
		CompanyID: companyID,
		Role:      req.Role,
		IsActive:  true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     requestingUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: requestingUserID,
		},
	}
	if err := s.companyRepo.SaveUserCompany(ctx, link); err != nil {
		s.LogError(ctx, err, "Failed to add user to company", slog.String("company_id", companyID), slog.String("user_id", req.UserID))
		return nil, fmt.Errorf("failed to add user to company: %w", err)
	}
	s.LogInfo(ctx, "User added to company", slog.String("company_id", companyID), slog.String("user_id", req.UserID), slog.String("role", string(req.Role)))
	return &link, nil
}

// UpdateUserRole changes a member's role. Requires ADMIN; granting OWNER requires OWNER.
func (s *companyService) UpdateUserRole(ctx context.Context, companyID string, userID string, req dto.UpdateUserCompanyRoleRequest, requestingUserID string) error {
	required := domain.RoleAdmin
	if req.Role == domain.RoleOwner {
		required = domain.RoleOwner
	}
	if _, err := s.AuthorizeUserForCompany(ctx, requestingUserID, companyID, required); err != nil {
		return err
	}

	link, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if link.Role == domain.RoleOwner && req.Role != domain.RoleOwner {
		if err := s.ensureNotLastOwner(ctx, companyID, userID); err != nil {
			return err
		}
	}

	if err := s.companyRepo.UpdateUserCompanyRole(ctx, userID, companyID, req.Role, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to update member role", slog.String("company_id", companyID), slog.String("user_id", userID))
		return fmt.Errorf("failed to update member role: %w", err)
	}
	return nil
}

// RemoveUserFromCompany removes a member. Requires ADMIN. The last owner stays.
func (s *companyService) RemoveUserFromCompany(ctx context.Context, companyID string, userID string, requestingUserID string) error {
	if _, err := s.AuthorizeUserForCompany(ctx, requestingUserID, companyID, domain.RoleAdmin); err != nil {
		return err
	}

	link, err := s.companyRepo.FindUserCompanyRole(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if link.Role == domain.RoleOwner {
		if err := s.ensureNotLastOwner(ctx, companyID, userID); err != nil {
			return err
		}
	}

	if err := s.companyRepo.DeactivateUserCompany(ctx, userID, companyID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to remove user from company", slog.String("company_id", companyID), slog.String("user_id", userID))
		return fmt.Errorf("failed to remove user from company: %w", err)
	}
	s.LogInfo(ctx, "User removed from company", slog.String("company_id", companyID), slog.String("user_id", userID))
	return nil
}

// ensureNotLastOwner rejects demoting or removing the only remaining owner.
func (s *companyService) ensureNotLastOwner(ctx context.Context, companyID string, userID string) error {
	owners, err := s.companyRepo.CountActiveOwners(ctx, companyID)
	if err != nil {
		return fmt.Errorf("failed to count company owners: %w", err)
	}
	if owners <= 1 {
		return ErrLastOwner
	}
	return nil
}

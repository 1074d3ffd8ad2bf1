package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
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
	ErrInvalidAccountCode   = errors.New("account code must be digit groups separated by '.' or '-'")
	ErrAccountHasMovements  = errors.New("account with movements cannot be deactivated")
	ErrAccountHasChildren   = errors.New("account with active children cannot be deactivated")
	ErrParentCycle          = errors.New("account hierarchy must not contain cycles")
	ErrParentNotFound       = errors.New("parent account not found")
	ErrAccountTypeImmutable = errors.New("account type cannot change once set")
)

// maxHierarchyDepth caps parent walks so a corrupted hierarchy cannot hang a request.
const maxHierarchyDepth = 32

// accountService manages a company's chart of accounts.
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// AccountServiceOption is a functional option for configuring the account service
type AccountServiceOption func(*accountService)

// WithCompanyAuthorizer sets the company authorizer for the account service.
func WithCompanyAuthorizer(authorizer portssvc.CompanyAuthorizerSvc) AccountServiceOption {
	return func(s *accountService) {
		s.CompanyAuthorizer = authorizer
	}
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, options ...AccountServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{accountRepo: accountRepo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account, deriving nature from the type and
// level from the parent. Requires ACCOUNTANT.
func (s *accountService) CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, creatorUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	if !validation.IsValidAccountCode(req.Code) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAccountCode, req.Code)
	}

	nature, err := domain.NatureFor(req.AccountType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}

	if existing, err := s.accountRepo.FindAccountByCode(ctx, companyID, req.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: code %s already in use", apperrors.ErrDuplicate, req.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check code uniqueness: %w", err)
	}

	level := 1
	var parent *domain.Account
	if req.ParentAccountID != nil {
		parent, err = s.resolveParent(ctx, companyID, *req.ParentAccountID, req.AccountType)
		if err != nil {
			return nil, err
		}
		level = parent.Level + 1
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		CompanyID:       companyID,
		Code:            req.Code,
		Name:            req.Name,
		ParentAccountID: req.ParentAccountID,
		Level:           level,
		AccountType:     req.AccountType,
		Nature:          nature,
		Postable:        req.Postable,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := account.ValidateHierarchy(parent); err != nil {
		return nil, err
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("company_id", companyID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// resolveParent loads and checks a prospective parent account.
func (s *accountService) resolveParent(ctx context.Context, companyID string, parentID string, childType domain.AccountType) (*domain.Account, error) {
	parent, err := s.accountRepo.FindAccountByID(ctx, parentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrParentNotFound, parentID)
		}
		return nil, fmt.Errorf("failed to load parent account: %w", err)
	}
	if parent.CompanyID != companyID {
		return nil, fmt.Errorf("%w: parent account %s", domain.ErrCrossCompanyReference, parentID)
	}
	if !parent.IsActive {
		return nil, fmt.Errorf("%w: parent account %s is inactive", apperrors.ErrValidation, parent.Code)
	}
	if parent.AccountType != childType {
		return nil, fmt.Errorf("%w: child type %s does not match parent type %s", domain.ErrAccountHierarchy, childType, parent.AccountType)
	}
	return parent, nil
}

// GetAccountByID retrieves an account scoped to the company.
func (s *accountService) GetAccountByID(ctx context.Context, companyID string, accountID string, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}
	return account, nil
}

// ListAccounts retrieves a company's chart of accounts ordered by code.
func (s *accountService) ListAccounts(ctx context.Context, companyID string, requestingUserID string, params dto.ListAccountsParams) ([]domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	accounts, err := s.accountRepo.ListAccounts(ctx, companyID, params.ActiveOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountPath resolves the full hierarchy path of an account by walking
// parent links up to the root.
func (s *accountService) GetAccountPath(ctx context.Context, companyID string, accountID string, requestingUserID string) (*dto.AccountPathResponse, error) {
	account, err := s.GetAccountByID(ctx, companyID, accountID, requestingUserID)
	if err != nil {
		return nil, err
	}

	names := []string{account.Name}
	codes := []string{account.Code}
	current := account
	for depth := 0; current.ParentAccountID != nil; depth++ {
		if depth >= maxHierarchyDepth {
			return nil, fmt.Errorf("%w: hierarchy deeper than %d levels", ErrParentCycle, maxHierarchyDepth)
		}
		parent, err := s.accountRepo.FindAccountByID(ctx, *current.ParentAccountID)
		if err != nil {
			return nil, fmt.Errorf("failed to walk account hierarchy: %w", err)
		}
		names = append([]string{parent.Name}, names...)
		codes = append([]string{parent.Code}, codes...)
		current = parent
	}

	return &dto.AccountPathResponse{
		AccountID: accountID,
		FullPath:  strings.Join(names, " > "),
		Codes:     codes,
	}, nil
}

// UpdateAccount updates account details, re-validating the hierarchy when the
// parent changes. Requires ACCOUNTANT.
func (s *accountService) UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error) {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.CompanyID != companyID {
		return nil, apperrors.ErrNotFound
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Postable != nil {
		account.Postable = *req.Postable
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
	}
	if req.ParentAccountID != nil {
		if err := s.checkNoCycle(ctx, accountID, *req.ParentAccountID); err != nil {
			return nil, err
		}
		parent, err := s.resolveParent(ctx, companyID, *req.ParentAccountID, account.AccountType)
		if err != nil {
			return nil, err
		}
		account.ParentAccountID = req.ParentAccountID
		account.Level = parent.Level + 1
		if err := account.ValidateHierarchy(parent); err != nil {
			return nil, err
		}
	}

	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = requestingUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return account, nil
}

// checkNoCycle walks up from the prospective parent and rejects the change if
// it reaches the account being re-parented.
func (s *accountService) checkNoCycle(ctx context.Context, accountID string, newParentID string) error {
	if newParentID == accountID {
		return ErrParentCycle
	}
	currentID := newParentID
	for depth := 0; depth < maxHierarchyDepth; depth++ {
		parent, err := s.accountRepo.FindAccountByID(ctx, currentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("failed to walk account hierarchy: %w", err)
		}
		if parent.ParentAccountID == nil {
			return nil
		}
		if *parent.ParentAccountID == accountID {
			return ErrParentCycle
		}
		currentID = *parent.ParentAccountID
	}
	return fmt.Errorf("%w: hierarchy deeper than %d levels", ErrParentCycle, maxHierarchyDepth)
}

// DeactivateAccount marks an account as inactive. Accounts with movements or
// active children stay. Requires ACCOUNTANT.
func (s *accountService) DeactivateAccount(ctx context.Context, companyID string, accountID string, requestingUserID string) error {
	if err := s.AuthorizeUser(ctx, requestingUserID, companyID, domain.RoleAccountant); err != nil {
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return err
	}
	if account.CompanyID != companyID {
		return apperrors.ErrNotFound
	}

	hasMovements, err := s.accountRepo.HasMovements(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to check account movements: %w", err)
	}
	if hasMovements {
		return fmt.Errorf("%w: %s", ErrAccountHasMovements, account.Code)
	}

	children, err := s.accountRepo.ListChildAccounts(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to list child accounts: %w", err)
	}
	for _, child := range children {
		if child.IsActive {
			return fmt.Errorf("%w: %s", ErrAccountHasChildren, account.Code)
		}
	}

	if err := s.accountRepo.DeactivateAccount(ctx, accountID, requestingUserID, time.Now()); err != nil {
		s.LogError(ctx, err, "Failed to deactivate account", slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}
	s.LogInfo(ctx, "Account deactivated", slog.String("account_id", accountID), slog.String("code", account.Code))
	return nil
}

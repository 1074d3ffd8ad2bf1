package services

import (
	"context"

	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/dto"
)

// AccountReaderSvc defines read operations for chart-of-accounts data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account by its ID.
	GetAccountByID(ctx context.Context, companyID string, accountID string, requestingUserID string) (*domain.Account, error)

	// ListAccounts retrieves a company's chart of accounts ordered by code.
	ListAccounts(ctx context.Context, companyID string, requestingUserID string, params dto.ListAccountsParams) ([]domain.Account, error)

	// GetAccountPath resolves the full hierarchy path of an account, walking
	// parent links up to the root.
	GetAccountPath(ctx context.Context, companyID string, accountID string, requestingUserID string) (*dto.AccountPathResponse, error)
}

// AccountWriterSvc defines write operations for chart-of-accounts data
type AccountWriterSvc interface {
	// CreateAccount persists a new account, deriving nature and level.
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount updates account details, re-validating the hierarchy when
	// the parent changes.
	UpdateAccount(ctx context.Context, companyID string, accountID string, req dto.UpdateAccountRequest, requestingUserID string) (*domain.Account, error)

	// DeactivateAccount marks an account as inactive. Accounts with movements
	// or active children cannot be deactivated.
	DeactivateAccount(ctx context.Context, companyID string, accountID string, requestingUserID string) error
}

// AccountSvcFacade combines all account-related service interfaces
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}

package services

import (
	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
	portssvc "github.com/zivabsuite/contable/internal/core/ports/services"
	"github.com/zivabsuite/contable/pkg/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Company service first since every other service authorizes through it
	container.Company = NewCompanyService(repos.CompanyRepo)
	authorizer := container.Company.(portssvc.CompanyAuthorizerSvc)

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithCompanyAuthorizer(authorizer),
	)
	container.TransactionType = NewTransactionTypeService(
		repos.TransactionTypeRepo,
		WithTypeCompanyAuthorizer(authorizer),
	)
	container.CostCenter = NewCostCenterService(
		repos.CostCenterRepo,
		WithCCCompanyAuthorizer(authorizer),
	)
	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.TransactionTypeRepo,
		repos.CostCenterRepo,
		WithTxnCompanyAuthorizer(authorizer),
	)
	container.Reporting = NewReportingService(
		repos.ReportingRepo,
		WithReportingCompanyAuthorizer(authorizer),
		WithCashAccountPrefix(cfg.CashAccountPrefix),
	)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.CompanySvcFacade     = (*companyService)(nil)
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
)

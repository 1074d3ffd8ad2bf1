package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zivabsuite/contable/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all PostgreSQL-backed repositories sharing one
// connection pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:         newPgxCompanyRepository(pool),
		AccountRepo:         newPgxAccountRepository(pool),
		TransactionRepo:     newPgxTransactionRepository(pool),
		TransactionTypeRepo: newPgxTransactionTypeRepository(pool),
		CostCenterRepo:      newPgxCostCenterRepository(pool),
		ReportingRepo:       newPgxReportingRepository(pool),
	}
}

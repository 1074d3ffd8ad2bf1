package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/zivabsuite/contable/internal/apperrors"
	"github.com/zivabsuite/contable/internal/core/domain"
	"github.com/zivabsuite/contable/internal/core/services"
	"github.com/zivabsuite/contable/internal/dto"
	"github.com/zivabsuite/contable/internal/repositories/database/pgsql"
	"github.com/zivabsuite/contable/pkg/database"
)

var (
	seedCompanyID string
	seedUserID    string
)

// seedAccount is one row of the standard chart. ParentCode refers to another
// row earlier in the list.
type seedAccount struct {
	Code       string
	Name       string
	Type       domain.AccountType
	ParentCode string
	Postable   bool
}

// standardChart is a condensed Mexican chart of accounts. Group and subgroup
// accounts are non-postable; only leaves accept movements.
var standardChart = []seedAccount{
	{Code: "1", Name: "Activo", Type: domain.Asset},
	{Code: "1.1", Name: "Activo circulante", Type: domain.Asset, ParentCode: "1"},
	{Code: "1.1.01", Name: "Caja", Type: domain.Asset, ParentCode: "1.1", Postable: true},
	{Code: "1.1.02", Name: "Bancos", Type: domain.Asset, ParentCode: "1.1", Postable: true},
	{Code: "1.1.03", Name: "Clientes", Type: domain.Asset, ParentCode: "1.1", Postable: true},
	{Code: "1.1.04", Name: "IVA acreditable", Type: domain.Asset, ParentCode: "1.1", Postable: true},
	{Code: "1.2", Name: "Activo no circulante", Type: domain.Asset, ParentCode: "1"},
	{Code: "1.2.01", Name: "Mobiliario y equipo", Type: domain.Asset, ParentCode: "1.2", Postable: true},
	{Code: "1.2.02", Name: "Equipo de cómputo", Type: domain.Asset, ParentCode: "1.2", Postable: true},

	{Code: "2", Name: "Pasivo", Type: domain.Liability},
	{Code: "2.1", Name: "Pasivo a corto plazo", Type: domain.Liability, ParentCode: "2"},
	{Code: "2.1.01", Name: "Proveedores", Type: domain.Liability, ParentCode: "2.1", Postable: true},
	{Code: "2.1.02", Name: "IVA trasladado", Type: domain.Liability, ParentCode: "2.1", Postable: true},
	{Code: "2.1.03", Name: "Impuestos por pagar", Type: domain.Liability, ParentCode: "2.1", Postable: true},

	{Code: "3", Name: "Capital", Type: domain.Equity},
	{Code: "3.1", Name: "Capital contable", Type: domain.Equity, ParentCode: "3"},
	{Code: "3.1.01", Name: "Capital social", Type: domain.Equity, ParentCode: "3.1", Postable: true},
	{Code: "3.1.02", Name: "Resultado de ejercicios anteriores", Type: domain.Equity, ParentCode: "3.1", Postable: true},

	{Code: "4", Name: "Ingresos", Type: domain.Revenue},
	{Code: "4.1", Name: "Ingresos por ventas", Type: domain.Revenue, ParentCode: "4"},
	{Code: "4.1.01", Name: "Ventas nacionales", Type: domain.Revenue, ParentCode: "4.1", Postable: true},
	{Code: "4.1.02", Name: "Otros ingresos", Type: domain.Revenue, ParentCode: "4.1", Postable: true},

	{Code: "5", Name: "Costos", Type: domain.Cost},
	{Code: "5.1", Name: "Costo de ventas", Type: domain.Cost, ParentCode: "5"},
	{Code: "5.1.01", Name: "Costo de mercancías vendidas", Type: domain.Cost, ParentCode: "5.1", Postable: true},

	{Code: "6", Name: "Gastos", Type: domain.Expense},
	{Code: "6.1", Name: "Gastos de operación", Type: domain.Expense, ParentCode: "6"},
	{Code: "6.1.01", Name: "Sueldos y salarios", Type: domain.Expense, ParentCode: "6.1", Postable: true},
	{Code: "6.1.02", Name: "Rentas", Type: domain.Expense, ParentCode: "6.1", Postable: true},
	{Code: "6.1.03", Name: "Servicios", Type: domain.Expense, ParentCode: "6.1", Postable: true},
	{Code: "6.1.04", Name: "Comisiones bancarias", Type: domain.Expense, ParentCode: "6.1", Postable: true},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a standard Mexican chart of accounts into a company",
	Long: `seed creates a condensed Mexican chart of accounts (activo, pasivo,
capital, ingresos, costos, gastos) in the given company. Accounts that already
exist by code are skipped, so re-running is safe.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.ClosePgxPool(pool)

		repos := pgsql.NewRepositoryProvider(pool)
		svcs := services.NewServiceContainer(cfg, repos)

		return seedChart(ctx, svcs.Account, repos.AccountRepo, seedCompanyID, seedUserID)
	},
}

// seedChart creates the standard chart through the account service so that
// hierarchy, nature and level derivation apply. Accounts that already exist by
// code are kept as-is, so re-running completes a partially seeded chart.
func seedChart(ctx context.Context, accountSvc portsAccountWriter, accountRepo portsAccountReader, companyID string, userID string) error {
	idsByCode := make(map[string]string, len(standardChart))
	created, skipped := 0, 0

	for _, entry := range standardChart {
		req := dto.CreateAccountRequest{
			Code:        entry.Code,
			Name:        entry.Name,
			AccountType: entry.Type,
			Postable:    entry.Postable,
		}
		if entry.ParentCode != "" {
			parentID, ok := idsByCode[entry.ParentCode]
			if !ok {
				return fmt.Errorf("chart entry %s references unknown parent %s", entry.Code, entry.ParentCode)
			}
			req.ParentAccountID = &parentID
		}

		acc, err := accountSvc.CreateAccount(ctx, companyID, req, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrDuplicate) {
				existing, findErr := accountRepo.FindAccountByCode(ctx, companyID, entry.Code)
				if findErr != nil {
					return fmt.Errorf("looking up existing account %s: %w", entry.Code, findErr)
				}
				idsByCode[entry.Code] = existing.AccountID
				skipped++
				continue
			}
			return fmt.Errorf("creating account %s: %w", entry.Code, err)
		}
		idsByCode[entry.Code] = acc.AccountID
		created++
	}

	logger.Info("Chart of accounts seeded",
		slog.String("company_id", companyID),
		slog.Int("created", created),
		slog.Int("skipped", skipped),
	)
	return nil
}

// portsAccountWriter and portsAccountReader are the slices of the account
// service and repository the seeder needs.
type portsAccountWriter interface {
	CreateAccount(ctx context.Context, companyID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)
}

type portsAccountReader interface {
	FindAccountByCode(ctx context.Context, companyID string, code string) (*domain.Account, error)
}

func init() {
	seedCmd.Flags().StringVar(&seedCompanyID, "company", "", "company ID to seed into")
	seedCmd.Flags().StringVar(&seedUserID, "user", "", "acting user ID (must be a company member with write access)")
	_ = seedCmd.MarkFlagRequired("company")
	_ = seedCmd.MarkFlagRequired("user")
	rootCmd.AddCommand(seedCmd)
}

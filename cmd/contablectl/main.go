package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/zivabsuite/contable/pkg/config"
)

var logger *slog.Logger

// rootCmd is the base command for the contable admin tool.
var rootCmd = &cobra.Command{
	Use:   "contablectl",
	Short: "Administrative tool for the contable backend",
	Long: `contablectl manages the contable backend database: it applies and rolls
back schema migrations and seeds a standard Mexican chart of accounts into a
company. Configuration is read from the environment (PGSQL_URL), with an
optional .env file.`,
	SilenceUsage: true,
}

func main() {
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads configuration and fails when no database URL is configured,
// since every subcommand needs one.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("PGSQL_URL is not set")
	}
	return cfg, nil
}

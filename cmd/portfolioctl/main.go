// Command portfolioctl runs maintenance tasks against a portfolio database
// and reads portfolios through the HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"portfolio-api/internal/config"
	"portfolio-api/internal/database"
	dbpostgres "portfolio-api/internal/database/postgres"
	"portfolio-api/internal/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const cmdTimeout = 2 * time.Minute

var (
	cfg config.Config
	log *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "portfolioctl",
	Short:         "Manage a portfolio backend",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(createUserCmd)
	rootCmd.AddCommand(showCmd)
}

// loadConfig is the PersistentPreRunE of commands that talk to the
// database directly.
func loadConfig(_ *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log, err = logger.New(cfg.App.AppName, cfg.App.Environment)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	return nil
}

func syncLogger(_ *cobra.Command, _ []string) error {
	if log != nil {
		_ = log.Sync()
	}
	return nil
}

func openDB(ctx context.Context) (database.DB, error) {
	db, err := dbpostgres.Connect(ctx, cfg.Database, 10*time.Second, log)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

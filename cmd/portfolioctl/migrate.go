package main

import (
	"context"

	"portfolio-api/internal/database"
	"portfolio-api/internal/database/migration"
	"portfolio-api/migrations"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:                "migrate",
	Short:              "Apply pending schema migrations",
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: syncLogger,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()

		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		return migrate(ctx, db)
	},
}

func migrate(ctx context.Context, db database.DB) error {
	r := migration.Runner{Dir: cfg.Portfolio.MigrationsDir, FS: migrations.FS, Logger: log}
	return r.Run(ctx, db.SQLDB())
}

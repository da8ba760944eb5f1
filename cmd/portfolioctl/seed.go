package main

import (
	"context"
	"errors"
	"os"

	"portfolio-api/internal/database/seeder"
	"portfolio-api/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	seedOwnerUsername string
	seedOwnerPassword string
	seedSkipMigrate   bool
)

var seedCmd = &cobra.Command{
	Use:                "seed",
	Short:              "Insert the default owner, skills, projects and work experience",
	Long:               "Insert the default portfolio data. Rows that already exist are left untouched, so seeding twice is safe.",
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: syncLogger,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if seedOwnerPassword == "" {
			seedOwnerPassword = os.Getenv("SEED_OWNER_PASSWORD")
		}
		if seedOwnerPassword == "" {
			return errors.New("owner password is required: pass --owner-password or set SEED_OWNER_PASSWORD")
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()

		db, err := openDB(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if !seedSkipMigrate {
			if err := migrate(ctx, db); err != nil {
				return err
			}
		}

		r := seeder.Runner{
			Seeders: seeder.Defaults(seeder.DefaultOwner(seedOwnerUsername, seedOwnerPassword)),
			Logger:  log,
		}
		if err := r.Run(ctx, db); err != nil {
			return err
		}

		n, err := repository.NewPostgresSkillRepository(db).Count(ctx)
		if err != nil {
			return err
		}
		log.Info("seed complete", zap.Int("skills", n))
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOwnerUsername, "owner-username", "admin", "username of the portfolio owner")
	seedCmd.Flags().StringVar(&seedOwnerPassword, "owner-password", "", "password of the portfolio owner (default $SEED_OWNER_PASSWORD)")
	seedCmd.Flags().BoolVar(&seedSkipMigrate, "skip-migrate", false, "do not apply migrations before seeding")
}

package main

import (
	"context"
	"encoding/json"
	"os"

	"portfolio-api/internal/app"
	ucauth "portfolio-api/internal/usecase/auth"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var newUser ucauth.SignupInput

var createUserCmd = &cobra.Command{
	Use:                "create-user",
	Short:              "Create a user together with its profile",
	PersistentPreRunE:  loadConfig,
	PersistentPostRunE: syncLogger,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), cmdTimeout)
		defer cancel()

		c, err := app.NewContainer(ctx, cfg, log)
		if err != nil {
			return err
		}
		defer func() { _ = c.Close() }()

		sess, err := c.Usecases.Auth.Signup(ctx, newUser)
		if err != nil {
			return err
		}
		log.Info("user created", zap.Int64("user_id", sess.User.ID), zap.String("username", sess.User.Username))

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"user": sess.User.Public(), "profile": sess.Profile})
	},
}

func init() {
	f := createUserCmd.Flags()
	f.StringVar(&newUser.Username, "username", "", "login name")
	f.StringVar(&newUser.Password, "password", "", "password")
	f.StringVar(&newUser.Name, "name", "", "profile display name")
	f.StringVar(&newUser.Email, "email", "", "profile email")
	f.StringVar(&newUser.Education, "education", "", "profile education")
	for _, name := range []string{"username", "password", "name", "email"} {
		_ = createUserCmd.MarkFlagRequired(name)
	}
}

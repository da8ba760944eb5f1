package main

import (
	"encoding/json"
	"os"

	"portfolio-api/internal/client"

	"github.com/spf13/cobra"
)

var (
	showAPIURL   string
	showUsername string
	showPassword string
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print a portfolio loaded through the API",
	Long: `Print the portfolio page data as JSON. Without credentials the public
default portfolio is shown; with --username and --password the caller's own.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		c, err := client.New(showAPIURL)
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if showUsername != "" {
			if _, err := c.Login(ctx, showUsername, showPassword); err != nil {
				return err
			}
		}

		p, err := c.LoadPortfolio(ctx)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(p)
	},
}

func init() {
	f := showCmd.Flags()
	f.StringVar(&showAPIURL, "api-url", envOr("API_URL", "http://localhost:3000"), "base URL of the portfolio API")
	f.StringVar(&showUsername, "username", "", "log in as this user")
	f.StringVar(&showPassword, "password", "", "password for --username")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

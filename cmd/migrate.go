package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ragbase/ragbase/db"
	"github.com/ragbase/ragbase/internal/config"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Migrate applies all pending schema migrations to the configured
PostgreSQL database. Migrations are embedded in the binary and tracked in
the schema_migrations table.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		if err := db.Migrate(cfg.PostgresURL()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

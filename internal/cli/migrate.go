package cli

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/db"
	"github.com/spf13/cobra"
)

func cmdMigrate() *cobra.Command {
	c := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}
	c.AddCommand(cmdMigrateUp(), cmdMigrateDown())
	return c
}

func cmdMigrateUp() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := db.MigrateUp(cfg.DB.URL); err != nil {
				return fmt.Errorf("db.MigrateUp: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func cmdMigrateDown() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if steps < 0 {
				return fmt.Errorf("--steps must not be negative, got %d", steps)
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if err := db.MigrateDown(cfg.DB.URL, steps); err != nil {
				return fmt.Errorf("db.MigrateDown: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migrations rolled back")
			return nil
		},
	}

	cmd.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 for all")

	return cmd
}

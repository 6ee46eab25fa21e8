package cli

import (
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/service"
	"github.com/spf13/cobra"
)

func cmdSeed() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default groups and their permissions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("openApp: %w", err)
			}
			defer a.close()

			if err := a.seeder().Seed(cmd.Context()); err != nil {
				return fmt.Errorf("seeder.Seed: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "groups seeded")
			return nil
		},
	}
}

func cmdDemo() *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: "Fill an empty store with demo users, goods, offers and orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			a, err := openApp(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("openApp: %w", err)
			}
			defer a.close()

			err = a.seeder().Demo(cmd.Context())
			if errors.Is(err, service.ErrDemoPresent) {
				fmt.Fprintln(cmd.OutOrStdout(), "store is not empty, demo data skipped")
				return nil
			}
			if err != nil {
				return fmt.Errorf("seeder.Demo: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "demo data created, log in as admin/admin, moderator/moderator or buyer/buyer")
			return nil
		},
	}
}

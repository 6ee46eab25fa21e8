package cli

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/service"
	"github.com/spf13/cobra"
)

func cmdUser() *cobra.Command {
	c := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	c.AddCommand(cmdUserCreate())
	return c
}

func cmdUserCreate() *cobra.Command {
	var in service.NewUser

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user, optionally in a group",
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

			if in.Group != "" {
				if err := a.seeder().Seed(cmd.Context()); err != nil {
					return fmt.Errorf("seeder.Seed: %w", err)
				}
			}

			user, err := service.NewAuth(a.users).CreateUser(cmd.Context(), in)
			if err != nil {
				return fmt.Errorf("auth.CreateUser: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user %q created with id %d\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	cmd.Flags().StringVar(&in.Password, "password", "", "password")
	cmd.Flags().StringVar(&in.Email, "email", "", "email address")
	cmd.Flags().StringVar(&in.EthAddress, "eth-address", "", "Ethereum address")
	cmd.Flags().StringVar(&in.Group, "group", "", "group to join: Moderators or Buyers")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

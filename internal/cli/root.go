package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nikolayk812/storefront/internal/config"
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Store backend with permission based access control",
}

func Execute() error { return rootCmd.Execute() }

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path (YAML)")

	rootCmd.AddCommand(cmdServe(), cmdMigrate(), cmdSeed(), cmdDemo(), cmdUser(), cmdVersion())

	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "Use -h for help, for example: storefront serve --config storefront.yaml")
	}
}

// loadConfig reads the configuration and installs the default logger.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("config.Load: %w", err)
	}

	slog.SetDefault(newLogger(cfg.Log, cmd.ErrOrStderr()))

	return cfg, nil
}

// newLogger expects a validated config.
func newLogger(c config.Log, w io.Writer) *slog.Logger {
	level, _ := config.ParseLevel(c.Level)
	opts := &slog.HandlerOptions{Level: level}

	if c.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

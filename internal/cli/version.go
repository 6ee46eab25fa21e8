package cli

import (
	"encoding/json"
	"fmt"

	"github.com/nikolayk812/storefront/internal/version"
	"github.com/spf13/cobra"
)

func cmdVersion() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the build version of storefront",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			switch output {
			case "short":
				_, err := fmt.Fprintln(out, version.String())
				return err
			case "full":
				_, err := fmt.Fprintln(out, version.Verbose())
				return err
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(version.Get())
			default:
				return fmt.Errorf("--output: unknown format %q, want short, full or json", output)
			}
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "short", "Output format: short, full or json")

	return cmd
}

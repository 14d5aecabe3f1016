package commands

import (
	"github.com/spf13/cobra"

	"github.com/nodelift/nodelift/cmd/nodelift/handlers"
)

// Resolve returns the command that shows where the resource config would be
// read from.
//
// Optional flags:
//
//	--config, -c: Path to the resource config (overrides RESOURCE_CONFIG)
//	--json: Output in JSON format
func Resolve() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show the resolved resource-config path",
		Long: `Show which resource config a run would use and whether it exists.

The path comes from --config, then the RESOURCE_CONFIG environment
variable, then the default location. The source column tells you which of
those won, which matters because a missing explicit config is fatal while a
missing default one just skips provisioning.

Examples:
  # Inspect the current resolution
  nodelift resolve

  # Machine-readable output
  nodelift resolve --json`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Resolve(configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the resource config (overrides RESOURCE_CONFIG)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

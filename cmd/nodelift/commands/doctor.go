package commands

import (
	"github.com/spf13/cobra"

	"github.com/nodelift/nodelift/cmd/nodelift/handlers"
)

// Doctor returns the command for checking provisioning prerequisites.
//
// Optional flags:
//
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the tools provisioning steps rely on",
		Long: `Check that the external tools provisioning steps rely on are
available on this machine.

Missing required tools make the command fail, so it can be used to gate
machine images in CI before they reach a cluster.

Examples:
  # Check this machine
  nodelift doctor

  # Get results in JSON format
  nodelift doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.Doctor(jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

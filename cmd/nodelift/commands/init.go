package commands

import (
	"github.com/spf13/cobra"

	"github.com/nodelift/nodelift/cmd/nodelift/handlers"
)

// Init returns the command for interactively creating a step plan.
//
// Flags:
//
//	--output, -o: Path to output file (default "nodelift.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a step plan",
		Long: `Interactively create a step-plan file.

This command asks about:

  - The provisioning log location
  - The lifecycle-script interpreter and path
  - Whether to install the container runtime

Edit the generated file afterwards to add cluster-specific steps.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "nodelift.yaml", "Output file path")

	return cmd
}

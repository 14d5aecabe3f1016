package commands

import (
	"github.com/spf13/cobra"

	"github.com/nodelift/nodelift/cmd/nodelift/handlers"
)

// Plan returns the command that previews the expanded step sequence.
//
// Optional flags:
//
//	--config, -c: Path to the resource config (overrides RESOURCE_CONFIG)
//	--plan, -p: Path to the step-plan YAML file (default: auto-detect nodelift.yaml)
//	--json: Output in JSON format
func Plan() *cobra.Command {
	var configPath string
	var planPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Preview the step sequence without running it",
		Long: `Preview the steps a run would execute, in order, without executing
anything.

Declared steps come first, then the container-runtime install sequence if
the plan requests it, then the lifecycle-script handoff.

Examples:
  # Preview with plan auto-detection
  nodelift plan

  # Preview a specific plan file
  nodelift plan -p staging.yaml`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return handlers.Plan(configPath, planPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to the resource config (overrides RESOURCE_CONFIG)")
	cmd.Flags().StringVarP(&planPath, "plan", "p", "", "Path to the step-plan file (default: nodelift.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

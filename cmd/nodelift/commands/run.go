package commands

import (
	"github.com/spf13/cobra"

	"github.com/nodelift/nodelift/cmd/nodelift/handlers"
)

// Run returns the command that provisions the current machine.
//
// This command performs the full machine-creation pass: resolving the
// resource config, opening the provisioning log, and executing the step
// sequence from the plan.
//
// Optional flags:
//
//	--config, -c: Path to the resource config (overrides RESOURCE_CONFIG)
//	--plan, -p: Path to the step-plan YAML file (default: auto-detect nodelift.yaml)
//	--log-file: Provisioning log location (default: /var/log/provision/provision.log)
//	--metrics-file: node_exporter textfile-collector output (disabled when empty)
//
// Environment variables:
//
//	RESOURCE_CONFIG: Explicit resource-config path, same semantics as --config
func Run() *cobra.Command {
	var opts handlers.RunOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Provision this machine",
		Long: `Provision this machine once, at creation time.

The resource config describes the cluster this machine belongs to. When it
is requested explicitly (via --config or RESOURCE_CONFIG) it must exist;
when only the default location applies and nothing is there, the machine is
treated as a vanilla environment and provisioning is skipped.

All step output is mirrored into an append-only provisioning log. A failing
step stops the sequence and its exit code becomes this command's exit code.

Examples:
  # Provision using the default config location and plan discovery
  nodelift run

  # Provision against an explicit resource config
  nodelift run -c /opt/ml/config/resource_config.json

  # Provision with metrics for the node_exporter textfile collector
  nodelift run --metrics-file /var/lib/node_exporter/nodelift.prom`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return handlers.Run(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to the resource config (overrides RESOURCE_CONFIG)")
	cmd.Flags().StringVarP(&opts.PlanPath, "plan", "p", "", "Path to the step-plan file (default: nodelift.yaml)")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Provisioning log location")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Textfile-collector metrics output")

	return cmd
}

package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/nodelift/nodelift/internal/config"
	"github.com/nodelift/nodelift/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// fileExists checks if a file exists.
	fileExists = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}

	// runWizard runs the interactive plan wizard.
	runWizard = wizard.Run

	// writePlan writes the plan to a file.
	writePlan = config.WritePlan
)

// Init runs the plan wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if fileExists(outputPath) {
		fmt.Fprintf(stdout, "Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	result, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	plan := result.ToPlan()

	if err := writePlan(plan, outputPath); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}

	printInitSuccess(outputPath, plan)

	return nil
}

// printWelcome prints the welcome message.
func printWelcome() {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "nodelift - machine-creation provisioning")
	fmt.Fprintln(stdout, "========================================")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "This wizard creates a step plan with sensible defaults.")
	fmt.Fprintln(stdout)
}

// printInitSuccess prints the summary and next steps.
func printInitSuccess(outputPath string, plan *config.Plan) {
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Plan saved!")
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "  File: %s\n", outputPath)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Plan Summary")
	fmt.Fprintln(stdout, "------------")
	fmt.Fprintf(stdout, "  Log file:        %s\n", plan.LogFile)
	if plan.Lifecycle.Disabled() {
		fmt.Fprintln(stdout, "  Lifecycle:       disabled")
	} else {
		fmt.Fprintf(stdout, "  Lifecycle:       %s %s\n", plan.Lifecycle.Interpreter, plan.Lifecycle.Script)
	}
	fmt.Fprintf(stdout, "  Install runtime: %t\n", plan.InstallRuntime)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Next steps:")
	fmt.Fprintln(stdout, "  nodelift plan   # review the expanded step sequence")
	fmt.Fprintln(stdout, "  nodelift run    # provision this machine")
}

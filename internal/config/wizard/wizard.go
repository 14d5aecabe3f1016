// Package wizard implements the interactive plan setup behind nodelift init.
package wizard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nodelift/nodelift/internal/config"
	"github.com/nodelift/nodelift/internal/logsink"
)

// Result holds the user's choices from the init wizard.
type Result struct {
	LogFile        string
	Interpreter    string
	Script         string
	InstallRuntime bool
}

// Run asks the questions needed to write a starter plan file.
func Run(ctx context.Context) (*Result, error) {
	result := &Result{
		// Defaults
		LogFile:     logsink.DefaultPath,
		Interpreter: config.DefaultLifecycleInterpreter,
		Script:      config.DefaultLifecycleScript,
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Log file").
				Description("Append-only record of all provisioning output").
				Value(&result.LogFile).
				Validate(validateNonEmpty("log file")),
		),

		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Lifecycle interpreter").
				Description("Runs the lifecycle script with the resolved resource config").
				Options(
					huh.NewOption("python3", "python3"),
					huh.NewOption("python3.9", "python3.9"),
					huh.NewOption("bash", "bash"),
					huh.NewOption("none (skip lifecycle handoff)", "none"),
				).
				Value(&result.Interpreter),

			huh.NewInput().
				Title("Lifecycle script").
				Description("Path to the platform's lifecycle script").
				Placeholder(config.DefaultLifecycleScript).
				Value(&result.Script),
		),

		huh.NewGroup(
			huh.NewConfirm().
				Title("Install container runtime?").
				Description("Adds docker and the GPU container toolkit via the OS package manager").
				Value(&result.InstallRuntime),
		),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	return result, nil
}

// ToPlan converts the wizard answers into a step plan.
func (r *Result) ToPlan() *config.Plan {
	plan := config.DefaultPlan()
	plan.LogFile = r.LogFile
	plan.InstallRuntime = r.InstallRuntime

	if r.Interpreter == "none" {
		plan.Lifecycle = config.LifecycleConfig{Interpreter: config.DefaultLifecycleInterpreter, Script: "none"}
		return plan
	}

	plan.Lifecycle.Interpreter = r.Interpreter
	if s := strings.TrimSpace(r.Script); s != "" {
		plan.Lifecycle.Script = s
	}
	return plan
}

func validateNonEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s must not be empty", field)
		}
		return nil
	}
}

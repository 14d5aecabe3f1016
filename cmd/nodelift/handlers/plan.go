package handlers

import (
	"encoding/json"
	"os"

	"github.com/nodelift/nodelift/internal/ui"
)

// stepReport is the machine-readable form of an expanded step.
type stepReport struct {
	Name    string   `json:"name"`
	Command string   `json:"command"`
	Args    []string `json:"args,omitempty"`
}

// isTerminal is replaced in tests.
var isTerminal = func() bool { return ui.IsTerminal(os.Stdout) }

// Plan prints the expanded step sequence without executing anything. The
// resource-config path shown in step arguments is whatever resolution would
// produce right now, whether or not the file exists yet.
func Plan(configPath, planPath string, jsonOutput bool) error {
	plan, err := loadPlan(planPath)
	if err != nil {
		return err
	}

	res := resolveConfig(configPath)
	steps, err := stepsFromPlan(plan, res.Path)
	if err != nil {
		return err
	}

	if jsonOutput {
		reports := make([]stepReport, 0, len(steps))
		for _, step := range steps {
			cmd, args := step.Command()
			reports = append(reports, stepReport{Name: step.Name(), Command: cmd, Args: args})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	if _, err := stdout.Write([]byte(ui.RenderSteps(steps, isTerminal()))); err != nil {
		return err
	}
	return nil
}

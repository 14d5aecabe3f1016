package handlers

import (
	"encoding/json"

	"github.com/nodelift/nodelift/internal/ui"
	"github.com/nodelift/nodelift/internal/util/prerequisites"
)

// checkPrereqs is replaced in tests.
var checkPrereqs = prerequisites.CheckAll

// toolReport is the machine-readable form of a prerequisite check.
type toolReport struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
}

// Doctor checks the external tools provisioning steps rely on. Missing
// required tools make the command fail so it can gate machine images in CI.
func Doctor(jsonOutput bool) error {
	results := checkPrereqs()

	if jsonOutput {
		reports := make([]toolReport, 0, len(results.Results))
		for _, r := range results.Results {
			reports = append(reports, toolReport{
				Name:     r.Tool.Name,
				Required: r.Tool.Required,
				Found:    r.Found,
				Path:     r.Path,
			})
		}
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return results.Error()
	}

	if _, err := stdout.Write([]byte(ui.RenderDoctor(results, isTerminal()))); err != nil {
		return err
	}
	return results.Error()
}

package handlers

import (
	"encoding/json"
	"fmt"
)

// resolutionReport is the machine-readable form of a resolution.
type resolutionReport struct {
	Path   string `json:"path"`
	Source string `json:"source"`
	Found  bool   `json:"found"`
}

// Resolve prints where the resource config would be read from and whether it
// exists. It never fails: resolution itself is pure inspection, and the
// command exists to debug the explicit/default asymmetry before a real run.
func Resolve(configPath string, jsonOutput bool) error {
	res := resolveConfig(configPath)

	if jsonOutput {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resolutionReport{
			Path:   res.Path,
			Source: string(res.Source),
			Found:  res.Found,
		})
	}

	fmt.Fprintf(stdout, "path:   %s\n", res.Path)
	fmt.Fprintf(stdout, "source: %s\n", res.Source)
	fmt.Fprintf(stdout, "found:  %t\n", res.Found)
	return nil
}

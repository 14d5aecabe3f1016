// Package prerequisites provides utilities for checking the external tools
// provisioning steps rely on.
package prerequisites

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool represents a host tool that may be required.
type Tool struct {
	// Name is the binary name to look for in PATH.
	Name string

	// Required indicates if this tool is mandatory.
	Required bool

	// Description explains what the tool is used for.
	Description string
}

// DefaultTools returns the default set of tools to check. bash and the
// lifecycle interpreter are always needed; the rest only matter for specific
// steps.
func DefaultTools() []Tool {
	return []Tool{
		{
			Name:        "bash",
			Required:    true,
			Description: "Required for plan-declared shell steps",
		},
		{
			Name:        "python3",
			Required:    true,
			Description: "Default interpreter for the lifecycle-script handoff",
		},
		{
			Name:        "systemctl",
			Required:    false,
			Description: "Used to enable the container runtime service",
		},
		{
			Name:        "nvidia-smi",
			Required:    false,
			Description: "Present on GPU instances; indicates the GPU toolkit applies",
		},
	}
}

// RuntimeInstallTools returns additional tools needed when the plan requests
// the container-runtime install sequence. Either package manager satisfies
// the requirement; detection happens step-side.
func RuntimeInstallTools() []Tool {
	return []Tool{
		{
			Name:        "apt-get",
			Required:    false,
			Description: "Debian/Ubuntu package manager for runtime installation",
		},
		{
			Name:        "dnf",
			Required:    false,
			Description: "RHEL-family package manager for runtime installation",
		},
	}
}

// CheckResult contains the result of checking a single tool.
type CheckResult struct {
	Tool  Tool
	Found bool
	Path  string
}

// CheckResults contains the results of checking multiple tools.
type CheckResults struct {
	Results []CheckResult
	Missing []Tool
}

// HasErrors returns true if any required tools are missing.
func (r *CheckResults) HasErrors() bool {
	for _, tool := range r.Missing {
		if tool.Required {
			return true
		}
	}
	return false
}

// Error returns an error if any required tools are missing.
func (r *CheckResults) Error() error {
	var missing []string
	for _, tool := range r.Missing {
		if tool.Required {
			missing = append(missing, tool.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("missing required tools: %s", strings.Join(missing, ", "))
}

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// Check verifies that the specified tools are available.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{}

	for _, tool := range tools {
		result := CheckResult{Tool: tool}

		path, err := lookPath(tool.Name)
		if err == nil {
			result.Found = true
			result.Path = path
		} else {
			results.Missing = append(results.Missing, tool)
		}

		results.Results = append(results.Results, result)
	}

	return results
}

// CheckDefault checks the default tools.
func CheckDefault() *CheckResults {
	return Check(DefaultTools())
}

// CheckAll checks the default tools plus the runtime-install tools.
func CheckAll() *CheckResults {
	defaults := DefaultTools()
	runtime := RuntimeInstallTools()
	all := make([]Tool, 0, len(defaults)+len(runtime))
	all = append(all, defaults...)
	all = append(all, runtime...)
	return Check(all)
}

package provisioning

import (
	"github.com/nodelift/nodelift/internal/config"
)

// Step is one unit of provisioning work: an external command with an
// exit-code-zero success contract. Any future step kind (script, binary,
// package-manager call) implements the same interface.
type Step interface {
	// Name returns the human-readable step name used in logs and metrics.
	Name() string

	// Command returns the executable and its arguments.
	Command() (string, []string)
}

// CommandStep is the plain command-plus-args Step used for plan-declared
// steps, runtime installation, and the lifecycle handoff.
type CommandStep struct {
	StepName string
	Cmd      string
	Args     []string
}

// NewCommandStep creates a CommandStep.
func NewCommandStep(name, cmd string, args ...string) CommandStep {
	return CommandStep{StepName: name, Cmd: cmd, Args: args}
}

// Name implements Step.
func (s CommandStep) Name() string { return s.StepName }

// Command implements Step.
func (s CommandStep) Command() (string, []string) { return s.Cmd, s.Args }

// StepFromSpec converts a declared plan entry into a runnable step.
func StepFromSpec(spec config.StepSpec) Step {
	return CommandStep{StepName: spec.Name, Cmd: spec.Command, Args: spec.Args}
}

// LifecycleStep builds the final handoff step: the lifecycle interpreter is
// invoked unbuffered with the resolved resource-config path, matching the
// contract the platform's lifecycle scripts expect.
func LifecycleStep(lc config.LifecycleConfig, resourceConfigPath string) Step {
	return CommandStep{
		StepName: "lifecycle-script",
		Cmd:      lc.Interpreter,
		Args:     []string{"-u", lc.Script, "-rc", resourceConfigPath},
	}
}

// StepsFromPlan expands a plan into the full runnable sequence: declared
// steps, then the container-runtime install block when requested, then the
// lifecycle handoff unless disabled.
func StepsFromPlan(plan *config.Plan, resourceConfigPath string) ([]Step, error) {
	steps := make([]Step, 0, len(plan.Steps)+1)
	for _, spec := range plan.Steps {
		steps = append(steps, StepFromSpec(spec))
	}

	if plan.InstallRuntime {
		pm, err := DetectPackageManager()
		if err != nil {
			return nil, err
		}
		steps = append(steps, ContainerRuntimeSteps(pm)...)
	}

	if !plan.Lifecycle.Disabled() {
		steps = append(steps, LifecycleStep(plan.Lifecycle, resourceConfigPath))
	}

	return steps, nil
}

package config

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// DefaultPlanFile is the step-plan file looked for in the working directory
// when --plan is not given.
const DefaultPlanFile = "nodelift.yaml"

// Default lifecycle handoff. The lifecycle script is the platform-specific
// program that consumes the resolved resource-config path.
const (
	DefaultLifecycleInterpreter = "python3"
	DefaultLifecycleScript      = "./lifecycle_script.py"
)

// Plan declares the ordered provisioning work for one machine.
type Plan struct {
	// LogFile overrides the default log sink location when set.
	LogFile string `mapstructure:"log_file" yaml:"log_file,omitempty"`

	// Lifecycle configures the final handoff to the external lifecycle
	// script. Disabled entirely when Script is "none".
	Lifecycle LifecycleConfig `mapstructure:"lifecycle" yaml:"lifecycle"`

	// Steps run in declared order before the lifecycle handoff.
	Steps []StepSpec `mapstructure:"steps" yaml:"steps,omitempty"`

	// InstallRuntime appends the container-runtime install sequence
	// (package manager detection, docker, GPU toolkit) after Steps.
	InstallRuntime bool `mapstructure:"install_runtime" yaml:"install_runtime,omitempty"`
}

// LifecycleConfig names the interpreter and script for the lifecycle handoff.
type LifecycleConfig struct {
	Interpreter string `mapstructure:"interpreter" yaml:"interpreter"`
	Script      string `mapstructure:"script" yaml:"script"`
}

// Disabled reports whether the lifecycle handoff is turned off.
func (l LifecycleConfig) Disabled() bool {
	return l.Script == "none"
}

// StepSpec is one declared provisioning step: a named external command.
type StepSpec struct {
	Name    string   `mapstructure:"name" yaml:"name"`
	Command string   `mapstructure:"command" yaml:"command"`
	Args    []string `mapstructure:"args" yaml:"args,omitempty"`
}

// DefaultPlan returns the builtin plan used when no plan file exists: no
// extra steps, lifecycle handoff only.
func DefaultPlan() *Plan {
	return &Plan{
		Lifecycle: LifecycleConfig{
			Interpreter: DefaultLifecycleInterpreter,
			Script:      DefaultLifecycleScript,
		},
	}
}

// LoadPlan reads and parses a step-plan YAML file.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	plan := DefaultPlan()
	if err := mapstructure.Decode(raw, plan); err != nil {
		return nil, fmt.Errorf("failed to decode plan: %w", err)
	}

	if err := plan.Validate(); err != nil {
		return nil, err
	}

	return plan, nil
}

// FindPlanFile locates the default plan file in the working directory.
func FindPlanFile() (string, error) {
	if fileExists(DefaultPlanFile) {
		return DefaultPlanFile, nil
	}
	return "", fmt.Errorf("plan file %s not found", DefaultPlanFile)
}

// Validate checks the plan for declaration errors before anything runs.
func (p *Plan) Validate() error {
	seen := make(map[string]struct{}, len(p.Steps))
	for i, step := range p.Steps {
		if step.Name == "" {
			return fmt.Errorf("step %d: name is required", i)
		}
		if step.Command == "" {
			return fmt.Errorf("step %q: command is required", step.Name)
		}
		if _, dup := seen[step.Name]; dup {
			return fmt.Errorf("step %q: duplicate step name", step.Name)
		}
		seen[step.Name] = struct{}{}
	}

	if !p.Lifecycle.Disabled() {
		if p.Lifecycle.Interpreter == "" {
			return fmt.Errorf("lifecycle: interpreter is required")
		}
		if p.Lifecycle.Script == "" {
			return fmt.Errorf("lifecycle: script is required")
		}
	}

	return nil
}

// WritePlan marshals the plan to YAML at the given path.
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to marshal plan: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}
	return nil
}

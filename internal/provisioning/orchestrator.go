package provisioning

import (
	"context"
	"fmt"
	"time"

	"github.com/nodelift/nodelift/internal/config"
)

// State is the orchestrator's position in its lifecycle. Terminal states are
// Skipped, ConfigMissingFatal, Done, and StepFailed.
type State string

const (
	// StateSkipped means no config existed at the default location; a
	// vanilla machine with nothing to provision.
	StateSkipped State = "SKIPPED"
	// StateConfigMissingFatal means an explicitly requested config is absent.
	StateConfigMissingFatal State = "CONFIG_MISSING_FATAL"
	// StateDone means every step exited zero.
	StateDone State = "DONE"
	// StateStepFailed means a step exited non-zero and the sequence stopped.
	StateStepFailed State = "STEP_FAILED"
)

// StepResult records one executed step.
type StepResult struct {
	Name     string
	ExitCode int
	Duration time.Duration
}

// Result is the terminal outcome of an orchestration run.
type Result struct {
	State      State
	ExitCode   int
	FailedStep string
	Steps      []StepResult
	Duration   time.Duration
}

// StepRunner abstracts step execution so the orchestrator can be tested with
// fakes. Implemented by *Runner.
type StepRunner interface {
	Run(ctx context.Context, step Step) (int, error)
}

// Orchestrator sequences config resolution and step execution for one
// machine-creation run.
type Orchestrator struct {
	runner   StepRunner
	observer Observer
}

// New creates an Orchestrator.
func New(runner StepRunner, observer Observer) *Orchestrator {
	return &Orchestrator{runner: runner, observer: observer}
}

// Run drives the state machine to a terminal state. The returned error, when
// non-nil, carries the process exit code via ExitCodeFor; Result is always
// populated.
//
// Absence of the config is asymmetric on purpose: an explicit request signals
// intent that must be honored or reported, while a missing default just means
// there is nothing to do on this machine.
func (o *Orchestrator) Run(ctx context.Context, res config.Resolution, steps []Step) (*Result, error) {
	start := time.Now()

	if !res.Found {
		if res.Source == config.SourceDefault {
			o.observer.Event(Event{
				Type:    EventResolveSkipped,
				Message: fmt.Sprintf("no resource config at %s; assume vanilla environment, nothing to provision; exiting", res.Path),
			})
			return &Result{State: StateSkipped, ExitCode: ExitOK, Duration: time.Since(start)}, nil
		}

		o.observer.Event(Event{
			Type:    EventResolveFatal,
			Message: fmt.Sprintf("resource config %s was requested but does not exist", res.Path),
		})
		return &Result{State: StateConfigMissingFatal, ExitCode: ExitConfigMissing, Duration: time.Since(start)},
			fmt.Errorf("%w: %s", ErrConfigMissingExplicit, res.Path)
	}

	o.observer.Printf("resource config resolved at %s (%s source), running %d steps", res.Path, res.Source, len(steps))

	result := &Result{Steps: make([]StepResult, 0, len(steps))}

	for i, step := range steps {
		name := fmt.Sprintf("%s (%d/%d)", step.Name(), i+1, len(steps))
		LogStepStart(o.observer, name)

		stepStart := time.Now()
		code, err := o.runner.Run(ctx, step)
		result.Steps = append(result.Steps, StepResult{
			Name:     step.Name(),
			ExitCode: code,
			Duration: time.Since(stepStart),
		})

		if err != nil || code != 0 {
			LogStepFailed(o.observer, name, code)
			result.State = StateStepFailed
			result.ExitCode = code
			result.FailedStep = step.Name()
			result.Duration = time.Since(start)
			return result, &StepError{Step: step.Name(), ExitCode: code, Err: err}
		}

		LogStepComplete(o.observer, name, time.Since(stepStart))
	}

	result.State = StateDone
	result.ExitCode = ExitOK
	result.Duration = time.Since(start)
	o.observer.Event(Event{
		Type:    EventRunCompleted,
		Message: fmt.Sprintf("all provisioning steps completed in %v", result.Duration.Round(time.Millisecond)),
	})
	return result, nil
}

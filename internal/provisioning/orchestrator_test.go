package provisioning

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodelift/nodelift/internal/config"
	"github.com/nodelift/nodelift/internal/logsink"
)

// fakeRunner records invocations and returns scripted exit codes per step
// name.
type fakeRunner struct {
	exitCodes map[string]int
	errs      map[string]error
	invoked   []string
}

func (f *fakeRunner) Run(_ context.Context, step Step) (int, error) {
	f.invoked = append(f.invoked, step.Name())
	if err, ok := f.errs[step.Name()]; ok {
		return 1, err
	}
	return f.exitCodes[step.Name()], nil
}

func newTestObserver() (Observer, *strings.Builder) {
	var sb strings.Builder
	return NewObserver(&sb), &sb
}

func TestOrchestrator_DefaultMissing_Skips(t *testing.T) {
	runner := &fakeRunner{}
	obs, log := newTestObserver()
	orch := New(runner, obs)

	res := config.Resolution{Path: config.DefaultResourceConfigPath, Source: config.SourceDefault, Found: false}
	steps := []Step{NewCommandStep("never", "true")}

	result, err := orch.Run(context.Background(), res, steps)
	require.NoError(t, err)

	assert.Equal(t, StateSkipped, result.State)
	assert.Equal(t, ExitOK, result.ExitCode)
	assert.Empty(t, runner.invoked, "no steps may run on a vanilla machine")
	assert.Contains(t, log.String(), "assume vanilla environment")
	assert.Contains(t, log.String(), "exiting")
}

func TestOrchestrator_ExplicitMissing_Fatal(t *testing.T) {
	runner := &fakeRunner{}
	obs, log := newTestObserver()
	orch := New(runner, obs)

	res := config.Resolution{Path: "/tmp/missing.json", Source: config.SourceExplicit, Found: false}

	result, err := orch.Run(context.Background(), res, []Step{NewCommandStep("never", "true")})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrConfigMissingExplicit)
	assert.Equal(t, StateConfigMissingFatal, result.State)
	assert.Equal(t, ExitConfigMissing, result.ExitCode)
	assert.Equal(t, ExitConfigMissing, ExitCodeFor(err))
	assert.Empty(t, runner.invoked)
	assert.Contains(t, log.String(), "/tmp/missing.json")
}

func TestOrchestrator_RunsStepsInDeclaredOrder(t *testing.T) {
	runner := &fakeRunner{exitCodes: map[string]int{}}
	obs, _ := newTestObserver()
	orch := New(runner, obs)

	res := config.Resolution{Path: "/tmp/rc.json", Source: config.SourceExplicit, Found: true}
	steps := []Step{
		NewCommandStep("apply-hotfix", "true"),
		NewCommandStep("install-container-runtime", "true"),
		NewCommandStep("lifecycle-script", "true"),
	}

	result, err := orch.Run(context.Background(), res, steps)
	require.NoError(t, err)

	assert.Equal(t, StateDone, result.State)
	assert.Equal(t, ExitOK, result.ExitCode)
	assert.Equal(t, []string{"apply-hotfix", "install-container-runtime", "lifecycle-script"}, runner.invoked)
	require.Len(t, result.Steps, 3)
}

func TestOrchestrator_ShortCircuitsOnFailure(t *testing.T) {
	runner := &fakeRunner{exitCodes: map[string]int{"second": 3}}
	obs, log := newTestObserver()
	orch := New(runner, obs)

	res := config.Resolution{Path: "/tmp/rc.json", Source: config.SourceDefault, Found: true}
	steps := []Step{
		NewCommandStep("first", "true"),
		NewCommandStep("second", "false"),
		NewCommandStep("third", "true"),
	}

	result, err := orch.Run(context.Background(), res, steps)
	require.Error(t, err)

	var stepErr *StepError
	require.ErrorAs(t, err, &stepErr)
	assert.Equal(t, "second", stepErr.Step)
	assert.Equal(t, 3, stepErr.ExitCode)

	assert.Equal(t, StateStepFailed, result.State)
	assert.Equal(t, 3, result.ExitCode)
	assert.Equal(t, "second", result.FailedStep)
	assert.Equal(t, []string{"first", "second"}, runner.invoked, "steps after the failure must not run")
	assert.Equal(t, 3, ExitCodeFor(err))
	assert.Contains(t, log.String(), "step.failed")
}

func TestOrchestrator_StartFailureStops(t *testing.T) {
	runner := &fakeRunner{errs: map[string]error{"ghost": errors.New("executable file not found")}}
	obs, _ := newTestObserver()
	orch := New(runner, obs)

	res := config.Resolution{Path: "/tmp/rc.json", Source: config.SourceExplicit, Found: true}

	result, err := orch.Run(context.Background(), res, []Step{NewCommandStep("ghost", "nope")})
	require.Error(t, err)
	assert.Equal(t, StateStepFailed, result.State)
	assert.Equal(t, 1, ExitCodeFor(err))
}

// The end-to-end flavor: real Runner, real shell steps, log sink assertions.
func TestOrchestrator_WithRealRunner(t *testing.T) {
	var sink logsink.Buffer
	runner := NewRunner(&sink, &strings.Builder{})
	obs := NewObserver(&sink)
	orch := New(runner, obs)

	res := config.Resolution{Path: "/tmp/rc.json", Source: config.SourceExplicit, Found: true}
	steps := []Step{
		NewCommandStep("hello", "sh", "-c", "echo provisioning node"),
		NewCommandStep("fails", "sh", "-c", "echo giving up; exit 7"),
		NewCommandStep("after", "sh", "-c", "echo never printed"),
	}

	result, err := orch.Run(context.Background(), res, steps)
	require.Error(t, err)

	assert.Equal(t, 7, result.ExitCode)
	assert.Equal(t, 7, ExitCodeFor(err))

	logged := sink.String()
	assert.Contains(t, logged, "provisioning node")
	assert.Contains(t, logged, "giving up")
	assert.NotContains(t, logged, "never printed")
	// Step output ordering is preserved in the durable log.
	assert.Less(t, strings.Index(logged, "provisioning node"), strings.Index(logged, "giving up"))
}

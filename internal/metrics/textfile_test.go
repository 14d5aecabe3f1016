package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodelift/nodelift/internal/provisioning"
)

func TestWrite_SuccessfulRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodelift.prom")
	result := &provisioning.Result{
		State:    provisioning.StateDone,
		Duration: 42 * time.Second,
		Steps: []provisioning.StepResult{
			{Name: "apply-hotfix", ExitCode: 0, Duration: 2 * time.Second},
			{Name: "lifecycle-script", ExitCode: 0, Duration: 40 * time.Second},
		},
	}

	require.NoError(t, Write(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "nodelift_provision_success 1")
	assert.Contains(t, text, `nodelift_provision_state{state="DONE"} 1`)
	assert.Contains(t, text, "nodelift_steps_total 2")
	assert.Contains(t, text, `nodelift_step_duration_seconds{step="lifecycle-script"} 40`)
	assert.Contains(t, text, `nodelift_step_exit_code{step="apply-hotfix"} 0`)
}

func TestWrite_FailedRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodelift.prom")
	result := &provisioning.Result{
		State:      provisioning.StateStepFailed,
		FailedStep: "install-container-runtime",
		ExitCode:   100,
		Steps: []provisioning.StepResult{
			{Name: "install-container-runtime", ExitCode: 100, Duration: time.Second},
		},
	}

	require.NoError(t, Write(path, result))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "nodelift_provision_success 0")
	assert.Contains(t, text, `nodelift_provision_state{state="STEP_FAILED"} 1`)
	assert.Contains(t, text, `nodelift_step_exit_code{step="install-container-runtime"} 100`)
}

func TestWrite_SkippedRunCountsAsSuccess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nodelift.prom")

	require.NoError(t, Write(path, &provisioning.Result{State: provisioning.StateSkipped}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "nodelift_provision_success 1")
}

func TestWrite_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "textfile", "nodelift.prom")

	require.NoError(t, Write(path, &provisioning.Result{State: provisioning.StateDone}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

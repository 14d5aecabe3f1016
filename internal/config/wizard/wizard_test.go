package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nodelift/nodelift/internal/config"
)

func TestResult_ToPlan(t *testing.T) {
	r := &Result{
		LogFile:        "/var/log/provision/provision.log",
		Interpreter:    "python3.9",
		Script:         "./lifecycle_script.py",
		InstallRuntime: true,
	}

	plan := r.ToPlan()

	assert.Equal(t, "/var/log/provision/provision.log", plan.LogFile)
	assert.Equal(t, "python3.9", plan.Lifecycle.Interpreter)
	assert.Equal(t, "./lifecycle_script.py", plan.Lifecycle.Script)
	assert.True(t, plan.InstallRuntime)
	assert.NoError(t, plan.Validate())
}

func TestResult_ToPlan_NoneDisablesLifecycle(t *testing.T) {
	r := &Result{LogFile: "x.log", Interpreter: "none", Script: "./ignored.py"}

	plan := r.ToPlan()

	assert.True(t, plan.Lifecycle.Disabled())
	assert.NoError(t, plan.Validate())
}

func TestResult_ToPlan_BlankScriptKeepsDefault(t *testing.T) {
	r := &Result{Interpreter: "python3", Script: "   "}

	plan := r.ToPlan()

	assert.Equal(t, config.DefaultLifecycleScript, plan.Lifecycle.Script)
}

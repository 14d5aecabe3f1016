package handlers

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nodelift/nodelift/internal/util/prerequisites"
)

func stubPrereqs(results *prerequisites.CheckResults) {
	checkPrereqs = func() *prerequisites.CheckResults { return results }
}

func TestDoctor_AllToolsPresent(t *testing.T) {
	saveAndRestoreFactories(t)
	outBuf, _ := captureOutput(t)

	stubPrereqs(&prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "bash", Required: true}, Found: true, Path: "/bin/bash"},
			{Tool: prerequisites.Tool{Name: "python3", Required: true}, Found: true, Path: "/usr/bin/python3"},
		},
	})

	err := Doctor(false)
	require.NoError(t, err)
	assert.Contains(t, outBuf.String(), "bash")
}

func TestDoctor_MissingRequiredToolFails(t *testing.T) {
	saveAndRestoreFactories(t)
	captureOutput(t)

	missing := prerequisites.Tool{Name: "python3", Required: true}
	stubPrereqs(&prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "bash", Required: true}, Found: true, Path: "/bin/bash"},
			{Tool: missing, Found: false},
		},
		Missing: []prerequisites.Tool{missing},
	})

	err := Doctor(false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "python3")
}

func TestDoctor_MissingOptionalToolSucceeds(t *testing.T) {
	saveAndRestoreFactories(t)
	captureOutput(t)

	optional := prerequisites.Tool{Name: "nvidia-smi", Required: false}
	stubPrereqs(&prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: optional, Found: false},
		},
		Missing: []prerequisites.Tool{optional},
	})

	err := Doctor(false)
	require.NoError(t, err)
}

func TestDoctor_JSONOutput(t *testing.T) {
	saveAndRestoreFactories(t)
	outBuf, _ := captureOutput(t)

	stubPrereqs(&prerequisites.CheckResults{
		Results: []prerequisites.CheckResult{
			{Tool: prerequisites.Tool{Name: "bash", Required: true}, Found: true, Path: "/bin/bash"},
		},
	})

	err := Doctor(true)
	require.NoError(t, err)

	var reports []toolReport
	require.NoError(t, json.Unmarshal(outBuf.Bytes(), &reports))
	require.Len(t, reports, 1)
	assert.Equal(t, "bash", reports[0].Name)
	assert.True(t, reports[0].Found)
	assert.Equal(t, "/bin/bash", reports[0].Path)
}

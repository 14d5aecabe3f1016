package handlers

import (
	"bytes"
	"testing"
)

// saveAndRestoreFactories snapshots every injectable factory so tests can
// replace them freely.
func saveAndRestoreFactories(t *testing.T) {
	t.Helper()

	origResolveConfig := resolveConfig
	origOpenSink := openSink
	origLoadPlanFile := loadPlanFile
	origFindPlanFile := findPlanFile
	origLoadResourceConfig := loadResourceConfig
	origSelfIP := selfIP
	origNewFetcher := newFetcher
	origWriteMetrics := writeMetrics
	origStepsFromPlan := stepsFromPlan
	origStdout := stdout
	origStderr := stderr
	origIsTerminal := isTerminal
	origCheckPrereqs := checkPrereqs
	origFileExists := fileExists
	origRunWizard := runWizard
	origWritePlan := writePlan

	t.Cleanup(func() {
		resolveConfig = origResolveConfig
		openSink = origOpenSink
		loadPlanFile = origLoadPlanFile
		findPlanFile = origFindPlanFile
		loadResourceConfig = origLoadResourceConfig
		selfIP = origSelfIP
		newFetcher = origNewFetcher
		writeMetrics = origWriteMetrics
		stepsFromPlan = origStepsFromPlan
		stdout = origStdout
		stderr = origStderr
		isTerminal = origIsTerminal
		checkPrereqs = origCheckPrereqs
		fileExists = origFileExists
		runWizard = origRunWizard
		writePlan = origWritePlan
	})
}

// captureOutput redirects handler stdout/stderr to buffers.
func captureOutput(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	outBuf := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	stdout = outBuf
	stderr = errBuf
	isTerminal = func() bool { return false }
	return outBuf, errBuf
}

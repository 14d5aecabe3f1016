package provisioning

import (
	"errors"
	"fmt"
)

// Process exit codes. A failing step overrides these with its own exit code.
const (
	// ExitOK covers both successful provisioning and the vanilla-machine skip.
	ExitOK = 0
	// ExitConfigMissing is returned when an explicitly requested resource
	// config does not exist.
	ExitConfigMissing = 1
	// ExitLogSinkUnavailable is returned when the log file or its directory
	// cannot be created.
	ExitLogSinkUnavailable = 2
)

// ErrConfigMissingExplicit means the caller named a resource config that does
// not exist. An explicit request signals intent that must be honored or
// reported, so this is fatal.
var ErrConfigMissingExplicit = errors.New("resource config not found at requested path")

// ErrLogSinkUnavailable means the durable log could not be created.
var ErrLogSinkUnavailable = errors.New("log sink unavailable")

// ErrNodeNotInConfig means a resource config exists but does not list this
// machine's address. The config claims to describe the cluster, so a node it
// does not know about must not provision itself against it.
var ErrNodeNotInConfig = errors.New("this node is not listed in the resource config")

// StepError carries the true exit code of a failed provisioning step.
type StepError struct {
	Step     string
	ExitCode int
	Err      error
}

// Error implements error.
func (e *StepError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
	}
	return fmt.Sprintf("step %s failed with exit code %d", e.Step, e.ExitCode)
}

// Unwrap returns the underlying execution error, if any.
func (e *StepError) Unwrap() error { return e.Err }

// ExitCodeFor maps an orchestration error to the process exit status.
func ExitCodeFor(err error) int {
	if err == nil {
		return ExitOK
	}

	var stepErr *StepError
	if errors.As(err, &stepErr) {
		if stepErr.ExitCode > 0 {
			return stepErr.ExitCode
		}
		return 1
	}

	if errors.Is(err, ErrConfigMissingExplicit) {
		return ExitConfigMissing
	}
	if errors.Is(err, ErrLogSinkUnavailable) {
		return ExitLogSinkUnavailable
	}
	if errors.Is(err, ErrNodeNotInConfig) {
		return ExitConfigMissing
	}

	return 1
}

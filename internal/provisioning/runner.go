package provisioning

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"syscall"

	"github.com/nodelift/nodelift/internal/logsink"
)

// Runner executes provisioning steps, duplicating their combined output into
// both the process's own stream and the log sink.
type Runner struct {
	sink   logsink.Sink
	stdout io.Writer
}

// NewRunner creates a Runner. stdout is normally os.Stdout; tests pass a
// buffer.
func NewRunner(sink logsink.Sink, stdout io.Writer) *Runner {
	return &Runner{sink: sink, stdout: stdout}
}

// Run launches the step's command in the current environment and blocks until
// it finishes. The returned exit code is the child's own status, never a
// wrapper's. A non-nil error means the command could not be started or was
// interrupted; exit code is 1 in that case unless the child reported one.
func (r *Runner) Run(ctx context.Context, step Step) (int, error) {
	name, args := step.Command()
	cmd := exec.CommandContext(ctx, name, args...)

	// Stdout and Stderr share the same writer so os/exec serializes
	// writes and the log preserves the child's interleaving.
	out := io.MultiWriter(r.stdout, r.sink)
	cmd.Stdout = out
	cmd.Stderr = out

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// Signal-terminated child: report 128+signal, shell convention,
		// instead of the -1 ExitCode returns.
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			return 128 + int(ws.Signal()), nil
		}
		return 1, nil
	}

	return 1, err
}

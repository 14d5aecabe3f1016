package provisioning

import (
	"fmt"
	"io"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// Observer receives structured progress during orchestration. Provisioning
// decisions are part of the durable record, so the default observer writes to
// the log sink as well as stderr.
type Observer interface {
	// Printf emits a free-form progress line.
	Printf(format string, v ...interface{})

	// Event emits a structured event.
	Event(event Event)

	// WithFields returns a new Observer with additional context fields.
	WithFields(fields map[string]string) Observer
}

// Event represents a structured orchestration event.
type Event struct {
	Type    EventType
	Step    string
	Message string
	Fields  map[string]string
}

// EventType represents the type of orchestration event.
type EventType string

const (
	// EventResolveSkipped indicates no resource config was found at the
	// default location; the machine is vanilla and nothing runs.
	EventResolveSkipped EventType = "resolve.skipped"
	// EventResolveFatal indicates an explicitly requested config is missing.
	EventResolveFatal EventType = "resolve.fatal"
	// EventStepStarted indicates a provisioning step has started.
	EventStepStarted EventType = "step.started"
	// EventStepCompleted indicates a provisioning step completed successfully.
	EventStepCompleted EventType = "step.completed"
	// EventStepFailed indicates a provisioning step failed.
	EventStepFailed EventType = "step.failed"
	// EventRunCompleted indicates the whole sequence finished successfully.
	EventRunCompleted EventType = "run.completed"
)

// logrObserver implements Observer on a logr.Logger backed by funcr, which
// renders key=value lines to the given writer.
type logrObserver struct {
	log logr.Logger
}

// NewObserver creates the default Observer writing timestamped lines to out.
func NewObserver(out io.Writer) Observer {
	sink := funcr.New(func(prefix, args string) {
		ts := time.Now().Format("2006/01/02 15:04:05")
		if prefix != "" {
			fmt.Fprintf(out, "%s %s %s\n", ts, prefix, args)
			return
		}
		fmt.Fprintf(out, "%s %s\n", ts, args)
	}, funcr.Options{})

	return &logrObserver{log: sink.WithName("nodelift")}
}

// NewObserverWithLogger wraps an existing logr.Logger, used by tests.
func NewObserverWithLogger(log logr.Logger) Observer {
	return &logrObserver{log: log}
}

// Printf implements Observer.
func (o *logrObserver) Printf(format string, v ...interface{}) {
	o.log.Info(fmt.Sprintf(format, v...))
}

// Event implements Observer.
func (o *logrObserver) Event(event Event) {
	kv := make([]interface{}, 0, 4+2*len(event.Fields))
	kv = append(kv, "event", string(event.Type))
	if event.Step != "" {
		kv = append(kv, "step", event.Step)
	}
	for k, v := range event.Fields {
		kv = append(kv, k, v)
	}
	o.log.Info(event.Message, kv...)
}

// WithFields implements Observer.
func (o *logrObserver) WithFields(fields map[string]string) Observer {
	kv := make([]interface{}, 0, 2*len(fields))
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &logrObserver{log: o.log.WithValues(kv...)}
}

// Helper functions for common events.

// LogStepStart logs a step start event.
func LogStepStart(observer Observer, step string) {
	observer.Event(Event{
		Type:    EventStepStarted,
		Step:    step,
		Message: "starting",
	})
}

// LogStepComplete logs a step completion event.
func LogStepComplete(observer Observer, step string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventStepCompleted,
		Step:    step,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogStepFailed logs a step failure event.
func LogStepFailed(observer Observer, step string, exitCode int) {
	observer.Event(Event{
		Type:    EventStepFailed,
		Step:    step,
		Message: fmt.Sprintf("failed with exit code %d", exitCode),
		Fields:  map[string]string{"exit_code": fmt.Sprintf("%d", exitCode)},
	})
}

// Package metrics records the outcome of a provisioning run in the
// node_exporter textfile-collector format. The orchestrator runs once per
// machine and exits, so there is no metrics endpoint to scrape; dropping a
// .prom file lets the node's exporter surface the result instead.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/nodelift/nodelift/internal/provisioning"
)

// Write renders the run result to path. The file is written atomically
// (temp file + rename) so the collector never reads a partial scrape.
func Write(path string, result *provisioning.Result) error {
	reg := prometheus.NewRegistry()

	success := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nodelift",
		Name:      "provision_success",
		Help:      "1 if provisioning reached DONE or SKIPPED, 0 otherwise.",
	})
	duration := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nodelift",
		Name:      "provision_duration_seconds",
		Help:      "Wall-clock duration of the whole provisioning run.",
	})
	state := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nodelift",
		Name:      "provision_state",
		Help:      "Terminal orchestrator state, 1 for the state reached.",
	}, []string{"state"})
	stepsTotal := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "nodelift",
		Name:      "steps_total",
		Help:      "Number of provisioning steps that were invoked.",
	})
	stepDuration := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nodelift",
		Name:      "step_duration_seconds",
		Help:      "Duration of each invoked provisioning step.",
	}, []string{"step"})
	stepExitCode := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "nodelift",
		Name:      "step_exit_code",
		Help:      "Exit code of each invoked provisioning step.",
	}, []string{"step"})

	reg.MustRegister(success, duration, state, stepsTotal, stepDuration, stepExitCode)

	if result.State == provisioning.StateDone || result.State == provisioning.StateSkipped {
		success.Set(1)
	}
	duration.Set(result.Duration.Seconds())
	state.WithLabelValues(string(result.State)).Set(1)
	stepsTotal.Set(float64(len(result.Steps)))
	for _, step := range result.Steps {
		stepDuration.WithLabelValues(step.Name).Set(step.Duration.Seconds())
		stepExitCode.WithLabelValues(step.Name).Set(float64(step.ExitCode))
	}

	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create metrics directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp metrics file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	enc := expfmt.NewEncoder(tmp, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to encode metrics: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush metrics: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to publish metrics file: %w", err)
	}
	return nil
}

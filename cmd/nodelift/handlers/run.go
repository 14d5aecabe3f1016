// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command definitions
// in the commands package. Handlers are framework-agnostic and can be tested
// independently of the CLI framework.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/nodelift/nodelift/internal/config"
	"github.com/nodelift/nodelift/internal/logsink"
	"github.com/nodelift/nodelift/internal/metrics"
	"github.com/nodelift/nodelift/internal/netutil"
	"github.com/nodelift/nodelift/internal/provisioning"
)

// remoteFetcher matches config.Fetcher for testing.
type remoteFetcher interface {
	Fetch(ctx context.Context, uri, destDir string) (string, bool, error)
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// resolveConfig locates the resource config.
	resolveConfig = config.Resolve

	// openSink opens the durable log sink.
	openSink = func(path string) (logsink.Sink, error) {
		return logsink.OpenFile(path)
	}

	// loadPlanFile loads a plan from file.
	loadPlanFile = config.LoadPlan

	// findPlanFile locates the default plan file.
	findPlanFile = config.FindPlanFile

	// loadResourceConfig parses the resolved resource config.
	loadResourceConfig = config.LoadResourceConfig

	// selfIP returns this machine's primary address.
	selfIP = netutil.SelfIP

	// newFetcher creates an S3 fetcher from the ambient credential chain.
	newFetcher = func(ctx context.Context) (remoteFetcher, error) {
		return config.NewFetcher(ctx, "", "", "", "")
	}

	// writeMetrics publishes the textfile-collector metrics.
	writeMetrics = metrics.Write

	// stepsFromPlan expands the plan into runnable steps.
	stepsFromPlan = provisioning.StepsFromPlan

	// stdout/stderr are swapped for buffers in tests.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// RunOptions carries the flags of the run command.
type RunOptions struct {
	// ConfigPath is an explicit resource-config path (flag; the
	// RESOURCE_CONFIG variable is the other explicit source).
	ConfigPath string
	// PlanPath is the step-plan file; empty means auto-detect then builtin.
	PlanPath string
	// LogFile overrides the log sink location.
	LogFile string
	// MetricsFile is the textfile-collector output; empty disables metrics.
	MetricsFile string
}

// Run orchestrates one machine-creation provisioning pass:
//  1. Loads the step plan (flag, nodelift.yaml, or builtin default)
//  2. Opens the append-only log sink (fatal if unavailable)
//  3. Resolves the resource config, fetching s3:// configs to a local file
//  4. Skips on a vanilla machine, fails fast on a missing explicit config
//  5. Runs the expanded step sequence, short-circuiting on first failure
//  6. Publishes textfile metrics (best effort, never alters the exit status)
//
// The returned error carries the process exit code via provisioning.ExitCodeFor.
func Run(ctx context.Context, opts RunOptions) error {
	plan, err := loadPlan(opts.PlanPath)
	if err != nil {
		return err
	}

	logPath := firstNonEmpty(opts.LogFile, plan.LogFile, logsink.DefaultPath)
	sink, err := openSink(logPath)
	if err != nil {
		return fmt.Errorf("%w: %v", provisioning.ErrLogSinkUnavailable, err)
	}
	defer func() { _ = sink.Close() }()

	observer := provisioning.NewObserver(io.MultiWriter(stderr, sink))

	res := resolveConfig(opts.ConfigPath)
	if config.IsS3URI(res.Path) {
		res, err = fetchRemoteConfig(ctx, res, observer)
		if err != nil {
			return err
		}
	}

	var steps []provisioning.Step
	if res.Found {
		if err := describeNode(observer, res.Path); err != nil {
			return err
		}

		steps, err = stepsFromPlan(plan, res.Path)
		if err != nil {
			return err
		}
	}

	runner := provisioning.NewRunner(sink, stdout)
	orch := provisioning.New(runner, observer)

	result, runErr := orch.Run(ctx, res, steps)

	if opts.MetricsFile != "" && result != nil {
		if err := writeMetrics(opts.MetricsFile, result); err != nil {
			observer.Printf("failed to write metrics file: %v", err)
		}
	}

	return runErr
}

// loadPlan applies the plan discovery order: explicit flag, nodelift.yaml in
// the working directory, builtin default.
func loadPlan(planPath string) (*config.Plan, error) {
	if planPath != "" {
		return loadPlanFile(planPath)
	}
	if found, err := findPlanFile(); err == nil {
		return loadPlanFile(found)
	}
	return config.DefaultPlan(), nil
}

// fetchRemoteConfig downloads an s3:// resource config so the steps only see
// a local path. A missing object is reported like a missing explicit file.
func fetchRemoteConfig(ctx context.Context, res config.Resolution, observer provisioning.Observer) (config.Resolution, error) {
	fetcher, err := newFetcher(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	local, found, err := fetcher.Fetch(ctx, res.Path, os.TempDir())
	if err != nil {
		return res, err
	}
	if !found {
		res.Found = false
		return res, nil
	}

	observer.Printf("fetched resource config %s to %s", res.Path, local)
	res.Path = local
	res.Found = true
	return res, nil
}

// describeNode logs which instance group this machine belongs to. A config
// that cannot be parsed, or one that does not list this machine's address,
// aborts the run before any step executes: a present config claims to
// describe this cluster, and a node it does not know about must not
// provision itself against it.
func describeNode(observer provisioning.Observer, path string) error {
	rc, err := loadResourceConfig(path)
	if err != nil {
		return fmt.Errorf("failed to load resource config %s: %w", path, err)
	}

	ip := selfIP()
	group, inst, ok := rc.FindInstanceByAddress(ip)
	if !ok {
		observer.Printf("address %s is not listed in the resource config", ip)
		return fmt.Errorf("%w: %s", provisioning.ErrNodeNotInConfig, ip)
	}

	observer.WithFields(map[string]string{
		"instance": inst.InstanceName,
		"group":    group.Name,
	}).Printf("this node (%s) belongs to instance group %s", ip, group.Name)
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Package orchestrator drives one benchmark run end to end: validates
// config, preflights the target directory, runs the five workloads in
// their fixed order, and guarantees the backing file is cleaned up on
// every exit path.
package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/diskcheck/diskcheck/internal/preflight"
	"github.com/diskcheck/diskcheck/internal/reporter"
	"github.com/diskcheck/diskcheck/internal/runners"
	"github.com/diskcheck/diskcheck/internal/utils"
	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// Orchestrator runs a BenchmarkConfig's workloads against one
// PlatformLayer.
type Orchestrator struct {
	platform types.PlatformLayer
	logger   *utils.Logger
	errSink  types.ErrorSink
}

// New builds an Orchestrator. A nil logger defaults to utils.Default(); a
// nil errSink means workload failures are only logged, never forwarded.
func New(plat types.PlatformLayer, logger *utils.Logger, errSink types.ErrorSink) *Orchestrator {
	if logger == nil {
		logger = utils.Default()
	}
	return &Orchestrator{platform: plat, logger: logger, errSink: errSink}
}

// Run validates cfg, preflights target_path, runs all five workloads in
// their fixed order, and returns a fully populated BenchmarkResults — a
// workload that failed or never ran is left at its zero TestResult. If
// validation, preflight or creation of the backing file fails, Run
// returns nil results and that error. ctx cancellation is checked by
// each workload's loop; on cancellation the current workload reports
// TestInterrupted and later workloads are skipped.
func (o *Orchestrator) Run(ctx context.Context, cfg types.BenchmarkConfig, sink types.ProgressSink) (types.BenchmarkResults, error) {
	if err := cfg.Validate(); err != nil {
		return nil, diskerr.Configuration(err.Error())
	}

	checker := preflight.New(cfg.TargetPath, cfg.FileSizeBytes(), o.platform.AvailableBytes)
	if _, err := checker.Run(); err != nil {
		return nil, err
	}

	path := uniqueFilePath(cfg.TargetPath)
	f, err := o.platform.CreateDirectIOFile(path, cfg.FileSizeBytes())
	if err != nil {
		return nil, err
	}
	f.Close()
	defer o.cleanup(path, cfg)

	rep := reporter.New(sink)
	results := types.NewBenchmarkResults()

	o.runWorkload(ctx, results, types.SequentialWrite, func() (types.TestResult, error) {
		return runners.SequentialWrite(ctx, cfg, o.platform, rep, o.logger, path)
	})
	o.runWorkload(ctx, results, types.SequentialRead, func() (types.TestResult, error) {
		return runners.SequentialRead(ctx, cfg, o.platform, rep, o.logger, path)
	})
	o.runWorkload(ctx, results, types.RandomWrite, func() (types.TestResult, error) {
		return runners.RandomWrite(ctx, cfg, o.platform, rep, o.logger, path)
	})
	o.runWorkload(ctx, results, types.RandomRead, func() (types.TestResult, error) {
		return runners.RandomRead(ctx, cfg, o.platform, rep, o.logger, path)
	})
	// Memory copy has no file dependency, so it always runs even if every
	// disk workload above failed.
	o.runWorkload(ctx, results, types.MemoryCopy, func() (types.TestResult, error) {
		return runners.MemoryCopy(ctx, cfg, rep, o.logger)
	})

	return results, nil
}

// runWorkload runs fn, records its result (or leaves the zero TestResult
// already in results on failure), and routes any error to the logger and
// errSink without aborting the remaining workloads. Once ctx is canceled,
// fn is not called and the workload keeps its zero TestResult.
func (o *Orchestrator) runWorkload(ctx context.Context, results types.BenchmarkResults, workload types.Workload, fn func() (types.TestResult, error)) {
	if ctx.Err() != nil {
		return
	}
	result, err := fn()
	if err != nil {
		o.logger.Warn("%s failed: %v", workload, err)
		if o.errSink != nil {
			o.errSink.LogError(workload, err)
		}
		return
	}
	results[workload] = result
}

// cleanup issues a final durability barrier (when configured) and unlinks
// the backing file. Both steps are best-effort: unlink errors are logged,
// never surfaced, since cleanup runs on every exit path including ones
// already carrying a more important error.
func (o *Orchestrator) cleanup(path string, cfg types.BenchmarkConfig) {
	if cfg.DisableOSCache {
		_ = o.platform.SyncFileSystem(path)
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		o.logger.Warn("cleanup: removing %s: %v", path, err)
	}
}

// uniqueFilePath derives target_path/dst-<pid>-<randomsuffix>.bin.
func uniqueFilePath(dir string) string {
	suffix := rand.New(rand.NewSource(time.Now().UnixNano())).Int63()
	return filepath.Join(dir, fmt.Sprintf("dst-%d-%x.bin", os.Getpid(), suffix))
}

// Package diskcheck is the library surface consumed by presentation
// layers (spec.md §6): run a disk benchmark, enumerate storage devices,
// and locate the per-user application data directory.
package diskcheck

import (
	"context"

	"github.com/diskcheck/diskcheck/internal/config"
	"github.com/diskcheck/diskcheck/internal/metricsexport"
	"github.com/diskcheck/diskcheck/internal/orchestrator"
	"github.com/diskcheck/diskcheck/internal/platform"
	"github.com/diskcheck/diskcheck/internal/utils"
	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// RunBenchmark validates config, runs the five workloads in their fixed
// order against the host's platform layer, and returns a fully populated
// BenchmarkResults; if validation, preflight or creation of the backing
// file fails it returns nil results and the error instead — see
// internal/orchestrator for the validate/preflight/execute/cleanup
// pipeline. sink may be nil.
func RunBenchmark(ctx context.Context, config types.BenchmarkConfig, sink types.ProgressSink) (types.BenchmarkResults, error) {
	logger := utils.Default()
	return runBenchmark(ctx, config, sink, platform.New(logger), logger)
}

// runBenchmark is RunBenchmark with the platform layer and logger
// injected, so tests can substitute internal/platform.Fake without a host
// OS dependency.
func runBenchmark(ctx context.Context, config types.BenchmarkConfig, sink types.ProgressSink, plat types.PlatformLayer, logger *utils.Logger) (types.BenchmarkResults, error) {
	o := orchestrator.New(plat, logger, nil)
	return o.Run(ctx, config, sink)
}

// RunBenchmarkWithMetrics runs the benchmark and publishes every workload's
// TestResult (or, for a workload that failed, an incremented failure
// counter) to exporter, for a caller that serves exporter.Handler() as a
// Prometheus /metrics endpoint alongside the benchmark. exporter must not
// be nil.
func RunBenchmarkWithMetrics(ctx context.Context, config types.BenchmarkConfig, sink types.ProgressSink, exporter *metricsexport.Exporter) (types.BenchmarkResults, error) {
	logger := utils.Default()
	return runBenchmarkWithMetrics(ctx, config, sink, exporter, platform.New(logger), logger)
}

// runBenchmarkWithMetrics is RunBenchmarkWithMetrics with the platform
// layer and logger injected, mirroring runBenchmark's test seam.
func runBenchmarkWithMetrics(ctx context.Context, config types.BenchmarkConfig, sink types.ProgressSink, exporter *metricsexport.Exporter, plat types.PlatformLayer, logger *utils.Logger) (types.BenchmarkResults, error) {
	results, err := runBenchmark(ctx, config, sink, plat, logger)
	if err != nil {
		return results, err
	}
	for _, workload := range types.Workloads {
		if results[workload] == (types.TestResult{}) {
			exporter.ObserveFailure(workload)
			continue
		}
		exporter.Observe(workload, results[workload])
	}
	return results, nil
}

// RunBenchmarkFromConfigFile loads a BenchmarkConfig from the YAML file at
// configPath, layered under the compiled-in defaults for targetPath (see
// internal/config.LoadFromFile), and runs it exactly as RunBenchmark does.
func RunBenchmarkFromConfigFile(ctx context.Context, configPath, targetPath string, sink types.ProgressSink) (types.BenchmarkResults, error) {
	cfg, err := config.LoadFromFile(configPath, targetPath)
	if err != nil {
		return nil, diskerr.Configuration(err.Error())
	}
	return RunBenchmark(ctx, cfg, sink)
}

// SaveBenchmarkConfig writes cfg as YAML to configPath, for a caller that
// wants to persist a configuration RunBenchmarkFromConfigFile will later
// load.
func SaveBenchmarkConfig(cfg types.BenchmarkConfig, configPath string) error {
	return config.SaveToFile(cfg, configPath)
}

// ListStorageDevices enumerates mounted volumes with capacity metadata,
// purely informational — it never influences RunBenchmark's choice of
// target.
func ListStorageDevices() ([]types.StorageDevice, error) {
	return platform.New(utils.Default()).ListStorageDevices()
}

// GetAppDataDir returns a writable per-user application directory for
// this tool, creating it if missing.
func GetAppDataDir() (string, error) {
	return platform.New(utils.Default()).AppDataDir()
}

// Package types holds the data carriers shared across the benchmark core:
// the run request, the per-workload and aggregate results, and the
// informational storage-device enumeration. Validation and default
// construction live here; serialization to JSON/CSV/table output is owned
// by an external presentation layer and consumes these types read-only.
package types

import (
	"fmt"
	"os"
)

// MBytesPerMB is the number of bytes in one "megabyte" as used by every
// throughput figure and size field in this module: 2^20 (a mebibyte),
// labeled "MB" for consistency with the reference tool this was modeled
// on. See DESIGN.md, Open Question decision 1.
const MBytesPerMB = 1 << 20

// Workload identifies one of the five benchmark routines.
type Workload string

const (
	SequentialWrite Workload = "sequential_write"
	SequentialRead  Workload = "sequential_read"
	RandomWrite     Workload = "random_write"
	RandomRead      Workload = "random_read"
	MemoryCopy      Workload = "memory_copy"
)

// Workloads lists the five workloads in the fixed order the orchestrator
// must run them.
var Workloads = []Workload{SequentialWrite, SequentialRead, RandomWrite, RandomRead, MemoryCopy}

// BenchmarkConfig is the run request accepted by RunBenchmark. The zero
// value is not ready to use — construct one with DefaultBenchmarkConfig
// and override only the fields that need to differ.
type BenchmarkConfig struct {
	// TargetPath is an existing, writable directory. Required.
	TargetPath string `yaml:"target_path"`

	// SequentialBlockSize is the block size in bytes used by the
	// sequential write/read and memory-copy workloads. Default 4 MiB.
	SequentialBlockSize int64 `yaml:"sequential_block_size"`

	// RandomBlockSize is the block size in bytes used by the random
	// write/read workloads. Default 4 KiB.
	RandomBlockSize int64 `yaml:"random_block_size"`

	// TestDurationSeconds is the wall-clock budget applied per workload.
	// Default 10.
	TestDurationSeconds int `yaml:"test_duration_seconds"`

	// DisableOSCache requests cache-bypass file flags and a durability
	// barrier after writes. Default true.
	DisableOSCache bool `yaml:"disable_os_cache"`

	// FileSizeMB sizes both the backing file and the memory-copy buffer
	// pair, in megabytes (2^20 bytes each). Default 1024.
	FileSizeMB int64 `yaml:"file_size_mb"`
}

// DefaultBenchmarkConfig returns a BenchmarkConfig for targetPath with
// every other field set to its documented default. This is the canonical
// "only a target path specified" constructor: DefaultBenchmarkConfig(p)
// is equal to a BenchmarkConfig built with every default field set
// explicitly to the same value.
func DefaultBenchmarkConfig(targetPath string) BenchmarkConfig {
	return BenchmarkConfig{
		TargetPath:          targetPath,
		SequentialBlockSize: 4 * MBytesPerMB,
		RandomBlockSize:     4 * 1024,
		TestDurationSeconds: 10,
		DisableOSCache:      true,
		FileSizeMB:          1024,
	}
}

// Validate rejects non-positive sizes/durations and a missing target
// directory, per spec.md §3.
func (c BenchmarkConfig) Validate() error {
	if c.TargetPath == "" {
		return fmt.Errorf("target_path is required")
	}
	info, err := os.Stat(c.TargetPath)
	if err != nil {
		return fmt.Errorf("target_path %q: %w", c.TargetPath, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target_path %q is not a directory", c.TargetPath)
	}
	if c.SequentialBlockSize <= 0 {
		return fmt.Errorf("sequential_block_size must be positive, got %d", c.SequentialBlockSize)
	}
	if c.RandomBlockSize <= 0 {
		return fmt.Errorf("random_block_size must be positive, got %d", c.RandomBlockSize)
	}
	if c.TestDurationSeconds <= 0 {
		return fmt.Errorf("test_duration_seconds must be positive, got %d", c.TestDurationSeconds)
	}
	if c.FileSizeMB <= 0 {
		return fmt.Errorf("file_size_mb must be positive, got %d", c.FileSizeMB)
	}
	if c.RandomBlockSize > c.FileSizeBytes() {
		return fmt.Errorf("random_block_size (%d) exceeds file_size (%d)", c.RandomBlockSize, c.FileSizeBytes())
	}
	return nil
}

// FileSizeBytes returns FileSizeMB expressed in bytes.
func (c BenchmarkConfig) FileSizeBytes() int64 {
	return c.FileSizeMB * MBytesPerMB
}

// TestResult is the outcome of one workload.
type TestResult struct {
	MinMbps     float64 `json:"min_mbps"`   // P5 of instantaneous samples
	MaxMbps     float64 `json:"max_mbps"`   // P95 of instantaneous samples
	AvgMbps     float64 `json:"avg_mbps"`   // arithmetic mean of instantaneous samples
	Duration    float64 `json:"duration_s"` // wall-clock seconds the workload ran
	SampleCount int     `json:"sample_count"`
}

// BenchmarkResults holds the five TestResult values keyed by workload. The
// map is always fully populated (five zero-value entries in the worst
// case); a workload that failed or produced zero samples is represented by
// its zero TestResult, not by a missing key.
type BenchmarkResults map[Workload]TestResult

// NewBenchmarkResults returns a BenchmarkResults with all five workloads
// present and zeroed.
func NewBenchmarkResults() BenchmarkResults {
	r := make(BenchmarkResults, len(Workloads))
	for _, w := range Workloads {
		r[w] = TestResult{}
	}
	return r
}

// DeviceClass is the coarse storage-device category reported by
// StorageDevice.
type DeviceClass string

const (
	DeviceFixed     DeviceClass = "fixed"
	DeviceRemovable DeviceClass = "removable"
	DeviceOptical   DeviceClass = "optical"
	DeviceNetwork   DeviceClass = "network"
	DeviceRAMDisk   DeviceClass = "ram-disk"
	DeviceUnknown   DeviceClass = "unknown"
)

// StorageDevice is one enumerated, mounted volume. Purely informational —
// the benchmark core never uses it to select or drive a test.
type StorageDevice struct {
	Name           string      `json:"name"`
	MountPoint     string      `json:"mount_point"`
	TotalBytes     uint64      `json:"total_bytes"`
	AvailableBytes uint64      `json:"available_bytes"`
	Class          DeviceClass `json:"class"`
}

// CLIExitCode is the process exit code a presentation layer built on this
// module should use for a given outcome, per spec.md §6. Defining the
// mapping here keeps it out of reach of rendering decisions while still
// giving a CLI wrapper (out of this module's scope) a single source of
// truth instead of reinventing it.
type CLIExitCode int

const (
	ExitSuccess           CLIExitCode = 0
	ExitConfigurationOrIO CLIExitCode = 1
	ExitPlatformError     CLIExitCode = 2
	ExitPermissionDenied  CLIExitCode = 3
	ExitInsufficientSpace CLIExitCode = 4
	ExitInterrupted       CLIExitCode = 5
)

package types

import "os"

// PlatformLayer is the abstraction over OS-specific storage operations
// (spec.md §4.A). Variants are selected at compile time (one concrete
// implementation per GOOS) so the interface carries no runtime dispatch
// cost into the measurement loop; it exists purely so tests can substitute
// a fault-injecting fake.
type PlatformLayer interface {
	// ListStorageDevices enumerates mounted volumes with capacity metadata.
	ListStorageDevices() ([]StorageDevice, error)

	// AppDataDir returns a writable per-user application directory,
	// creating it if missing.
	AppDataDir() (string, error)

	// CreateDirectIOFile creates or truncates path, preallocates size
	// bytes, and returns a handle configured to bypass the page cache
	// (best effort — see per-OS fallback rules in SPEC_FULL.md §4.A).
	CreateDirectIOFile(path string, size int64) (*os.File, error)

	// OpenDirectIOFile opens an existing path with the same cache-bypass
	// flag discipline as CreateDirectIOFile, without truncation.
	OpenDirectIOFile(path string, write bool) (*os.File, error)

	// SyncFileSystem issues the strongest reasonable durability barrier
	// available for path. Best-effort: implementations log failures and
	// never return a fatal error to the caller.
	SyncFileSystem(path string) error

	// SectorSize returns the logical sector size to use for buffer and
	// offset alignment on this platform (see SPEC_FULL.md §4.A).
	SectorSize() int

	// AvailableBytes reports the free space on the filesystem containing
	// path, for the orchestrator's preflight space check.
	AvailableBytes(path string) (int64, error)
}

// ProgressSink is the three-method contract a caller supplies to observe
// a running benchmark (spec.md §4.C). A nil sink is always acceptable —
// callers that don't want progress events pass Noop{}.
type ProgressSink interface {
	OnTestStart(workload Workload)
	OnProgress(workload Workload, currentMbps float64)
	OnTestComplete(workload Workload, result TestResult)
}

// Noop is a ProgressSink that discards every event.
type Noop struct{}

func (Noop) OnTestStart(Workload)                {}
func (Noop) OnProgress(Workload, float64)        {}
func (Noop) OnTestComplete(Workload, TestResult) {}

// ErrorSink receives the workload failures the orchestrator logs along the
// way without aborting the run. Platform fallback notices (such as the
// Linux O_DIRECT→O_SYNC fallback) are not delivered here; they go only to
// the logger. A nil ErrorSink means failures are only logged.
type ErrorSink interface {
	LogError(workload Workload, err error)
}

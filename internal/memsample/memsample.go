// Package memsample reports whether garbage collection ran during a
// workload, so the memory-copy runner's reported bandwidth can be flagged
// as GC-skewed instead of silently treated as a clean ceiling measurement.
package memsample

import "runtime"

// Snapshot is a point-in-time read of runtime.MemStats fields relevant to
// GC pressure during a benchmark run.
type Snapshot struct {
	NumGC         uint32
	HeapAlloc     uint64
	GCCPUFraction float64
}

// Take reads the current runtime memory stats.
func Take() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return Snapshot{
		NumGC:         m.NumGC,
		HeapAlloc:     m.HeapAlloc,
		GCCPUFraction: m.GCCPUFraction,
	}
}

// Delta summarizes the change between a before/after pair of Snapshots.
type Delta struct {
	// GCCycles is the number of completed GC cycles during the interval.
	GCCycles uint32

	// HeapGrowthBytes is the signed change in heap allocation.
	HeapGrowthBytes int64

	// GCSkewed reports whether at least one GC cycle ran during the
	// interval, meaning measured throughput may be depressed by GC work
	// rather than reflecting pure memory-copy bandwidth.
	GCSkewed bool
}

// Since computes the Delta from before to Take()'s result at call time.
func Since(before Snapshot) Delta {
	after := Take()
	return Compare(before, after)
}

// Compare computes the Delta between two Snapshots taken by the caller.
func Compare(before, after Snapshot) Delta {
	cycles := after.NumGC - before.NumGC
	return Delta{
		GCCycles:        cycles,
		HeapGrowthBytes: int64(after.HeapAlloc) - int64(before.HeapAlloc),
		GCSkewed:        cycles > 0,
	}
}

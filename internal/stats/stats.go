// Package stats implements the real-time throughput sampler and the
// finalizer that turns its samples into a pkg/types.TestResult.
package stats

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/diskcheck/diskcheck/pkg/types"
)

const sampleWindow = 100 * time.Millisecond

// RealTimeTracker accumulates bytes transferred and periodically converts
// the running total into an instantaneous MB/s sample. Safe for
// single-goroutine use by a workload runner; current_instant_mbps may be
// read concurrently by a progress reporter.
type RealTimeTracker struct {
	mu sync.Mutex

	start          time.Time
	lastSampleAt   time.Time
	bytesSinceLast int64
	samples        []float64
	currentInstant float64
}

// NewRealTimeTracker starts a tracker with start as the run's t0.
func NewRealTimeTracker(start time.Time) *RealTimeTracker {
	return &RealTimeTracker{start: start, lastSampleAt: start}
}

// RecordBytes adds n to the byte counter for the current sampling window.
func (t *RealTimeTracker) RecordBytes(n int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.bytesSinceLast += n
}

// MaybeSample emits a new instantaneous sample if at least sampleWindow
// has elapsed since the last one, returning true when it did.
func (t *RealTimeTracker) MaybeSample(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	elapsed := now.Sub(t.lastSampleAt)
	if elapsed < sampleWindow {
		return false
	}
	t.recordSampleLocked(now, elapsed)
	return true
}

// recordSampleLocked converts bytesSinceLast over elapsed into MB/s,
// appends it, and resets the window. Caller holds t.mu.
func (t *RealTimeTracker) recordSampleLocked(now time.Time, elapsed time.Duration) {
	mbps := (float64(t.bytesSinceLast) / elapsed.Seconds()) / float64(types.MBytesPerMB)
	t.samples = append(t.samples, mbps)
	t.currentInstant = mbps
	t.bytesSinceLast = 0
	t.lastSampleAt = now
}

// CurrentInstantMbps returns the most recently emitted sample, for the
// progress reporter.
func (t *RealTimeTracker) CurrentInstantMbps() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentInstant
}

// Finalize forces one last sample over whatever window remains, then
// computes mean/P5/P95 over all collected samples. now is the finalization
// timestamp used for both the forced sample and the reported duration. With
// no samples at all it returns the all-zero TestResult.
func (t *RealTimeTracker) Finalize(now time.Time) types.TestResult {
	t.mu.Lock()
	defer t.mu.Unlock()

	if elapsed := now.Sub(t.lastSampleAt); elapsed > 0 && t.bytesSinceLast > 0 {
		t.recordSampleLocked(now, elapsed)
	}

	duration := now.Sub(t.start).Seconds()
	if len(t.samples) == 0 {
		return types.TestResult{}
	}

	sorted := append([]float64(nil), t.samples...)
	sort.Float64s(sorted)

	return types.TestResult{
		MinMbps:     nearestRankPercentile(sorted, 0.05),
		MaxMbps:     nearestRankPercentile(sorted, 0.95),
		AvgMbps:     mean(sorted),
		Duration:    duration,
		SampleCount: len(sorted),
	}
}

// nearestRankPercentile returns the nearest-rank percentile p (0 < p < 1)
// of sorted, which must already be sorted ascending. index =
// ceil(p*n) - 1, clamped to [0, n-1].
func nearestRankPercentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	idx := int(math.Ceil(p*float64(n))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx > n-1 {
		idx = n - 1
	}
	return sorted[idx]
}

func mean(samples []float64) float64 {
	var sum float64
	for _, s := range samples {
		sum += s
	}
	return sum / float64(len(samples))
}

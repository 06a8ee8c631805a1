package stats

import (
	"testing"
	"time"
)

// injectSamples drives the private recordSampleLocked path by feeding
// bytes across fixed 100ms windows so each call yields exactly one known
// MB/s sample.
func injectSamples(t *RealTimeTracker, start time.Time, mbpsValues []float64) time.Time {
	now := start
	for _, mbps := range mbpsValues {
		now = now.Add(sampleWindow)
		bytes := int64(mbps * float64(1<<20) * sampleWindow.Seconds())
		t.RecordBytes(bytes)
		t.MaybeSample(now)
	}
	return now
}

func TestFinalizeWorkedExample(t *testing.T) {
	start := time.Unix(0, 0)
	tracker := NewRealTimeTracker(start)

	values := make([]float64, 20)
	for i := range values {
		values[i] = float64((i + 1) * 10)
	}
	now := injectSamples(tracker, start, values)

	result := tracker.Finalize(now)

	if result.SampleCount != 20 {
		t.Fatalf("SampleCount = %d, want 20", result.SampleCount)
	}
	if result.AvgMbps != 105 {
		t.Errorf("AvgMbps = %v, want 105", result.AvgMbps)
	}
	if result.MinMbps != 10 {
		t.Errorf("MinMbps (P5) = %v, want 10", result.MinMbps)
	}
	if result.MaxMbps != 190 {
		t.Errorf("MaxMbps (P95) = %v, want 190", result.MaxMbps)
	}
}

func TestFinalizeNoSamplesYieldsZeroResult(t *testing.T) {
	start := time.Unix(0, 0)
	tracker := NewRealTimeTracker(start)

	result := tracker.Finalize(start.Add(5 * time.Millisecond))

	if result.SampleCount != 0 {
		t.Errorf("SampleCount = %d, want 0", result.SampleCount)
	}
	if result.MinMbps != 0 || result.MaxMbps != 0 || result.AvgMbps != 0 {
		t.Errorf("expected all-zero rates, got %+v", result)
	}
}

func TestMaybeSampleRespectsWindow(t *testing.T) {
	start := time.Unix(0, 0)
	tracker := NewRealTimeTracker(start)
	tracker.RecordBytes(1 << 20)

	if tracker.MaybeSample(start.Add(50 * time.Millisecond)) {
		t.Fatal("expected no sample before the 100ms window elapses")
	}
	if !tracker.MaybeSample(start.Add(100 * time.Millisecond)) {
		t.Fatal("expected a sample once the window elapses")
	}
}

func TestCurrentInstantMbpsReflectsLastSample(t *testing.T) {
	start := time.Unix(0, 0)
	tracker := NewRealTimeTracker(start)

	if got := tracker.CurrentInstantMbps(); got != 0 {
		t.Fatalf("initial CurrentInstantMbps = %v, want 0", got)
	}

	tracker.RecordBytes(1 << 20) // 1 MiB over 100ms -> 10 MB/s
	tracker.MaybeSample(start.Add(sampleWindow))

	if got := tracker.CurrentInstantMbps(); got <= 0 {
		t.Fatalf("CurrentInstantMbps = %v, want > 0", got)
	}
}

func TestFinalizeForcesFinalPartialSample(t *testing.T) {
	start := time.Unix(0, 0)
	tracker := NewRealTimeTracker(start)

	// One full sampled window, then leftover bytes never crossing the
	// 100ms threshold on their own.
	now := injectSamples(tracker, start, []float64{50})
	tracker.RecordBytes(1 << 20)
	now = now.Add(30 * time.Millisecond)

	result := tracker.Finalize(now)

	if result.SampleCount != 2 {
		t.Fatalf("SampleCount = %d, want 2 (forced final sample included)", result.SampleCount)
	}
}

package metricsexport

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/diskcheck/diskcheck/pkg/types"
)

func TestObserveAllExposesGauges(t *testing.T) {
	e := New()
	results := types.NewBenchmarkResults()
	results[types.SequentialWrite] = types.TestResult{
		MinMbps: 10, MaxMbps: 190, AvgMbps: 105, Duration: 10.5, SampleCount: 20,
	}
	e.ObserveAll(results)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	for _, want := range []string{
		`diskcheck_min_mbps{workload="sequential_write"} 10`,
		`diskcheck_max_mbps{workload="sequential_write"} 190`,
		`diskcheck_avg_mbps{workload="sequential_write"} 105`,
		`diskcheck_sample_count{workload="sequential_write"} 20`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected metrics output to contain %q, got:\n%s", want, body)
		}
	}
}

func TestObserveFailureIncrementsCounter(t *testing.T) {
	e := New()
	e.ObserveFailure(types.RandomRead)
	e.ObserveFailure(types.RandomRead)

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	e.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	if !strings.Contains(body, `diskcheck_workload_failures_total{workload="random_read"} 2`) {
		t.Errorf("expected failure counter of 2, got:\n%s", body)
	}
}

// Package metricsexport exposes a completed pkg/types.BenchmarkResults as
// Prometheus gauges over HTTP. It is a pure consumer: nothing in the
// benchmark core imports this package, so wiring it in never affects the
// measurement path it reports on.
package metricsexport

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/diskcheck/diskcheck/pkg/types"
)

// Exporter holds a dedicated Prometheus registry populated from
// BenchmarkResults.
type Exporter struct {
	registry *prometheus.Registry

	minMbps         *prometheus.GaugeVec
	maxMbps         *prometheus.GaugeVec
	avgMbps         *prometheus.GaugeVec
	sampleCount     *prometheus.GaugeVec
	durationSeconds *prometheus.GaugeVec
	failures        *prometheus.CounterVec
}

// New creates an Exporter with its own registry (never the global default
// registry, so multiple Exporters in the same process don't collide).
func New() *Exporter {
	registry := prometheus.NewRegistry()

	e := &Exporter{
		registry: registry,
		minMbps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "diskcheck",
			Name:      "min_mbps",
			Help:      "P5 of instantaneous throughput samples, in megabytes per second.",
		}, []string{"workload"}),
		maxMbps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "diskcheck",
			Name:      "max_mbps",
			Help:      "P95 of instantaneous throughput samples, in megabytes per second.",
		}, []string{"workload"}),
		avgMbps: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "diskcheck",
			Name:      "avg_mbps",
			Help:      "Arithmetic mean of instantaneous throughput samples, in megabytes per second.",
		}, []string{"workload"}),
		sampleCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "diskcheck",
			Name:      "sample_count",
			Help:      "Number of instantaneous throughput samples collected.",
		}, []string{"workload"}),
		durationSeconds: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "diskcheck",
			Name:      "duration_seconds",
			Help:      "Wall-clock duration the workload ran for.",
		}, []string{"workload"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "diskcheck",
			Name:      "workload_failures_total",
			Help:      "Count of workloads that returned an error instead of a TestResult.",
		}, []string{"workload"}),
	}

	registry.MustRegister(e.minMbps, e.maxMbps, e.avgMbps, e.sampleCount, e.durationSeconds, e.failures)
	return e
}

// Observe records one workload's result.
func (e *Exporter) Observe(workload types.Workload, result types.TestResult) {
	labels := prometheus.Labels{"workload": string(workload)}
	e.minMbps.With(labels).Set(result.MinMbps)
	e.maxMbps.With(labels).Set(result.MaxMbps)
	e.avgMbps.With(labels).Set(result.AvgMbps)
	e.sampleCount.With(labels).Set(float64(result.SampleCount))
	e.durationSeconds.With(labels).Set(result.Duration)
}

// ObserveAll records every workload in results.
func (e *Exporter) ObserveAll(results types.BenchmarkResults) {
	for workload, result := range results {
		e.Observe(workload, result)
	}
}

// ObserveFailure increments the failure counter for workload.
func (e *Exporter) ObserveFailure(workload types.Workload) {
	e.failures.With(prometheus.Labels{"workload": string(workload)}).Inc()
}

// Handler returns the HTTP handler serving this Exporter's registry in
// Prometheus exposition format.
func (e *Exporter) Handler() http.Handler {
	return promhttp.HandlerFor(e.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

// Package reporter wraps a pkg/types.ProgressSink with thread-safe,
// throttled dispatch so a slow or chatty sink cannot perturb the workload
// loop it is observing.
package reporter

import (
	"sync"
	"time"

	"github.com/diskcheck/diskcheck/pkg/types"
)

const progressThrottle = 100 * time.Millisecond

// Reporter dispatches start/progress/complete events to an underlying
// sink. Progress events are coalesced to roughly one every 100ms per
// workload; start and complete events are always delivered.
type Reporter struct {
	sink types.ProgressSink

	mu       sync.Mutex
	lastSent map[types.Workload]time.Time
}

// New wraps sink. A nil sink is replaced with types.Noop{}.
func New(sink types.ProgressSink) *Reporter {
	if sink == nil {
		sink = types.Noop{}
	}
	return &Reporter{
		sink:     sink,
		lastSent: make(map[types.Workload]time.Time),
	}
}

// Start notifies the sink that workload has begun. Never throttled.
func (r *Reporter) Start(workload types.Workload) {
	r.sink.OnTestStart(workload)
}

// Progress notifies the sink of the current instantaneous throughput,
// coalescing calls within progressThrottle of the last delivered one for
// the same workload.
func (r *Reporter) Progress(workload types.Workload, currentMbps float64) {
	r.mu.Lock()
	last, ok := r.lastSent[workload]
	now := time.Now()
	if ok && now.Sub(last) < progressThrottle {
		r.mu.Unlock()
		return
	}
	r.lastSent[workload] = now
	r.mu.Unlock()

	r.sink.OnProgress(workload, currentMbps)
}

// Complete notifies the sink that workload has finished. Never throttled.
func (r *Reporter) Complete(workload types.Workload, result types.TestResult) {
	r.sink.OnTestComplete(workload, result)
}

// Package runners implements the five workload loops (spec.md §4.D): the
// shared duration-driven loop structure lives here in loop.go, one file
// per workload holds its per-unit-of-work specifics.
package runners

import (
	"context"
	"math/rand"
	"time"

	"github.com/diskcheck/diskcheck/internal/reporter"
	"github.com/diskcheck/diskcheck/internal/stats"
	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// stepFunc performs one unit of work and returns the number of bytes
// transferred. A non-nil error aborts the loop after this iteration's
// bytes are recorded.
type stepFunc func() (int64, error)

// runLoop drives stepFunc until duration elapses, ctx is canceled, or it
// returns an error, reporting start/progress/complete through rep and
// returning the finalized result. On a step error or cancellation, the
// result reflects samples collected up to that point and an error is
// returned alongside it.
func runLoop(ctx context.Context, workload types.Workload, duration time.Duration, rep *reporter.Reporter, step stepFunc) (types.TestResult, error) {
	start := time.Now()
	rep.Start(workload)

	tracker := stats.NewRealTimeTracker(start)
	deadline := start.Add(duration)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			result := tracker.Finalize(time.Now())
			rep.Complete(workload, result)
			return result, diskerr.TestInterrupted(ctx.Err().Error())
		default:
		}

		n, err := step()
		tracker.RecordBytes(n)
		if err != nil {
			result := tracker.Finalize(time.Now())
			rep.Complete(workload, result)
			return result, err
		}

		now := time.Now()
		if tracker.MaybeSample(now) {
			rep.Progress(workload, tracker.CurrentInstantMbps())
		}
	}

	result := tracker.Finalize(time.Now())
	rep.Complete(workload, result)
	return result, nil
}

// fillPattern writes a deterministic, non-zero byte sequence into buf so
// filesystems that special-case all-zero blocks (sparse-file detection,
// dedup) can't shortcut the I/O being measured.
func fillPattern(buf []byte) {
	for i := range buf {
		buf[i] = byte(i%251 + 1)
	}
}

// randomAlignedOffset picks a uniformly random offset in
// [0, fileSize-blockSize] that is a multiple of blockSize, as direct I/O
// requires. Returns 0 if blockSize >= fileSize.
func randomAlignedOffset(rng *rand.Rand, fileSize, blockSize int64) int64 {
	slots := (fileSize-blockSize)/blockSize + 1
	if slots <= 0 {
		return 0
	}
	return rng.Int63n(slots) * blockSize
}

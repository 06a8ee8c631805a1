package runners

import (
	"context"
	"time"

	"github.com/diskcheck/diskcheck/internal/memsample"
	"github.com/diskcheck/diskcheck/internal/reporter"
	"github.com/diskcheck/diskcheck/internal/utils"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// MemoryCopy copies between two file_size_mb buffers in
// sequential_block_size chunks for test_duration_seconds, as a
// memory-bandwidth ceiling to judge disk numbers against. It has no
// filesystem dependency, so it accepts no PlatformLayer or path and is
// always attempted regardless of earlier workload failures.
func MemoryCopy(ctx context.Context, cfg types.BenchmarkConfig, rep *reporter.Reporter, logger *utils.Logger) (types.TestResult, error) {
	size := cfg.FileSizeBytes()
	chunk := cfg.SequentialBlockSize

	src := make([]byte, size)
	dst := make([]byte, size)
	fillPattern(src)

	before := memsample.Take()

	var offset int64
	duration := time.Duration(cfg.TestDurationSeconds) * time.Second

	result, err := runLoop(ctx, types.MemoryCopy, duration, rep, func() (int64, error) {
		end := offset + chunk
		if end > size {
			end = size
		}
		n := copy(dst[offset:end], src[offset:end])
		offset += int64(n)
		if offset >= size {
			offset = 0
		}
		return int64(n), nil
	})

	if delta := memsample.Since(before); delta.GCSkewed {
		logger.Warn("memory copy: %d GC cycle(s) ran during the measurement; reported throughput may be depressed by GC work", delta.GCCycles)
	}

	return result, err
}

package runners

import (
	"context"
	"math/rand"
	"time"

	"github.com/diskcheck/diskcheck/internal/platform"
	"github.com/diskcheck/diskcheck/internal/reporter"
	"github.com/diskcheck/diskcheck/internal/utils"
	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// RandomRead is symmetric to RandomWrite: uniformly random,
// random_block_size-aligned reads across the file for
// test_duration_seconds.
func RandomRead(ctx context.Context, cfg types.BenchmarkConfig, plat types.PlatformLayer, rep *reporter.Reporter, logger *utils.Logger, path string) (types.TestResult, error) {
	blockSize := cfg.RandomBlockSize
	fileSize := cfg.FileSizeBytes()
	if blockSize > fileSize {
		return types.TestResult{}, diskerr.Configuration("random_block_size exceeds file_size_mb")
	}

	f, err := plat.OpenDirectIOFile(path, false)
	if err != nil {
		return types.TestResult{}, err
	}
	defer f.Close()

	buf := platform.AlignedBuffer(int(blockSize), plat.SectorSize())

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	duration := time.Duration(cfg.TestDurationSeconds) * time.Second

	return runLoop(ctx, types.RandomRead, duration, rep, func() (int64, error) {
		offset := randomAlignedOffset(rng, fileSize, blockSize)
		n, rerr := f.ReadAt(buf, offset)
		if rerr != nil {
			return int64(n), diskerr.IO(string(types.RandomRead), "read", rerr)
		}
		return int64(n), nil
	})
}

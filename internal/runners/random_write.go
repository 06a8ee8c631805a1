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

// RandomWrite issues uniformly random, random_block_size-aligned writes of
// patterned data across the file for test_duration_seconds.
func RandomWrite(ctx context.Context, cfg types.BenchmarkConfig, plat types.PlatformLayer, rep *reporter.Reporter, logger *utils.Logger, path string) (types.TestResult, error) {
	blockSize := cfg.RandomBlockSize
	fileSize := cfg.FileSizeBytes()
	if blockSize > fileSize {
		return types.TestResult{}, diskerr.Configuration("random_block_size exceeds file_size_mb")
	}

	f, err := plat.OpenDirectIOFile(path, true)
	if err != nil {
		return types.TestResult{}, err
	}
	defer f.Close()

	buf := platform.AlignedBuffer(int(blockSize), plat.SectorSize())
	fillPattern(buf)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	duration := time.Duration(cfg.TestDurationSeconds) * time.Second

	return runLoop(ctx, types.RandomWrite, duration, rep, func() (int64, error) {
		offset := randomAlignedOffset(rng, fileSize, blockSize)
		n, werr := f.WriteAt(buf, offset)
		if werr != nil {
			return int64(n), diskerr.IO(string(types.RandomWrite), "write", werr)
		}
		return int64(n), nil
	})
}

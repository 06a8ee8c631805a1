package runners

import (
	"context"
	"io"
	"time"

	"github.com/diskcheck/diskcheck/internal/platform"
	"github.com/diskcheck/diskcheck/internal/reporter"
	"github.com/diskcheck/diskcheck/internal/utils"
	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// SequentialRead reads path in sequential_block_size blocks, rewinding to
// offset 0 on EOF, for test_duration_seconds. path must already hold at
// least one full block (the orchestrator runs SequentialWrite first).
func SequentialRead(ctx context.Context, cfg types.BenchmarkConfig, plat types.PlatformLayer, rep *reporter.Reporter, logger *utils.Logger, path string) (types.TestResult, error) {
	blockSize := cfg.SequentialBlockSize
	fileSize := cfg.FileSizeBytes()
	if fileSize < blockSize {
		return types.TestResult{}, diskerr.Configuration("file is smaller than sequential_block_size")
	}

	f, err := plat.OpenDirectIOFile(path, false)
	if err != nil {
		return types.TestResult{}, err
	}
	defer f.Close()

	buf := platform.AlignedBuffer(int(blockSize), plat.SectorSize())

	var offset int64
	duration := time.Duration(cfg.TestDurationSeconds) * time.Second

	return runLoop(ctx, types.SequentialRead, duration, rep, func() (int64, error) {
		n, rerr := f.ReadAt(buf, offset)
		if rerr != nil && rerr != io.EOF {
			return int64(n), diskerr.IO(string(types.SequentialRead), "read", rerr)
		}
		offset += int64(n)
		if rerr == io.EOF || offset >= fileSize {
			offset = 0
		}
		return int64(n), nil
	})
}

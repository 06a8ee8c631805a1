package runners

import (
	"context"
	"time"

	"github.com/diskcheck/diskcheck/internal/platform"
	"github.com/diskcheck/diskcheck/internal/reporter"
	"github.com/diskcheck/diskcheck/internal/utils"
	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// SequentialWrite fills path with sequential_block_size writes of a
// deterministic pattern, wrapping back to offset 0 at file_size_mb, for
// test_duration_seconds. path must already exist and be sized to
// file_size_mb (the orchestrator creates it with CreateDirectIOFile).
func SequentialWrite(ctx context.Context, cfg types.BenchmarkConfig, plat types.PlatformLayer, rep *reporter.Reporter, logger *utils.Logger, path string) (types.TestResult, error) {
	f, err := plat.OpenDirectIOFile(path, true)
	if err != nil {
		return types.TestResult{}, err
	}
	defer f.Close()

	blockSize := cfg.SequentialBlockSize
	fileSize := cfg.FileSizeBytes()
	buf := platform.AlignedBuffer(int(blockSize), plat.SectorSize())
	fillPattern(buf)

	var offset int64
	duration := time.Duration(cfg.TestDurationSeconds) * time.Second

	result, err := runLoop(ctx, types.SequentialWrite, duration, rep, func() (int64, error) {
		if offset+blockSize > fileSize {
			offset = 0
		}
		n, werr := f.WriteAt(buf, offset)
		if werr != nil {
			return int64(n), diskerr.IO(string(types.SequentialWrite), "write", werr)
		}
		offset += int64(n)
		return int64(n), nil
	})
	if err != nil {
		return result, err
	}

	if serr := f.Sync(); serr != nil {
		logger.Warn("sequential write: flush %s: %v", path, serr)
	}
	if cfg.DisableOSCache {
		_ = plat.SyncFileSystem(path)
	}
	return result, nil
}

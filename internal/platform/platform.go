// Package platform implements pkg/types.PlatformLayer once per GOOS,
// selected entirely at compile time: platform_linux.go, platform_darwin.go,
// and platform_windows.go each carry a native build tag and are the only
// file built into a given binary. platform_fake.go carries no build tag
// and is always compiled, giving tests a fault-injecting double that runs
// on any host OS.
package platform

import (
	"unsafe"

	"github.com/diskcheck/diskcheck/internal/utils"
)

// defaultSectorSize is used by implementations that cannot query the
// filesystem's native sector size and need an alignment value anyway.
const defaultSectorSize = 4096

// Platform is the compile-time-selected pkg/types.PlatformLayer
// implementation. Its exported surface is built per GOOS; this file holds
// only what every variant shares. Each GOOS file constructs its own
// pkg/retry.Retryer for EINTR handling, since the retryable-errno check is
// itself platform-specific.
type Platform struct {
	logger *utils.Logger
}

// New returns the GOOS-appropriate Platform implementation, logging
// non-fatal fallback notices (O_DIRECT→O_SYNC, failed sync barriers)
// through logger.
func New(logger *utils.Logger) *Platform {
	if logger == nil {
		logger = utils.Default()
	}
	return &Platform{logger: logger}
}

// AlignedBuffer allocates a byte slice of exactly size bytes whose start
// address is aligned to alignment bytes, as O_DIRECT and
// FILE_FLAG_NO_BUFFERING both require. It over-allocates by alignment
// bytes and slices into the aligned offset, the same trick the
// harshavardhana-fio retrieval file's disk.AlignedBlock uses.
func AlignedBuffer(size, alignment int) []byte {
	if alignment <= 1 {
		return make([]byte, size)
	}
	buf := make([]byte, size+alignment)
	addr := uintptr(unsafe.Pointer(&buf[0]))
	offset := 0
	if rem := int(addr % uintptr(alignment)); rem != 0 {
		offset = alignment - rem
	}
	aligned := buf[offset : offset+size]
	return aligned[:size:size]
}

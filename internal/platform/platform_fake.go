package platform

import (
	"fmt"
	"os"
	"sync/atomic"

	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// Fake is a pkg/types.PlatformLayer double for tests that run on any host
// OS. Real files are created under a temp directory (so runners can
// actually read/write bytes); failures are injected on file opens by
// configuring FailAfterOpens. Reads and writes on an opened file are never
// failed by the Fake.
type Fake struct {
	Dir string

	// FailAfterOpens makes the (FailAfterOpens+1)th and every later
	// Create/OpenDirectIOFile call return Err, or an injected IO error when
	// Err is nil. Zero means never fail.
	FailAfterOpens int
	Err            error

	opens int32

	CacheBypassRequested bool
	SyncCalls            int32

	devices []types.StorageDevice

	// Available, if non-zero, is returned by AvailableBytes regardless of
	// the queried path. Zero means "report 1 TiB free" so a test that
	// doesn't care about the space check still passes preflight.
	Available int64
}

// NewFake creates a Fake rooted at dir.
func NewFake(dir string) *Fake {
	return &Fake{Dir: dir}
}

func (f *Fake) nextOpenShouldFail() bool {
	n := atomic.AddInt32(&f.opens, 1)
	return f.FailAfterOpens > 0 && int(n) > f.FailAfterOpens
}

// CreateDirectIOFile implements pkg/types.PlatformLayer.
func (f *Fake) CreateDirectIOFile(path string, size int64) (*os.File, error) {
	f.CacheBypassRequested = true
	if f.nextOpenShouldFail() {
		return nil, f.errOrDefault(path)
	}
	file, err := os.Create(path)
	if err != nil {
		return nil, diskerr.Platform(fmt.Sprintf("create %s", path), err)
	}
	if err := file.Truncate(size); err != nil {
		file.Close()
		return nil, diskerr.Platform(fmt.Sprintf("truncate %s", path), err)
	}
	return file, nil
}

// OpenDirectIOFile implements pkg/types.PlatformLayer.
func (f *Fake) OpenDirectIOFile(path string, write bool) (*os.File, error) {
	f.CacheBypassRequested = true
	if f.nextOpenShouldFail() {
		return nil, f.errOrDefault(path)
	}
	flags := os.O_RDONLY
	if write {
		flags = os.O_RDWR
	}
	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, diskerr.Platform(fmt.Sprintf("open %s", path), err)
	}
	return file, nil
}

func (f *Fake) errOrDefault(path string) error {
	if f.Err != nil {
		return f.Err
	}
	return diskerr.IO("", fmt.Sprintf("injected failure on %s", path), nil)
}

// SyncFileSystem implements pkg/types.PlatformLayer.
func (f *Fake) SyncFileSystem(path string) error {
	atomic.AddInt32(&f.SyncCalls, 1)
	return nil
}

// SectorSize implements pkg/types.PlatformLayer.
func (f *Fake) SectorSize() int {
	return defaultSectorSize
}

// AppDataDir implements pkg/types.PlatformLayer.
func (f *Fake) AppDataDir() (string, error) {
	dir := f.Dir + "/appdata"
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", diskerr.Platform("creating app data dir", err)
	}
	return dir, nil
}

// WithDevices configures the devices ListStorageDevices returns.
func (f *Fake) WithDevices(devices []types.StorageDevice) *Fake {
	f.devices = devices
	return f
}

// ListStorageDevices implements pkg/types.PlatformLayer.
func (f *Fake) ListStorageDevices() ([]types.StorageDevice, error) {
	return f.devices, nil
}

// AvailableBytes implements pkg/types.PlatformLayer.
func (f *Fake) AvailableBytes(path string) (int64, error) {
	if f.Available != 0 {
		return f.Available, nil
	}
	return 1 << 40, nil
}

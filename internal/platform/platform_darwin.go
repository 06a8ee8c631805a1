//go:build darwin

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"

	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/retry"
	"github.com/diskcheck/diskcheck/pkg/types"
)

var eintrRetryer = retry.New(retry.Config{
	MaxAttempts:  5,
	InitialDelay: time.Millisecond,
	MaxDelay:     10 * time.Millisecond,
	Multiplier:   2.0,
	ShouldRetry:  func(err error) bool { return errors.Is(err, unix.EINTR) },
})

// CreateDirectIOFile implements pkg/types.PlatformLayer.
func (p *Platform) CreateDirectIOFile(path string, size int64) (*os.File, error) {
	f, err := p.openNoCache(path, os.O_CREATE|os.O_TRUNC|os.O_RDWR)
	if err != nil {
		return nil, err
	}
	if err := f.Truncate(size); err != nil {
		p.logger.Warn("truncate %s: %v", path, err)
	}
	return f, nil
}

// OpenDirectIOFile implements pkg/types.PlatformLayer.
func (p *Platform) OpenDirectIOFile(path string, write bool) (*os.File, error) {
	flags := os.O_RDONLY
	if write {
		flags = os.O_RDWR
	}
	return p.openNoCache(path, flags)
}

func (p *Platform) openNoCache(path string, flags int) (*os.File, error) {
	var f *os.File
	err := eintrRetryer.Do(func() error {
		var openErr error
		f, openErr = os.OpenFile(path, flags, 0644)
		return openErr
	})
	if err != nil {
		if os.IsPermission(err) {
			return nil, diskerr.PermissionDenied(path, err)
		}
		return nil, diskerr.Platform(fmt.Sprintf("open %s", path), err)
	}
	if _, err := unix.FcntlInt(f.Fd(), unix.F_NOCACHE, 1); err != nil {
		p.logger.Warn("F_NOCACHE %s: %v", path, err)
	}
	return f, nil
}

// SyncFileSystem implements pkg/types.PlatformLayer.
func (p *Platform) SyncFileSystem(path string) error {
	f, err := os.Open(path)
	if err != nil {
		p.logger.Warn("open %s for sync: %v", path, err)
		return nil
	}
	defer f.Close()
	if _, err := unix.FcntlInt(f.Fd(), unix.F_FULLFSYNC, 0); err != nil {
		p.logger.Warn("F_FULLFSYNC %s: %v", path, err)
	}
	return nil
}

// SectorSize implements pkg/types.PlatformLayer.
func (p *Platform) SectorSize() int {
	return defaultSectorSize
}

// AppDataDir implements pkg/types.PlatformLayer.
func (p *Platform) AppDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", diskerr.Platform("resolving home directory", err)
	}
	dir := filepath.Join(home, "Library", "Application Support", "diskcheck")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", diskerr.Platform(fmt.Sprintf("creating %s", dir), err)
	}
	return dir, nil
}

// ListStorageDevices implements pkg/types.PlatformLayer.
func (p *Platform) ListStorageDevices() ([]types.StorageDevice, error) {
	return listStorageDevicesGopsutil(classifyDarwin)
}

func classifyDarwin(fstype, device string) types.DeviceClass {
	switch fstype {
	case "nfs", "smbfs", "afpfs":
		return types.DeviceNetwork
	case "cddafs", "cd9660", "udf":
		return types.DeviceOptical
	default:
		return types.DeviceFixed
	}
}

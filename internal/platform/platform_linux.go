//go:build linux

package platform

import (
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
	ShouldRetry:  func(err error) bool { return err == unix.EINTR },
})

// CreateDirectIOFile implements pkg/types.PlatformLayer.
func (p *Platform) CreateDirectIOFile(path string, size int64) (*os.File, error) {
	f, err := p.openDirect(path, unix.O_CREAT|unix.O_TRUNC|unix.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if err := unix.Fallocate(int(f.Fd()), 0, 0, size); err != nil {
		// Some filesystems (e.g. tmpfs) reject fallocate; the file still
		// works, just without preallocation.
		p.logger.Warn("fallocate %s: %v", path, err)
	}
	return f, nil
}

// OpenDirectIOFile implements pkg/types.PlatformLayer.
func (p *Platform) OpenDirectIOFile(path string, write bool) (*os.File, error) {
	flags := unix.O_RDONLY
	if write {
		flags = unix.O_RDWR
	}
	return p.openDirect(path, flags, 0644)
}

func (p *Platform) openDirect(path string, flags int, mode uint32) (*os.File, error) {
	var fd int
	err := p.retryerDo(func() error {
		var openErr error
		fd, openErr = unix.Open(path, flags|unix.O_DIRECT|unix.O_SYNC, mode)
		return openErr
	})
	if err == unix.EINVAL {
		p.logger.Warn("O_DIRECT rejected for %s, falling back to O_SYNC", path)
		err = p.retryerDo(func() error {
			var openErr error
			fd, openErr = unix.Open(path, flags|unix.O_SYNC, mode)
			return openErr
		})
	}
	if err == unix.EACCES || err == unix.EPERM {
		return nil, diskerr.PermissionDenied(path, err)
	}
	if err != nil {
		return nil, diskerr.Platform(fmt.Sprintf("open %s", path), err)
	}
	return os.NewFile(uintptr(fd), path), nil
}

func (p *Platform) retryerDo(fn func() error) error {
	var last error
	_ = eintrRetryer.Do(func() error {
		last = fn()
		return last
	})
	return last
}

// SyncFileSystem implements pkg/types.PlatformLayer.
func (p *Platform) SyncFileSystem(path string) error {
	f, err := os.Open(path)
	if err == nil {
		if err := unix.Fsync(int(f.Fd())); err != nil {
			p.logger.Warn("fsync %s: %v", path, err)
		}
		f.Close()
	} else {
		p.logger.Warn("open %s for sync: %v", path, err)
	}
	unix.Sync()
	return nil
}

// SectorSize implements pkg/types.PlatformLayer.
func (p *Platform) SectorSize() int {
	return defaultSectorSize
}

// AppDataDir implements pkg/types.PlatformLayer.
func (p *Platform) AppDataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", diskerr.Platform("resolving home directory", err)
		}
		base = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(base, "diskcheck")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", diskerr.Platform(fmt.Sprintf("creating %s", dir), err)
	}
	return dir, nil
}

// ListStorageDevices implements pkg/types.PlatformLayer.
func (p *Platform) ListStorageDevices() ([]types.StorageDevice, error) {
	return listStorageDevicesGopsutil(classifyLinux)
}

func classifyLinux(fstype, device string) types.DeviceClass {
	switch fstype {
	case "nfs", "nfs4", "cifs", "smb", "smbfs":
		return types.DeviceNetwork
	case "tmpfs", "ramfs":
		return types.DeviceRAMDisk
	case "iso9660", "udf":
		return types.DeviceOptical
	}
	if rotational, err := readRotational(device); err == nil {
		if rotational {
			return types.DeviceFixed
		}
	}
	return types.DeviceFixed
}

func readRotational(device string) (bool, error) {
	base := filepath.Base(device)
	data, err := os.ReadFile(filepath.Join("/sys/block", base, "queue", "rotational"))
	if err != nil {
		return false, err
	}
	return len(data) > 0 && data[0] == '1', nil
}

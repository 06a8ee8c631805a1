//go:build windows

package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/windows"

	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/retry"
	"github.com/diskcheck/diskcheck/pkg/types"
)

var eintrRetryer = retry.New(retry.Config{
	MaxAttempts:  5,
	InitialDelay: time.Millisecond,
	MaxDelay:     10 * time.Millisecond,
	Multiplier:   2.0,
	ShouldRetry:  func(err error) bool { return err == windows.WSAEINTR },
})

// CreateDirectIOFile implements pkg/types.PlatformLayer.
func (p *Platform) CreateDirectIOFile(path string, size int64) (*os.File, error) {
	f, err := p.openNoBuffering(path, windows.CREATE_ALWAYS)
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
	return p.openNoBuffering(path, windows.OPEN_EXISTING)
}

func (p *Platform) openNoBuffering(path string, creation uint32) (*os.File, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, diskerr.Platform(fmt.Sprintf("encoding path %s", path), err)
	}

	var handle windows.Handle
	retryErr := eintrRetryer.Do(func() error {
		var openErr error
		handle, openErr = windows.CreateFile(
			pathPtr,
			windows.GENERIC_READ|windows.GENERIC_WRITE,
			windows.FILE_SHARE_READ,
			nil,
			creation,
			windows.FILE_FLAG_NO_BUFFERING|windows.FILE_FLAG_WRITE_THROUGH,
			0,
		)
		return openErr
	})
	if retryErr != nil {
		if retryErr == windows.ERROR_ACCESS_DENIED {
			return nil, diskerr.PermissionDenied(path, retryErr)
		}
		return nil, diskerr.Platform(fmt.Sprintf("open %s", path), retryErr)
	}
	return os.NewFile(uintptr(handle), path), nil
}

// SyncFileSystem implements pkg/types.PlatformLayer.
func (p *Platform) SyncFileSystem(path string) error {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		p.logger.Warn("open %s for sync: %v", path, err)
		return nil
	}
	defer f.Close()
	if err := windows.FlushFileBuffers(windows.Handle(f.Fd())); err != nil {
		p.logger.Warn("FlushFileBuffers %s: %v", path, err)
	}
	return nil
}

// SectorSize implements pkg/types.PlatformLayer.
func (p *Platform) SectorSize() int {
	return defaultSectorSize
}

// AppDataDir implements pkg/types.PlatformLayer.
func (p *Platform) AppDataDir() (string, error) {
	base := os.Getenv("LOCALAPPDATA")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", diskerr.Platform("resolving home directory", err)
		}
		base = filepath.Join(home, "AppData", "Local")
	}
	dir := filepath.Join(base, "diskcheck")
	if err := os.MkdirAll(dir, 0750); err != nil {
		return "", diskerr.Platform(fmt.Sprintf("creating %s", dir), err)
	}
	return dir, nil
}

// ListStorageDevices implements pkg/types.PlatformLayer.
func (p *Platform) ListStorageDevices() ([]types.StorageDevice, error) {
	return listStorageDevicesGopsutil(classifyWindows)
}

func classifyWindows(fstype, device string) types.DeviceClass {
	devicePtr, err := windows.UTF16PtrFromString(device)
	if err != nil {
		return types.DeviceUnknown
	}
	switch windows.GetDriveType(devicePtr) {
	case windows.DRIVE_REMOVABLE:
		return types.DeviceRemovable
	case windows.DRIVE_CDROM:
		return types.DeviceOptical
	case windows.DRIVE_REMOTE:
		return types.DeviceNetwork
	case windows.DRIVE_RAMDISK:
		return types.DeviceRAMDisk
	case windows.DRIVE_FIXED:
		return types.DeviceFixed
	default:
		return types.DeviceUnknown
	}
}

package platform

import (
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/diskcheck/diskcheck/pkg/diskerr"
	"github.com/diskcheck/diskcheck/pkg/types"
)

// classifyFunc maps a partition's reported filesystem type and device path
// to a DeviceClass, using whatever OS-native hints that GOOS's file
// contributes on top of gopsutil's generic fstype/device strings.
type classifyFunc func(fstype, device string) types.DeviceClass

// listStorageDevicesGopsutil enumerates mounted, physical partitions via
// gopsutil/v3/disk, the same library newrelic-infrastructure-agent uses for
// cross-platform mount and capacity reporting.
func listStorageDevicesGopsutil(classify classifyFunc) ([]types.StorageDevice, error) {
	partitions, err := disk.Partitions(false)
	if err != nil {
		return nil, diskerr.Platform("enumerating storage volumes", err)
	}

	devices := make([]types.StorageDevice, 0, len(partitions))
	for _, part := range partitions {
		usage, err := disk.Usage(part.Mountpoint)
		if err != nil {
			continue
		}
		class := types.DeviceUnknown
		if classify != nil {
			class = classify(part.Fstype, part.Device)
		}
		devices = append(devices, types.StorageDevice{
			Name:           part.Device,
			MountPoint:     part.Mountpoint,
			TotalBytes:     usage.Total,
			AvailableBytes: usage.Free,
			Class:          class,
		})
	}
	return devices, nil
}

// AvailableBytes implements pkg/types.PlatformLayer for every GOOS variant,
// via the same gopsutil usage call used for enumeration.
func (p *Platform) AvailableBytes(path string) (int64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, diskerr.Platform("querying available space", err)
	}
	return int64(usage.Free), nil
}

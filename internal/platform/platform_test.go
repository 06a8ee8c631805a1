package platform

import (
	"testing"
	"unsafe"

	"github.com/diskcheck/diskcheck/pkg/types"
)

func TestAlignedBufferIsAligned(t *testing.T) {
	buf := AlignedBuffer(4096, 4096)
	if len(buf) != 4096 {
		t.Fatalf("len(buf) = %d, want 4096", len(buf))
	}
	addr := uintptr(unsafe.Pointer(&buf[0]))
	if addr%4096 != 0 {
		t.Errorf("buffer address %x is not 4096-byte aligned", addr)
	}
}

func TestAlignedBufferSmallAlignment(t *testing.T) {
	buf := AlignedBuffer(10, 0)
	if len(buf) != 10 {
		t.Fatalf("len(buf) = %d, want 10", len(buf))
	}
}

func TestFakeCreateAndOpen(t *testing.T) {
	dir := t.TempDir()
	fake := NewFake(dir)

	path := dir + "/testfile"
	f, err := fake.CreateDirectIOFile(path, 1024)
	if err != nil {
		t.Fatalf("CreateDirectIOFile: %v", err)
	}
	f.Close()
	if !fake.CacheBypassRequested {
		t.Error("expected CacheBypassRequested to be set")
	}

	f2, err := fake.OpenDirectIOFile(path, true)
	if err != nil {
		t.Fatalf("OpenDirectIOFile: %v", err)
	}
	f2.Close()
}

func TestFakeInjectsFailureAfterNOpens(t *testing.T) {
	dir := t.TempDir()
	fake := NewFake(dir)
	fake.FailAfterOpens = 2

	for i := 0; i < 2; i++ {
		f, err := fake.CreateDirectIOFile(dir+"/f", 1024)
		if err != nil {
			t.Fatalf("open %d: unexpected error %v", i, err)
		}
		f.Close()
	}

	if _, err := fake.CreateDirectIOFile(dir+"/f", 1024); err == nil {
		t.Fatal("expected the 3rd open to fail")
	}
}

func TestFakeAppDataDirCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	fake := NewFake(dir)
	got, err := fake.AppDataDir()
	if err != nil {
		t.Fatalf("AppDataDir: %v", err)
	}
	if got == "" {
		t.Fatal("expected a non-empty path")
	}
}

func TestFakeListStorageDevices(t *testing.T) {
	fake := NewFake(t.TempDir()).WithDevices([]types.StorageDevice{
		{Name: "disk0", MountPoint: "/", TotalBytes: 100, AvailableBytes: 50, Class: types.DeviceFixed},
	})
	devices, err := fake.ListStorageDevices()
	if err != nil {
		t.Fatalf("ListStorageDevices: %v", err)
	}
	if len(devices) != 1 {
		t.Fatalf("len(devices) = %d, want 1", len(devices))
	}
}

//go:build linux

package device

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// directFlag is O_DIRECT on Linux, where direct I/O bypasses the page
// cache and requires block-size-aligned buffers (spec.md §4.2 "Direct
// I/O").
const directFlag = unix.O_DIRECT

// geometry queries a block device's soft block size (BLKSSZGET) and
// total byte size (BLKGETSIZE64) via ioctl. Regular files (disk images,
// test fixtures) fall back to Stat with an assumed 512-byte block.
func geometry(f *os.File, path string) (blockSize, hardSectorSize, size int64, err error) {
	fi, statErr := f.Stat()
	if statErr != nil {
		return 0, 0, 0, fmt.Errorf("device: stat %s: %w", path, statErr)
	}

	if fi.Mode()&os.ModeDevice == 0 {
		return 512, 512, fi.Size(), nil
	}

	fd := int(f.Fd())

	ssz, err := unix.IoctlGetInt(fd, unix.BLKSSZGET)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("device: BLKSSZGET on %s: %w", path, err)
	}

	var devSize uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(unix.BLKGETSIZE64), uintptr(unsafe.Pointer(&devSize)))
	if errno != 0 {
		return 0, 0, 0, fmt.Errorf("device: BLKGETSIZE64 on %s: %w", path, errno)
	}

	return int64(ssz), int64(ssz), int64(devSize), nil
}

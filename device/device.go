// Package device implements the device handle opener (A2 in
// SPEC_FULL.md): it opens a path as a devctx.Handle, querying its soft
// block size and total byte size. The core itself never discovers or
// identifies devices (spec.md §1/§6) — this package is the thin,
// platform-specific edge that produces the Handle the core consumes.
package device

import (
	"fmt"
	"os"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/devctx"
)

// Info describes a successfully opened device (spec.md §6 "Device
// handle (in)").
type Info struct {
	Handle         devctx.Handle
	BlockSize      int64
	HardSectorSize int64
	Size           int64
}

// Open opens path in the given I/O mode and queries its geometry.
// Regular files (used by tests and by wiping a disk image) fall back
// to os.Stat for size and a 512-byte assumed block size.
func Open(path string, mode config.IOMode) (Info, error) {
	flag := os.O_RDWR
	if mode == config.Direct {
		flag |= directFlag
	}

	f, err := os.OpenFile(path, flag, 0)
	if err != nil {
		return Info{}, fmt.Errorf("device: opening %s: %w", path, err)
	}

	blockSize, hardSectorSize, size, err := geometry(f, path)
	if err != nil {
		_ = f.Close()
		return Info{}, err
	}

	return Info{
		Handle:         &fileHandle{f: f},
		BlockSize:      blockSize,
		HardSectorSize: hardSectorSize,
		Size:           size,
	}, nil
}

// fileHandle adapts *os.File to devctx.Handle.
type fileHandle struct {
	f *os.File
}

func (h *fileHandle) Read(p []byte) (int, error)  { return h.f.Read(p) }
func (h *fileHandle) Write(p []byte) (int, error) { return h.f.Write(p) }
func (h *fileHandle) Seek(offset int64, whence int) (int64, error) {
	return h.f.Seek(offset, whence)
}
func (h *fileHandle) Sync() error  { return h.f.Sync() }
func (h *fileHandle) Close() error { return h.f.Close() }

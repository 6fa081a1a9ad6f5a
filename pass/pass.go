package pass

import (
	"context"
	"fmt"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/prng"
	"github.com/wipecore/diskwipe/wipeerr"
)

// syncEveryBlocks converts the legacy "sync every S*device_block_size
// bytes" rate into "sync every K writes of io_blocksize bytes"
// (spec.md §4.2): K = max(1, S*device_block_size/io_blocksize).
func syncEveryBlocks(syncRate int, deviceBlockSize, ioBlockSize int64) int64 {
	if syncRate <= 0 || ioBlockSize <= 0 {
		return 0 // 0 disables periodic sync
	}
	k := (int64(syncRate) * deviceBlockSize) / ioBlockSize
	if k < 1 {
		k = 1
	}
	return k
}

// checkCancel polls both the context and the device context's
// cancellation token, matching the "poll between every I/O iteration
// and at every pass boundary" rule (spec.md §4.2/§5).
func checkCancel(ctx context.Context, dc *devctx.Context) bool {
	if dc.Cancelled() {
		return true
	}
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// rewind seeks to offset 0 and resets pass_done (spec.md §4.2
// "Positioning"). A seek failure or non-zero returned offset is
// fatal.
func rewind(dc *devctx.Context) error {
	off, err := dc.Handle.Seek(0, 0)
	if err != nil {
		return fmt.Errorf("pass: seek to 0 failed: %w: %w", wipeerr.ErrFatalIO, err)
	}
	if off != 0 {
		return fmt.Errorf("pass: seek to 0 returned offset %d: %w", off, wipeerr.ErrFatalIO)
	}
	dc.ResetPass()
	return nil
}

// skipForward attempts to advance the handle past missing bytes on a
// short read/write by a relative seek (spec.md §7 PartialIo). If the
// seek itself fails, the caller must escalate to FatalIo.
func skipForward(dc *devctx.Context, missing int64) error {
	if missing <= 0 {
		return nil
	}
	_, err := dc.Handle.Seek(missing, 1)
	if err != nil {
		return fmt.Errorf("pass: skip-forward seek failed: %w: %w", wipeerr.ErrFatalIO, err)
	}
	return nil
}

// flushEndOfPass issues the mandatory end-of-pass durability barrier.
// Any failure increments fsyncdata_errors and is fatal (spec.md
// §4.2 "Durability policy").
func flushEndOfPass(dc *devctx.Context) error {
	if err := dc.Handle.Sync(); err != nil {
		dc.AddFsyncdataErrors(1)
		dc.Logger.Warnf("fsyncdata failed on %s: %v", dc.DevicePath, err)
		return fmt.Errorf("pass: end-of-pass flush failed: %w: %w", wipeerr.ErrFlushFailure, err)
	}
	return nil
}

// periodicFlush issues the "every K writes" barrier for cached I/O.
func periodicFlush(dc *devctx.Context) error {
	if dc.IOMode != config.Cached {
		return nil
	}
	if err := dc.Handle.Sync(); err != nil {
		dc.AddFsyncdataErrors(1)
		dc.Logger.Warnf("periodic fsyncdata failed on %s: %v", dc.DevicePath, err)
		return fmt.Errorf("pass: periodic flush failed: %w: %w", wipeerr.ErrFlushFailure, err)
	}
	return nil
}

// freshSeed draws SEED_LEN entropy bytes for one random pass.
func freshSeed(src entropy.Source) ([]byte, error) {
	return entropy.Seed(src)
}

// generatorFactory constructs a Generator for a registry name and
// seed; it is a package-level seam so tests can substitute a
// misbehaving generator (e.g. the zero-output PRNG in the negative
// test from spec.md §8) without adding a test-only entry to the
// production PRNG registry.
var generatorFactory = prng.New

// newGenerator constructs a Generator for name/seed, wrapping any
// rejection as ErrSeed per spec.md §4.1.
func newGenerator(name string, seed []byte) (prng.Generator, error) {
	g, err := generatorFactory(name, seed)
	if err != nil {
		return nil, fmt.Errorf("pass: %w: %w", wipeerr.ErrSeed, err)
	}
	return g, nil
}

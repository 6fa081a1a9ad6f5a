package pass

import (
	"context"
	"fmt"

	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/wipeerr"
)

// RandomPass implements random_pass (spec.md §4.2.3): draws a fresh
// seed from src, seeds the configured PRNG, and writes its stream
// sequentially across the device. Returns the seed used, so the
// caller (the method orchestrator) can retain it for a matching
// random_verify.
func RandomPass(ctx context.Context, dc *devctx.Context, src entropy.Source) ([]byte, devctx.Result) {
	dc.SetPassType(devctx.PassWrite)

	if err := rewind(dc); err != nil {
		return nil, fatal(dc, err)
	}

	seed, err := freshSeed(src)
	if err != nil {
		return nil, fatal(dc, fmt.Errorf("pass: %w: %w", wipeerr.ErrFatalIO, err))
	}

	gen, err := newGenerator(dc.Options.PRNG, seed)
	if err != nil {
		return nil, fatal(dc, err)
	}

	ioBlock := IOBlockSize(dc.Size, dc.BlockSize)
	bufSize := BufferSize(ioBlock, 0)
	buf := AlignedBuffer(bufSize, Alignment(dc.BlockSize))
	// Zero-initialize so a PRNG bug cannot leak prior memory contents
	// onto the device (spec.md §4.2.3).
	for i := range buf {
		buf[i] = 0
	}

	syncEvery := syncEveryBlocks(dc.Options.SyncRate, dc.BlockSize, ioBlock)

	var remaining = dc.Size
	var writes int64
	first := true

	for remaining > 0 {
		if checkCancel(ctx, dc) {
			return seed, devctx.ResultCancelled
		}

		n := remaining
		if n > ioBlock {
			n = ioBlock
		}

		if _, err := gen.Read(buf[:n]); err != nil {
			return seed, fatal(dc, fmt.Errorf("pass: prng read failed: %w: %w", wipeerr.ErrFatalIO, err))
		}

		if first {
			first = false
			if !anyNonZero(buf[:n]) {
				return seed, fatal(dc, fmt.Errorf("pass: first PRNG block was entirely zero: %w", wipeerr.ErrFatalIO))
			}
		}

		written, err := dc.Handle.Write(buf[:n])
		if err != nil {
			return seed, fatal(dc, fmt.Errorf("pass: write failed: %w: %w", wipeerr.ErrFatalIO, err))
		}

		if int64(written) < n {
			missing := n - int64(written)
			dc.AddPassErrors(missing)
			if err := skipForward(dc, missing); err != nil {
				return seed, fatal(dc, err)
			}
		}

		dc.AddPassDone(int64(written))
		writes++

		if syncEvery > 0 && writes%syncEvery == 0 {
			if err := periodicFlush(dc); err != nil {
				return seed, fatal(dc, err)
			}
		}

		remaining -= n
	}

	if err := flushEndOfPass(dc); err != nil {
		return seed, fatal(dc, err)
	}

	return seed, devctx.ResultSuccess
}

// RandomVerify implements random_verify (spec.md §4.2.4): flushes,
// rewinds, re-seeds the PRNG with the exact seed a prior RandomPass
// used, then compares its regenerated stream against what is actually
// on the device.
func RandomVerify(ctx context.Context, dc *devctx.Context, seed []byte) devctx.Result {
	dc.SetPassType(devctx.PassVerify)

	if err := dc.Handle.Sync(); err != nil {
		dc.AddFsyncdataErrors(1)
		return fatal(dc, fmt.Errorf("pass: pre-verify flush failed: %w: %w", wipeerr.ErrFlushFailure, err))
	}
	if err := rewind(dc); err != nil {
		return fatal(dc, err)
	}

	gen, err := newGenerator(dc.Options.PRNG, seed)
	if err != nil {
		return fatal(dc, err)
	}

	ioBlock := IOBlockSize(dc.Size, dc.BlockSize)
	bufSize := BufferSize(ioBlock, 0)
	expected := AlignedBuffer(bufSize, Alignment(dc.BlockSize))
	readBuf := AlignedBuffer(ioBlock, Alignment(dc.BlockSize))

	var remaining = dc.Size

	for remaining > 0 {
		if checkCancel(ctx, dc) {
			return devctx.ResultCancelled
		}

		n := remaining
		if n > ioBlock {
			n = ioBlock
		}

		if _, err := gen.Read(expected[:n]); err != nil {
			return fatal(dc, fmt.Errorf("pass: prng read failed: %w: %w", wipeerr.ErrFatalIO, err))
		}

		read, err := dc.Handle.Read(readBuf[:n])
		if err != nil {
			return fatal(dc, fmt.Errorf("pass: read failed: %w: %w", wipeerr.ErrFatalIO, err))
		}

		if int64(read) < n {
			dc.AddVerifyErrors(1)
			missing := n - int64(read)
			if err := skipForward(dc, missing); err != nil {
				return fatal(dc, err)
			}
		} else if !bytesEqual(readBuf[:read], expected[:read]) {
			dc.AddVerifyErrors(1)
		}

		dc.AddPassDone(int64(read))
		remaining -= n
	}

	return devctx.ResultSuccess
}

func anyNonZero(buf []byte) bool {
	for _, b := range buf {
		if b != 0 {
			return true
		}
	}
	return false
}

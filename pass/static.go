package pass

import (
	"context"
	"errors"
	"fmt"

	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/wipeerr"
)

// StaticPass implements static_pass (spec.md §4.2.1): fills a scratch
// buffer by tiling pattern, then writes io_blocksize-sized chunks
// starting at a rotating window offset w, sequentially from offset 0
// to device_size.
func StaticPass(ctx context.Context, dc *devctx.Context, pattern []byte) devctx.Result {
	if len(pattern) == 0 {
		dc.Logger.Errorf("static_pass on %s: empty pattern", dc.DevicePath)
		dc.SetResult(devctx.ResultSanity)
		return devctx.ResultSanity
	}

	dc.SetPassType(devctx.PassWrite)

	if err := rewind(dc); err != nil {
		return fatal(dc, err)
	}

	ioBlock := IOBlockSize(dc.Size, dc.BlockSize)
	bufSize := BufferSize(ioBlock, len(pattern))
	buf := AlignedBuffer(bufSize, Alignment(dc.BlockSize))
	tile(buf, pattern)

	syncEvery := syncEveryBlocks(dc.Options.SyncRate, dc.BlockSize, ioBlock)

	var remaining = dc.Size
	var w int64 // window offset into buf, always < len(pattern)
	var writes int64

	for remaining > 0 {
		if checkCancel(ctx, dc) {
			return devctx.ResultCancelled
		}

		n := remaining
		if n > ioBlock {
			n = ioBlock
		}

		written, err := dc.Handle.Write(buf[w : w+n])
		if err != nil {
			dc.Logger.Errorf("write failed on %s: %v", dc.DevicePath, err)
			return fatal(dc, fmt.Errorf("pass: write failed: %w: %w", wipeerr.ErrFatalIO, err))
		}

		if int64(written) < n {
			missing := n - int64(written)
			dc.AddPassErrors(missing)
			if err := skipForward(dc, missing); err != nil {
				return fatal(dc, err)
			}
		}

		dc.AddPassDone(int64(written))
		w = (w + int64(written)) % int64(len(pattern))
		writes++

		if syncEvery > 0 && writes%syncEvery == 0 {
			if err := periodicFlush(dc); err != nil {
				return fatal(dc, err)
			}
		}

		remaining -= n
	}

	if err := flushEndOfPass(dc); err != nil {
		return fatal(dc, err)
	}

	return devctx.ResultSuccess
}

// StaticVerify implements static_verify (spec.md §4.2.2): pre-flushes,
// rewinds, then reads io_blocksize-sized chunks and compares
// byte-for-byte against the same tiled pattern window the writer used.
func StaticVerify(ctx context.Context, dc *devctx.Context, pattern []byte) devctx.Result {
	if len(pattern) == 0 {
		dc.SetResult(devctx.ResultSanity)
		return devctx.ResultSanity
	}

	dc.SetPassType(devctx.PassVerify)

	if err := dc.Handle.Sync(); err != nil {
		dc.AddFsyncdataErrors(1)
		return fatal(dc, fmt.Errorf("pass: pre-verify flush failed: %w: %w", wipeerr.ErrFlushFailure, err))
	}
	if err := rewind(dc); err != nil {
		return fatal(dc, err)
	}

	ioBlock := IOBlockSize(dc.Size, dc.BlockSize)
	bufSize := BufferSize(ioBlock, len(pattern))
	expected := AlignedBuffer(bufSize, Alignment(dc.BlockSize))
	tile(expected, pattern)
	readBuf := AlignedBuffer(ioBlock, Alignment(dc.BlockSize))

	var remaining = dc.Size
	var w int64

	for remaining > 0 {
		if checkCancel(ctx, dc) {
			return devctx.ResultCancelled
		}

		n := remaining
		if n > ioBlock {
			n = ioBlock
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
		} else if !bytesEqual(readBuf[:read], expected[w:w+int64(read)]) {
			dc.AddVerifyErrors(1)
		}

		dc.AddPassDone(int64(read))
		w = (w + int64(read)) % int64(len(pattern))
		remaining -= n
	}

	return devctx.ResultSuccess
}

// tile fills buf by repeating pattern across its full length.
func tile(buf, pattern []byte) {
	for i := 0; i < len(buf); i += len(pattern) {
		n := copy(buf[i:], pattern)
		_ = n
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func fatal(dc *devctx.Context, err error) devctx.Result {
	var result devctx.Result
	switch {
	case errors.Is(err, wipeerr.ErrFlushFailure):
		result = devctx.ResultFlushFailure
	case errors.Is(err, wipeerr.ErrSanity):
		result = devctx.ResultSanity
	default:
		result = devctx.ResultFatalIO
	}
	dc.SetResult(result)
	dc.Logger.Errorf("%v", err)
	return result
}

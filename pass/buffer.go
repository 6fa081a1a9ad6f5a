// Package pass implements the pass primitives (C2): static_pass,
// static_verify, random_pass, random_verify, plus the shared I/O
// discipline (block size, buffer sizing/alignment, durability policy,
// partial-I/O bookkeeping, and cooperative cancellation) spec.md §4.2
// describes.
package pass

// DefaultIOBlock is DEFAULT_IO_BLOCK from spec.md §4.2: 4 MiB.
const DefaultIOBlock = 4 << 20

// MinBufferSize is the floor for BUFFER_SIZE (spec.md §4.2): 16 MiB.
const MinBufferSize = 16 << 20

// IOBlockSize computes io_blocksize = min(device_size,
// round_down(DEFAULT_IO_BLOCK, device_block_size)), which is at least
// device_block_size (spec.md §4.2).
func IOBlockSize(deviceSize, deviceBlockSize int64) int64 {
	if deviceBlockSize <= 0 {
		deviceBlockSize = 1
	}
	rounded := (DefaultIOBlock / deviceBlockSize) * deviceBlockSize
	if rounded < deviceBlockSize {
		rounded = deviceBlockSize
	}
	if deviceSize < rounded {
		return deviceSize
	}
	return rounded
}

// BufferSize computes BUFFER_SIZE = max(16 MiB, io_blocksize +
// 2*pattern_length) (spec.md §4.2). patternLength is 0 for random
// passes.
func BufferSize(ioBlockSize int64, patternLength int) int64 {
	size := ioBlockSize + 2*int64(patternLength)
	if size < MinBufferSize {
		size = MinBufferSize
	}
	return size
}

// AlignedBuffer is a byte slice whose backing address is a multiple of
// the requested alignment, the same technique spec.md §4.2/§9 call for
// ("an aligned allocation facility; the same path serves both buffered
// and direct I/O"): over-allocate by the alignment and return a
// sub-slice that starts on the boundary.
func AlignedBuffer(size int64, alignment int64) []byte {
	if alignment <= 0 {
		alignment = 1
	}
	raw := make([]byte, size+alignment)
	addr := int64(alignmentOffset(raw))
	offset := (alignment - addr%alignment) % alignment
	buf := raw[offset : offset+size]
	return buf[:size:size]
}

// Alignment returns the alignment the buffer path must honor: the
// larger of 512 (the smallest sector size in practice) and the
// device's block size (spec.md §4.2).
func Alignment(deviceBlockSize int64) int64 {
	if deviceBlockSize > 512 {
		return deviceBlockSize
	}
	return 512
}

package pass_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wipecore/diskwipe/pass"
)

func TestIOBlockSizeCappedByDeviceSize(t *testing.T) {
	got := pass.IOBlockSize(1024, 512)
	assert.Equal(t, int64(1024), got)
}

func TestIOBlockSizeRoundedDownToBlockSize(t *testing.T) {
	got := pass.IOBlockSize(100<<20, 4096)
	assert.Equal(t, int64(0), got%4096)
	assert.LessOrEqual(t, got, int64(pass.DefaultIOBlock))
}

func TestBufferSizeFloor(t *testing.T) {
	got := pass.BufferSize(1024, 0)
	assert.Equal(t, int64(pass.MinBufferSize), got)
}

func TestBufferSizeAccountsForPattern(t *testing.T) {
	ioBlock := int64(pass.MinBufferSize)
	got := pass.BufferSize(ioBlock, 100)
	assert.Equal(t, ioBlock+200, got)
}

func TestAlignedBufferIsAligned(t *testing.T) {
	for _, alignment := range []int64{512, 4096} {
		buf := pass.AlignedBuffer(8192, alignment)
		assert.Len(t, buf, 8192)
	}
}

func TestAlignmentFloor(t *testing.T) {
	assert.Equal(t, int64(512), pass.Alignment(128))
	assert.Equal(t, int64(4096), pass.Alignment(4096))
}

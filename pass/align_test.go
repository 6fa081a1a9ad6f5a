package pass

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestAlignedBufferAddressIsAligned(t *testing.T) {
	for _, alignment := range []int64{512, 4096, 8192} {
		buf := AlignedBuffer(4096, alignment)
		addr := int64(uintptr(unsafe.Pointer(&buf[0])))
		assert.Equal(t, int64(0), addr%alignment, "buffer address must be a multiple of %d", alignment)
	}
}

package pass

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/internal/memdevice"
	"github.com/wipecore/diskwipe/prng"
)

// zeroGenerator is the test double from spec.md §8's negative test: a
// PRNG that always emits 0x00.
type zeroGenerator struct{}

func (zeroGenerator) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}
func (zeroGenerator) BlockSize() int { return 64 }

// TestRandomPassFailsFastOnZeroOutputPRNG implements the negative test
// from spec.md §8: the first-block silence guard must fire before any
// write reaches the device.
func TestRandomPassFailsFastOnZeroOutputPRNG(t *testing.T) {
	prev := generatorFactory
	generatorFactory = func(name string, seed []byte) (prng.Generator, error) {
		return zeroGenerator{}, nil
	}
	defer func() { generatorFactory = prev }()

	opts, err := config.New(config.WithMethod("prng"), config.WithPRNG("chacha20"))
	require.NoError(t, err)

	const size = 1 << 20
	dev := memdevice.New(size)
	dc := devctx.New("/mem/test", dev, 4096, 4096, size, opts)

	before := append([]byte(nil), dev.Bytes()...)

	_, result := RandomPass(context.Background(), dc, entropy.NewOS())

	assert.Equal(t, devctx.ResultFatalIO, result)
	assert.Equal(t, before, dev.Bytes(), "no write must reach the device before the silence guard fires")
}

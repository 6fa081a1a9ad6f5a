package entropy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipecore/diskwipe/entropy"
)

func TestOSReadReturnsExactLength(t *testing.T) {
	src := entropy.NewOS()
	buf, err := src.Read(37)
	require.NoError(t, err)
	assert.Len(t, buf, 37)
}

func TestOSReadRejectsNonPositiveLength(t *testing.T) {
	src := entropy.NewOS()
	_, err := src.Read(0)
	assert.Error(t, err)
}

func TestSeedUsesSeedLen(t *testing.T) {
	src := entropy.NewOS()
	seed, err := entropy.Seed(src)
	require.NoError(t, err)
	assert.Len(t, seed, entropy.SeedLen)
}

func TestTwoReadsAreNotIdentical(t *testing.T) {
	src := entropy.NewOS()
	a, err := src.Read(64)
	require.NoError(t, err)
	b, err := src.Read(64)
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "two independent OS reads should not collide")
}

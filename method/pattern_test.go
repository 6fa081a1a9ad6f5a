package method_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wipecore/diskwipe/method"
)

func TestStaticPatternCopiesInput(t *testing.T) {
	b := []byte{1, 2, 3}
	p := method.StaticPattern(b)
	b[0] = 99
	assert.Equal(t, byte(1), p.Static[0], "StaticPattern must copy, not alias, its input")
}

func TestRandomPatternIsRandom(t *testing.T) {
	assert.True(t, method.RandomPattern.IsRandom())
	assert.False(t, method.StaticPattern([]byte{0}).IsRandom())
}

func TestComplementFlipsEveryBit(t *testing.T) {
	p := method.StaticPattern([]byte{0x00, 0xFF, 0x55})
	c := method.Complement(p)
	assert.Equal(t, []byte{0xFF, 0x00, 0xAA}, c.Static)
}

package prng

import "encoding/binary"

func init() {
	register(Descriptor{
		Name:  "xoroshiro256",
		Label: "Xoroshiro256**",
		New:   newXoroshiro256,
	})
}

// xoroshiro256 implements Blackman & Vigna's xoshiro256** generator
// (commonly called xoroshiro256 in the wild), producing a 32-byte
// natural block (four 64-bit words per Read).
type xoroshiro256 struct {
	s [4]uint64
}

func newXoroshiro256(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("xoroshiro256", errEmptySeed)
	}
	x := &xoroshiro256{}
	words := expandSeedWords64(seed, 4)
	copy(x.s[:], words)
	if x.s == [4]uint64{} {
		x.s[0] = 1
	}
	return NewAdapt(x), nil
}

func (x *xoroshiro256) blockSize() int { return 32 }

func rotl64(v uint64, k uint) uint64 { return (v << k) | (v >> (64 - k)) }

func (x *xoroshiro256) next() uint64 {
	result := rotl64(x.s[1]*5, 7) * 9

	t := x.s[1] << 17

	x.s[2] ^= x.s[0]
	x.s[3] ^= x.s[1]
	x.s[1] ^= x.s[2]
	x.s[0] ^= x.s[3]

	x.s[2] ^= t

	x.s[3] = rotl64(x.s[3], 45)

	return result
}

func (x *xoroshiro256) nextBlock(out []byte) error {
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(out[i*8:], x.next())
	}
	return nil
}

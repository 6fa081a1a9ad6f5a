package prng

import "encoding/binary"

func init() {
	register(Descriptor{
		Name:  "twister",
		Label: "Mersenne Twister (MT19937)",
		New:   newTwister,
	})
}

const (
	mtN         = 624
	mtM         = 397
	mtMatrixA   = 0x9908b0df
	mtUpperMask = 0x80000000
	mtLowerMask = 0x7fffffff
)

// twister implements MT19937, seeded deterministically from the
// caller-provided seed via the standard Knuth initialization, then
// re-stirred with the expanded seed words (the "init_by_array"
// variant), so the full seed — not just its first 4 bytes —
// influences the initial state.
type twister struct {
	state [mtN]uint32
	index int
}

func newTwister(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("twister", errEmptySeed)
	}
	t := &twister{}
	t.seedByArray(expandSeedWords32(seed, len(seed)/4+1))
	return NewAdapt(t), nil
}

func (t *twister) blockSize() int { return 4 }

func (t *twister) nextBlock(out []byte) error {
	if t.index >= mtN {
		t.twist()
	}
	y := t.state[t.index]
	y ^= y >> 11
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	y ^= y >> 18
	t.index++
	binary.LittleEndian.PutUint32(out, y)
	return nil
}

func (t *twister) seedWithUint32(s uint32) {
	t.state[0] = s
	for i := 1; i < mtN; i++ {
		prev := t.state[i-1]
		t.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	t.index = mtN
}

func (t *twister) seedByArray(key []uint32) {
	t.seedWithUint32(19650218)
	i, j := 1, 0
	k := mtN
	if len(key) > k {
		k = len(key)
	}
	for ; k > 0; k-- {
		prev := t.state[i-1]
		t.state[i] = (t.state[i] ^ ((prev ^ (prev >> 30)) * 1664525)) + key[j] + uint32(j)
		i++
		j++
		if i >= mtN {
			t.state[0] = t.state[mtN-1]
			i = 1
		}
		if j >= len(key) {
			j = 0
		}
	}
	for k = mtN - 1; k > 0; k-- {
		prev := t.state[i-1]
		t.state[i] = (t.state[i] ^ ((prev ^ (prev >> 30)) * 1566083941)) - uint32(i)
		i++
		if i >= mtN {
			t.state[0] = t.state[mtN-1]
			i = 1
		}
	}
	t.state[0] = 0x80000000
	t.index = mtN
}

func (t *twister) twist() {
	for i := 0; i < mtN; i++ {
		x := (t.state[i] & mtUpperMask) | (t.state[(i+1)%mtN] & mtLowerMask)
		xA := x >> 1
		if x&1 != 0 {
			xA ^= mtMatrixA
		}
		t.state[i] = t.state[(i+mtM)%mtN] ^ xA
	}
	t.index = 0
}

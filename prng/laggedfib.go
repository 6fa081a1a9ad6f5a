package prng

import "encoding/binary"

func init() {
	register(Descriptor{
		Name:  "add_lagg_fib",
		Label: "Additive Lagged-Fibonacci",
		New:   newLaggedFib,
	})
}

// Classic Knuth additive lagged-Fibonacci lags: x[i] = x[i-24] + x[i-55]
// mod 2^32.
const (
	lagShort = 24
	lagLong  = 55
)

// laggedFib implements an additive lagged-Fibonacci generator with a
// 32-byte natural block (eight 32-bit words per Read), honoring the
// alignment requirement spec.md §4.1 calls out for this family.
type laggedFib struct {
	lags [lagLong]uint32
	idx  int
}

func newLaggedFib(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("add_lagg_fib", errEmptySeed)
	}
	lf := &laggedFib{}
	words := expandSeedWords32(seed, lagLong)
	copy(lf.lags[:], words)
	// Guard against an all-zero lag table, which would make the
	// generator degenerate (every subsequent word also zero).
	nonZero := false
	for _, w := range lf.lags {
		if w != 0 {
			nonZero = true
			break
		}
	}
	if !nonZero {
		lf.lags[0] = 1
	}
	return NewAdapt(lf), nil
}

func (lf *laggedFib) blockSize() int { return 32 }

func (lf *laggedFib) nextBlock(out []byte) error {
	for i := 0; i < 8; i++ {
		short := lf.lags[(lf.idx+lagLong-lagShort)%lagLong]
		long := lf.lags[lf.idx%lagLong]
		next := short + long
		lf.lags[lf.idx%lagLong] = next
		lf.idx++
		binary.LittleEndian.PutUint32(out[i*4:], next)
	}
	return nil
}

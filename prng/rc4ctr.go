package prng

import (
	"crypto/rc4"
	"encoding/binary"
	"fmt"
)

func init() {
	register(Descriptor{
		Name:  "rc4",
		Label: "RC4 (counter mode, 4096-byte block)",
		New:   newRC4CTR,
	})
}

// rc4BlockSize matches DEFAULT_IO_BLOCK's natural alignment for this
// family (spec.md §4.1: "RC4 block 4096").
const rc4BlockSize = 4096

// rc4swapRounds is the number of copies of base key || 64-bit block
// counter concatenated into each 4096-byte block's RC4 key (8).
const rc4swapRounds = 8

// rc4KeyLen is the base key length; rc4swapRounds*(rc4KeyLen+8) is
// 256 bytes, the longest key crypto/rc4 accepts.
const rc4KeyLen = 24

// rc4ctr wraps crypto/rc4 in counter mode: a fresh cipher.Stream is
// keyed before every 4096-byte block from the base key and a
// monotonically increasing 64-bit counter, then 3072 bytes are dropped
// (RC4-drop-3072) before any output is used, avoiding RC4's well-known
// initial-byte bias. The counter reaches the S-box only through the
// standard RC4 key schedule; no separate swap rounds are applied.
type rc4ctr struct {
	key     []byte
	counter uint64
}

func newRC4CTR(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("rc4", errEmptySeed)
	}
	r := &rc4ctr{key: expandSeed(seed, rc4KeyLen)}
	return NewAdapt(r), nil
}

func (r *rc4ctr) blockSize() int { return rc4BlockSize }

func (r *rc4ctr) nextBlock(out []byte) error {
	cipher, err := r.keyForCounter(r.counter)
	if err != nil {
		return err
	}
	r.counter++

	// RC4-drop-3072: discard the first 3072 keystream bytes.
	drop := make([]byte, 3072)
	cipher.XORKeyStream(drop, drop)

	for i := range out {
		out[i] = 0
	}
	cipher.XORKeyStream(out, out)
	return nil
}

// keyForCounter derives a per-block RC4 cipher whose key is
// rc4swapRounds concatenated copies of the base key followed by the
// big-endian counter. The S-box is built by crypto/rc4's ordinary key
// schedule alone; it is not permuted any further.
func (r *rc4ctr) keyForCounter(counter uint64) (*rc4.Cipher, error) {
	var ctrBytes [8]byte
	binary.BigEndian.PutUint64(ctrBytes[:], counter)

	keyed := make([]byte, 0, len(r.key)+8*rc4swapRounds)
	for round := 0; round < rc4swapRounds; round++ {
		keyed = append(keyed, r.key...)
		keyed = append(keyed, ctrBytes[:]...)
	}

	cipher, err := rc4.NewCipher(keyed)
	if err != nil {
		return nil, fmt.Errorf("rc4ctr: rekey failed: %w", err)
	}
	return cipher, nil
}

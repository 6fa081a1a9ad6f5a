package prng

import (
	"golang.org/x/crypto/chacha20"
)

func init() {
	register(Descriptor{Name: "chacha20", Label: "ChaCha20", New: newChaCha20})
}

// chacha20BlockSize is one ChaCha20 keystream block.
const chacha20BlockSize = 64

// chacha20Gen wraps golang.org/x/crypto/chacha20 as a counter-mode
// PRNG. Key and nonce are derived deterministically from the caller's
// seed (expandSeed), unlike the teacher's sixafter/prng-chacha reader,
// which self-seeds from crypto/rand on every rekey — that self-seeding
// is exactly what random_verify (spec.md §4.2.4) cannot tolerate, since
// verification must reproduce the identical stream from the recorded
// seed.
type chacha20Gen struct {
	stream *chacha20.Cipher
	zero   [chacha20BlockSize]byte
}

func newChaCha20(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("chacha20", errEmptySeed)
	}
	material := expandSeed(seed, chacha20.KeySize+chacha20.NonceSize)
	key := material[:chacha20.KeySize]
	nonce := material[chacha20.KeySize:]

	stream, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, seedError("chacha20", err)
	}
	return NewAdapt(&chacha20Gen{stream: stream}), nil
}

func (c *chacha20Gen) blockSize() int { return chacha20BlockSize }

func (c *chacha20Gen) nextBlock(out []byte) error {
	c.stream.XORKeyStream(out, c.zero[:])
	return nil
}

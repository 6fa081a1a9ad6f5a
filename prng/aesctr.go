package prng

import (
	"crypto/aes"
	"crypto/cipher"
)

func init() {
	register(Descriptor{
		Name:  "aes_ctr",
		Label: "AES-256-CTR DRBG",
		New:   newAESCTR,
	})
}

const aesCTRBlockSize = aes.BlockSize // 16 bytes

// aesCTR is modeled directly on the teacher's AES-CTR-DRBG
// (_examples/sixafter-nanoid/x/crypto/ctrdrbg/aes_ctr_drbg.go): an
// AES-256 cipher.Block plus a 128-bit big-endian counter incremented
// once per block and encrypted to produce keystream. The teacher seeds
// from crypto/rand on construction and asynchronously rekeys after a
// byte threshold; this generator instead derives its key and initial
// counter deterministically from the caller's seed (expandSeed) and
// never rekeys mid-pass, since a random_verify must replay the exact
// same keystream a prior random_pass produced.
type aesCTR struct {
	block cipher.Block
	v     [16]byte
}

func newAESCTR(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("aes_ctr", errEmptySeed)
	}
	material := expandSeed(seed, 32+16)
	block, err := aes.NewCipher(material[:32])
	if err != nil {
		return nil, seedError("aes_ctr", err)
	}
	a := &aesCTR{block: block}
	copy(a.v[:], material[32:])
	return NewAdapt(a), nil
}

func (a *aesCTR) blockSize() int { return aesCTRBlockSize }

func (a *aesCTR) nextBlock(out []byte) error {
	incCounter(&a.v)
	a.block.Encrypt(out, a.v[:])
	return nil
}

// incCounter increments a 128-bit big-endian counter in place,
// identical to the teacher's incV.
func incCounter(v *[16]byte) {
	for i := 15; i >= 0; i-- {
		v[i]++
		if v[i] != 0 {
			break
		}
	}
}

package prng

import "crypto/sha512"

func init() {
	register(Descriptor{
		Name:  "sha_dbrg",
		Label: "SHA-512 Hash-DRBG",
		New:   newSHADRBG,
	})
}

const shaDRBGBlockSize = sha512.Size // 64 bytes

// shaDRBG implements a simplified NIST SP 800-90A Hash_DRBG shape over
// SHA-512: each output block is H(V), after which V advances to
// H(V) + C mod 2^512, with V and C both derived from the seed so two
// DRBGs seeded identically produce
// byte-identical streams (invariant 6, spec.md §3). Reseed-counter and
// prediction-resistance bookkeeping from the full NIST construction are
// omitted: this generator is re-seeded once per random pass and never
// reseeded mid-stream, matching spec.md §4.1's seeding model.
type shaDRBG struct {
	v [shaDRBGBlockSize]byte
	c [shaDRBGBlockSize]byte
}

func newSHADRBG(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("sha_dbrg", errEmptySeed)
	}
	material := expandSeed(seed, 2*shaDRBGBlockSize)
	d := &shaDRBG{}
	copy(d.v[:], material[:shaDRBGBlockSize])
	copy(d.c[:], material[shaDRBGBlockSize:])
	return NewAdapt(d), nil
}

func (d *shaDRBG) blockSize() int { return shaDRBGBlockSize }

func (d *shaDRBG) nextBlock(out []byte) error {
	h := sha512.New()
	h.Write(d.v[:])
	sum := h.Sum(nil)
	copy(out, sum)

	// V = H(V) + C (mod 2^(8*len(V))), big-endian addition with carry.
	var carry uint16
	for i := shaDRBGBlockSize - 1; i >= 0; i-- {
		total := uint16(sum[i]) + uint16(d.c[i]) + carry
		d.v[i] = byte(total)
		carry = total >> 8
	}
	return nil
}

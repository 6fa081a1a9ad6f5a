package prng

import (
	"crypto/sha512"
	"encoding/binary"
)

// expandSeed deterministically stretches an arbitrary-length seed into
// exactly n bytes of key material using counter-mode SHA-512. It is the
// shared seed-to-state derivation used by every generator whose natural
// internal state (an AES key, a ChaCha20 key+nonce, an array of lagged
// words) is a fixed size different from the entropy source's SeedLen.
//
// This is not itself a PRNG stream: it is a one-shot derivation run
// once at Init, so two instances seeded with the same bytes always
// derive byte-identical internal state (invariant 6, spec.md §3).
func expandSeed(seed []byte, n int) []byte {
	out := make([]byte, 0, n)
	var counter uint64
	for len(out) < n {
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], counter)
		h := sha512.New()
		h.Write(seed)
		h.Write(ctr[:])
		out = append(out, h.Sum(nil)...)
		counter++
	}
	return out[:n]
}

// expandSeedWords32 derives n little-endian uint32 words from seed.
func expandSeedWords32(seed []byte, n int) []uint32 {
	raw := expandSeed(seed, n*4)
	words := make([]uint32, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return words
}

// expandSeedWords64 derives n little-endian uint64 words from seed.
func expandSeedWords64(seed []byte, n int) []uint64 {
	raw := expandSeed(seed, n*8)
	words := make([]uint64, n)
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(raw[i*8:])
	}
	return words
}

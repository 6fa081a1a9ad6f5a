package prng

import "encoding/binary"

func init() {
	register(Descriptor{Name: "isaac64", Label: "ISAAC-64", New: newIsaac64})
}

const isaac64N = 256

// isaac64 is the 64-bit variant of ISAAC, producing an 8-byte natural
// block. Structurally identical to isaac (same mixing skeleton, golden
// ratio constant scaled to 64 bits), differing in word width and the
// per-round mix function per the reference ISAAC-64 algorithm.
type isaac64 struct {
	mem     [isaac64N]uint64
	results [isaac64N]uint64
	a, b, c uint64
	pos     int
}

func newIsaac64(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("isaac64", errEmptySeed)
	}
	ia := &isaac64{}
	copy(ia.results[:], expandSeedWords64(seed, isaac64N))
	ia.init()
	ia.pos = isaac64N
	return NewAdapt(ia), nil
}

func (ia *isaac64) blockSize() int { return 8 }

func (ia *isaac64) nextBlock(out []byte) error {
	if ia.pos >= isaac64N {
		ia.generate()
		ia.pos = 0
	}
	binary.LittleEndian.PutUint64(out, ia.results[ia.pos])
	ia.pos++
	return nil
}

func (ia *isaac64) init() {
	var a, b, c, d, e, f, g, h uint64 = 0x9e3779b97f4a7c13, 0x9e3779b97f4a7c13,
		0x9e3779b97f4a7c13, 0x9e3779b97f4a7c13, 0x9e3779b97f4a7c13,
		0x9e3779b97f4a7c13, 0x9e3779b97f4a7c13, 0x9e3779b97f4a7c13

	mix := func() {
		a -= e
		f ^= h >> 9
		h += a
		b -= f
		g ^= a << 9
		a += b
		c -= g
		h ^= b >> 23
		b += c
		d -= h
		a ^= c << 15
		c += d
		e -= a
		b ^= d >> 14
		d += e
		f -= b
		c ^= e << 20
		e += f
		g -= c
		d ^= f >> 17
		f += g
		h -= d
		e ^= g << 14
		g += h
	}
	for i := 0; i < 4; i++ {
		mix()
	}

	for i := 0; i < isaac64N; i += 8 {
		a += ia.results[i]
		b += ia.results[i+1]
		c += ia.results[i+2]
		d += ia.results[i+3]
		e += ia.results[i+4]
		f += ia.results[i+5]
		g += ia.results[i+6]
		h += ia.results[i+7]
		mix()
		ia.mem[i] = a
		ia.mem[i+1] = b
		ia.mem[i+2] = c
		ia.mem[i+3] = d
		ia.mem[i+4] = e
		ia.mem[i+5] = f
		ia.mem[i+6] = g
		ia.mem[i+7] = h
	}
	for i := 0; i < isaac64N; i += 8 {
		a += ia.mem[i]
		b += ia.mem[i+1]
		c += ia.mem[i+2]
		d += ia.mem[i+3]
		e += ia.mem[i+4]
		f += ia.mem[i+5]
		g += ia.mem[i+6]
		h += ia.mem[i+7]
		mix()
		ia.mem[i] = a
		ia.mem[i+1] = b
		ia.mem[i+2] = c
		ia.mem[i+3] = d
		ia.mem[i+4] = e
		ia.mem[i+5] = f
		ia.mem[i+6] = g
		ia.mem[i+7] = h
	}

	ia.generate()
}

func (ia *isaac64) generate() {
	for i := 0; i < isaac64N; i++ {
		x := ia.mem[i]
		switch i % 4 {
		case 0:
			ia.a = ^ia.a ^ (ia.a << 21)
		case 1:
			ia.a ^= ia.a >> 5
		case 2:
			ia.a ^= ia.a << 12
		case 3:
			ia.a ^= ia.a >> 33
		}
		ia.a += ia.mem[(i+128)%isaac64N]
		y := ia.mem[(x>>3)%isaac64N] + ia.a + ia.b
		ia.mem[i] = y
		ia.b = ia.mem[(y>>11)%isaac64N] + x
		ia.results[i] = ia.b
	}
	ia.c++
	ia.b += ia.c
}

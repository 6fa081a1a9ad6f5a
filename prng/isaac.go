package prng

import "encoding/binary"

func init() {
	register(Descriptor{Name: "isaac", Label: "ISAAC-32", New: newIsaac})
}

const isaacN = 256

// isaac implements Bob Jenkins' ISAAC-32 stream cipher/PRNG. Seeding
// follows the reference algorithm: the seed is expanded to 256 32-bit
// words and mixed into the internal memory array via the standard
// golden-ratio scramble, then two initial generate rounds are run
// before any output is produced.
type isaac struct {
	mem     [isaacN]uint32
	results [isaacN]uint32
	a, b, c uint32
	pos     int
}

func newIsaac(seed []byte) (Generator, error) {
	if len(seed) == 0 {
		return nil, seedError("isaac", errEmptySeed)
	}
	ia := &isaac{}
	copy(ia.results[:], expandSeedWords32(seed, isaacN))
	ia.init(true)
	ia.pos = isaacN
	return NewAdapt(ia), nil
}

func (ia *isaac) blockSize() int { return 4 }

func (ia *isaac) nextBlock(out []byte) error {
	if ia.pos >= isaacN {
		ia.generate()
		ia.pos = 0
	}
	binary.LittleEndian.PutUint32(out, ia.results[ia.pos])
	ia.pos++
	return nil
}

func (ia *isaac) init(useSeed bool) {
	var a, b, c, d, e, f, g, h uint32 = 0x9e3779b9, 0x9e3779b9, 0x9e3779b9, 0x9e3779b9,
		0x9e3779b9, 0x9e3779b9, 0x9e3779b9, 0x9e3779b9

	mix := func() {
		a ^= b << 11
		d += a
		b += c
		b ^= c >> 2
		e += b
		c += d
		c ^= d << 8
		f += c
		d += e
		d ^= e >> 16
		g += d
		e += f
		e ^= f << 10
		h += e
		f += g
		f ^= g >> 4
		a += f
		g += h
		g ^= h << 8
		b += g
		h += a
		h ^= a >> 9
		c += h
		a += b
	}
	for i := 0; i < 4; i++ {
		mix()
	}

	for i := 0; i < isaacN; i += 8 {
		if useSeed {
			a += ia.results[i]
			b += ia.results[i+1]
			c += ia.results[i+2]
			d += ia.results[i+3]
			e += ia.results[i+4]
			f += ia.results[i+5]
			g += ia.results[i+6]
			h += ia.results[i+7]
		}
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

	if useSeed {
		for i := 0; i < isaacN; i += 8 {
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
	}

	ia.generate()
}

func (ia *isaac) generate() {
	for i := 0; i < isaacN; i++ {
		x := ia.mem[i]
		switch i % 4 {
		case 0:
			ia.a ^= ia.a << 13
		case 1:
			ia.a ^= ia.a >> 6
		case 2:
			ia.a ^= ia.a << 2
		case 3:
			ia.a ^= ia.a >> 16
		}
		ia.a += ia.mem[(i+128)%isaacN]
		y := ia.mem[(x>>2)%isaacN] + ia.a + ia.b
		ia.mem[i] = y
		ia.b = ia.mem[(y>>10)%isaacN] + x
		ia.results[i] = ia.b
	}
	ia.c++
	ia.b += ia.c
}

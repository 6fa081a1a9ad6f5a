package method

import (
	"fmt"

	"github.com/wipecore/diskwipe/entropy"
)

// Kind distinguishes the three final-stage behaviors spec.md §4.3 step
// 3 describes as "exclusive per method".
type Kind int

const (
	// KindStandard methods may have blank_after appended, and their
	// last pass may be marked lastpass per spec.md §4.3 step 2.
	KindStandard Kind = iota

	// KindOPS2 methods never blank; they always end with a mandatory
	// extra random pass.
	KindOPS2

	// KindVerifyOnly methods have no passes at all: a single
	// static_verify against VerifyPattern.
	KindVerifyOnly
)

// Method is the immutable catalog record for one wipe recipe.
type Method struct {
	Name  string
	Label string
	Kind  Kind

	// IS5Enhanced marks the one method whose random pass is always
	// verified regardless of the user's verify policy (spec.md §4.3
	// step 2, §9 Open Question ii).
	IS5Enhanced bool

	// VerifyPattern is used only when Kind == KindVerifyOnly.
	VerifyPattern []byte

	// Build returns this invocation's pattern sequence. Methods with
	// randomly-derived bytes (DoD family, OPS2, Gutmann's permutation)
	// draw fresh entropy every call, so Build is re-run once per
	// orchestrator invocation, not memoized.
	Build func(src entropy.Source) ([]Pattern, error)
}

var registry = map[string]Method{}

func register(m Method) {
	if _, exists := registry[m.Name]; exists {
		panic(fmt.Sprintf("method: duplicate registration for %q", m.Name))
	}
	registry[m.Name] = m
}

// Lookup returns the Method registered under name.
func Lookup(name string) (Method, error) {
	m, ok := registry[name]
	if !ok {
		return Method{}, fmt.Errorf("method: unknown method %q", name)
	}
	return m, nil
}

// Names returns every registered method short name.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

func init() {
	register(Method{
		Name: "zero", Label: "Zero fill", Kind: KindStandard,
		Build: staticBuild(StaticPattern([]byte{0x00})),
	})
	register(Method{
		Name: "one", Label: "One fill (0xFF)", Kind: KindStandard,
		Build: staticBuild(StaticPattern([]byte{0xFF})),
	})
	register(Method{
		Name: "prng", Label: "PRNG stream", Kind: KindStandard,
		Build: staticBuild(RandomPattern),
	})
	register(Method{
		Name: "dodshort", Label: "DoD 5220.22-M (short, 3-pass)", Kind: KindStandard,
		Build: dodShortBuild,
	})
	register(Method{
		Name: "dod522022m", Label: "DoD 5220.22-M (full, 7-pass)", Kind: KindStandard,
		Build: dodFullBuild,
	})
	register(Method{
		Name: "ops2", Label: "OPS-II (NAVSO P-5239-26 RLL)", Kind: KindOPS2,
		Build: ops2Build,
	})
	register(Method{
		Name: "gutmann", Label: "Gutmann (35-pass)", Kind: KindStandard,
		Build: gutmannBuild,
	})
	register(Method{
		Name: "is5enh", Label: "IS5 Enhanced", Kind: KindStandard, IS5Enhanced: true,
		Build: staticBuild(
			StaticPattern([]byte{0x00}),
			StaticPattern([]byte{0xFF}),
			RandomPattern,
		),
	})
	register(Method{
		Name: "verify_zero", Label: "Verify all-zero", Kind: KindVerifyOnly,
		VerifyPattern: []byte{0x00},
	})
	register(Method{
		Name: "verify_one", Label: "Verify all-one (0xFF)", Kind: KindVerifyOnly,
		VerifyPattern: []byte{0xFF},
	})
}

// staticBuild returns a Build func for methods whose pattern sequence
// never varies between invocations.
func staticBuild(patterns ...Pattern) func(entropy.Source) ([]Pattern, error) {
	return func(entropy.Source) ([]Pattern, error) {
		out := make([]Pattern, len(patterns))
		copy(out, patterns)
		return out, nil
	}
}

func drawByte(src entropy.Source) (byte, error) {
	b, err := src.Read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// dodShortBuild implements DoD 5220.22-M's 3-pass short variant:
// pass 1 a random byte, pass 2 its complement, pass 3 a second,
// independently drawn random byte (spec.md §4.4 / scenario S4).
func dodShortBuild(src entropy.Source) ([]Pattern, error) {
	b1, err := drawByte(src)
	if err != nil {
		return nil, err
	}
	b3, err := drawByte(src)
	if err != nil {
		return nil, err
	}
	p1 := StaticPattern([]byte{b1})
	return []Pattern{p1, Complement(p1), StaticPattern([]byte{b3})}, nil
}

// dodFullBuild implements the full 7-pass DoD 5220.22-M: passes 1/2
// and 5/6 are complement pairs, passes 3, 4, and 7 are independently
// drawn random bytes (spec.md §4.4: "pass 6 = ~pass 5").
func dodFullBuild(src entropy.Source) ([]Pattern, error) {
	vals := make([]byte, 5)
	for i := range vals {
		b, err := drawByte(src)
		if err != nil {
			return nil, err
		}
		vals[i] = b
	}
	p1 := StaticPattern([]byte{vals[0]})
	p5 := StaticPattern([]byte{vals[3]})
	return []Pattern{
		p1, Complement(p1),
		StaticPattern([]byte{vals[1]}),
		StaticPattern([]byte{vals[2]}),
		p5, Complement(p5),
		StaticPattern([]byte{vals[4]}),
	}, nil
}

// ops2Build implements the OPS-II base sequence: a random byte, its
// complement, then a true random-stream pass. The method's mandatory
// extra random final pass is added by the orchestrator's final stage,
// not here (spec.md §4.3 step 3).
func ops2Build(src entropy.Source) ([]Pattern, error) {
	b, err := drawByte(src)
	if err != nil {
		return nil, err
	}
	p1 := StaticPattern([]byte{b})
	return []Pattern{p1, Complement(p1), RandomPattern}, nil
}

// gutmannFixed27 is Gutmann's 27 fixed middle patterns, in the order
// his paper lists them (passes 7-9, 26-28 and 29-31 in the 35-pass
// scheme are the famous "magic" triples; spec.md §4.4 requires this
// exact set, randomly permuted per invocation).
var gutmannFixed27 = [][]byte{
	{0x55}, {0xAA},
	{0x92, 0x49, 0x24}, {0x49, 0x24, 0x92}, {0x24, 0x92, 0x49},
	{0x00}, {0x11}, {0x22}, {0x33}, {0x44}, {0x55}, {0x66}, {0x77},
	{0x88}, {0x99}, {0xAA}, {0xBB}, {0xCC}, {0xDD}, {0xEE}, {0xFF},
	{0x92, 0x49, 0x24}, {0x49, 0x24, 0x92}, {0x24, 0x92, 0x49},
	{0x6D, 0xB6, 0xDB}, {0xB6, 0xDB, 0x6D}, {0xDB, 0x6D, 0xB6},
}

// gutmannBuild implements the 35-pass Gutmann method: 4 leading random
// passes, a Fisher-Yates permutation of the 27 fixed patterns, and 4
// trailing random passes (spec.md §4.4, scenario S6).
func gutmannBuild(src entropy.Source) ([]Pattern, error) {
	middle := make([]Pattern, len(gutmannFixed27))
	for i, fixed := range gutmannFixed27 {
		middle[i] = StaticPattern(fixed)
	}
	if err := fisherYates(middle, src); err != nil {
		return nil, err
	}

	out := make([]Pattern, 0, 4+len(middle)+4)
	for i := 0; i < 4; i++ {
		out = append(out, RandomPattern)
	}
	out = append(out, middle...)
	for i := 0; i < 4; i++ {
		out = append(out, RandomPattern)
	}
	return out, nil
}

// fisherYates performs a uniform in-place Fisher-Yates shuffle of p,
// drawing each index from src (spec.md §4.4). Rejection sampling
// avoids modulo bias when the remaining range isn't a power of two.
func fisherYates(p []Pattern, src entropy.Source) error {
	for i := len(p) - 1; i > 0; i-- {
		j, err := uniformIndex(src, i+1)
		if err != nil {
			return err
		}
		p[i], p[j] = p[j], p[i]
	}
	return nil
}

// uniformIndex draws a uniformly distributed index in [0, n) from src
// via rejection sampling over 4 random bytes at a time.
func uniformIndex(src entropy.Source, n int) (int, error) {
	if n <= 1 {
		return 0, nil
	}
	limit := uint32(n)
	bound := (^uint32(0) / limit) * limit
	for {
		b, err := src.Read(4)
		if err != nil {
			return 0, err
		}
		v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
		if v < bound {
			return int(v % limit), nil
		}
	}
}

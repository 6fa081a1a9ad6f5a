package prng

import "fmt"

// registry is the flat catalog of PRNG descriptors keyed by short name,
// mirroring the method catalog (C4) and the teacher's single
// package-level Reader pattern, but exposing many named generators
// instead of one.
var registry = map[string]Descriptor{}

func register(d Descriptor) {
	if _, exists := registry[d.Name]; exists {
		panic(fmt.Sprintf("prng: duplicate registration for %q", d.Name))
	}
	registry[d.Name] = d
}

// Lookup returns the Descriptor registered under name, or an error if
// no such PRNG is known.
func Lookup(name string) (Descriptor, error) {
	d, ok := registry[name]
	if !ok {
		return Descriptor{}, fmt.Errorf("prng: unknown generator %q", name)
	}
	return d, nil
}

// Names returns every registered PRNG short name, in registration
// order is not guaranteed — callers that need a stable order should
// sort the result.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	return names
}

// New constructs a Generator for the named PRNG seeded with seed.
func New(name string, seed []byte) (Generator, error) {
	d, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	return d.New(seed)
}

// Package config carries the wipe engine's configuration as an
// immutable value built through functional options, the same shape as
// the teacher's nanoid.Option/ctrdrbg.Option constructors
// (_examples/sixafter-nanoid/nanoid.go, x/crypto/ctrdrbg/config.go):
// start from a default, apply each option, validate once.
package config

import "fmt"

// Verify is the verification policy (spec.md §3/§6).
type Verify int

const (
	VerifyNone Verify = iota
	VerifyLast
	VerifyAll
)

func (v Verify) String() string {
	switch v {
	case VerifyNone:
		return "none"
	case VerifyLast:
		return "last"
	case VerifyAll:
		return "all"
	default:
		return fmt.Sprintf("Verify(%d)", int(v))
	}
}

// IOMode selects cached vs. direct device I/O (spec.md §4.2).
type IOMode int

const (
	Cached IOMode = iota
	Direct
)

func (m IOMode) String() string {
	if m == Direct {
		return "direct"
	}
	return "cached"
}

// Options is the immutable configuration passed into the orchestrator
// and workers (spec.md §6 "Configuration options").
type Options struct {
	Method      string
	PRNG        string
	Verify      Verify
	Rounds      int
	BlankAfter  bool
	SyncRate    int
	IOMode      IOMode
}

// Option mutates an in-progress Options during construction.
type Option func(*Options)

// WithMethod selects a method registry key.
func WithMethod(name string) Option { return func(o *Options) { o.Method = name } }

// WithPRNG selects a PRNG registry key; ignored for pure static methods.
func WithPRNG(name string) Option { return func(o *Options) { o.PRNG = name } }

// WithVerify selects the verification policy.
func WithVerify(v Verify) Option { return func(o *Options) { o.Verify = v } }

// WithRounds sets the number of rounds; must be positive.
func WithRounds(n int) Option { return func(o *Options) { o.Rounds = n } }

// WithBlankAfter requests an additional zero-fill pass after the
// method finishes. Forced to false for ops2/verify_zero/verify_one.
func WithBlankAfter(b bool) Option { return func(o *Options) { o.BlankAfter = b } }

// WithSyncRate sets "sync every S device blocks" for cached I/O; 0
// disables periodic sync.
func WithSyncRate(s int) Option { return func(o *Options) { o.SyncRate = s } }

// WithIOMode selects cached or direct I/O. Direct forces SyncRate to 0.
func WithIOMode(m IOMode) Option { return func(o *Options) { o.IOMode = m } }

// methodsForcingNoBlank is the set of methods for which blank_after is
// always forced to false (spec.md §6).
var methodsForcingNoBlank = map[string]bool{
	"ops2":        true,
	"verify_zero": true,
	"verify_one":  true,
}

// Default returns the baseline configuration before options are
// applied: method "zero", PRNG "chacha20", verify Last, one round,
// cached I/O, a sync rate of 16.
func Default() Options {
	return Options{
		Method:   "zero",
		PRNG:     "chacha20",
		Verify:   VerifyLast,
		Rounds:   1,
		SyncRate: 16,
		IOMode:   Cached,
	}
}

// New builds an Options from Default() plus opts, then validates and
// normalizes it per spec.md §6's forced-field rules.
func New(opts ...Option) (Options, error) {
	o := Default()
	for _, opt := range opts {
		opt(&o)
	}

	if o.Rounds <= 0 {
		return Options{}, fmt.Errorf("config: rounds must be positive, got %d", o.Rounds)
	}
	if o.SyncRate < 0 {
		return Options{}, fmt.Errorf("config: sync_rate must be non-negative, got %d", o.SyncRate)
	}
	if o.Method == "" {
		return Options{}, fmt.Errorf("config: method is required")
	}

	if methodsForcingNoBlank[o.Method] {
		o.BlankAfter = false
	}
	if o.IOMode == Direct {
		o.SyncRate = 0
	}

	return o, nil
}

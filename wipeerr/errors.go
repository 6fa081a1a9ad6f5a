// Package wipeerr declares the sentinel errors used across the erasure
// engine. Every fatal error returned by pass, method, wipe, or worker
// wraps one of these sentinels so callers can classify failures with
// errors.Is instead of matching strings.
package wipeerr

import "errors"

var (
	// ErrFatalIO marks a seek failure, an unexpected offset after seek, a
	// negative-length read/write, or a first-block PRNG silence. The pass
	// in progress and the worker's method invocation are aborted.
	ErrFatalIO = errors.New("wipeerr: fatal I/O error")

	// ErrFlushFailure marks a failed data-only flush (fdatasync
	// equivalent). The pass is aborted; data is not known to be durable.
	ErrFlushFailure = errors.New("wipeerr: flush failure")

	// ErrSanity marks a programming-error condition: a nil seed, a
	// non-positive pattern length, or an unrecognized state.
	ErrSanity = errors.New("wipeerr: sanity check failed")

	// ErrCancelled marks cooperative cancellation observed between I/O
	// iterations or at a pass boundary. Not a user-visible error.
	ErrCancelled = errors.New("wipeerr: cancelled")

	// ErrSeed marks a PRNG init failure because the underlying primitive
	// rejected the supplied seed.
	ErrSeed = errors.New("wipeerr: seed rejected")
)

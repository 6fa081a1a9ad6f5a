// Package devctx defines the per-device mutable context (spec.md §3)
// that flows through pass, method, wipe, worker, and supervisor. A
// Context is written only by the worker that owns it; the supervisor
// reads a subset of its fields through atomics to build a Snapshot.
package devctx

import (
	"sync/atomic"
	"time"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/speedring"
	"github.com/wipecore/diskwipe/wipelog"
)

// Handle is the device I/O surface the core consumes. The core never
// opens, discovers, or closes a device itself (spec.md §1/§6) — it is
// handed an already-open Handle.
type Handle interface {
	// ReadAt/WriteAt are not used: passes are strictly sequential, so
	// the handle is driven with Seek + Read/Write, matching how a raw
	// block device or a direct-I/O file descriptor is actually driven.
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)

	// Seek repositions the handle. offset/whence follow io.Seeker.
	Seek(offset int64, whence int) (int64, error)

	// Sync issues a data-only durability barrier (fdatasync
	// equivalent). May be a no-op for a Direct-mode handle.
	Sync() error

	// Close releases the handle. Called exactly once, by the worker,
	// on every exit path.
	Close() error
}

// PassType enumerates what kind of work a context is currently doing.
type PassType int

const (
	PassNone PassType = iota
	PassWrite
	PassVerify
	PassFinalBlank
	PassFinalOps2
)

// WipeStatus enumerates the worker lifecycle state (spec.md §3).
type WipeStatus int32

const (
	StatusNotStarted WipeStatus = iota
	StatusRunning
	StatusFinished
)

// Result is the orchestrator's return code (spec.md §4.3/§7).
type Result int

const (
	ResultSuccess       Result = 0
	ResultErrors        Result = 1
	ResultFatalIO       Result = -1
	ResultFlushFailure  Result = -2
	ResultSanity        Result = -3
	ResultCancelled     Result = -4
)

// Context is the per-device mutable record described in spec.md §3.
// Fields read by the supervisor from another goroutine are accessed
// exclusively through the atomic.* wrappers below; everything else is
// touched only by the owning worker goroutine.
type Context struct {
	// Identity.
	DevicePath     string
	Handle         Handle
	BlockSize      int64 // device_block_size (soft block size)
	HardSectorSize int64
	Size           int64 // total byte size
	IOMode         config.IOMode

	// Selected wipe parameters.
	Options config.Options

	// Progress (atomic; read by the supervisor).
	passType      atomic.Int32
	roundWorking  atomic.Int64
	roundCount    atomic.Int64
	passWorking   atomic.Int64
	passCount     atomic.Int64
	passDone      atomic.Int64
	roundDone     atomic.Int64
	bytesErased   atomic.Int64
	roundSize     atomic.Int64
	passSize      atomic.Int64

	// Errors (atomic; read by the supervisor).
	passErrors       atomic.Int64
	verifyErrors     atomic.Int64
	fsyncdataErrors  atomic.Int64
	result           atomic.Int32
	wipeStatus       atomic.Int32

	// Timing.
	StartTime time.Time
	EndTime   time.Time
	Speedring *speedring.Speedring

	// Cancellation: set by the supervisor via Cancel to request stop; polled
	// by pass/wipe between I/O iterations and at pass boundaries.
	cancel atomic.Bool

	// Logger used by pass/wipe/worker for warnings; defaults to
	// wipelog.Default if unset.
	Logger wipelog.Logger

	// Selected marks whether the supervisor should include this
	// context in the current run (external selection state).
	Selected bool
}

// New constructs a Context ready to be handed to a worker.
func New(path string, h Handle, blockSize, hardSectorSize, size int64, opts config.Options) *Context {
	c := &Context{
		DevicePath:     path,
		Handle:         h,
		BlockSize:      blockSize,
		HardSectorSize: hardSectorSize,
		Size:           size,
		IOMode:         opts.IOMode,
		Options:        opts,
		Speedring:      speedring.New(),
		Logger:         wipelog.Default,
		Selected:       true,
	}
	return c
}

// --- Progress accessors ---

func (c *Context) SetPassType(t PassType)    { c.passType.Store(int32(t)) }
func (c *Context) PassType() PassType        { return PassType(c.passType.Load()) }
func (c *Context) SetRoundWorking(i int)     { c.roundWorking.Store(int64(i)) }
func (c *Context) RoundWorking() int         { return int(c.roundWorking.Load()) }
func (c *Context) SetRoundCount(i int)       { c.roundCount.Store(int64(i)) }
func (c *Context) RoundCount() int           { return int(c.roundCount.Load()) }
func (c *Context) SetPassWorking(i int)      { c.passWorking.Store(int64(i)) }
func (c *Context) PassWorking() int          { return int(c.passWorking.Load()) }
func (c *Context) SetPassCount(i int)        { c.passCount.Store(int64(i)) }
func (c *Context) PassCount() int            { return int(c.passCount.Load()) }
func (c *Context) SetPassSize(n int64)       { c.passSize.Store(n) }
func (c *Context) PassSize() int64           { return c.passSize.Load() }
func (c *Context) SetRoundSize(n int64)      { c.roundSize.Store(n) }
func (c *Context) RoundSize() int64          { return c.roundSize.Load() }

// ResetPass zeroes pass_done at the start of every pass (spec.md §4.2
// "Positioning": "resetting pass_done").
func (c *Context) ResetPass() { c.passDone.Store(0) }

// AddPassDone advances pass_done and round_done by the same delta and
// raises bytes_erased to the new high-water mark if needed, preserving
// invariant 1 (monotonic, never exceeds device_size).
func (c *Context) AddPassDone(n int64) {
	pd := c.passDone.Add(n)
	rd := c.roundDone.Add(n)
	c.raiseBytesErased(pd, rd)
}

func (c *Context) raiseBytesErased(passDone, roundDone int64) {
	candidate := passDone
	if roundDone > candidate {
		candidate = roundDone
	}
	if candidate > c.Size {
		candidate = c.Size
	}
	for {
		cur := c.bytesErased.Load()
		if candidate <= cur {
			return
		}
		if c.bytesErased.CompareAndSwap(cur, candidate) {
			return
		}
	}
}

func (c *Context) PassDone() int64  { return c.passDone.Load() }
func (c *Context) RoundDone() int64 { return c.roundDone.Load() }

// ResetRoundDone is used at the start of each round.
func (c *Context) ResetRoundDone() { c.roundDone.Store(0) }

func (c *Context) BytesErased() int64 { return c.bytesErased.Load() }

// RoundPercent implements invariant 3: round_done / round_size * 100,
// clamped to [0, 100].
func (c *Context) RoundPercent() float64 {
	size := c.RoundSize()
	if size <= 0 {
		return 0
	}
	pct := float64(c.RoundDone()) / float64(size) * 100
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	return pct
}

// --- Error counters ---

func (c *Context) AddPassErrors(n int64)      { c.passErrors.Add(n) }
func (c *Context) PassErrors() int64          { return c.passErrors.Load() }
func (c *Context) AddVerifyErrors(n int64)    { c.verifyErrors.Add(n) }
func (c *Context) VerifyErrors() int64        { return c.verifyErrors.Load() }
func (c *Context) AddFsyncdataErrors(n int64) { c.fsyncdataErrors.Add(n) }
func (c *Context) FsyncdataErrors() int64     { return c.fsyncdataErrors.Load() }

func (c *Context) SetResult(r Result)   { c.result.Store(int32(r)) }
func (c *Context) GetResult() Result    { return Result(c.result.Load()) }
func (c *Context) SetStatus(s WipeStatus) { c.wipeStatus.Store(int32(s)) }
func (c *Context) Status() WipeStatus   { return WipeStatus(c.wipeStatus.Load()) }

// --- Cancellation ---

// Cancel requests cooperative cancellation; observed between I/O
// iterations and at pass boundaries (spec.md §5).
func (c *Context) Cancel() { c.cancel.Store(true) }

// Cancelled reports whether cancellation has been requested.
func (c *Context) Cancelled() bool { return c.cancel.Load() }

// Success reports the SUCCESS criterion from spec.md §3 invariant 5:
// result == 0 AND every error counter == 0.
func (c *Context) Success() bool {
	return c.GetResult() == ResultSuccess &&
		c.PassErrors() == 0 &&
		c.VerifyErrors() == 0 &&
		c.FsyncdataErrors() == 0
}

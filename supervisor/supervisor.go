// Package supervisor implements the aggregator (C6): it spawns one
// worker per selected device context, samples their speedrings at a
// bounded cadence, and exposes a read-only Snapshot to the UI
// collaborator (spec.md §4.6).
package supervisor

import (
	"context"
	"sync"
	"time"

	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/worker"
)

// Cadence is the shortest polling interval for aggregate statistics
// (spec.md §4.6: "at a bounded cadence (≤10 Hz)"). Poll does not
// enforce it; callers decide how often to call Poll.
const Cadence = 100 * time.Millisecond

// DeviceSnapshot is one context's read-only progress view (spec.md §6
// "Progress snapshot").
type DeviceSnapshot struct {
	DevicePath      string
	PassType        devctx.PassType
	RoundWorking    int
	RoundCount      int
	PassWorking     int
	PassCount       int
	RoundPercent    float64
	PassErrors      int64
	VerifyErrors    int64
	FsyncdataErrors int64
	Throughput      float64
	ETA             time.Duration
	HasETA          bool
	Status          devctx.WipeStatus
	Result          devctx.Result
}

// Snapshot is the supervisor's aggregate view across every selected
// device (spec.md §4.6).
type Snapshot struct {
	Devices       []DeviceSnapshot
	TotalThroughput float64
	MaxETA          time.Duration
	HasMaxETA       bool
	TotalErrors     int64
	RunningCount    int
	AllDone         bool
}

// Supervisor owns the set of workers for one run.
type Supervisor struct {
	mu      sync.Mutex
	workers []*worker.Worker
	cancel  context.CancelFunc
	done    chan struct{}
}

// New builds a Supervisor for the given contexts, drawing entropy from
// src for every worker.
func New(contexts []*devctx.Context, src entropy.Source) *Supervisor {
	s := &Supervisor{done: make(chan struct{})}
	for _, dc := range contexts {
		if !dc.Selected {
			continue
		}
		s.workers = append(s.workers, worker.New(dc, src))
	}
	return s
}

// Start launches every worker in its own goroutine. It returns
// immediately; Poll and Shutdown interact with the running workers.
func (s *Supervisor) Start(ctx context.Context) {
	runCtx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, w := range s.workers {
		wg.Add(1)
		go func(w *worker.Worker) {
			defer wg.Done()
			w.Run(runCtx)
		}(w)
	}

	go func() {
		wg.Wait()
		close(s.done)
	}()
}

// Poll samples every worker's context and returns a fresh Snapshot.
// It updates each running worker's speedring with the current
// round_done and wall-clock time, matching spec.md §4.6.
func (s *Supervisor) Poll() Snapshot {
	now := time.Now()
	snap := Snapshot{}

	for _, w := range s.workers {
		dc := w.Context()
		running := dc.Status() == devctx.StatusRunning

		if running {
			dc.Speedring.Update(dc.RoundDone(), now)
			snap.RunningCount++
		}

		throughput := dc.Speedring.Throughput()
		eta, hasETA := dc.Speedring.ETA(dc.RoundSize() - dc.RoundDone())

		snap.Devices = append(snap.Devices, DeviceSnapshot{
			DevicePath:      dc.DevicePath,
			PassType:        dc.PassType(),
			RoundWorking:    dc.RoundWorking(),
			RoundCount:      dc.RoundCount(),
			PassWorking:     dc.PassWorking(),
			PassCount:       dc.PassCount(),
			RoundPercent:    dc.RoundPercent(),
			PassErrors:      dc.PassErrors(),
			VerifyErrors:    dc.VerifyErrors(),
			FsyncdataErrors: dc.FsyncdataErrors(),
			Throughput:      throughput,
			ETA:             eta,
			HasETA:          hasETA,
			Status:          dc.Status(),
			Result:          dc.GetResult(),
		})

		snap.TotalThroughput += throughput
		if hasETA && eta > snap.MaxETA {
			snap.MaxETA = eta
			snap.HasMaxETA = true
		}
		snap.TotalErrors += dc.PassErrors() + dc.VerifyErrors() + dc.FsyncdataErrors()
	}

	snap.AllDone = snap.RunningCount == 0
	return snap
}

// Shutdown propagates cancellation to every worker and blocks until
// they finish their current I/O iteration and exit, or ctx expires
// first (spec.md §4.6 "Honor a single shutdown signal").
func (s *Supervisor) Shutdown(ctx context.Context) error {
	for _, w := range s.workers {
		w.Context().Cancel()
	}

	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done reports whether every worker has finished.
func (s *Supervisor) Done() <-chan struct{} { return s.done }

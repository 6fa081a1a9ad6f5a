// Package worker implements the per-device task (C5): it owns one
// devctx.Context for its entire lifetime, invokes the method
// orchestrator, and records start/end timestamps and the final result
// (spec.md §4.5).
package worker

import (
	"context"
	"time"

	"github.com/wipecore/diskwipe/devctx"
	"github.com/wipecore/diskwipe/entropy"
	"github.com/wipecore/diskwipe/wipe"
)

// Worker drives a single device's wipe from start to finish.
type Worker struct {
	dc  *devctx.Context
	src entropy.Source
}

// New returns a Worker for dc, drawing every seed and permutation from
// src.
func New(dc *devctx.Context, src entropy.Source) *Worker {
	return &Worker{dc: dc, src: src}
}

// Run blocks until the wipe completes, is cancelled via ctx or
// dc.Cancel(), or fails fatally. It always closes the device handle on
// exit, matching "closed exactly once" (spec.md §5 "Resource
// discipline").
func (w *Worker) Run(ctx context.Context) devctx.Result {
	dc := w.dc
	dc.StartTime = time.Now()
	dc.SetStatus(devctx.StatusRunning)

	defer func() {
		if err := dc.Handle.Close(); err != nil {
			dc.Logger.Warnf("worker: closing %s: %v", dc.DevicePath, err)
		}
	}()

	result := wipe.Run(ctx, dc, w.src)

	dc.EndTime = time.Now()
	dc.SetStatus(devctx.StatusFinished)
	dc.SetResult(result)

	return result
}

// Context exposes the underlying device context for supervisor use.
func (w *Worker) Context() *devctx.Context { return w.dc }

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"cogentcore.org/gpuview/base/errors"
)

// ErrFrameDropped is returned by a frame function when the frame
// could not be drawn, e.g., because the surface texture was not
// available. The [FrameLoop] counts it and continues.
var ErrFrameDropped = errors.New("view: frame dropped")

// LoopStates are the states of a [FrameLoop].
type LoopStates int32

const (
	// Idle is before the loop has been run.
	Idle LoopStates = iota

	// Running is while the loop is drawing frames.
	Running

	// Stopped is after the loop has returned.
	Stopped
)

func (ls LoopStates) String() string {
	switch ls {
	case Idle:
		return "Idle"
	case Running:
		return "Running"
	case Stopped:
		return "Stopped"
	}
	return fmt.Sprintf("LoopStates(%d)", int32(ls))
}

// FrameStats counts the frames drawn and dropped by a [FrameLoop].
type FrameStats struct {
	Frames  int64
	Dropped int64
}

// FrameLoop draws a frame on each repaint opportunity from a [Scheduler],
// until its context is cancelled, the scheduler is done, or a frame
// fails with an error other than [ErrFrameDropped].
// The context is checked before each frame is drawn.
type FrameLoop struct {
	// Scheduler provides the repaint opportunities.
	Scheduler Scheduler

	// Frame draws one frame.
	Frame func() error

	state   atomic.Int32
	frames  atomic.Int64
	dropped atomic.Int64
}

// NewFrameLoop returns a new idle FrameLoop.
func NewFrameLoop(sched Scheduler, frame func() error) *FrameLoop {
	return &FrameLoop{Scheduler: sched, Frame: frame}
}

// State returns the current state.
func (fl *FrameLoop) State() LoopStates {
	return LoopStates(fl.state.Load())
}

// Stats returns the current frame counts.
func (fl *FrameLoop) Stats() FrameStats {
	return FrameStats{Frames: fl.frames.Load(), Dropped: fl.dropped.Load()}
}

// Run runs the loop on the calling goroutine. It returns nil when
// stopped by cancellation or by the scheduler, and the frame error
// otherwise. A loop can only be run once.
func (fl *FrameLoop) Run(ctx context.Context) error {
	if !fl.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return fmt.Errorf("view.FrameLoop: cannot run in state %s", fl.State())
	}
	defer func() {
		fl.state.Store(int32(Stopped))
		st := fl.Stats()
		slog.Debug("view.FrameLoop stopped", "frames", st.Frames, "dropped", st.Dropped)
	}()
	for {
		if ctx.Err() != nil {
			return nil
		}
		if err := fl.Scheduler.NextFrame(ctx); err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrSchedulerDone) {
				return nil
			}
			return err
		}
		if ctx.Err() != nil {
			return nil
		}
		err := fl.Frame()
		switch {
		case err == nil:
			fl.frames.Add(1)
		case errors.Is(err, ErrFrameDropped):
			fl.dropped.Add(1)
			slog.Warn("view.FrameLoop: frame dropped", "err", err)
		default:
			return err
		}
	}
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package offscreen provides a [view.Mount] with no window, which
// draws into a render texture that can be read back. It is used
// for tests, snapshots and headless rendering.
package offscreen

import (
	"context"
	"fmt"
	"image"
	"sync"
	"time"

	"cogentcore.org/gpuview/view"
	"github.com/cogentcore/webgpu/wgpu"
)

// Canvas is an offscreen canvas of a given size.
type Canvas struct {
	mu   sync.Mutex
	size image.Point
}

func (cv *Canvas) Size() image.Point {
	cv.mu.Lock()
	defer cv.mu.Unlock()
	return cv.size
}

func (cv *Canvas) SetSize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("offscreen.Canvas: invalid size %v", size)
	}
	cv.mu.Lock()
	cv.size = size
	cv.mu.Unlock()
	return nil
}

// SurfaceDescriptor returns nil: an offscreen canvas has no surface.
func (cv *Canvas) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }

// Mount holds at most one [Canvas], attached on first use
// and kept across sessions.
type Mount struct {
	// Frames is the scheduler returned by [Mount.Scheduler].
	Frames *Scheduler

	mu     sync.Mutex
	canvas *Canvas
}

// NewMount returns a new Mount whose scheduler schedules
// the given number of frames without delay.
func NewMount(frames int) *Mount {
	return &Mount{Frames: &Scheduler{MaxFrames: frames}}
}

func (mt *Mount) Canvas() view.Canvas {
	mt.mu.Lock()
	defer mt.mu.Unlock()
	if mt.canvas == nil {
		return nil
	}
	return mt.canvas
}

func (mt *Mount) AttachCanvas(size image.Point) (view.Canvas, error) {
	cv := &Canvas{}
	if err := cv.SetSize(size); err != nil {
		return nil, err
	}
	mt.mu.Lock()
	mt.canvas = cv
	mt.mu.Unlock()
	return cv, nil
}

func (mt *Mount) Scheduler() view.Scheduler { return mt.Frames }

// Scheduler schedules frames at a fixed interval, and is done after
// MaxFrames frames if that is positive.
type Scheduler struct {
	// MaxFrames is the number of frames to schedule; 0 is unlimited.
	MaxFrames int

	// Interval between frames; 0 is as fast as possible.
	Interval time.Duration

	mu    sync.Mutex
	count int
}

// NextFrame waits for the interval and returns [view.ErrSchedulerDone]
// once MaxFrames frames have been scheduled.
func (sc *Scheduler) NextFrame(ctx context.Context) error {
	sc.mu.Lock()
	if sc.MaxFrames > 0 && sc.count >= sc.MaxFrames {
		sc.mu.Unlock()
		return view.ErrSchedulerDone
	}
	sc.count++
	sc.mu.Unlock()
	if sc.Interval <= 0 {
		return ctx.Err()
	}
	tm := time.NewTimer(sc.Interval)
	defer tm.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-tm.C:
		return nil
	}
}

// Count returns the number of frames scheduled so far.
func (sc *Scheduler) Count() int {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.count
}

// Reset restarts the frame count.
func (sc *Scheduler) Reset() {
	sc.mu.Lock()
	sc.count = 0
	sc.mu.Unlock()
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"context"
	"image"

	"cogentcore.org/gpuview/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrSchedulerDone is returned by a [Scheduler] when no more
// frames will be scheduled, e.g., because the window was closed.
// It stops a [FrameLoop] without error.
var ErrSchedulerDone = errors.New("view: scheduler done")

// Mount is the host container that a [Session] draws into.
// It may already hold a canvas from an earlier session.
type Mount interface {
	// Canvas returns the existing canvas, or nil if there is none.
	Canvas() Canvas

	// AttachCanvas creates a new canvas of the given size
	// and attaches it to the mount.
	AttachCanvas(size image.Point) (Canvas, error)

	// Scheduler returns the host's repaint scheduler.
	Scheduler() Scheduler
}

// Canvas is a drawable target provided by the host.
type Canvas interface {
	// Size returns the size in pixels.
	Size() image.Point

	// SetSize sets the size in pixels.
	SetSize(size image.Point) error

	// SurfaceDescriptor returns the descriptor for creating a
	// window surface, or nil if the canvas is offscreen.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// Scheduler provides repaint opportunities to a [FrameLoop].
type Scheduler interface {
	// NextFrame blocks until the next frame should be drawn,
	// the context is done, or no more frames will come
	// (returning [ErrSchedulerDone]).
	NextFrame(ctx context.Context) error
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build (darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd

// Package desktop provides a [view.Mount] backed by a glfw window.
// All of its methods, and the [view.Session] using it, must be
// called on the main thread, which must be locked with
// [runtime.LockOSThread].
package desktop

import (
	"context"
	"fmt"
	"image"

	"cogentcore.org/gpuview/base/errors"
	"cogentcore.org/gpuview/view"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// Window is a glfw window canvas.
type Window struct {
	glw *glfw.Window
}

// Size returns the framebuffer size in pixels.
func (w *Window) Size() image.Point {
	x, y := w.glw.GetFramebufferSize()
	return image.Pt(x, y)
}

func (w *Window) SetSize(size image.Point) error {
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("desktop.Window: invalid size %v", size)
	}
	w.glw.SetSize(size.X, size.Y)
	return nil
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(w.glw)
}

// Mount holds at most one window, created on first use.
type Mount struct {
	// Title of the window.
	Title string

	window *Window
}

// NewMount initializes glfw and returns a new Mount.
// Call [Mount.Terminate] when done.
func NewMount(title string) (*Mount, error) {
	if err := glfw.Init(); err != nil {
		return nil, errors.Log(err)
	}
	return &Mount{Title: title}, nil
}

func (mt *Mount) Canvas() view.Canvas {
	if mt.window == nil {
		return nil
	}
	return mt.window
}

// AttachCanvas opens a new window of the given size, without
// a client API, for use as a WebGPU surface. It is not resizable
// by the user: a new size requires a new session.
func (mt *Mount) AttachCanvas(size image.Point) (view.Canvas, error) {
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.False)
	glw, err := glfw.CreateWindow(size.X, size.Y, mt.Title, nil, nil)
	if err != nil {
		return nil, errors.Log(err)
	}
	mt.window = &Window{glw: glw}
	return mt.window, nil
}

func (mt *Mount) Scheduler() view.Scheduler { return mt }

// NextFrame polls for window events, returning [view.ErrSchedulerDone]
// once the window has been closed. Frames are paced by the surface,
// which presents at the display refresh rate.
func (mt *Mount) NextFrame(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if mt.window == nil {
		return view.ErrSchedulerDone
	}
	glfw.PollEvents()
	if mt.window.glw.ShouldClose() {
		return view.ErrSchedulerDone
	}
	return nil
}

// Terminate destroys the window and shuts down glfw.
func (mt *Mount) Terminate() {
	if mt.window != nil {
		mt.window.glw.Destroy()
		mt.window = nil
	}
	glfw.Terminate()
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package view renders a full-screen textured quad or a flat-colored
// triangle into a host-provided canvas using WebGPU.
//
// A [Session] acquires a device for the canvas, builds the static
// resources and pipeline for its [Drawable], and then draws one frame
// on each repaint opportunity from the host [Scheduler] until it is
// disposed.
package view

import (
	"context"
	"fmt"
	"image"
	"sync"

	"cogentcore.org/gpuview/base/errors"
	"cogentcore.org/gpuview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrNoSnapshot is returned by [Session.Snapshot] when the session
// draws into a window surface, which cannot be read back.
var ErrNoSnapshot = errors.New("view: snapshot requires an offscreen canvas")

// Session owns the device and every GPU object used to draw one
// [Drawable], and the [FrameLoop] that draws it.
// All GPU objects are owned by an arena and accessed through handles,
// so that nothing is used once the session has been disposed.
type Session struct {
	drawable Drawable
	readback bool

	target *Target
	device *gpu.Device
	arena  gpu.Arena

	vertexBuffer gpu.Handle[*wgpu.Buffer]
	texture      gpu.Handle[*gpu.Texture]
	sampler      gpu.Handle[*gpu.Sampler]
	pipeline     gpu.Handle[*gpu.GraphicsPipeline]
	bindGroup    gpu.Handle[*wgpu.BindGroup]
	hasBindGroup bool
	nVertices    int

	loop      *FrameLoop
	scheduler Scheduler

	// ctx is cancelled by Dispose.
	ctx    context.Context
	cancel context.CancelFunc

	// mu is held while drawing a frame, taking a snapshot, or releasing.
	mu       sync.Mutex
	released bool

	// done is closed when Run returns; nil if Run was never called.
	done chan struct{}

	disposeOnce sync.Once
}

// New validates the options, acquires a device for the canvas of the
// given mount, and builds the resources and pipeline for the drawable
// selected by the options. Invalid options fail with [ErrInvalidOptions]
// before any GPU object is created. On any error, everything created
// so far is released.
func New(ctx context.Context, mount Mount, opts *Options) (*Session, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return NewDrawable(ctx, mount, opts.Size(), opts.Drawable(), opts.Readback)
}

// NewDrawable is like [New] for a given drawable and surface size.
// If readback is true, the vertex buffer and texture can be read back
// with [Session.ReadVertexBuffer] and [Session.ReadTexture].
func NewDrawable(ctx context.Context, mount Mount, size image.Point, d Drawable, readback bool) (*Session, error) {
	if err := gpu.CheckSize(size.X, size.Y); err != nil {
		return nil, fmt.Errorf("%w: surface: %w", ErrInvalidOptions, err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	tg, err := Acquire(ctx, mount, size)
	if err != nil {
		return nil, err
	}
	sn := newSession(tg, mount.Scheduler(), d, readback)
	if err := sn.build(); err != nil {
		sn.Dispose()
		return nil, fmt.Errorf("view.New %s: %w", d.Name(), err)
	}
	return sn, nil
}

// newSession returns a session for the given target that has not
// built anything yet.
func newSession(tg *Target, sched Scheduler, d Drawable, readback bool) *Session {
	sn := &Session{drawable: d, readback: readback, target: tg, device: tg.Device}
	sn.ctx, sn.cancel = context.WithCancel(context.Background())
	sn.scheduler = sched
	sn.loop = NewFrameLoop(sn.scheduler, sn.Frame)
	sn.target.Renderer.Render().SetClearColor(0.9, 0.9, 0.9, 1)
	return sn
}

// build creates the vertex buffer, the drawable's resources,
// the pipeline, and the bind group, in that order.
func (sn *Session) build() error {
	d := sn.drawable
	layout := d.VertexLayout()
	verts := d.Vertices()
	n, err := layout.VertexCount(verts)
	if err != nil {
		return err
	}
	sn.nVertices = n
	buf, err := gpu.NewVertexBuffer(sn.device, d.Name()+" vertices", layout, verts, sn.readback)
	if err != nil {
		return err
	}
	if sn.vertexBuffer, err = gpu.Track(&sn.arena, buf); err != nil {
		return err
	}

	if err := d.createResources(sn); err != nil {
		return err
	}

	pl := gpu.NewGraphicsPipeline(d.Name(), sn.device)
	pl.SetTopology(d.Topology()).
		SetFormat(sn.target.Renderer.Render().Format.Format).
		SetVertexLayout(layout)
	sh := pl.AddShader(d.Name())
	pl.AddEntry(sh, gpu.VertexShader, "vertexMain")
	pl.AddEntry(sh, gpu.FragmentShader, "fragmentMain")
	if err := sh.OpenFileFS(shaders, "shaders/"+d.ShaderFile()); err != nil {
		pl.Release()
		return err
	}
	if err := pl.Config(); err != nil {
		pl.Release()
		return err
	}
	if sn.pipeline, err = gpu.Track(&sn.arena, pl); err != nil {
		return err
	}

	bg, err := d.createBindGroup(sn, pl)
	if err != nil {
		return err
	}
	if bg != nil {
		if sn.bindGroup, err = gpu.Track(&sn.arena, bg); err != nil {
			return err
		}
		sn.hasBindGroup = true
	}
	return nil
}

// Frame draws one frame: it clears the current target, draws the
// drawable, submits the commands and presents the result. It returns
// an error wrapping [ErrFrameDropped] if no target texture is available,
// and [gpu.ErrReleased] after the session has been disposed.
func (sn *Session) Frame() error {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.released {
		return gpu.ErrReleased
	}
	buf, err := sn.vertexBuffer.Get()
	if err != nil {
		return err
	}
	pl, err := sn.pipeline.Get()
	if err != nil {
		return err
	}
	var bg *wgpu.BindGroup
	if sn.hasBindGroup {
		if bg, err = sn.bindGroup.Get(); err != nil {
			return err
		}
	}

	rd := sn.target.Renderer
	view, err := rd.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFrameDropped, err)
	}
	cmd, err := sn.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return err
	}
	defer cmd.Release()
	rp := rd.Render().BeginRenderPass(cmd, view)
	rp.SetVertexBuffer(0, buf, 0, wgpu.WholeSize)
	if err := pl.BindPipeline(rp); err != nil {
		err = errors.Join(err, rp.End())
		rp.Release()
		return err
	}
	if bg != nil {
		rp.SetBindGroup(0, bg, nil)
	}
	rp.Draw(uint32(sn.nVertices), 1, 0, 0)
	err = rp.End()
	rp.Release()
	if errors.Log(err) != nil {
		return err
	}

	cb, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return err
	}
	sn.device.Queue.Submit(cb)
	cb.Release()
	rd.Present()
	return nil
}

// Run runs the frame loop on the calling goroutine, which should be the
// host's UI thread, until ctx is cancelled, the session is disposed, or
// the scheduler is done. It returns the error that stopped the loop, if
// any. Run can only be called once.
func (sn *Session) Run(ctx context.Context) error {
	sn.mu.Lock()
	if sn.released || sn.ctx.Err() != nil {
		sn.mu.Unlock()
		return nil
	}
	if sn.done != nil {
		sn.mu.Unlock()
		return fmt.Errorf("view.Session: Run called twice")
	}
	done := make(chan struct{})
	sn.done = done
	sn.mu.Unlock()
	defer close(done)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()
	unregister := context.AfterFunc(sn.ctx, stop)
	defer unregister()
	return sn.loop.Run(runCtx)
}

// Dispose stops the frame loop, waiting for it to return if it is
// running, and then releases every GPU object, the renderer, the device
// and the GPU. It is safe to call more than once, and from any goroutine
// other than the one running the loop.
func (sn *Session) Dispose() {
	sn.disposeOnce.Do(func() {
		sn.cancel()
		sn.mu.Lock()
		done := sn.done
		sn.mu.Unlock()
		if done != nil {
			<-done
		}
		sn.mu.Lock()
		defer sn.mu.Unlock()
		sn.released = true
		sn.arena.Release()
		sn.target.Release()
	})
}

// IsDisposed returns true once [Session.Dispose] has released the session.
func (sn *Session) IsDisposed() bool {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	return sn.released
}

// Drawable returns the drawable for this session.
func (sn *Session) Drawable() Drawable { return sn.drawable }

// Canvas returns the canvas being drawn into.
func (sn *Session) Canvas() Canvas { return sn.target.Canvas }

// Format returns the color format of the render target.
func (sn *Session) Format() wgpu.TextureFormat {
	return sn.target.Renderer.Render().Format.Format
}

// VertexCount returns the number of vertices drawn per frame.
func (sn *Session) VertexCount() int { return sn.nVertices }

// State returns the state of the frame loop.
func (sn *Session) State() LoopStates { return sn.loop.State() }

// Stats returns the frame counts of the frame loop.
func (sn *Session) Stats() FrameStats { return sn.loop.Stats() }

// Snapshot returns the last frame drawn into an offscreen canvas.
func (sn *Session) Snapshot() (*image.RGBA, error) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.released {
		return nil, gpu.ErrReleased
	}
	rt, ok := sn.target.Renderer.(*gpu.RenderTexture)
	if !ok {
		return nil, ErrNoSnapshot
	}
	return rt.ReadImage()
}

// ReadVertexBuffer returns the contents of the vertex buffer.
// The session must have been created with readback enabled.
func (sn *Session) ReadVertexBuffer() ([]byte, error) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.released {
		return nil, gpu.ErrReleased
	}
	buf, err := sn.vertexBuffer.Get()
	if err != nil {
		return nil, err
	}
	return gpu.ReadBuffer(sn.device, buf, buf.GetSize())
}

// ReadTexture returns the pixels of the texture of a [TexturedQuad].
// The session must have been created with readback enabled.
func (sn *Session) ReadTexture() ([]byte, error) {
	sn.mu.Lock()
	defer sn.mu.Unlock()
	if sn.released {
		return nil, gpu.ErrReleased
	}
	tx, err := sn.texture.Get()
	if err != nil {
		return nil, err
	}
	return tx.ReadPixels()
}

// Render creates a new [Session] and runs its frame loop on a new
// goroutine, returning the function that disposes of it. It is for
// hosts whose scheduler does not require a particular thread; others
// call [New] and [Session.Run] on their UI thread.
func Render(ctx context.Context, mount Mount, opts *Options) (dispose func(), err error) {
	sn, err := New(ctx, mount, opts)
	if err != nil {
		return nil, err
	}
	go func() {
		if err := sn.Run(ctx); err != nil {
			errors.Log(err)
		}
	}()
	return sn.Dispose, nil
}

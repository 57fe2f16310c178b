// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"context"
	"fmt"
	"image"

	"cogentcore.org/gpuview/base/errors"
	"cogentcore.org/gpuview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// Target is the result of [Acquire]: a device bound to a drawable
// renderer of the requested size.
type Target struct {
	GPU      *gpu.GPU
	Device   *gpu.Device
	Renderer gpu.Renderer
	Canvas   Canvas
}

// Release releases the renderer, device, and GPU, in that order.
func (tg *Target) Release() {
	if tg.Renderer != nil {
		tg.Renderer.Release()
		tg.Renderer = nil
	}
	if tg.Device != nil {
		tg.Device.Release()
		tg.Device = nil
	}
	if tg.GPU != nil {
		tg.GPU.Release()
		tg.GPU = nil
	}
}

// Acquire returns a device and a configured renderer of the given size
// for the canvas of the given mount. If the mount has no canvas, one is
// attached; an existing canvas is resized. A window canvas gets a surface
// configured once with the platform's preferred format; an offscreen
// canvas gets an RGBA8Unorm render texture. All failures to obtain an
// adapter, device or surface wrap [gpu.ErrBackendUnavailable].
func Acquire(ctx context.Context, mount Mount, size image.Point) (*Target, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canvas := mount.Canvas()
	if canvas == nil {
		cv, err := mount.AttachCanvas(size)
		if err != nil {
			return nil, fmt.Errorf("%w: attach canvas: %w", gpu.ErrBackendUnavailable, err)
		}
		canvas = cv
	} else if err := canvas.SetSize(size); err != nil {
		return nil, err
	}

	tg := &Target{Canvas: canvas}
	tg.GPU = gpu.NewGPU()
	var ws *wgpu.Surface
	if sd := canvas.SurfaceDescriptor(); sd != nil {
		s, err := tg.GPU.CreateSurface(sd)
		if err != nil {
			tg.Release()
			return nil, err
		}
		ws = s
	}
	if err := tg.GPU.RequestAdapter(ws); err != nil {
		releaseSurface(ws)
		tg.Release()
		return nil, err
	}
	dev, err := gpu.NewDevice(tg.GPU)
	if err != nil {
		releaseSurface(ws)
		tg.Release()
		return nil, err
	}
	tg.Device = dev

	if ws != nil {
		sf, err := gpu.NewSurface(tg.GPU, dev, ws, size)
		if err != nil {
			releaseSurface(ws)
			tg.Release()
			return nil, err
		}
		tg.Renderer = sf
	} else {
		rt, err := gpu.NewRenderTexture(dev, size)
		if err != nil {
			tg.Release()
			if !errors.Is(err, gpu.ErrBackendUnavailable) {
				err = fmt.Errorf("%w: %w", gpu.ErrBackendUnavailable, err)
			}
			return nil, err
		}
		tg.Renderer = rt
	}
	return tg, nil
}

func releaseSurface(ws *wgpu.Surface) {
	if ws != nil {
		ws.Release()
	}
}

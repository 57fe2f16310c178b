// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Surface manages the physical device for the visible image
// of a window surface, and the swapchain for presenting images.
type Surface struct {
	// Format has the current rendering surface size and
	// the platform's preferred texture format.
	Format TextureFormat

	// PresentMode is how frames are presented: Fifo (vsync) is
	// the only mode guaranteed to be supported.
	PresentMode wgpu.PresentMode

	// Render helper for this surface.
	render Render

	// WebGPU surface, which we own.
	surface *wgpu.Surface

	// configuration applied to the surface
	config *wgpu.SurfaceConfiguration

	// the texture and view of the frame being rendered
	curTexture *wgpu.Texture
	curView    *wgpu.TextureView

	gpu    *GPU
	device *Device
}

// NewSurface returns a new surface for the given WebGPU surface,
// configured exactly once for the given device and size, using the
// platform's preferred format (the first reported capability).
// The Surface takes ownership of ws.
func NewSurface(gp *GPU, dev *Device, ws *wgpu.Surface, size image.Point) (*Surface, error) {
	sf := &Surface{gpu: gp, device: dev, surface: ws}
	sf.PresentMode = wgpu.PresentModeFifo
	caps := ws.GetCapabilities(gp.Adapter)
	if len(caps.Formats) == 0 {
		return nil, fmt.Errorf("%w: surface reports no formats", ErrBackendUnavailable)
	}
	sf.Format.Defaults()
	sf.Format.Set(size.X, size.Y, caps.Formats[0])
	sf.config = &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      sf.Format.Format,
		Width:       uint32(size.X),
		Height:      uint32(size.Y),
		PresentMode: sf.PresentMode,
	}
	if len(caps.AlphaModes) > 0 {
		sf.config.AlphaMode = caps.AlphaModes[0]
	}
	sf.surface.Configure(gp.Adapter, dev.Device, sf.config)
	sf.render.Config(&sf.Format)
	return sf, nil
}

func (sf *Surface) Device() *Device   { return sf.device }
func (sf *Surface) Render() *Render   { return &sf.render }
func (sf *Surface) Size() image.Point { return sf.Format.Size }

// GetCurrentTexture acquires the next swapchain texture and returns a
// view of it. The view is released by [Surface.Present].
func (sf *Surface) GetCurrentTexture() (*wgpu.TextureView, error) {
	if sf.surface == nil {
		return nil, ErrReleased
	}
	sf.releaseCurrent()
	tex, err := sf.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("gpu.Surface GetCurrentTexture: %w", err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("gpu.Surface CreateView: %w", err)
	}
	sf.curTexture = tex
	sf.curView = view
	return view, nil
}

// Present presents the current frame and releases its texture.
func (sf *Surface) Present() {
	if sf.surface == nil || sf.curTexture == nil {
		return
	}
	sf.surface.Present()
	sf.releaseCurrent()
}

func (sf *Surface) releaseCurrent() {
	if sf.curView != nil {
		sf.curView.Release()
		sf.curView = nil
	}
	if sf.curTexture != nil {
		sf.curTexture.Release()
		sf.curTexture = nil
	}
}

// SetSize re-configures the surface for a new size,
// doing nothing if it is already that size.
func (sf *Surface) SetSize(size image.Point) error {
	if sf.surface == nil {
		return ErrReleased
	}
	if sf.Format.Size == size {
		return nil
	}
	if size.X <= 0 || size.Y <= 0 {
		return fmt.Errorf("gpu.Surface SetSize: invalid size %v", size)
	}
	sf.releaseCurrent()
	sf.Format.Size = size
	sf.render.Format.Size = size
	sf.config.Width = uint32(size.X)
	sf.config.Height = uint32(size.Y)
	sf.surface.Configure(sf.gpu.Adapter, sf.device.Device, sf.config)
	return nil
}

// Release releases the surface. It does not release the device.
func (sf *Surface) Release() {
	sf.releaseCurrent()
	if sf.surface != nil {
		sf.surface.Release()
		sf.surface = nil
	}
}

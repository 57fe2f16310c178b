// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Render manages the render pass settings for a [Renderer]:
// the target format and the clear color.
type Render struct {
	// image format information for the framebuffer we render to
	Format TextureFormat

	// ClearColor is the color the target is cleared to at the
	// start of each render pass, in non-linear (display) space.
	ClearColor wgpu.Color
}

// Config sets the format and a black clear color.
func (rd *Render) Config(tf *TextureFormat) {
	rd.Format = *tf
	rd.ClearColor = wgpu.Color{R: 0, G: 0, B: 0, A: 1}
}

// SetClearColor sets the clear color components, in the 0-1 range.
func (rd *Render) SetClearColor(r, g, b, a float64) *Render {
	rd.ClearColor = wgpu.Color{R: r, G: g, B: b, A: a}
	return rd
}

// ClearValue returns the value to clear to. For sRGB targets, the
// hardware encodes what it writes, so the clear color is converted
// to linear space first, making the stored pixel the requested color.
func (rd *Render) ClearValue() wgpu.Color {
	if rd.Format.IsSRGB() {
		return LinearColor(rd.ClearColor)
	}
	return rd.ClearColor
}

// ClearRenderPass returns a render pass descriptor that clears the framebuffer
func (rd *Render) ClearRenderPass(view *wgpu.TextureView) *wgpu.RenderPassDescriptor {
	return &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			ClearValue: rd.ClearValue(),
			StoreOp:    wgpu.StoreOpStore,
		}},
	}
}

// BeginRenderPass adds commands to the given command encoder
// to start the render pass on given view.
// Clears the frame first, according to the ClearColor.
func (rd *Render) BeginRenderPass(cmd *wgpu.CommandEncoder, view *wgpu.TextureView) *wgpu.RenderPassEncoder {
	return cmd.BeginRenderPass(rd.ClearRenderPass(view))
}

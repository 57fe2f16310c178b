// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer is an interface for something that can actually be rendered to.
// It returns a TextureView to render into, and then Presents the result.
// Surface and RenderTexture are the two main implementers.
type Renderer interface {
	// GetCurrentTexture returns a TextureView that is the current
	// target for rendering. It is only valid until [Renderer.Present].
	GetCurrentTexture() (*wgpu.TextureView, error)

	// Present presents the rendered texture to the display (if any)
	// and releases per-frame target objects.
	Present()

	// Device returns the device for this renderer.
	Device() *Device

	// Render returns the Render object for this renderer,
	// which supports clearing and begins render passes.
	Render() *Render

	// Size returns the current pixel size.
	Size() image.Point

	// SetSize sets the pixel size, re-creating or re-configuring
	// the target as needed.
	SetSize(size image.Point) error

	// Release releases the renderer's resources.
	Release()
}

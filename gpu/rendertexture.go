// Copyright (c) 2022, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderTexture is an offscreen, non-window-backed rendering target,
// functioning like a Surface. Its contents can be read back with
// [RenderTexture.ReadImage].
type RenderTexture struct {
	// Render helper for this RenderTexture.
	render Render

	// Format has the current image format and dimensions.
	Format TextureFormat

	// the texture that is rendered into.
	frame *Texture

	// device, which we do NOT own.
	device *Device
}

// NewRenderTexture returns a new offscreen render target on the given
// device, of the given size, in the RGBA8Unorm format.
func NewRenderTexture(dev *Device, size image.Point) (*RenderTexture, error) {
	rt := &RenderTexture{device: dev}
	rt.Format.Defaults()
	rt.Format.Size = size
	rt.render.Config(&rt.Format)
	if err := rt.configFrame(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *RenderTexture) Device() *Device   { return rt.device }
func (rt *RenderTexture) Render() *Render   { return &rt.render }
func (rt *RenderTexture) Size() image.Point { return rt.Format.Size }

func (rt *RenderTexture) configFrame() error {
	rt.releaseFrame()
	fr := NewTexture(rt.device, "gpu.RenderTexture")
	if err := fr.ConfigRenderTarget(&rt.Format); err != nil {
		return err
	}
	rt.frame = fr
	return nil
}

// GetCurrentTexture returns a TextureView that is the current
// target for rendering.
func (rt *RenderTexture) GetCurrentTexture() (*wgpu.TextureView, error) {
	if rt.frame == nil {
		return nil, ErrReleased
	}
	return rt.frame.View()
}

// Present is a no-op: offscreen frames stay in the texture.
func (rt *RenderTexture) Present() {}

// SetSize sets the size for the render texture,
// doesn't do anything if already that size.
func (rt *RenderTexture) SetSize(size image.Point) error {
	if rt.Format.Size == size && rt.frame != nil {
		return nil
	}
	rt.Format.Size = size
	rt.render.Format.Size = size
	return rt.configFrame()
}

// ReadPixels returns the tightly packed RGBA bytes of the last
// rendered frame. All submitted work is waited for first.
func (rt *RenderTexture) ReadPixels() ([]byte, error) {
	if rt.frame == nil {
		return nil, ErrReleased
	}
	return rt.frame.ReadPixels()
}

// ReadImage returns the last rendered frame as an image.
func (rt *RenderTexture) ReadImage() (*image.RGBA, error) {
	pix, err := rt.ReadPixels()
	if err != nil {
		return nil, err
	}
	img := image.NewRGBA(rt.Format.Bounds())
	copy(img.Pix, pix)
	return img, nil
}

func (rt *RenderTexture) releaseFrame() {
	if rt.frame == nil {
		return
	}
	rt.frame.Release()
	rt.frame = nil
}

// Release releases the render texture. It does not release the device.
func (rt *RenderTexture) Release() {
	rt.releaseFrame()
}

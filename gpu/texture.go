// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"math"

	"cogentcore.org/gpuview/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ErrTextureData is returned when pixel data does not match
// the texture dimensions.
var ErrTextureData = errors.New("gpu: pixel data does not match texture size")

// MaxTextureDimension is the largest texture width or height accepted,
// which is the WebGPU default limit for maxTextureDimension2D.
const MaxTextureDimension = 8192

// CheckSize returns an error wrapping [ErrTextureData] unless width
// and height are both in the range 1 to [MaxTextureDimension].
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: non-positive size %dx%d", ErrTextureData, width, height)
	}
	if width > MaxTextureDimension || height > MaxTextureDimension {
		return fmt.Errorf("%w: size %dx%d exceeds %d", ErrTextureData, width, height, MaxTextureDimension)
	}
	return nil
}

// Texture represents a WebGPU Texture with an associated TextureView.
// The WebGPU Texture is in device memory, in an optimized format.
type Texture struct {

	// Name of the texture, used as the label. This is helpful for debugging.
	Name string

	// Format & size of texture
	Format TextureFormat

	// Readable adds CopySrc usage, so the texture can be read back.
	Readable bool

	// WebGPU texture handle, in device memory
	texture *wgpu.Texture

	// WebGPU texture view
	view *wgpu.TextureView

	// device, which we do NOT own.
	device *Device
}

// NewTexture returns a new Texture on the given device,
// with the default RGBA8Unorm format.
func NewTexture(dev *Device, name string) *Texture {
	tx := &Texture{Name: name, device: dev}
	tx.Format.Defaults()
	return tx
}

// CheckPixels returns an error wrapping [ErrTextureData] unless the size
// passes [CheckSize] and pix holds exactly width*height RGBA pixels.
func CheckPixels(pix []byte, width, height int) error {
	if err := CheckSize(width, height); err != nil {
		return err
	}
	if width > math.MaxInt/4/height || len(pix) != width*height*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d RGBA (want %d)", ErrTextureData, len(pix), width, height, width*height*4)
	}
	return nil
}

// SetFromBytes creates the texture at the given size and uploads
// the given tightly packed RGBA bytes with a single full-extent
// queue write. The data is checked with [CheckPixels] before
// any GPU object is created.
func (tx *Texture) SetFromBytes(pix []byte, width, height int) error {
	if err := CheckPixels(pix, width, height); err != nil {
		return err
	}
	tx.Format.Set(width, height, wgpu.TextureFormatRGBA8Unorm)
	usage := wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst | wgpu.TextureUsageRenderAttachment
	if tx.Readable {
		usage |= wgpu.TextureUsageCopySrc
	}
	if err := tx.CreateTexture(usage); err != nil { // already logged
		return err
	}

	size := tx.Format.Extent3D()

	// https://www.w3.org/TR/webgpu/#gpuimagecopytexture
	err := tx.device.Queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{X: 0, Y: 0, Z: 0},
		},
		pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * uint32(width),
			RowsPerImage: uint32(height),
		},
		&size,
	)
	if errors.Log(err) != nil {
		tx.Release()
		return err
	}
	return nil
}

// ConfigRenderTarget configures this texture as a render attachment
// in the given format, which can be copied back to the host.
func (tx *Texture) ConfigRenderTarget(tf *TextureFormat) error {
	tx.Format = *tf
	tx.Format.Samples = 1
	return tx.CreateTexture(wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageCopySrc | wgpu.TextureUsageTextureBinding)
}

// CreateTexture creates the texture based on current settings,
// and a view of that texture.  Calls release first.
func (tx *Texture) CreateTexture(usage wgpu.TextureUsage) error {
	tx.Release()
	if tx.device.IsReleased() {
		return ErrReleased
	}
	t, err := tx.device.Device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         tx.Name,
		Size:          tx.Format.Extent3D(),
		MipLevelCount: 1,
		SampleCount:   uint32(max(1, tx.Format.Samples)),
		Dimension:     wgpu.TextureDimension2D,
		Format:        tx.Format.Format,
		Usage:         usage,
	})
	if errors.Log(err) != nil {
		return err
	}
	tx.texture = t
	vw, err := t.CreateView(nil)
	if errors.Log(err) != nil {
		tx.Release()
		return err
	}
	tx.view = vw
	return nil
}

// View returns the full 2D view of the texture,
// or [ErrReleased] if the texture has not been created
// or has been released.
func (tx *Texture) View() (*wgpu.TextureView, error) {
	if tx.view == nil {
		return nil, ErrReleased
	}
	return tx.view, nil
}

// IsActive returns true if the texture has been created
// and not released.
func (tx *Texture) IsActive() bool {
	return tx.texture != nil
}

// ReadPixels copies the texture contents back to host memory,
// returning tightly packed rows. The texture must be Readable
// or a render target, and must be 4 bytes per pixel.
func (tx *Texture) ReadPixels() ([]byte, error) {
	if tx.texture == nil || tx.device.IsReleased() {
		return nil, ErrReleased
	}
	if bpp := tx.Format.BytesPerPixel(); bpp != 4 {
		return nil, errors.Log(fmt.Errorf("gpu.Texture.ReadPixels %s: %d bytes per pixel in %s", tx.Name, bpp, tx.Format.String()))
	}
	dims := NewTextureBufferDims(tx.Format.Size)
	staging, err := tx.device.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: tx.Name + " readback",
		Size:  dims.PaddedSize(),
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	defer staging.Release()
	cmd, err := tx.device.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	defer cmd.Release()
	size := tx.Format.Extent3D()
	cmd.CopyTextureToBuffer(
		&wgpu.ImageCopyTexture{
			Aspect:   wgpu.TextureAspectAll,
			Texture:  tx.texture,
			MipLevel: 0,
		},
		&wgpu.ImageCopyBuffer{
			Buffer: staging,
			Layout: wgpu.TextureDataLayout{
				Offset:       0,
				BytesPerRow:  uint32(dims.PaddedRowSize),
				RowsPerImage: uint32(dims.Height),
			},
		},
		&size,
	)
	if err := SubmitWait(tx.device, cmd); err != nil {
		return nil, err
	}
	padded, err := readMapped(tx.device, staging, dims.PaddedSize())
	if err != nil {
		return nil, err
	}
	return dims.Unpad(padded), nil
}

// ReleaseView destroys any existing view
func (tx *Texture) ReleaseView() {
	if tx.view == nil {
		return
	}
	tx.view.Release()
	tx.view = nil
}

// Release destroys the view and the texture, nils fields
func (tx *Texture) Release() {
	tx.ReleaseView()
	if tx.texture == nil {
		return
	}
	tx.texture.Release()
	tx.texture = nil
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"image"

	"github.com/cogentcore/webgpu/wgpu"
)

// TextureFormat describes the size and WebGPU format of a Texture.
type TextureFormat struct {
	// Size of image
	Size image.Point

	// Texture format: RGBA8Unorm is default
	Format wgpu.TextureFormat

	// number of samples: always 1 here
	Samples int
}

// NewTextureFormat returns a new TextureFormat with default format and given size
func NewTextureFormat(width, height int) *TextureFormat {
	tf := &TextureFormat{}
	tf.Defaults()
	tf.Size = image.Point{width, height}
	return tf
}

func (tf *TextureFormat) Defaults() {
	tf.Format = wgpu.TextureFormatRGBA8Unorm
	tf.Samples = 1
}

// String returns human-readable version of format
func (tf *TextureFormat) String() string {
	return fmt.Sprintf("Size: %v  Format: %s  MultiSample: %d", tf.Size, TextureFormatNames[tf.Format], tf.Samples)
}

// IsSRGB returns true if the format is sRGB encoded.
func (tf *TextureFormat) IsSRGB() bool {
	return IsSRGB(tf.Format)
}

// Set sets width, height and format
func (tf *TextureFormat) Set(w, h int, ft wgpu.TextureFormat) {
	tf.Size = image.Point{X: w, Y: h}
	tf.Format = ft
}

func (tf *TextureFormat) Extent3D() wgpu.Extent3D {
	return wgpu.Extent3D{
		Width:              uint32(tf.Size.X),
		Height:             uint32(tf.Size.Y),
		DepthOrArrayLayers: 1,
	}
}

// Bounds returns the rectangle defining this image: 0,0,w,h
func (tf *TextureFormat) Bounds() image.Rectangle {
	return image.Rectangle{Max: tf.Size}
}

// BytesPerPixel returns number of bytes required to represent
// one pixel, or 0 for formats not in [TextureFormatSizes].
func (tf *TextureFormat) BytesPerPixel() int {
	return TextureFormatSizes[tf.Format]
}

////////////////////////////////////////////////////////////////////////

// TextureBufferDims represents the sizes required in Buffer to
// represent a texture of a given size. Rows copied out of a
// texture must be padded to [wgpu.CopyBytesPerRowAlignment].
type TextureBufferDims struct {
	Width           uint64
	Height          uint64
	UnpaddedRowSize uint64
	PaddedRowSize   uint64
}

func NewTextureBufferDims(size image.Point) *TextureBufferDims {
	td := &TextureBufferDims{}
	td.Set(size)
	return td
}

func (td *TextureBufferDims) Set(size image.Point) {
	td.Width = uint64(size.X)
	td.Height = uint64(size.Y)
	const bytesPerPixel = 4
	td.UnpaddedRowSize = td.Width * bytesPerPixel
	align := uint64(wgpu.CopyBytesPerRowAlignment)
	padding := (align - td.UnpaddedRowSize%align) % align
	td.PaddedRowSize = td.UnpaddedRowSize + padding
}

// PaddedSize returns the total padded size of data
func (td *TextureBufferDims) PaddedSize() uint64 {
	return td.PaddedRowSize * td.Height
}

// UnpaddedSize returns the total unpadded size of data
func (td *TextureBufferDims) UnpaddedSize() uint64 {
	return td.UnpaddedRowSize * td.Height
}

// HasNoPadding returns true if the Unpadded and Padded row sizes
// are the same.
func (td *TextureBufferDims) HasNoPadding() bool {
	return td.UnpaddedRowSize == td.PaddedRowSize
}

// Unpad copies padded rows from src into a tightly packed slice.
func (td *TextureBufferDims) Unpad(src []byte) []byte {
	if td.HasNoPadding() {
		return append([]byte(nil), src[:td.UnpaddedSize()]...)
	}
	out := make([]byte, td.UnpaddedSize())
	for y := range td.Height {
		si := y * td.PaddedRowSize
		di := y * td.UnpaddedRowSize
		copy(out[di:di+td.UnpaddedRowSize], src[si:si+td.UnpaddedRowSize])
	}
	return out
}

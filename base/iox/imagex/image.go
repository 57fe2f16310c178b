// Copyright (c) 2025, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"image"
	"image/draw"
)

// CloneAsRGBA returns an RGBA copy of the supplied image,
// with bounds starting at 0,0.
func CloneAsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	bounds := src.Bounds()
	img := image.NewRGBA(image.Rectangle{Max: bounds.Size()})
	draw.Draw(img, img.Bounds(), src, bounds.Min, draw.Src)
	return img
}

// AsRGBA returns the image as an RGBA: if it already is one
// with tightly packed rows starting at 0,0, then it returns
// that image directly. Otherwise it returns a clone.
func AsRGBA(src image.Image) *image.RGBA {
	if src == nil {
		return nil
	}
	if rgba, ok := src.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) && rgba.Stride == 4*rgba.Rect.Dx() {
		return rgba
	}
	return CloneAsRGBA(src)
}

// Pixels returns the tightly packed, non-premultiplied RGBA bytes
// of the given image along with its width and height. This is the
// raw pixel layout that GPU textures are uploaded from.
func Pixels(src image.Image) (pix []byte, width, height int) {
	sz := src.Bounds().Size()
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Rect.Min == (image.Point{}) && nrgba.Stride == 4*sz.X {
		return nrgba.Pix, sz.X, sz.Y
	}
	img := image.NewNRGBA(image.Rectangle{Max: sz})
	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)
	return img.Pix, sz.X, sz.Y
}

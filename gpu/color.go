// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"github.com/chewxy/math32"
	"github.com/cogentcore/webgpu/wgpu"
)

// LinearFromSRGB returns the linear value of an sRGB encoded
// color component in the 0-1 range.
func LinearFromSRGB(v float32) float32 {
	if v <= 0.04045 {
		return v / 12.92
	}
	return math32.Pow((v+0.055)/1.055, 2.4)
}

// SRGBFromLinear is the inverse of [LinearFromSRGB].
func SRGBFromLinear(v float32) float32 {
	if v <= 0.0031308 {
		return v * 12.92
	}
	return 1.055*math32.Pow(v, 1/2.4) - 0.055
}

// LinearColor returns the color with its red, green and blue
// converted from sRGB to linear. Alpha is already linear.
func LinearColor(c wgpu.Color) wgpu.Color {
	lin := func(v float64) float64 { return float64(LinearFromSRGB(float32(v))) }
	return wgpu.Color{R: lin(c.R), G: lin(c.G), B: lin(c.B), A: c.A}
}

// UnitToByte returns the byte for a 0-1 value, clamped and rounded.
func UnitToByte(v float32) uint8 {
	return uint8(math32.Max(0, math32.Min(1, v))*255 + 0.5)
}

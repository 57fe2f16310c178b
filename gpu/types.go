// Copyright (c) 2019, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// Types is a list of supported GPU data types for vertex attributes.
type Types int32

const (
	UndefinedType Types = iota

	Float32
	Float32Vector2
	Float32Vector3
	Float32Vector4
)

var typeNames = map[Types]string{
	UndefinedType:  "UndefinedType",
	Float32:        "Float32",
	Float32Vector2: "Float32Vector2",
	Float32Vector3: "Float32Vector3",
	Float32Vector4: "Float32Vector4",
}

func (tp Types) String() string {
	if nm, ok := typeNames[tp]; ok {
		return nm
	}
	return fmt.Sprintf("Types(%d)", int32(tp))
}

// VertexFormat returns the WebGPU VertexFormat for given type.
func (tp Types) VertexFormat() wgpu.VertexFormat {
	return TypeToVertexFormat[tp]
}

// Bytes returns number of bytes for this type
func (tp Types) Bytes() int {
	return TypeSizes[tp]
}

// Floats returns the number of float32 components of the type.
func (tp Types) Floats() int {
	return tp.Bytes() / 4
}

var TypeToVertexFormat = map[Types]wgpu.VertexFormat{
	Float32:        wgpu.VertexFormatFloat32,
	Float32Vector2: wgpu.VertexFormatFloat32x2,
	Float32Vector3: wgpu.VertexFormatFloat32x3,
	Float32Vector4: wgpu.VertexFormatFloat32x4,
}

// TypeSizes gives our data type sizes in bytes
var TypeSizes = map[Types]int{
	Float32:        4,
	Float32Vector2: 8,
	Float32Vector3: 12,
	Float32Vector4: 16,
}

// TextureFormatSizes gives size of known WebGPU
// TextureFormats in bytes
var TextureFormatSizes = map[wgpu.TextureFormat]int{
	wgpu.TextureFormatUndefined:      0,
	wgpu.TextureFormatRGBA8Unorm:     4,
	wgpu.TextureFormatRGBA8UnormSrgb: 4,
	wgpu.TextureFormatBGRA8Unorm:     4,
	wgpu.TextureFormatBGRA8UnormSrgb: 4,
}

// TextureFormatNames translates known WebGPU TextureFormats to names
var TextureFormatNames = map[wgpu.TextureFormat]string{
	wgpu.TextureFormatUndefined:      "Undefined",
	wgpu.TextureFormatRGBA8Unorm:     "RGBA8Unorm",
	wgpu.TextureFormatRGBA8UnormSrgb: "RGBA8UnormSrgb",
	wgpu.TextureFormatBGRA8Unorm:     "BGRA8Unorm",
	wgpu.TextureFormatBGRA8UnormSrgb: "BGRA8UnormSrgb",
}

// IsSRGB returns true if the given texture format
// applies sRGB encoding on write and decoding on read.
func IsSRGB(tf wgpu.TextureFormat) bool {
	switch tf {
	case wgpu.TextureFormatRGBA8UnormSrgb, wgpu.TextureFormatBGRA8UnormSrgb:
		return true
	}
	return false
}

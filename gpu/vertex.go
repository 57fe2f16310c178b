// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// VertexLayout describes interleaved float32 vertex data in a single
// vertex buffer bound at slot 0: each attribute is at the next
// shader location, packed one after the other.
type VertexLayout struct {
	// Types of the attributes, in shader location order.
	Types []Types

	attrs  []wgpu.VertexAttribute
	stride uint64
}

// NewVertexLayout returns a new layout for attributes of the given types,
// e.g., Float32Vector2 position followed by Float32Vector3 color.
func NewVertexLayout(types ...Types) *VertexLayout {
	vl := &VertexLayout{Types: types}
	var off uint64
	for i, tp := range types {
		vl.attrs = append(vl.attrs, wgpu.VertexAttribute{
			Format:         tp.VertexFormat(),
			Offset:         off,
			ShaderLocation: uint32(i),
		})
		off += uint64(tp.Bytes())
	}
	vl.stride = off
	return vl
}

// Stride returns the number of bytes per vertex.
func (vl *VertexLayout) Stride() uint64 {
	return vl.stride
}

// FloatsPerVertex returns the number of float32 values per vertex.
func (vl *VertexLayout) FloatsPerVertex() int {
	return int(vl.stride / 4)
}

// Attributes returns the WebGPU attribute descriptions.
func (vl *VertexLayout) Attributes() []wgpu.VertexAttribute {
	return vl.attrs
}

// BufferLayout returns the WebGPU layout for a vertex buffer
// with this format, advancing per vertex.
func (vl *VertexLayout) BufferLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: vl.stride,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  vl.attrs,
	}
}

// VertexCount returns the number of whole vertices in data,
// or an error if data is empty, not a whole number of vertices,
// or the layout has no attributes.
func (vl *VertexLayout) VertexCount(data []float32) (int, error) {
	fpv := vl.FloatsPerVertex()
	if fpv == 0 {
		return 0, fmt.Errorf("gpu.VertexLayout: no attributes")
	}
	if len(data) == 0 || len(data)%fpv != 0 {
		return 0, fmt.Errorf("gpu.VertexLayout: %d floats is not a whole number of %d-float vertices", len(data), fpv)
	}
	return len(data) / fpv, nil
}

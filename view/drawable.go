// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"embed"

	"cogentcore.org/gpuview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed shaders/*.wgsl
var shaders embed.FS

// Drawable is one of the fixed shapes that a [Session] draws:
// a [TexturedQuad] or a [FlatTriangle]. Each supplies its vertex
// data and layout, its shader, and the resources it binds.
type Drawable interface {
	// Name is used to label GPU objects.
	Name() string

	// Validate checks the drawable's input data, before any
	// GPU object is created.
	Validate() error

	// VertexLayout is the layout of the interleaved vertex data.
	VertexLayout() *gpu.VertexLayout

	// Vertices is the interleaved float32 vertex data.
	Vertices() []float32

	// Topology is how vertices are assembled into primitives.
	Topology() gpu.Topologies

	// ShaderFile is the name of the embedded WGSL file.
	ShaderFile() string

	// createResources creates the resources bound by the shader,
	// after the vertex buffer and before the pipeline.
	createResources(sn *Session) error

	// createBindGroup returns the bind group for group 0,
	// or nil if the shader binds nothing.
	createBindGroup(sn *Session, pl *gpu.GraphicsPipeline) (*wgpu.BindGroup, error)
}

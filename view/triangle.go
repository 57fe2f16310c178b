// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"cogentcore.org/gpuview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// triangleVertices are position (x, y) and color (r, g, b):
// green at the top, red at the bottom left, blue at the bottom right.
var triangleVertices = []float32{
	0, 0.5, 0, 1, 0,
	-0.5, -0.5, 1, 0, 0,
	0.5, -0.5, 0, 0, 1,
}

// FlatTriangle draws a single triangle whose color is interpolated
// between its vertices. It binds no resources.
type FlatTriangle struct{}

// NewFlatTriangle returns a new FlatTriangle.
func NewFlatTriangle() *FlatTriangle {
	return &FlatTriangle{}
}

func (ft *FlatTriangle) Name() string    { return "flat-triangle" }
func (ft *FlatTriangle) Validate() error { return nil }

func (ft *FlatTriangle) VertexLayout() *gpu.VertexLayout {
	return gpu.NewVertexLayout(gpu.Float32Vector2, gpu.Float32Vector3)
}

func (ft *FlatTriangle) Vertices() []float32      { return triangleVertices }
func (ft *FlatTriangle) Topology() gpu.Topologies { return gpu.TriangleList }
func (ft *FlatTriangle) ShaderFile() string       { return "triangle.wgsl" }

func (ft *FlatTriangle) createResources(sn *Session) error { return nil }

func (ft *FlatTriangle) createBindGroup(sn *Session, pl *gpu.GraphicsPipeline) (*wgpu.BindGroup, error) {
	return nil, nil
}

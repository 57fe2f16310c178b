// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/gpuview/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// GraphicsPipeline is a Pipeline specifically for the Graphics stack,
// drawing interleaved vertex data from one vertex buffer into a single
// color target. The pipeline layout is derived automatically from the
// shader code, so bind group layouts come from [GraphicsPipeline.BindGroupLayout].
type GraphicsPipeline struct {
	Pipeline

	// Primitive has various settings for graphics primitives,
	// e.g., TriangleList
	Primitive wgpu.PrimitiveState

	Multisample wgpu.MultisampleState

	// Blend is the color blending state: nil means no blending,
	// with new color overwriting old.
	Blend *wgpu.BlendState

	// Format is the color target format, which must match the
	// renderer being drawn into.
	Format wgpu.TextureFormat

	// Vertex is the layout of the vertex buffer at slot 0.
	Vertex *VertexLayout

	renderPipeline *wgpu.RenderPipeline
}

// NewGraphicsPipeline returns a new GraphicsPipeline on the given device,
// with default settings: see [GraphicsPipeline.SetGraphicsDefaults].
func NewGraphicsPipeline(name string, dev *Device) *GraphicsPipeline {
	pl := &GraphicsPipeline{}
	pl.Name = name
	pl.device = dev
	pl.SetGraphicsDefaults()
	return pl
}

// BindPipeline binds this pipeline as the one to use for next commands in
// the given render pass. Config must have been called.
func (pl *GraphicsPipeline) BindPipeline(rp *wgpu.RenderPassEncoder) error {
	if pl.renderPipeline == nil {
		return ErrReleased
	}
	rp.SetPipeline(pl.renderPipeline)
	return nil
}

// VertexEntry returns the [ShaderEntry] for [VertexShader].
// Can be nil if no vertex shader defined.
func (pl *GraphicsPipeline) VertexEntry() *ShaderEntry {
	return pl.Entry(VertexShader)
}

// FragmentEntry returns the [ShaderEntry] for [FragmentShader].
// Can be nil if no fragment shader defined.
func (pl *GraphicsPipeline) FragmentEntry() *ShaderEntry {
	return pl.Entry(FragmentShader)
}

// Config creates the render pipeline once the shaders have been loaded
// and the entries, Format and Vertex layout have been set.
// Calling it again releases and re-creates the pipeline.
func (pl *GraphicsPipeline) Config() error {
	pl.ReleasePipeline()
	if pl.device.IsReleased() {
		return ErrReleased
	}
	ve := pl.VertexEntry()
	fe := pl.FragmentEntry()
	if ve == nil || fe == nil {
		return fmt.Errorf("gpu.GraphicsPipeline %q: needs both vertex and fragment entries", pl.Name)
	}
	vm, err := ve.Shader.Module()
	if err != nil {
		return err
	}
	fm, err := fe.Shader.Module()
	if err != nil {
		return err
	}
	var buffers []wgpu.VertexBufferLayout
	if pl.Vertex != nil {
		buffers = []wgpu.VertexBufferLayout{pl.Vertex.BufferLayout()}
	}
	pd := &wgpu.RenderPipelineDescriptor{
		Label: pl.Name,
		// nil Layout is the automatic layout derived from the shaders
		Primitive:   pl.Primitive,
		Multisample: pl.Multisample,
		Vertex: wgpu.VertexState{
			Module:     vm,
			EntryPoint: ve.Entry,
			Buffers:    buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     fm,
			EntryPoint: fe.Entry,
			Targets: []wgpu.ColorTargetState{{
				Format:    pl.Format,
				Blend:     pl.Blend,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
	}
	rp, err := pl.device.Device.CreateRenderPipeline(pd)
	if err != nil {
		errors.Log(err)
		return fmt.Errorf("gpu.GraphicsPipeline %q: %w", pl.Name, err)
	}
	pl.renderPipeline = rp
	return nil
}

// BindGroupLayout returns the layout of the given bind group,
// as derived from the shader code. The caller must release it.
func (pl *GraphicsPipeline) BindGroupLayout(group int) (*wgpu.BindGroupLayout, error) {
	if pl.renderPipeline == nil {
		return nil, ErrReleased
	}
	return pl.renderPipeline.GetBindGroupLayout(uint32(group)), nil
}

// NewBindGroup returns a new bind group for the given group index
// with the given entries, using the pipeline's derived layout.
func (pl *GraphicsPipeline) NewBindGroup(group int, entries ...wgpu.BindGroupEntry) (*wgpu.BindGroup, error) {
	lay, err := pl.BindGroupLayout(group)
	if err != nil {
		return nil, err
	}
	defer lay.Release()
	bg, err := pl.device.Device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   fmt.Sprintf("%s group %d", pl.Name, group),
		Layout:  lay,
		Entries: entries,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	return bg, nil
}

// NewTextureBindGroup returns a bind group for the given group index with
// the sampler at binding 0 and the 2D view of the texture at binding 1.
func (pl *GraphicsPipeline) NewTextureBindGroup(group int, sm *Sampler, tx *Texture) (*wgpu.BindGroup, error) {
	samp, err := sm.Sampler()
	if err != nil {
		return nil, err
	}
	view, err := tx.View()
	if err != nil {
		return nil, err
	}
	return pl.NewBindGroup(group,
		wgpu.BindGroupEntry{Binding: 0, Sampler: samp},
		wgpu.BindGroupEntry{Binding: 1, TextureView: view})
}

// Release releases the pipeline and its shaders.
func (pl *GraphicsPipeline) Release() {
	pl.ReleasePipeline()
	pl.releaseShaders()
}

func (pl *GraphicsPipeline) ReleasePipeline() {
	if pl.renderPipeline != nil {
		pl.renderPipeline.Release()
		pl.renderPipeline = nil
	}
}

//////////////////////////////////////////////////////////////
// Set graphics options

// SetGraphicsDefaults configures all the default settings for a
// graphics rendering pipeline: triangle list, counter-clockwise
// front faces, no culling, no blending and a single sample.
func (pl *GraphicsPipeline) SetGraphicsDefaults() *GraphicsPipeline {
	pl.SetTopology(TriangleList)
	pl.SetFrontFace(wgpu.FrontFaceCCW)
	pl.SetCullMode(wgpu.CullModeNone)
	pl.SetMultisample(1)
	pl.Blend = nil
	pl.Format = wgpu.TextureFormatRGBA8Unorm
	return pl
}

// SetTopology sets the topology of vertex position data.
// TriangleList is the default.
func (pl *GraphicsPipeline) SetTopology(topo Topologies) *GraphicsPipeline {
	pl.Primitive.Topology = topo.Primitive()
	return pl
}

// SetFrontFace sets the winding order for what counts as a front face.
func (pl *GraphicsPipeline) SetFrontFace(face wgpu.FrontFace) *GraphicsPipeline {
	pl.Primitive.FrontFace = face
	return pl
}

// SetCullMode sets the face culling mode.
func (pl *GraphicsPipeline) SetCullMode(mode wgpu.CullMode) *GraphicsPipeline {
	pl.Primitive.CullMode = mode
	return pl
}

func (pl *GraphicsPipeline) SetMultisample(ms int) *GraphicsPipeline {
	pl.Multisample.Count = uint32(max(1, ms))
	pl.Multisample.Mask = 0xFFFFFFFF
	pl.Multisample.AlphaToCoverageEnabled = false
	return pl
}

// SetFormat sets the color target format.
func (pl *GraphicsPipeline) SetFormat(format wgpu.TextureFormat) *GraphicsPipeline {
	pl.Format = format
	return pl
}

// SetVertexLayout sets the vertex buffer layout.
func (pl *GraphicsPipeline) SetVertexLayout(vl *VertexLayout) *GraphicsPipeline {
	pl.Vertex = vl
	return pl
}

// Topologies are the different vertex topology
type Topologies int32

const (
	PointList Topologies = iota
	LineList
	LineStrip
	TriangleList
	TriangleStrip
)

func (tp Topologies) Primitive() wgpu.PrimitiveTopology {
	return WebGPUTopologies[tp]
}

func (tp Topologies) String() string {
	switch tp {
	case PointList:
		return "PointList"
	case LineList:
		return "LineList"
	case LineStrip:
		return "LineStrip"
	case TriangleList:
		return "TriangleList"
	case TriangleStrip:
		return "TriangleStrip"
	}
	return fmt.Sprintf("Topologies(%d)", int32(tp))
}

var WebGPUTopologies = map[Topologies]wgpu.PrimitiveTopology{
	PointList:     wgpu.PrimitiveTopologyPointList,
	LineList:      wgpu.PrimitiveTopologyLineList,
	LineStrip:     wgpu.PrimitiveTopologyLineStrip,
	TriangleList:  wgpu.PrimitiveTopologyTriangleList,
	TriangleStrip: wgpu.PrimitiveTopologyTriangleStrip,
}

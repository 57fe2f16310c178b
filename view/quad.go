// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"fmt"

	"cogentcore.org/gpuview/gpu"
	"github.com/cogentcore/webgpu/wgpu"
)

// quadVertices are position (x, y) and texture coordinate (u, v)
// for a strip covering the whole surface: top-left, bottom-left,
// top-right, bottom-right.
var quadVertices = []float32{
	-1, 1, 0, 0,
	-1, -1, 0, 1,
	1, 1, 1, 0,
	1, -1, 1, 1,
}

// TexturedQuad displays an RGBA image stretched over the whole surface.
type TexturedQuad struct {
	// Pixels are the tightly packed, non-premultiplied RGBA bytes.
	Pixels []byte

	// Width of the image in pixels.
	Width int

	// Height of the image in pixels.
	Height int
}

// NewTexturedQuad returns a new TexturedQuad for the given pixels.
func NewTexturedQuad(pix []byte, width, height int) *TexturedQuad {
	return &TexturedQuad{Pixels: pix, Width: width, Height: height}
}

func (tq *TexturedQuad) Name() string { return "textured-quad" }

func (tq *TexturedQuad) Validate() error {
	if err := gpu.CheckPixels(tq.Pixels, tq.Width, tq.Height); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

func (tq *TexturedQuad) VertexLayout() *gpu.VertexLayout {
	return gpu.NewVertexLayout(gpu.Float32Vector2, gpu.Float32Vector2)
}

func (tq *TexturedQuad) Vertices() []float32      { return quadVertices }
func (tq *TexturedQuad) Topology() gpu.Topologies { return gpu.TriangleStrip }
func (tq *TexturedQuad) ShaderFile() string       { return "quad.wgsl" }

func (tq *TexturedQuad) createResources(sn *Session) error {
	tx := gpu.NewTexture(sn.device, tq.Name()+" texture")
	tx.Readable = sn.readback
	if err := tx.SetFromBytes(tq.Pixels, tq.Width, tq.Height); err != nil {
		tx.Release()
		return err
	}
	th, err := gpu.Track(&sn.arena, tx)
	if err != nil {
		return err
	}
	sn.texture = th

	sm := gpu.NewSampler(tq.Name() + " sampler")
	if err := sm.Config(sn.device); err != nil {
		return err
	}
	smh, err := gpu.Track(&sn.arena, sm)
	if err != nil {
		return err
	}
	sn.sampler = smh
	return nil
}

func (tq *TexturedQuad) createBindGroup(sn *Session, pl *gpu.GraphicsPipeline) (*wgpu.BindGroup, error) {
	tx, err := sn.texture.Get()
	if err != nil {
		return nil, err
	}
	sm, err := sn.sampler.Get()
	if err != nil {
		return nil, err
	}
	return pl.NewTextureBindGroup(0, sm, tx)
}

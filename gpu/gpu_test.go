// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"image"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDevice returns a device with no surface, skipping the
// test if no adapter is available.
func testDevice(t *testing.T) *Device {
	t.Helper()
	gp, dev, err := NoDisplayGPU()
	if err != nil {
		t.Skipf("Need software GPU on CI: %v", err)
	}
	t.Cleanup(func() {
		dev.Release()
		gp.Release()
	})
	return dev
}

func TestVertexLayout(t *testing.T) {
	quad := NewVertexLayout(Float32Vector2, Float32Vector2)
	assert.Equal(t, uint64(16), quad.Stride())
	assert.Equal(t, 4, quad.FloatsPerVertex())
	attrs := quad.Attributes()
	require.Len(t, attrs, 2)
	assert.Equal(t, uint64(0), attrs[0].Offset)
	assert.Equal(t, uint64(8), attrs[1].Offset)
	assert.Equal(t, uint32(1), attrs[1].ShaderLocation)
	assert.Equal(t, wgpu.VertexFormatFloat32x2, attrs[1].Format)

	tri := NewVertexLayout(Float32Vector2, Float32Vector3)
	assert.Equal(t, uint64(20), tri.Stride())
	bl := tri.BufferLayout()
	assert.Equal(t, uint64(20), bl.ArrayStride)
	assert.Equal(t, wgpu.VertexFormatFloat32x3, bl.Attributes[1].Format)

	n, err := tri.VertexCount(make([]float32, 15))
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	_, err = tri.VertexCount(make([]float32, 14))
	assert.Error(t, err)
	_, err = tri.VertexCount(nil)
	assert.Error(t, err)
	_, err = NewVertexLayout().VertexCount(make([]float32, 4))
	assert.Error(t, err)
}

func TestTextureBufferDims(t *testing.T) {
	td := NewTextureBufferDims(image.Pt(64, 2))
	assert.True(t, td.HasNoPadding())
	assert.Equal(t, uint64(512), td.PaddedSize())

	td = NewTextureBufferDims(image.Pt(3, 2))
	assert.False(t, td.HasNoPadding())
	assert.Equal(t, uint64(12), td.UnpaddedRowSize)
	assert.Equal(t, uint64(256), td.PaddedRowSize)

	padded := make([]byte, td.PaddedSize())
	for i := range 12 {
		padded[i] = 1
		padded[256+i] = 2
	}
	out := td.Unpad(padded)
	require.Len(t, out, 24)
	assert.Equal(t, byte(1), out[11])
	assert.Equal(t, byte(2), out[12])
}

func TestCheckPixels(t *testing.T) {
	assert.NoError(t, CheckPixels(make([]byte, 16), 2, 2))
	assert.ErrorIs(t, CheckPixels(make([]byte, 15), 2, 2), ErrTextureData)
	assert.ErrorIs(t, CheckPixels(nil, 0, 2), ErrTextureData)
	assert.ErrorIs(t, CheckPixels(make([]byte, 8), -1, -2), ErrTextureData)
	assert.ErrorIs(t, CheckPixels([]byte{255, 0, 0, 255}, 1<<62+1, 1), ErrTextureData)
	assert.ErrorIs(t, CheckPixels(nil, 1<<62, 4), ErrTextureData)
	assert.ErrorIs(t, CheckPixels(make([]byte, (MaxTextureDimension+1)*4), MaxTextureDimension+1, 1), ErrTextureData)
	assert.NoError(t, CheckPixels(make([]byte, MaxTextureDimension*4), MaxTextureDimension, 1))

	assert.NoError(t, CheckSize(MaxTextureDimension, MaxTextureDimension))
	assert.ErrorIs(t, CheckSize(1, MaxTextureDimension+1), ErrTextureData)
	assert.ErrorIs(t, CheckSize(0, 1), ErrTextureData)
}

func TestTypes(t *testing.T) {
	assert.Equal(t, 12, Float32Vector3.Bytes())
	assert.Equal(t, 3, Float32Vector3.Floats())
	assert.Equal(t, 0, UndefinedType.Floats())
	assert.Equal(t, "Float32Vector2", Float32Vector2.String())
	assert.True(t, IsSRGB(wgpu.TextureFormatBGRA8UnormSrgb))
	assert.False(t, IsSRGB(wgpu.TextureFormatBGRA8Unorm))
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, TriangleStrip.Primitive())
	assert.Equal(t, "TriangleList", TriangleList.String())
	assert.Equal(t, "FragmentShader", FragmentShader.String())
}

func TestSRGB(t *testing.T) {
	for _, v := range []float32{0, 0.002, 0.2, 0.5, 0.9, 1} {
		assert.InDelta(t, v, SRGBFromLinear(LinearFromSRGB(v)), 1e-5)
	}
	assert.InDelta(t, 0.7874, LinearFromSRGB(0.9), 1e-3)
	lc := LinearColor(wgpu.Color{R: 1, G: 0.5, B: 0, A: 0.5})
	assert.InDelta(t, 1, lc.R, 1e-5)
	assert.InDelta(t, 0.214, lc.G, 1e-3)
	assert.Equal(t, 0.5, lc.A)
	assert.Equal(t, uint8(128), UnitToByte(0.5))
	assert.Equal(t, uint8(255), UnitToByte(1.5))
	assert.Equal(t, uint8(0), UnitToByte(-1))
}

func TestRenderClearValue(t *testing.T) {
	var rd Render
	rd.Config(NewTextureFormat(4, 4))
	rd.SetClearColor(0.9, 0.9, 0.9, 1)
	assert.Equal(t, wgpu.Color{R: 0.9, G: 0.9, B: 0.9, A: 1}, rd.ClearValue())

	rd.Format.Format = wgpu.TextureFormatBGRA8UnormSrgb
	cv := rd.ClearValue()
	assert.InDelta(t, 0.7874, cv.R, 1e-3)
	assert.Equal(t, 1.0, cv.A)

	pd := rd.ClearRenderPass(nil)
	require.Len(t, pd.ColorAttachments, 1)
	assert.Equal(t, wgpu.LoadOpClear, pd.ColorAttachments[0].LoadOp)
	assert.Equal(t, wgpu.StoreOpStore, pd.ColorAttachments[0].StoreOp)
}

func TestPipelineDefaults(t *testing.T) {
	pl := NewGraphicsPipeline("test", &Device{})
	assert.Equal(t, wgpu.CullModeNone, pl.Primitive.CullMode)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleList, pl.Primitive.Topology)
	assert.Equal(t, uint32(1), pl.Multisample.Count)
	assert.Nil(t, pl.Blend)
	pl.SetTopology(TriangleStrip).SetMultisample(0)
	assert.Equal(t, wgpu.PrimitiveTopologyTriangleStrip, pl.Primitive.Topology)
	assert.Equal(t, uint32(1), pl.Multisample.Count)

	sh := pl.AddShader("main")
	assert.Same(t, sh, pl.AddShader("main"))
	pl.AddEntry(sh, VertexShader, "vertexMain")
	pl.AddEntry(sh, FragmentShader, "fragmentMain")
	assert.Equal(t, "vertexMain", pl.VertexEntry().Entry)
	assert.Equal(t, "fragmentMain", pl.FragmentEntry().Entry)
	assert.Same(t, sh, pl.Shader("main"))
	assert.Nil(t, pl.Shader("other"))

	// released device: nothing is created
	assert.ErrorIs(t, pl.Config(), ErrReleased)
	_, err := pl.BindGroupLayout(0)
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, pl.BindPipeline(nil), ErrReleased)
}

func TestReleasedDevice(t *testing.T) {
	dev := &Device{}
	assert.True(t, dev.IsReleased())
	_, err := NewVertexBuffer(dev, "v", NewVertexLayout(Float32Vector2), []float32{0, 0}, false)
	assert.ErrorIs(t, err, ErrReleased)
	tx := NewTexture(dev, "t")
	assert.ErrorIs(t, tx.SetFromBytes(make([]byte, 4), 1, 1), ErrReleased)
	// invalid data is rejected before the device is touched
	assert.ErrorIs(t, tx.SetFromBytes(make([]byte, 3), 1, 1), ErrTextureData)
	assert.ErrorIs(t, tx.SetFromBytes([]byte{255, 0, 0, 255}, 1<<62+1, 1), ErrTextureData)
	assert.False(t, tx.IsActive())
	_, err = tx.View()
	assert.ErrorIs(t, err, ErrReleased)
	assert.ErrorIs(t, NewSampler("s").Config(dev), ErrReleased)
	assert.ErrorIs(t, NewShader("s", dev).OpenCode("fn main() {}"), ErrReleased)
	assert.ErrorIs(t, NewShader("s", dev).OpenFileFS(fstest.MapFS{}, "missing.wgsl"), fs.ErrNotExist)
	shaderFS := fstest.MapFS{"s.wgsl": {Data: []byte("fn main() {}")}}
	assert.ErrorIs(t, NewShader("s", dev).OpenFileFS(shaderFS, "s.wgsl"), ErrReleased)
	dev.WaitDone()
	dev.Release()
}

func TestGPUVertexBuffer(t *testing.T) {
	dev := testDevice(t)
	data := []float32{-1, 1, 0, 0, -1, -1, 0, 1}
	buf, err := NewVertexBuffer(dev, "quad", NewVertexLayout(Float32Vector2, Float32Vector2), data, true)
	require.NoError(t, err)
	defer buf.Release()
	assert.Equal(t, uint64(32), buf.GetSize())
	got, err := ReadBuffer(dev, buf, 32)
	require.NoError(t, err)
	assert.Equal(t, wgpu.ToBytes(data), got)
}

func TestGPUTextureReadback(t *testing.T) {
	dev := testDevice(t)
	pix := []byte{
		255, 0, 0, 255, 0, 255, 0, 255,
		0, 0, 255, 255, 255, 255, 255, 255,
	}
	tx := NewTexture(dev, "rgba")
	tx.Readable = true
	require.NoError(t, tx.SetFromBytes(pix, 2, 2))
	defer tx.Release()
	assert.True(t, tx.IsActive())
	got, err := tx.ReadPixels()
	require.NoError(t, err)
	assert.Equal(t, pix, got)

	// only 4-byte formats can be unpadded
	tx.Format.Format = wgpu.TextureFormatRG8Unorm
	_, err = tx.ReadPixels()
	assert.Error(t, err)
}

func TestGPURenderTextureClear(t *testing.T) {
	dev := testDevice(t)
	rt, err := NewRenderTexture(dev, image.Pt(8, 4))
	require.NoError(t, err)
	defer rt.Release()
	rt.Render().SetClearColor(0.9, 0.9, 0.9, 1)

	view, err := rt.GetCurrentTexture()
	require.NoError(t, err)
	cmd, err := dev.Device.CreateCommandEncoder(nil)
	require.NoError(t, err)
	rp := rt.Render().BeginRenderPass(cmd, view)
	require.NoError(t, rp.End())
	rp.Release()
	require.NoError(t, SubmitWait(dev, cmd))
	cmd.Release()
	rt.Present()

	img, err := rt.ReadImage()
	require.NoError(t, err)
	assert.Equal(t, image.Pt(8, 4), img.Bounds().Size())
	c := img.RGBAAt(3, 2)
	assert.InDelta(t, 230, int(c.R), 1)
	assert.Equal(t, uint8(255), c.A)

	require.NoError(t, rt.SetSize(image.Pt(2, 2)))
	assert.Equal(t, image.Pt(2, 2), rt.Size())
}

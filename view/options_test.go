// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"cogentcore.org/gpuview/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		valid bool
	}{
		{"triangle", Options{Width: 64, Height: 48}, true},
		{"image", Options{Width: 64, Height: 48, ImageBytes: make([]byte, 2*3*4), ImageWidth: 2, ImageHeight: 3}, true},
		{"zero width", Options{Width: 0, Height: 48}, false},
		{"negative height", Options{Width: 64, Height: -1}, false},
		{"short pixels", Options{Width: 8, Height: 8, ImageBytes: make([]byte, 15), ImageWidth: 2, ImageHeight: 2}, false},
		{"long pixels", Options{Width: 8, Height: 8, ImageBytes: make([]byte, 17), ImageWidth: 2, ImageHeight: 2}, false},
		{"missing bytes", Options{Width: 8, Height: 8, ImageWidth: 2, ImageHeight: 2}, false},
		{"zero image size", Options{Width: 8, Height: 8, ImageBytes: []byte{}, ImageWidth: 0, ImageHeight: 2}, false},
		{"huge surface", Options{Width: 1 << 33, Height: 1}, false},
		{"surface over limit", Options{Width: gpu.MaxTextureDimension + 1, Height: 64}, false},
		{"surface at limit", Options{Width: gpu.MaxTextureDimension, Height: 1}, true},
		{"overflowing image", Options{Width: 8, Height: 8, ImageBytes: []byte{255, 0, 0, 255}, ImageWidth: 1<<62 + 1, ImageHeight: 1}, false},
		{"wrapping image", Options{Width: 8, Height: 8, ImageBytes: []byte{}, ImageWidth: 1 << 62, ImageHeight: 4}, false},
		{"image over limit", Options{Width: 8, Height: 8, ImageBytes: make([]byte, (gpu.MaxTextureDimension+1)*4), ImageWidth: gpu.MaxTextureDimension + 1, ImageHeight: 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidOptions)
			}
		})
	}
}

func TestOptionsDrawable(t *testing.T) {
	o := &Options{Width: 10, Height: 10}
	assert.Equal(t, image.Pt(10, 10), o.Size())
	assert.False(t, o.HasImage())
	assert.IsType(t, &FlatTriangle{}, o.Drawable())

	o.ImageBytes = []byte{1, 2, 3, 4}
	o.ImageWidth, o.ImageHeight = 1, 1
	assert.True(t, o.HasImage())
	tq, ok := o.Drawable().(*TexturedQuad)
	require.True(t, ok)
	assert.Equal(t, 1, tq.Width)
	assert.Equal(t, o.ImageBytes, tq.Pixels)
}

func TestOpenOptions(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"view.toml": "width = 320\nheight = 240\nreadback = true\n",
		"view.yaml": "width: 320\nheight: 240\nreadback: true\n",
		"view.json": `{"width": 320, "height": 240, "readback": true}`,
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			fn := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
			o, err := OpenOptions(fn)
			require.NoError(t, err)
			assert.Equal(t, 320, o.Width)
			assert.Equal(t, 240, o.Height)
			assert.True(t, o.Readback)
			assert.False(t, o.HasImage())
			assert.NoError(t, o.Validate())
		})
	}

	_, err := OpenOptions(filepath.Join(dir, "view.ini"))
	assert.Error(t, err)
	_, err = OpenOptions(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("width = 1\ncolor = 2\n"), 0o644))
	_, err = OpenOptions(bad)
	assert.Error(t, err)

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{"width": 1, "color": 2}`), 0o644))
	_, err = OpenOptions(badJSON)
	assert.Error(t, err)
}

func TestDrawables(t *testing.T) {
	tq := NewTexturedQuad(make([]byte, 4), 1, 1)
	assert.NoError(t, tq.Validate())
	assert.Equal(t, uint64(16), tq.VertexLayout().Stride())
	n, err := tq.VertexLayout().VertexCount(tq.Vertices())
	assert.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, gpu.TriangleStrip, tq.Topology())

	bad := NewTexturedQuad(make([]byte, 3), 1, 1)
	assert.ErrorIs(t, bad.Validate(), ErrInvalidOptions)

	ft := NewFlatTriangle()
	assert.NoError(t, ft.Validate())
	assert.Equal(t, uint64(20), ft.VertexLayout().Stride())
	n, err = ft.VertexLayout().VertexCount(ft.Vertices())
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, gpu.TriangleList, ft.Topology())

	for _, d := range []Drawable{tq, ft} {
		b, err := shaders.ReadFile("shaders/" + d.ShaderFile())
		assert.NoError(t, err)
		code := string(b)
		assert.Contains(t, code, "fn vertexMain")
		assert.Contains(t, code, "fn fragmentMain")
	}
}

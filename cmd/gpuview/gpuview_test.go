// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"cogentcore.org/gpuview/base/errors"
	"cogentcore.org/gpuview/base/iox/imagex"
	"cogentcore.org/gpuview/gpu"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenConfig(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"gpuview.toml": "width = 300\nheight = 200\noffscreen = true\nframe_rate = 30\n",
		"gpuview.yaml": "width: 300\nheight: 200\noffscreen: true\nframe_rate: 30\n",
	}
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			fn := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
			cf := &Config{}
			cf.Defaults()
			require.NoError(t, OpenConfig(cf, fn))
			assert.Equal(t, 300, cf.Width)
			assert.Equal(t, 200, cf.Height)
			assert.True(t, cf.Offscreen)
			assert.Equal(t, "gpuview", cf.Title)
			assert.Equal(t, time.Second/30, cf.Interval())
		})
	}
	assert.Error(t, OpenConfig(&Config{}, filepath.Join(dir, "gpuview.ini")))
}

func TestMerge(t *testing.T) {
	cf := &Config{}
	cf.Defaults()
	cmd := &cobra.Command{Use: "test"}
	cf.AddFlags(cmd)
	require.NoError(t, cmd.ParseFlags([]string{"--width", "100", "-q"}))

	file := &Config{}
	file.Defaults()
	file.Width = 300
	file.Height = 200
	file.Title = "from file"
	file.Quiet = false
	cf.Merge(cmd, file)

	assert.Equal(t, 100, cf.Width, "flag wins")
	assert.Equal(t, 200, cf.Height)
	assert.Equal(t, "from file", cf.Title)
	assert.True(t, cf.Quiet)
	assert.Equal(t, 60, cf.FrameRate)
}

func TestValidate(t *testing.T) {
	cf := &Config{}
	cf.Defaults()
	assert.NoError(t, cf.Validate())
	cf.Out = "out.png"
	assert.Error(t, cf.Validate())
	cf.Offscreen = true
	assert.NoError(t, cf.Validate())
	cf.Width = -1
	assert.Error(t, cf.Validate())
	cf.Width = 0
	cf.FrameRate = 0
	assert.Error(t, cf.Validate())
}

func TestImageOptions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{10, 20, 30, 255})
	fn := filepath.Join(t.TempDir(), "small.png")
	require.NoError(t, imagex.Save(img, fn))

	cf := &Config{}
	opts, err := imageOptions(cf, fn)
	require.NoError(t, err)
	assert.Equal(t, 3, opts.Width)
	assert.Equal(t, 2, opts.Height)
	assert.Equal(t, 3, opts.ImageWidth)
	assert.Equal(t, img.Pix, opts.ImageBytes)
	assert.NoError(t, opts.Validate())

	cf.Width, cf.Height = 64, 32
	opts, err = imageOptions(cf, fn)
	require.NoError(t, err)
	assert.Equal(t, image.Pt(64, 32), opts.Size())

	_, err = imageOptions(cf, filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	opts = triangleOptions(&Config{})
	assert.Equal(t, image.Pt(defaultSize, defaultSize), opts.Size())
	assert.False(t, opts.HasImage())
}

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	fn := filepath.Join(dir, "watched.toml")
	other := filepath.Join(dir, "other.toml")
	require.NoError(t, os.WriteFile(fn, []byte("width = 1\n"), 0o644))

	w, changes, err := watch([]string{fn})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(other, []byte("width = 2\n"), 0o644))
	require.NoError(t, os.WriteFile(fn, []byte("width = 3\n"), 0o644))
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("no change signaled")
	}
}

func TestTriangleOffscreen(t *testing.T) {
	out := filepath.Join(t.TempDir(), "triangle.png")
	root := newRootCmd()
	root.SetArgs([]string{"triangle", "--offscreen", "--width", "48", "--height", "32", "--out", out})
	err := root.ExecuteContext(context.Background())
	if errors.Is(err, gpu.ErrBackendUnavailable) {
		t.Skipf("Need software GPU on CI: %v", err)
	}
	require.NoError(t, err)

	img, format, err := imagex.Open(out)
	require.NoError(t, err)
	assert.Equal(t, imagex.PNG, format)
	assert.Equal(t, image.Rect(0, 0, 48, 32), img.Bounds())
}

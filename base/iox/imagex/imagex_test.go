// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	for y := range 2 {
		for x := range 4 {
			img.SetNRGBA(x, y, color.NRGBA{uint8(x * 60), uint8(y * 120), 30, 255})
		}
	}
	return img
}

func TestExtToFormat(t *testing.T) {
	f, err := ExtToFormat(".PNG")
	assert.NoError(t, err)
	assert.Equal(t, PNG, f)
	f, err = ExtToFormat("jpg")
	assert.NoError(t, err)
	assert.Equal(t, JPEG, f)
	_, err = ExtToFormat("")
	assert.Error(t, err)
	_, err = ExtToFormat("svg")
	assert.Error(t, err)
	assert.Equal(t, "WebP", WebP.String())
}

func TestWriteRead(t *testing.T) {
	for _, f := range []Formats{PNG, GIF, TIFF, BMP} {
		t.Run(f.String(), func(t *testing.T) {
			var b bytes.Buffer
			require.NoError(t, Write(testImage(), &b, f))
			img, rf, err := Read(&b)
			require.NoError(t, err)
			assert.Equal(t, f, rf)
			assert.Equal(t, image.Pt(4, 2), img.Bounds().Size())
		})
	}
}

func TestReadNotImage(t *testing.T) {
	_, f, err := Read(strings.NewReader("this is plain text, not pixels"))
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, None, f)
}

func TestSaveOpen(t *testing.T) {
	fn := filepath.Join(t.TempDir(), "img.png")
	require.NoError(t, Save(testImage(), fn))
	img, f, err := Open(fn)
	require.NoError(t, err)
	assert.Equal(t, PNG, f)
	pix, w, h := Pixels(img)
	assert.Equal(t, 4, w)
	assert.Equal(t, 2, h)
	assert.Equal(t, testImage().Pix, pix)

	_, _, err = Open(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestPixelsConverts(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 4, 4))
	src.Set(2, 3, color.RGBA{255, 0, 0, 255})
	pix, w, h := Pixels(src)
	assert.Equal(t, 2, w)
	assert.Equal(t, 1, h)
	assert.Equal(t, []byte{255, 0, 0, 255, 0, 0, 0, 0}, pix)

	rgba := AsRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 1), rgba.Bounds())
	assert.NotSame(t, src, rgba)
}

func TestCompareAndDiff(t *testing.T) {
	assert.True(t, CompareColors(color.RGBA{10, 10, 10, 255}, color.RGBA{12, 8, 10, 255}, 2))
	assert.False(t, CompareColors(color.RGBA{10, 10, 10, 255}, color.RGBA{13, 10, 10, 255}, 2))

	a := image.NewRGBA(image.Rect(0, 0, 1, 1))
	b := image.NewRGBA(image.Rect(0, 0, 1, 1))
	a.Set(0, 0, color.RGBA{100, 50, 0, 255})
	b.Set(0, 0, color.RGBA{40, 80, 0, 255})
	d := DiffImage(a, b)
	assert.Equal(t, color.RGBA{60, 30, 0, 255}, color.RGBAModel.Convert(d.At(0, 0)))

	assert.NoError(t, Compare(a, a, 0))
	assert.ErrorContains(t, Compare(a, b, 2), "(0, 0)")
	assert.ErrorContains(t, Compare(a, image.NewRGBA(image.Rect(0, 0, 2, 1)), 2), "bounds")
}

type recordT struct {
	errs []string
}

func (r *recordT) Errorf(format string, args ...any) {
	r.errs = append(r.errs, format)
}

func TestAssert(t *testing.T) {
	t.Chdir(t.TempDir())
	rt := &recordT{}
	Assert(rt, testImage(), "basic")
	assert.Empty(t, rt.errs)
	// second call compares against the saved image
	Assert(rt, testImage(), "basic")
	assert.Empty(t, rt.errs)

	other := testImage()
	other.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	Assert(rt, other, "basic")
	if !UpdateTestImages {
		assert.NotEmpty(t, rt.errs)
	}
}

// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package imagex

import (
	"fmt"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/gpuview/base/errors"
)

// TestingT is the subset of *testing.T used by [Assert].
type TestingT interface {
	Errorf(format string, args ...any)
}

// UpdateTestImages makes [Assert] save the given images as the new
// expected images instead of comparing. It is set by the "update"
// build tag or GPUVIEW_UPDATE_TESTDATA=true.
var UpdateTestImages = updateTestImages || os.Getenv("GPUVIEW_UPDATE_TESTDATA") == "true"

// Tolerance is the maximum per-channel difference accepted by [Assert].
// Rasterization differs slightly between adapters at edges.
var Tolerance = 2

func channelDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// CompareColors returns true if each channel of two colors is within tol.
func CompareColors(a, b color.RGBA, tol int) bool {
	return channelDiff(a.R, b.R) <= tol && channelDiff(a.G, b.G) <= tol &&
		channelDiff(a.B, b.B) <= tol && channelDiff(a.A, b.A) <= tol
}

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

// Compare returns nil if the two images have the same bounds and
// all of their colors are within tol, and otherwise an error
// describing the first difference.
func Compare(got, want image.Image, tol int) error {
	gb, wb := got.Bounds(), want.Bounds()
	if gb != wb {
		return fmt.Errorf("bounds are %v, want %v", gb, wb)
	}
	for y := gb.Min.Y; y < gb.Max.Y; y++ {
		for x := gb.Min.X; x < gb.Max.X; x++ {
			gc, wc := rgbaAt(got, x, y), rgbaAt(want, x, y)
			if !CompareColors(gc, wc, tol) {
				return fmt.Errorf("color at (%d, %d) is %v, want %v", x, y, gc, wc)
			}
		}
	}
	return nil
}

// DiffImage returns an opaque image of the absolute
// per-channel differences between two images.
func DiffImage(a, b image.Image) image.Image {
	bounds := a.Bounds()
	di := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ac, bc := rgbaAt(a, x, y), rgbaAt(b, x, y)
			di.SetRGBA(x, y, color.RGBA{
				uint8(channelDiff(ac.R, bc.R)),
				uint8(channelDiff(ac.G, bc.G)),
				uint8(channelDiff(ac.B, bc.B)),
				255,
			})
		}
	}
	return di
}

// Assert checks that img matches the image saved at testdata/filename,
// with ".png" added if there is no extension, within [Tolerance].
// If there is no saved image, img is saved as the expected one.
// On a mismatch, img and the difference are saved next to the expected
// image with ".fail" and ".diff" suffixes, and the test fails without
// stopping.
func Assert(t TestingT, img image.Image, filename string) {
	filename = filepath.Join("testdata", filename)
	ext := filepath.Ext(filename)
	if ext == "" {
		ext = ".png"
		filename += ext
	}
	base := strings.TrimSuffix(filename, ext)
	failFile, diffFile := base+".fail"+ext, base+".diff"+ext
	clean := func() {
		os.Remove(failFile)
		os.Remove(diffFile)
	}

	if err := os.MkdirAll(filepath.Dir(filename), 0750); err != nil {
		t.Errorf("imagex.Assert: %v", err)
		return
	}
	if UpdateTestImages {
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: saving updated image: %v", err)
		}
		clean()
		return
	}

	want, _, err := Open(filename)
	if errors.Is(err, fs.ErrNotExist) {
		if err := Save(img, filename); err != nil {
			t.Errorf("imagex.Assert: saving new image: %v", err)
		}
		return
	}
	if err != nil {
		t.Errorf("imagex.Assert: opening %s: %v", filename, err)
		return
	}

	if err := Compare(img, want, Tolerance); err != nil {
		t.Errorf("imagex.Assert: image does not match %s: %v; see %s", filename, err, failFile)
		if err := Save(img, failFile); err != nil {
			t.Errorf("imagex.Assert: saving fail image: %v", err)
		}
		if img.Bounds() == want.Bounds() {
			if err := Save(DiffImage(img, want), diffFile); err != nil {
				t.Errorf("imagex.Assert: saving diff image: %v", err)
			}
		}
		return
	}
	clean()
}

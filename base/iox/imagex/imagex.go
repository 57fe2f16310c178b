// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package imagex provides image file encoding and decoding
// and helpers for comparing images in tests.
package imagex

import (
	"bufio"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"cogentcore.org/gpuview/base/errors"
	"github.com/h2non/filetype"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Formats are the image file formats that can be read.
type Formats int32

const (
	None Formats = iota
	PNG
	JPEG
	GIF
	TIFF
	BMP
	WebP
)

var formatNames = [...]string{"None", "PNG", "JPEG", "GIF", "TIFF", "BMP", "WebP"}

func (f Formats) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Formats(%d)", int32(f))
	}
	return formatNames[f]
}

// ErrNotImage is returned by [Read] when the data does not start
// with the signature of a known image format.
var ErrNotImage = errors.New("imagex: data is not a recognized image format")

// sniffLen is the number of header bytes needed by filetype to match.
const sniffLen = 261

// extFormats maps lower-case file extensions to formats.
var extFormats = map[string]Formats{
	"png":  PNG,
	"jpg":  JPEG,
	"jpeg": JPEG,
	"gif":  GIF,
	"tif":  TIFF,
	"tiff": TIFF,
	"bmp":  BMP,
	"webp": WebP,
}

// ExtToFormat returns the format for a filename extension, with or
// without the leading dot. It is also used for the format names
// returned by [image.Decode].
func ExtToFormat(ext string) (Formats, error) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return None, errors.New("imagex: empty extension")
	}
	if f, ok := extFormats[ext]; ok {
		return f, nil
	}
	return None, fmt.Errorf("imagex: extension %q not recognized", ext)
}

// Open reads an image file with [Read].
func Open(filename string) (image.Image, Formats, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// OpenFS reads an image file from the given filesystem with [Read].
func OpenFS(fsys fs.FS, filename string) (image.Image, Formats, error) {
	file, err := fsys.Open(filename)
	if err != nil {
		return nil, None, err
	}
	defer file.Close()
	return Read(file)
}

// Read decodes an image in any of the supported formats, returning
// the format found. The data signature is checked before decoding,
// so that non-image data fails with [ErrNotImage].
func Read(r io.Reader) (image.Image, Formats, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(sniffLen)
	if !filetype.IsImage(head) {
		return nil, None, ErrNotImage
	}
	im, ext, err := image.Decode(br)
	if err != nil {
		return im, None, err
	}
	f, err := ExtToFormat(ext)
	return im, f, err
}

// Save writes the image to the given file, in the format
// given by its extension.
func Save(im image.Image, filename string) error {
	f, err := ExtToFormat(filepath.Ext(filename))
	if err != nil {
		return err
	}
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()
	bw := bufio.NewWriter(file)
	if err := Write(im, bw, f); err != nil {
		return err
	}
	return bw.Flush()
}

// encoders are the formats that can be written. WebP is decode-only.
var encoders = map[Formats]func(w io.Writer, im image.Image) error{
	PNG: png.Encode,
	JPEG: func(w io.Writer, im image.Image) error {
		return jpeg.Encode(w, im, &jpeg.Options{Quality: 90})
	},
	GIF: func(w io.Writer, im image.Image) error {
		return gif.Encode(w, im, nil)
	},
	TIFF: func(w io.Writer, im image.Image) error {
		return tiff.Encode(w, im, nil)
	},
	BMP: bmp.Encode,
}

// Write writes the image to the given writer in the given format.
// All formats except WebP can be written.
func Write(im image.Image, w io.Writer, f Formats) error {
	enc, ok := encoders[f]
	if !ok {
		return fmt.Errorf("imagex.Write: cannot encode format %s", f)
	}
	return enc(w, im)
}

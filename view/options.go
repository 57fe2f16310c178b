// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"encoding/json"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"cogentcore.org/gpuview/base/errors"
	"cogentcore.org/gpuview/base/iox"
	"cogentcore.org/gpuview/base/iox/tomlx"
	"cogentcore.org/gpuview/base/iox/yamlx"
	"cogentcore.org/gpuview/gpu"
)

// ErrInvalidOptions is returned when [Options] are inconsistent:
// non-positive sizes, or image bytes that do not match the image size.
var ErrInvalidOptions = errors.New("view: invalid options")

// Options is the configuration supplied by the host.
// If any of the image fields are set, the image is displayed
// as a full-screen [TexturedQuad]; otherwise a [FlatTriangle] is drawn.
type Options struct {

	// Width of the drawing surface in pixels.
	Width int `toml:"width" yaml:"width" json:"width"`

	// Height of the drawing surface in pixels.
	Height int `toml:"height" yaml:"height" json:"height"`

	// ImageBytes are the RGBA pixels of the image, non-premultiplied,
	// 4 bytes per pixel with tightly packed rows.
	ImageBytes []byte `toml:"image_bytes,omitempty" yaml:"image_bytes,omitempty" json:"image_bytes,omitempty"`

	// ImageWidth is the width of the image in pixels.
	ImageWidth int `toml:"image_width,omitempty" yaml:"image_width,omitempty" json:"image_width,omitempty"`

	// ImageHeight is the height of the image in pixels.
	ImageHeight int `toml:"image_height,omitempty" yaml:"image_height,omitempty" json:"image_height,omitempty"`

	// Readback makes GPU resources copyable back to the host,
	// for snapshots and tests.
	Readback bool `toml:"readback,omitempty" yaml:"readback,omitempty" json:"readback,omitempty"`
}

// Size returns the surface size.
func (o *Options) Size() image.Point {
	return image.Pt(o.Width, o.Height)
}

// HasImage returns true if any of the image fields are set.
func (o *Options) HasImage() bool {
	return o.ImageBytes != nil || o.ImageWidth != 0 || o.ImageHeight != 0
}

// Validate returns an error wrapping [ErrInvalidOptions] if the
// surface size is outside the range accepted by [gpu.CheckSize],
// or if the image fields are set but inconsistent.
func (o *Options) Validate() error {
	if err := gpu.CheckSize(o.Width, o.Height); err != nil {
		return fmt.Errorf("%w: surface: %w", ErrInvalidOptions, err)
	}
	if !o.HasImage() {
		return nil
	}
	if err := gpu.CheckPixels(o.ImageBytes, o.ImageWidth, o.ImageHeight); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, err)
	}
	return nil
}

// Drawable returns the drawable selected by these options.
func (o *Options) Drawable() Drawable {
	if o.HasImage() {
		return NewTexturedQuad(o.ImageBytes, o.ImageWidth, o.ImageHeight)
	}
	return NewFlatTriangle()
}

// OpenOptions reads options from the given file, which can be
// TOML (.toml), YAML (.yaml, .yml) or JSON (.json).
func OpenOptions(filename string) (*Options, error) {
	o := &Options{}
	var err error
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		err = tomlx.Open(o, filename)
	case ".yaml", ".yml":
		err = yamlx.Open(o, filename)
	case ".json":
		err = iox.Open(o, filename, iox.NewDecoderFunc(newJSONDecoder))
	default:
		return nil, fmt.Errorf("view.OpenOptions: unsupported file type %q", ext)
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// newJSONDecoder returns a JSON decoder that, like the TOML and YAML
// decoders, rejects unknown keys.
func newJSONDecoder(r io.Reader) *json.Decoder {
	d := json.NewDecoder(r)
	d.DisallowUnknownFields()
	return d
}

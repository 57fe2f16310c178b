// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package tomlx reads TOML settings files.
package tomlx

import (
	"io"

	"cogentcore.org/gpuview/base/iox"
	"github.com/pelletier/go-toml/v2"
)

// NewDecoder returns a strict TOML decoder: unknown keys are an error.
func NewDecoder(r io.Reader) *toml.Decoder {
	return toml.NewDecoder(r).DisallowUnknownFields()
}

// Open reads the given object from the given TOML file.
func Open(v any, filename string) error {
	return iox.Open(v, filename, iox.NewDecoderFunc(NewDecoder))
}

// Read reads the given object from TOML read from reader.
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, iox.NewDecoderFunc(NewDecoder))
}

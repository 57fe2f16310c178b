// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package yamlx reads YAML settings files.
package yamlx

import (
	"io"

	"cogentcore.org/gpuview/base/iox"
	"gopkg.in/yaml.v3"
)

// NewDecoder returns a strict YAML decoder: unknown keys are an error.
func NewDecoder(r io.Reader) *yaml.Decoder {
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	return d
}

// Open reads the given object from the given YAML file.
func Open(v any, filename string) error {
	return iox.Open(v, filename, iox.NewDecoderFunc(NewDecoder))
}

// Read reads the given object from YAML read from reader.
func Read(v any, reader io.Reader) error {
	return iox.Read(v, reader, iox.NewDecoderFunc(NewDecoder))
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package iox opens settings files with a format-specific decoder,
// which its subpackages supply for TOML and YAML.
package iox

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Decoder is implemented by the standard decoder types,
// such as [encoding/json.Decoder].
type Decoder interface {
	Decode(v any) error
}

// DecoderFunc makes a [Decoder] reading from r.
type DecoderFunc func(r io.Reader) Decoder

// NewDecoderFunc adapts a typed decoder constructor to a [DecoderFunc].
func NewDecoderFunc[T Decoder](f func(r io.Reader) T) DecoderFunc {
	return func(r io.Reader) Decoder { return f(r) }
}

// Open decodes the named file into v. Errors name the file.
func Open(v any, filename string, f DecoderFunc) error {
	fp, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer fp.Close()
	if err := Read(v, bufio.NewReader(fp), f); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	return nil
}

// Read decodes one value from reader into v.
func Read(v any, reader io.Reader, f DecoderFunc) error {
	return f(reader).Decode(v)
}

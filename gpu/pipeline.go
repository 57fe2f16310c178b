// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"log/slog"
)

// Pipeline holds the shaders of a pipeline and the entry point
// used for each shader stage.
type Pipeline struct {
	// Name is used for labels and logging.
	Name string

	// Shaders in the order added.
	Shaders []*Shader

	// Entries has one entry point per stage.
	Entries map[ShaderTypes]*ShaderEntry

	device *Device
}

// AddShader returns a new shader with the given name,
// or the existing one if the name is already used.
func (pl *Pipeline) AddShader(name string) *Shader {
	if sh := pl.Shader(name); sh != nil {
		return sh
	}
	sh := NewShader(name, pl.device)
	pl.Shaders = append(pl.Shaders, sh)
	return sh
}

// Shader returns the shader with the given name, or nil.
func (pl *Pipeline) Shader(name string) *Shader {
	for _, sh := range pl.Shaders {
		if sh.Name == name {
			return sh
		}
	}
	return nil
}

// Entry returns the entry point for the given stage, or nil.
func (pl *Pipeline) Entry(typ ShaderTypes) *ShaderEntry {
	return pl.Entries[typ]
}

// AddEntry sets the entry point for a stage to the named
// function in the given shader, replacing any previous one.
func (pl *Pipeline) AddEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	if pl.Entries == nil {
		pl.Entries = make(map[ShaderTypes]*ShaderEntry)
	}
	if old, ok := pl.Entries[typ]; ok {
		slog.Warn("gpu.Pipeline: replacing entry", "pipeline", pl.Name, "stage", typ, "old", old.Entry, "new", entry)
	}
	se := NewShaderEntry(sh, typ, entry)
	pl.Entries[typ] = se
	return se
}

func (pl *Pipeline) releaseShaders() {
	for _, sh := range pl.Shaders {
		sh.Release()
	}
	pl.Shaders = nil
	pl.Entries = nil
}

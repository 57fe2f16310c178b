// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"io/fs"

	"cogentcore.org/gpuview/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderTypes is a list of GPU shader types
type ShaderTypes int32

const (
	UnknownShader ShaderTypes = iota
	VertexShader
	FragmentShader
	ComputeShader
)

func (st ShaderTypes) String() string {
	switch st {
	case VertexShader:
		return "VertexShader"
	case FragmentShader:
		return "FragmentShader"
	case ComputeShader:
		return "ComputeShader"
	}
	return "UnknownShader"
}

// Shader manages a single WGSL shader module, which can have
// multiple entry points. See [ShaderEntry].
type Shader struct {
	// Name is used as the module label.
	Name string

	// Code is the WGSL source.
	Code string

	module *wgpu.ShaderModule
	device *Device
}

// NewShader returns a new Shader with given name, for the given device.
func NewShader(name string, dev *Device) *Shader {
	return &Shader{Name: name, device: dev}
}

// OpenFileFS loads WGSL code from the given file in the given
// filesystem (e.g., embedded shaders), and compiles it.
func (sh *Shader) OpenFileFS(fsys fs.FS, fname string) error {
	b, err := fs.ReadFile(fsys, fname)
	if errors.Log(err) != nil {
		return err
	}
	return sh.OpenCode(string(b))
}

// OpenCode compiles the given WGSL code into a shader module,
// releasing any prior module.
func (sh *Shader) OpenCode(code string) error {
	sh.Release()
	if sh.device.IsReleased() {
		return ErrReleased
	}
	sh.Code = code
	module, err := sh.device.Device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: sh.Name,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: code,
		},
	})
	if err != nil {
		errors.Log(err)
		return fmt.Errorf("gpu.Shader %q: %w", sh.Name, err)
	}
	sh.module = module
	return nil
}

// Module returns the compiled module, or [ErrReleased].
func (sh *Shader) Module() (*wgpu.ShaderModule, error) {
	if sh.module == nil {
		return nil, ErrReleased
	}
	return sh.module, nil
}

// Release releases the shader module.
func (sh *Shader) Release() {
	if sh.module == nil {
		return
	}
	sh.module.Release()
	sh.module = nil
}

// ShaderEntry is an entry point into a [Shader].
// There can be multiple entry points per shader.
type ShaderEntry struct {
	// Shader has the code
	Shader *Shader

	// Type of shader entry, e.g., Vertex, Fragment, Compute
	Type ShaderTypes

	// Entry is the name of the function to call for this Entry.
	// Conventionally, it is some variant on "main"
	Entry string
}

// NewShaderEntry returns a new ShaderEntry with given settings
func NewShaderEntry(sh *Shader, typ ShaderTypes, entry string) *ShaderEntry {
	return &ShaderEntry{Shader: sh, Type: typ, Entry: entry}
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"cogentcore.org/gpuview/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// Sampler represents a WebGPU sampler.
// The defaults are linear magnification and minification
// with clamp-to-edge addressing in all directions.
type Sampler struct {
	// Name is used as the label.
	Name string

	// for when the texture is magnified
	MagFilter wgpu.FilterMode

	// for when the texture is minified
	MinFilter wgpu.FilterMode

	// address mode in U, V, and W directions
	Border wgpu.AddressMode

	sampler *wgpu.Sampler
}

// NewSampler returns a new Sampler with default settings.
func NewSampler(name string) *Sampler {
	sm := &Sampler{Name: name}
	sm.Defaults()
	return sm
}

func (sm *Sampler) Defaults() {
	sm.MagFilter = wgpu.FilterModeLinear
	sm.MinFilter = wgpu.FilterModeLinear
	sm.Border = wgpu.AddressModeClampToEdge
}

// Config creates the sampler on the given device, releasing any prior one.
func (sm *Sampler) Config(dev *Device) error {
	sm.Release()
	if dev.IsReleased() {
		return ErrReleased
	}
	samp, err := dev.Device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         sm.Name,
		AddressModeU:  sm.Border,
		AddressModeV:  sm.Border,
		AddressModeW:  sm.Border,
		MagFilter:     sm.MagFilter,
		MinFilter:     sm.MinFilter,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if errors.Log(err) != nil {
		return err
	}
	sm.sampler = samp
	return nil
}

// Sampler returns the WebGPU sampler, or [ErrReleased].
func (sm *Sampler) Sampler() (*wgpu.Sampler, error) {
	if sm.sampler == nil {
		return nil, ErrReleased
	}
	return sm.sampler, nil
}

func (sm *Sampler) Release() {
	if sm.sampler == nil {
		return
	}
	sm.sampler.Release()
	sm.sampler = nil
}

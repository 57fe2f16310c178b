// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gpu wraps the WebGPU API for drawing a small, fixed set of
// resources into either a window surface or an offscreen texture.
// Every object created on a [Device] is tracked in an [Arena] so that
// nothing is used after the device has been released.
package gpu

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"cogentcore.org/gpuview/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// ForceFallbackAdapter requests a software (fallback) adapter.
// It is set on startup if the WGPU_FORCE_FALLBACK_ADAPTER
// environment variable is "1" or "true".
var ForceFallbackAdapter = false

// ErrBackendUnavailable is returned when no WebGPU adapter, device,
// or surface can be obtained on this platform.
var ErrBackendUnavailable = errors.New("gpu: WebGPU backend unavailable")

// ErrReleased is returned when a GPU object is used after it
// (or the device that owns it) has been released.
var ErrReleased = errors.New("gpu: resource used after release")

func init() {
	level := strings.ToLower(os.Getenv("WGPU_LOG_LEVEL"))
	if level != "" {
		SetLogLevel(level)
	}
	switch strings.ToLower(os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER")) {
	case "1", "true":
		ForceFallbackAdapter = true
	}
}

// SetLogLevel sets the wgpu-native log level by name:
// off, error, warn, info, debug, or trace.
func SetLogLevel(level string) {
	lv := wgpu.LogLevelWarn
	switch level {
	case "off":
		lv = wgpu.LogLevelOff
	case "error":
		lv = wgpu.LogLevelError
	case "info":
		lv = wgpu.LogLevelInfo
	case "debug":
		lv = wgpu.LogLevelDebug
	case "trace":
		lv = wgpu.LogLevelTrace
	}
	wgpu.SetLogLevel(lv)
}

// GPU represents the WebGPU instance and the adapter chosen from it.
// There is one GPU per rendering session.
type GPU struct {
	// Instance is the WebGPU instance.
	Instance *wgpu.Instance

	// Adapter is the physical (or fallback) adapter that
	// devices are requested from.
	Adapter *wgpu.Adapter
}

// NewGPU returns a new GPU with its instance created.
// An adapter must then be requested with [GPU.RequestAdapter].
func NewGPU() *GPU {
	gp := &GPU{}
	gp.Instance = wgpu.CreateInstance(nil)
	return gp
}

// CreateSurface returns a new window surface for the given descriptor,
// which is platform-specific (see the host packages).
func (gp *GPU) CreateSurface(sd *wgpu.SurfaceDescriptor) (*wgpu.Surface, error) {
	if gp.Instance == nil {
		return nil, ErrReleased
	}
	ws := gp.Instance.CreateSurface(sd)
	if ws == nil {
		return nil, fmt.Errorf("%w: could not create surface", ErrBackendUnavailable)
	}
	return ws, nil
}

// RequestAdapter selects an adapter. If compatible is non-nil, the adapter
// must be able to present to that surface.
func (gp *GPU) RequestAdapter(compatible *wgpu.Surface) error {
	if gp.Instance == nil {
		return ErrReleased
	}
	ad, err := gp.Instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: ForceFallbackAdapter,
		CompatibleSurface:    compatible,
	})
	if err != nil {
		slog.Error("gpu.GPU RequestAdapter", "err", err)
		return fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	if ad == nil {
		return fmt.Errorf("%w: no adapter", ErrBackendUnavailable)
	}
	gp.Adapter = ad
	return nil
}

// Release releases the adapter and the instance.
// It is safe to call more than once.
func (gp *GPU) Release() {
	if gp.Adapter != nil {
		gp.Adapter.Release()
		gp.Adapter = nil
	}
	if gp.Instance != nil {
		gp.Instance.Release()
		gp.Instance = nil
	}
}

// NoDisplayGPU returns a new GPU and Device with no surface,
// for offscreen rendering and tests.
func NoDisplayGPU() (*GPU, *Device, error) {
	gp := NewGPU()
	if err := gp.RequestAdapter(nil); err != nil {
		gp.Release()
		return nil, nil, err
	}
	dev, err := NewDevice(gp)
	if err != nil {
		gp.Release()
		return nil, nil, err
	}
	return gp, dev, nil
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"
	"log/slog"

	"github.com/cogentcore/webgpu/wgpu"
)

// Device holds a WebGPU logical device and its queue.
// All resources are created on a Device, and become invalid
// once it is released.
type Device struct {
	// Device is the WebGPU device.
	Device *wgpu.Device

	// Queue is the queue for this device, which is used for
	// uploads and command submission.
	Queue *wgpu.Queue
}

// NewDevice returns a new device requested from the adapter of the given GPU.
func NewDevice(gp *GPU) (*Device, error) {
	if gp.Adapter == nil {
		return nil, fmt.Errorf("%w: no adapter selected", ErrBackendUnavailable)
	}
	wdev, err := gp.Adapter.RequestDevice(nil)
	if err != nil {
		slog.Error("gpu.NewDevice", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrBackendUnavailable, err)
	}
	return NewDeviceFrom(wdev), nil
}

// NewDeviceFrom returns a Device wrapping the given WebGPU device.
func NewDeviceFrom(wdev *wgpu.Device) *Device {
	return &Device{Device: wdev, Queue: wdev.GetQueue()}
}

// IsReleased returns true if the device has been released.
func (dv *Device) IsReleased() bool {
	return dv == nil || dv.Device == nil
}

// WaitDone blocks until all submitted work has completed.
func (dv *Device) WaitDone() {
	if dv.IsReleased() {
		return
	}
	dv.Device.Poll(true, nil)
}

// Release releases the queue and the device.
// It is safe to call more than once.
func (dv *Device) Release() {
	if dv.Queue != nil {
		dv.Queue.Release()
		dv.Queue = nil
	}
	if dv.Device != nil {
		dv.Device.Release()
		dv.Device = nil
	}
}

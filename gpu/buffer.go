// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import (
	"fmt"

	"cogentcore.org/gpuview/base/errors"
	"github.com/cogentcore/webgpu/wgpu"
)

// note: WriteBuffer is the preferred method for writing, so we only need to manage Read

// NewVertexBuffer creates a vertex buffer sized exactly to the given data,
// which must be a whole number of vertices in the given layout, and
// uploads the data with a single queue write. If readable is true,
// the buffer can also be copied back with [ReadBuffer].
func NewVertexBuffer(dev *Device, label string, layout *VertexLayout, data []float32, readable bool) (*wgpu.Buffer, error) {
	if dev.IsReleased() {
		return nil, ErrReleased
	}
	if _, err := layout.VertexCount(data); err != nil {
		return nil, err
	}
	usage := wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	if readable {
		usage |= wgpu.BufferUsageCopySrc
	}
	buf, err := dev.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data) * 4),
		Usage: usage,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	err = dev.Queue.WriteBuffer(buf, 0, wgpu.ToBytes(data))
	if errors.Log(err) != nil {
		buf.Release()
		return nil, err
	}
	return buf, nil
}

// BufferMapAsyncError returns an error message if the status is not success.
func BufferMapAsyncError(status wgpu.BufferMapAsyncStatus) error {
	if status != wgpu.BufferMapAsyncStatusSuccess {
		return fmt.Errorf("gpu BufferMapAsync was not successful: status %d", status)
	}
	return nil
}

// BufferReadSync does a MapAsync on given buffer, waiting on the device
// until the sync is complete, and returning error if any issues.
func BufferReadSync(dev *Device, size int, buffer *wgpu.Buffer) error {
	var status wgpu.BufferMapAsyncStatus
	err := buffer.MapAsync(wgpu.MapModeRead, 0, uint64(size), func(s wgpu.BufferMapAsyncStatus) {
		status = s
	})
	if errors.Log(err) != nil {
		return err
	}
	dev.WaitDone()
	return BufferMapAsyncError(status)
}

// ReadBuffer copies size bytes from the start of the given buffer,
// which must have CopySrc usage, back to host memory.
// It blocks until the copy is complete.
func ReadBuffer(dev *Device, src *wgpu.Buffer, size uint64) ([]byte, error) {
	if dev.IsReleased() {
		return nil, ErrReleased
	}
	staging, err := dev.Device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "gpu.ReadBuffer staging",
		Size:  size,
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
	})
	if errors.Log(err) != nil {
		return nil, err
	}
	defer staging.Release()
	cmd, err := dev.Device.CreateCommandEncoder(nil)
	if errors.Log(err) != nil {
		return nil, err
	}
	defer cmd.Release()
	cmd.CopyBufferToBuffer(src, 0, staging, 0, size)
	if err := SubmitWait(dev, cmd); err != nil {
		return nil, err
	}
	return readMapped(dev, staging, size)
}

// readMapped maps the given MapRead buffer and returns a copy of its contents.
func readMapped(dev *Device, buf *wgpu.Buffer, size uint64) ([]byte, error) {
	if err := BufferReadSync(dev, int(size), buf); err != nil {
		return nil, err
	}
	mapped := buf.GetMappedRange(0, uint(size))
	out := make([]byte, len(mapped))
	copy(out, mapped)
	buf.Unmap()
	return out, nil
}

// SubmitWait finishes the given command encoder, submits it
// to the device queue, and waits for it to complete.
func SubmitWait(dev *Device, cmd *wgpu.CommandEncoder) error {
	cb, err := cmd.Finish(nil)
	if errors.Log(err) != nil {
		return err
	}
	dev.Queue.Submit(cb)
	cb.Release()
	dev.WaitDone()
	return nil
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !((darwin && !ios) || windows || (linux && !android) || dragonfly || openbsd)

package desktop

import (

	"cogentcore.org/gpuview/base/errors"
	"cogentcore.org/gpuview/view"
)

// ErrUnsupported is returned by [NewMount] on platforms without glfw.
var ErrUnsupported = errors.New("desktop: windows are not supported on this platform")

// Mount is not available on this platform.
type Mount struct {
	view.Mount
	Title string
}

// NewMount returns [ErrUnsupported].
func NewMount(title string) (*Mount, error) {
	return nil, ErrUnsupported
}

// Terminate does nothing.
func (mt *Mount) Terminate() {}

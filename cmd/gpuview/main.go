// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gpuview displays an image or a colored triangle with WebGPU,
// in a window or offscreen.
package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
)

func init() {
	// glfw and the window surface must be used from the main thread.
	runtime.LockOSThread()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package view

import (
	"context"
	"fmt"
	"testing"

	"cogentcore.org/gpuview/base/errors"
	"github.com/stretchr/testify/assert"
)

// countScheduler schedules max frames and then reports done.
// If cancel is set, it is called on the given frame instead.
type countScheduler struct {
	max      int
	calls    int
	cancelAt int
	cancel   context.CancelFunc
}

func (cs *countScheduler) NextFrame(ctx context.Context) error {
	cs.calls++
	if cs.cancel != nil && cs.calls == cs.cancelAt {
		cs.cancel()
	}
	if cs.calls > cs.max {
		return ErrSchedulerDone
	}
	return nil
}

func TestFrameLoopSchedulerDone(t *testing.T) {
	drawn := 0
	fl := NewFrameLoop(&countScheduler{max: 5}, func() error {
		drawn++
		return nil
	})
	assert.Equal(t, Idle, fl.State())
	assert.NoError(t, fl.Run(context.Background()))
	assert.Equal(t, Stopped, fl.State())
	assert.Equal(t, 5, drawn)
	assert.Equal(t, FrameStats{Frames: 5}, fl.Stats())

	assert.Error(t, fl.Run(context.Background()), "loop runs only once")
	assert.Equal(t, 5, drawn)
}

func TestFrameLoopCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	drawn := 0
	fl := NewFrameLoop(&countScheduler{max: 100, cancelAt: 3, cancel: cancel}, func() error {
		drawn++
		return nil
	})
	assert.NoError(t, fl.Run(ctx))
	// cancelled while waiting for the third frame: no frame is drawn after it
	assert.Equal(t, 2, drawn)
	assert.Equal(t, Stopped, fl.State())
}

func TestFrameLoopCancelledBeforeRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cs := &countScheduler{max: 100}
	fl := NewFrameLoop(cs, func() error {
		t.Error("frame drawn after cancel")
		return nil
	})
	assert.NoError(t, fl.Run(ctx))
	assert.Equal(t, 0, cs.calls)
}

func TestFrameLoopDropped(t *testing.T) {
	n := 0
	fl := NewFrameLoop(&countScheduler{max: 4}, func() error {
		n++
		if n%2 == 0 {
			return fmt.Errorf("%w: surface outdated", ErrFrameDropped)
		}
		return nil
	})
	assert.NoError(t, fl.Run(context.Background()))
	assert.Equal(t, FrameStats{Frames: 2, Dropped: 2}, fl.Stats())
}

func TestFrameLoopError(t *testing.T) {
	errSubmit := errors.New("submit failed")
	n := 0
	fl := NewFrameLoop(&countScheduler{max: 10}, func() error {
		n++
		if n == 3 {
			return errSubmit
		}
		return nil
	})
	assert.ErrorIs(t, fl.Run(context.Background()), errSubmit)
	assert.Equal(t, 3, n)
	assert.Equal(t, int64(2), fl.Stats().Frames)
	assert.Equal(t, Stopped, fl.State())
}

type errScheduler struct{ err error }

func (es *errScheduler) NextFrame(ctx context.Context) error { return es.err }

func TestFrameLoopSchedulerError(t *testing.T) {
	errHost := errors.New("host gone")
	fl := NewFrameLoop(&errScheduler{errHost}, func() error { return nil })
	assert.ErrorIs(t, fl.Run(context.Background()), errHost)
}

func TestLoopStatesString(t *testing.T) {
	assert.Equal(t, "Running", Running.String())
	assert.Equal(t, "LoopStates(7)", LoopStates(7).String())
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"cogentcore.org/gpuview/base/errors"
	"cogentcore.org/gpuview/base/iox/imagex"
	"cogentcore.org/gpuview/host/desktop"
	"cogentcore.org/gpuview/host/offscreen"
	"cogentcore.org/gpuview/view"
	"github.com/fsnotify/fsnotify"
)

// newMount returns the mount for the config and the function to
// call when done with it.
func newMount(cf *Config) (view.Mount, func(), error) {
	if cf.Offscreen {
		mt := offscreen.NewMount(cf.Frames)
		if cf.Frames != 1 {
			mt.Frames.Interval = cf.Interval()
		}
		return mt, func() {}, nil
	}
	mt, err := desktop.NewMount(cf.Title)
	if err != nil {
		return nil, nil, err
	}
	return mt, mt.Terminate, nil
}

// run displays the view for the options returned by load until the
// window is closed, the frames have been drawn, or ctx is done.
// If watching, the view is re-created with newly loaded options
// whenever one of the given files changes, reusing the canvas.
func run(ctx context.Context, cf *Config, load func() (*view.Options, error), files []string) error {
	opts, err := load()
	if err != nil {
		return err
	}
	if cf.Offscreen && cf.Frames == 0 && cf.Out != "" && !cf.Watch {
		cf.Frames = 1
	}
	mt, done, err := newMount(cf)
	if err != nil {
		return err
	}
	defer done()

	var changes <-chan struct{}
	if cf.Watch {
		w, ch, err := watch(files)
		if err != nil {
			return err
		}
		defer w.Close()
		changes = ch
	}

	for {
		reload, err := runSession(ctx, cf, mt, opts, changes)
		if err != nil || ctx.Err() != nil {
			return err
		}
		if !reload {
			// an offscreen view waits for the next change
			if !cf.Watch || !cf.Offscreen {
				return nil
			}
			select {
			case <-ctx.Done():
				return nil
			case <-changes:
			}
		}
		slog.Info("reloading view")
		nopts, err := load()
		if err != nil {
			// keep showing the last good view until the next change
			errors.Log(err)
			continue
		}
		opts = nopts
		if om, ok := mt.(*offscreen.Mount); ok {
			om.Frames.Reset()
		}
	}
}

// runSession creates a session and runs it until it stops, or until
// a change is received, in which case it returns reload = true.
func runSession(ctx context.Context, cf *Config, mt view.Mount, opts *view.Options, changes <-chan struct{}) (reload bool, err error) {
	sn, err := view.New(ctx, mt, opts)
	if err != nil {
		return false, err
	}
	defer sn.Dispose()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	var changed atomic.Bool
	stopWatch := make(chan struct{})
	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		select {
		case <-changes:
			changed.Store(true)
			cancel()
		case <-stopWatch:
		}
	}()

	err = sn.Run(runCtx)
	close(stopWatch)
	<-watchDone
	if err != nil {
		return false, err
	}
	st := sn.Stats()
	slog.Debug("view stopped", "frames", st.Frames, "dropped", st.Dropped)
	if cf.Out != "" && st.Frames > 0 {
		img, err := sn.Snapshot()
		if err != nil {
			return false, err
		}
		if err := imagex.Save(img, cf.Out); err != nil {
			return false, err
		}
		slog.Info("saved snapshot", "file", cf.Out)
	}
	return changed.Load(), nil
}

// watch returns a watcher that signals on the returned channel when any
// of the given files is written, created or renamed. The directories
// are watched, so that files replaced by editors are still seen.
func watch(files []string) (*fsnotify.Watcher, <-chan struct{}, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	names := map[string]bool{}
	dirs := map[string]bool{}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			w.Close()
			return nil, nil, err
		}
		names[abs] = true
		dir := filepath.Dir(abs)
		if dirs[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			w.Close()
			return nil, nil, err
		}
		dirs[dir] = true
	}
	ch := make(chan struct{}, 1)
	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if !names[filepath.Clean(event.Name)] {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				slog.Debug("file changed", "file", event.Name, "op", event.Op)
				select {
				case ch <- struct{}{}:
				default:
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				errors.Log(err)
			}
		}
	}()
	return w, ch, nil
}

// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gpu

import "sync"

// Releaser is a GPU object that must be released when no longer used.
// All WebGPU objects (buffers, textures, pipelines, ...) satisfy it.
type Releaser interface {
	Release()
}

// Arena owns GPU objects created on one [Device], and releases them
// all at once, in reverse order of creation. Objects are accessed
// through typed [Handle]s, which report [ErrReleased] after the
// arena has been released, instead of handing out freed objects.
type Arena struct {
	mu       sync.Mutex
	items    []Releaser
	released bool
}

// Handle is a typed reference to an object owned by an [Arena].
// The zero Handle is invalid.
type Handle[T Releaser] struct {
	arena *Arena
	index int
}

// Track adds the given object to the arena, returning a handle to it.
// If the arena has already been released, the object is released
// immediately and [ErrReleased] is returned.
func Track[T Releaser](ar *Arena, obj T) (Handle[T], error) {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	if ar.released {
		obj.Release()
		return Handle[T]{}, ErrReleased
	}
	ar.items = append(ar.items, obj)
	return Handle[T]{arena: ar, index: len(ar.items) - 1}, nil
}

// Get returns the object for this handle, or [ErrReleased]
// if the owning arena has been released.
func (h Handle[T]) Get() (T, error) {
	var zero T
	if h.arena == nil {
		return zero, ErrReleased
	}
	h.arena.mu.Lock()
	defer h.arena.mu.Unlock()
	if h.arena.released || h.index >= len(h.arena.items) {
		return zero, ErrReleased
	}
	obj, ok := h.arena.items[h.index].(T)
	if !ok {
		return zero, ErrReleased
	}
	return obj, nil
}

// IsValid returns true if the handle refers to a live object.
func (h Handle[T]) IsValid() bool {
	_, err := h.Get()
	return err == nil
}

// Len returns the number of live objects in the arena.
func (ar *Arena) Len() int {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	return len(ar.items)
}

// IsReleased returns true once [Arena.Release] has been called.
func (ar *Arena) IsReleased() bool {
	ar.mu.Lock()
	defer ar.mu.Unlock()
	return ar.released
}

// Release releases all objects in reverse order of creation,
// invalidating all handles. It is safe to call more than once.
func (ar *Arena) Release() {
	ar.mu.Lock()
	items := ar.items
	ar.items = nil
	ar.released = true
	ar.mu.Unlock()
	for i := len(items) - 1; i >= 0; i-- {
		items[i].Release()
	}
}

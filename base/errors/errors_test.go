// Copyright (c) 2023, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLog(t *testing.T) {
	assert.NoError(t, Log(nil))
	err := New("boom")
	assert.Equal(t, err, Log(err))
}

func TestLog1(t *testing.T) {
	assert.Equal(t, 3, Log1(3, nil))
	assert.Equal(t, 0, Log1(0, New("boom")))
}

func TestMust(t *testing.T) {
	assert.NotPanics(t, func() { Must(nil) })
	assert.Panics(t, func() { Must(New("boom")) })
	assert.Equal(t, "x", Must1("x", nil))
	assert.Panics(t, func() { Must1("x", New("boom")) })
}

func TestIgnore1(t *testing.T) {
	assert.Equal(t, 5, Ignore1(5, New("ignored")))
}

func TestWrapped(t *testing.T) {
	base := New("base")
	err := fmt.Errorf("outer: %w", base)
	assert.True(t, Is(err, base))
	assert.Equal(t, base, Unwrap(err))
	joined := Join(base, ErrUnsupported)
	assert.True(t, Is(joined, ErrUnsupported))
}

func TestCallerInfo(t *testing.T) {
	info := func() string { return CallerInfo() }()
	assert.True(t, strings.Contains(info, "errors_test.go"), info)
}

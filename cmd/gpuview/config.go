// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"cogentcore.org/gpuview/base/iox/tomlx"
	"cogentcore.org/gpuview/base/iox/yamlx"
	"github.com/spf13/cobra"
)

// Config is the configuration for gpuview, from a config file
// and command line flags, which take precedence.
type Config struct {

	// Width of the window or offscreen canvas; 0 uses the image width,
	// or 512 for the triangle.
	Width int `toml:"width" yaml:"width"`

	// Height of the window or offscreen canvas; 0 uses the image height,
	// or 512 for the triangle.
	Height int `toml:"height" yaml:"height"`

	// Title of the window.
	Title string `toml:"title" yaml:"title"`

	// Offscreen renders without a window.
	Offscreen bool `toml:"offscreen" yaml:"offscreen"`

	// Out is the file to save the last offscreen frame to.
	Out string `toml:"out" yaml:"out"`

	// Frames is the number of frames to draw; 0 is until the window
	// is closed or the command is interrupted.
	Frames int `toml:"frames" yaml:"frames"`

	// FrameRate is the number of offscreen frames per second.
	FrameRate int `toml:"frame_rate" yaml:"frame_rate"`

	// Watch re-creates the view when the input files change.
	Watch bool `toml:"watch" yaml:"watch"`

	// Debug, Verbose and Quiet set the log level.
	Debug   bool `toml:"debug" yaml:"debug"`
	Verbose bool `toml:"verbose" yaml:"verbose"`
	Quiet   bool `toml:"quiet" yaml:"quiet"`
}

// Defaults sets the default values.
func (cf *Config) Defaults() {
	cf.Title = "gpuview"
	cf.FrameRate = 60
}

// OpenConfig reads the config from a TOML (.toml) or YAML (.yaml, .yml) file.
func OpenConfig(cf *Config, filename string) error {
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".toml":
		return tomlx.Open(cf, filename)
	case ".yaml", ".yml":
		return yamlx.Open(cf, filename)
	default:
		return fmt.Errorf("gpuview: unsupported config file type %q", ext)
	}
}

// AddFlags adds the flags for the config fields to the command.
func (cf *Config) AddFlags(cmd *cobra.Command) {
	fs := cmd.PersistentFlags()
	fs.IntVar(&cf.Width, "width", cf.Width, "width in pixels")
	fs.IntVar(&cf.Height, "height", cf.Height, "height in pixels")
	fs.StringVar(&cf.Title, "title", cf.Title, "window title")
	fs.BoolVar(&cf.Offscreen, "offscreen", cf.Offscreen, "render without a window")
	fs.StringVarP(&cf.Out, "out", "o", cf.Out, "save the last frame to this image file (offscreen only)")
	fs.IntVar(&cf.Frames, "frames", cf.Frames, "number of frames to draw (0 for unlimited)")
	fs.IntVar(&cf.FrameRate, "frame-rate", cf.FrameRate, "offscreen frames per second")
	fs.BoolVarP(&cf.Watch, "watch", "w", cf.Watch, "re-create the view when the input files change")
	fs.BoolVarP(&cf.Debug, "debug", "d", cf.Debug, "log debugging messages")
	fs.BoolVarP(&cf.Verbose, "verbose", "v", cf.Verbose, "log informational messages")
	fs.BoolVarP(&cf.Quiet, "quiet", "q", cf.Quiet, "only log errors")
}

// Merge sets each field whose flag was not set on the command line
// from the given config, which was read from a file on top of the defaults.
func (cf *Config) Merge(cmd *cobra.Command, file *Config) {
	fs := cmd.Flags()
	set := func(name string, apply func()) {
		if !fs.Changed(name) {
			apply()
		}
	}
	set("width", func() { cf.Width = file.Width })
	set("height", func() { cf.Height = file.Height })
	set("title", func() { cf.Title = file.Title })
	set("offscreen", func() { cf.Offscreen = file.Offscreen })
	set("out", func() { cf.Out = file.Out })
	set("frames", func() { cf.Frames = file.Frames })
	set("frame-rate", func() { cf.FrameRate = file.FrameRate })
	set("watch", func() { cf.Watch = file.Watch })
	set("debug", func() { cf.Debug = file.Debug })
	set("verbose", func() { cf.Verbose = file.Verbose })
	set("quiet", func() { cf.Quiet = file.Quiet })
}

// Interval returns the time between offscreen frames.
func (cf *Config) Interval() time.Duration {
	return time.Second / time.Duration(cf.FrameRate)
}

// Validate checks for inconsistent settings.
func (cf *Config) Validate() error {
	if cf.Width < 0 || cf.Height < 0 {
		return fmt.Errorf("gpuview: negative size %dx%d", cf.Width, cf.Height)
	}
	if cf.Out != "" && !cf.Offscreen {
		return fmt.Errorf("gpuview: --out requires --offscreen")
	}
	if cf.FrameRate <= 0 {
		return fmt.Errorf("gpuview: frame rate %d must be positive", cf.FrameRate)
	}
	if cf.Frames < 0 {
		return fmt.Errorf("gpuview: negative frame count %d", cf.Frames)
	}
	return nil
}

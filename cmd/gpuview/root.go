// Copyright (c) 2024, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log/slog"

	"cogentcore.org/gpuview/base/iox/imagex"
	"cogentcore.org/gpuview/base/logx"
	"cogentcore.org/gpuview/view"
	"github.com/spf13/cobra"
)

// defaultSize is the canvas size for the triangle if none is given.
const defaultSize = 512

func newRootCmd() *cobra.Command {
	cf := &Config{}
	cf.Defaults()
	var configFile string

	root := &cobra.Command{
		Use:          "gpuview",
		Short:        "Display an image or a colored triangle with WebGPU",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if configFile != "" {
				file := &Config{}
				file.Defaults()
				if err := OpenConfig(file, configFile); err != nil {
					return err
				}
				cf.Merge(cmd, file)
			}
			logx.UserLevel = logx.LevelFromFlags(cf.Debug, cf.Verbose, cf.Quiet)
			logx.SetDefaultLogger()
			return cf.Validate()
		},
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "TOML or YAML config file")
	cf.AddFlags(root)

	// watched returns the files to watch along with the given inputs.
	watched := func(inputs ...string) []string {
		if configFile != "" {
			inputs = append(inputs, configFile)
		}
		return inputs
	}

	root.AddCommand(&cobra.Command{
		Use:   "image FILE",
		Short: "Display an image file stretched over the whole canvas",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fname := args[0]
			return run(cmd.Context(), cf, func() (*view.Options, error) {
				return imageOptions(cf, fname)
			}, watched(fname))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "triangle",
		Short: "Display a triangle colored red, green and blue at its corners",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cf, func() (*view.Options, error) {
				return triangleOptions(cf), nil
			}, watched())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "open FILE",
		Short: "Display the view described by a TOML, YAML or JSON options file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fname := args[0]
			return run(cmd.Context(), cf, func() (*view.Options, error) {
				return view.OpenOptions(fname)
			}, watched(fname))
		},
	})
	return root
}

// imageOptions returns the options for displaying the given image file,
// at the image size unless a size is configured.
func imageOptions(cf *Config, fname string) (*view.Options, error) {
	img, format, err := imagex.Open(fname)
	if err != nil {
		return nil, fmt.Errorf("gpuview: %w", err)
	}
	pix, w, h := imagex.Pixels(img)
	slog.Info("opened image", "file", fname, "format", format, "width", w, "height", h)
	opts := &view.Options{Width: cf.Width, Height: cf.Height, ImageBytes: pix, ImageWidth: w, ImageHeight: h}
	if opts.Width == 0 {
		opts.Width = w
	}
	if opts.Height == 0 {
		opts.Height = h
	}
	return opts, nil
}

func triangleOptions(cf *Config) *view.Options {
	opts := &view.Options{Width: cf.Width, Height: cf.Height}
	if opts.Width == 0 {
		opts.Width = defaultSize
	}
	if opts.Height == 0 {
		opts.Height = defaultSize
	}
	return opts
}

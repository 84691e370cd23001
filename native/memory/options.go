// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package memory

import "image"

// Option configures a Buffer during creation.
type Option func(*options)

type options struct {
	compositor Compositor
	maxSize    image.Point
}

// WithCompositor sets the compositor posted regions are presented to.
// Without one, Post only validates the region.
func WithCompositor(c Compositor) Option {
	return func(o *options) {
		o.compositor = c
	}
}

// WithMaxSize limits the size Resize may allocate. A zero dimension means
// no limit in that direction.
//
// Example:
//
//	// Fail allocations wider than the display.
//	buf := memory.New(size, memory.WithMaxSize(image.Pt(3840, 0)))
func WithMaxSize(limit image.Point) Option {
	return func(o *options) {
		o.maxSize = limit
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/winsurface"
)

// reconcile returns the size the buffer must be reallocated to so that it
// matches the requested size, and whether a reallocation is needed at all.
func reconcile(requested, allocated image.Point) (image.Point, bool) {
	if requested == allocated {
		return allocated, false
	}
	return requested, true
}

// clampSize replaces negative dimensions with zero.
func clampSize(p image.Point) image.Point {
	return image.Pt(max(p.X, 0), max(p.Y, 0))
}

// sizeState is the deferred-resize state shared by both backends: the size
// asked for by Resize, and whether the last reallocation attempt failed.
// The allocated size is always read from the drawable.
type sizeState struct {
	requested image.Point
	faulted   bool
}

// request records a new logical size.
func (st *sizeState) request(size image.Point) {
	st.requested = clampSize(size)
}

// apply reallocates d if its size differs from the requested size.
// A failed reallocation marks the state faulted and leaves d untouched; the
// next call retries.
func (st *sizeState) apply(d Drawable, kind Kind) error {
	allocated := d.Size()
	target, needed := reconcile(st.requested, allocated)
	if !needed {
		st.faulted = false
		return nil
	}

	log := winsurface.Logger()
	log.Debug("surface: reallocating buffer",
		"kind", kind, "from", allocated, "to", target)

	if err := d.Resize(target); err != nil {
		st.faulted = true
		log.Warn("surface: buffer reallocation failed, keeping last buffer",
			"kind", kind, "size", target, "err", err)
		return fmt.Errorf("%w: %dx%d: %w", ErrAllocation, target.X, target.Y, err)
	}
	st.faulted = false
	return nil
}

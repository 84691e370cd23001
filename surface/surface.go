// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"

	"github.com/gogpu/winsurface/region"
)

// Surface is the render target of one window.
//
// A paint cycle calls BeginPaint, any number of Scroll calls, draws into
// PaintDevice, then calls Flush and EndPaint. Resize may be called at any
// time between cycles.
//
// Surfaces are NOT thread-safe.
type Surface interface {
	// Kind returns the backend kind of the surface.
	Kind() Kind

	// Size returns the requested logical size. The buffer matches it once
	// BeginPaint returns without error.
	Size() image.Point

	// Resize records a new logical size. The buffer is not touched until
	// the next BeginPaint.
	Resize(size image.Point)

	// BeginPaint starts a paint cycle for the given region and reallocates
	// the buffer if its size differs from the requested size.
	// An error wrapping ErrAllocation leaves the surface alive with its
	// last good buffer; the next BeginPaint retries.
	BeginPaint(r region.Region) error

	// EndPaint ends the paint cycle started by BeginPaint.
	EndPaint(r region.Region)

	// Scroll requests that area be moved by (dx, dy) at the next flush.
	// It returns false when the move cannot be done as a blit; the caller
	// must then repaint the area instead.
	Scroll(area region.Region, dx, dy int) bool

	// Flush applies pending scrolls and presents the region, translated by
	// offset into buffer coordinates, to the compositor.
	Flush(r region.Region, offset image.Point) error

	// PaintDevice returns the handle drawing goes to, or nil if the surface
	// cannot be painted (closed, or faulted by an allocation failure).
	// The handle must not be retained across BeginPaint.
	PaintDevice() PaintDevice

	// Capabilities reports the optional behaviors of the backend.
	Capabilities() Capabilities

	// Close releases the paint device. The drawable stays owned by the
	// window and is released separately, after Close.
	// Close is idempotent.
	Close() error
}

// Verify both backends implement Surface.
var (
	_ Surface = (*RasterSurface)(nil)
	_ Surface = (*AcceleratedSurface)(nil)
)

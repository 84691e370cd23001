// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/region"
)

// AcceleratedSurface is a surface backed by a double-buffered GPU drawable.
//
// It follows the same deferred-resize contract as RasterSurface, but has no
// scroll queue: Scroll always fails so callers redraw scrolled areas, and
// Flush presents the whole back buffer by swapping.
type AcceleratedSurface struct {
	drawable GPUDrawable
	size     sizeState
	painting bool
	closed   bool
}

// NewAccelerated creates an accelerated surface over d. The requested size
// starts at the drawable's current size.
func NewAccelerated(d GPUDrawable) (*AcceleratedSurface, error) {
	if d == nil {
		return nil, ErrNilDrawable
	}
	s := &AcceleratedSurface{drawable: d}
	s.size.request(d.Size())
	return s, nil
}

// Kind returns Accelerated.
func (s *AcceleratedSurface) Kind() Kind {
	return Accelerated
}

// Size returns the requested logical size.
func (s *AcceleratedSurface) Size() image.Point {
	return s.size.requested
}

// Resize records the new logical size. The GPU buffers are recreated at the
// next BeginPaint.
func (s *AcceleratedSurface) Resize(size image.Point) {
	if s.closed {
		return
	}
	winsurface.Logger().Debug("surface: resize", "kind", Accelerated, "size", size)
	s.size.request(size)
}

// BeginPaint recreates the GPU buffers if the requested size changed.
func (s *AcceleratedSurface) BeginPaint(r region.Region) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	winsurface.Logger().Debug("surface: begin paint", "kind", Accelerated, "region", r.Bounds())
	s.painting = true
	return s.size.apply(s.drawable, Accelerated)
}

// EndPaint ends the current paint cycle.
func (s *AcceleratedSurface) EndPaint(r region.Region) {
	winsurface.Logger().Debug("surface: end paint", "kind", Accelerated, "region", r.Bounds())
	s.painting = false
}

// Scroll always returns false: GPU surfaces redraw scrolled areas.
func (s *AcceleratedSurface) Scroll(region.Region, int, int) bool {
	return false
}

// Flush swaps the drawable's buffers. The region and offset are ignored;
// the whole back buffer is always presented.
func (s *AcceleratedSurface) Flush(_ region.Region, _ image.Point) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	if s.size.faulted {
		winsurface.Logger().Debug("surface: flush skipped, buffer faulted", "kind", Accelerated)
		return nil
	}
	winsurface.Logger().Debug("surface: flush", "kind", Accelerated)
	if err := s.drawable.SwapBuffers(); err != nil {
		return fmt.Errorf("surface: swap buffers: %w", err)
	}
	return nil
}

// PaintDevice returns the current back buffer as a *GPUTarget, or nil if the
// surface is closed, faulted or has no buffer.
func (s *AcceleratedSurface) PaintDevice() PaintDevice {
	if s.closed || s.size.faulted {
		return nil
	}
	t := s.drawable.Target()
	if t == nil {
		return nil
	}
	return t
}

// Faulted reports whether the last buffer reallocation failed.
func (s *AcceleratedSurface) Faulted() bool {
	return s.size.faulted
}

// Painting reports whether the surface is between BeginPaint and EndPaint.
func (s *AcceleratedSurface) Painting() bool {
	return s.painting
}

// Capabilities reports no optional behaviors: every paint is a full frame.
func (s *AcceleratedSurface) Capabilities() Capabilities {
	return Capabilities{}
}

// Close drops the paint device.
func (s *AcceleratedSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.painting = false
	winsurface.Logger().Debug("surface: closed", "kind", Accelerated)
	return nil
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/region"
)

// RasterSurface is a surface backed by a CPU pixel buffer.
//
// Scrolls issued between flushes are coalesced and applied as blits when
// the surface is flushed; the flushed region is then posted to the
// compositor.
//
// Example:
//
//	s, err := surface.NewRaster(drawable)
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	s.Resize(image.Pt(800, 600))
//	if err := s.BeginPaint(dirty); err != nil {
//	    return err
//	}
//	if !s.Scroll(viewport, 0, -20) {
//	    dirty = dirty.Union(viewport)
//	}
//	paint(s.PaintDevice().(*image.RGBA), dirty)
//	err = s.Flush(dirty, image.Point{})
//	s.EndPaint(dirty)
type RasterSurface struct {
	drawable RasterDrawable
	size     sizeState
	scrolls  scrollQueue
	painting bool
	closed   bool
}

// NewRaster creates a raster surface over d. The requested size starts at
// the drawable's current size.
func NewRaster(d RasterDrawable) (*RasterSurface, error) {
	if d == nil {
		return nil, ErrNilDrawable
	}
	s := &RasterSurface{drawable: d}
	s.size.request(d.Size())
	return s, nil
}

// Kind returns Raster.
func (s *RasterSurface) Kind() Kind {
	return Raster
}

// Size returns the requested logical size.
func (s *RasterSurface) Size() image.Point {
	return s.size.requested
}

// Resize records the new logical size. The buffer is reallocated at the
// next BeginPaint, because Resize may be called several times before a
// paint happens.
func (s *RasterSurface) Resize(size image.Point) {
	if s.closed {
		return
	}
	winsurface.Logger().Debug("surface: resize", "kind", Raster, "size", size)
	s.size.request(size)
}

// BeginPaint reallocates the buffer if the requested size changed.
func (s *RasterSurface) BeginPaint(r region.Region) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	winsurface.Logger().Debug("surface: begin paint", "kind", Raster, "region", r.Bounds())
	s.painting = true
	return s.size.apply(s.drawable, Raster)
}

// EndPaint ends the current paint cycle.
func (s *RasterSurface) EndPaint(r region.Region) {
	winsurface.Logger().Debug("surface: end paint", "kind", Raster, "region", r.Bounds())
	s.painting = false
}

// Scroll queues a move of area by (dx, dy).
//
// The footprint of the move (area and its destination, clipped to the
// surface) is merged with a pending scroll of exactly the same footprint,
// or queued as a new one if it touches no pending footprint. If it overlaps
// a pending footprint without being equal to it, Scroll returns false and
// the caller must repaint area instead.
func (s *RasterSurface) Scroll(area region.Region, dx, dy int) bool {
	if s.closed {
		return false
	}
	bounds := image.Rectangle{Max: s.size.requested}
	footprint := area.Union(area.Translate(dx, dy)).ClipTo(bounds)
	if footprint.IsEmpty() {
		return true
	}

	op, ok := s.scrolls.add(footprint, dx, dy)
	if !ok {
		winsurface.Logger().Warn("surface: pending scroll operations overlap but are not equal",
			"pending", op.TotalArea.Bounds(), "requested", footprint.Bounds())
		return false
	}
	winsurface.Logger().Debug("surface: scroll queued",
		"area", op.TotalArea.Bounds(), "dx", op.DX, "dy", op.DY)
	return true
}

// Flush applies every pending scroll as a blit, clears the scroll queue and
// posts r, translated by offset, to the compositor.
//
// The queue is cleared even if the surface is faulted; in that case nothing
// is blitted or posted.
func (s *RasterSurface) Flush(r region.Region, offset image.Point) error {
	if s.closed {
		return ErrSurfaceClosed
	}
	log := winsurface.Logger()
	log.Debug("surface: flush", "kind", Raster, "scrolls", s.scrolls.count(), "region", r.Bounds())

	faulted := s.size.faulted
	s.scrolls.drain(func(op ScrollOp) {
		if faulted {
			return
		}
		src := op.Source()
		if src.IsEmpty() {
			return
		}
		s.drawable.Blit(src, op.DX, op.DY)
	})

	if faulted {
		log.Debug("surface: flush skipped, buffer faulted", "kind", Raster)
		return nil
	}
	if err := s.drawable.Post(r.Translate(offset.X, offset.Y)); err != nil {
		return fmt.Errorf("surface: post: %w", err)
	}
	return nil
}

// PaintDevice returns the drawable's pixel buffer, or nil if the surface is
// closed or faulted.
func (s *RasterSurface) PaintDevice() PaintDevice {
	if s.closed || s.size.faulted {
		return nil
	}
	img := s.drawable.Image()
	if img == nil {
		return nil
	}
	return img
}

// PendingScrolls returns the queued scroll operations in submission order.
func (s *RasterSurface) PendingScrolls() []ScrollOp {
	return s.scrolls.pending()
}

// Faulted reports whether the last buffer reallocation failed.
func (s *RasterSurface) Faulted() bool {
	return s.size.faulted
}

// Painting reports whether the surface is between BeginPaint and EndPaint.
func (s *RasterSurface) Painting() bool {
	return s.painting
}

// Capabilities reports partial flushes and scrolling.
func (s *RasterSurface) Capabilities() Capabilities {
	return Capabilities{PartialFlush: true, Scroll: true}
}

// Close drops pending scrolls and the paint device.
func (s *RasterSurface) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.painting = false
	s.scrolls.drain(func(ScrollOp) {})
	winsurface.Logger().Debug("surface: closed", "kind", Raster)
	return nil
}

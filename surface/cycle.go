// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"

	"github.com/gogpu/winsurface/region"
)

// ScrollRequest asks for Area to be moved by (DX, DY).
type ScrollRequest struct {
	Area   region.Region
	DX, DY int
}

// Frame describes one paint cycle.
type Frame struct {
	// Dirty is the region the application wants to repaint.
	Dirty region.Region

	// Scrolls are applied in order before drawing.
	Scrolls []ScrollRequest

	// Offset translates the flushed region into window coordinates.
	Offset image.Point
}

// Paint runs one full paint cycle on s:
// BeginPaint, the frame's scrolls, draw, Flush, EndPaint.
//
// A scroll the surface rejects is turned into a repaint of the scrolled
// area. Surfaces without partial flush support repaint their full bounds.
// draw is not called when the surface has no paint device, for example
// after a failed reallocation; the cycle still flushes so that pending
// scrolls are dropped.
//
// BeginPaint errors other than ErrAllocation abort the cycle.
func Paint(s Surface, f Frame, draw func(dev PaintDevice, dirty region.Region)) error {
	beginErr := s.BeginPaint(f.Dirty)
	if beginErr != nil && !errors.Is(beginErr, ErrAllocation) {
		return beginErr
	}

	repaint := f.Dirty
	var moved region.Region
	for _, sr := range f.Scrolls {
		footprint := sr.Area.Union(sr.Area.Translate(sr.DX, sr.DY))
		if s.Scroll(sr.Area, sr.DX, sr.DY) {
			moved = moved.Union(footprint)
			continue
		}
		repaint = repaint.Union(footprint)
	}

	bounds := image.Rectangle{Max: s.Size()}
	if !s.Capabilities().PartialFlush {
		repaint = region.FromRect(bounds)
	}
	repaint = repaint.ClipTo(bounds)

	if dev := s.PaintDevice(); dev != nil && draw != nil && !repaint.IsEmpty() {
		draw(dev, repaint)
	}

	flushErr := s.Flush(repaint.Union(moved).ClipTo(bounds), f.Offset)
	s.EndPaint(repaint)
	return errors.Join(beginErr, flushErr)
}

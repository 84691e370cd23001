// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package region

import (
	"image"
	"slices"
	"strings"
)

// Region is a set of pixels stored as canonical, non-overlapping rectangles
// ordered top-to-bottom, then left-to-right.
//
// The zero value is the empty region.
type Region struct {
	rects []image.Rectangle
}

// New returns the union of the given rectangles. Empty rectangles are
// ignored.
func New(rects ...image.Rectangle) Region {
	return Region{rects: combine(rects, nil, opUnion)}
}

// Rect returns the region covering the rectangle at (x, y) with the given
// width and height.
func Rect(x, y, width, height int) Region {
	return New(image.Rect(x, y, x+width, y+height))
}

// FromRect returns the region covering r.
func FromRect(r image.Rectangle) Region {
	return New(r)
}

// IsEmpty reports whether the region covers no pixels.
func (r Region) IsEmpty() bool {
	return len(r.rects) == 0
}

// Rects returns a copy of the canonical rectangles of the region.
func (r Region) Rects() []image.Rectangle {
	return slices.Clone(r.rects)
}

// Len returns the number of canonical rectangles.
func (r Region) Len() int {
	return len(r.rects)
}

// Bounds returns the smallest rectangle containing the region.
func (r Region) Bounds() image.Rectangle {
	var b image.Rectangle
	for _, rc := range r.rects {
		b = b.Union(rc)
	}
	return b
}

// Area returns the number of pixels covered by the region.
func (r Region) Area() int {
	n := 0
	for _, rc := range r.rects {
		n += rc.Dx() * rc.Dy()
	}
	return n
}

// Contains reports whether p lies inside the region.
func (r Region) Contains(p image.Point) bool {
	for _, rc := range r.rects {
		if p.In(rc) {
			return true
		}
	}
	return false
}

// Union returns the pixels in r or o.
func (r Region) Union(o Region) Region {
	if r.IsEmpty() {
		return o
	}
	if o.IsEmpty() {
		return r
	}
	return Region{rects: combine(r.rects, o.rects, opUnion)}
}

// Intersect returns the pixels in both r and o.
func (r Region) Intersect(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() || !r.Bounds().Overlaps(o.Bounds()) {
		return Region{}
	}
	return Region{rects: combine(r.rects, o.rects, opIntersect)}
}

// Subtract returns the pixels in r that are not in o.
func (r Region) Subtract(o Region) Region {
	if r.IsEmpty() || o.IsEmpty() || !r.Bounds().Overlaps(o.Bounds()) {
		return r
	}
	return Region{rects: combine(r.rects, o.rects, opSubtract)}
}

// ClipTo returns the part of r inside rc.
func (r Region) ClipTo(rc image.Rectangle) Region {
	return r.Intersect(FromRect(rc))
}

// Translate returns r moved by (dx, dy).
// Translation preserves the canonical form.
func (r Region) Translate(dx, dy int) Region {
	if r.IsEmpty() || (dx == 0 && dy == 0) {
		return r
	}
	d := image.Pt(dx, dy)
	out := make([]image.Rectangle, len(r.rects))
	for i, rc := range r.rects {
		out[i] = rc.Add(d)
	}
	return Region{rects: out}
}

// Equal reports whether r and o cover exactly the same pixels.
func (r Region) Equal(o Region) bool {
	return slices.Equal(r.rects, o.rects)
}

// Intersects reports whether r and o share at least one pixel.
func (r Region) Intersects(o Region) bool {
	if r.IsEmpty() || o.IsEmpty() || !r.Bounds().Overlaps(o.Bounds()) {
		return false
	}
	for _, a := range r.rects {
		for _, b := range o.rects {
			if a.Overlaps(b) {
				return true
			}
		}
	}
	return false
}

// String returns the rectangles of the region, e.g. "{(0,0)-(10,10)}".
func (r Region) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, rc := range r.rects {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(rc.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

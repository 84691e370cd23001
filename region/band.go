// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package region

import (
	"image"
	"slices"
)

// setOp decides whether a pixel belongs to the result given its membership
// in the two operands.
type setOp func(inA, inB bool) bool

func opUnion(inA, inB bool) bool     { return inA || inB }
func opIntersect(inA, inB bool) bool { return inA && inB }
func opSubtract(inA, inB bool) bool  { return inA && !inB }

// span is a half-open horizontal interval [x0, x1).
type span struct {
	x0, x1 int
}

// band is a horizontal strip [y0, y1) with constant x-coverage.
type band struct {
	y0, y1 int
	spans  []span
}

// combine applies op to the pixel sets described by a and b and returns the
// result in canonical banded form. Input rectangles may overlap.
func combine(a, b []image.Rectangle, op setOp) []image.Rectangle {
	ys := make([]int, 0, 2*(len(a)+len(b)))
	for _, rs := range [][]image.Rectangle{a, b} {
		for _, r := range rs {
			if r.Empty() {
				continue
			}
			ys = append(ys, r.Min.Y, r.Max.Y)
		}
	}
	if len(ys) == 0 {
		return nil
	}
	slices.Sort(ys)
	ys = slices.Compact(ys)

	var bands []band
	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		spans := combineSpans(spansAt(a, y0), spansAt(b, y0), op)
		if len(spans) == 0 {
			continue
		}
		if n := len(bands); n > 0 && bands[n-1].y1 == y0 && slices.Equal(bands[n-1].spans, spans) {
			bands[n-1].y1 = y1
			continue
		}
		bands = append(bands, band{y0: y0, y1: y1, spans: spans})
	}

	var out []image.Rectangle
	for _, bd := range bands {
		for _, s := range bd.spans {
			out = append(out, image.Rect(s.x0, bd.y0, s.x1, bd.y1))
		}
	}
	return out
}

// spansAt returns the merged x-coverage of rs on row y.
func spansAt(rs []image.Rectangle, y int) []span {
	var spans []span
	for _, r := range rs {
		if r.Empty() || y < r.Min.Y || y >= r.Max.Y {
			continue
		}
		spans = append(spans, span{r.Min.X, r.Max.X})
	}
	if len(spans) < 2 {
		return spans
	}
	slices.SortFunc(spans, func(p, q span) int { return p.x0 - q.x0 })
	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.x0 <= last.x1 {
			last.x1 = max(last.x1, s.x1)
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// combineSpans applies op to two sorted, merged span lists.
func combineSpans(a, b []span, op setOp) []span {
	xs := make([]int, 0, 2*(len(a)+len(b)))
	for _, s := range a {
		xs = append(xs, s.x0, s.x1)
	}
	for _, s := range b {
		xs = append(xs, s.x0, s.x1)
	}
	if len(xs) == 0 {
		return nil
	}
	slices.Sort(xs)
	xs = slices.Compact(xs)

	var out []span
	for i := 0; i+1 < len(xs); i++ {
		x0, x1 := xs[i], xs[i+1]
		if !op(covers(a, x0), covers(b, x0)) {
			continue
		}
		if n := len(out); n > 0 && out[n-1].x1 == x0 {
			out[n-1].x1 = x1
			continue
		}
		out = append(out, span{x0, x1})
	}
	return out
}

// covers reports whether x lies inside one of the spans.
func covers(spans []span, x int) bool {
	for _, s := range spans {
		if x >= s.x0 && x < s.x1 {
			return true
		}
	}
	return false
}

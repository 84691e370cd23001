// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package region implements sets of pixels described by axis-aligned
// rectangles.
//
// A Region is kept in a canonical banded form: the covered area is split
// into horizontal bands, each band holds sorted, non-touching x-spans, and
// vertically adjacent bands with identical spans are merged. Two regions
// covering the same pixels therefore always have the same representation,
// so [Region.Equal] is exact set equality.
//
// Regions are values. Every operation returns a new Region and never
// modifies its receiver or arguments.
//
//	viewport := region.Rect(0, 0, 50, 50)
//	moved := viewport.Translate(10, 0)
//	footprint := viewport.Union(moved)   // (0,0)-(60,50)
//	source := footprint.Intersect(footprint.Translate(-10, 0))
package region

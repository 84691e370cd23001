// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"slices"

	"github.com/gogpu/winsurface/region"
)

// ScrollOp is a pending scroll: the pixels of TotalArea are moved by
// (DX, DY) at the next flush.
type ScrollOp struct {
	// TotalArea is the footprint of the scroll: source and destination
	// together, clipped to the surface.
	TotalArea region.Region

	// DX and DY are the accumulated translation.
	DX, DY int
}

// Source returns the part of the footprint whose pixels are still visible
// after the move, i.e. the rectangle set that is actually blitted.
func (op ScrollOp) Source() region.Region {
	return op.TotalArea.Intersect(op.TotalArea.Translate(-op.DX, -op.DY))
}

// scrollQueue coalesces scroll requests issued between two flushes.
//
// Footprints in the queue are pairwise disjoint: add rejects any footprint
// that overlaps a pending one without being equal to it. Because of this the
// order in which drain applies the ops does not affect the result. drain
// goes newest-first; if partial overlaps were ever merged, that order would
// start to matter and must be revisited together with add.
type scrollQueue struct {
	ops []ScrollOp
}

// add queues a scroll of footprint by (dx, dy).
// It returns false, leaving the queue unchanged, if footprint intersects a
// pending footprint without being equal to it. The returned op is the
// pending op that was created, updated, or that caused the conflict.
func (q *scrollQueue) add(footprint region.Region, dx, dy int) (ScrollOp, bool) {
	for i := len(q.ops) - 1; i >= 0; i-- {
		op := &q.ops[i]
		if op.TotalArea.Equal(footprint) {
			op.DX += dx
			op.DY += dy
			return *op, true
		}
		if op.TotalArea.Intersects(footprint) {
			return *op, false
		}
	}
	op := ScrollOp{TotalArea: footprint, DX: dx, DY: dy}
	q.ops = append(q.ops, op)
	return op, true
}

// drain calls apply for every pending op, newest first, and empties the
// queue.
func (q *scrollQueue) drain(apply func(ScrollOp)) {
	for i := len(q.ops) - 1; i >= 0; i-- {
		apply(q.ops[i])
	}
	clear(q.ops)
	q.ops = q.ops[:0]
}

// pending returns a copy of the queued ops in submission order.
func (q *scrollQueue) pending() []ScrollOp {
	return slices.Clone(q.ops)
}

// count returns the number of queued ops.
func (q *scrollQueue) count() int {
	return len(q.ops)
}

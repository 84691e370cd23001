// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"
	"slices"
	"testing"

	"github.com/gogpu/winsurface/region"
)

// drawRecorder records the calls Paint makes to its draw function.
type drawRecorder struct {
	devices []PaintDevice
	regions []region.Region
}

func (r *drawRecorder) draw(dev PaintDevice, dirty region.Region) {
	r.devices = append(r.devices, dev)
	r.regions = append(r.regions, dirty)
}

func TestPaintRasterScroll(t *testing.T) {
	s, d := newTestRaster(t, 50, 50)
	var rec drawRecorder

	f := Frame{
		Dirty:   region.Rect(0, 0, 10, 50),
		Scrolls: []ScrollRequest{{Area: region.Rect(0, 0, 50, 50), DX: 10}},
	}
	if err := Paint(s, f, rec.draw); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	if len(rec.regions) != 1 || !rec.regions[0].Equal(f.Dirty) {
		t.Fatalf("drawn regions = %v, want [%v]", rec.regions, f.Dirty)
	}
	if _, ok := rec.devices[0].(*image.RGBA); !ok {
		t.Errorf("paint device = %T, want *image.RGBA", rec.devices[0])
	}
	if want := []string{"blit", "post"}; !slices.Equal(d.calls, want) {
		t.Fatalf("calls = %v, want %v", d.calls, want)
	}
	if want := region.Rect(0, 0, 50, 50); !d.posts[0].Equal(want) {
		t.Errorf("posted = %v, want %v", d.posts[0], want)
	}
	if s.Painting() {
		t.Error("Paint left the surface painting")
	}
}

func TestPaintRejectedScrollRepaints(t *testing.T) {
	s, d := newTestRaster(t, 100, 100)
	var rec drawRecorder

	f := Frame{
		Scrolls: []ScrollRequest{
			{Area: region.Rect(0, 0, 10, 10), DX: 5},
			{Area: region.Rect(5, 5, 10, 10), DX: 2},
		},
	}
	if err := Paint(s, f, rec.draw); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	want := region.Rect(5, 5, 12, 10)
	if len(rec.regions) != 1 || !rec.regions[0].Equal(want) {
		t.Fatalf("drawn regions = %v, want [%v]", rec.regions, want)
	}
	if len(d.blits) != 1 || d.blits[0].dx != 5 {
		t.Errorf("blits = %+v, want one blit by 5", d.blits)
	}
}

func TestPaintAcceleratedFullFrame(t *testing.T) {
	s, d := newTestAccelerated(t, 30, 20)
	var rec drawRecorder

	f := Frame{
		Dirty:   region.Rect(1, 1, 2, 2),
		Scrolls: []ScrollRequest{{Area: region.Rect(0, 0, 30, 20), DY: 4}},
	}
	if err := Paint(s, f, rec.draw); err != nil {
		t.Fatalf("Paint: %v", err)
	}

	want := region.Rect(0, 0, 30, 20)
	if len(rec.regions) != 1 || !rec.regions[0].Equal(want) {
		t.Fatalf("drawn regions = %v, want [%v]", rec.regions, want)
	}
	if _, ok := rec.devices[0].(*GPUTarget); !ok {
		t.Errorf("paint device = %T, want *GPUTarget", rec.devices[0])
	}
	if d.swaps != 1 {
		t.Errorf("swaps = %d, want 1", d.swaps)
	}
}

func TestPaintAllocationFailure(t *testing.T) {
	s, d := newTestRaster(t, 10, 10)
	d.failNext = 1
	s.Resize(image.Pt(20, 20))
	var rec drawRecorder

	f := Frame{
		Dirty:   region.Rect(0, 0, 20, 20),
		Scrolls: []ScrollRequest{{Area: region.Rect(0, 0, 20, 20), DX: 1}},
	}
	err := Paint(s, f, rec.draw)
	if !errors.Is(err, ErrAllocation) {
		t.Fatalf("Paint error = %v, want ErrAllocation", err)
	}
	if len(rec.regions) != 0 {
		t.Errorf("draw called %d times on a faulted surface", len(rec.regions))
	}
	if n := len(s.PendingScrolls()); n != 0 {
		t.Errorf("pending ops = %d, want 0", n)
	}

	if err := Paint(s, f, rec.draw); err != nil {
		t.Fatalf("second Paint: %v", err)
	}
	if len(rec.regions) != 1 {
		t.Errorf("draw calls after recovery = %d, want 1", len(rec.regions))
	}
}

func TestPaintClosedSurface(t *testing.T) {
	s, _ := newTestRaster(t, 10, 10)
	s.Close()
	var rec drawRecorder

	err := Paint(s, Frame{Dirty: region.Rect(0, 0, 10, 10)}, rec.draw)
	if !errors.Is(err, ErrSurfaceClosed) {
		t.Fatalf("Paint error = %v, want ErrSurfaceClosed", err)
	}
	if len(rec.regions) != 0 {
		t.Error("draw called on a closed surface")
	}
}

func TestPaintOffset(t *testing.T) {
	s, d := newTestRaster(t, 10, 10)

	f := Frame{Dirty: region.Rect(0, 0, 4, 4), Offset: image.Pt(100, 200)}
	if err := Paint(s, f, nil); err != nil {
		t.Fatalf("Paint: %v", err)
	}
	if want := region.Rect(100, 200, 4, 4); len(d.posts) != 1 || !d.posts[0].Equal(want) {
		t.Errorf("posts = %v, want [%v]", d.posts, want)
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"image"
	"sync"
	"testing"

	"github.com/gogpu/winsurface/region"
)

func TestRecorderGrowsScreen(t *testing.T) {
	rec := NewRecorder()

	small := image.NewRGBA(image.Rect(0, 0, 4, 4))
	fill(small, small.Rect, red)
	if err := rec.Present(small, region.Rect(0, 0, 4, 4)); err != nil {
		t.Fatal(err)
	}

	large := image.NewRGBA(image.Rect(0, 0, 8, 8))
	fill(large, large.Rect, green)
	if err := rec.Present(large, region.Rect(4, 4, 4, 4)); err != nil {
		t.Fatal(err)
	}

	screen := rec.Screen()
	if got := screen.Rect; got != image.Rect(0, 0, 8, 8) {
		t.Fatalf("screen bounds = %v, want (0,0)-(8,8)", got)
	}
	if got := screen.RGBAAt(1, 1); got != red {
		t.Errorf("screen (1,1) = %v, want red", got)
	}
	if got := screen.RGBAAt(6, 6); got != green {
		t.Errorf("screen (6,6) = %v, want green", got)
	}
	if got := screen.RGBAAt(6, 1); got != blank {
		t.Errorf("screen (6,1) = %v, want blank", got)
	}
}

func TestRecorderReset(t *testing.T) {
	rec := NewRecorder()
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rec.Present(src, region.Rect(0, 0, 1, 1))
	rec.Present(src, region.Rect(1, 1, 1, 1))

	if rec.Frames() != 2 {
		t.Fatalf("Frames() = %d, want 2", rec.Frames())
	}
	rec.Reset()
	if rec.Frames() != 0 || len(rec.Posts()) != 0 {
		t.Error("Reset kept recorded posts")
	}
	if rec.Screen().Rect.Empty() {
		t.Error("Reset dropped the screen")
	}
}

func TestRecorderConcurrent(t *testing.T) {
	rec := NewRecorder()
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec.Present(src, region.Rect(i, i, 2, 2))
			_ = rec.Screen()
		}()
	}
	wg.Wait()

	if rec.Frames() != 8 {
		t.Errorf("Frames() = %d, want 8", rec.Frames())
	}
}

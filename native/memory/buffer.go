// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/region"
	"github.com/gogpu/winsurface/surface"
)

var (
	// ErrReleased is returned when a released buffer is used.
	ErrReleased = errors.New("memory: buffer released")

	// ErrTooLarge is returned by Resize when the size exceeds the limit
	// set with WithMaxSize.
	ErrTooLarge = errors.New("memory: buffer exceeds size limit")
)

// Compositor receives the regions a Buffer posts.
type Compositor interface {
	// Present shows the pixels of src inside r. Only the rectangles of r
	// are valid to read.
	Present(src *image.RGBA, r region.Region) error
}

// Buffer is a raster drawable holding its pixels in memory.
//
// A Buffer is double buffered: painting goes to the back image returned by
// Image, Post copies the posted region to the front image, and Blit reads
// from the front image. Scrolling therefore moves what is on screen even if
// the application already painted over the source area.
type Buffer struct {
	back  *image.RGBA
	front *image.RGBA
	opts  options
}

// New creates a buffer of the given size. Negative dimensions are clamped
// to zero.
func New(size image.Point, opts ...Option) *Buffer {
	b := &Buffer{}
	for _, opt := range opts {
		opt(&b.opts)
	}
	bounds := image.Rectangle{Max: image.Pt(max(size.X, 0), max(size.Y, 0))}
	b.back = image.NewRGBA(bounds)
	b.front = image.NewRGBA(bounds)
	return b
}

// Size returns the allocated size, or zero after Release.
func (b *Buffer) Size() image.Point {
	if b.back == nil {
		return image.Point{}
	}
	return b.back.Rect.Size()
}

// Resize allocates new pixel buffers. Pixels inside both the old and the
// new bounds are kept. On error the old buffers stay in place.
func (b *Buffer) Resize(size image.Point) error {
	if b.back == nil {
		return ErrReleased
	}
	if size.X < 0 || size.Y < 0 {
		return fmt.Errorf("memory: invalid size %v", size)
	}
	if lim := b.opts.maxSize; (lim.X > 0 && size.X > lim.X) || (lim.Y > 0 && size.Y > lim.Y) {
		return fmt.Errorf("%w: %v > %v", ErrTooLarge, size, lim)
	}

	b.back = realloc(b.back, size)
	b.front = realloc(b.front, size)
	return nil
}

// realloc returns a new image of the given size holding the pixels of img
// that fit.
func realloc(img *image.RGBA, size image.Point) *image.RGBA {
	next := image.NewRGBA(image.Rectangle{Max: size})
	keep := img.Rect.Intersect(next.Rect)
	if !keep.Empty() {
		draw.Copy(next, keep.Min, img, keep, draw.Src, nil)
	}
	return next
}

// Release drops the pixel buffers.
func (b *Buffer) Release() {
	b.back = nil
	b.front = nil
}

// Image returns the back buffer, or nil after Release.
func (b *Buffer) Image() *image.RGBA {
	return b.back
}

// Blit copies the last posted pixels of src to src translated by (dx, dy)
// in the back buffer. Pixels moved outside the buffer are dropped.
func (b *Buffer) Blit(src region.Region, dx, dy int) {
	if b.back == nil || (dx == 0 && dy == 0) {
		return
	}
	delta := image.Pt(dx, dy)
	for _, r := range src.ClipTo(b.front.Rect).Rects() {
		dr := r.Add(delta).Intersect(b.back.Rect)
		if dr.Empty() {
			continue
		}
		draw.Copy(b.back, dr.Min, b.front, dr.Sub(delta), draw.Src, nil)
	}
}

// Post copies r from the back to the front buffer and presents it to the
// compositor. The region is clipped to the buffer.
func (b *Buffer) Post(r region.Region) error {
	if b.back == nil {
		return ErrReleased
	}
	r = r.ClipTo(b.back.Rect)
	if r.IsEmpty() {
		return nil
	}
	for _, rect := range r.Rects() {
		draw.Copy(b.front, rect.Min, b.back, rect, draw.Src, nil)
	}
	if b.opts.compositor == nil {
		return nil
	}
	if err := b.opts.compositor.Present(b.front, r); err != nil {
		winsurface.Logger().Warn("memory: present failed", "region", r.Bounds(), "err", err)
		return fmt.Errorf("memory: present: %w", err)
	}
	return nil
}

var _ surface.RasterDrawable = (*Buffer)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package memory

import (
	"image"
	"slices"
	"sync"

	"golang.org/x/image/draw"

	"github.com/gogpu/winsurface/region"
)

// Recorder is a Compositor that copies presented pixels into its own screen
// image and records every presented region.
//
// Recorder is safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	screen *image.RGBA
	posts  []region.Region
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{screen: image.NewRGBA(image.Rectangle{})}
}

// Present copies the rectangles of r from src to the screen. The screen
// grows to cover src.
func (c *Recorder) Present(src *image.RGBA, r region.Region) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !src.Rect.In(c.screen.Rect) {
		grown := image.NewRGBA(c.screen.Rect.Union(src.Rect))
		draw.Copy(grown, c.screen.Rect.Min, c.screen, c.screen.Rect, draw.Src, nil)
		c.screen = grown
	}
	for _, rect := range r.ClipTo(src.Rect).Rects() {
		draw.Copy(c.screen, rect.Min, src, rect, draw.Src, nil)
	}
	c.posts = append(c.posts, r)
	return nil
}

// Screen returns a copy of the current screen contents.
func (c *Recorder) Screen() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := image.NewRGBA(c.screen.Rect)
	copy(out.Pix, c.screen.Pix)
	return out
}

// Posts returns the presented regions in order.
func (c *Recorder) Posts() []region.Region {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.posts)
}

// Frames returns the number of presents so far.
func (c *Recorder) Frames() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.posts)
}

// Reset forgets recorded posts. The screen is kept.
func (c *Recorder) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.posts = nil
}

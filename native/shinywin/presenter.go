// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shinywin

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/native/memory"
	"github.com/gogpu/winsurface/region"
)

// BufferAllocator allocates shiny buffers. screen.Screen implements it.
type BufferAllocator interface {
	NewBuffer(size image.Point) (screen.Buffer, error)
}

// Target is the part of a shiny window a Presenter draws to.
// screen.Window implements it.
type Target interface {
	Upload(dp image.Point, src screen.Buffer, sr image.Rectangle)
	Publish() screen.PublishResult
}

// Presenter is a memory.Compositor that uploads posted regions to a shiny
// window through a staging buffer.
type Presenter struct {
	mu      sync.Mutex
	alloc   BufferAllocator
	target  Target
	staging screen.Buffer
	frames  int
}

// NewPresenter creates a presenter uploading to target with staging
// buffers from alloc.
func NewPresenter(alloc BufferAllocator, target Target) *Presenter {
	return &Presenter{alloc: alloc, target: target}
}

// Present copies the rectangles of r from src into the staging buffer,
// uploads them and publishes the window.
func (p *Presenter) Present(src *image.RGBA, r region.Region) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureStaging(src.Rect.Size()); err != nil {
		return err
	}
	dst := p.staging.RGBA()
	for _, rect := range r.ClipTo(src.Rect).Rects() {
		draw.Copy(dst, rect.Min, src, rect, draw.Src, nil)
		p.target.Upload(rect.Min, p.staging, rect)
	}
	res := p.target.Publish()
	p.frames++
	winsurface.Logger().Debug("shinywin: published",
		"region", r.Bounds(), "backBufferPreserved", res.BackBufferPreserved)
	return nil
}

// ensureStaging makes the staging buffer exactly size.
func (p *Presenter) ensureStaging(size image.Point) error {
	if p.staging != nil && p.staging.Size() == size {
		return nil
	}
	if p.staging != nil {
		p.staging.Release()
		p.staging = nil
	}
	b, err := p.alloc.NewBuffer(size)
	if err != nil {
		return fmt.Errorf("shinywin: new buffer %v: %w", size, err)
	}
	p.staging = b
	return nil
}

// Frames returns the number of published frames.
func (p *Presenter) Frames() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frames
}

// Release frees the staging buffer.
func (p *Presenter) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.staging != nil {
		p.staging.Release()
		p.staging = nil
	}
}

var _ memory.Compositor = (*Presenter)(nil)

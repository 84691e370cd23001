// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shinywin

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/exp/shiny/screen"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/native/memory"
	"github.com/gogpu/winsurface/surface"
)

// ErrNoGPU is returned when an accelerated drawable is requested from a
// Display.
var ErrNoGPU = errors.New("shinywin: accelerated surfaces are not supported")

// Display creates raster drawables backed by shiny windows.
type Display struct {
	screen screen.Screen
	title  string
}

// NewDisplay creates a display on s. New windows get the given title.
func NewDisplay(s screen.Screen, title string) *Display {
	return &Display{screen: s, title: title}
}

// Supports reports whether surfaces of kind k can be shown. Only raster
// surfaces are supported.
func (d *Display) Supports(k surface.Kind) bool {
	return k == surface.Raster
}

// NewRasterDrawable opens a shiny window of the given size and returns a
// drawable presenting into it.
func (d *Display) NewRasterDrawable(size image.Point) (surface.RasterDrawable, error) {
	w, err := d.screen.NewWindow(&screen.NewWindowOptions{
		Title:  d.title,
		Width:  size.X,
		Height: size.Y,
	})
	if err != nil {
		return nil, fmt.Errorf("shinywin: new window: %w", err)
	}
	p := NewPresenter(d.screen, w)
	winsurface.Logger().Info("shinywin: window opened", "title", d.title, "size", size)
	return &Drawable{
		Buffer:    memory.New(size, memory.WithCompositor(p)),
		presenter: p,
		window:    w,
	}, nil
}

// NewGPUDrawable returns ErrNoGPU.
func (d *Display) NewGPUDrawable(image.Point) (surface.GPUDrawable, error) {
	return nil, ErrNoGPU
}

// Close is a no-op: the shiny screen is owned by driver.Main.
func (d *Display) Close() error {
	return nil
}

// Drawable is a raster drawable shown in its own shiny window.
type Drawable struct {
	*memory.Buffer
	presenter *Presenter
	window    screen.Window
}

// Window returns the shiny window, for reading its events.
func (d *Drawable) Window() screen.Window {
	return d.window
}

// Presenter returns the presenter uploading to the window.
func (d *Drawable) Presenter() *Presenter {
	return d.presenter
}

// Release frees the pixel buffers and closes the window.
func (d *Drawable) Release() {
	d.Buffer.Release()
	d.presenter.Release()
	if d.window != nil {
		d.window.Release()
		d.window = nil
	}
}

var _ surface.RasterDrawable = (*Drawable)(nil)

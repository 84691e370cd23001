// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"errors"
	"fmt"
	"image"
	"maps"
	"slices"
	"sync"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/surface"
)

var (
	// ErrCompositorUnavailable is returned by New when the compositor
	// cannot be reached. Without a compositor nothing can be shown, so
	// callers should treat it as fatal.
	ErrCompositorUnavailable = errors.New("platform: compositor unavailable")

	// ErrBackendUnsupported is returned by New when the compositor cannot
	// show surfaces of the configured kind.
	ErrBackendUnsupported = errors.New("platform: backend not supported by compositor")

	// ErrNotRealized is returned for windows that were never realized or
	// have been destroyed.
	ErrNotRealized = errors.New("platform: window not realized")

	// ErrClosed is returned when a closed Integration is used.
	ErrClosed = errors.New("platform: integration closed")

	// ErrInvalidSize is returned by Realize for negative window sizes.
	ErrInvalidSize = errors.New("platform: invalid window size")
)

// Compositor creates the native drawables windows render into.
type Compositor interface {
	// Supports reports whether surfaces of kind k can be shown.
	Supports(k surface.Kind) bool

	// NewRasterDrawable creates a CPU drawable of the given size.
	NewRasterDrawable(size image.Point) (surface.RasterDrawable, error)

	// NewGPUDrawable creates a GPU drawable of the given size.
	NewGPUDrawable(size image.Point) (surface.GPUDrawable, error)

	// Close disconnects from the compositor.
	Close() error
}

// Connector connects to a compositor.
type Connector func() (Compositor, error)

// WindowID identifies a realized window.
type WindowID uint64

// Window is a realized window: a drawable and the surface painting into it.
type Window struct {
	id       WindowID
	drawable surface.Drawable
	surface  surface.Surface
}

// ID returns the window identifier.
func (w *Window) ID() WindowID { return w.id }

// Surface returns the window's surface.
func (w *Window) Surface() surface.Surface { return w.surface }

// Drawable returns the window's native drawable.
func (w *Window) Drawable() surface.Drawable { return w.drawable }

// Integration owns the compositor connection and the realized windows.
//
// The surface backend is chosen from the Config once, in New, and used for
// every window. Integration methods are safe for concurrent use; the
// surfaces it hands out are not.
type Integration struct {
	cfg        Config
	compositor Compositor
	newSurface surface.Factory

	mu      sync.Mutex
	windows map[WindowID]*Window
	nextID  WindowID
	closed  bool
}

// New validates cfg and connects to the compositor.
func New(cfg Config, connect Connector) (*Integration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	newSurface, err := surface.FactoryFor(cfg.Backend)
	if err != nil {
		return nil, err
	}
	if connect == nil {
		return nil, fmt.Errorf("%w: no connector", ErrCompositorUnavailable)
	}

	log := winsurface.Logger()
	comp, err := connect()
	if err != nil {
		log.Error("platform: failed to connect to compositor", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrCompositorUnavailable, err)
	}
	if comp == nil {
		return nil, fmt.Errorf("%w: connector returned no compositor", ErrCompositorUnavailable)
	}
	if !comp.Supports(cfg.Backend) {
		err := fmt.Errorf("%w: %s", ErrBackendUnsupported, cfg.Backend)
		if cerr := comp.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("platform: close compositor: %w", cerr))
		}
		return nil, err
	}

	log.Info("platform: compositor connected", "backend", cfg.Backend)
	return &Integration{
		cfg:        cfg,
		compositor: comp,
		newSurface: newSurface,
		windows:    make(map[WindowID]*Window),
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(cfg Config, connect Connector) *Integration {
	i, err := New(cfg, connect)
	if err != nil {
		panic(err)
	}
	return i
}

// Config returns the configuration the Integration was created with.
func (i *Integration) Config() Config { return i.cfg }

// Backend returns the surface kind used for every window.
func (i *Integration) Backend() surface.Kind { return i.cfg.Backend }

// Compositor returns the connected compositor.
func (i *Integration) Compositor() Compositor { return i.compositor }

// Realize creates a drawable of the given size and a surface over it.
func (i *Integration) Realize(size image.Point) (*Window, error) {
	if size.X < 0 || size.Y < 0 {
		return nil, fmt.Errorf("platform: realize: %w: %v", ErrInvalidSize, size)
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return nil, ErrClosed
	}

	d, err := i.newDrawable(size)
	if err != nil {
		return nil, fmt.Errorf("platform: realize: %w", err)
	}
	s, err := i.newSurface(d)
	if err != nil {
		d.Release()
		return nil, fmt.Errorf("platform: realize: %w", err)
	}

	i.nextID++
	w := &Window{id: i.nextID, drawable: d, surface: s}
	i.windows[w.id] = w
	winsurface.Logger().Info("platform: window realized",
		"id", w.id, "backend", i.cfg.Backend, "size", size)
	return w, nil
}

func (i *Integration) newDrawable(size image.Point) (surface.Drawable, error) {
	switch i.cfg.Backend {
	case surface.Accelerated:
		return i.compositor.NewGPUDrawable(size)
	default:
		return i.compositor.NewRasterDrawable(size)
	}
}

// Destroy closes the window's surface and then releases its drawable, so
// the paint device is gone before the native buffer is freed.
func (i *Integration) Destroy(id WindowID) error {
	i.mu.Lock()
	w, ok := i.windows[id]
	delete(i.windows, id)
	i.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %d", ErrNotRealized, id)
	}
	destroyWindow(w)
	return nil
}

func destroyWindow(w *Window) {
	if err := w.surface.Close(); err != nil {
		winsurface.Logger().Warn("platform: close surface", "id", w.id, "err", err)
	}
	w.drawable.Release()
	winsurface.Logger().Info("platform: window destroyed", "id", w.id)
}

// Surface returns the surface of a realized window.
func (i *Integration) Surface(id WindowID) (surface.Surface, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	w, ok := i.windows[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNotRealized, id)
	}
	return w.surface, nil
}

// MustSurface is like Surface but panics if the window is not realized.
// Asking for the surface of an unrealized window is a programming error.
func (i *Integration) MustSurface(id WindowID) surface.Surface {
	s, err := i.Surface(id)
	if err != nil {
		panic(err)
	}
	return s
}

// Windows returns the realized window IDs in creation order.
func (i *Integration) Windows() []WindowID {
	i.mu.Lock()
	defer i.mu.Unlock()
	return slices.Sorted(maps.Keys(i.windows))
}

// Close destroys every window and disconnects from the compositor.
func (i *Integration) Close() error {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return nil
	}
	i.closed = true
	windows := i.windows
	i.windows = make(map[WindowID]*Window)
	i.mu.Unlock()

	for _, id := range slices.Sorted(maps.Keys(windows)) {
		destroyWindow(windows[id])
	}
	if err := i.compositor.Close(); err != nil {
		return fmt.Errorf("platform: close compositor: %w", err)
	}
	return nil
}

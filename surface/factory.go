// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "fmt"

// Factory creates a surface over a window's drawable.
// Implementations validate that the drawable belongs to their backend.
type Factory func(d Drawable) (Surface, error)

// FactoryFor returns the factory for kind.
//
// The backend is chosen once per process, so the platform layer looks up
// its factory at startup and uses it for every window:
//
//	newSurface, err := surface.FactoryFor(cfg.Backend)
//	if err != nil {
//	    return err
//	}
//	s, err := newSurface(drawable)
func FactoryFor(kind Kind) (Factory, error) {
	switch kind {
	case Raster:
		return newRasterFromDrawable, nil
	case Accelerated:
		return newAcceleratedFromDrawable, nil
	default:
		return nil, &UnknownKindError{Name: kind.String()}
	}
}

// New creates a surface of the given kind over d.
func New(kind Kind, d Drawable) (Surface, error) {
	f, err := FactoryFor(kind)
	if err != nil {
		return nil, err
	}
	return f(d)
}

func newRasterFromDrawable(d Drawable) (Surface, error) {
	if d == nil {
		return nil, ErrNilDrawable
	}
	rd, ok := d.(RasterDrawable)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a raster drawable", ErrDrawableMismatch, d)
	}
	return NewRaster(rd)
}

func newAcceleratedFromDrawable(d Drawable) (Surface, error) {
	if d == nil {
		return nil, ErrNilDrawable
	}
	gd, ok := d.(GPUDrawable)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a GPU drawable", ErrDrawableMismatch, d)
	}
	return NewAccelerated(gd)
}

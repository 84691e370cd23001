// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import "errors"

// Errors.
var (
	// ErrNilDrawable is returned when a surface is created without a drawable.
	ErrNilDrawable = errors.New("surface: nil drawable")

	// ErrDrawableMismatch is returned when a drawable does not belong to the
	// backend a surface is created for. It indicates a lifecycle ordering
	// bug between window realization and surface creation.
	ErrDrawableMismatch = errors.New("surface: drawable does not match backend")

	// ErrAllocation is returned by BeginPaint when the buffer could not be
	// reallocated to the requested size.
	ErrAllocation = errors.New("surface: buffer allocation failed")

	// ErrSurfaceClosed is returned when a closed surface is used.
	ErrSurfaceClosed = errors.New("surface: surface is closed")
)

// UnknownKindError indicates a backend kind that does not exist.
type UnknownKindError struct {
	Name string
}

func (e *UnknownKindError) Error() string {
	return "surface: unknown backend kind: " + e.Name
}

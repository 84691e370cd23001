// Package winsurface provides window surfaces: per-window off-screen render
// targets that sit between an application's paint cycle and the native
// compositor.
//
// # Overview
//
// A surface buffers one window's painted content and presents it on flush.
// Two interchangeable backends implement the same contract:
//
//   - Raster: a CPU pixel buffer. Scrolls are coalesced and applied as
//     blits, then the dirty region is posted to the compositor.
//   - Accelerated: a double-buffered GPU drawable. Scrolls are rejected
//     (callers repaint), and flush swaps buffers.
//
// The backend is chosen once per process from configuration and never
// changes for the lifetime of a window.
//
// # Paint cycle
//
//	s.Resize(size)                    // deferred; may be called many times
//	s.BeginPaint(dirty)               // buffer reallocated here if needed
//	ok := s.Scroll(area, 0, -lineH)   // false: repaint area instead
//	draw(s.PaintDevice())
//	s.Flush(dirty, image.Point{})     // apply scrolls, then post or swap
//	s.EndPaint(dirty)
//
// surface.Paint runs this sequence for one frame, widening the repaint when a
// scroll is rejected or the backend cannot flush partially.
//
// # Packages
//
//   - region: rectangle-set geometry used for dirty and scroll areas
//   - surface: the Surface contract and both backends
//   - native/memory, native/shinywin, native/halgpu: native drawables
//   - platform: configuration, compositor connection, window lifecycle
//
// # Logging
//
// winsurface produces no log output by default. Call [SetLogger] to enable
// it; all sub-packages share the same logger.
package winsurface

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

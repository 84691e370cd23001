// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package surface implements window surfaces: the per-window render targets
// a paint cycle draws into before the result is handed to the compositor.
//
// # Backends
//
// Two backends implement the [Surface] contract:
//
//   - [RasterSurface] draws into a CPU pixel buffer ([RasterDrawable]).
//     Scroll requests between flushes are coalesced into a queue of
//     [ScrollOp] values and applied as blits at flush time, after which the
//     flushed region is posted to the compositor.
//   - [AcceleratedSurface] draws into a GPU drawable ([GPUDrawable]).
//     Scrolling is not supported, so callers repaint scrolled areas, and
//     flush swaps the drawable's buffers.
//
// The backend is selected once per window with [FactoryFor] and never
// changes afterwards.
//
// # Deferred resize
//
// Resize only records the requested size. The buffer is reallocated at the
// next BeginPaint, and only when the requested size differs from the
// allocated one, so layout passes may resize many times per frame without
// redundant allocations. Reallocation invalidates any previously obtained
// paint device.
//
// # Scroll coalescing
//
// A scroll's footprint is the union of the scrolled area and its
// destination, clipped to the surface. Scrolling the same footprint again
// accumulates the delta into the pending op. A footprint that overlaps a
// pending one without being equal to it is rejected: Scroll returns false
// and the caller must repaint the area instead. Pending footprints are
// therefore always pairwise disjoint.
//
// # Thread safety
//
// Surfaces are NOT thread-safe. All calls for one surface must come from the
// goroutine running that window's paint cycle. Different surfaces share no
// state and may be driven concurrently.
package surface

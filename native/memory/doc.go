// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package memory provides an in-memory raster drawable.
//
// A Buffer keeps its pixels in an *image.RGBA and posts regions to a
// Compositor. Recorder is a Compositor that keeps its own copy of the
// screen and records every post, which makes the package usable both for
// headless rendering and for tests of code built on surface.RasterSurface.
//
//	rec := memory.NewRecorder()
//	buf := memory.New(image.Pt(640, 480), memory.WithCompositor(rec))
//	s, err := surface.NewRaster(buf)
package memory

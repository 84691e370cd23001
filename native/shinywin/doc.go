// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package shinywin presents raster surfaces in golang.org/x/exp/shiny
// windows.
//
// A Presenter uploads posted regions of a memory buffer to a shiny window
// and publishes them. A Display wraps a screen.Screen and creates one shiny
// window per raster drawable; it does not support accelerated surfaces.
//
// Shiny owns the event loop: Display must be used from inside the function
// passed to driver.Main.
package shinywin

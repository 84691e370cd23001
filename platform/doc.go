// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform connects surfaces to a compositor and manages the
// windows that own them.
//
// An Integration is created once per process from a Config. It connects to
// the compositor (failure is fatal), chooses the surface backend once and
// then realizes and destroys windows, each with one drawable and one
// surface:
//
//	cfg, err := platform.LoadConfig("winsurface.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	integ := platform.MustNew(cfg, platform.Headless())
//	defer integ.Close()
//
//	win, err := integ.Realize(image.Pt(800, 600))
//	...
//	integ.Destroy(win.ID())
package platform

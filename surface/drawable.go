// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"image"

	"github.com/gogpu/winsurface/region"
)

// Drawable is the native buffer behind a surface, owned by the window.
type Drawable interface {
	// Size returns the allocated buffer size. After a successful Resize it
	// equals the size passed, including sizes with a zero dimension.
	Size() image.Point

	// Resize reallocates the buffer. On error the previous buffer and size
	// must remain usable.
	Resize(size image.Point) error

	// Release frees the native buffer. The surface using it must be
	// closed first.
	Release()
}

// RasterDrawable is a CPU pixel buffer presented by posting regions.
type RasterDrawable interface {
	Drawable

	// Image returns the pixel buffer. The result is invalidated by Resize.
	Image() *image.RGBA

	// Blit copies the pixels of src, as they were last posted, to src
	// translated by (dx, dy). Pixels painted since the last post do not
	// affect the source.
	Blit(src region.Region, dx, dy int)

	// Post hands the region of the buffer to the compositor. Posted pixels
	// become the source of later blits.
	Post(r region.Region) error
}

// GPUDrawable is a GPU render target presented by swapping buffers.
type GPUDrawable interface {
	Drawable

	// SwapBuffers submits the back buffer for presentation and makes the
	// other buffer the new back buffer.
	SwapBuffers() error

	// Target returns the current back buffer, or nil if no buffer is
	// allocated. The result is invalidated by Resize and SwapBuffers.
	Target() *GPUTarget
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"errors"
	"image"

	"github.com/gogpu/winsurface/region"
)

var errFakeAlloc = errors.New("fake: out of memory")

// blitCall records one Blit.
type blitCall struct {
	src    region.Region
	dx, dy int
}

// fakeRaster is a RasterDrawable that records every call.
type fakeRaster struct {
	img      *image.RGBA
	resizes  []image.Point
	blits    []blitCall
	posts    []region.Region
	calls    []string
	failNext int
	postErr  error
	released bool
}

func newFakeRaster(w, h int) *fakeRaster {
	return &fakeRaster{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

func (f *fakeRaster) Size() image.Point { return f.img.Rect.Size() }

func (f *fakeRaster) Resize(size image.Point) error {
	f.calls = append(f.calls, "resize")
	if f.failNext > 0 {
		f.failNext--
		return errFakeAlloc
	}
	f.resizes = append(f.resizes, size)
	f.img = image.NewRGBA(image.Rectangle{Max: size})
	return nil
}

func (f *fakeRaster) Release() { f.released = true }

func (f *fakeRaster) Image() *image.RGBA { return f.img }

func (f *fakeRaster) Blit(src region.Region, dx, dy int) {
	f.calls = append(f.calls, "blit")
	f.blits = append(f.blits, blitCall{src: src, dx: dx, dy: dy})
}

func (f *fakeRaster) Post(r region.Region) error {
	f.calls = append(f.calls, "post")
	if f.postErr != nil {
		return f.postErr
	}
	f.posts = append(f.posts, r)
	return nil
}

// fakeGPU is a GPUDrawable that records resizes and swaps.
type fakeGPU struct {
	size     image.Point
	resizes  []image.Point
	swaps    int
	failNext int
	swapErr  error
	released bool
}

func newFakeGPU(w, h int) *fakeGPU {
	return &fakeGPU{size: image.Pt(w, h)}
}

func (f *fakeGPU) Size() image.Point { return f.size }

func (f *fakeGPU) Resize(size image.Point) error {
	if f.failNext > 0 {
		f.failNext--
		return errFakeAlloc
	}
	f.resizes = append(f.resizes, size)
	f.size = size
	return nil
}

func (f *fakeGPU) Release() { f.released = true }

func (f *fakeGPU) SwapBuffers() error {
	if f.swapErr != nil {
		return f.swapErr
	}
	f.swaps++
	return nil
}

func (f *fakeGPU) Target() *GPUTarget {
	if f.size.X == 0 || f.size.Y == 0 {
		return nil
	}
	return &GPUTarget{Size: f.size}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/winsurface/native/halgpu"
	"github.com/gogpu/winsurface/native/memory"
	"github.com/gogpu/winsurface/surface"
)

// MemoryCompositor shows raster drawables in an in-memory Recorder and
// renders accelerated drawables on a HAL device.
type MemoryCompositor struct {
	recorder *memory.Recorder
	provider gpucontext.DeviceProvider
	closeGPU func()
	opts     []memory.Option
}

// Headless returns a connector to a MemoryCompositor whose GPU is the
// no-op HAL backend. Both backends are supported; nothing reaches a
// display.
func Headless(opts ...memory.Option) Connector {
	return func() (Compositor, error) {
		gpu, err := halgpu.OpenHeadless()
		if err != nil {
			return nil, err
		}
		return &MemoryCompositor{
			recorder: memory.NewRecorder(),
			provider: gpu,
			closeGPU: gpu.Close,
			opts:     opts,
		}, nil
	}
}

// Hosted returns a connector to a MemoryCompositor rendering accelerated
// drawables on the device of a host application. The provider must expose
// HAL handles (see halgpu.FromProvider); it is not closed by the
// compositor.
func Hosted(provider gpucontext.DeviceProvider, opts ...memory.Option) Connector {
	return func() (Compositor, error) {
		if provider == nil {
			return nil, errors.New("platform: nil device provider")
		}
		return &MemoryCompositor{
			recorder: memory.NewRecorder(),
			provider: provider,
			opts:     opts,
		}, nil
	}
}

// Supports reports raster always and accelerated when a device is
// available.
func (c *MemoryCompositor) Supports(k surface.Kind) bool {
	switch k {
	case surface.Raster:
		return true
	case surface.Accelerated:
		return c.provider != nil
	}
	return false
}

// NewRasterDrawable creates a memory buffer posting to the recorder.
func (c *MemoryCompositor) NewRasterDrawable(size image.Point) (surface.RasterDrawable, error) {
	opts := append([]memory.Option{memory.WithCompositor(c.recorder)}, c.opts...)
	return memory.New(size, opts...), nil
}

// NewGPUDrawable creates a double-buffered drawable on the HAL device.
func (c *MemoryCompositor) NewGPUDrawable(size image.Point) (surface.GPUDrawable, error) {
	if c.provider == nil {
		return nil, fmt.Errorf("%w: %s", ErrBackendUnsupported, surface.Accelerated)
	}
	d, err := halgpu.FromProvider(c.provider)
	if err != nil {
		return nil, err
	}
	if err := d.Resize(size); err != nil {
		d.Release()
		return nil, err
	}
	return d, nil
}

// Recorder returns the recorder raster drawables post to.
func (c *MemoryCompositor) Recorder() *memory.Recorder {
	return c.recorder
}

// Close releases the headless GPU device, if the compositor owns one.
func (c *MemoryCompositor) Close() error {
	if c.closeGPU != nil {
		c.closeGPU()
		c.closeGPU = nil
	}
	return nil
}

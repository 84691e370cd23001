// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halgpu

import (
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/surface"
)

// DefaultFormat is the back buffer format used when none is given.
const DefaultFormat = gputypes.TextureFormatBGRA8Unorm

// swapTimeout bounds the wait for a submitted frame.
const swapTimeout = 5 * time.Second

// pollInterval is the delay between checks for a completed submission.
const pollInterval = 100 * time.Microsecond

var (
	// ErrNoDevice is returned when no HAL device or queue is available.
	ErrNoDevice = errors.New("halgpu: no HAL device")

	// ErrReleased is returned when a released drawable is used.
	ErrReleased = errors.New("halgpu: drawable released")

	// ErrNoBuffer is returned by SwapBuffers when no textures are allocated.
	ErrNoBuffer = errors.New("halgpu: no back buffer allocated")

	// ErrSwapTimeout is returned by SwapBuffers when the GPU does not finish
	// the frame in time.
	ErrSwapTimeout = errors.New("halgpu: timed out waiting for GPU")
)

// buffer is one texture of the swap chain.
type buffer struct {
	tex  hal.Texture
	view hal.TextureView
}

// Drawable is a GPU drawable with two textures swapped on present.
type Drawable struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat

	buffers [2]buffer
	back    int
	size    image.Point
	frames  uint64
	timeout time.Duration

	released bool
}

// New creates a drawable on device and queue. No textures are allocated
// until the first Resize. An undefined format selects DefaultFormat.
func New(device hal.Device, queue hal.Queue, format gputypes.TextureFormat) (*Drawable, error) {
	if device == nil || queue == nil {
		return nil, ErrNoDevice
	}
	if format == gputypes.TextureFormatUndefined {
		format = DefaultFormat
	}
	return &Drawable{device: device, queue: queue, format: format, timeout: swapTimeout}, nil
}

// FromProvider creates a drawable on the device of a host application.
//
// The provider must implement HalDevice() any and HalQueue() any returning
// hal.Device and hal.Queue. The back buffer format is the provider's
// surface format.
func FromProvider(provider gpucontext.DeviceProvider) (*Drawable, error) {
	device, queue, err := halHandles(provider)
	if err != nil {
		return nil, err
	}
	return New(device, queue, provider.SurfaceFormat())
}

// halHandles extracts the HAL device and queue from a provider.
func halHandles(provider any) (hal.Device, hal.Queue, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, nil, fmt.Errorf("%w: provider does not expose HAL types", ErrNoDevice)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoDevice)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoDevice)
	}
	return device, queue, nil
}

// Size returns the size of the last successful Resize.
func (d *Drawable) Size() image.Point {
	return d.size
}

// Format returns the back buffer format.
func (d *Drawable) Format() gputypes.TextureFormat {
	return d.format
}

// Frames returns the number of frames swapped so far.
func (d *Drawable) Frames() uint64 {
	return d.frames
}

// Resize recreates both textures at the new size. The new pair is created
// before the old one is destroyed, so on error the previous textures and
// size are kept. A size with a zero dimension holds no textures.
func (d *Drawable) Resize(size image.Point) error {
	if d.released {
		return ErrReleased
	}
	if size.X < 0 || size.Y < 0 {
		return fmt.Errorf("halgpu: invalid size %v", size)
	}
	if size == d.size {
		return nil
	}

	var next [2]buffer
	if size.X > 0 && size.Y > 0 {
		for i := range next {
			b, err := d.createBuffer(size, i)
			if err != nil {
				d.destroyBuffers(next[:i])
				return err
			}
			next[i] = b
		}
	}

	d.destroyBuffers(d.buffers[:])
	d.buffers = next
	d.size = size
	d.back = 0
	winsurface.Logger().Debug("halgpu: textures created", "size", size, "format", d.format)
	return nil
}

func (d *Drawable) createBuffer(size image.Point, i int) (buffer, error) {
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: fmt.Sprintf("winsurface_buffer_%d", i),
		Size: hal.Extent3D{
			Width:              uint32(size.X), //nolint:gosec // size is positive
			Height:             uint32(size.Y), //nolint:gosec // size is positive
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        d.format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return buffer{}, fmt.Errorf("halgpu: create texture %d: %w", i, err)
	}
	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: fmt.Sprintf("winsurface_buffer_%d_view", i),
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return buffer{}, fmt.Errorf("halgpu: create texture view %d: %w", i, err)
	}
	return buffer{tex: tex, view: view}, nil
}

// destroyBuffers releases the textures of bufs.
func (d *Drawable) destroyBuffers(bufs []buffer) {
	for i := range bufs {
		b := &bufs[i]
		if b.view != nil {
			d.device.DestroyTextureView(b.view)
			b.view = nil
		}
		if b.tex != nil {
			d.device.DestroyTexture(b.tex)
			b.tex = nil
		}
	}
}

// Target returns the back buffer, or nil if no textures are allocated.
func (d *Drawable) Target() *surface.GPUTarget {
	if d.released || d.buffers[d.back].view == nil {
		return nil
	}
	return &surface.GPUTarget{
		Device: d.device,
		Queue:  d.queue,
		View:   d.buffers[d.back].view,
		Format: d.format,
		Size:   d.size,
	}
}

// SwapBuffers submits the back buffer, waits for the GPU to finish it and
// flips the buffers. It returns ErrSwapTimeout if the submission does not
// complete in time; the buffers are not flipped then.
//
// The submitted pass loads and stores the back buffer, so work recorded by
// the application is kept and the texture transitions out of the render
// attachment state before presentation.
func (d *Drawable) SwapBuffers() error {
	if d.released {
		return ErrReleased
	}
	back := d.buffers[d.back]
	if back.view == nil {
		return ErrNoBuffer
	}

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "winsurface_present_encoder",
	})
	if err != nil {
		return fmt.Errorf("halgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("winsurface_present"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("halgpu: begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "winsurface_present_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:    back.view,
			LoadOp:  gputypes.LoadOpLoad,
			StoreOp: gputypes.StoreOpStore,
		}},
	})
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("halgpu: end encoding: %w", err)
	}
	defer d.device.FreeCommandBuffer(cmdBuf)

	index, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("halgpu: submit: %w", err)
	}
	if err := d.wait(index); err != nil {
		return err
	}

	d.back = 1 - d.back
	d.frames++
	winsurface.Logger().Debug("halgpu: swapped", "frame", d.frames, "size", d.size)
	return nil
}

// wait polls the queue until submission index has completed or the swap
// timeout passes.
func (d *Drawable) wait(index uint64) error {
	deadline := time.Now().Add(d.timeout)
	for d.queue.PollCompleted() < index {
		if time.Now().After(deadline) {
			return ErrSwapTimeout
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// Release destroys the textures. The device is not destroyed.
func (d *Drawable) Release() {
	if d.released {
		return
	}
	d.destroyBuffers(d.buffers[:])
	d.size = image.Point{}
	d.released = true
}

var _ surface.GPUDrawable = (*Drawable)(nil)

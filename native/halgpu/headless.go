// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halgpu

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// Headless is a device provider backed by the no-op HAL backend. It
// accepts every call and renders nothing, which lets accelerated surfaces
// run without a GPU.
type Headless struct {
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue
}

// OpenHeadless opens a no-op device.
func OpenHeadless() (*Headless, error) {
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		return nil, fmt.Errorf("halgpu: create noop instance: %w", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, fmt.Errorf("%w: noop backend has no adapter", ErrNoDevice)
	}
	open, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("halgpu: open noop adapter: %w", err)
	}
	return &Headless{instance: instance, device: open.Device, queue: open.Queue}, nil
}

// Device returns nil; use HalDevice.
func (h *Headless) Device() gpucontext.Device { return nil }

// Queue returns nil; use HalQueue.
func (h *Headless) Queue() gpucontext.Queue { return nil }

// Adapter returns nil.
func (h *Headless) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo reports a software adapter.
func (h *Headless) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "noop", Type: gpucontext.AdapterTypeSoftware}
}

// SurfaceFormat returns DefaultFormat.
func (h *Headless) SurfaceFormat() gputypes.TextureFormat { return DefaultFormat }

// HalDevice returns the hal.Device.
func (h *Headless) HalDevice() any { return h.device }

// HalQueue returns the hal.Queue.
func (h *Headless) HalQueue() any { return h.queue }

// Close destroys the device and its instance.
func (h *Headless) Close() {
	if h.device != nil {
		h.device.Destroy()
		h.device = nil
	}
	if h.instance != nil {
		h.instance.Destroy()
		h.instance = nil
	}
}

var _ gpucontext.DeviceProvider = (*Headless)(nil)

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package halgpu provides a double-buffered GPU drawable on gogpu/wgpu HAL.
//
// The drawable owns two render-attachment textures of the same size. The
// accelerated surface paints into the back texture through the
// *surface.GPUTarget it hands out, and SwapBuffers submits the frame,
// waits for the GPU and makes the other texture the new back buffer.
//
// Resize destroys both textures before creating the new pair. A zero size
// leaves the drawable without textures until the next non-zero Resize.
//
// The device can be created by the caller or borrowed from a host
// application through gpucontext.DeviceProvider (see FromProvider).
package halgpu

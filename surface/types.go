// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package surface

import (
	"fmt"
	"image"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Kind identifies a surface backend.
type Kind uint8

const (
	// Raster surfaces paint into a CPU pixel buffer and post regions.
	Raster Kind = iota

	// Accelerated surfaces paint into a GPU drawable and swap buffers.
	Accelerated
)

// String returns the configuration name of the kind.
func (k Kind) String() string {
	switch k {
	case Raster:
		return "raster"
	case Accelerated:
		return "accelerated"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// ParseKind parses a kind name. Matching is case-insensitive; "gpu" is
// accepted as an alias of "accelerated" and "cpu" of "raster".
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "raster", "cpu":
		return Raster, nil
	case "accelerated", "gpu":
		return Accelerated, nil
	}
	return 0, &UnknownKindError{Name: s}
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if k != Raster && k != Accelerated {
		return nil, &UnknownKindError{Name: k.String()}
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// Capabilities describes the optional behaviors of a backend.
type Capabilities struct {
	// PartialFlush indicates Flush presents only the given region.
	// Without it every flush presents the whole buffer, so every paint
	// must redraw the whole surface.
	PartialFlush bool

	// Scroll indicates Scroll can succeed.
	Scroll bool
}

// PaintDevice is the handle a paint cycle draws into.
//
// Raster surfaces return the drawable's *image.RGBA; accelerated surfaces
// return a *GPUTarget.
type PaintDevice interface {
	// Bounds returns the drawable area in buffer coordinates.
	Bounds() image.Rectangle
}

// GPUTarget is the paint device of an accelerated surface: the back buffer
// of a GPU drawable together with the device it belongs to.
//
// A GPUTarget is only valid until the next swap or reallocation.
type GPUTarget struct {
	// Device is the HAL device owning the back buffer.
	Device hal.Device

	// Queue is the queue rendering work must be submitted to.
	Queue hal.Queue

	// View is the render-attachment view of the back buffer.
	View hal.TextureView

	// Format is the pixel format of the back buffer.
	Format gputypes.TextureFormat

	// Size is the back buffer size in pixels.
	Size image.Point
}

// Bounds returns the rectangle covered by the back buffer.
func (t *GPUTarget) Bounds() image.Rectangle {
	return image.Rectangle{Max: t.Size}
}

// Verify the paint device types.
var (
	_ PaintDevice = (*image.RGBA)(nil)
	_ PaintDevice = (*GPUTarget)(nil)
)

//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package halgpu

import (
	"errors"
	"image"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/winsurface/native/memory"
	"github.com/gogpu/winsurface/region"
	"github.com/gogpu/winsurface/surface"
)

// createNoopDevice opens a headless device for testing.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue) {
	t.Helper()
	h, err := OpenHeadless()
	if err != nil {
		t.Fatalf("OpenHeadless: %v", err)
	}
	t.Cleanup(h.Close)
	return h.device, h.queue
}

func newTestDrawable(t *testing.T) *Drawable {
	t.Helper()
	device, queue := createNoopDevice(t)
	d, err := New(device, queue, gputypes.TextureFormatUndefined)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(d.Release)
	return d
}

func TestNewRequiresDevice(t *testing.T) {
	if _, err := New(nil, nil, DefaultFormat); !errors.Is(err, ErrNoDevice) {
		t.Errorf("New(nil, nil) error = %v, want ErrNoDevice", err)
	}
}

func TestNewDefaultFormat(t *testing.T) {
	d := newTestDrawable(t)
	if d.Format() != DefaultFormat {
		t.Errorf("Format() = %v, want %v", d.Format(), DefaultFormat)
	}
	if d.Size() != (image.Point{}) {
		t.Errorf("Size() = %v before Resize, want zero", d.Size())
	}
	if d.Target() != nil {
		t.Error("Target() non-nil before Resize")
	}
}

func TestDrawableResize(t *testing.T) {
	d := newTestDrawable(t)

	if err := d.Resize(image.Pt(64, 48)); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if d.Size() != image.Pt(64, 48) {
		t.Errorf("Size() = %v, want (64,48)", d.Size())
	}
	first := d.buffers[0].tex
	if first == nil || d.buffers[1].tex == nil {
		t.Fatal("textures not created")
	}

	// Same size keeps the textures.
	if err := d.Resize(image.Pt(64, 48)); err != nil {
		t.Fatalf("Resize same size: %v", err)
	}
	if d.buffers[0].tex != first {
		t.Error("same-size Resize recreated textures")
	}

	if err := d.Resize(image.Pt(128, 96)); err != nil {
		t.Fatalf("Resize larger: %v", err)
	}
	target := d.Target()
	if target == nil || target.Size != image.Pt(128, 96) {
		t.Fatalf("Target() = %+v, want size (128,96)", target)
	}

	if err := d.Resize(image.Pt(0, 20)); err != nil {
		t.Fatalf("Resize to zero width: %v", err)
	}
	if d.Target() != nil || d.buffers[0].tex != nil {
		t.Error("zero-width Resize kept textures")
	}
	if d.Size() != image.Pt(0, 20) {
		t.Errorf("Size() = %v after zero-width Resize, want (0,20)", d.Size())
	}

	if err := d.Resize(image.Pt(-1, 20)); err == nil {
		t.Error("Resize with negative size succeeded")
	}
	if d.Size() != image.Pt(0, 20) {
		t.Errorf("failed Resize changed size to %v", d.Size())
	}
}

// failingDevice fails CreateTexture once armed.
type failingDevice struct {
	hal.Device
	fail      bool
	created   int
	destroyed int
}

func (f *failingDevice) CreateTexture(desc *hal.TextureDescriptor) (hal.Texture, error) {
	if f.fail && f.created > 0 {
		return nil, errors.New("out of video memory")
	}
	tex, err := f.Device.CreateTexture(desc)
	if err == nil && f.fail {
		f.created++
	}
	return tex, err
}

func (f *failingDevice) DestroyTexture(tex hal.Texture) {
	f.destroyed++
	f.Device.DestroyTexture(tex)
}

func TestDrawableResizeFailureKeepsBuffers(t *testing.T) {
	device, queue := createNoopDevice(t)
	fd := &failingDevice{Device: device}
	d, err := New(fd, queue, DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Release)

	if err := d.Resize(image.Pt(64, 64)); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	old := d.buffers

	// The first new texture is created, the second fails.
	fd.fail = true
	if err := d.Resize(image.Pt(128, 128)); err == nil {
		t.Fatal("Resize succeeded with failing device")
	}
	if d.Size() != image.Pt(64, 64) {
		t.Errorf("Size() = %v after failed Resize, want (64,64)", d.Size())
	}
	if d.buffers != old {
		t.Error("failed Resize replaced the previous textures")
	}
	if fd.destroyed != 1 {
		t.Errorf("destroyed %d textures, want only the partial new one", fd.destroyed)
	}
	target := d.Target()
	if target == nil || target.Size != image.Pt(64, 64) {
		t.Fatalf("Target() = %+v, want the previous 64x64 buffer", target)
	}
	if err := d.SwapBuffers(); err != nil {
		t.Errorf("SwapBuffers after failed Resize: %v", err)
	}
}

func TestDrawableSwapBuffers(t *testing.T) {
	d := newTestDrawable(t)

	if err := d.SwapBuffers(); !errors.Is(err, ErrNoBuffer) {
		t.Fatalf("SwapBuffers without textures = %v, want ErrNoBuffer", err)
	}

	if err := d.Resize(image.Pt(32, 32)); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	if d.back != 0 {
		t.Fatalf("back buffer = %d after Resize, want 0", d.back)
	}
	if err := d.SwapBuffers(); err != nil {
		t.Fatalf("SwapBuffers: %v", err)
	}
	if d.back != 1 {
		t.Errorf("back buffer = %d after swap, want 1", d.back)
	}
	if d.Target().View != d.buffers[1].view {
		t.Error("Target() does not point at the new back buffer")
	}
	if err := d.SwapBuffers(); err != nil {
		t.Fatalf("second SwapBuffers: %v", err)
	}
	if d.back != 0 {
		t.Errorf("back buffer = %d after two swaps, want 0", d.back)
	}
	if d.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", d.Frames())
	}
}

// stalledQueue never completes a submission.
type stalledQueue struct{ hal.Queue }

func (stalledQueue) PollCompleted() uint64 { return 0 }

func TestDrawableSwapTimeout(t *testing.T) {
	device, queue := createNoopDevice(t)
	d, err := New(device, stalledQueue{queue}, DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Release)
	d.timeout = time.Millisecond

	if err := d.Resize(image.Pt(8, 8)); err != nil {
		t.Fatal(err)
	}
	if err := d.SwapBuffers(); !errors.Is(err, ErrSwapTimeout) {
		t.Fatalf("SwapBuffers = %v, want ErrSwapTimeout", err)
	}
	if d.back != 0 || d.Frames() != 0 {
		t.Errorf("timed out swap flipped buffers: back=%d frames=%d", d.back, d.Frames())
	}
}

// brokenEncoder fails BeginEncoding and records discards.
type brokenEncoder struct {
	hal.CommandEncoder
	discarded *int
}

func (e brokenEncoder) BeginEncoding(string) error { return errors.New("encoder lost") }
func (e brokenEncoder) DiscardEncoding()           { *e.discarded++ }

// brokenEncoderDevice hands out encoders that cannot begin encoding.
type brokenEncoderDevice struct {
	hal.Device
	discarded int
}

func (f *brokenEncoderDevice) CreateCommandEncoder(desc *hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	enc, err := f.Device.CreateCommandEncoder(desc)
	if err != nil {
		return nil, err
	}
	return brokenEncoder{CommandEncoder: enc, discarded: &f.discarded}, nil
}

func TestDrawableSwapDiscardsFailedEncoding(t *testing.T) {
	device, queue := createNoopDevice(t)
	bd := &brokenEncoderDevice{Device: device}
	d, err := New(bd, queue, DefaultFormat)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(d.Release)

	if err := d.Resize(image.Pt(8, 8)); err != nil {
		t.Fatal(err)
	}
	if err := d.SwapBuffers(); err == nil {
		t.Fatal("SwapBuffers succeeded with a broken encoder")
	}
	if bd.discarded != 1 {
		t.Errorf("DiscardEncoding called %d times, want 1", bd.discarded)
	}
	if d.Frames() != 0 {
		t.Errorf("Frames() = %d after failed swap, want 0", d.Frames())
	}
}

func TestDrawableRelease(t *testing.T) {
	d := newTestDrawable(t)
	if err := d.Resize(image.Pt(8, 8)); err != nil {
		t.Fatal(err)
	}

	d.Release()
	d.Release()

	if d.Target() != nil {
		t.Error("Target() non-nil after Release")
	}
	if err := d.Resize(image.Pt(8, 8)); !errors.Is(err, ErrReleased) {
		t.Errorf("Resize after Release = %v, want ErrReleased", err)
	}
	if err := d.SwapBuffers(); !errors.Is(err, ErrReleased) {
		t.Errorf("SwapBuffers after Release = %v, want ErrReleased", err)
	}
}

// testProvider is a gpucontext.DeviceProvider exposing HAL handles.
type testProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p *testProvider) Device() gpucontext.Device              { return nil }
func (p *testProvider) Queue() gpucontext.Queue                { return nil }
func (p *testProvider) Adapter() gpucontext.Adapter            { return nil }
func (p *testProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p *testProvider) AdapterInfo() gpucontext.AdapterInfo    { return gpucontext.AdapterInfo{} }
func (p *testProvider) HalDevice() any                         { return p.device }
func (p *testProvider) HalQueue() any                          { return p.queue }

// plainProvider has no HAL accessors.
type plainProvider struct{}

func (plainProvider) Device() gpucontext.Device              { return nil }
func (plainProvider) Queue() gpucontext.Queue                { return nil }
func (plainProvider) Adapter() gpucontext.Adapter            { return nil }
func (plainProvider) SurfaceFormat() gputypes.TextureFormat { return DefaultFormat }
func (plainProvider) AdapterInfo() gpucontext.AdapterInfo    { return gpucontext.AdapterInfo{} }

func TestFromProvider(t *testing.T) {
	device, queue := createNoopDevice(t)

	d, err := FromProvider(&testProvider{device: device, queue: queue, format: gputypes.TextureFormatRGBA8Unorm})
	if err != nil {
		t.Fatalf("FromProvider: %v", err)
	}
	defer d.Release()
	if d.Format() != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want RGBA8Unorm", d.Format())
	}

	if _, err := FromProvider(plainProvider{}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("FromProvider(plain) error = %v, want ErrNoDevice", err)
	}
	if _, err := FromProvider(&testProvider{}); !errors.Is(err, ErrNoDevice) {
		t.Errorf("FromProvider(nil handles) error = %v, want ErrNoDevice", err)
	}
}

// TestAcceleratedSurfaceCycle runs paint cycles of an accelerated surface
// on the headless device.
func TestAcceleratedSurfaceCycle(t *testing.T) {
	d := newTestDrawable(t)
	s, err := surface.NewAccelerated(d)
	if err != nil {
		t.Fatal(err)
	}
	s.Resize(image.Pt(40, 30))

	var drawn []image.Point
	for range 3 {
		err := surface.Paint(s, surface.Frame{Dirty: region.Rect(0, 0, 5, 5)}, func(dev surface.PaintDevice, _ region.Region) {
			drawn = append(drawn, dev.Bounds().Size())
		})
		if err != nil {
			t.Fatalf("Paint: %v", err)
		}
	}

	if d.Frames() != 3 {
		t.Errorf("Frames() = %d, want 3", d.Frames())
	}
	if len(drawn) != 3 || drawn[0] != image.Pt(40, 30) {
		t.Errorf("drawn = %v, want three 40x30 frames", drawn)
	}
}

// TestBackendParityZeroWidth drives the memory and GPU drawables through the
// same resize sequence and checks both reconcile to the requested size.
func TestBackendParityZeroWidth(t *testing.T) {
	buf := memory.New(image.Pt(30, 20))
	raster, err := surface.NewRaster(buf)
	if err != nil {
		t.Fatal(err)
	}
	d := newTestDrawable(t)
	if err := d.Resize(image.Pt(30, 20)); err != nil {
		t.Fatal(err)
	}
	accel, err := surface.NewAccelerated(d)
	if err != nil {
		t.Fatal(err)
	}

	for _, size := range []image.Point{image.Pt(0, 20), image.Pt(0, 20), image.Pt(16, 8)} {
		for _, s := range []surface.Surface{raster, accel} {
			s.Resize(size)
			if err := s.BeginPaint(region.Region{}); err != nil {
				t.Fatalf("%v BeginPaint(%v): %v", s.Kind(), size, err)
			}
			s.EndPaint(region.Region{})
		}
		if buf.Size() != size {
			t.Errorf("memory size = %v, want %v", buf.Size(), size)
		}
		if d.Size() != size {
			t.Errorf("GPU size = %v, want %v", d.Size(), size)
		}
		if raster.Size() != accel.Size() {
			t.Errorf("surface sizes differ: raster %v, accelerated %v", raster.Size(), accel.Size())
		}
	}
	if accel.PaintDevice() == nil {
		t.Error("accelerated PaintDevice nil after growing back")
	}
}

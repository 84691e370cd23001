// Command surfacedemo drives window surfaces through scrolling paint cycles.
//
// By default it runs headless: a window is realized on an in-memory
// compositor, scrolled for a number of frames and the final screen is
// written as PNG. With -window it opens a shiny window instead; the arrow
// keys scroll and Escape quits.
package main

import (
	"flag"
	"image"
	"image/color"
	"image/png"
	"log"
	"log/slog"
	"os"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/draw"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/gogpu/winsurface"
	"github.com/gogpu/winsurface/native/shinywin"
	"github.com/gogpu/winsurface/platform"
	"github.com/gogpu/winsurface/region"
	"github.com/gogpu/winsurface/surface"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		backend    = flag.String("backend", "", "surface backend: raster or accelerated (overrides config)")
		width      = flag.Int("width", 320, "window width")
		height     = flag.Int("height", 240, "window height")
		frames     = flag.Int("frames", 10, "frames to render in headless mode")
		step       = flag.Int("step", 8, "pixels scrolled per frame")
		output     = flag.String("output", "surfacedemo.png", "PNG written in headless raster mode")
		window     = flag.Bool("window", false, "open a shiny window instead of running headless")
		verbose    = flag.Bool("v", false, "log every surface operation")
	)
	flag.Parse()

	cfg, err := platform.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *backend != "" {
		if err := cfg.Backend.UnmarshalText([]byte(*backend)); err != nil {
			log.Fatalf("Invalid -backend: %v", err)
		}
	}
	level := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	winsurface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	sz := image.Pt(*width, *height)
	if *window {
		driver.Main(func(s screen.Screen) {
			runWindow(s, cfg, sz, *step)
		})
		return
	}
	runHeadless(cfg, sz, *frames, *step, *output)
}

// runHeadless scrolls a window on the in-memory compositor.
func runHeadless(cfg platform.Config, sz image.Point, frames, step int, output string) {
	integ, err := platform.New(cfg, platform.Headless())
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer integ.Close()

	w, err := integ.Realize(sz)
	if err != nil {
		log.Fatalf("Failed to realize window: %v", err)
	}
	s := w.Surface()
	sc := &scene{}

	if err := surface.Paint(s, surface.Frame{Dirty: region.FromRect(image.Rectangle{Max: sz})}, sc.draw); err != nil {
		log.Fatalf("Initial paint failed: %v", err)
	}
	for range frames {
		if err := surface.Paint(s, sc.scroll(s.Size(), step), sc.draw); err != nil {
			log.Fatalf("Paint failed: %v", err)
		}
	}

	comp, ok := integ.Compositor().(*platform.MemoryCompositor)
	if !ok || cfg.Backend != surface.Raster {
		log.Printf("Rendered %d frames (%s)\n", frames+1, cfg.Backend)
		return
	}
	if err := savePNG(output, comp.Recorder().Screen()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Rendered %d frames, saved to %s (%dx%d)\n", frames+1, output, sz.X, sz.Y)
}

// runWindow runs the shiny event loop of one window.
func runWindow(s screen.Screen, cfg platform.Config, sz image.Point, step int) {
	integ, err := platform.New(cfg, func() (platform.Compositor, error) {
		return shinywin.NewDisplay(s, "surfacedemo"), nil
	})
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer integ.Close()

	w, err := integ.Realize(sz)
	if err != nil {
		log.Fatalf("Failed to realize window: %v", err)
	}
	win := w.Drawable().(*shinywin.Drawable).Window()
	surf := w.Surface()
	sc := &scene{}

	repaint := func(f surface.Frame) {
		if err := surface.Paint(surf, f, sc.draw); err != nil {
			log.Printf("Paint failed: %v", err)
		}
	}
	full := func() surface.Frame {
		return surface.Frame{Dirty: region.FromRect(image.Rectangle{Max: surf.Size()})}
	}

	for {
		switch e := win.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}

		case size.Event:
			surf.Resize(e.Size())
			repaint(full())

		case paint.Event:
			if !e.External {
				break
			}
			repaint(full())

		case key.Event:
			if e.Direction == key.DirRelease {
				break
			}
			switch e.Code {
			case key.CodeEscape:
				return
			case key.CodeDownArrow:
				repaint(sc.scroll(surf.Size(), step))
			case key.CodeUpArrow:
				repaint(sc.scroll(surf.Size(), -step))
			}

		case error:
			log.Print(e)
		}
	}
}

// scene is an endless stack of colored bands scrolled vertically.
type scene struct {
	offset int
}

const bandHeight = 16

var palette = []color.RGBA{
	{0x1f, 0x3b, 0x5c, 0xff},
	{0x2e, 0x86, 0xab, 0xff},
	{0xf2, 0xa5, 0x41, 0xff},
	{0xe9, 0x4f, 0x37, 0xff},
	{0x39, 0x3e, 0x41, 0xff},
}

// scroll advances the content by dy pixels and returns the frame moving
// the visible pixels and repainting the exposed strip.
func (sc *scene) scroll(sz image.Point, dy int) surface.Frame {
	sc.offset += dy
	bounds := image.Rectangle{Max: sz}
	exposed := image.Rect(0, sz.Y-dy, sz.X, sz.Y)
	if dy < 0 {
		exposed = image.Rect(0, 0, sz.X, -dy)
	}
	return surface.Frame{
		Dirty:   region.FromRect(exposed.Intersect(bounds)),
		Scrolls: []surface.ScrollRequest{{Area: region.FromRect(bounds), DY: -dy}},
	}
}

// draw paints the bands visible in dirty. GPU targets are left untouched.
func (sc *scene) draw(dev surface.PaintDevice, dirty region.Region) {
	img, ok := dev.(*image.RGBA)
	if !ok {
		return
	}
	for _, r := range dirty.Rects() {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			band := floorDiv(y+sc.offset, bandHeight)
			c := palette[((band%len(palette))+len(palette))%len(palette)]
			row := image.Rect(r.Min.X, y, r.Max.X, y+1)
			draw.Draw(img, row, &image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func savePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

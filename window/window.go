// Package window shows simulated displays in a desktop window and
// reports user input back to the simulation. It also implements the
// EG_SIMULATOR_* environment hooks used to take screenshots and run
// pixel-exact regression checks in CI; with a hook set no window is
// opened at all.
package window

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"egsim"
	"egsim/internal/buildinfo"
)

// Window presents a single display. Create it with New, then either
// call ShowStatic for content that never changes or Run with a step
// callback that draws and calls Update every frame.
type Window struct {
	title    string
	settings *egsim.Settings
	log      *zap.Logger

	src         egsim.Source
	framebuffer *egsim.Image[egsim.RGB888]
	bgDrawn     bool

	screenImg *ebiten.Image
	rgba      []byte

	events  eventQueue
	input   inputState
	closing bool
}

// Option configures a Window.
type Option func(*Window)

// WithLogger sets the logger used for lifecycle and hook messages.
// The default discards everything.
func WithLogger(log *zap.Logger) Option {
	return func(w *Window) {
		w.log = log
	}
}

// New creates a window for displays rasterized with the given
// settings. Nothing is shown until Run or ShowStatic is called.
func New(title string, settings *egsim.Settings, opts ...Option) *Window {
	w := &Window{
		title:    title,
		settings: settings,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Update stages a display for presentation. Call it from the Run step
// callback after drawing a frame; the staged source is rasterized and
// blitted on the next draw.
func (w *Window) Update(src egsim.Source) {
	width, height := w.settings.OutputSize(src.Width(), src.Height())
	if w.framebuffer == nil || w.framebuffer.Width() != width || w.framebuffer.Height() != height {
		w.framebuffer = egsim.NewImage[egsim.RGB888](width, height)
		w.bgDrawn = false
		ebiten.SetWindowSize(max(width, 1), max(height, 1))
	}
	w.src = src
}

// Events returns all input events captured since the last call.
// Mouse positions are translated into display coordinates.
func (w *Window) Events() []Event {
	return w.events.drain()
}

// SetMaxFPS caps the update rate while the window is running.
func (w *Window) SetMaxFPS(maxFPS int) {
	ebiten.SetTPS(maxFPS)
}

// Run drives the window until the user closes it or step returns an
// error. step runs once per frame; it should draw onto its display
// and pass it to Update.
//
// When one of the EG_SIMULATOR_* environment variables is set, Run
// performs the requested dump or check against the first staged
// display instead of opening a window, and returns nil on success or
// a descriptive error on a failed check. The caller decides the
// process exit code.
func (w *Window) Run(step func(*Window) error) error {
	if h := hookFromEnv(); h != nil {
		return w.runHook(h, step)
	}

	ebiten.SetWindowTitle(fmt.Sprintf("%s (%s)", w.title, buildinfo.Short()))
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(w.settings.MaxFPS)

	w.log.Info("window opened", zap.String("title", w.title))
	defer w.log.Info("window closed", zap.String("title", w.title))

	return ebiten.RunGame(&game{update: func() error {
		w.pollEvents()
		if err := step(w); err != nil {
			return err
		}
		if w.closing {
			return ebiten.Termination
		}
		return nil
	}, draw: w.draw, layout: w.layout})
}

// ShowStatic presents a display once and keeps the window open until
// it is closed.
func (w *Window) ShowStatic(src egsim.Source) error {
	return w.Run(func(w *Window) error {
		w.Update(src)
		return nil
	})
}

// maxHookSteps bounds how many step iterations a hook waits for the
// first Update before giving up.
const maxHookSteps = 1000

func (w *Window) runHook(h *hook, step func(*Window) error) error {
	for i := 0; i < maxHookSteps && w.src == nil; i++ {
		if step == nil {
			break
		}
		if err := step(w); err != nil {
			return err
		}
	}
	if w.src == nil {
		return errors.New("no display was presented before the simulator hook ran")
	}
	return h.run(w.src, w.settings, w.log)
}

func (w *Window) pollEvents() {
	w.input.poll(func(ev Event) {
		if ev.Kind == EventQuit {
			w.closing = true
		}
		switch ev.Kind {
		case EventMouseButtonDown, EventMouseButtonUp, EventMouseMove, EventMouseWheel:
			ev.Point = w.settings.OutputToDisplay(ev.Point)
		}
		w.events.push(ev)
	})
}

func (w *Window) draw(screen *ebiten.Image) {
	if w.src == nil {
		return
	}

	// The background only needs to be painted when the raster is
	// fresh; afterwards the per-pixel blocks are refreshed in place.
	if !w.bgDrawn {
		w.framebuffer.DrawDisplay(w.src, image.Point{}, w.settings)
		w.bgDrawn = true
	} else {
		w.framebuffer.UpdateDisplay(w.src, image.Point{}, w.settings)
	}

	blitRGB(screen, &w.screenImg, &w.rgba, w.framebuffer)
}

func (w *Window) layout() (int, int) {
	if w.framebuffer == nil {
		return 1, 1
	}
	return max(w.framebuffer.Width(), 1), max(w.framebuffer.Height(), 1)
}

// game adapts callback funcs to the ebiten.Game interface, shared by
// Window and MultiWindow.
type game struct {
	update func() error
	draw   func(*ebiten.Image)
	layout func() (int, int)
}

func (g *game) Update() error             { return g.update() }
func (g *game) Draw(screen *ebiten.Image) { g.draw(screen) }
func (g *game) Layout(int, int) (int, int) {
	return g.layout()
}

// blitRGB expands a 3 byte per pixel RGB raster into the RGBA scratch
// buffer and draws it to the screen.
func blitRGB(screen *ebiten.Image, img **ebiten.Image, rgba *[]byte, fb *egsim.Image[egsim.RGB888]) {
	width, height := fb.Width(), fb.Height()
	if width == 0 || height == 0 {
		return
	}

	if *img == nil || (*img).Bounds().Dx() != width || (*img).Bounds().Dy() != height {
		*img = ebiten.NewImage(width, height)
		*rgba = make([]byte, width*height*4)
	}

	src := fb.Bytes()
	dst := *rgba
	for i, j := 0, 0; i < len(src); i, j = i+3, j+4 {
		dst[j+0] = src[i+0]
		dst[j+1] = src[i+1]
		dst[j+2] = src[i+2]
		dst[j+3] = 0xFF
	}

	(*img).WritePixels(dst)
	screen.DrawImage(*img, nil)
}

package window

import (
	"fmt"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"egsim"
	"egsim/internal/buildinfo"
)

// Display is a source with a stable identity, used to place displays
// in a MultiWindow and route events back to them. *egsim.Display
// satisfies it for every color type.
type Display interface {
	egsim.Source
	ID() uint32
}

// MultiWindow hosts several independent displays on one shared output
// surface, each with its own offset and output settings. Displays are
// registered with AddDisplay; the step callback redraws changed
// displays with UpdateDisplay.
type MultiWindow struct {
	title  string
	width  int
	height int
	log    *zap.Logger

	framebuffer *egsim.Image[egsim.RGB888]
	screenImg   *ebiten.Image
	rgba        []byte

	displays map[uint32]placement
	router   *eventRouter
	input    inputState
	closing  bool
}

type placement struct {
	area     image.Rectangle
	settings *egsim.Settings
}

// MultiOption configures a MultiWindow.
type MultiOption func(*MultiWindow)

// WithMultiLogger sets the logger used for lifecycle messages.
func WithMultiLogger(log *zap.Logger) MultiOption {
	return func(m *MultiWindow) {
		m.log = log
	}
}

// NewMulti creates a window with a shared output surface of the given
// pixel size.
func NewMulti(title string, width, height int, opts ...MultiOption) *MultiWindow {
	m := &MultiWindow{
		title:       title,
		width:       width,
		height:      height,
		log:         zap.NewNop(),
		framebuffer: egsim.NewImage[egsim.RGB888](width, height),
		displays:    make(map[uint32]placement),
		router:      newEventRouter(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddDisplay registers a display at a pixel offset on the shared
// surface. Overlapping placements are not rejected; keeping displays
// apart is the caller's concern.
func (m *MultiWindow) AddDisplay(d Display, offset image.Point, s *egsim.Settings) {
	width, height := s.OutputSize(d.Width(), d.Height())
	m.displays[d.ID()] = placement{
		area:     image.Rect(0, 0, width, height).Add(offset),
		settings: s,
	}
	m.router.addQueue(d.ID())
	m.UpdateDisplay(d)
}

// UpdateDisplay redraws one display on the shared surface. Call it for
// every display whose content changed.
//
// Panics if the display was never added with AddDisplay.
func (m *MultiWindow) UpdateDisplay(d Display) {
	p, ok := m.displays[d.ID()]
	if !ok {
		panic(fmt.Sprintf("window: update for display %d that wasn't added with AddDisplay", d.ID()))
	}
	m.framebuffer.DrawDisplay(d, p.area.Min, p.settings)
}

// Clear fills the shared surface with a color. Use it to paint the
// regions not covered by any display; registered displays must be
// redrawn afterwards.
func (m *MultiWindow) Clear(c egsim.RGB888) {
	m.framebuffer.Clear(c)
}

// EventsFor returns the input events routed to a display since the
// last call. Mouse positions are in window coordinates; use
// TranslateMousePosition to map them onto the display.
func (m *MultiWindow) EventsFor(d Display) []Event {
	return m.router.drain(d.ID())
}

// TranslateMousePosition maps a window coordinate onto a display's
// pixel grid. It reports false when the position is outside the
// display's area.
//
// Panics if the display was never added with AddDisplay.
func (m *MultiWindow) TranslateMousePosition(d Display, pos image.Point) (image.Point, bool) {
	p, ok := m.displays[d.ID()]
	if !ok {
		panic(fmt.Sprintf("window: translate for display %d that wasn't added with AddDisplay", d.ID()))
	}
	if !pos.In(p.area) {
		return image.Point{}, false
	}
	dp := p.settings.OutputToDisplay(pos.Sub(p.area.Min))
	if dp.X >= d.Width() || dp.Y >= d.Height() {
		return image.Point{}, false
	}
	return dp, true
}

// SetMaxFPS caps the update rate while the window is running.
func (m *MultiWindow) SetMaxFPS(maxFPS int) {
	ebiten.SetTPS(maxFPS)
}

// Run drives the window until the user closes it or step returns an
// error.
func (m *MultiWindow) Run(step func(*MultiWindow) error) error {
	ebiten.SetWindowTitle(fmt.Sprintf("%s (%s)", m.title, buildinfo.Short()))
	ebiten.SetWindowSize(max(m.width, 1), max(m.height, 1))
	ebiten.SetWindowClosingHandled(true)

	m.log.Info("window opened",
		zap.String("title", m.title),
		zap.Int("displays", len(m.displays)))
	defer m.log.Info("window closed", zap.String("title", m.title))

	return ebiten.RunGame(&game{
		update: func() error {
			m.pollEvents()
			if step != nil {
				if err := step(m); err != nil {
					return err
				}
			}
			if m.closing {
				return ebiten.Termination
			}
			return nil
		},
		draw: func(screen *ebiten.Image) {
			blitRGB(screen, &m.screenImg, &m.rgba, m.framebuffer)
		},
		layout: func() (int, int) {
			return max(m.width, 1), max(m.height, 1)
		},
	})
}

func (m *MultiWindow) pollEvents() {
	m.input.poll(func(ev Event) {
		if ev.Kind == EventQuit {
			m.closing = true
		}
		m.router.route(ev, m.displayAt)
	})
}

func (m *MultiWindow) displayAt(pos image.Point) (uint32, bool) {
	for id, p := range m.displays {
		if pos.In(p.area) {
			return id, true
		}
	}
	return 0, false
}

// Command clock draws an analog clock on a simulated 128x128 OLED.
// Close the window or press Escape to quit.
package main

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	flag "github.com/spf13/pflag"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"

	"egsim"
	"egsim/window"
)

const (
	size    = 128
	centerX = size / 2
	centerY = size / 2
	radius  = size/2 - 4
)

var themes = map[string]egsim.Theme{
	"default":    egsim.ThemeDefault,
	"inverted":   egsim.ThemeInverted,
	"lcd-white":  egsim.ThemeLCDWhite,
	"lcd-green":  egsim.ThemeLCDGreen,
	"lcd-blue":   egsim.ThemeLCDBlue,
	"oled-white": egsim.ThemeOLEDWhite,
	"oled-blue":  egsim.ThemeOLEDBlue,
}

func main() {
	scale := flag.Int("scale", 2, "Output pixels per display pixel.")
	spacing := flag.Int("spacing", 1, "Background pixels between display pixels.")
	themeName := flag.String("theme", "oled-blue", "Color theme.")
	flag.Parse()

	theme, ok := themes[*themeName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown theme %q\n", *themeName)
		os.Exit(2)
	}

	d := egsim.NewDisplay[egsim.Mono](size, size)
	w := window.New("Clock", egsim.NewSettings(
		egsim.WithTheme(theme),
		egsim.WithScale(*scale),
		egsim.WithPixelSpacing(*spacing),
	))

	err := w.Run(func(w *window.Window) error {
		for _, ev := range w.Events() {
			if ev.Kind == window.EventKeyDown && ev.Key == ebiten.KeyEscape {
				return ebiten.Termination
			}
		}
		drawClock(d, time.Now())
		w.Update(d)
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func drawClock(d *egsim.Display[egsim.Mono], now time.Time) {
	on := color.RGBA{R: 255, G: 255, B: 255, A: 255}

	d.FillSolid(d.Bounds(), false)
	tinydraw.Circle(d, centerX, centerY, radius, on)
	for h := 0; h < 12; h++ {
		angle := float64(h) / 12 * 2 * math.Pi
		x0, y0 := polar(angle, radius-6)
		x1, y1 := polar(angle, radius-2)
		tinydraw.Line(d, x0, y0, x1, y1, on)
	}

	hour := float64(now.Hour()%12)/12 + float64(now.Minute())/60/12
	minute := float64(now.Minute())/60 + float64(now.Second())/60/60
	second := float64(now.Second()) / 60

	hand(d, hour, radius-26, on)
	hand(d, minute, radius-14, on)
	hand(d, second, radius-8, on)

	text := now.Format("15:04:05")
	_, width := tinyfont.LineWidth(&tinyfont.Org01, text)
	tinyfont.WriteLine(d, &tinyfont.Org01, centerX-int16(width)/2, size-8, text, on)
}

// hand draws a clock hand. turns is the fraction of a full revolution
// measured clockwise from twelve o'clock.
func hand(d *egsim.Display[egsim.Mono], turns float64, length int16, c color.RGBA) {
	x, y := polar(turns*2*math.Pi, length)
	tinydraw.Line(d, centerX, centerY, x, y, c)
}

func polar(angle float64, dist int16) (int16, int16) {
	return centerX + int16(math.Sin(angle)*float64(dist)),
		centerY - int16(math.Cos(angle)*float64(dist))
}
